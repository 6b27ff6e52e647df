// Package notify delivers task-assignment notifications through pluggable
// channels (EmailJS, Slack). Delivery is best-effort: the board never blocks
// a task on a failed notification.
package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/pkg/models"
)

// Assignment is the notification payload for a newly assigned task.
type Assignment struct {
	Task          models.Task
	EmployeeName  string
	EmployeeEmail string
}

// Notifier is a delivery channel for assignment notifications.
type Notifier interface {
	Name() string
	NotifyAssignment(ctx context.Context, a Assignment) error
}

// Registry holds loaded notifiers by name.
type Registry struct {
	mu        sync.RWMutex
	notifiers map[string]Notifier
}

func NewRegistry() *Registry {
	return &Registry{notifiers: make(map[string]Notifier)}
}

func (r *Registry) Register(n Notifier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifiers[n.Name()] = n
}

func (r *Registry) Get(name string) Notifier {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.notifiers[name]
}

// Names returns the registered channel names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.notifiers))
	for name := range r.notifiers {
		out = append(out, name)
	}
	return out
}

func (r *Registry) Notify(ctx context.Context, name string, a Assignment) error {
	n := r.Get(name)
	if n == nil {
		return fmt.Errorf("notifier %q not found", name)
	}
	return n.NotifyAssignment(ctx, a)
}

// NotifyAll fans the assignment out to every registered channel and returns
// the errors from channels that failed, keyed by channel name.
func (r *Registry) NotifyAll(ctx context.Context, a Assignment) map[string]error {
	r.mu.RLock()
	notifiers := make([]Notifier, 0, len(r.notifiers))
	for _, n := range r.notifiers {
		notifiers = append(notifiers, n)
	}
	r.mu.RUnlock()

	failed := make(map[string]error)
	for _, n := range notifiers {
		if err := n.NotifyAssignment(ctx, a); err != nil {
			failed[n.Name()] = err
		}
	}
	return failed
}
