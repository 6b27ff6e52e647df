package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultEmailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// EmailJS sends assignment emails through the EmailJS HTTP API. The template
// receives the assignment fields as template_params, so the email layout
// stays configurable on the EmailJS side.
type EmailJS struct {
	ServiceID  string
	TemplateID string
	PublicKey  string       // EmailJS user_id
	Endpoint   string       // optional; defaults to the hosted API
	HTTPClient *http.Client // optional; nil uses http.DefaultClient
}

func (e EmailJS) Name() string { return "emailjs" }

func (e EmailJS) NotifyAssignment(ctx context.Context, a Assignment) error {
	if e.ServiceID == "" || e.TemplateID == "" || e.PublicKey == "" {
		return fmt.Errorf("emailjs service, template, and public key required")
	}
	endpoint := e.Endpoint
	if endpoint == "" {
		endpoint = defaultEmailJSEndpoint
	}
	assigned := a.Task.Timestamp
	if assigned.IsZero() {
		assigned = time.Now()
	}
	// The deadline is the assignment time plus the task's estimated hours.
	deadline := assigned.Add(time.Duration(a.Task.EstimatedTime * float64(time.Hour)))
	payload := map[string]any{
		"service_id":  e.ServiceID,
		"template_id": e.TemplateID,
		"user_id":     e.PublicKey,
		"template_params": map[string]any{
			"to_name":         a.EmployeeName,
			"from_name":       a.Task.AssignedBy,
			"task_name":       a.Task.TaskName,
			"message":         a.Task.Description,
			"assigned_time":   assigned.Format("1/2/2006, 3:04:05 PM"),
			"supporting_link": a.Task.SupportingLinks,
			"employee_email":  a.EmployeeEmail,
			"deadline":        deadline.Format("1/2/2006, 03:04 PM"),
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	client := e.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("emailjs returned %d", resp.StatusCode)
	}
	return nil
}
