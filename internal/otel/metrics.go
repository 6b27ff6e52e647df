package otel

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	initMetricsOnce     sync.Once
	taskOpsCounter      metric.Int64Counter
	pointAwardsCounter  metric.Int64Counter
	pointsTotalCounter  metric.Int64Counter
	notifyCounter       metric.Int64Counter
	sseEventsCounter    metric.Int64Counter
	sseConnectionsGauge metric.Int64ObservableGauge
	sseConnections      int64
	sseConnectionsMu    sync.Mutex
)

// InitMetrics creates the meter instruments. Safe to call multiple times; only runs once.
// Call after InitMeterProvider.
func InitMetrics(ctx context.Context) error {
	var err error
	initMetricsOnce.Do(func() {
		m := Meter()
		taskOpsCounter, err = m.Int64Counter("taskboard_task_operations_total", metric.WithDescription("Total task operations (create, complete, delete, etc.)"))
		if err != nil {
			return
		}
		pointAwardsCounter, err = m.Int64Counter("taskboard_point_awards_total", metric.WithDescription("Total point ledger entries written"))
		if err != nil {
			return
		}
		pointsTotalCounter, err = m.Int64Counter("taskboard_points_awarded_total", metric.WithDescription("Sum of points awarded across all completions"))
		if err != nil {
			return
		}
		notifyCounter, err = m.Int64Counter("taskboard_notifications_total", metric.WithDescription("Assignment notifications attempted, by channel and status"))
		if err != nil {
			return
		}
		sseEventsCounter, err = m.Int64Counter("taskboard_sse_events_total", metric.WithDescription("Total SSE events published"))
		if err != nil {
			return
		}
		sseConnectionsGauge, err = m.Int64ObservableGauge("taskboard_sse_connections", metric.WithDescription("Current SSE subscriber count"))
		if err != nil {
			return
		}
		_, err = m.RegisterCallback(func(ctx context.Context, o metric.Observer) error {
			sseConnectionsMu.Lock()
			n := sseConnections
			sseConnectionsMu.Unlock()
			o.ObserveInt64(sseConnectionsGauge, n)
			return nil
		}, sseConnectionsGauge)
		if err != nil {
			return
		}
	})
	return err
}

// RecordTaskOp records a task operation (create, complete, delete, etc.).
func RecordTaskOp(ctx context.Context, op, status string) {
	if taskOpsCounter == nil {
		return
	}
	taskOpsCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", op),
		AttrStatus.String(status),
	))
}

// RecordPointAward records one ledger entry and its point value.
func RecordPointAward(ctx context.Context, employee string, points int) {
	if pointAwardsCounter != nil {
		pointAwardsCounter.Add(ctx, 1, metric.WithAttributes(AttrEmployee.String(employee)))
	}
	if pointsTotalCounter != nil {
		pointsTotalCounter.Add(ctx, int64(points), metric.WithAttributes(AttrEmployee.String(employee)))
	}
}

// RecordNotification records one notification attempt on a channel.
func RecordNotification(ctx context.Context, channel string, ok bool) {
	if notifyCounter == nil {
		return
	}
	status := "ok"
	if !ok {
		status = "error"
	}
	notifyCounter.Add(ctx, 1, metric.WithAttributes(
		AttrChannel.String(channel),
		AttrStatus.String(status),
	))
}

// RecordSSEEvent records one SSE event published.
func RecordSSEEvent(ctx context.Context) {
	if sseEventsCounter != nil {
		sseEventsCounter.Add(ctx, 1)
	}
}

// AddSSEConnection adds 1 to the SSE connection gauge (call on subscribe).
func AddSSEConnection() {
	sseConnectionsMu.Lock()
	sseConnections++
	sseConnectionsMu.Unlock()
}

// RemoveSSEConnection subtracts 1 from the SSE connection gauge (call on unsubscribe).
func RemoveSSEConnection() {
	sseConnectionsMu.Lock()
	sseConnections--
	if sseConnections < 0 {
		sseConnections = 0
	}
	sseConnectionsMu.Unlock()
}

// TaskCountFunc returns (pending, inProgress, completed) counts for the task gauge.
type TaskCountFunc func() (pending, inProgress, completed int64)

// InitMetricsWithTaskCount creates instruments and optionally registers a callback for task gauges.
// Call after InitMeterProvider. If taskCount is nil, task gauges are not reported.
func InitMetricsWithTaskCount(ctx context.Context, taskCount TaskCountFunc) error {
	if err := InitMetrics(ctx); err != nil {
		return err
	}
	if taskCount == nil {
		return nil
	}
	m := Meter()
	tasksGauge, err := m.Float64ObservableGauge("taskboard_tasks_total", metric.WithDescription("Number of tasks by status"))
	if err != nil {
		return err
	}
	_, err = m.RegisterCallback(func(ctx context.Context, o metric.Observer) error {
		pending, inProgress, completed := taskCount()
		o.ObserveFloat64(tasksGauge, float64(pending), metric.WithAttributes(AttrStatus.String("pending")))
		o.ObserveFloat64(tasksGauge, float64(inProgress), metric.WithAttributes(AttrStatus.String("in-progress")))
		o.ObserveFloat64(tasksGauge, float64(completed), metric.WithAttributes(AttrStatus.String("completed")))
		return nil
	}, tasksGauge)
	return err
}
