package otel

import (
	"context"
	"testing"
)

func TestInitMetrics_RecordTaskOp(t *testing.T) {
	ctx := context.Background()
	_, err := InitMeterProvider(ctx, "metrics-test")
	if err != nil {
		t.Fatalf("InitMeterProvider: %v", err)
	}
	if err := InitMetrics(ctx); err != nil {
		t.Fatalf("InitMetrics: %v", err)
	}
	RecordTaskOp(ctx, "create", "pending")
	RecordTaskOp(ctx, "complete", "completed")
}

func TestAddSSEConnection_RemoveSSEConnection(t *testing.T) {
	AddSSEConnection()
	AddSSEConnection()
	RemoveSSEConnection()
	RemoveSSEConnection()
	RemoveSSEConnection() // should not go negative
}

func TestRecordPointAward_RecordNotification_RecordSSEEvent(t *testing.T) {
	ctx := context.Background()
	_, _ = InitMeterProvider(ctx, "record-test")
	_ = InitMetrics(ctx)
	RecordPointAward(ctx, "alice", 100)
	RecordNotification(ctx, "emailjs", true)
	RecordNotification(ctx, "slack", false)
	RecordSSEEvent(ctx)
}

func TestInitMetricsWithTaskCount(t *testing.T) {
	ctx := context.Background()
	_, _ = InitMeterProvider(ctx, "taskcount-test")
	err := InitMetricsWithTaskCount(ctx, func() (pending, inProgress, completed int64) {
		return 1, 2, 3
	})
	if err != nil {
		t.Fatalf("InitMetricsWithTaskCount: %v", err)
	}
}

func TestInitMetricsWithTaskCount_nilFunc(t *testing.T) {
	ctx := context.Background()
	_, _ = InitMeterProvider(ctx, "taskcount-nil-test")
	err := InitMetricsWithTaskCount(ctx, nil)
	if err != nil {
		t.Fatalf("InitMetricsWithTaskCount(nil): %v", err)
	}
}
