package main

import (
	"context"
	"testing"
	"time"

	"github.com/krushit/krushit/pkg/resilience"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func diagnosisStatus(t *testing.T, hs *health.Server) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := hs.Check(context.Background(), &healthpb.HealthCheckRequest{Service: diagnosisService})
	if err != nil {
		t.Fatalf("health check: %v", err)
	}
	return resp.GetStatus()
}

func TestBreakerHealthFollowsBreakerState(t *testing.T) {
	hs := health.NewServer()
	hs.SetServingStatus(diagnosisService, healthpb.HealthCheckResponse_SERVING)
	onChange := breakerHealth(hs, quiet)

	tests := []struct {
		from, to resilience.State
		want     healthpb.HealthCheckResponse_ServingStatus
	}{
		{resilience.StateClosed, resilience.StateOpen, healthpb.HealthCheckResponse_NOT_SERVING},
		{resilience.StateOpen, resilience.StateHalfOpen, healthpb.HealthCheckResponse_SERVING},
		{resilience.StateHalfOpen, resilience.StateOpen, healthpb.HealthCheckResponse_NOT_SERVING},
		{resilience.StateHalfOpen, resilience.StateClosed, healthpb.HealthCheckResponse_SERVING},
	}
	for _, tt := range tests {
		onChange(tt.from, tt.to)
		if got := diagnosisStatus(t, hs); got != tt.want {
			t.Fatalf("%s -> %s: status = %s, want %s", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestBreakerHealthWiredToBreaker(t *testing.T) {
	hs := health.NewServer()
	hs.SetServingStatus(diagnosisService, healthpb.HealthCheckResponse_SERVING)
	b := resilience.NewBreaker(resilience.BreakerOpts{
		FailThreshold: 1,
		Timeout:       time.Hour,
		OnStateChange: breakerHealth(hs, quiet),
	})

	b.Call(context.Background(), func(context.Context) error { return context.DeadlineExceeded })
	if got := diagnosisStatus(t, hs); got != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("open breaker: status = %s", got)
	}
}
