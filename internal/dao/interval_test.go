package dao

import (
	"testing"

	"treko/internal/model"
)

func TestIntervalRequestValidate(t *testing.T) {
	req := &IntervalRequest{
		EmployeeId: "emp-1",
		TasksTime: map[string]TaskTimeSpec{
			"t-1": {Time: 400},
			"t-2": {Time: 200},
		},
	}
	if err := req.Validate(); err != nil {
		t.Errorf("expected valid interval, got %v", err)
	}

	req.TasksTime["t-2"] = TaskTimeSpec{Time: 100}
	if err := req.Validate(); err == nil {
		t.Error("expected rejection when task seconds sum to 500")
	}

	req.TasksTime = map[string]TaskTimeSpec{}
	if err := req.Validate(); err == nil {
		t.Error("expected rejection for an empty task map")
	}
}

func TestIntervalRequestToModel(t *testing.T) {
	req := &IntervalRequest{
		EmployeeId:    "emp-1",
		Timestamp:     "2025-03-10T09:10:00Z",
		ActivityLevel: 42,
		TasksTime: map[string]TaskTimeSpec{
			"t-1": {Time: 600, Description: "refactoring"},
		},
		Headshots: []MediaSpec{
			{Url: "http://minio/treko/h1.jpg"},
			{Url: "http://minio/treko/h2.jpg", Status: "VERIFIED"},
		},
	}

	interval, err := req.ToModel()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if interval.EmployeeId != "emp-1" || interval.ActivityLevel != 42 {
		t.Errorf("unexpected interval: %+v", interval)
	}
	if !interval.IsOnline {
		t.Error("ingested intervals should be marked online")
	}
	if interval.VerificationStatus != model.VerificationPending {
		t.Errorf("new intervals start PENDING, got %s", interval.VerificationStatus)
	}
	if interval.Timestamp.Hour() != 9 || interval.Timestamp.Minute() != 10 {
		t.Errorf("timestamp not parsed: %v", interval.Timestamp)
	}
	if interval.TasksTime["t-1"].Time != 600 {
		t.Errorf("tasks time not carried: %v", interval.TasksTime)
	}
	if interval.Headshots[0].Status != model.VerificationPending {
		t.Errorf("headshot without status should default to PENDING, got %s", interval.Headshots[0].Status)
	}
	if interval.Headshots[1].Status != model.VerificationVerified {
		t.Errorf("explicit headshot status should be kept, got %s", interval.Headshots[1].Status)
	}
	if !interval.Headshots[0].Timestamp.Equal(interval.Timestamp) {
		t.Error("headshot without timestamp should inherit the interval timestamp")
	}
}

func TestIntervalRequestToModelBadTimestamp(t *testing.T) {
	req := &IntervalRequest{
		EmployeeId: "emp-1",
		Timestamp:  "yesterday",
		TasksTime:  map[string]TaskTimeSpec{"t-1": {Time: 600}},
	}
	if _, err := req.ToModel(); err == nil {
		t.Error("expected error for unparseable timestamp")
	}
}
