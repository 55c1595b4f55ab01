package dao

import (
	"fmt"
	"time"

	"treko/internal/model"
)

type TaskTimeSpec struct {
	Time        int    `json:"time" binding:"required"`
	Description string `json:"description,omitempty"`
}

type MediaSpec struct {
	Url         string `json:"url" binding:"required"`
	WindowTitle string `json:"window_title,omitempty"`
	Status      string `json:"status,omitempty"`
	Timestamp   string `json:"timestamp,omitempty"`
}

// IntervalRequest is one legacy fixed-cadence activity record. The task
// seconds must account for the whole 600-second interval.
type IntervalRequest struct {
	EmployeeId    string                  `json:"employee" binding:"required"`
	Timestamp     string                  `json:"timestamp,omitempty"`
	ActivityLevel int                     `json:"activity_level" binding:"min=0,max=100"`
	TasksTime     map[string]TaskTimeSpec `json:"tasks_time" binding:"required"`
	Screenshots   []MediaSpec             `json:"screenshots"`
	Headshots     []MediaSpec             `json:"headshots"`
}

// Validate enforces the interval apportionment invariant: task seconds sum to
// exactly 600. Runs before any row is written.
func (r *IntervalRequest) Validate() error {
	total := 0
	for _, entry := range r.TasksTime {
		total += entry.Time
	}
	if total != 600 {
		return fmt.Errorf("total task time must equal 10 minutes (600 seconds), got %d", total)
	}
	return nil
}

func (r *IntervalRequest) ToModel() (*model.ActivityInterval, error) {
	ts := time.Now()
	if r.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, r.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp: %w", err)
		}
		ts = parsed
	}

	tasksTime := make(model.TaskTimeMap, len(r.TasksTime))
	for taskId, entry := range r.TasksTime {
		tasksTime[taskId] = model.TaskTimeEntry{
			Time:        entry.Time,
			Description: entry.Description,
		}
	}

	screenshots := make(model.ScreenshotSlice, 0, len(r.Screenshots))
	for _, shot := range r.Screenshots {
		screenshots = append(screenshots, model.Screenshot{
			Url:         shot.Url,
			WindowTitle: shot.WindowTitle,
			Timestamp:   parseMediaTime(shot.Timestamp, ts),
		})
	}

	headshots := make(model.HeadshotSlice, 0, len(r.Headshots))
	for _, shot := range r.Headshots {
		status := model.VerificationPending
		if shot.Status != "" {
			status = model.VerificationStatus(shot.Status)
		}
		headshots = append(headshots, model.Headshot{
			Url:       shot.Url,
			Status:    status,
			Timestamp: parseMediaTime(shot.Timestamp, ts),
		})
	}

	return &model.ActivityInterval{
		EmployeeId:         r.EmployeeId,
		Timestamp:          ts,
		IsOnline:           true,
		ActivityLevel:      r.ActivityLevel,
		TasksTime:          tasksTime,
		Screenshots:        screenshots,
		Headshots:          headshots,
		VerificationStatus: model.VerificationPending,
	}, nil
}

func parseMediaTime(value string, fallback time.Time) time.Time {
	if value == "" {
		return fallback
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fallback
	}
	return parsed
}

type IntervalSpec struct {
	Id                 int                     `json:"id"`
	EmployeeId         string                  `json:"employee"`
	Timestamp          string                  `json:"timestamp"`
	IsOnline           bool                    `json:"isOnline"`
	ActivityLevel      int                     `json:"activityLevel"`
	TasksTime          map[string]TaskTimeSpec `json:"tasksTime"`
	Screenshots        []MediaSpec             `json:"screenshots,omitempty"`
	Headshots          []MediaSpec             `json:"headshots,omitempty"`
	VerificationStatus string                  `json:"verificationStatus"`
}

func FromIntervalModel(interval *model.ActivityInterval) *IntervalSpec {
	spec := &IntervalSpec{
		Id:                 interval.Id,
		EmployeeId:         interval.EmployeeId,
		Timestamp:          interval.Timestamp.Format(time.RFC3339),
		IsOnline:           interval.IsOnline,
		ActivityLevel:      interval.ActivityLevel,
		TasksTime:          make(map[string]TaskTimeSpec, len(interval.TasksTime)),
		VerificationStatus: string(interval.VerificationStatus),
	}
	for taskId, entry := range interval.TasksTime {
		spec.TasksTime[taskId] = TaskTimeSpec{Time: entry.Time, Description: entry.Description}
	}
	for _, shot := range interval.Screenshots {
		spec.Screenshots = append(spec.Screenshots, MediaSpec{
			Url:         shot.Url,
			WindowTitle: shot.WindowTitle,
			Timestamp:   shot.Timestamp.Format(time.RFC3339),
		})
	}
	for _, shot := range interval.Headshots {
		spec.Headshots = append(spec.Headshots, MediaSpec{
			Url:       shot.Url,
			Status:    string(shot.Status),
			Timestamp: shot.Timestamp.Format(time.RFC3339),
		})
	}
	return spec
}
