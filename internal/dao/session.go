package dao

import (
	"errors"
	"time"

	"treko/internal/model"
)

type SessionSpec struct {
	Id            int            `json:"id"`
	EmployeeId    string         `json:"employeeId"`
	Date          string         `json:"date"`
	IsOnline      bool           `json:"isOnline"`
	ActivityLevel int            `json:"activityLevel"`
	AppVersion    string         `json:"appVersion,omitempty"`
	ProjectId     string         `json:"projectId,omitempty"`
	ActiveSec     int            `json:"activeSec"`
	EffectiveSec  int            `json:"effectiveSec"`
	IdleSec       int            `json:"idleSec"`
	OvertimeSec   int            `json:"overtimeSec"`
	RecordedSec   int            `json:"recordedSec"`
	WindowStart   string         `json:"windowStart,omitempty"`
	WindowEnd     string         `json:"windowEnd,omitempty"`
	ActiveByApp   map[string]int `json:"activeByAppSec"`
	SessionCount  int            `json:"appSessionCount"`
	SessionDurSec int            `json:"appSessionDurationSec"`
	TotalDuration int            `json:"totalDuration"`
	UpdateTime    string         `json:"updateTime"`
}

func FromSessionModel(session *model.TrackingSession) (*SessionSpec, error) {
	if session == nil {
		return nil, errors.New("session is nil")
	}
	spec := &SessionSpec{
		Id:            session.Id,
		EmployeeId:    session.EmployeeId,
		Date:          session.Date,
		IsOnline:      session.IsOnline,
		ActivityLevel: session.ActivityLevel,
		AppVersion:    session.AppVersion,
		ProjectId:     session.ProjectId,
		ActiveSec:     session.ActiveSec,
		EffectiveSec:  session.EffectiveSec,
		IdleSec:       session.IdleSec,
		OvertimeSec:   session.OvertimeSec,
		RecordedSec:   session.RecordedSec,
		ActiveByApp:   session.ActiveByAppSec,
		SessionCount:  session.AppSessionCount,
		SessionDurSec: session.AppSessionDurationSec,
		TotalDuration: session.TotalDuration,
		UpdateTime:    session.UpdateTime.Format(time.RFC3339),
	}
	if session.WindowStart != nil {
		spec.WindowStart = session.WindowStart.Format(time.RFC3339)
	}
	if session.WindowEnd != nil {
		spec.WindowEnd = session.WindowEnd.Format(time.RFC3339)
	}
	if spec.ActiveByApp == nil {
		spec.ActiveByApp = map[string]int{}
	}
	return spec, nil
}

type ListSessionsResponse struct {
	Total    int64         `json:"total"`
	Sessions []SessionSpec `json:"sessions"`
}

type AppUsageSpec struct {
	Id        int    `json:"id"`
	AppName   string `json:"appName"`
	Seconds   int    `json:"seconds"`
	ChunkId   string `json:"chunkId,omitempty"`
	Timestamp string `json:"timestamp"`
}

func FromAppUsageModel(usage *model.ActiveAppUsage) AppUsageSpec {
	return AppUsageSpec{
		Id:        usage.Id,
		AppName:   usage.AppName,
		Seconds:   usage.Seconds,
		ChunkId:   usage.ChunkId,
		Timestamp: usage.Timestamp.Format(time.RFC3339),
	}
}

type TaskUsageSpec struct {
	Id                   int    `json:"id"`
	TaskId               string `json:"taskId"`
	ProjectId            string `json:"projectId,omitempty"`
	EffectiveSec         int    `json:"effectiveSec"`
	OvertimeSec          int    `json:"overtimeSec"`
	RecordedSec          int    `json:"recordedSec"`
	RemainingTaskTimeSec int    `json:"remainingTaskTimeSec"`
	TotalTaskTimeSec     int    `json:"totalTaskTimeSec"`
	TotalWorkedTimeSec   int    `json:"totalWorkedTimeSec"`
	ChunkId              string `json:"chunkId,omitempty"`
	Timestamp            string `json:"timestamp"`
}

func FromTaskUsageModel(usage *model.TaskUsage) TaskUsageSpec {
	return TaskUsageSpec{
		Id:                   usage.Id,
		TaskId:               usage.TaskId,
		ProjectId:            usage.ProjectId,
		EffectiveSec:         usage.EffectiveSec,
		OvertimeSec:          usage.OvertimeSec,
		RecordedSec:          usage.RecordedSec,
		RemainingTaskTimeSec: usage.RemainingTaskTimeSec,
		TotalTaskTimeSec:     usage.TotalTaskTimeSec,
		TotalWorkedTimeSec:   usage.TotalWorkedTimeSec,
		ChunkId:              usage.ChunkId,
		Timestamp:            usage.Timestamp.Format(time.RFC3339),
	}
}

type MediaLogSpec struct {
	Id          int    `json:"id"`
	Url         string `json:"url"`
	WindowTitle string `json:"windowTitle,omitempty"`
	Status      string `json:"status,omitempty"`
	Timestamp   string `json:"timestamp"`
}
