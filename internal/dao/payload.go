package dao

import (
	"encoding/json"
	"time"
)

type PayloadStats struct {
	ActiveSec    int `json:"active_sec"`
	EffectiveSec int `json:"effective_sec"`
	IdleSec      int `json:"idle_sec"`
	OvertimeSec  int `json:"overtime_sec"`
	RecordedSec  int `json:"recorded_sec"`
}

type PayloadApps struct {
	ActiveByAppSec     map[string]int `json:"active_by_app_sec"`
	SessionCount       int            `json:"session_count"`
	SessionDurationSec int            `json:"session_duration_sec"`
}

type TaskPayload struct {
	TaskId               string `json:"task_id" binding:"required"`
	EffectiveSec         int    `json:"effective_sec"`
	OvertimeSec          int    `json:"overtime_sec"`
	RecordedSec          int    `json:"recorded_sec"`
	RemainingTaskTimeSec int    `json:"remaining_task_time_sec"`
	TotalTaskTimeSec     int    `json:"total_task_time_sec"`
	TotalWorkedTimeSec   int    `json:"total_worked_time_sec"`
}

// MediaItem is one captured screenshot or headshot reference. Some client
// builds send a bare URL string instead of an object; that form is accepted
// and becomes a URL with empty metadata.
type MediaItem struct {
	Url         string    `json:"url"`
	WindowTitle string    `json:"window_title,omitempty"`
	Status      string    `json:"status,omitempty"`
	Timestamp   time.Time `json:"timestamp,omitempty"`
}

func (m *MediaItem) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*m = MediaItem{Url: raw}
		return nil
	}

	type mediaItem MediaItem
	var item mediaItem
	if err := json.Unmarshal(data, &item); err != nil {
		return err
	}
	*m = MediaItem(item)
	return nil
}

type PayloadMedia struct {
	Screenshots []MediaItem `json:"screenshots"`
	Headshots   []MediaItem `json:"headshots"`
}

type PayloadWindow struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// TrackingPayload is one ingestion chunk from the desktop client, covering a
// short elapsed window of tracked activity.
type TrackingPayload struct {
	UserId      string        `json:"user_id" binding:"required"`
	AppVersion  string        `json:"app_version"`
	ProjectId   string        `json:"project_id"`
	ChunkId     string        `json:"chunk_id"`
	ChunkCount  int           `json:"chunk_count"`
	IsPartial   bool          `json:"is_partial"`
	GeneratedAt time.Time     `json:"generated_at"`
	Stats       PayloadStats  `json:"stats"`
	Apps        PayloadApps   `json:"apps"`
	ByTask      []TaskPayload `json:"by_task"`
	Media       PayloadMedia  `json:"media"`
	Window      PayloadWindow `json:"window"`
}

type PayloadResponse struct {
	Message   string `json:"message"`
	SessionId int    `json:"sessionId,omitempty"`
	Duplicate bool   `json:"duplicate,omitempty"`
}
