package model

import (
	"time"

	"gorm.io/gorm"
)

// ActiveAppUsage is the append-only per-chunk app log. Rows are never merged
// or rewritten; TrackingSession holds the merged view.
type ActiveAppUsage struct {
	Id        int       `json:"id" gorm:"primaryKey"`
	SessionId int       `json:"session_id" gorm:"index"`
	AppName   string    `json:"app_name" gorm:"type:varchar(255);index:idx_app_ts"`
	Seconds   int       `json:"seconds" gorm:"default:0"`
	ChunkId   string    `json:"chunk_id" gorm:"type:char(96)"`
	Timestamp time.Time `json:"timestamp" gorm:"datetime;autoCreateTime;index:idx_app_ts"`
}

// TaskUsage is the append-only per-chunk task log, carrying the client's own
// seconds breakdown untouched.
type TaskUsage struct {
	Id        int    `json:"id" gorm:"primaryKey"`
	SessionId int    `json:"session_id" gorm:"index"`
	TaskId    string `json:"task_id" gorm:"type:char(96);index:idx_task_ts"`
	ProjectId string `json:"project_id" gorm:"type:char(96)"`

	EffectiveSec         int `json:"effective_sec" gorm:"default:0"`
	OvertimeSec          int `json:"overtime_sec" gorm:"default:0"`
	RecordedSec          int `json:"recorded_sec" gorm:"default:0"`
	RemainingTaskTimeSec int `json:"remaining_task_time_sec" gorm:"default:0"`
	TotalTaskTimeSec     int `json:"total_task_time_sec" gorm:"default:0"`
	TotalWorkedTimeSec   int `json:"total_worked_time_sec" gorm:"default:0"`

	ChunkId   string    `json:"chunk_id" gorm:"type:char(96)"`
	Timestamp time.Time `json:"timestamp" gorm:"datetime;autoCreateTime;index:idx_task_ts"`
}

func AddAppUsages(tx *gorm.DB, usages []ActiveAppUsage) error {
	if len(usages) == 0 {
		return nil
	}
	return tx.Create(&usages).Error
}

func AddTaskUsages(tx *gorm.DB, usages []TaskUsage) error {
	if len(usages) == 0 {
		return nil
	}
	return tx.Create(&usages).Error
}

func ListAppUsagesBySession(sessionId int) ([]ActiveAppUsage, error) {
	var usages []ActiveAppUsage
	if err := DB.Where("session_id = ?", sessionId).Find(&usages).Error; err != nil {
		return nil, err
	}
	return usages, nil
}

func ListTaskUsagesBySession(sessionId int) ([]TaskUsage, error) {
	var usages []TaskUsage
	if err := DB.Where("session_id = ?", sessionId).Find(&usages).Error; err != nil {
		return nil, err
	}
	return usages, nil
}
