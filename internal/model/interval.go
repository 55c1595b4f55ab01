package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VerificationStatus string

const (
	VerificationPending    VerificationStatus = "PENDING"
	VerificationVerified   VerificationStatus = "VERIFIED"
	VerificationSuspicious VerificationStatus = "SUSPICIOUS"
)

// TaskTimeEntry is one task's share of a fixed 600-second interval.
type TaskTimeEntry struct {
	Time        int    `json:"time"`
	Description string `json:"description,omitempty"`
}

type TaskTimeMap map[string]TaskTimeEntry

// Value implements driver.Valuer interface for JSON serialization
func (m TaskTimeMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner interface for JSON deserialization
func (m *TaskTimeMap) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, m)
}

type Screenshot struct {
	Url         string    `json:"url"`
	WindowTitle string    `json:"window_title,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

type ScreenshotSlice []Screenshot

func (s ScreenshotSlice) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *ScreenshotSlice) Scan(value any) error {
	if value == nil {
		*s = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, s)
}

type Headshot struct {
	Url       string             `json:"url"`
	Status    VerificationStatus `json:"status"`
	Timestamp time.Time          `json:"timestamp"`
}

type HeadshotSlice []Headshot

func (h HeadshotSlice) Value() (driver.Value, error) {
	if h == nil {
		return nil, nil
	}
	return json.Marshal(h)
}

func (h *HeadshotSlice) Scan(value any) error {
	if value == nil {
		*h = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, h)
}

// ActivityInterval is one fixed 10-minute sample on the legacy ingestion
// path. Its task seconds always sum to exactly 600; validation rejects
// anything else before a row is written.
type ActivityInterval struct {
	Id            int       `json:"id" gorm:"primaryKey"`
	EmployeeId    string    `json:"employee_id" gorm:"type:char(96);index:idx_employee_timestamp"`
	Timestamp     time.Time `json:"timestamp" gorm:"datetime;index:idx_employee_timestamp"`
	IsOnline      bool      `json:"is_online" gorm:"default:true"`
	ActivityLevel int       `json:"activity_level" gorm:"default:0"`

	TasksTime   TaskTimeMap     `json:"tasks_time" gorm:"type:json"`
	Screenshots ScreenshotSlice `json:"screenshots" gorm:"type:json"`
	Headshots   HeadshotSlice   `json:"headshots" gorm:"type:json"`

	VerificationStatus VerificationStatus `json:"verification_status" gorm:"type:char(20);default:'PENDING'"`

	CreateTime time.Time `json:"create_time" gorm:"datetime;autoCreateTime"`
	UpdateTime time.Time `json:"update_time" gorm:"datetime;autoCreateTime;autoUpdateTime"`
}

func AddInterval(tx *gorm.DB, interval *ActivityInterval) error {
	return tx.Create(interval).Error
}

func UpdateInterval(tx *gorm.DB, interval *ActivityInterval) error {
	return tx.Save(interval).Error
}

func GetIntervalById(id int) (*ActivityInterval, error) {
	var interval ActivityInterval
	if err := DB.Where("id = ?", id).First(&interval).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &interval, nil
}

// GetIntervalForUpdateNoWait locks the interval row without waiting.
// Verification workers must not block on a contended row; a lock-not-available
// error surfaces to the caller, which requeues the job.
func GetIntervalForUpdateNoWait(tx *gorm.DB, id int) (*ActivityInterval, error) {
	var interval ActivityInterval
	err := tx.Clauses(clause.Locking{Strength: "UPDATE", Options: "NOWAIT"}).
		Where("id = ?", id).First(&interval).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &interval, nil
}

func ListIntervalsByEmployeeDate(employeeId, date string) ([]ActivityInterval, error) {
	var intervals []ActivityInterval
	err := DB.Where("employee_id = ? AND DATE(timestamp) = ?", employeeId, date).
		Order("timestamp").Find(&intervals).Error
	if err != nil {
		return nil, err
	}
	return intervals, nil
}

// ListIntervalsWithTask returns intervals since the given time whose
// tasks_time JSON carries the task id as a key.
func ListIntervalsWithTask(taskId string, since time.Time) ([]ActivityInterval, error) {
	var intervals []ActivityInterval
	path := fmt.Sprintf(`$."%s"`, taskId)
	err := DB.Where("timestamp >= ? AND JSON_EXTRACT(tasks_time, ?) IS NOT NULL", since, path).
		Order("timestamp desc").Find(&intervals).Error
	if err != nil {
		return nil, err
	}
	return intervals, nil
}
