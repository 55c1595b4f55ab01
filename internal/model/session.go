package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SecondsMap maps an entity name (app name) to cumulative active seconds.
type SecondsMap map[string]int

// Value implements driver.Valuer interface for JSON serialization
func (m SecondsMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner interface for JSON deserialization
func (m *SecondsMap) Scan(value any) error {
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

// TrackingSession is the merged view of one employee's tracked day. Payload
// chunks only ever add to its counters and widen its window; the raw
// per-chunk rows live in ActiveAppUsage/TaskUsage and the media logs.
type TrackingSession struct {
	Id         int    `json:"id" gorm:"primaryKey"`
	EmployeeId string `json:"employee_id" gorm:"type:char(96);uniqueIndex:idx_employee_date"`
	Date       string `json:"date" gorm:"type:date;uniqueIndex:idx_employee_date"`

	IsOnline      bool   `json:"is_online" gorm:"default:true"`
	ActivityLevel int    `json:"activity_level" gorm:"default:0"`
	AppVersion    string `json:"app_version" gorm:"type:char(96)"`
	ProjectId     string `json:"project_id" gorm:"type:char(96)"`

	ActiveSec    int `json:"active_sec" gorm:"default:0"`
	EffectiveSec int `json:"effective_sec" gorm:"default:0"`
	IdleSec      int `json:"idle_sec" gorm:"default:0"`
	OvertimeSec  int `json:"overtime_sec" gorm:"default:0"`
	RecordedSec  int `json:"recorded_sec" gorm:"default:0"`

	WindowStart *time.Time `json:"window_start"`
	WindowEnd   *time.Time `json:"window_end"`

	ActiveByAppSec        SecondsMap `json:"active_by_app_sec" gorm:"type:json"`
	AppSessionCount       int        `json:"app_session_count" gorm:"default:0"`
	AppSessionDurationSec int        `json:"app_session_duration_sec" gorm:"default:0"`

	TotalDuration int `json:"total_duration" gorm:"default:0"`

	CreateTime time.Time `json:"create_time" gorm:"datetime;autoCreateTime"`
	UpdateTime time.Time `json:"update_time" gorm:"datetime;autoCreateTime;autoUpdateTime"`
}

func AddSession(tx *gorm.DB, session *TrackingSession) error {
	return tx.Create(session).Error
}

func UpdateSession(tx *gorm.DB, session *TrackingSession) error {
	return tx.Save(session).Error
}

func GetSessionById(id int) (*TrackingSession, error) {
	var session TrackingSession
	if err := DB.Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// GetSessionForUpdate locks the (employee, date) row for the duration of the
// surrounding transaction. Ingestion paths block on the lock.
func GetSessionForUpdate(tx *gorm.DB, employeeId, date string) (*TrackingSession, error) {
	var session TrackingSession
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_id = ? AND date = ?", employeeId, date).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func GetSessionByEmployeeDate(employeeId, date string) (*TrackingSession, error) {
	var session TrackingSession
	err := DB.Where("employee_id = ? AND date = ?", employeeId, date).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func ListSessionsByEmployee(employeeId string, start, limit int) ([]TrackingSession, int64, error) {
	var sessions []TrackingSession
	var total int64
	if err := DB.Model(&TrackingSession{}).Where("employee_id = ?", employeeId).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := DB.Model(&TrackingSession{}).Where("employee_id = ?", employeeId).
		Order("date desc").Offset(start).Limit(limit).Find(&sessions).Error; err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}
