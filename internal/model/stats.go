package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SummaryEntry is one task's or project's cumulative share of a day.
type SummaryEntry struct {
	Name        string `json:"name"`
	ProjectId   string `json:"project_id,omitempty"`
	ProjectName string `json:"project_name,omitempty"`
	Time        int    `json:"time"`
	ActiveTime  int    `json:"active_time"`
}

type SummaryMap map[string]*SummaryEntry

func (m SummaryMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *SummaryMap) Scan(value any) error {
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

type HourlyEntry struct {
	TotalTime  int     `json:"total_time"`
	ActiveTime int     `json:"active_time"`
	Level      float64 `json:"level"`
}

// HourlyMap is keyed by hour-of-day ("0".."23").
type HourlyMap map[string]*HourlyEntry

func (m HourlyMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *HourlyMap) Scan(value any) error {
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

// ActivityStats is the per-employee daily rollup, maintained incrementally
// from each interval without rescanning prior ones. first/last activity are
// clock times ("15:04:05"); lexical order matches chronological order.
type ActivityStats struct {
	Id         int    `json:"id" gorm:"primaryKey"`
	EmployeeId string `json:"employee_id" gorm:"type:char(96);uniqueIndex:idx_stats_employee_date;index:idx_stats_employee_week"`
	Date       string `json:"date" gorm:"type:date;uniqueIndex:idx_stats_employee_date"`

	TotalTime  int `json:"total_time" gorm:"default:0"`
	ActiveTime int `json:"active_time" gorm:"default:0"`
	IdleTime   int `json:"idle_time" gorm:"default:0"`

	AverageActivity float64 `json:"average_activity" gorm:"default:0"`
	FirstActivity   string  `json:"first_activity" gorm:"type:char(20)"`
	LastActivity    string  `json:"last_activity" gorm:"type:char(20)"`

	ProjectsSummary SummaryMap `json:"projects_summary" gorm:"type:json"`
	TasksSummary    SummaryMap `json:"tasks_summary" gorm:"type:json"`
	HourlyBreakdown HourlyMap  `json:"hourly_breakdown" gorm:"type:json"`

	WeekNumber int `json:"week_number" gorm:"index:idx_stats_employee_week"`
	Month      int `json:"month"`

	CreateTime time.Time `json:"create_time" gorm:"datetime;autoCreateTime"`
	UpdateTime time.Time `json:"update_time" gorm:"datetime;autoCreateTime;autoUpdateTime"`
}

func AddStats(tx *gorm.DB, stats *ActivityStats) error {
	return tx.Create(stats).Error
}

func UpdateStats(tx *gorm.DB, stats *ActivityStats) error {
	return tx.Save(stats).Error
}

// GetStatsForUpdate locks the (employee, date) rollup row for the duration of
// the surrounding transaction.
func GetStatsForUpdate(tx *gorm.DB, employeeId, date string) (*ActivityStats, error) {
	var stats ActivityStats
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_id = ? AND date = ?", employeeId, date).
		First(&stats).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stats, nil
}

func GetStatsByEmployeeDate(employeeId, date string) (*ActivityStats, error) {
	var stats ActivityStats
	err := DB.Where("employee_id = ? AND date = ?", employeeId, date).First(&stats).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stats, nil
}

func ListStatsRange(employeeId, startDate, endDate string) ([]ActivityStats, error) {
	var stats []ActivityStats
	q := DB.Where("employee_id = ?", employeeId)
	if startDate != "" {
		q = q.Where("date >= ?", startDate)
	}
	if endDate != "" {
		q = q.Where("date <= ?", endDate)
	}
	if err := q.Order("date").Find(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// StatsTotals is the SQL-side aggregate over a set of daily rollups.
type StatsTotals struct {
	TotalTime   int64   `json:"total_time"`
	ActiveTime  int64   `json:"active_time"`
	IdleTime    int64   `json:"idle_time"`
	AvgActivity float64 `json:"avg_activity"`
}

func SumStatsRange(employeeId, startDate, endDate string) (*StatsTotals, error) {
	var totals StatsTotals
	q := DB.Model(&ActivityStats{}).Where("employee_id = ?", employeeId)
	if startDate != "" {
		q = q.Where("date >= ?", startDate)
	}
	if endDate != "" {
		q = q.Where("date <= ?", endDate)
	}
	err := q.Select("COALESCE(SUM(total_time),0) AS total_time, COALESCE(SUM(active_time),0) AS active_time, " +
		"COALESCE(SUM(idle_time),0) AS idle_time, COALESCE(AVG(average_activity),0) AS avg_activity").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

func SumStatsWeek(employeeId string, week, year int) (*StatsTotals, error) {
	var totals StatsTotals
	err := DB.Model(&ActivityStats{}).
		Where("employee_id = ? AND week_number = ? AND YEAR(date) = ?", employeeId, week, year).
		Select("COALESCE(SUM(total_time),0) AS total_time, COALESCE(SUM(active_time),0) AS active_time, "+
			"COALESCE(SUM(idle_time),0) AS idle_time, COALESCE(AVG(average_activity),0) AS avg_activity").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}
