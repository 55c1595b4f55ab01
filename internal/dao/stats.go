package dao

import (
	"treko/internal/model"
)

type SummarySpec struct {
	Name        string `json:"name"`
	ProjectId   string `json:"projectId,omitempty"`
	ProjectName string `json:"projectName,omitempty"`
	Time        int    `json:"time"`
	ActiveTime  int    `json:"activeTime"`
}

type HourlySpec struct {
	TotalTime  int     `json:"totalTime"`
	ActiveTime int     `json:"activeTime"`
	Level      float64 `json:"level"`
}

type StatsSpec struct {
	Id              int                    `json:"id"`
	EmployeeId      string                 `json:"employeeId"`
	Date            string                 `json:"date"`
	TotalTime       int                    `json:"totalTime"`
	ActiveTime      int                    `json:"activeTime"`
	IdleTime        int                    `json:"idleTime"`
	AverageActivity float64                `json:"averageActivity"`
	FirstActivity   string                 `json:"firstActivity,omitempty"`
	LastActivity    string                 `json:"lastActivity,omitempty"`
	ProjectsSummary map[string]SummarySpec `json:"projectsSummary"`
	TasksSummary    map[string]SummarySpec `json:"tasksSummary"`
	HourlyBreakdown map[string]HourlySpec  `json:"hourlyBreakdown"`
	WeekNumber      int                    `json:"weekNumber"`
	Month           int                    `json:"month"`
}

func FromStatsModel(stats *model.ActivityStats) *StatsSpec {
	spec := &StatsSpec{
		Id:              stats.Id,
		EmployeeId:      stats.EmployeeId,
		Date:            stats.Date,
		TotalTime:       stats.TotalTime,
		ActiveTime:      stats.ActiveTime,
		IdleTime:        stats.IdleTime,
		AverageActivity: stats.AverageActivity,
		FirstActivity:   stats.FirstActivity,
		LastActivity:    stats.LastActivity,
		ProjectsSummary: make(map[string]SummarySpec, len(stats.ProjectsSummary)),
		TasksSummary:    make(map[string]SummarySpec, len(stats.TasksSummary)),
		HourlyBreakdown: make(map[string]HourlySpec, len(stats.HourlyBreakdown)),
		WeekNumber:      stats.WeekNumber,
		Month:           stats.Month,
	}
	for id, entry := range stats.ProjectsSummary {
		spec.ProjectsSummary[id] = SummarySpec{
			Name:       entry.Name,
			Time:       entry.Time,
			ActiveTime: entry.ActiveTime,
		}
	}
	for id, entry := range stats.TasksSummary {
		spec.TasksSummary[id] = SummarySpec{
			Name:        entry.Name,
			ProjectId:   entry.ProjectId,
			ProjectName: entry.ProjectName,
			Time:        entry.Time,
			ActiveTime:  entry.ActiveTime,
		}
	}
	for hour, entry := range stats.HourlyBreakdown {
		spec.HourlyBreakdown[hour] = HourlySpec{
			TotalTime:  entry.TotalTime,
			ActiveTime: entry.ActiveTime,
			Level:      entry.Level,
		}
	}
	return spec
}

// RangeQuery is the inclusive date range shared by the aggregate endpoints.
type RangeQuery struct {
	StartDate string `form:"start_date" binding:"required,date"`
	EndDate   string `form:"end_date" binding:"required,date"`
}

// SummaryResponse is the hours-denominated aggregate over a date range.
type SummaryResponse struct {
	EmployeeId      string  `json:"employeeId"`
	TotalHours      float64 `json:"totalHours"`
	ActiveHours     float64 `json:"activeHours"`
	IdleHours       float64 `json:"idleHours"`
	AverageActivity float64 `json:"averageActivity"`
}

type WeeklyResponse struct {
	EmployeeId      string  `json:"employeeId"`
	Week            int     `json:"week"`
	Year            int     `json:"year"`
	TotalHours      float64 `json:"totalHours"`
	ActiveHours     float64 `json:"activeHours"`
	IdleHours       float64 `json:"idleHours"`
	AverageActivity float64 `json:"averageActivity"`
	Productivity    float64 `json:"productivity"`
}

type DailyStat struct {
	Date            string  `json:"date"`
	TotalHours      float64 `json:"totalHours"`
	ActiveHours     float64 `json:"activeHours"`
	IdleHours       float64 `json:"idleHours"`
	AverageActivity float64 `json:"averageActivity"`
}

type DailyBreakdownResponse struct {
	EmployeeId string      `json:"employeeId"`
	Stats      []DailyStat `json:"stats"`
}

type TeamMemberStat struct {
	EmployeeId      string  `json:"employeeId"`
	TotalHours      float64 `json:"totalHours"`
	ActiveHours     float64 `json:"activeHours"`
	IdleHours       float64 `json:"idleHours"`
	AverageActivity float64 `json:"averageActivity"`
	Productivity    float64 `json:"productivity"`
}

type TeamSummaryResponse struct {
	TeamSize      int              `json:"teamSize"`
	ActiveMembers int              `json:"activeMembers"`
	TeamStats     []TeamMemberStat `json:"teamStats"`
}

// TaskActivityResponse is the recent-activity window of one task.
type TaskActivityResponse struct {
	TaskId      string  `json:"taskId"`
	TaskName    string  `json:"taskName,omitempty"`
	Days        int     `json:"days"`
	TotalTime   int     `json:"totalTime"`
	ActiveTime  int     `json:"activeTime"`
	AvgActivity float64 `json:"avgActivity"`
}
