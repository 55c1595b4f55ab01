package tracking

import (
	"context"
	"math"
	"strconv"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"treko/internal/model"
	"treko/pkg/log"
)

// TaskDirectory resolves task ids to their name and owning project.
type TaskDirectory interface {
	Lookup(ids []string) (map[string]model.TaskInfo, error)
}

type modelTaskDirectory struct{}

func (modelTaskDirectory) Lookup(ids []string) (map[string]model.TaskInfo, error) {
	return model.GetTaskInfos(ids)
}

// NewTaskDirectory returns a TaskDirectory backed by the tasks and projects
// tables.
func NewTaskDirectory() TaskDirectory {
	return modelTaskDirectory{}
}

// Rollup folds stored activity intervals into per-day statistics rows.
type Rollup struct {
	db     *gorm.DB
	tasks  TaskDirectory
	logger *logrus.Entry
}

func NewRollup(db *gorm.DB, tasks TaskDirectory) *Rollup {
	return &Rollup{
		db:     db,
		tasks:  tasks,
		logger: log.NewLogger().WithField("component", "rollup"),
	}
}

// Incorporate folds one interval into the employee's stats row for the
// interval's date, creating the row on first sight. The interval is assumed
// to already be persisted; Incorporate only touches activity_stats.
func (r *Rollup) Incorporate(ctx context.Context, interval *model.ActivityInterval) (*model.ActivityStats, error) {
	taskIds := make([]string, 0, len(interval.TasksTime))
	for id := range interval.TasksTime {
		taskIds = append(taskIds, id)
	}
	infos, err := r.tasks.Lookup(taskIds)
	if err != nil {
		return nil, err
	}

	date := interval.Timestamp.Format("2006-01-02")
	var stats *model.ActivityStats
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		stats, err = model.GetStatsForUpdate(tx, interval.EmployeeId, date)
		if err != nil {
			return err
		}
		if stats == nil {
			_, week := interval.Timestamp.ISOWeek()
			stats = &model.ActivityStats{
				EmployeeId: interval.EmployeeId,
				Date:       date,
				WeekNumber: week,
				Month:      int(interval.Timestamp.Month()),
			}
			if err := model.AddStats(tx, stats); err != nil {
				return err
			}
		}

		applyInterval(stats, interval, infos)

		return model.UpdateStats(tx, stats)
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// applyInterval mutates stats in place with the contribution of one
// fixed-width interval. It is order-dependent only in average_activity, which
// tracks a running mean weighted by the interval count.
func applyInterval(stats *model.ActivityStats, interval *model.ActivityInterval, infos map[string]model.TaskInfo) {
	active := ActiveShare(IntervalSeconds, interval.ActivityLevel)

	stats.TotalTime += IntervalSeconds
	stats.ActiveTime += active
	stats.IdleTime += IntervalSeconds - active

	// mean of per-interval levels, weighted by how many intervals preceded
	n := stats.TotalTime / IntervalSeconds
	if n > 0 {
		stats.AverageActivity = (stats.AverageActivity*float64(n-1) + float64(interval.ActivityLevel)) / float64(n)
	}

	clock := interval.Timestamp.Format("15:04:05")
	if stats.FirstActivity == "" || clock < stats.FirstActivity {
		stats.FirstActivity = clock
	}
	if stats.LastActivity == "" || clock > stats.LastActivity {
		stats.LastActivity = clock
	}

	applyTaskSummaries(stats, interval, infos)
	applyHourly(stats, interval, active)
}

func applyTaskSummaries(stats *model.ActivityStats, interval *model.ActivityInterval, infos map[string]model.TaskInfo) {
	if stats.TasksSummary == nil {
		stats.TasksSummary = model.SummaryMap{}
	}
	if stats.ProjectsSummary == nil {
		stats.ProjectsSummary = model.SummaryMap{}
	}
	for taskId, entry := range interval.TasksTime {
		info, ok := infos[taskId]
		if !ok {
			// unknown tasks still count toward totals, just not summaries
			continue
		}
		activeShare := ActiveShare(entry.Time, interval.ActivityLevel)

		task := stats.TasksSummary[taskId]
		if task == nil {
			task = &model.SummaryEntry{
				Name:        info.Name,
				ProjectId:   info.ProjectId,
				ProjectName: info.ProjectName,
			}
			stats.TasksSummary[taskId] = task
		}
		task.Time += entry.Time
		task.ActiveTime += activeShare

		if info.ProjectId == "" {
			continue
		}
		project := stats.ProjectsSummary[info.ProjectId]
		if project == nil {
			project = &model.SummaryEntry{Name: info.ProjectName}
			stats.ProjectsSummary[info.ProjectId] = project
		}
		project.Time += entry.Time
		project.ActiveTime += activeShare
	}
}

func applyHourly(stats *model.ActivityStats, interval *model.ActivityInterval, active int) {
	if stats.HourlyBreakdown == nil {
		stats.HourlyBreakdown = model.HourlyMap{}
	}
	hour := strconv.Itoa(interval.Timestamp.Hour())
	entry := stats.HourlyBreakdown[hour]
	if entry == nil {
		entry = &model.HourlyEntry{}
		stats.HourlyBreakdown[hour] = entry
	}
	entry.TotalTime += IntervalSeconds
	entry.ActiveTime += active
	entry.Level = math.Round(float64(entry.ActiveTime)/float64(entry.TotalTime)*100*100) / 100
}
