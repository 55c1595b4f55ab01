package tracking

import (
	"testing"
	"time"

	"treko/internal/model"
)

func intervalAt(ts time.Time, level int, tasks model.TaskTimeMap) *model.ActivityInterval {
	return &model.ActivityInterval{
		EmployeeId:    "emp-1",
		Timestamp:     ts,
		ActivityLevel: level,
		TasksTime:     tasks,
	}
}

func TestApplyIntervalRunningMean(t *testing.T) {
	stats := &model.ActivityStats{}
	ts := time.Date(2025, 3, 10, 9, 5, 0, 0, time.UTC)

	applyInterval(stats, intervalAt(ts, 50, nil), nil)
	if stats.AverageActivity != 50 {
		t.Errorf("expected mean 50 after first interval, got %v", stats.AverageActivity)
	}

	applyInterval(stats, intervalAt(ts.Add(10*time.Minute), 80, nil), nil)
	if stats.AverageActivity != 65 {
		t.Errorf("expected mean 65, got %v", stats.AverageActivity)
	}

	if stats.TotalTime != 1200 {
		t.Errorf("expected total 1200, got %d", stats.TotalTime)
	}
	if stats.ActiveTime != 300+480 {
		t.Errorf("expected active 780, got %d", stats.ActiveTime)
	}
	if stats.IdleTime != 300+120 {
		t.Errorf("expected idle 420, got %d", stats.IdleTime)
	}
}

func TestApplyIntervalClockBounds(t *testing.T) {
	stats := &model.ActivityStats{}
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	applyInterval(stats, intervalAt(day.Add(14*time.Hour), 10, nil), nil)
	applyInterval(stats, intervalAt(day.Add(9*time.Hour+30*time.Minute), 10, nil), nil)
	applyInterval(stats, intervalAt(day.Add(17*time.Hour+45*time.Minute), 10, nil), nil)

	if stats.FirstActivity != "09:30:00" {
		t.Errorf("expected first 09:30:00, got %s", stats.FirstActivity)
	}
	if stats.LastActivity != "17:45:00" {
		t.Errorf("expected last 17:45:00, got %s", stats.LastActivity)
	}
}

func TestApplyIntervalHourlyBreakdown(t *testing.T) {
	stats := &model.ActivityStats{}
	ts := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	applyInterval(stats, intervalAt(ts, 100, nil), nil)
	applyInterval(stats, intervalAt(ts.Add(10*time.Minute), 0, nil), nil)

	entry := stats.HourlyBreakdown["9"]
	if entry == nil {
		t.Fatal("expected hour 9 entry")
	}
	if entry.TotalTime != 1200 || entry.ActiveTime != 600 {
		t.Errorf("unexpected hour totals: %+v", entry)
	}
	if entry.Level != 50 {
		t.Errorf("expected hour level 50, got %v", entry.Level)
	}

	applyInterval(stats, intervalAt(ts.Add(time.Hour), 30, nil), nil)
	if stats.HourlyBreakdown["10"] == nil {
		t.Fatal("expected hour 10 entry")
	}
	if stats.HourlyBreakdown["9"].TotalTime != 1200 {
		t.Error("hour 9 should be untouched by hour 10 interval")
	}
}

func TestApplyIntervalTaskSummaries(t *testing.T) {
	infos := map[string]model.TaskInfo{
		"t-1": {Name: "Design review", ProjectId: "p-1", ProjectName: "Website"},
		"t-2": {Name: "Bug triage", ProjectId: "p-1", ProjectName: "Website"},
	}
	stats := &model.ActivityStats{}
	ts := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	applyInterval(stats, intervalAt(ts, 50, model.TaskTimeMap{
		"t-1": {Time: 600},
	}), infos)
	applyInterval(stats, intervalAt(ts.Add(10*time.Minute), 100, model.TaskTimeMap{
		"t-1": {Time: 200},
		"t-2": {Time: 400},
	}), infos)

	task := stats.TasksSummary["t-1"]
	if task == nil {
		t.Fatal("expected summary for t-1")
	}
	if task.Time != 800 || task.ActiveTime != 300+200 {
		t.Errorf("unexpected t-1 summary: %+v", task)
	}
	if task.Name != "Design review" || task.ProjectName != "Website" {
		t.Errorf("summary should carry task metadata: %+v", task)
	}

	project := stats.ProjectsSummary["p-1"]
	if project == nil {
		t.Fatal("expected summary for p-1")
	}
	if project.Time != 1200 || project.ActiveTime != 300+200+400 {
		t.Errorf("unexpected project summary: %+v", project)
	}
}

func TestApplyIntervalUnknownTaskSkipsSummary(t *testing.T) {
	stats := &model.ActivityStats{}
	ts := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	applyInterval(stats, intervalAt(ts, 50, model.TaskTimeMap{
		"ghost": {Time: 600},
	}), map[string]model.TaskInfo{})

	if len(stats.TasksSummary) != 0 {
		t.Errorf("unknown task should not appear in summaries: %v", stats.TasksSummary)
	}
	// the day totals still count the interval
	if stats.TotalTime != 600 || stats.ActiveTime != 300 {
		t.Errorf("totals should include interval regardless: total=%d active=%d", stats.TotalTime, stats.ActiveTime)
	}
}
