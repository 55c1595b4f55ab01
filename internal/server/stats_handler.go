package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"treko/internal/dao"
	"treko/internal/model"
	"treko/pkg/str"
)

func secondsToHours(seconds int64) float64 {
	return float64(seconds) / 3600
}

// handleEmployeeStatsToday returns today's stats row
// @Summary Get an employee's statistics for today
// @Tags stats
// @Accept json
// @Produce json
// @Param employee_id path string true "employee id"
// @Success 200 {object} dao.StatsSpec "stats"
// @Failure 404 {object} ErrorResponse "no stats today"
// @Failure 500 {object} ErrorResponse "internal server error"
// @Router /api/v1/employee/{employee_id}/stats/today [get]
func (s *Server) handleEmployeeStatsToday(c *gin.Context) {
	employeeId := c.Param("employee_id")
	date := time.Now().Format("2006-01-02")

	stats, err := model.GetStatsByEmployeeDate(employeeId, date)
	if err != nil {
		s.writeError(c, http.StatusInternalServerError, err)
		return
	}
	if stats == nil {
		s.writeError(c, http.StatusNotFound, errors.New("no statistics for today"))
		return
	}
	c.JSON(http.StatusOK, dao.FromStatsModel(stats))
}

// handleEmployeeStatsSummary aggregates a date range
// @Summary Summarize an employee's statistics over a date range
// @Tags stats
// @Accept json
// @Produce json
// @Param employee_id path string true "employee id"
// @Param start_date query string true "range start, YYYY-MM-DD"
// @Param end_date query string true "range end, YYYY-MM-DD"
// @Success 200 {object} dao.SummaryResponse "summary"
// @Failure 400 {object} ErrorResponse "bad date range"
// @Failure 500 {object} ErrorResponse "internal server error"
// @Router /api/v1/employee/{employee_id}/stats/summary [get]
func (s *Server) handleEmployeeStatsSummary(c *gin.Context) {
	employeeId := c.Param("employee_id")
	var q dao.RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.writeError(c, http.StatusBadRequest, err)
		return
	}

	totals, err := model.SumStatsRange(employeeId, q.StartDate, q.EndDate)
	if err != nil {
		s.writeError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, dao.SummaryResponse{
		EmployeeId:      employeeId,
		TotalHours:      secondsToHours(totals.TotalTime),
		ActiveHours:     secondsToHours(totals.ActiveTime),
		IdleHours:       secondsToHours(totals.IdleTime),
		AverageActivity: totals.AvgActivity,
	})
}

// handleEmployeeStatsWeekly aggregates one ISO week
// @Summary Summarize an employee's statistics for one week
// @Tags stats
// @Accept json
// @Produce json
// @Param employee_id path string true "employee id"
// @Param week query int false "ISO week number, defaults to the current week"
// @Param year query int false "year, defaults to the current year"
// @Success 200 {object} dao.WeeklyResponse "weekly summary"
// @Failure 500 {object} ErrorResponse "internal server error"
// @Router /api/v1/employee/{employee_id}/stats/weekly [get]
func (s *Server) handleEmployeeStatsWeekly(c *gin.Context) {
	employeeId := c.Param("employee_id")

	nowYear, nowWeek := time.Now().ISOWeek()
	week := int(str.MustParseInt(c.Query("week")))
	if week <= 0 {
		week = nowWeek
	}
	year := int(str.MustParseInt(c.Query("year")))
	if year <= 0 {
		year = nowYear
	}

	totals, err := model.SumStatsWeek(employeeId, week, year)
	if err != nil {
		s.writeError(c, http.StatusInternalServerError, err)
		return
	}

	var productivity float64
	if totals.TotalTime > 0 {
		productivity = float64(totals.ActiveTime) / float64(totals.TotalTime) * 100
	}

	c.JSON(http.StatusOK, dao.WeeklyResponse{
		EmployeeId:      employeeId,
		Week:            week,
		Year:            year,
		TotalHours:      secondsToHours(totals.TotalTime),
		ActiveHours:     secondsToHours(totals.ActiveTime),
		IdleHours:       secondsToHours(totals.IdleTime),
		AverageActivity: totals.AvgActivity,
		Productivity:    productivity,
	})
}

// handleEmployeeStatsDaily lists per-day stats over a range
// @Summary List an employee's per-day statistics over a date range
// @Tags stats
// @Accept json
// @Produce json
// @Param employee_id path string true "employee id"
// @Param start_date query string true "range start, YYYY-MM-DD"
// @Param end_date query string true "range end, YYYY-MM-DD"
// @Success 200 {object} dao.DailyBreakdownResponse "daily breakdown"
// @Failure 400 {object} ErrorResponse "bad date range"
// @Failure 500 {object} ErrorResponse "internal server error"
// @Router /api/v1/employee/{employee_id}/stats/daily [get]
func (s *Server) handleEmployeeStatsDaily(c *gin.Context) {
	employeeId := c.Param("employee_id")
	var q dao.RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.writeError(c, http.StatusBadRequest, err)
		return
	}

	statsList, err := model.ListStatsRange(employeeId, q.StartDate, q.EndDate)
	if err != nil {
		s.writeError(c, http.StatusInternalServerError, err)
		return
	}

	resp := dao.DailyBreakdownResponse{
		EmployeeId: employeeId,
		Stats:      make([]dao.DailyStat, 0, len(statsList)),
	}
	for _, st := range statsList {
		resp.Stats = append(resp.Stats, dao.DailyStat{
			Date:            st.Date,
			TotalHours:      secondsToHours(int64(st.TotalTime)),
			ActiveHours:     secondsToHours(int64(st.ActiveTime)),
			IdleHours:       secondsToHours(int64(st.IdleTime)),
			AverageActivity: st.AverageActivity,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// handleTeamStats aggregates a set of employees over a date range
// @Summary Summarize team statistics over a date range
// @Tags stats
// @Accept json
// @Produce json
// @Param employee_ids query string true "comma separated employee ids"
// @Param start_date query string true "range start, YYYY-MM-DD"
// @Param end_date query string true "range end, YYYY-MM-DD"
// @Success 200 {object} dao.TeamSummaryResponse "team summary"
// @Failure 400 {object} ErrorResponse "bad request"
// @Failure 500 {object} ErrorResponse "internal server error"
// @Router /api/v1/stats/team [get]
func (s *Server) handleTeamStats(c *gin.Context) {
	idsParam := c.Query("employee_ids")
	if idsParam == "" {
		s.writeError(c, http.StatusBadRequest, errors.New("employee_ids is required"))
		return
	}
	var q dao.RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.writeError(c, http.StatusBadRequest, err)
		return
	}

	resp := dao.TeamSummaryResponse{TeamStats: []dao.TeamMemberStat{}}
	for _, employeeId := range strings.Split(idsParam, ",") {
		employeeId = strings.TrimSpace(employeeId)
		if employeeId == "" {
			continue
		}
		resp.TeamSize++

		totals, err := model.SumStatsRange(employeeId, q.StartDate, q.EndDate)
		if err != nil {
			s.writeError(c, http.StatusInternalServerError, err)
			return
		}
		if totals.TotalTime > 0 {
			resp.ActiveMembers++
		}

		var productivity float64
		if totals.TotalTime > 0 {
			productivity = float64(totals.ActiveTime) / float64(totals.TotalTime) * 100
		}
		resp.TeamStats = append(resp.TeamStats, dao.TeamMemberStat{
			EmployeeId:      employeeId,
			TotalHours:      secondsToHours(totals.TotalTime),
			ActiveHours:     secondsToHours(totals.ActiveTime),
			IdleHours:       secondsToHours(totals.IdleTime),
			AverageActivity: totals.AvgActivity,
			Productivity:    productivity,
		})
	}
	c.JSON(http.StatusOK, resp)
}
