package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"treko/internal/dao"
	"treko/internal/model"
	"treko/pkg/str"
)

const sessionKey = "session"

func SetSessionToContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionIdStr := c.Param("session_id")
		if sessionIdStr == "" {
			c.Next()
			return
		}

		sessionId, err := strconv.Atoi(sessionIdStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "invalid session_id",
			})
			return
		}

		session, err := model.GetSessionById(sessionId)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "internal server error",
			})
			return
		} else if session == nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error": "session not found",
			})
			return
		}
		c.Set(sessionKey, session)
		c.Next()
	}
}

// handleEmployeeSessionToday returns today's session
// @Summary Get an employee's session for today
// @Tags sessions
// @Accept json
// @Produce json
// @Param employee_id path string true "employee id"
// @Success 200 {object} dao.SessionSpec "found"
// @Failure 404 {object} ErrorResponse "no session today"
// @Failure 500 {object} ErrorResponse "internal server error"
// @Router /api/v1/employee/{employee_id}/session/today [get]
func (s *Server) handleEmployeeSessionToday(c *gin.Context) {
	employeeId := c.Param("employee_id")
	date := time.Now().Format("2006-01-02")

	session, err := model.GetSessionByEmployeeDate(employeeId, date)
	if err != nil {
		s.writeError(c, http.StatusInternalServerError, err)
		return
	}
	spec, err := dao.FromSessionModel(session)
	if err != nil {
		s.writeError(c, http.StatusNotFound, err)
		return
	}
	c.JSON(http.StatusOK, spec)
}

// handleEmployeeSessions lists an employee's sessions
// @Summary List an employee's sessions, newest first
// @Tags sessions
// @Accept json
// @Produce json
// @Param employee_id path string true "employee id"
// @Param start query int false "offset" default(0)
// @Param limit query int false "page size" default(20)
// @Success 200 {object} dao.ListSessionsResponse "sessions"
// @Failure 500 {object} ErrorResponse "internal server error"
// @Router /api/v1/employee/{employee_id}/sessions [get]
func (s *Server) handleEmployeeSessions(c *gin.Context) {
	employeeId := c.Param("employee_id")
	start := int(str.MustParseInt(c.DefaultQuery("start", "0")))
	limit := int(str.MustParseInt(c.DefaultQuery("limit", "20")))
	if limit <= 0 {
		limit = 20
	}

	sessions, total, err := model.ListSessionsByEmployee(employeeId, start, limit)
	if err != nil {
		s.writeError(c, http.StatusInternalServerError, err)
		return
	}

	resp := dao.ListSessionsResponse{
		Total:    total,
		Sessions: make([]dao.SessionSpec, 0, len(sessions)),
	}
	for i := range sessions {
		spec, err := dao.FromSessionModel(&sessions[i])
		if err != nil {
			s.writeError(c, http.StatusInternalServerError, err)
			return
		}
		resp.Sessions = append(resp.Sessions, *spec)
	}
	c.JSON(http.StatusOK, resp)
}

// handleEmployeeTimeline returns the day's stored intervals
// @Summary Get an employee's interval timeline for a date
// @Tags sessions
// @Accept json
// @Produce json
// @Param employee_id path string true "employee id"
// @Param date query string false "date, YYYY-MM-DD, defaults to today"
// @Success 200 {array} dao.IntervalSpec "intervals"
// @Failure 500 {object} ErrorResponse "internal server error"
// @Router /api/v1/employee/{employee_id}/timeline [get]
func (s *Server) handleEmployeeTimeline(c *gin.Context) {
	employeeId := c.Param("employee_id")
	date := c.DefaultQuery("date", time.Now().Format("2006-01-02"))

	intervals, err := model.ListIntervalsByEmployeeDate(employeeId, date)
	if err != nil {
		s.writeError(c, http.StatusInternalServerError, err)
		return
	}

	specs := make([]*dao.IntervalSpec, 0, len(intervals))
	for i := range intervals {
		specs = append(specs, dao.FromIntervalModel(&intervals[i]))
	}
	c.JSON(http.StatusOK, specs)
}

// handleSessionApps lists per-app usage rows
// @Summary List app usage rows of a session
// @Tags sessions
// @Accept json
// @Produce json
// @Param session_id path int true "session id"
// @Success 200 {array} dao.AppUsageSpec "usage rows"
// @Failure 404 {object} ErrorResponse "session not found"
// @Failure 500 {object} ErrorResponse "internal server error"
// @Router /api/v1/session/{session_id}/apps [get]
func (s *Server) handleSessionApps(c *gin.Context) {
	session := c.MustGet(sessionKey).(*model.TrackingSession)

	usages, err := model.ListAppUsagesBySession(session.Id)
	if err != nil {
		s.writeError(c, http.StatusInternalServerError, err)
		return
	}

	specs := make([]dao.AppUsageSpec, 0, len(usages))
	for i := range usages {
		specs = append(specs, dao.FromAppUsageModel(&usages[i]))
	}
	c.JSON(http.StatusOK, specs)
}

// handleSessionTasks lists per-task usage rows
// @Summary List task usage rows of a session
// @Tags sessions
// @Accept json
// @Produce json
// @Param session_id path int true "session id"
// @Success 200 {array} dao.TaskUsageSpec "usage rows"
// @Failure 404 {object} ErrorResponse "session not found"
// @Failure 500 {object} ErrorResponse "internal server error"
// @Router /api/v1/session/{session_id}/tasks [get]
func (s *Server) handleSessionTasks(c *gin.Context) {
	session := c.MustGet(sessionKey).(*model.TrackingSession)

	usages, err := model.ListTaskUsagesBySession(session.Id)
	if err != nil {
		s.writeError(c, http.StatusInternalServerError, err)
		return
	}

	specs := make([]dao.TaskUsageSpec, 0, len(usages))
	for i := range usages {
		specs = append(specs, dao.FromTaskUsageModel(&usages[i]))
	}
	c.JSON(http.StatusOK, specs)
}

// handleSessionScreenshots lists a session's screenshots
// @Summary List screenshots captured during a session
// @Tags sessions
// @Accept json
// @Produce json
// @Param session_id path int true "session id"
// @Success 200 {array} dao.MediaLogSpec "screenshots"
// @Failure 404 {object} ErrorResponse "session not found"
// @Failure 500 {object} ErrorResponse "internal server error"
// @Router /api/v1/session/{session_id}/screenshots [get]
func (s *Server) handleSessionScreenshots(c *gin.Context) {
	session := c.MustGet(sessionKey).(*model.TrackingSession)

	logs, err := model.ListScreenshotLogsBySession(session.Id)
	if err != nil {
		s.writeError(c, http.StatusInternalServerError, err)
		return
	}

	specs := make([]dao.MediaLogSpec, 0, len(logs))
	for _, l := range logs {
		specs = append(specs, dao.MediaLogSpec{
			Id:          l.Id,
			Url:         l.Url,
			WindowTitle: l.WindowTitle,
			Timestamp:   l.Timestamp.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, specs)
}

// handleSessionHeadshots lists a session's headshots
// @Summary List headshots captured during a session
// @Tags sessions
// @Accept json
// @Produce json
// @Param session_id path int true "session id"
// @Success 200 {array} dao.MediaLogSpec "headshots"
// @Failure 404 {object} ErrorResponse "session not found"
// @Failure 500 {object} ErrorResponse "internal server error"
// @Router /api/v1/session/{session_id}/headshots [get]
func (s *Server) handleSessionHeadshots(c *gin.Context) {
	session := c.MustGet(sessionKey).(*model.TrackingSession)

	logs, err := model.ListHeadshotLogsBySession(session.Id)
	if err != nil {
		s.writeError(c, http.StatusInternalServerError, err)
		return
	}

	specs := make([]dao.MediaLogSpec, 0, len(logs))
	for _, l := range logs {
		specs = append(specs, dao.MediaLogSpec{
			Id:        l.Id,
			Url:       l.Url,
			Status:    string(l.Status),
			Timestamp: l.Timestamp.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, specs)
}
