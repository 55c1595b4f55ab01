package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"treko/internal/dao"
	"treko/internal/model"
)

const intervalKey = "interval"

func SetIntervalToContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		intervalIdStr := c.Param("interval_id")
		if intervalIdStr == "" {
			c.Next()
			return
		}

		intervalId, err := strconv.Atoi(intervalIdStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "invalid interval_id",
			})
			return
		}

		interval, err := model.GetIntervalById(intervalId)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "internal server error",
			})
			return
		} else if interval == nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error": "interval not found",
			})
			return
		}
		c.Set(intervalKey, interval)
		c.Next()
	}
}

// handleIngestInterval stores one activity interval
// @Summary Ingest a 10-minute activity interval
// @Description Store the interval, roll it into the day's statistics and enqueue headshot verification
// @Tags ingestion
// @Accept json
// @Produce json
// @Param req body dao.IntervalRequest true "activity interval"
// @Success 200 {object} dao.IntervalSpec "stored"
// @Failure 400 {object} ErrorResponse "malformed interval"
// @Failure 500 {object} ErrorResponse "internal server error"
// @Router /api/v1/interval [post]
func (s *Server) handleIngestInterval(c *gin.Context) {
	var req dao.IntervalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, http.StatusBadRequest, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(c, http.StatusBadRequest, err)
		return
	}

	interval, err := req.ToModel()
	if err != nil {
		s.writeError(c, http.StatusBadRequest, err)
		return
	}

	err = model.DB.Transaction(func(tx *gorm.DB) error {
		return model.AddInterval(tx, interval)
	})
	if err != nil {
		s.writeError(c, http.StatusInternalServerError, err)
		return
	}

	if _, err := s.rollup.Incorporate(c.Request.Context(), interval); err != nil {
		s.writeError(c, http.StatusInternalServerError, err)
		return
	}

	published, err := s.dispatcher.Dispatch(c.Request.Context(), interval)
	if err != nil {
		// interval and stats are already committed, verification can lag
		s.logger.WithError(err).Errorf("failed to dispatch verification jobs for interval %d", interval.Id)
	} else if published > 0 {
		s.logger.Infof("dispatched %d verification jobs for interval %d", published, interval.Id)
	}

	c.JSON(http.StatusOK, dao.FromIntervalModel(interval))
}

// handleGetInterval returns one stored interval
// @Summary Get an activity interval
// @Description Fetch one interval with its verification status
// @Tags ingestion
// @Accept json
// @Produce json
// @Param interval_id path int true "interval id"
// @Success 200 {object} dao.IntervalSpec "found"
// @Failure 404 {object} ErrorResponse "interval not found"
// @Failure 500 {object} ErrorResponse "internal server error"
// @Router /api/v1/interval/{interval_id} [get]
func (s *Server) handleGetInterval(c *gin.Context) {
	interval := c.MustGet(intervalKey).(*model.ActivityInterval)
	c.JSON(http.StatusOK, dao.FromIntervalModel(interval))
}

// handleReverifyInterval re-runs headshot verification
// @Summary Re-enqueue verification for an interval
// @Description Dispatch verification jobs for the interval's still-pending headshots
// @Tags ingestion
// @Accept json
// @Produce json
// @Param interval_id path int true "interval id"
// @Success 200 {object} map[string]int "jobs published"
// @Failure 404 {object} ErrorResponse "interval not found"
// @Failure 500 {object} ErrorResponse "internal server error"
// @Router /api/v1/interval/{interval_id}/reverify [post]
func (s *Server) handleReverifyInterval(c *gin.Context) {
	interval := c.MustGet(intervalKey).(*model.ActivityInterval)

	published, err := s.dispatcher.Dispatch(c.Request.Context(), interval)
	if err != nil {
		s.writeError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"published": published})
}
