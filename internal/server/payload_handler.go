package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"treko/internal/dao"
	"treko/internal/tracking"
)

// handleIngestPayload absorbs one tracking payload chunk
// @Summary Ingest a tracking payload chunk
// @Description Merge one desktop agent payload chunk into the employee's daily session
// @Tags ingestion
// @Accept json
// @Produce json
// @Param req body dao.TrackingPayload true "payload chunk"
// @Success 200 {object} dao.PayloadResponse "absorbed"
// @Failure 400 {object} ErrorResponse "malformed payload"
// @Failure 500 {object} ErrorResponse "internal server error"
// @Router /api/v1/payload [post]
func (s *Server) handleIngestPayload(c *gin.Context) {
	var payload dao.TrackingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		s.writeError(c, http.StatusBadRequest, err)
		return
	}

	session, duplicate, err := s.ingestor.Absorb(c.Request.Context(), &payload)
	if err != nil {
		if errors.Is(err, tracking.ErrMissingEmployee) {
			s.writeError(c, http.StatusBadRequest, err)
			return
		}
		s.writeError(c, http.StatusInternalServerError, err)
		return
	}

	resp := dao.PayloadResponse{Message: "ok", Duplicate: duplicate}
	if session != nil {
		resp.SessionId = session.Id
	}
	c.JSON(http.StatusOK, resp)
}
