package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/peak10/examprep-backend/internal/http/response"
	"github.com/peak10/examprep-backend/internal/platform/logger"
	"github.com/peak10/examprep-backend/internal/services"
)

type RoundHandler struct {
	log *logger.Logger
	svc services.RoundService
}

func NewRoundHandler(log *logger.Logger, svc services.RoundService) *RoundHandler {
	return &RoundHandler{
		log: log.With("handler", "RoundHandler"),
		svc: svc,
	}
}

// GET /api/concepts/:id/revision-rounds
func (h *RoundHandler) ListRevisionRounds(c *gin.Context) {
	conceptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_concept_id", err)
		return
	}
	rounds, err := h.svc.GetRevisionRounds(c.Request.Context(), nil, conceptID)
	if err != nil {
		if errors.Is(err, services.ErrNoUserInContext) {
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", err)
			return
		}
		h.log.Error("ListRevisionRounds failed", "error", err, "concept_id", conceptID)
		response.RespondError(c, http.StatusInternalServerError, "load_rounds_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"revision_rounds": rounds})
}

// GET /api/concepts/:id/test-rounds
func (h *RoundHandler) ListTestRounds(c *gin.Context) {
	conceptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_concept_id", err)
		return
	}
	rounds, err := h.svc.GetTestRounds(c.Request.Context(), nil, conceptID)
	if err != nil {
		if errors.Is(err, services.ErrNoUserInContext) {
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", err)
			return
		}
		h.log.Error("ListTestRounds failed", "error", err, "concept_id", conceptID)
		response.RespondError(c, http.StatusInternalServerError, "load_rounds_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"test_rounds": rounds})
}
