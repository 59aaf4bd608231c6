package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/peak10/examprep-backend/internal/http/response"
	"github.com/peak10/examprep-backend/internal/platform/logger"
	"github.com/peak10/examprep-backend/internal/services"
)

type ChapterHandler struct {
	log *logger.Logger
	svc services.ChapterService
}

func NewChapterHandler(log *logger.Logger, svc services.ChapterService) *ChapterHandler {
	return &ChapterHandler{
		log: log.With("handler", "ChapterHandler"),
		svc: svc,
	}
}

type createChapterRequest struct {
	Name    string `json:"name" binding:"required"`
	Subject string `json:"subject"`
}

// POST /api/chapters
func (h *ChapterHandler) CreateChapter(c *gin.Context) {
	var req createChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	chapter, err := h.svc.CreateChapter(c.Request.Context(), nil, req.Name, req.Subject)
	if err != nil {
		h.log.Error("CreateChapter failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "create_chapter_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"chapter": chapter})
}

// GET /api/chapters
func (h *ChapterHandler) ListChapters(c *gin.Context) {
	chapters, err := h.svc.ListChapters(c.Request.Context(), nil)
	if err != nil {
		h.log.Error("ListChapters failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "load_chapters_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"chapters": chapters})
}

// GET /api/chapters/:id/concepts
func (h *ChapterHandler) ListChapterConcepts(c *gin.Context) {
	chapterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_chapter_id", err)
		return
	}
	concepts, err := h.svc.ListChapterConcepts(c.Request.Context(), nil, chapterID)
	if err != nil {
		h.log.Error("ListChapterConcepts failed", "error", err, "chapter_id", chapterID)
		response.RespondError(c, http.StatusInternalServerError, "load_concepts_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"concepts": concepts})
}

// GET /api/chapters/:id/diagnostic-questions
func (h *ChapterHandler) ListDiagnosticQuestions(c *gin.Context) {
	chapterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_chapter_id", err)
		return
	}
	rows, err := h.svc.ListDiagnosticQuestions(c.Request.Context(), nil, chapterID)
	if err != nil {
		h.log.Error("ListDiagnosticQuestions failed", "error", err, "chapter_id", chapterID)
		response.RespondError(c, http.StatusInternalServerError, "load_diagnostic_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"diagnostic_questions": rows})
}
