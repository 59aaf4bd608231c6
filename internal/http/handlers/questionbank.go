package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/peak10/examprep-backend/internal/http/response"
	"github.com/peak10/examprep-backend/internal/platform/logger"
	"github.com/peak10/examprep-backend/internal/services"
)

// QuestionBankHandler exposes the ingestion workflow. Workflow failures are
// logged and answered as a 200 failed report: the admin frontend treats an
// upload as best-effort and never sees a transport-level error for them.
type QuestionBankHandler struct {
	log *logger.Logger
	svc services.QuestionBankService
}

func NewQuestionBankHandler(log *logger.Logger, svc services.QuestionBankService) *QuestionBankHandler {
	return &QuestionBankHandler{
		log: log.With("handler", "QuestionBankHandler"),
		svc: svc,
	}
}

type prepareQuestionsRequest struct {
	QuestionBankFile  string `json:"question_bank_file" binding:"required"`
	IsInventQuestions bool   `json:"is_invent_questions"`
}

// POST /api/chapters/:id/questions/prepare
func (h *QuestionBankHandler) PrepareQuestions(c *gin.Context) {
	chapterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_chapter_id", err)
		return
	}
	var req prepareQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	report, err := h.svc.PrepareQuestions(c.Request.Context(), chapterID, req.QuestionBankFile, req.IsInventQuestions)
	if err != nil {
		h.log.Error("PrepareQuestions failed", "error", err, "chapter_id", chapterID)
	}
	response.RespondOK(c, gin.H{"report": report})
}

type uploadConceptsRequest struct {
	ConceptualMap []services.ConceptUpload `json:"conceptual_map" binding:"required"`
}

// POST /api/chapters/:id/concepts
func (h *QuestionBankHandler) UploadChapterConcepts(c *gin.Context) {
	chapterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_chapter_id", err)
		return
	}
	var req uploadConceptsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	report, err := h.svc.UploadChapterConcepts(c.Request.Context(), chapterID, req.ConceptualMap)
	if err != nil {
		h.log.Error("UploadChapterConcepts failed", "error", err, "chapter_id", chapterID)
	}
	response.RespondOK(c, gin.H{"report": report})
}

// POST /api/chapters/:id/diagnostic-questions
func (h *QuestionBankHandler) GenerateDiagnosticQuestions(c *gin.Context) {
	chapterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_chapter_id", err)
		return
	}

	report, err := h.svc.GenerateDiagnosticQuestions(c.Request.Context(), chapterID)
	if err != nil {
		h.log.Error("GenerateDiagnosticQuestions failed", "error", err, "chapter_id", chapterID)
	}
	response.RespondOK(c, gin.H{"report": report})
}

type identifyConceptsRequest struct {
	QuestionBankFile string `json:"question_bank_file" binding:"required"`
}

// POST /api/question-bank/identify-concepts
func (h *QuestionBankHandler) IdentifyConcepts(c *gin.Context) {
	var req identifyConceptsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	candidates, err := h.svc.IdentifyConcepts(c.Request.Context(), req.QuestionBankFile)
	if err != nil {
		h.log.Error("IdentifyConcepts failed", "error", err)
		response.RespondOK(c, gin.H{"concepts": nil})
		return
	}
	response.RespondOK(c, gin.H{"concepts": candidates})
}
