package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/navneetha-rajan/mindmate/internal/http/response"
	"github.com/navneetha-rajan/mindmate/internal/services"
)

const (
	defaultJournalLimit = 10
	summaryPeriod       = "last_7_days"
)

type JournalHandler struct {
	journal services.JournalService
}

func NewJournalHandler(journal services.JournalService) *JournalHandler {
	return &JournalHandler{journal: journal}
}

type contentRequest struct {
	Content string `json:"content"`
}

// POST /api/journal
func (h *JournalHandler) Create(c *gin.Context) {
	var req contentRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	entry, err := h.journal.Create(c.Request.Context(), req.Content)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, entry)
}

// GET /api/journal
func (h *JournalHandler) List(c *gin.Context) {
	f, err := parseFilter(c, defaultJournalLimit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	entries, err := h.journal.List(c.Request.Context(), f)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, entries)
}

// GET /api/journal/:id
func (h *JournalHandler) Get(c *gin.Context) {
	id, err := parseID(c, "journal entry")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	entry, err := h.journal.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, entry)
}

// DELETE /api/journal/:id
func (h *JournalHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "journal entry")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if err := h.journal.Delete(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondMessage(c, "Journal entry deleted successfully")
}

// GET /api/journal/analysis/:id
func (h *JournalHandler) Analysis(c *gin.Context) {
	id, err := parseID(c, "journal entry")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	analysis, err := h.journal.Reanalyze(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, analysis)
}

// GET /api/journal/weekly-summary
func (h *JournalHandler) WeeklySummary(c *gin.Context) {
	summary, err := h.journal.WeeklySummary(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"summary":       summary,
		"total_entries": summary.TotalEntries,
		"period":        summaryPeriod,
	})
}

// GET /api/journal/themes
func (h *JournalHandler) Themes(c *gin.Context) {
	themes, err := h.journal.Themes(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, themes)
}

// POST /api/journal/analyze-text takes the text as a JSON body or a content query parameter.
func (h *JournalHandler) AnalyzeText(c *gin.Context) {
	var req contentRequest
	if q, ok := c.GetQuery("content"); ok {
		req.Content = q
	} else if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	analysis, err := h.journal.AnalyzeText(c.Request.Context(), req.Content)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"analysis": analysis, "content": strings.TrimSpace(req.Content)})
}
