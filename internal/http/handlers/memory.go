package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/navneetha-rajan/mindmate/internal/http/response"
	"github.com/navneetha-rajan/mindmate/internal/services"
)

type MemoryHandler struct {
	memories services.MemoryService
}

func NewMemoryHandler(memories services.MemoryService) *MemoryHandler {
	return &MemoryHandler{memories: memories}
}

// GET /api/memories?type=emotional|cognitive|behavioral
func (h *MemoryHandler) List(c *gin.Context) {
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	entries, err := h.memories.List(c.Request.Context(), c.Query("type"), limit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, entries)
}
