package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/navneetha-rajan/mindmate/internal/http/response"
	"github.com/navneetha-rajan/mindmate/internal/services"
)

type ConversationHandler struct {
	conversations services.ConversationService
}

func NewConversationHandler(conversations services.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversations: conversations}
}

// POST /api/conversation/start
func (h *ConversationHandler) Start(c *gin.Context) {
	var req struct {
		ConversationType string `json:"conversation_type"`
		Theme            string `json:"theme"`
	}
	if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	res, err := h.conversations.Start(c.Request.Context(), req.ConversationType, req.Theme)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// POST /api/conversation/message
func (h *ConversationHandler) Message(c *gin.Context) {
	var req struct {
		SessionID        string `json:"session_id"`
		Message          string `json:"message"`
		ConversationType string `json:"conversation_type"`
		Theme            string `json:"theme"`
	}
	if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	res, err := h.conversations.Message(c.Request.Context(), services.MessageInput{
		SessionID:        req.SessionID,
		Message:          req.Message,
		ConversationType: req.ConversationType,
		Theme:            req.Theme,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// POST /api/conversation/end
func (h *ConversationHandler) End(c *gin.Context) {
	var req struct {
		SessionID string `json:"session_id"`
	}
	if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	res, err := h.conversations.End(c.Request.Context(), req.SessionID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// GET /api/conversation/history
func (h *ConversationHandler) History(c *gin.Context) {
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	rows, err := h.conversations.History(c.Request.Context(), c.Query("session_id"), limit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /api/conversation/suggestions
func (h *ConversationHandler) Suggestions(c *gin.Context) {
	res, err := h.conversations.Suggestions(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// GET /api/conversation/sessions
func (h *ConversationHandler) Sessions(c *gin.Context) {
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	sessions, err := h.conversations.Sessions(c.Request.Context(), limit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"active_sessions": sessions, "total_sessions": len(sessions)})
}

// GET /api/conversation/types
func (h *ConversationHandler) Types(c *gin.Context) {
	response.RespondOK(c, gin.H{"conversation_types": h.conversations.Types()})
}

// GET /api/conversation/themes
func (h *ConversationHandler) Themes(c *gin.Context) {
	response.RespondOK(c, gin.H{"themes": h.conversations.Themes()})
}
