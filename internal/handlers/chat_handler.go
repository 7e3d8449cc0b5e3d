package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/NailSitePro/salon-platform/internal/chatbot"
	"github.com/NailSitePro/salon-platform/internal/httperr"
	"github.com/NailSitePro/salon-platform/internal/httpresp"
	"github.com/NailSitePro/salon-platform/internal/middleware"
)

// ======================================================
// HANDLER
// ======================================================

type ChatHandler struct {
	chat *chatbot.Service
}

func NewChatHandler(s *chatbot.Service) *ChatHandler {
	return &ChatHandler{chat: s}
}

type ChatRequest struct {
	SessionID string            `json:"session_id"`
	Contents  []chatbot.Content `json:"contents" binding:"required"`
}

// ======================================================
// CHAT
// ======================================================

func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_argument", "'contents' must be a non-empty list of messages.")
		return
	}

	in := chatbot.ChatInput{
		SessionID: req.SessionID,
		Contents:  req.Contents,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if v, ok := c.Get(middleware.ContextUserID); ok {
		if id, ok := v.(uint); ok {
			in.UserID = &id
		}
	}

	res, err := h.chat.Chat(c.Request.Context(), in)
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "chat_failed", "The assistant is unavailable right now.")
		}
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// CONVERSATIONS (admin)
// ======================================================

func (h *ChatHandler) ListConversations(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	convs, total, err := h.chat.ListConversations(c.Request.Context(), limit, offset)
	if err != nil {
		httperr.Internal(c, "failed_to_list_conversations", "Could not list conversations.")
		return
	}

	httpresp.List(c, convs, total)
}
