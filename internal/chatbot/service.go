package chatbot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/NailSitePro/salon-platform/internal/httperr"
	"github.com/NailSitePro/salon-platform/internal/models"
)

const knowledgeLimit = 5

type Service struct {
	db     *gorm.DB
	client *Client
}

func NewService(db *gorm.DB, client *Client) *Service {
	return &Service{db: db, client: client}
}

type ChatInput struct {
	SessionID string
	Contents  []Content

	UserID    *uint
	IPAddress string
	UserAgent string
}

type ChatResult struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

func (s *Service) Chat(ctx context.Context, in ChatInput) (*ChatResult, error) {
	if len(in.Contents) == 0 {
		return nil, httperr.ErrBusiness("invalid_argument")
	}

	sessionID := in.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	conv, err := s.getOrCreateConversation(ctx, sessionID, in)
	if err != nil {
		return nil, err
	}

	question := lastUserText(in.Contents)

	// Matching knowledge-base entries are prepended as grounding context.
	contents := in.Contents
	if kb := s.knowledgeContext(ctx, question); kb != "" {
		contents = append([]Content{{
			Role:  "user",
			Parts: []Part{{Text: kb}},
		}}, contents...)
	}

	reply, err := s.client.Generate(ctx, contents)
	if err != nil {
		return nil, err
	}

	s.persistExchange(ctx, conv.ID, question, reply)

	return &ChatResult{
		SessionID: sessionID,
		Reply:     reply,
	}, nil
}

func (s *Service) getOrCreateConversation(
	ctx context.Context,
	sessionID string,
	in ChatInput,
) (*models.ChatConversation, error) {

	conv := models.ChatConversation{
		SessionID: sessionID,
		UserID:    in.UserID,
		IPAddress: in.IPAddress,
		UserAgent: in.UserAgent,
	}

	err := s.db.WithContext(ctx).
		Where(models.ChatConversation{SessionID: sessionID}).
		FirstOrCreate(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (s *Service) knowledgeContext(ctx context.Context, question string) string {
	if question == "" {
		return ""
	}

	term := "%" + strings.ToLower(question) + "%"

	var entries []models.BusinessKnowledge
	if err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("LOWER(question) LIKE ? OR LOWER(answer) LIKE ?", term, term).
		Limit(knowledgeLimit).
		Find(&entries).Error; err != nil || len(entries) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Answer using this business knowledge when relevant:\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "Q: %s\nA: %s\n", e.Question, e.Answer)
	}
	return b.String()
}

// persistExchange stores the question/answer pair. Chat history is
// best-effort; a failed write must not lose the reply.
func (s *Service) persistExchange(ctx context.Context, convID uint, question, reply string) {
	if question != "" {
		s.db.WithContext(ctx).Create(&models.ChatMessage{
			ConversationID: convID,
			Role:           "user",
			Content:        question,
		})
	}
	s.db.WithContext(ctx).Create(&models.ChatMessage{
		ConversationID: convID,
		Role:           "model",
		Content:        reply,
	})
}

func lastUserText(contents []Content) string {
	for i := len(contents) - 1; i >= 0; i-- {
		if contents[i].Role != "user" && contents[i].Role != "" {
			continue
		}
		if len(contents[i].Parts) > 0 {
			return contents[i].Parts[0].Text
		}
	}
	return ""
}

// ListConversations returns conversations with their messages, newest
// first. Admin surface only.
func (s *Service) ListConversations(ctx context.Context, limit, offset int) ([]models.ChatConversation, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.ChatConversation{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var convs []models.ChatConversation
	err := s.db.WithContext(ctx).
		Preload("Messages").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&convs).Error
	return convs, total, err
}

// PruneEmptyOlderThan removes conversations that never produced a message.
func (s *Service) PruneEmptyOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where(
			"created_at < ? AND NOT EXISTS (SELECT 1 FROM chat_messages WHERE chat_messages.conversation_id = chat_conversations.id)",
			cutoff,
		).
		Delete(&models.ChatConversation{})
	return res.RowsAffected, res.Error
}
