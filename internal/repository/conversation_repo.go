package repository

import (
	"context"
	"errors"
	"time"

	"github.com/clipbook/clipbook/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConversationRepository handles conversation and message persistence. The
// message log is append-only; ordering is by write timestamp, not a sequence
// guarantee.
type ConversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository creates a new ConversationRepository.
func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// Ensure returns the user's conversation, creating it lazily on the first
// chat interaction.
func (r *ConversationRepository) Ensure(ctx context.Context, userID string) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := r.db.WithContext(ctx).
		First(&conv, "user_id = ?", userID).Error
	if err == nil {
		return &conv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conv = domain.Conversation{
		ID:     uuid.New().String(),
		UserID: userID,
	}
	if err := r.db.WithContext(ctx).Create(&conv).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

// AppendMessage appends a message to a conversation's log.
func (r *ConversationRepository) AppendMessage(ctx context.Context, conversationID string, from domain.MessageFrom, text string) (*domain.Message, error) {
	msg := domain.Message{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		From:           from,
		Text:           text,
		CreatedAt:      time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListMessages retrieves the most recent messages of a conversation in
// chronological order.
func (r *ConversationRepository) ListMessages(ctx context.Context, conversationID string, limit int) ([]domain.Message, error) {
	var messages []domain.Message
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, err
	}
	// Reverse into chronological order
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
