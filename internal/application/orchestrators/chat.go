package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"kinetic/internal/domain/chat"
	"kinetic/internal/domain/record"
)

// ChatInput carries one chatbot question.
type ChatInput struct {
	UserID  string // empty for anonymous visitors
	Message string
}

// ChatDeps holds dependencies for Chat.
type ChatDeps struct {
	Records RecordStore
}

// ErrEmptyMessage rejects blank chatbot input.
var ErrEmptyMessage = errors.New("message cannot be empty")

// ExecuteChat answers a question from the knowledge base. Exchanges from
// signed-in users are appended to the aggregate's chat history; anonymous
// questions are answered but not stored.
// POST: Returns the matched answer or the fallback
func ExecuteChat(ctx context.Context, input ChatInput, deps ChatDeps) (chat.Message, error) {
	text := strings.TrimSpace(input.Message)
	if text == "" {
		return chat.Message{}, ErrEmptyMessage
	}

	answer, matched := chat.FindAnswer(text)
	msg := chat.Message{
		ID:        uuid.New().String(),
		UserID:    input.UserID,
		Message:   text,
		Response:  answer,
		Timestamp: time.Now(),
	}

	if input.UserID != "" {
		err := deps.Records.Update(ctx, func(agg *record.Aggregate) error {
			agg.ChatMessages = append(agg.ChatMessages, msg)
			return nil
		})
		if err != nil {
			return chat.Message{}, err
		}
	}

	slog.Info("chat_event", "event", "answered", "user", input.UserID, "matched", matched)
	return msg, nil
}
