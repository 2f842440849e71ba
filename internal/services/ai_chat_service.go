// File: internal/services/ai_chat_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/teamspace/go-teamspace/internal/domain"
	"github.com/teamspace/go-teamspace/internal/repository/aichat"
	"github.com/teamspace/go-teamspace/internal/services/ai"
)

// SystemPrompt is the fixed instruction prepended to every assistant
// exchange.
const SystemPrompt = "You are a helpful chat assistant. Answer concisely and clearly. " +
	"You can handle technical questions, but keep your explanations easy to follow."

// DefaultDailyUsageLimit caps assistant exchanges per user per calendar day.
const DefaultDailyUsageLimit = 3

// DefaultHistoryLimit bounds conversation history reads.
const DefaultHistoryLimit = 50

// AIChatService is the rate-limited conversation gate: it accounts
// per-user daily usage against the exchange ledger and wraps the
// completion provider call.
type AIChatService struct {
	chatRepo   aichat.AiChatRepository
	provider   ai.CompletionProvider
	dailyLimit int
	logger     Logger
	now        func() time.Time
}

func NewAIChatService(chatRepo aichat.AiChatRepository, provider ai.CompletionProvider, dailyLimit int, logger Logger) *AIChatService {
	if dailyLimit <= 0 {
		dailyLimit = DefaultDailyUsageLimit
	}
	return &AIChatService{
		chatRepo:   chatRepo,
		provider:   provider,
		dailyLimit: dailyLimit,
		logger:     logger,
		now:        time.Now,
	}
}

// startOfCurrentWindow returns the service-local midnight preceding
// now. Every quota read goes through this one function so the
// remaining/exceeded/converse paths can never disagree about the
// boundary instant.
func startOfCurrentWindow(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// RemainingUsage returns how many exchanges the user has left today.
func (s *AIChatService) RemainingUsage(ctx context.Context, userID uint) (int, error) {
	count, err := s.usageCount(ctx, userID)
	if err != nil {
		return 0, err
	}
	remaining := s.dailyLimit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// IsLimitExceeded reports whether the user has exhausted today's quota.
func (s *AIChatService) IsLimitExceeded(ctx context.Context, userID uint) (bool, error) {
	count, err := s.usageCount(ctx, userID)
	if err != nil {
		return false, err
	}
	return count >= int64(s.dailyLimit), nil
}

// Converse runs one exchange: quota check, provider call, persist,
// then recompute the remaining count so the returned value reflects
// this exchange. A completed provider call is always persisted and
// counted, even if the caller has gone away.
func (s *AIChatService) Converse(ctx context.Context, userID uint, userMessage string) (response string, remainingToday int, err error) {
	if strings.TrimSpace(userMessage) == "" {
		return "", 0, domain.NewValidationError("message", "message must not be empty")
	}

	exceeded, err := s.IsLimitExceeded(ctx, userID)
	if err != nil {
		return "", 0, err
	}
	if exceeded {
		s.logger.Warn("ai chat quota exceeded", "user_id", userID, "daily_limit", s.dailyLimit)
		return "", 0, domain.ErrQuotaExceeded
	}

	reply, err := s.provider.GetCompletion(ctx, SystemPrompt, userMessage)
	if err != nil {
		s.logger.Error("completion provider call failed", "user_id", userID, "error", err)
		return "", 0, fmt.Errorf("failed to get completion: %w", err)
	}

	record := &domain.AiChatRecord{
		UserID:    userID,
		Message:   userMessage,
		Response:  reply,
		CreatedAt: s.now(),
	}
	if _, err := s.chatRepo.Create(ctx, record); err != nil {
		return "", 0, fmt.Errorf("failed to persist exchange: %w", err)
	}

	remaining, err := s.RemainingUsage(ctx, userID)
	if err != nil {
		return "", 0, err
	}

	s.logger.Info("ai chat exchange completed", "user_id", userID, "remaining_today", remaining)
	return reply, remaining, nil
}

// History returns the user's most recent exchanges, newest first.
func (s *AIChatService) History(ctx context.Context, userID uint, limit int) ([]domain.AiChatRecord, error) {
	if limit <= 0 || limit > DefaultHistoryLimit {
		limit = DefaultHistoryLimit
	}
	records, err := s.chatRepo.FindRecentByUserID(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return records, nil
}

// ===== PRIVATE HELPERS =====

func (s *AIChatService) usageCount(ctx context.Context, userID uint) (int64, error) {
	since := startOfCurrentWindow(s.now())
	count, err := s.chatRepo.CountSince(ctx, userID, since)
	if err != nil {
		return 0, fmt.Errorf("failed to count usage: %w", err)
	}
	return count, nil
}
