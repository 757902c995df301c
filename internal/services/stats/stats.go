package stats

import (
	"context"
	"errors"
	"strings"

	"github.com/MyelinBots/knightrun-go/internal/apperr"
	"github.com/MyelinBots/knightrun-go/internal/db/repositories/user_info"
	"github.com/MyelinBots/knightrun-go/internal/services/context_manager"
	"github.com/MyelinBots/knightrun-go/internal/services/events"
)

const (
	MsgUserIDRequired = "userId is required"
	MsgUserNotFound   = "user not found"
)

type Service interface {
	// UpdateCoins sets gold_coins to max(amount, 0).
	UpdateCoins(ctx context.Context, userID string, amount int64) (int64, error)
	// UpdateFires adds amount to the streak, floored at 0.
	UpdateFires(ctx context.Context, userID string, amount int64) (int64, error)
	UpdateTreasures(ctx context.Context, userID string, amount int64) (int64, error)
	UpdateExperience(ctx context.Context, userID string, amount int64) (int64, error)
}

type Impl struct {
	repo   user_info.UserInfoRepository
	events events.Publisher
}

func New(repo user_info.UserInfoRepository, publisher events.Publisher) *Impl {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Impl{repo: repo, events: publisher}
}

func (s *Impl) UpdateCoins(ctx context.Context, userID string, amount int64) (int64, error) {
	return s.set(ctx, userID, user_info.GoldCoins, amount)
}

func (s *Impl) UpdateFires(ctx context.Context, userID string, amount int64) (int64, error) {
	userID, err := requireUserID(userID)
	if err != nil {
		return 0, err
	}
	value, err := s.repo.AddStat(ctx, userID, user_info.ConsecutiveDays, amount)
	return s.finish(ctx, userID, user_info.ConsecutiveDays, amount, value, err)
}

func (s *Impl) UpdateTreasures(ctx context.Context, userID string, amount int64) (int64, error) {
	return s.set(ctx, userID, user_info.TreasureFound, amount)
}

func (s *Impl) UpdateExperience(ctx context.Context, userID string, amount int64) (int64, error) {
	return s.set(ctx, userID, user_info.ExperiencePoints, amount)
}

func (s *Impl) set(ctx context.Context, userID string, column user_info.StatColumn, amount int64) (int64, error) {
	userID, err := requireUserID(userID)
	if err != nil {
		return 0, err
	}
	value, err := s.repo.SetStat(ctx, userID, column, amount)
	return s.finish(ctx, userID, column, amount, value, err)
}

func (s *Impl) finish(ctx context.Context, userID string, column user_info.StatColumn, amount, value int64, err error) (int64, error) {
	if err != nil {
		if errors.Is(err, user_info.ErrUserNotFound) {
			return 0, apperr.NotFound(MsgUserNotFound, err)
		}
		return 0, err
	}

	log := context_manager.GetLoggerFromContext(ctx)
	log.Debug().
		Str("user_id", userID).
		Str("column", string(column)).
		Int64("amount", amount).
		Int64("value", value).
		Msg("stat updated")

	ev := events.NewEvent(events.TypeStatUpdated, userID, map[string]interface{}{
		"column": string(column),
		"amount": amount,
		"value":  value,
	})
	if perr := s.events.Publish(ctx, ev); perr != nil {
		log.Warn().Err(perr).Str("event", ev.Type).Msg("failed to publish event")
	}
	return value, nil
}

func requireUserID(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", apperr.Validation(MsgUserIDRequired)
	}
	return userID, nil
}
