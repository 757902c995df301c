package user_info

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/MyelinBots/knightrun-go/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=user_info_repository.go -destination=mocks/mock_user_info_repository.go -package=mocks

var (
	ErrUsernameTaken  = errors.New("user_info: username already exists")
	ErrUserNotFound   = errors.New("user_info: user not found")
	ErrCounterMissing = errors.New("user_info: user id counter row missing, run migrations")
	ErrUnknownStat    = errors.New("user_info: unknown stat column")
)

const userIDCounterName = "user_id"

// MaxStatValue is the largest value the INTEGER stat columns hold.
const MaxStatValue int64 = math.MaxInt32

// StatColumn names a numeric column a client may mutate.
type StatColumn string

const (
	GoldCoins        StatColumn = "gold_coins"
	ConsecutiveDays  StatColumn = "consecutive_days"
	TreasureFound    StatColumn = "treasure_found"
	ExperiencePoints StatColumn = "experience_points"
)

func (c StatColumn) valid() bool {
	switch c {
	case GoldCoins, ConsecutiveDays, TreasureFound, ExperiencePoints:
		return true
	}
	return false
}

/*
REPOSITORY INTERFACE
*/

type UserInfoRepository interface {
	// GetByUsername returns nil, nil when no user matches. Items is preloaded when present.
	GetByUsername(ctx context.Context, username string) (*UserInfo, error)
	UsernameExists(ctx context.Context, username string) (bool, error)

	// CreateWithItems assigns user.UserID and inserts the user and its items in one transaction.
	CreateWithItems(ctx context.Context, user *UserInfo, items *UserItems) error

	// SetStat stores value clamped to [0, MaxStatValue] and returns the stored value.
	SetStat(ctx context.Context, userID string, column StatColumn, value int64) (int64, error)
	// AddStat adds delta, clamps the result to [0, MaxStatValue] and returns the stored value.
	AddStat(ctx context.Context, userID string, column StatColumn, delta int64) (int64, error)
}

/*
REPOSITORY IMPL
*/

type UserInfoRepositoryImpl struct {
	db      *db.DB
	timeout time.Duration
}

func NewUserInfoRepository(database *db.DB, timeout time.Duration) UserInfoRepository {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &UserInfoRepositoryImpl{db: database, timeout: timeout}
}

// FormatUserID renders the zero padded public id, 1 -> "000001".
func FormatUserID(n int64) string {
	return fmt.Sprintf("%06d", n)
}

/*
READS
*/

func (r *UserInfoRepositoryImpl) GetByUsername(ctx context.Context, username string) (*UserInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var u UserInfo
	err := r.db.DB.WithContext(ctx).
		Preload("Items").
		Where("username = ?", username).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("user_info: get by username: %w", err)
	}
	return &u, nil
}

func (r *UserInfoRepositoryImpl) UsernameExists(ctx context.Context, username string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var count int64
	if err := r.db.DB.WithContext(ctx).
		Model(&UserInfo{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("user_info: username exists: %w", err)
	}
	return count > 0, nil
}

/*
CREATE
*/

func (r *UserInfoRepositoryImpl) CreateWithItems(ctx context.Context, user *UserInfo, items *UserItems) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextUserID(tx)
		if err != nil {
			return err
		}
		user.UserID = id

		if err := tx.Omit(clause.Associations).Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrUsernameTaken
			}
			return fmt.Errorf("user_info: insert user: %w", err)
		}

		if items == nil {
			return nil
		}
		items.UserID = id
		if err := tx.Create(items).Error; err != nil {
			return fmt.Errorf("user_info: insert items: %w", err)
		}
		user.Items = items
		return nil
	})
	if err != nil {
		user.UserID = ""
		user.Items = nil
		return err
	}
	return nil
}

// nextUserID bumps the counter row. The row lock taken by the UPDATE serializes concurrent
// registrations until the surrounding transaction ends; a rollback gives the number back.
func nextUserID(tx *gorm.DB) (string, error) {
	res := tx.Model(&UserIDCounter{}).
		Where("name = ?", userIDCounterName).
		UpdateColumn("seq_value", gorm.Expr("seq_value + ?", 1))
	if res.Error != nil {
		return "", fmt.Errorf("user_info: bump id counter: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return "", ErrCounterMissing
	}

	var counter UserIDCounter
	if err := tx.Where("name = ?", userIDCounterName).First(&counter).Error; err != nil {
		return "", fmt.Errorf("user_info: read id counter: %w", err)
	}
	return FormatUserID(counter.SeqValue), nil
}

/*
STAT HELPERS
*/

func (r *UserInfoRepositoryImpl) SetStat(ctx context.Context, userID string, column StatColumn, value int64) (int64, error) {
	if !column.valid() {
		return 0, ErrUnknownStat
	}
	if value > MaxStatValue {
		value = MaxStatValue
	}
	return r.updateStat(ctx, userID, column, gorm.Expr("CASE WHEN ? < 0 THEN 0 ELSE ? END", value, value))
}

func (r *UserInfoRepositoryImpl) AddStat(ctx context.Context, userID string, column StatColumn, delta int64) (int64, error) {
	if !column.valid() {
		return 0, ErrUnknownStat
	}
	// column is one of the StatColumn constants, never caller text.
	// The sum is computed as BIGINT so it saturates instead of overflowing the INTEGER column.
	sum := fmt.Sprintf("CAST(%s AS BIGINT) + ?", column)
	expr := fmt.Sprintf("CASE WHEN %s < 0 THEN 0 WHEN %s > ? THEN ? ELSE %s END", sum, sum, sum)
	return r.updateStat(ctx, userID, column, gorm.Expr(expr, delta, delta, MaxStatValue, MaxStatValue, delta))
}

func (r *UserInfoRepositoryImpl) updateStat(ctx context.Context, userID string, column StatColumn, expr clause.Expr) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var stored int64
	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&UserInfo{}).
			Where("user_id = ?", userID).
			UpdateColumn(string(column), expr)
		if res.Error != nil {
			return fmt.Errorf("user_info: update %s: %w", column, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}

		row := tx.Model(&UserInfo{}).
			Select(string(column)).
			Where("user_id = ?", userID).
			Row()
		if err := row.Scan(&stored); err != nil {
			return fmt.Errorf("user_info: read %s: %w", column, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return stored, nil
}
