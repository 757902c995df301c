package account

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/MyelinBots/knightrun-go/internal/apperr"
	"github.com/MyelinBots/knightrun-go/internal/db/repositories/user_info"
	"github.com/MyelinBots/knightrun-go/internal/services/context_manager"
	"github.com/MyelinBots/knightrun-go/internal/services/events"
	"golang.org/x/crypto/bcrypt"
)

const (
	MsgCredentialsRequired = "Username and password are required"
	MsgUsernameTaken       = "Username already exists. Please choose a cooler username :)"
	MsgInvalidCredentials  = "Invalid username or password"
	MsgInvalidIntensity    = "invalid exercise intensity"
	MsgInvalidHeight       = "invalid height range"
	MsgInvalidWeight       = "invalid weight"
	MsgInvalidBirthday     = "invalid birthday"
	MsgInvalidRegisterDate = "invalid registerDate"
)

// MaxWeight keeps weight well inside the NUMERIC(6,2) column.
const MaxWeight = 500

var intensities = map[string]bool{
	"CASUAL": true,
	"WEAK":   true,
	"MEDIUM": true,
	"STRONG": true,
}

// SchemaEnsurer makes sure the tables exist before the first write.
type SchemaEnsurer interface {
	EnsureSchema(ctx context.Context) error
}

// RegisterInput holds the raw request fields. Height and weight arrive as text
// whether the client sent a JSON string or a number.
type RegisterInput struct {
	Username     string
	Password     string
	Birthday     string
	Height       string
	Weight       string
	Intensity    string
	RegisterDate string
}

type Service interface {
	Register(ctx context.Context, in RegisterInput) (*Profile, error)
	Login(ctx context.Context, username, password string) (*Profile, error)
}

type Impl struct {
	repo     user_info.UserInfoRepository
	schema   SchemaEnsurer
	events   events.Publisher
	now      func() time.Time
	hashCost int
}

func New(repo user_info.UserInfoRepository, schema SchemaEnsurer, publisher events.Publisher) *Impl {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Impl{
		repo:     repo,
		schema:   schema,
		events:   publisher,
		now:      time.Now,
		hashCost: bcrypt.DefaultCost,
	}
}

// WithClock swaps the clock used for the default register date.
func (s *Impl) WithClock(now func() time.Time) *Impl {
	s.now = now
	return s
}

// WithHashCost lowers the bcrypt cost, tests use bcrypt.MinCost.
func (s *Impl) WithHashCost(cost int) *Impl {
	s.hashCost = cost
	return s
}

/*
REGISTER
*/

func (s *Impl) Register(ctx context.Context, in RegisterInput) (*Profile, error) {
	user, err := s.validateRegistration(in)
	if err != nil {
		return nil, err
	}

	if s.schema != nil {
		if err := s.schema.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
	}

	exists, err := s.repo.UsernameExists(ctx, user.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict(MsgUsernameTaken, user_info.ErrUsernameTaken)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)

	if err := s.repo.CreateWithItems(ctx, user, user_info.DefaultLoadout()); err != nil {
		if errors.Is(err, user_info.ErrUsernameTaken) {
			return nil, apperr.Conflict(MsgUsernameTaken, err)
		}
		return nil, err
	}

	log := context_manager.GetLoggerFromContext(ctx)
	log.Info().Str("user_id", user.UserID).Str("username", user.Username).Msg("user registered")

	s.publish(ctx, events.NewEvent(events.TypeUserRegistered, user.UserID, map[string]interface{}{
		"username": user.Username,
	}))

	return NewProfile(user), nil
}

func (s *Impl) validateRegistration(in RegisterInput) (*user_info.UserInfo, error) {
	if in.Username == "" || in.Password == "" {
		return nil, apperr.Validation(MsgCredentialsRequired)
	}
	for _, f := range []struct{ name, value string }{
		{"birthday", in.Birthday},
		{"height", in.Height},
		{"weight", in.Weight},
		{"intensity", in.Intensity},
	} {
		if strings.TrimSpace(f.value) == "" {
			return nil, apperr.Validation(f.name + " is required")
		}
	}

	intensity := strings.ToUpper(strings.TrimSpace(in.Intensity))
	if !intensities[intensity] {
		return nil, apperr.Validation(MsgInvalidIntensity)
	}

	height, ok := ParseLowerHeight(in.Height)
	if !ok {
		return nil, apperr.Validation(MsgInvalidHeight)
	}

	weight, err := strconv.ParseFloat(strings.TrimSpace(in.Weight), 64)
	if err != nil || math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 || weight > MaxWeight {
		return nil, apperr.Validation(MsgInvalidWeight)
	}

	birthday, err := time.Parse(DateLayout, strings.TrimSpace(in.Birthday))
	if err != nil {
		return nil, apperr.Validation(MsgInvalidBirthday)
	}

	registerDate := truncateToDate(s.now())
	if rd := strings.TrimSpace(in.RegisterDate); rd != "" {
		registerDate, err = time.Parse(DateLayout, rd)
		if err != nil {
			return nil, apperr.Validation(MsgInvalidRegisterDate)
		}
	}

	return &user_info.UserInfo{
		Username:          in.Username,
		Birthday:          &birthday,
		Height:            &height,
		Weight:            &weight,
		ExerciseIntensity: intensity,
		Level:             defaultLevel,
		ExploringLocation: defaultLocation,
		RegisterDate:      &registerDate,
	}, nil
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

/*
LOGIN
*/

func (s *Impl) Login(ctx context.Context, username, password string) (*Profile, error) {
	if username == "" || password == "" {
		return nil, apperr.Validation(MsgCredentialsRequired)
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.Auth(MsgInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Auth(MsgInvalidCredentials)
	}

	return NewProfile(user), nil
}

func (s *Impl) publish(ctx context.Context, ev events.Event) {
	if err := s.events.Publish(ctx, ev); err != nil {
		log := context_manager.GetLoggerFromContext(ctx)
		log.Warn().Err(err).Str("event", ev.Type).Msg("failed to publish event")
	}
}
