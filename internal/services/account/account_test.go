package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MyelinBots/knightrun-go/internal/apperr"
	"github.com/MyelinBots/knightrun-go/internal/db/repositories/user_info"
	"github.com/MyelinBots/knightrun-go/internal/db/repositories/user_info/mocks"
	"github.com/MyelinBots/knightrun-go/internal/services/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

type fakeEnsurer struct {
	calls int
	err   error
}

func (f *fakeEnsurer) EnsureSchema(context.Context) error {
	f.calls++
	return f.err
}

type recordingPublisher struct {
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.Event) error {
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

var fixedNow = func() time.Time { return time.Date(2025, 8, 1, 15, 30, 0, 0, time.UTC) }

func validInput() RegisterInput {
	return RegisterInput{
		Username:  "knight1",
		Password:  "pw123",
		Birthday:  "1995-04-12",
		Height:    "170-175",
		Weight:    "65",
		Intensity: "casual",
	}
}

func newService(t *testing.T) (*Impl, *mocks.MockUserInfoRepository, *fakeEnsurer, *recordingPublisher) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserInfoRepository(ctrl)
	ensurer := &fakeEnsurer{}
	pub := &recordingPublisher{}
	svc := New(repo, ensurer, pub).WithClock(fixedNow).WithHashCost(bcrypt.MinCost)
	return svc, repo, ensurer, pub
}

func TestRegister_Success(t *testing.T) {
	svc, repo, ensurer, pub := newService(t)
	ctx := context.Background()

	repo.EXPECT().UsernameExists(ctx, "knight1").Return(false, nil)
	repo.EXPECT().CreateWithItems(ctx, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *user_info.UserInfo, items *user_info.UserItems) error {
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("pw123")))
			assert.Equal(t, "CASUAL", u.ExerciseIntensity)
			u.UserID = "000001"
			items.UserID = u.UserID
			u.Items = items
			return nil
		})

	profile, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	assert.Equal(t, 1, ensurer.calls)
	assert.Equal(t, "000001", profile.User.UserID)
	assert.Equal(t, 170, profile.User.Height)
	assert.Equal(t, 65.0, profile.User.Weight)
	assert.Equal(t, int64(1), profile.User.Level)
	assert.Equal(t, "Melbourne", profile.User.ExploringLocation)
	require.NotNil(t, profile.User.Birthday)
	assert.Equal(t, "1995-04-12", *profile.User.Birthday)
	require.NotNil(t, profile.User.RegisterDate)
	assert.Equal(t, "2025-08-01", *profile.User.RegisterDate)
	assert.Equal(t, map[string]int{"trace": 3, "avatar": 1, "banner": 2}, profile.Items.EquippedItems)
	assert.Equal(t, []int{1, 2, 3}, profile.Items.OwnedItems)

	require.Len(t, pub.events, 1)
	assert.Equal(t, events.TypeUserRegistered, pub.events[0].Type)
	assert.Equal(t, "000001", pub.events[0].UserID)
}

func TestRegister_ExplicitRegisterDate(t *testing.T) {
	svc, repo, _, _ := newService(t)
	in := validInput()
	in.RegisterDate = "2024-12-25"

	repo.EXPECT().UsernameExists(gomock.Any(), gomock.Any()).Return(false, nil)
	repo.EXPECT().CreateWithItems(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	profile, err := svc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "2024-12-25", *profile.User.RegisterDate)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterInput)
		want   string
	}{
		{"missing username", func(in *RegisterInput) { in.Username = "" }, MsgCredentialsRequired},
		{"missing password", func(in *RegisterInput) { in.Password = "" }, MsgCredentialsRequired},
		{"missing birthday", func(in *RegisterInput) { in.Birthday = "" }, "birthday is required"},
		{"missing height", func(in *RegisterInput) { in.Height = " " }, "height is required"},
		{"missing weight", func(in *RegisterInput) { in.Weight = "" }, "weight is required"},
		{"missing intensity", func(in *RegisterInput) { in.Intensity = "" }, "intensity is required"},
		{"bad intensity", func(in *RegisterInput) { in.Intensity = "extreme" }, MsgInvalidIntensity},
		{"short height", func(in *RegisterInput) { in.Height = "79" }, MsgInvalidHeight},
		{"tall height", func(in *RegisterInput) { in.Height = "251" }, MsgInvalidHeight},
		{"text height", func(in *RegisterInput) { in.Height = "abc" }, MsgInvalidHeight},
		{"text weight", func(in *RegisterInput) { in.Weight = "heavy" }, MsgInvalidWeight},
		{"negative weight", func(in *RegisterInput) { in.Weight = "-3" }, MsgInvalidWeight},
		{"nan weight", func(in *RegisterInput) { in.Weight = "NaN" }, MsgInvalidWeight},
		{"inf weight", func(in *RegisterInput) { in.Weight = "Inf" }, MsgInvalidWeight},
		{"infinity weight", func(in *RegisterInput) { in.Weight = "-infinity" }, MsgInvalidWeight},
		{"huge weight", func(in *RegisterInput) { in.Weight = "1e9" }, MsgInvalidWeight},
		{"weight above max", func(in *RegisterInput) { in.Weight = "500.01" }, MsgInvalidWeight},
		{"bad birthday", func(in *RegisterInput) { in.Birthday = "12/04/1995" }, MsgInvalidBirthday},
		{"bad register date", func(in *RegisterInput) { in.RegisterDate = "yesterday" }, MsgInvalidRegisterDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, ensurer, _ := newService(t)
			in := validInput()
			tt.mutate(&in)

			_, err := svc.Register(context.Background(), in)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			assert.Equal(t, tt.want, err.Error())
			assert.Equal(t, 0, ensurer.calls, "validation runs before touching storage")
		})
	}
}

func TestRegister_UsernameTakenPrecheck(t *testing.T) {
	svc, repo, _, pub := newService(t)
	repo.EXPECT().UsernameExists(gomock.Any(), "knight1").Return(true, nil)

	_, err := svc.Register(context.Background(), validInput())
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, MsgUsernameTaken, err.Error())
	assert.Empty(t, pub.events)
}

func TestRegister_UsernameTakenOnInsert(t *testing.T) {
	svc, repo, _, _ := newService(t)
	repo.EXPECT().UsernameExists(gomock.Any(), gomock.Any()).Return(false, nil)
	repo.EXPECT().CreateWithItems(gomock.Any(), gomock.Any(), gomock.Any()).Return(user_info.ErrUsernameTaken)

	_, err := svc.Register(context.Background(), validInput())
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.ErrorIs(t, err, user_info.ErrUsernameTaken)
}

func TestRegister_StorageFailures(t *testing.T) {
	t.Run("schema", func(t *testing.T) {
		svc, _, ensurer, _ := newService(t)
		ensurer.err = errors.New("connection refused")

		_, err := svc.Register(context.Background(), validInput())
		assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
		assert.ErrorContains(t, err, "connection refused")
	})

	t.Run("insert", func(t *testing.T) {
		svc, repo, _, _ := newService(t)
		repo.EXPECT().UsernameExists(gomock.Any(), gomock.Any()).Return(false, nil)
		repo.EXPECT().CreateWithItems(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

		_, err := svc.Register(context.Background(), validInput())
		assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	})
}

func TestRegister_PublishFailureIsNotFatal(t *testing.T) {
	svc, repo, _, pub := newService(t)
	pub.err = errors.New("broker down")
	repo.EXPECT().UsernameExists(gomock.Any(), gomock.Any()).Return(false, nil)
	repo.EXPECT().CreateWithItems(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	_, err := svc.Register(context.Background(), validInput())
	assert.NoError(t, err)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pw123"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &user_info.UserInfo{
		UserID:       "000001",
		Username:     "knight1",
		PasswordHash: string(hash),
		Level:        3,
		GoldCoins:    40,
	}

	t.Run("success", func(t *testing.T) {
		svc, repo, _, _ := newService(t)
		repo.EXPECT().GetByUsername(gomock.Any(), "knight1").Return(stored, nil)

		profile, err := svc.Login(context.Background(), "knight1", "pw123")
		require.NoError(t, err)
		assert.Equal(t, "000001", profile.User.UserID)
		assert.Equal(t, int64(40), profile.User.GoldCoins)
		assert.Equal(t, "Unknown", profile.User.ExploringLocation)
		assert.Equal(t, 0, profile.User.Height)
		assert.Nil(t, profile.User.Birthday)
		assert.Equal(t, map[string]int{}, profile.Items.EquippedItems)
		assert.Equal(t, []int{}, profile.Items.OwnedItems)
	})

	t.Run("wrong password and unknown user look the same", func(t *testing.T) {
		svc, repo, _, _ := newService(t)
		repo.EXPECT().GetByUsername(gomock.Any(), "knight1").Return(stored, nil)
		repo.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(nil, nil)

		_, wrongPw := svc.Login(context.Background(), "knight1", "nope")
		_, unknown := svc.Login(context.Background(), "ghost", "pw123")

		assert.Equal(t, apperr.KindAuth, apperr.KindOf(wrongPw))
		assert.Equal(t, apperr.KindAuth, apperr.KindOf(unknown))
		assert.Equal(t, wrongPw.Error(), unknown.Error())
		assert.Equal(t, MsgInvalidCredentials, unknown.Error())
	})

	t.Run("missing fields", func(t *testing.T) {
		svc, _, _, _ := newService(t)
		_, err := svc.Login(context.Background(), "", "pw123")
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		_, err = svc.Login(context.Background(), "knight1", "")
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("storage error", func(t *testing.T) {
		svc, repo, _, _ := newService(t)
		repo.EXPECT().GetByUsername(gomock.Any(), "knight1").Return(nil, errors.New("timeout"))

		_, err := svc.Login(context.Background(), "knight1", "pw123")
		assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	})
}
