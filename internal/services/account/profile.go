package account

import (
	"time"

	"github.com/MyelinBots/knightrun-go/internal/db/repositories/user_info"
)

const (
	DateLayout = "2006-01-02"

	defaultLocation = "Melbourne"
	unknownLocation = "Unknown"
	defaultLevel    = 1
)

// Profile is what register and login hand back to the client.
type Profile struct {
	User  UserView  `json:"user"`
	Items Inventory `json:"items"`
}

type UserView struct {
	UserID            string     `json:"user_id"`
	Username          string     `json:"username"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
	Level             int64      `json:"level"`
	ExperiencePoints  int64      `json:"experience_points"`
	ClassPoints       int64      `json:"class_points"`
	GoldCoins         int64      `json:"gold_coins"`
	SilverCoins       int64      `json:"silver_coins"`
	Credits           int64      `json:"credits"`
	ConsecutiveDays   int64      `json:"consecutive_days"`
	ExerciseIntensity string     `json:"exercise_intensity"`
	TreasureFound     int64      `json:"treasure_found"`
	ExploringLocation string     `json:"exploring_location"`
	Birthday          *string    `json:"birthday"`
	Height            int        `json:"height"`
	Weight            float64    `json:"weight"`
	RegisterDate      *string    `json:"register_date"`
}

type Inventory struct {
	EquippedItems map[string]int `json:"equipped_items"`
	OwnedItems    []int          `json:"owned_items"`
}

// NewProfile renders a stored user, filling the gaps a partially populated row may have.
func NewProfile(u *user_info.UserInfo) *Profile {
	view := UserView{
		UserID:            u.UserID,
		Username:          u.Username,
		Level:             u.Level,
		ExperiencePoints:  u.ExperiencePoints,
		ClassPoints:       u.ClassPoints,
		GoldCoins:         u.GoldCoins,
		SilverCoins:       u.SilverCoins,
		Credits:           u.Credits,
		ConsecutiveDays:   u.ConsecutiveDays,
		ExerciseIntensity: u.ExerciseIntensity,
		TreasureFound:     u.TreasureFound,
		ExploringLocation: u.ExploringLocation,
		Birthday:          formatDate(u.Birthday),
		RegisterDate:      formatDate(u.RegisterDate),
	}
	if !u.CreatedAt.IsZero() {
		created := u.CreatedAt
		view.CreatedAt = &created
	}
	if view.ExploringLocation == "" {
		view.ExploringLocation = unknownLocation
	}
	if u.Height != nil {
		view.Height = *u.Height
	}
	if u.Weight != nil {
		view.Weight = *u.Weight
	}

	items := Inventory{
		EquippedItems: map[string]int{},
		OwnedItems:    []int{},
	}
	if u.Items != nil {
		if u.Items.EquippedItems != nil {
			items.EquippedItems = u.Items.EquippedItems
		}
		if u.Items.OwnedItems != nil {
			items.OwnedItems = u.Items.OwnedItems
		}
	}

	return &Profile{User: view, Items: items}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
