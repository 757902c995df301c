package user_info

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type UserInfo struct {
	UserID       string `gorm:"column:user_id;type:varchar(16);primaryKey" json:"user_id"`
	Username     string `gorm:"column:username;type:text;not null;uniqueIndex:user_info_username_key" json:"username"`
	PasswordHash string `gorm:"column:password_hash;type:text;not null" json:"-"`

	Birthday          *time.Time `gorm:"column:birthday;type:date" json:"birthday"`
	Height            *int       `gorm:"column:height;type:integer" json:"height"`
	Weight            *float64   `gorm:"column:weight;type:numeric(6,2)" json:"weight"`
	ExerciseIntensity string     `gorm:"column:exercise_intensity;type:text" json:"exercise_intensity"`

	Level            int64 `gorm:"column:level;type:integer;not null;default:1" json:"level"`
	ExperiencePoints int64 `gorm:"column:experience_points;type:integer;not null;default:0" json:"experience_points"`
	ClassPoints      int64 `gorm:"column:class_points;type:integer;not null;default:0" json:"class_points"`
	GoldCoins        int64 `gorm:"column:gold_coins;type:integer;not null;default:0" json:"gold_coins"`
	SilverCoins      int64 `gorm:"column:silver_coins;type:integer;not null;default:0" json:"silver_coins"`
	Credits          int64 `gorm:"column:credits;type:integer;not null;default:0" json:"credits"`
	ConsecutiveDays  int64 `gorm:"column:consecutive_days;type:integer;not null;default:0" json:"consecutive_days"`
	TreasureFound    int64 `gorm:"column:treasure_found;type:integer;not null;default:0" json:"treasure_found"`

	ExploringLocation string     `gorm:"column:exploring_location;type:text" json:"exploring_location"`
	RegisterDate      *time.Time `gorm:"column:register_date;type:date" json:"register_date"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	// Items is nil when the user has no user_items row.
	Items *UserItems `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (UserInfo) TableName() string {
	return "user_info"
}

type UserItems struct {
	UserID        string        `gorm:"column:user_id;type:varchar(16);primaryKey" json:"-"`
	EquippedItems EquippedItems `gorm:"column:equipped_items;type:jsonb;not null" json:"equipped_items"`
	OwnedItems    OwnedItems    `gorm:"column:owned_items;type:jsonb;not null" json:"owned_items"`
}

func (UserItems) TableName() string {
	return "user_items"
}

// DefaultLoadout is what every new account starts with.
func DefaultLoadout() *UserItems {
	return &UserItems{
		EquippedItems: EquippedItems{"trace": 3, "avatar": 1, "banner": 2},
		OwnedItems:    OwnedItems{1, 2, 3},
	}
}

type UserIDCounter struct {
	Name     string `gorm:"column:name;type:varchar(32);primaryKey"`
	SeqValue int64  `gorm:"column:seq_value;type:bigint;not null;default:0"`
}

func (UserIDCounter) TableName() string {
	return "user_id_counter"
}

// EquippedItems maps an equipment slot to an item id.
type EquippedItems map[string]int

func (e EquippedItems) Value() (driver.Value, error) {
	if e == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]int(e))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (e *EquippedItems) Scan(src interface{}) error {
	m := map[string]int{}
	if err := scanJSON(src, &m); err != nil {
		return fmt.Errorf("equipped_items: %w", err)
	}
	*e = m
	return nil
}

// OwnedItems is the ordered list of owned item ids.
type OwnedItems []int

func (o OwnedItems) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]int(o))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (o *OwnedItems) Scan(src interface{}) error {
	s := []int{}
	if err := scanJSON(src, &s); err != nil {
		return fmt.Errorf("owned_items: %w", err)
	}
	*o = s
	return nil
}

func scanJSON(src interface{}, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported type %T", src)
	}
}
