package testutil

import (
	"strings"
	"testing"

	"github.com/MyelinBots/knightrun-go/internal/db"
	"github.com/MyelinBots/knightrun-go/internal/db/repositories/user_info"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenInMemoryDB opens a private in-memory SQLite database with the user tables and a seeded
// id counter. One connection is used so transactions queue instead of failing with SQLITE_LOCKED.
func OpenInMemoryDB(t *testing.T, name string) *db.DB {
	t.Helper()

	name = strings.NewReplacer("/", "_", " ", "_").Replace(name)
	gormDB, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared&_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("test db pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := gormDB.AutoMigrate(&user_info.UserInfo{}, &user_info.UserItems{}, &user_info.UserIDCounter{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	if err := gormDB.Create(&user_info.UserIDCounter{Name: "user_id"}).Error; err != nil {
		t.Fatalf("seed id counter: %v", err)
	}

	return db.Wrap(gormDB)
}

// SetUserIDCounter moves the id counter, as if value ids had already been issued.
func SetUserIDCounter(t *testing.T, d *db.DB, value int64) {
	t.Helper()
	if err := d.DB.Model(&user_info.UserIDCounter{}).
		Where("name = ?", "user_id").
		Update("seq_value", value).Error; err != nil {
		t.Fatalf("set id counter: %v", err)
	}
}
