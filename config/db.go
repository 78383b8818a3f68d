package config

import (
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ConnectDB opens the configured database. TranslateError is on so
// duplicate-key violations surface as gorm.ErrDuplicatedKey on both drivers.
func ConnectDB(cfg Config) *gorm.DB {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		dialector = mysql.Open(cfg.DSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		panic("Failed to connect to database: " + err.Error())
	}
	return db
}
