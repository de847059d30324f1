package storage

import (
	"log/slog"
	"os"
	"sync"
	"time"

	"projecttrack/internal/config"
	"projecttrack/internal/util/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

var (
	once sync.Once
	db   *gorm.DB
	log  *slog.Logger = logger.GetLogger()
)

func GetDb() *gorm.DB {
	once.Do(func() {
		if db != nil {
			// a test database was injected before first use
			return
		}

		env := config.GetEnv()

		gormConfig := &gorm.Config{
			Logger: gorm_logger.Default.LogMode(gorm_logger.Silent),
		}

		connection, err := gorm.Open(postgres.Open(env.DatabaseDsn), gormConfig)
		if err != nil {
			log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}

		sqlDb, err := connection.DB()
		if err != nil {
			log.Error("Failed to get database handle", "error", err)
			os.Exit(1)
		}

		sqlDb.SetMaxOpenConns(25)
		sqlDb.SetMaxIdleConns(5)
		sqlDb.SetConnMaxLifetime(time.Hour)

		db = connection
	})

	return db
}

// SetDatabaseForTests replaces the singleton with a test database.
// Must be called before the first GetDb call of the process.
func SetDatabaseForTests(testDb *gorm.DB) {
	db = testDb
	once.Do(func() {})
}
