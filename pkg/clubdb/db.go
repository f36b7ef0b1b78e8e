package clubdb

import (
	"fmt"
	"time"

	"github.com/apex/log"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/config"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules/medal"
	"github.com/hashicorp/go-uuid"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverMySQL  = "mysql"
	DriverSqlite = "sqlite"
)

var Genders = []string{"Male", "Female", "Mixed"}

func MakeDSNFromConfig() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.GetKey(config.KeyDBUsername),
		config.GetKey(config.KeyDBPassword),
		config.GetKey(config.KeyDBHost),
		config.GetKeyWithDefault(config.KeyDBPort, "3306"),
		config.GetKey(config.KeyDBDatabase))
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}
}

func openDialector() gorm.Dialector {
	if config.GetKeyWithDefault(config.KeyDBDriver, DriverMySQL) == DriverSqlite {
		return sqlite.Open(config.GetKeyWithDefault(config.KeySqlitePath, "club.db"))
	}

	return mysql.Open(MakeDSNFromConfig())
}

const maxDBRetries = 5

// MustConnectToDB will attempt to connect to the database maxDBRetries times. If it isn't successful
// after that number of retries then it will call log.Fatalf(), which will cause the server to exit.
// Between retry attempts it will sleep for 3 seconds.
func MustConnectToDB() *gorm.DB {
	var (
		err error
		db  *gorm.DB
	)

	retryCount := 1
	for {
		db, err = gorm.Open(openDialector(), gormConfig())
		switch {
		case err == nil:
			return db
		case retryCount >= maxDBRetries:
			log.Fatalf("Failed to open db (driver %s): %s", config.GetKeyWithDefault(config.KeyDBDriver, DriverMySQL), err)
		default:
			log.Warnf("Unable to open db, attempt %d of %d: %s", retryCount, maxDBRetries, err)
			retryCount++
			time.Sleep(3 * time.Second)
		}
	}
}

// OpenSqlite opens a sqlite database at dsn with the same settings as the
// server connection. Tests pass a shared in-memory dsn.
func OpenSqlite(dsn string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(dsn), gormConfig())
}

// Migrate creates or updates every table the service uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&clubmodel.User{},
		&clubmodel.Club{},
		&clubmodel.UserClub{},
		&clubmodel.Season{},
		&clubmodel.Discipline{},
		&clubmodel.AgeGroup{},
		&clubmodel.Gender{},
		&clubmodel.Medal{},
		&clubmodel.Athlete{},
		&clubmodel.Performance{},
		&clubmodel.ProofUpload{},
	)
}

// SeedCatalogs inserts the fixed medal and gender rows. Rows already present are
// left alone so it is safe to run on every migrate.
func SeedCatalogs(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, m := range medal.AllMedalsByPosition() {
			var count int64
			if err := tx.Model(&clubmodel.Medal{}).Where("position = ?", m.Position).Count(&count).Error; err != nil {
				return err
			}

			if count != 0 {
				continue
			}

			id, err := uuid.GenerateUUID()
			if err != nil {
				return err
			}

			if err := tx.Create(&clubmodel.Medal{ID: id, Position: m.Position, Name: m.Name}).Error; err != nil {
				return err
			}
		}

		for _, name := range Genders {
			var count int64
			if err := tx.Model(&clubmodel.Gender{}).Where("name = ?", name).Count(&count).Error; err != nil {
				return err
			}

			if count != 0 {
				continue
			}

			id, err := uuid.GenerateUUID()
			if err != nil {
				return err
			}

			if err := tx.Create(&clubmodel.Gender{ID: id, Name: name}).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
