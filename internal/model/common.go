package model

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"treko/internal/config"
)

var DB *gorm.DB

var Redis *redis.Client

func InitDB(dbConfig config.DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dbConfig.DSN), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(dbConfig.MaxIdleConns)
	sqlDB.SetMaxOpenConns(dbConfig.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Second * time.Duration(dbConfig.MaxLifetime))

	DB = db

	return db, nil
}

func InitRedis(conf config.RedisConfig) *redis.Client {
	Redis = redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})
	return Redis
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Project{},
		&Task{},
		&TrackingSession{},
		&ActiveAppUsage{},
		&TaskUsage{},
		&ScreenshotLog{},
		&HeadshotLog{},
		&ActivityInterval{},
		&ActivityStats{},
	)
}

func InsertTestData(db *gorm.DB) error {
	return nil
}
