package database

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"settrack/pkg/config"
	"settrack/pkg/model"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("记录不存在")

// DB Postgres数据库连接
type DB struct {
	db *gorm.DB
}

// New 创建新的数据库连接
func New(cfg *config.Config) (*DB, error) {
	pgCfg := cfg.Database.Postgres

	// 构建连接字符串
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		pgCfg.Host, pgCfg.Port, pgCfg.User, pgCfg.Password, pgCfg.DBName, pgCfg.SSLMode,
	)

	// 连接数据库
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 设置连接池参数
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层连接失败: %w", err)
	}
	maxOpen, maxIdle, maxLifetime := poolSettings(cfg)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(maxLifetime)

	// 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("测试数据库连接失败: %w", err)
	}

	return &DB{db: db}, nil
}

// poolSettings 读取连接池配置，未配置的项取默认值
func poolSettings(cfg *config.Config) (maxOpen, maxIdle int, maxLifetime time.Duration) {
	pgCfg := cfg.Database.Postgres

	maxOpen = pgCfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 25
	}
	maxIdle = pgCfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 5
	}
	maxLifetime = pgCfg.ConnMaxLifetime
	if maxLifetime <= 0 {
		maxLifetime = 5 * time.Minute
	}
	return maxOpen, maxIdle, maxLifetime
}

// AutoMigrate 自动建表
func (d *DB) AutoMigrate() error {
	return d.db.AutoMigrate(
		&model.User{},
		&model.Stock{},
		&model.Follow{},
		&model.Alert{},
		&model.HistoryEntry{},
	)
}

// Close 关闭数据库连接
func (d *DB) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
