package database

import (
	"testing"
	"time"

	"settrack/pkg/config"
)

func TestPoolSettingsDefaults(t *testing.T) {
	// 配置缺省时使用默认连接池参数
	maxOpen, maxIdle, maxLifetime := poolSettings(&config.Config{})

	if maxOpen != 25 {
		t.Errorf("maxOpen = %d, want 25", maxOpen)
	}
	if maxIdle != 5 {
		t.Errorf("maxIdle = %d, want 5", maxIdle)
	}
	if maxLifetime != 5*time.Minute {
		t.Errorf("maxLifetime = %v, want 5m", maxLifetime)
	}
}

func TestPoolSettingsFromConfig(t *testing.T) {
	var cfg config.Config
	cfg.Database.Postgres.MaxOpenConns = 50
	cfg.Database.Postgres.MaxIdleConns = 10
	cfg.Database.Postgres.ConnMaxLifetime = 30 * time.Minute

	maxOpen, maxIdle, maxLifetime := poolSettings(&cfg)

	if maxOpen != 50 {
		t.Errorf("maxOpen = %d, want 50", maxOpen)
	}
	if maxIdle != 10 {
		t.Errorf("maxIdle = %d, want 10", maxIdle)
	}
	if maxLifetime != 30*time.Minute {
		t.Errorf("maxLifetime = %v, want 30m", maxLifetime)
	}
}
