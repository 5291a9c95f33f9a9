package config

import (
	"os"
	"strconv"
	"time"
)

// Config はアプリケーション設定を表す
type Config struct {
	Env    string
	Server ServerConfig
	Venue  VenueConfig
	Store  StoreConfig
	Worker WorkerConfig
}

// ServerConfig はサーバー設定
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// VenueConfig は会場設定
type VenueConfig struct {
	// 1日付あたりの総座席容量
	Capacity int
}

// StoreConfig は予約ストア設定
type StoreConfig struct {
	// 追記専用ストアのファイルパス（固定の設定値）
	FilePath string
}

// WorkerConfig はバックグラウンドワーカー設定
type WorkerConfig struct {
	// 当日利用状況レポートの実行間隔
	ReportInterval time.Duration
}

// Load は環境変数から設定を読み込む
func Load() *Config {
	return &Config{
		Env: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
		},
		Venue: VenueConfig{
			Capacity: getIntEnv("VENUE_CAPACITY", 30),
		},
		Store: StoreConfig{
			FilePath: getEnv("STORE_FILE_PATH", "./data/reservations.txt"),
		},
		Worker: WorkerConfig{
			ReportInterval: getDurationEnv("REPORT_INTERVAL", time.Minute),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
