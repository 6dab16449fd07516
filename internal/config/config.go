package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AppConfig 聚合运行时配置，尽量通过环境变量注入，避免硬编码。
type AppConfig struct {
	HTTPAddr string
	DBPath   string

	RedisAddr string
	RedisDB   int

	// Kafka 集群地址（逗号分隔）、Topic、消费者组
	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string

	// Redis Stream outbox（API 原子入流，Relay 异步转 Kafka）
	OrderEventStream   string
	OrderEventGroup    string
	OrderEventConsumer string

	// 下单接口限流与统计缓存策略
	OrderRateLimit  int
	OrderRateWindow time.Duration
	StatsCacheTTL   time.Duration

	// 会话与支付会话
	SessionTTL         time.Duration
	CheckoutBaseURL    string
	CheckoutSessionTTL time.Duration

	// 签发会话接口的简单管理员令牌（demo 级别保护）
	AdminToken string
}

// Load 读取并校验配置，缺失时使用默认值。
func Load() (AppConfig, error) {
	cfg := AppConfig{
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		DBPath:             getEnv("DB_PATH", "garment_track.db"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:            0,
		KafkaBrokers:       splitCSV(getEnv("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:         getEnv("KAFKA_TOPIC", "garment-order-events"),
		KafkaGroupID:       getEnv("KAFKA_GROUP_ID", "garment-order-audit"),
		OrderEventStream:   getEnv("ORDER_EVENT_STREAM", "garment:order_events"),
		OrderEventGroup:    getEnv("ORDER_EVENT_GROUP", "garment-relay-group"),
		OrderEventConsumer: getEnv("ORDER_EVENT_CONSUMER", "garment-relay-1"),
		OrderRateLimit:     60,
		OrderRateWindow:    time.Minute,
		StatsCacheTTL:      30 * time.Second,
		SessionTTL:         24 * time.Hour,
		CheckoutBaseURL:    getEnv("CHECKOUT_BASE_URL", "http://localhost:8080"),
		CheckoutSessionTTL: 30 * time.Minute,
		AdminToken:         getEnv("ADMIN_TOKEN", "dev-admin-token"),
	}

	redisDB, err := getEnvInt("REDIS_DB", cfg.RedisDB)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cfg.RedisDB = redisDB

	rateLimit, err := getEnvInt("ORDER_RATE_LIMIT", cfg.OrderRateLimit)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid ORDER_RATE_LIMIT: %w", err)
	}
	if rateLimit <= 0 {
		return AppConfig{}, fmt.Errorf("ORDER_RATE_LIMIT must be > 0")
	}
	cfg.OrderRateLimit = rateLimit

	rateWindowSec, err := getEnvInt("ORDER_RATE_WINDOW_SEC", int(cfg.OrderRateWindow.Seconds()))
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid ORDER_RATE_WINDOW_SEC: %w", err)
	}
	if rateWindowSec <= 0 {
		return AppConfig{}, fmt.Errorf("ORDER_RATE_WINDOW_SEC must be > 0")
	}
	cfg.OrderRateWindow = time.Duration(rateWindowSec) * time.Second

	statsTTLSec, err := getEnvInt("STATS_CACHE_TTL_SEC", int(cfg.StatsCacheTTL.Seconds()))
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid STATS_CACHE_TTL_SEC: %w", err)
	}
	if statsTTLSec <= 0 {
		return AppConfig{}, fmt.Errorf("STATS_CACHE_TTL_SEC must be > 0")
	}
	cfg.StatsCacheTTL = time.Duration(statsTTLSec) * time.Second

	sessionTTLHour, err := getEnvInt("SESSION_TTL_HOUR", int(cfg.SessionTTL.Hours()))
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid SESSION_TTL_HOUR: %w", err)
	}
	if sessionTTLHour <= 0 {
		return AppConfig{}, fmt.Errorf("SESSION_TTL_HOUR must be > 0")
	}
	cfg.SessionTTL = time.Duration(sessionTTLHour) * time.Hour

	checkoutTTLMin, err := getEnvInt("CHECKOUT_SESSION_TTL_MIN", int(cfg.CheckoutSessionTTL.Minutes()))
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid CHECKOUT_SESSION_TTL_MIN: %w", err)
	}
	if checkoutTTLMin <= 0 {
		return AppConfig{}, fmt.Errorf("CHECKOUT_SESSION_TTL_MIN must be > 0")
	}
	cfg.CheckoutSessionTTL = time.Duration(checkoutTTLMin) * time.Minute

	if len(cfg.KafkaBrokers) == 0 {
		return AppConfig{}, fmt.Errorf("KAFKA_BROKERS must not be empty")
	}
	if cfg.KafkaTopic == "" {
		return AppConfig{}, fmt.Errorf("KAFKA_TOPIC must not be empty")
	}
	if cfg.KafkaGroupID == "" {
		return AppConfig{}, fmt.Errorf("KAFKA_GROUP_ID must not be empty")
	}
	if cfg.OrderEventStream == "" {
		return AppConfig{}, fmt.Errorf("ORDER_EVENT_STREAM must not be empty")
	}
	if cfg.OrderEventGroup == "" {
		return AppConfig{}, fmt.Errorf("ORDER_EVENT_GROUP must not be empty")
	}
	if cfg.OrderEventConsumer == "" {
		return AppConfig{}, fmt.Errorf("ORDER_EVENT_CONSUMER must not be empty")
	}
	if cfg.AdminToken == "" {
		return AppConfig{}, fmt.Errorf("ADMIN_TOKEN must not be empty")
	}

	return cfg, nil
}

// getEnv 读取字符串环境变量，若为空则返回默认值。
func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

// getEnvInt 读取整数环境变量，若为空则返回默认值。
func getEnvInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

// splitCSV 将逗号分隔字符串解析为字符串切片。
func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		s := strings.TrimSpace(p)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
