package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server  ServerConfig
	Chat    ChatConfig
	Content ContentConfig
	Log     LogConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	chat, err := loadChatConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:  server,
		Chat:    chat,
		Content: ContentConfig{Path: strings.TrimSpace(os.Getenv("CONTENT_FILE"))},
		Log: LogConfig{
			File:  strings.TrimSpace(os.Getenv("LOG_FILE")),
			Level: parseLogLevel(getEnvOrDefault("LOG_LEVEL", "INFO")),
		},
	}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

// loadServerConfig 解析服务器监听地址与跨域来源。
func loadServerConfig() (ServerConfig, error) {
	origins := splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*"))

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port, AllowedOrigins: origins}, nil
	}

	return ServerConfig{Addr: ":" + port, AllowedOrigins: origins}, nil
}

// ChatConfig 描述聊天回复与会话生命周期。
type ChatConfig struct {
	ReplyDelay     time.Duration
	SessionIdleTTL time.Duration
}

func loadChatConfig() (ChatConfig, error) {
	delay := 1500 * time.Millisecond
	delayOverride, err := parseOptionalIntEnv("REPLY_DELAY_MS")
	if err != nil {
		return ChatConfig{}, err
	}
	if delayOverride != nil {
		if *delayOverride < 0 {
			return ChatConfig{}, fmt.Errorf("invalid REPLY_DELAY_MS value %d: must not be negative", *delayOverride)
		}
		delay = time.Duration(*delayOverride) * time.Millisecond
	}

	ttl := 60 * time.Minute
	ttlOverride, err := parseOptionalIntEnv("SESSION_IDLE_TTL_MIN")
	if err != nil {
		return ChatConfig{}, err
	}
	if ttlOverride != nil {
		if *ttlOverride < 0 {
			return ChatConfig{}, fmt.Errorf("invalid SESSION_IDLE_TTL_MIN value %d: must not be negative", *ttlOverride)
		}
		ttl = time.Duration(*ttlOverride) * time.Minute
	}

	return ChatConfig{ReplyDelay: delay, SessionIdleTTL: ttl}, nil
}

// ContentConfig 指向可选的内容覆盖文件，为空时使用内置内容。
type ContentConfig struct {
	Path string
}

// LogConfig 描述日志输出。
type LogConfig struct {
	File  string
	Level slog.Level
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
