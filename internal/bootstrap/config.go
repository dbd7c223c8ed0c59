package bootstrap

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ServerAddr  string
	LogLevel    string
	Version     string
	CORSOrigins []string

	DatabaseURL string
	RedisURL    string

	// QdrantHost left empty disables vector search. Transcript search
	// then runs on the lexical fallback only.
	QdrantHost string
	QdrantPort int

	PerceptionURL          string
	PerceptionTimeout      time.Duration
	PerceptionTokenURL     string
	PerceptionClientID     string
	PerceptionClientSecret string

	TTSURL   string
	TTSVoice string

	STTWSURL    string
	STTLanguage string

	CameraURL     string
	CameraTimeout time.Duration

	// MicSource is a raw PCM stream path; empty records silence.
	MicSource string

	DataDir    string
	SessionTTL time.Duration
}

func LoadConfig() *Config {
	return &Config{
		ServerAddr:  ":" + getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Version:     getEnv("VERSION", "1.0.0"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),

		QdrantHost: getEnv("QDRANT_HOST", ""),
		QdrantPort: getEnvInt("QDRANT_PORT", 6334),

		PerceptionURL:          getEnv("PERCEPTION_URL", "http://localhost:8000"),
		PerceptionTimeout:      time.Duration(getEnvInt("PERCEPTION_TIMEOUT_SECONDS", 30)) * time.Second,
		PerceptionTokenURL:     getEnv("PERCEPTION_TOKEN_URL", ""),
		PerceptionClientID:     getEnv("PERCEPTION_CLIENT_ID", ""),
		PerceptionClientSecret: getEnv("PERCEPTION_CLIENT_SECRET", ""),

		TTSURL:   getEnv("TTS_URL", "http://localhost:5002/speak"),
		TTSVoice: getEnv("TTS_VOICE", ""),

		STTWSURL:    getEnv("STT_WS_URL", "ws://localhost:2700"),
		STTLanguage: getEnv("STT_LANGUAGE", "en"),

		CameraURL:     getEnv("CAMERA_URL", "http://localhost:8081/shot.jpg"),
		CameraTimeout: time.Duration(getEnvInt("CAMERA_TIMEOUT_SECONDS", 5)) * time.Second,

		MicSource: getEnv("MIC_SOURCE", ""),

		DataDir:    getEnv("DATA_DIR", "./data"),
		SessionTTL: time.Duration(getEnvInt("SESSION_TTL_HOURS", 24)) * time.Hour,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return []string{"*"}
	}
	return items
}
