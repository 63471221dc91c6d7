package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DataConfig holds the durable snapshot location.
type DataConfig struct {
	Dir              string
	ApplicationsFile string
}

// SnapshotPath returns the full path of the applications snapshot file.
func (d DataConfig) SnapshotPath() string {
	return filepath.Join(d.Dir, d.ApplicationsFile)
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// OllamaConfig holds settings for the upstream inference service.
type OllamaConfig struct {
	Host       string
	Model      string
	TimeoutSec int
}

// PolicyConfig holds the injectable processing policy: which declared
// document types must be attached before an application advances to
// processing, and the per-document size ceiling.
type PolicyConfig struct {
	RequiredDocumentTypes []string
	MaxDocumentSizeBytes  int64
}

// ChatConfig bounds the hybrid chat responder.
type ChatConfig struct {
	MaxResponseChars int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost string
	Port    string
	Data    DataConfig
	MinIO   MinIOConfig
	Ollama  OllamaConfig
	Policy  PolicyConfig
	Chat    ChatConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"),
		Data: DataConfig{
			Dir:              getEnv("DATA_DIR", "data"),
			ApplicationsFile: getEnv("APPLICATIONS_FILE", "applications.json"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Ollama: OllamaConfig{
			Host:       getEnv("OLLAMA_HOST", "http://localhost:11434"),
			Model:      getEnv("OLLAMA_MODEL", "llama3.2:3b"),
			TimeoutSec: getEnvInt("OLLAMA_TIMEOUT_SEC", 5),
		},
		Policy: PolicyConfig{
			RequiredDocumentTypes: getEnvList("REQUIRED_DOCUMENT_TYPES", []string{"identity_proof", "bank_statement"}),
			MaxDocumentSizeBytes:  getEnvInt64("MAX_DOCUMENT_SIZE_BYTES", 200*1024*1024),
		},
		Chat: ChatConfig{
			MaxResponseChars: getEnvInt("CHAT_MAX_RESPONSE_CHARS", 600),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			return i
		}
	}
	return def
}

// getEnvList parses a comma-separated value, trimming whitespace and
// dropping empty entries.
func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
