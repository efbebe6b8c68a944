package config

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string

	LLM     LLMConfig
	Hosting HostingConfig
	Archive ArchiveConfig

	// Static assets for HTML rendering.
	LogoDir     string
	MembersPath string

	// Max parallel section-generation workers per request.
	Workers int
}

type LLMConfig struct {
	// Primary OpenAI-compatible provider.
	BaseURL string
	APIKey  string
	Models  []string

	// Secondary provider, tried when the primary fails.
	GeminiAPIKey string
	GeminiModel  string
}

type HostingConfig struct {
	Enabled   bool
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

type ArchiveConfig struct {
	Path string
	DSN  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8080", "server port")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	workers := 5
	if v := strings.TrimSpace(os.Getenv("SECTION_WORKERS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			workers = n
		}
	}

	return &Config{
		Port:        *port,
		Env:         env,
		LLM:         loadLLMConfig(),
		Hosting:     loadHostingConfig(),
		Archive:     loadArchiveConfig(),
		LogoDir:     firstNonEmpty(strings.TrimSpace(os.Getenv("LOGO_DIR")), "assets/logos"),
		MembersPath: firstNonEmpty(strings.TrimSpace(os.Getenv("GITHUB_MEMBERS_PATH")), "assets/github_members.json"),
		Workers:     workers,
	}, nil
}

func loadLLMConfig() LLMConfig {
	models := []string{}
	for _, m := range strings.Split(os.Getenv("LLM_MODELS"), ",") {
		if m = strings.TrimSpace(m); m != "" {
			models = append(models, m)
		}
	}
	if len(models) == 0 {
		if m := strings.TrimSpace(os.Getenv("LLM_MODEL")); m != "" {
			models = []string{m}
		}
	}
	return LLMConfig{
		BaseURL:      firstNonEmpty(strings.TrimSpace(os.Getenv("LLM_BASE_URL")), "https://api.openai.com/v1/chat/completions"),
		APIKey:       strings.TrimSpace(os.Getenv("LLM_API_KEY")),
		Models:       models,
		GeminiAPIKey: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:  firstNonEmpty(strings.TrimSpace(os.Getenv("GEMINI_MODEL")), "gemini-2.0-flash"),
	}
}

func loadHostingConfig() HostingConfig {
	endpoint := strings.TrimSpace(os.Getenv("REPORT_S3_ENDPOINT"))
	return HostingConfig{
		Enabled:   endpoint != "",
		Endpoint:  endpoint,
		Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("REPORT_S3_REGION")), "ap-northeast-2"),
		AccessKey: firstNonEmpty(strings.TrimSpace(os.Getenv("REPORT_S3_ACCESS_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_USER"))),
		SecretKey: firstNonEmpty(strings.TrimSpace(os.Getenv("REPORT_S3_SECRET_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_PASSWORD"))),
		Bucket:    firstNonEmpty(strings.TrimSpace(os.Getenv("REPORT_S3_BUCKET")), "tokamak-reports"),
		Prefix:    firstNonEmpty(strings.TrimSpace(os.Getenv("REPORT_S3_PREFIX")), "reports/biweekly"),
		UseSSL:    resolveUseSSL(),
	}
}

func resolveUseSSL() bool {
	raw := strings.TrimSpace(os.Getenv("REPORT_S3_USE_SSL"))
	if raw == "" {
		return true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return true
	}
	return v
}

func loadArchiveConfig() ArchiveConfig {
	return ArchiveConfig{
		Path: firstNonEmpty(strings.TrimSpace(os.Getenv("REPORT_ARCHIVE_PATH")), "tmp/report_archive.json"),
		DSN:  strings.TrimSpace(os.Getenv("REPORT_ARCHIVE_PG_DSN")),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
