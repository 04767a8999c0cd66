// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config collects everything the binaries need to wire the pipeline.
type Config struct {
	// OpenAI settings.
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	// Pipeline tuning. Zero values fall back to package defaults downstream.
	MaxChunkSize    int
	ChunkOverlap    int
	MaxInputChars   int
	CallTimeout     time.Duration
	KeepTranscripts bool

	// Durable store selection: "postgres", "supabase", or "mongo".
	StoreBackend string

	PostgresDSN string

	SupabaseURL        string
	SupabaseKey        string
	SupabaseDBPassword string

	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	// FallbackDir is where summaries land when the durable store is down.
	FallbackDir string

	// TranscriptsDir is the directory the file transcript source reads from.
	TranscriptsDir string
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first if present; real environment variables win.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:        os.Getenv("OPENAI_MODEL"),
		OpenAIBaseURL:      os.Getenv("OPENAI_BASE_URL"),
		StoreBackend:       getenvDefault("STORE_BACKEND", "postgres"),
		PostgresDSN:        os.Getenv("POSTGRES_DSN"),
		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseKey:        os.Getenv("SUPABASE_KEY"),
		SupabaseDBPassword: os.Getenv("SUPABASE_DB_PASSWORD"),
		MongoURI:           getenvDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:      getenvDefault("MONGO_DATABASE", "videodigest"),
		MongoCollection:    getenvDefault("MONGO_COLLECTION", "summaries"),
		FallbackDir:        getenvDefault("FALLBACK_DIR", "data/summaries"),
		TranscriptsDir:     getenvDefault("TRANSCRIPTS_DIR", "data/transcripts"),
	}

	var err error
	if cfg.MaxChunkSize, err = getenvInt("MAX_CHUNK_SIZE"); err != nil {
		return Config{}, err
	}
	if cfg.ChunkOverlap, err = getenvInt("CHUNK_OVERLAP"); err != nil {
		return Config{}, err
	}
	if cfg.MaxInputChars, err = getenvInt("MAX_INPUT_CHARS"); err != nil {
		return Config{}, err
	}

	timeoutSecs, err := getenvInt("CALL_TIMEOUT_SECONDS")
	if err != nil {
		return Config{}, err
	}
	cfg.CallTimeout = time.Duration(timeoutSecs) * time.Second

	cfg.KeepTranscripts = os.Getenv("KEEP_TRANSCRIPTS") == "true"

	if cfg.OpenAIAPIKey == "" {
		return Config{}, fmt.Errorf("OPENAI_API_KEY is required")
	}

	switch cfg.StoreBackend {
	case "postgres", "supabase", "mongo":
	default:
		return Config{}, fmt.Errorf("unknown STORE_BACKEND %q (want postgres, supabase, or mongo)", cfg.StoreBackend)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getenvInt parses an optional integer variable; unset means zero.
func getenvInt(key string) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %d", key, n)
	}
	return n, nil
}
