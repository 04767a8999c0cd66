package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"video-digest/pkg/config"
	"video-digest/pkg/llm"
	"video-digest/pkg/store"
	"video-digest/pkg/summarize"
	"video-digest/pkg/transcript"
)

func main() {
	var (
		videoID = flag.String("video", "", "Video id to summarize (reads <transcripts-dir>/<id>.txt)")
		title   = flag.String("title", "", "Video title stored with the summary")
		channel = flag.String("channel", "", "Channel name stored with the summary")
		url     = flag.String("url", "", "Video URL stored with the summary")
		force   = flag.Bool("force", false, "Recompute and overwrite an existing summary")
		verbose = flag.Bool("v", false, "Enable debug logging")
	)
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	if *videoID == "" {
		log.Fatal("-video is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", "err", err)
	}

	ctx := context.Background()

	summaries, closeStore, err := store.Open(ctx, store.Options{
		Backend:  cfg.StoreBackend,
		Postgres: store.PostgresConfig{DSN: cfg.PostgresDSN},
		Supabase: store.SupabaseConfig{
			SupabaseURL: cfg.SupabaseURL,
			SupabaseKey: cfg.SupabaseKey,
			Password:    cfg.SupabaseDBPassword,
		},
		MongoURI:        cfg.MongoURI,
		MongoDatabase:   cfg.MongoDatabase,
		MongoCollection: cfg.MongoCollection,
		FallbackDir:     cfg.FallbackDir,
	})
	if err != nil {
		log.Fatal("open summary store", "err", err)
	}
	defer closeStore(ctx)

	extractor := llm.NewOpenAIExtractor(llm.ExtractorConfig{
		APIKey:        cfg.OpenAIAPIKey,
		BaseURL:       cfg.OpenAIBaseURL,
		Model:         cfg.OpenAIModel,
		MaxInputChars: cfg.MaxInputChars,
		CallTimeout:   cfg.CallTimeout,
	})

	service := summarize.New(extractor, store.NewSessionCache(), summaries, summarize.Options{
		MaxChunkSize:   cfg.MaxChunkSize,
		ChunkOverlap:   cfg.ChunkOverlap,
		KeepTranscript: cfg.KeepTranscripts,
	})

	source := transcript.NewFileSource(cfg.TranscriptsDir)
	t, err := source.Transcript(ctx, *videoID)
	if err != nil {
		log.Fatal("load transcript", "video_id", *videoID, "err", err)
	}
	t.Title = *title
	t.Channel = *channel
	t.URL = *url

	start := time.Now()
	summary, err := service.Summarize(ctx, t, *force)
	if err != nil {
		log.Fatal("summarize", "video_id", *videoID, "err", err)
	}
	log.Info("summary ready", "video_id", *videoID, "duration", time.Since(start))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		log.Fatal("encode summary", "err", err)
	}
}
