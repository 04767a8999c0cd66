package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"video-digest/pkg/config"
	"video-digest/pkg/llm"
	"video-digest/pkg/report"
	"video-digest/pkg/store"
)

func main() {
	var (
		day   = flag.String("day", "", "Day to report on, YYYY-MM-DD (defaults to today, UTC)")
		since = flag.String("since", "", "Window start, YYYY-MM-DD (overrides -day)")
		until = flag.String("until", "", "Window end, YYYY-MM-DD, exclusive (used with -since)")
	)
	flag.Parse()

	from, to, label, err := resolveWindow(*day, *since, *until)
	if err != nil {
		log.Fatal("resolve window", "err", err)
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

	entries, err := summaries.ListWindow(ctx, from, to)
	if err != nil {
		log.Fatal("list summaries", "window", label, "err", err)
	}
	log.Info("building report", "window", label, "videos", len(entries))

	extractor := llm.NewOpenAIExtractor(llm.ExtractorConfig{
		APIKey:        cfg.OpenAIAPIKey,
		BaseURL:       cfg.OpenAIBaseURL,
		Model:         cfg.OpenAIModel,
		MaxInputChars: cfg.MaxInputChars,
		CallTimeout:   cfg.CallTimeout,
	})

	aggregator := report.NewAggregator(extractor)
	r := aggregator.Aggregate(ctx, entries, label)

	fmt.Println(r.Text)
	if r.Length > report.InlineLimit {
		log.Warn("report exceeds inline message limit, deliver as attachment",
			"length", r.Length, "limit", report.InlineLimit)
	}
}

// resolveWindow turns the flags into a [from, to) range and a label. With no
// flags the window is the current UTC day.
func resolveWindow(day, since, until string) (time.Time, time.Time, string, error) {
	const layout = "2006-01-02"

	if since != "" {
		from, err := time.ParseInLocation(layout, since, time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, "", fmt.Errorf("parse -since: %w", err)
		}
		to := from.AddDate(0, 0, 1)
		if until != "" {
			if to, err = time.ParseInLocation(layout, until, time.UTC); err != nil {
				return time.Time{}, time.Time{}, "", fmt.Errorf("parse -until: %w", err)
			}
		}
		if !to.After(from) {
			return time.Time{}, time.Time{}, "", fmt.Errorf("-until must be after -since")
		}
		return from, to, since + ".." + to.Format(layout), nil
	}

	d := time.Now().UTC().Truncate(24 * time.Hour)
	if day != "" {
		var err error
		if d, err = time.ParseInLocation(layout, day, time.UTC); err != nil {
			return time.Time{}, time.Time{}, "", fmt.Errorf("parse -day: %w", err)
		}
	}
	return d, d.AddDate(0, 0, 1), d.Format(layout), nil
}
