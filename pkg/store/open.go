package store

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
)

// Options selects and configures a durable backend for Open.
type Options struct {
	// Backend is "postgres", "supabase", or "mongo".
	Backend string

	Postgres PostgresConfig
	Supabase SupabaseConfig

	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	// FallbackDir enables the file fallback tier when non-empty.
	FallbackDir string
}

// Open connects the configured durable backend and, when a fallback
// directory is set, layers the file tier behind it. The returned closer
// releases the backend's connections.
func Open(ctx context.Context, opts Options) (SummaryStore, func(context.Context) error, error) {
	primary, closer, err := openBackend(ctx, opts)
	if err != nil {
		return nil, nil, err
	}

	if opts.FallbackDir == "" {
		return primary, closer, nil
	}

	fallback, err := NewFileStore(opts.FallbackDir)
	if err != nil {
		_ = closer(ctx)
		return nil, nil, fmt.Errorf("open fallback store: %w", err)
	}
	log.Debug("file fallback tier enabled", "dir", opts.FallbackDir)
	return NewFallbackStore(primary, fallback), closer, nil
}

func openBackend(ctx context.Context, opts Options) (SummaryStore, func(context.Context) error, error) {
	switch opts.Backend {
	case "postgres":
		client := NewPostgresClient(opts.Postgres)
		if err := client.Connect(ctx); err != nil {
			return nil, nil, err
		}
		s := NewSQLStore(client)
		if err := s.Init(ctx); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return s, func(context.Context) error { return client.Close() }, nil

	case "supabase":
		client := NewSupabaseClient(opts.Supabase)
		if err := client.Connect(ctx); err != nil {
			return nil, nil, err
		}
		s := NewSQLStore(client)
		if err := s.Init(ctx); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return s, func(context.Context) error { return client.Close() }, nil

	case "mongo":
		s, err := NewMongoStore(opts.MongoURI, opts.MongoDatabase, opts.MongoCollection)
		if err != nil {
			return nil, nil, err
		}
		if err := s.Connect(ctx); err != nil {
			_ = s.Close(ctx)
			return nil, nil, err
		}
		return s, s.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
