// Package audit persists an append-only invocation log. The recorder
// subscribes to the registry's invocation events and writes one row per
// tool run; rows are never updated or deleted.
package audit

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
	"github.com/mwozniczak/agenttools/internal/infra/eventbus"
)

// Entry is one recorded invocation.
type Entry struct {
	ID        string    `json:"id"`
	Tool      string    `json:"tool"`
	Outcome   string    `json:"outcome"`
	ItemCount int       `json:"item_count"`
	Duration  int64     `json:"duration_ms"`
	CreatedAt time.Time `json:"created_at"`
}

// Recorder writes invocation events to the audit database.
type Recorder struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRecorder creates a Recorder over an already-migrated database.
func NewRecorder(db *sql.DB, log zerolog.Logger) *Recorder {
	return &Recorder{db: db, log: log}
}

// Start consumes invocation events from the bus until ctx is done.
// Intended to run in its own goroutine.
func (r *Recorder) Start(ctx context.Context, bus eventbus.EventBus) {
	events := bus.Subscribe(tool.TopicInvocation)
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-events:
			if !ok {
				return
			}
			event, isInvocation := evt.Payload.(tool.InvocationEvent)
			if !isInvocation {
				continue
			}
			if err := r.Record(ctx, event); err != nil {
				r.log.Error().Err(err).Str("tool", event.Tool).Msg("audit write failed")
			}
		}
	}
}

// Record inserts a single invocation row.
func (r *Recorder) Record(ctx context.Context, event tool.InvocationEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invocation_log (id, tool_name, outcome, item_count, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		event.ID,
		event.Tool,
		event.Outcome,
		event.Items,
		event.Duration.Milliseconds(),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// ListByTool returns the most recent entries for one tool, newest first.
func (r *Recorder) ListByTool(ctx context.Context, toolName string, limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tool_name, outcome, item_count, duration_ms, created_at
		FROM invocation_log
		WHERE tool_name = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, toolName, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListRecent returns the most recent entries across all tools.
func (r *Recorder) ListRecent(ctx context.Context, limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tool_name, outcome, item_count, duration_ms, created_at
		FROM invocation_log
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]*Entry, error) {
	out := make([]*Entry, 0)
	for rows.Next() {
		var (
			entry     Entry
			createdAt string
		)
		if err := rows.Scan(&entry.ID, &entry.Tool, &entry.Outcome, &entry.ItemCount, &entry.Duration, &createdAt); err != nil {
			return nil, err
		}
		if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
			entry.CreatedAt = ts
		}
		out = append(out, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
