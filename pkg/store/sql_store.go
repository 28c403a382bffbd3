package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mission-control/core/pkg/logger"
	"github.com/mission-control/core/pkg/models"
)

type sqlStore struct {
	db     conn
	logger *logger.Logger
}

func newSQLStore(c conn, log *logger.Logger) Store {
	return &sqlStore{db: c, logger: log}
}

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// observe logs the operation; a missing record is an expected outcome, not a failure
func (s *sqlStore) observe(operation, table string, affected int, start time.Time, err error) {
	if errors.Is(err, ErrNotFound) {
		err = nil
		affected = 0
	}
	s.logger.LogStoreOperation(operation, table, affected, time.Since(start), err)
}

func (s *sqlStore) ListTasks(ctx context.Context) (out []models.Task, err error) {
	start := time.Now()
	defer func() { s.observe("list", "tasks", len(out), start, err) }()

	r, err := s.db.Query(ctx, `SELECT id, task, priority, status, created_at FROM tasks ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer r.Close()

	out = []models.Task{}
	for r.Next() {
		var t models.Task
		var created int64
		if err := r.Scan(&t.ID, &t.Task, &t.Priority, &t.Status, &created); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		t.CreatedAt = fromMillis(created)
		out = append(out, t)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return out, nil
}

func (s *sqlStore) AddTask(ctx context.Context, task models.Task) (err error) {
	start := time.Now()
	var n int64
	defer func() { s.observe("insert", "tasks", int(n), start, err) }()

	n, err = s.db.Exec(ctx,
		`INSERT INTO tasks (id, task, priority, status, created_at, seq)
		 VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM tasks))`,
		task.ID, task.Task, task.Priority, task.Status, toMillis(task.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

func (s *sqlStore) CountTasksByStatus(ctx context.Context) (counts map[string]int, err error) {
	start := time.Now()
	defer func() { s.observe("count", "tasks", len(counts), start, err) }()

	r, err := s.db.Query(ctx, `SELECT status, COUNT(*) FROM tasks GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	defer r.Close()

	counts = map[string]int{}
	for r.Next() {
		var status string
		var n int64
		if err := r.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan task count: %w", err)
		}
		counts[status] = int(n)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate task counts: %w", err)
	}
	return counts, nil
}

const ideaColumns = `id, title, description, source, source_url, upvotes, comments, status, slug, created_at`

func scanIdea(sc interface{ Scan(dest ...any) error }) (models.Idea, error) {
	var idea models.Idea
	var upvotes, comments, created int64
	err := sc.Scan(&idea.ID, &idea.Title, &idea.Description, &idea.Source, &idea.SourceURL,
		&upvotes, &comments, &idea.Status, &idea.Slug, &created)
	if err != nil {
		return idea, err
	}
	idea.Upvotes = int(upvotes)
	idea.Comments = int(comments)
	idea.CreatedAt = fromMillis(created)
	return idea, nil
}

func (s *sqlStore) ListIdeas(ctx context.Context) (out []models.Idea, err error) {
	start := time.Now()
	defer func() { s.observe("list", "ideas", len(out), start, err) }()

	r, err := s.db.Query(ctx, `SELECT `+ideaColumns+` FROM ideas ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list ideas: %w", err)
	}
	defer r.Close()

	out = []models.Idea{}
	for r.Next() {
		idea, err := scanIdea(r)
		if err != nil {
			return nil, fmt.Errorf("failed to scan idea: %w", err)
		}
		out = append(out, idea)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ideas: %w", err)
	}
	return out, nil
}

// SeedIdeas inserts ideas in the given order after any existing ones.
// Ideas whose id already exists are left untouched.
func (s *sqlStore) SeedIdeas(ctx context.Context, ideas []models.Idea) (err error) {
	start := time.Now()
	inserted := 0
	defer func() { s.observe("seed", "ideas", inserted, start, err) }()

	var maxPos int64
	if err := s.db.QueryRow(ctx, `SELECT COALESCE(MAX(position), -1) FROM ideas`).Scan(&maxPos); err != nil {
		return fmt.Errorf("failed to read idea positions: %w", err)
	}

	for i, idea := range ideas {
		n, err := s.db.Exec(ctx,
			`INSERT INTO ideas (`+ideaColumns+`, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (id) DO NOTHING`,
			idea.ID, idea.Title, idea.Description, idea.Source, idea.SourceURL,
			idea.Upvotes, idea.Comments, idea.Status, idea.Slug, toMillis(idea.CreatedAt),
			maxPos+1+int64(i))
		if err != nil {
			return fmt.Errorf("failed to seed idea %s: %w", idea.ID, err)
		}
		inserted += int(n)
	}
	return nil
}

// AddIdea puts the idea at the front of the list
func (s *sqlStore) AddIdea(ctx context.Context, idea models.Idea) (err error) {
	start := time.Now()
	var n int64
	defer func() { s.observe("insert", "ideas", int(n), start, err) }()

	n, err = s.db.Exec(ctx,
		`INSERT INTO ideas (`+ideaColumns+`, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MIN(position), 1) - 1 FROM ideas))`,
		idea.ID, idea.Title, idea.Description, idea.Source, idea.SourceURL,
		idea.Upvotes, idea.Comments, idea.Status, idea.Slug, toMillis(idea.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert idea: %w", err)
	}
	return nil
}

func (s *sqlStore) UpdateIdeaStatus(ctx context.Context, id, status string) (idea models.Idea, err error) {
	start := time.Now()
	var n int64
	defer func() { s.observe("update", "ideas", int(n), start, err) }()

	n, err = s.db.Exec(ctx, `UPDATE ideas SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return models.Idea{}, fmt.Errorf("failed to update idea: %w", err)
	}
	if n == 0 {
		return models.Idea{}, ErrNotFound
	}

	idea, err = scanIdea(s.db.QueryRow(ctx, `SELECT `+ideaColumns+` FROM ideas WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Idea{}, ErrNotFound
	}
	if err != nil {
		return models.Idea{}, fmt.Errorf("failed to read idea: %w", err)
	}
	return idea, nil
}

func (s *sqlStore) AppendBuildRequest(ctx context.Context, req models.BuildRequest) (err error) {
	start := time.Now()
	var n int64
	defer func() { s.observe("insert", "build_requests", int(n), start, err) }()

	n, err = s.db.Exec(ctx,
		`INSERT INTO build_requests (idea_id, title, description, source, requested_at) VALUES (?, ?, ?, ?, ?)`,
		req.IdeaID, req.Title, req.Description, req.Source, toMillis(req.RequestedAt))
	if err != nil {
		return fmt.Errorf("failed to queue build request: %w", err)
	}
	return nil
}

func (s *sqlStore) ListBuildRequests(ctx context.Context) (out []models.BuildRequest, err error) {
	start := time.Now()
	defer func() { s.observe("list", "build_requests", len(out), start, err) }()

	r, err := s.db.Query(ctx,
		`SELECT idea_id, title, description, source, requested_at FROM build_requests ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list build requests: %w", err)
	}
	defer r.Close()

	out = []models.BuildRequest{}
	for r.Next() {
		var req models.BuildRequest
		var requested int64
		if err := r.Scan(&req.IdeaID, &req.Title, &req.Description, &req.Source, &requested); err != nil {
			return nil, fmt.Errorf("failed to scan build request: %w", err)
		}
		req.RequestedAt = fromMillis(requested)
		out = append(out, req)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate build requests: %w", err)
	}
	return out, nil
}

func (s *sqlStore) AppendNotification(ctx context.Context, n models.Notification) (err error) {
	start := time.Now()
	var affected int64
	defer func() { s.observe("insert", "notifications", int(affected), start, err) }()

	affected, err = s.db.Exec(ctx,
		`INSERT INTO notifications (message, created_at) VALUES (?, ?)`,
		n.Message, toMillis(n.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to append notification: %w", err)
	}
	return nil
}

// ListNotifications returns the newest notifications first. A non-positive
// limit returns all of them.
func (s *sqlStore) ListNotifications(ctx context.Context, limit int) (out []models.Notification, err error) {
	start := time.Now()
	defer func() { s.observe("list", "notifications", len(out), start, err) }()

	query := `SELECT message, created_at FROM notifications ORDER BY seq DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	r, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer r.Close()

	out = []models.Notification{}
	for r.Next() {
		var n models.Notification
		var created int64
		if err := r.Scan(&n.Message, &created); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.CreatedAt = fromMillis(created)
		out = append(out, n)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}
	return out, nil
}

func (s *sqlStore) SaveSessionSnapshot(ctx context.Context, snap models.SessionSnapshot) (err error) {
	start := time.Now()
	var n int64
	defer func() { s.observe("insert", "session_snapshots", int(n), start, err) }()

	n, err = s.db.Exec(ctx,
		`INSERT INTO session_snapshots (count, synced_at) VALUES (?, ?)`,
		snap.Count, toMillis(snap.SyncedAt))
	if err != nil {
		return fmt.Errorf("failed to save session snapshot: %w", err)
	}
	return nil
}

// LatestSessionSnapshot returns ErrNotFound until the sync worker has run once
func (s *sqlStore) LatestSessionSnapshot(ctx context.Context) (snap models.SessionSnapshot, err error) {
	start := time.Now()
	defer func() { s.observe("latest", "session_snapshots", 1, start, err) }()

	var count, synced int64
	err = s.db.QueryRow(ctx,
		`SELECT count, synced_at FROM session_snapshots ORDER BY seq DESC LIMIT 1`).Scan(&count, &synced)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SessionSnapshot{}, ErrNotFound
	}
	if err != nil {
		return models.SessionSnapshot{}, fmt.Errorf("failed to read session snapshot: %w", err)
	}
	return models.SessionSnapshot{Count: int(count), SyncedAt: fromMillis(synced)}, nil
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}
