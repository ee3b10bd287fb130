package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/zicoder/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/zicoder/internal/core/domain"
	"github.com/custodia-labs/zicoder/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.TaskStore = (*Store)(nil)

// jsonNull is the JSON representation of null.
const jsonNull = "null"

// Store is a SQLite-backed task store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the task database in dataDir.
// If dataDir is empty, defaults to ~/.zicoder/data/tasks.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".zicoder", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "tasks.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate applies every embedded up migration newer than the recorded version.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_tasks.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Save stores or updates a task.
func (s *Store) Save(ctx context.Context, task *domain.Task) error {
	if task == nil || task.ID == "" {
		return domain.ErrInvalidInput
	}

	args, err := marshalJSON(task.Args, "[]")
	if err != nil {
		return fmt.Errorf("marshaling args: %w", err)
	}
	kwargs, err := marshalJSON(task.Kwargs, "{}")
	if err != nil {
		return fmt.Errorf("marshaling kwargs: %w", err)
	}
	result, err := marshalJSON(task.Result, jsonNull)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, name, args, kwargs, state, result, error, created_at, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			args = excluded.args,
			kwargs = excluded.kwargs,
			state = excluded.state,
			result = excluded.result,
			error = excluded.error,
			created_at = excluded.created_at,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at
	`,
		task.ID, task.Name, args, kwargs, string(task.State), result, task.Error,
		toUnixNano(task.CreatedAt), toUnixNano(task.StartedAt), toUnixNano(task.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("saving task: %w", err)
	}
	return nil
}

// Get retrieves a task by ID.
func (s *Store) Get(ctx context.Context, taskID string) (*domain.Task, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, args, kwargs, state, result, error, created_at, started_at, finished_at
		FROM tasks WHERE id = ?
	`, taskID)
	return scanTask(row)
}

// ListByState returns tasks in the given state, oldest first.
func (s *Store) ListByState(ctx context.Context, state domain.TaskState) ([]domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, args, kwargs, state, result, error, created_at, started_at, finished_at
		FROM tasks WHERE state = ?
		ORDER BY created_at ASC
	`, string(state))
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task //nolint:prealloc // size unknown from query
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*domain.Task, error) {
	var (
		task                             domain.Task
		state, args, kwargs              string
		result                           sql.NullString
		createdAt, startedAt, finishedAt int64
	)

	err := row.Scan(&task.ID, &task.Name, &args, &kwargs, &state, &result, &task.Error,
		&createdAt, &startedAt, &finishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	task.State = domain.TaskState(state)
	task.CreatedAt = fromUnixNano(createdAt)
	task.StartedAt = fromUnixNano(startedAt)
	task.FinishedAt = fromUnixNano(finishedAt)

	if err := json.Unmarshal([]byte(args), &task.Args); err != nil {
		return nil, fmt.Errorf("unmarshaling args: %w", err)
	}
	if err := json.Unmarshal([]byte(kwargs), &task.Kwargs); err != nil {
		return nil, fmt.Errorf("unmarshaling kwargs: %w", err)
	}
	if result.Valid && result.String != jsonNull {
		if err := json.Unmarshal([]byte(result.String), &task.Result); err != nil {
			return nil, fmt.Errorf("unmarshaling result: %w", err)
		}
	}

	return &task, nil
}

func marshalJSON(v any, empty string) (string, error) {
	if v == nil {
		return empty, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if string(b) == jsonNull {
		return empty, nil
	}
	return string(b), nil
}

func toUnixNano(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromUnixNano(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n)
}
