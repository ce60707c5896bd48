package projects

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vangoframework/vpmshell/internal/database"
)

// SortOrder selects the ordering of List.
type SortOrder string

const (
	SortLastModified SortOrder = "last_modified"
	SortName         SortOrder = "name"
)

const schema = `CREATE TABLE IF NOT EXISTS projects (
	id            TEXT PRIMARY KEY,
	path          TEXT NOT NULL UNIQUE,
	unity_version TEXT NOT NULL DEFAULT '',
	project_type  INTEGER NOT NULL DEFAULT 0,
	favorite      BOOLEAN NOT NULL DEFAULT FALSE,
	created_at    BIGINT NOT NULL,
	last_modified BIGINT NOT NULL
)`

const selectColumns = `SELECT id, path, unity_version, project_type, favorite, created_at, last_modified FROM projects`

// Store persists projects in the shared SQL database.
type Store struct {
	db  *database.DB
	now func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// NewStore creates the projects table if needed.
func NewStore(ctx context.Context, db *database.DB, opts ...StoreOption) (*Store, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("create projects schema: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Health checks the database connection.
func (s *Store) Health(ctx context.Context) error {
	return s.db.Health(ctx)
}

// List returns all projects in the given order.
func (s *Store) List(ctx context.Context, order SortOrder) ([]Project, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY last_modified DESC, path`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	if order == SortName {
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name()) < strings.ToLower(out[j].Name())
		})
	}
	return out, nil
}

// Get returns the project with id.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (Project, error) {
	row := s.db.QueryRowContext(ctx, s.db.Rebind(selectColumns+` WHERE id = ?`), id.String())
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Project{}, ErrNotFound
	}
	return p, err
}

// AddParams describes a project to register.
type AddParams struct {
	Path         string
	UnityVersion string
	Type         Type
}

// Add registers a project. Paths are unique.
func (s *Store) Add(ctx context.Context, params AddParams) (Project, error) {
	path := strings.TrimSpace(params.Path)
	if path == "" {
		return Project{}, ErrInvalidPath
	}
	if !params.Type.Valid() {
		return Project{}, fmt.Errorf("%w: %d", ErrInvalidType, int(params.Type))
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	p := Project{
		ID:           uuid.New(),
		Path:         path,
		UnityVersion: strings.TrimSpace(params.UnityVersion),
		Type:         params.Type,
		CreatedAt:    now,
		LastModified: now,
	}

	res, err := s.db.ExecContext(ctx, s.db.Rebind(`INSERT INTO projects
		(id, path, unity_version, project_type, favorite, created_at, last_modified)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (path) DO NOTHING`),
		p.ID.String(), p.Path, p.UnityVersion, int(p.Type), p.Favorite,
		p.CreatedAt.UnixMilli(), p.LastModified.UnixMilli(),
	)
	if err != nil {
		return Project{}, fmt.Errorf("insert project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Project{}, fmt.Errorf("insert project: %w", err)
	}
	if n == 0 {
		return Project{}, fmt.Errorf("%w: %s", ErrDuplicate, path)
	}
	return p, nil
}

// Remove deletes projects by path and reports how many were removed.
func (s *Store) Remove(ctx context.Context, path string) (int64, error) {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM projects WHERE path = ?`), strings.TrimSpace(path))
	if err != nil {
		return 0, fmt.Errorf("remove project: %w", err)
	}
	return res.RowsAffected()
}

// SetFavorite marks or unmarks a project as favorite.
func (s *Store) SetFavorite(ctx context.Context, id uuid.UUID, favorite bool) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`UPDATE projects SET favorite = ? WHERE id = ?`), favorite, id.String())
	if err != nil {
		return fmt.Errorf("update favorite: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update favorite: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(row scanner) (Project, error) {
	var (
		p            Project
		id           string
		projectType  int64
		createdAt    int64
		lastModified int64
	)
	if err := row.Scan(&id, &p.Path, &p.UnityVersion, &projectType, &p.Favorite, &createdAt, &lastModified); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Project{}, err
		}
		return Project{}, fmt.Errorf("scan project: %w", err)
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return Project{}, fmt.Errorf("scan project id: %w", err)
	}
	p.ID = parsed
	p.Type = Type(projectType)
	p.CreatedAt = time.UnixMilli(createdAt).UTC()
	p.LastModified = time.UnixMilli(lastModified).UTC()
	return p, nil
}
