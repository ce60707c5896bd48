// Package repositories manages the VPM package repositories the user has
// added: their cached documents, ETags and the packages they list.
package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vangoframework/vpmshell/internal/database"
)

var (
	ErrNotFound          = errors.New("repository not found")
	ErrDuplicate         = errors.New("repository already added")
	ErrInvalidURL        = errors.New("repository url must be an http or https url")
	ErrInvalidRepository = errors.New("invalid repository document")
	ErrFetch             = errors.New("failed to download repository")
)

const schema = `CREATE TABLE IF NOT EXISTS repositories (
	id         TEXT PRIMARY KEY,
	repo_id    TEXT NOT NULL UNIQUE,
	url        TEXT NOT NULL UNIQUE,
	name       TEXT NOT NULL DEFAULT '',
	etag       TEXT NOT NULL DEFAULT '',
	headers    TEXT NOT NULL DEFAULT '{}',
	body       TEXT NOT NULL,
	fetched_at BIGINT NOT NULL,
	created_at BIGINT NOT NULL
)`

const selectColumns = `SELECT id, repo_id, url, name, etag, headers, body, fetched_at, created_at FROM repositories`

// refreshConcurrency bounds parallel downloads in RefreshAll.
const refreshConcurrency = 4

// Repository is a stored remote repository.
type Repository struct {
	ID        uuid.UUID
	RepoID    string
	URL       string
	Name      string
	ETag      string
	Headers   map[string]string
	FetchedAt time.Time
	CreatedAt time.Time
	Remote    *Remote
}

// DisplayName is the repository name, or its url when unnamed.
func (r Repository) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.URL
}

// Store persists repositories next to projects in the shared database.
type Store struct {
	db     *database.DB
	client *http.Client
	now    func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithHTTPClient sets the client used to download repositories.
func WithHTTPClient(c *http.Client) StoreOption {
	return func(s *Store) { s.client = c }
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// NewStore creates the repositories table if needed.
func NewStore(ctx context.Context, db *database.DB, opts ...StoreOption) (*Store, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("create repositories schema: %w", err)
	}

	s := &Store{
		db:     db,
		client: &http.Client{Timeout: 30 * time.Second},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func validateURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return u.String(), nil
}

// Add downloads the repository at rawURL and stores it. headers are sent with
// every download of this repository.
func (s *Store) Add(ctx context.Context, rawURL string, headers map[string]string) (Repository, error) {
	u, err := validateURL(rawURL)
	if err != nil {
		return Repository{}, err
	}
	if headers == nil {
		headers = map[string]string{}
	}

	remote, etag, err := Download(ctx, s.client, u, headers, "")
	if err != nil {
		return Repository{}, err
	}
	remote.setIDIfNone(remote.URL())

	body, err := json.Marshal(remote)
	if err != nil {
		return Repository{}, fmt.Errorf("encode repository: %w", err)
	}
	headerJSON, err := json.Marshal(headers)
	if err != nil {
		return Repository{}, fmt.Errorf("encode headers: %w", err)
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	repo := Repository{
		ID:        uuid.New(),
		RepoID:    remote.ID(),
		URL:       u,
		Name:      remote.Name(),
		ETag:      etag,
		Headers:   headers,
		FetchedAt: now,
		CreatedAt: now,
		Remote:    remote,
	}

	res, err := s.db.ExecContext(ctx, s.db.Rebind(`INSERT INTO repositories
		(id, repo_id, url, name, etag, headers, body, fetched_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING`),
		repo.ID.String(), repo.RepoID, repo.URL, repo.Name, repo.ETag, string(headerJSON), string(body),
		repo.FetchedAt.UnixMilli(), repo.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return Repository{}, fmt.Errorf("insert repository: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Repository{}, fmt.Errorf("insert repository: %w", err)
	}
	if n == 0 {
		return Repository{}, fmt.Errorf("%w: %s", ErrDuplicate, repo.RepoID)
	}
	return repo, nil
}

// List returns all repositories ordered by name.
func (s *Store) List(ctx context.Context) ([]Repository, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY LOWER(name), url`)
	if err != nil {
		return nil, fmt.Errorf("list repositories: %w", err)
	}
	defer rows.Close()

	var out []Repository
	for rows.Next() {
		r, err := scanRepository(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list repositories: %w", err)
	}
	return out, nil
}

// Get returns the repository with id.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (Repository, error) {
	row := s.db.QueryRowContext(ctx, s.db.Rebind(selectColumns+` WHERE id = ?`), id.String())
	r, err := scanRepository(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Repository{}, ErrNotFound
	}
	return r, err
}

// Remove deletes the repository with id.
func (s *Store) Remove(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM repositories WHERE id = ?`), id.String())
	if err != nil {
		return fmt.Errorf("remove repository: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove repository: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Refresh revalidates the cached document with its ETag and reports whether
// a new document was stored.
func (s *Store) Refresh(ctx context.Context, id uuid.UUID) (bool, error) {
	repo, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return s.refresh(ctx, repo)
}

func (s *Store) refresh(ctx context.Context, repo Repository) (bool, error) {
	remote, etag, err := Download(ctx, s.client, repo.URL, repo.Headers, repo.ETag)
	if err != nil {
		return false, err
	}
	now := s.now().UTC().Truncate(time.Millisecond).UnixMilli()

	if remote == nil {
		_, err := s.db.ExecContext(ctx, s.db.Rebind(`UPDATE repositories SET fetched_at = ? WHERE id = ?`),
			now, repo.ID.String())
		if err != nil {
			return false, fmt.Errorf("update repository: %w", err)
		}
		return false, nil
	}

	// The stored id stays stable even if the document changes it.
	remote.setIDIfNone(repo.RepoID)
	body, err := json.Marshal(remote)
	if err != nil {
		return false, fmt.Errorf("encode repository: %w", err)
	}
	_, err = s.db.ExecContext(ctx, s.db.Rebind(`UPDATE repositories
		SET name = ?, etag = ?, body = ?, fetched_at = ? WHERE id = ?`),
		remote.Name(), etag, string(body), now, repo.ID.String())
	if err != nil {
		return false, fmt.Errorf("update repository: %w", err)
	}
	return true, nil
}

// RefreshAll refreshes every repository. Failures do not stop the others;
// they are returned joined.
func (s *Store) RefreshAll(ctx context.Context) (int, error) {
	repos, err := s.List(ctx)
	if err != nil {
		return 0, err
	}

	changed := make([]bool, len(repos))
	errs := make([]error, len(repos))

	var g errgroup.Group
	g.SetLimit(refreshConcurrency)
	for i, repo := range repos {
		g.Go(func() error {
			ok, err := s.refresh(ctx, repo)
			if err != nil {
				errs[i] = fmt.Errorf("refresh %s: %w", repo.URL, err)
			}
			changed[i] = ok
			return nil
		})
	}
	_ = g.Wait()

	n := 0
	for _, ok := range changed {
		if ok {
			n++
		}
	}
	return n, errors.Join(errs...)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRepository(row scanner) (Repository, error) {
	var (
		r         Repository
		id        string
		headers   string
		body      string
		fetchedAt int64
		createdAt int64
	)
	if err := row.Scan(&id, &r.RepoID, &r.URL, &r.Name, &r.ETag, &headers, &body, &fetchedAt, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Repository{}, err
		}
		return Repository{}, fmt.Errorf("scan repository: %w", err)
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return Repository{}, fmt.Errorf("scan repository id: %w", err)
	}
	r.ID = parsed
	if err := json.Unmarshal([]byte(headers), &r.Headers); err != nil {
		return Repository{}, fmt.Errorf("scan repository headers: %w", err)
	}
	r.Remote, err = Parse([]byte(body), "")
	if err != nil {
		return Repository{}, fmt.Errorf("scan repository body: %w", err)
	}
	r.FetchedAt = time.UnixMilli(fetchedAt).UTC()
	r.CreatedAt = time.UnixMilli(createdAt).UTC()
	return r, nil
}
