// Package packages installs VPM package versions into Unity projects through
// a checksum-verified download cache.
package packages

import (
	"archive/zip"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vangoframework/vpmshell/internal/repositories"
)

var (
	ErrInvalidPackage   = errors.New("invalid package manifest")
	ErrChecksumMismatch = errors.New("package checksum mismatch")
	ErrUnsafePath       = errors.New("package archive escapes its folder")
	ErrDownload         = errors.New("failed to download package")
)

// Installer downloads package archives into a cache and extracts them into
// a project's Packages folder.
type Installer struct {
	cacheDir string
	client   *http.Client
	logger   *slog.Logger
}

// InstallerOption configures an Installer.
type InstallerOption func(*Installer)

// WithHTTPClient sets the client used to download archives.
func WithHTTPClient(c *http.Client) InstallerOption {
	return func(i *Installer) { i.client = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) InstallerOption {
	return func(i *Installer) { i.logger = l }
}

// NewInstaller creates an installer caching archives under cacheDir.
func NewInstaller(cacheDir string, opts ...InstallerOption) *Installer {
	i := &Installer{
		cacheDir: cacheDir,
		client:   &http.Client{Timeout: 5 * time.Minute},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// archivePaths returns the cached zip and its checksum file for m.
func (i *Installer) archivePaths(m repositories.Manifest) (zipPath, shaPath string) {
	name := fmt.Sprintf("%s-%s.zip", m.Name, m.Version)
	zipPath = filepath.Join(i.cacheDir, "Repos", m.Name, name)
	return zipPath, zipPath + ".sha256"
}

func validate(m repositories.Manifest) error {
	for field, v := range map[string]string{"name": m.Name, "version": m.Version} {
		if v == "" || v == "." || strings.ContainsAny(v, `/\`) || !filepath.IsLocal(v) {
			return fmt.Errorf("%w: %s %q", ErrInvalidPackage, field, v)
		}
	}
	if m.URL == "" {
		return fmt.Errorf("%w: %s has no url", ErrInvalidPackage, m.Name)
	}
	return nil
}

// Install places m into projectDir/Packages/<name>, replacing any existing
// copy. A cached archive is reused when its recorded checksum still matches.
func (i *Installer) Install(ctx context.Context, m repositories.Manifest, projectDir string) error {
	if err := validate(m); err != nil {
		return err
	}
	zipPath, shaPath := i.archivePaths(m)

	data, ok := i.cached(zipPath, shaPath, m.ZipSHA256)
	if !ok {
		var err error
		data, err = i.download(ctx, m, zipPath, shaPath)
		if err != nil {
			return err
		}
	} else {
		i.logger.Debug("using cached package", "package", m.Name, "version", m.Version)
	}

	dest := filepath.Join(projectDir, "Packages", m.Name)
	if err := extract(data, dest); err != nil {
		return fmt.Errorf("extract %s@%s: %w", m.Name, m.Version, err)
	}

	i.logger.Info("package installed", "package", m.Name, "version", m.Version, "project", projectDir)
	return nil
}

// cached returns the archive when both files exist, the checksum file agrees
// with the repository's checksum (if any) and the archive hashes to it.
func (i *Installer) cached(zipPath, shaPath, want string) ([]byte, bool) {
	sha, err := os.ReadFile(shaPath)
	if err != nil {
		return nil, false
	}
	recorded, _, _ := strings.Cut(strings.TrimSpace(string(sha)), " ")
	if len(recorded) != sha256.Size*2 {
		return nil, false
	}
	if want != "" && !strings.EqualFold(want, recorded) {
		return nil, false
	}

	data, err := os.ReadFile(zipPath)
	if err != nil {
		return nil, false
	}
	sum := sha256.Sum256(data)
	if !strings.EqualFold(hex.EncodeToString(sum[:]), recorded) {
		return nil, false
	}
	return data, true
}

func (i *Installer) download(ctx context.Context, m repositories.Manifest, zipPath, shaPath string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPackage, err)
	}
	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownload, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %s", ErrDownload, m.URL, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownload, err)
	}
	sum := sha256.Sum256(data)
	got := hex.EncodeToString(sum[:])
	if m.ZipSHA256 != "" && !strings.EqualFold(m.ZipSHA256, got) {
		return nil, fmt.Errorf("%w: %s@%s: want %s, got %s", ErrChecksumMismatch, m.Name, m.Version, m.ZipSHA256, got)
	}

	if err := os.MkdirAll(filepath.Dir(zipPath), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	if err := writeFileAtomic(zipPath, data); err != nil {
		return nil, fmt.Errorf("write cache: %w", err)
	}
	line := fmt.Sprintf("%s %s\n", got, filepath.Base(zipPath))
	if err := writeFileAtomic(shaPath, []byte(line)); err != nil {
		return nil, fmt.Errorf("write checksum: %w", err)
	}
	return data, nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// extract checks every entry before touching dest, then replaces dest with
// the archive contents.
func extract(data []byte, dest string) error {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return fmt.Errorf("%w: %v", ErrInvalidPackage, err)
	}
	for _, f := range zr.File {
		if !filepath.IsLocal(filepath.FromSlash(f.Name)) {
			return fmt.Errorf("%w: %s", ErrUnsafePath, f.Name)
		}
	}

	if err := os.RemoveAll(dest); err != nil {
		return err
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}
	for _, f := range zr.File {
		path := filepath.Join(dest, filepath.FromSlash(f.Name))
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(path, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := extractFile(f, path); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
