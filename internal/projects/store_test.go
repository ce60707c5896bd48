package projects_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vangoframework/vpmshell/internal/database"
	"github.com/vangoframework/vpmshell/internal/projects"
)

// tickingClock advances one minute per call so insert order is observable.
func tickingClock() func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func openDB(t *testing.T, dsn string) *database.DB {
	t.Helper()
	db, err := database.Open(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func openStore(t *testing.T) *projects.Store {
	t.Helper()
	db := openDB(t, "file:"+filepath.Join(t.TempDir(), "projects.db"))
	store, err := projects.NewStore(context.Background(), db, projects.WithClock(tickingClock()))
	require.NoError(t, err)
	return store
}

func TestStore_AddAndList(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	zeta, err := store.Add(ctx, projects.AddParams{Path: "/home/me/Unity/Zeta", UnityVersion: "2022.3.6f1", Type: projects.TypeWorlds})
	require.NoError(t, err)
	_, err = store.Add(ctx, projects.AddParams{Path: `C:\Unity\alpha`, Type: projects.TypeAvatars})
	require.NoError(t, err)

	list, err := store.List(ctx, projects.SortLastModified)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "alpha", list[0].Name())
	assert.Equal(t, "Zeta", list[1].Name())

	assert.Equal(t, zeta.ID, list[1].ID)
	assert.Equal(t, "2022.3.6f1", list[1].UnityVersion)
	assert.Equal(t, projects.TypeWorlds, list[1].Type)
	assert.False(t, list[1].Favorite)
	assert.True(t, zeta.CreatedAt.Equal(list[1].CreatedAt))

	byName, err := store.List(ctx, projects.SortName)
	require.NoError(t, err)
	assert.Equal(t, "alpha", byName[0].Name())
	assert.Equal(t, "Zeta", byName[1].Name())
}

func TestStore_AddRejectsDuplicatesAndEmptyPaths(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	_, err := store.Add(ctx, projects.AddParams{Path: "/p/one"})
	require.NoError(t, err)

	_, err = store.Add(ctx, projects.AddParams{Path: " /p/one "})
	assert.ErrorIs(t, err, projects.ErrDuplicate)

	_, err = store.Add(ctx, projects.AddParams{Path: "   "})
	assert.ErrorIs(t, err, projects.ErrInvalidPath)
}

func TestStore_AddRejectsUnknownTypes(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	for _, typ := range []projects.Type{-7, projects.TypeVPMStarter + 1, 99} {
		_, err := store.Add(ctx, projects.AddParams{Path: "/p/typed", Type: typ})
		assert.ErrorIs(t, err, projects.ErrInvalidType, "type %d", int(typ))
	}

	list, err := store.List(ctx, projects.SortLastModified)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStore_ConcurrentAddOfSamePath(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	const workers = 8
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = store.Add(ctx, projects.AddParams{Path: "/p/race"})
		}()
	}
	wg.Wait()

	added := 0
	for _, err := range errs {
		if err == nil {
			added++
			continue
		}
		assert.ErrorIs(t, err, projects.ErrDuplicate)
	}
	assert.Equal(t, 1, added)
}

func TestStore_Remove(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	_, err := store.Add(ctx, projects.AddParams{Path: "/p/one"})
	require.NoError(t, err)

	n, err := store.Remove(ctx, "/p/one")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = store.Remove(ctx, "/p/one")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	list, err := store.List(ctx, projects.SortLastModified)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStore_SetFavorite(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	p, err := store.Add(ctx, projects.AddParams{Path: "/p/fav"})
	require.NoError(t, err)

	require.NoError(t, store.SetFavorite(ctx, p.ID, true))
	got, err := store.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Favorite)

	assert.ErrorIs(t, store.SetFavorite(ctx, uuid.New(), true), projects.ErrNotFound)

	_, err = store.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, projects.ErrNotFound)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dsn := "sqlite://" + filepath.Join(t.TempDir(), "reopen.db")

	db, err := database.Open(ctx, dsn)
	require.NoError(t, err)
	store, err := projects.NewStore(ctx, db)
	require.NoError(t, err)
	_, err = store.Add(ctx, projects.AddParams{Path: "/p/kept"})
	require.NoError(t, err)
	require.NoError(t, store.Health(ctx))
	require.NoError(t, db.Close())

	store, err = projects.NewStore(ctx, openDB(t, dsn))
	require.NoError(t, err)

	list, err := store.List(ctx, projects.SortLastModified)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "/p/kept", list[0].Path)
}

func TestProjectNameAndType(t *testing.T) {
	assert.Equal(t, "World", projects.Project{Path: "/a/b/World/"}.Name())
	assert.Equal(t, "Avatar", projects.Project{Path: `D:\Projects\Avatar`}.Name())
	assert.Equal(t, "bare", projects.Project{Path: "bare"}.Name())

	assert.Equal(t, "VPM Starter", projects.TypeVPMStarter.String())
	assert.Equal(t, "Unexpected(42)", projects.Type(42).String())
	assert.Len(t, projects.Types(), 10)
	for _, typ := range projects.Types() {
		assert.True(t, typ.Valid(), typ.String())
	}
	assert.False(t, projects.Type(-1).Valid())
	assert.False(t, projects.Type(10).Valid())

	assert.Equal(t, "unknown", projects.Project{}.UnityVersionOrUnknown())
}

func TestDetectUnityVersion(t *testing.T) {
	dir := t.TempDir()

	version, err := projects.DetectUnityVersion(dir)
	require.NoError(t, err)
	assert.Empty(t, version)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "ProjectSettings"), 0o755))
	content := "m_EditorVersion: 2022.3.22f1\nm_EditorVersionWithRevision: 2022.3.22f1 (887be4894c44)\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ProjectSettings", "ProjectVersion.txt"), []byte(content), 0o644))

	version, err = projects.DetectUnityVersion(dir)
	require.NoError(t, err)
	assert.Equal(t, "2022.3.22f1", version)
}
