package prefs_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vangoframework/vpmshell/internal/prefs"
)

const testSecret = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func newStore(t *testing.T, secure bool) *prefs.Store {
	t.Helper()
	store, err := prefs.NewStore(testSecret, time.Hour, secure)
	require.NoError(t, err)
	return store
}

func TestStore_SetAndGet(t *testing.T) {
	store := newStore(t, false)

	w := httptest.NewRecorder()
	err := store.Set(w, prefs.Preferences{SidebarCollapsed: true, ProjectSort: prefs.SortName})
	require.NoError(t, err)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "vpmshell_prefs", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])

	got, err := store.Get(req)
	require.NoError(t, err)
	assert.True(t, got.SidebarCollapsed)
	assert.Equal(t, prefs.SortName, got.ProjectSort)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestStore_NoCookie(t *testing.T) {
	store := newStore(t, false)

	got, err := store.Get(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, http.ErrNoCookie)
	assert.Equal(t, prefs.Defaults(), got)
}

func TestStore_UnknownSortIsNormalized(t *testing.T) {
	store := newStore(t, false)

	w := httptest.NewRecorder()
	require.NoError(t, store.Set(w, prefs.Preferences{ProjectSort: "size"}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(w.Result().Cookies()[0])

	got, err := store.Get(req)
	require.NoError(t, err)
	assert.Equal(t, prefs.SortLastModified, got.ProjectSort)
}

func TestStore_Clear(t *testing.T) {
	store := newStore(t, false)

	w := httptest.NewRecorder()
	store.Clear(w)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}

func TestStore_SecureCookie(t *testing.T) {
	store := newStore(t, true)

	w := httptest.NewRecorder()
	require.NoError(t, store.Set(w, prefs.Defaults()))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
}

func TestStore_InvalidCookie(t *testing.T) {
	store := newStore(t, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "vpmshell_prefs", Value: "tampered"})

	got, err := store.Get(req)
	assert.Error(t, err)
	assert.Equal(t, prefs.Defaults(), got)
}

func TestNewStore_ShortSecret(t *testing.T) {
	_, err := prefs.NewStore("short", time.Hour, false)
	assert.ErrorIs(t, err, prefs.ErrInvalidSecret)
}

func TestContextRoundTrip(t *testing.T) {
	assert.Equal(t, prefs.Defaults(), prefs.FromContext(context.Background()))

	ctx := prefs.WithContext(context.Background(), prefs.Preferences{SidebarCollapsed: true})
	assert.True(t, prefs.FromContext(ctx).SidebarCollapsed)
}
