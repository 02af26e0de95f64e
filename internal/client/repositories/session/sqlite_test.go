package session

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/memomap/internal/client/models"
)

func openTemp(t *testing.T) (*SQLiteStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state", "memomap.db")
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func ptr[T any](v T) *T { return &v }

func TestSQLite_DefaultsWhenEmpty(t *testing.T) {
	s, _ := openTemp(t)

	got, err := s.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSession(), got)
	assert.False(t, got.LoggedIn())
}

func TestSQLite_SavePersistsAcrossReopen(t *testing.T) {
	s, path := openTemp(t)
	ctx := context.Background()

	want := models.SessionState{Token: "tok-1", Username: "alice", UserID: 7}
	require.NoError(t, s.Save(ctx, models.FullUpdate(want)))
	require.NoError(t, s.Close())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.True(t, got.LoggedIn())
}

func TestSQLite_PartialSaveKeepsOtherKeys(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, models.FullUpdate(models.SessionState{Token: "t", Username: "alice", UserID: 3})))
	require.NoError(t, s.Save(ctx, models.SessionUpdate{Username: ptr("bob")}))

	got, err := s.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SessionState{Token: "t", Username: "bob", UserID: 3}, got)
}

func TestSQLite_ClearRestoresDefaults(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, models.FullUpdate(models.SessionState{Token: "t", Username: "alice", UserID: 3})))
	require.NoError(t, s.Clear(ctx))

	got, err := s.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSession(), got)
}

func TestSQLite_MalformedIDReadsAsDefault(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()

	_, err := s.db.ExecContext(ctx, `INSERT INTO session (key, value) VALUES ('id', 'abc')`)
	require.NoError(t, err)

	got, err := s.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, got.UserID)
}

func TestSQLite_WatchSeesEachSaveWhole(t *testing.T) {
	s, _ := openTemp(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := s.Watch(ctx)
	first := <-ch
	assert.Equal(t, models.DefaultSession(), first)

	logged := models.SessionState{Token: "t", Username: "alice", UserID: 3}
	require.NoError(t, s.Save(ctx, models.FullUpdate(logged)))
	assert.Equal(t, logged, <-ch)

	require.NoError(t, s.Clear(ctx))
	assert.Equal(t, models.DefaultSession(), <-ch)
}

func TestSQLite_MigrationFailure(t *testing.T) {
	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })
	gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return errors.New("boom")
	}

	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "x.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestSQLite_InMemoryPath(t *testing.T) {
	s, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Save(context.Background(), models.SessionUpdate{Token: ptr("t")}))
	got, err := s.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "t", got.Token)
}

func TestSQLite_CloseEndsWatchers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.db")
	s, err := Open(context.Background(), path)
	require.NoError(t, err)

	ch := s.Watch(context.Background())
	<-ch
	require.NoError(t, s.Close())

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("watch channel not closed")
	}
}
