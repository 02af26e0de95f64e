package memories_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/memomap/internal/client/apitest"
	"github.com/dmitrijs2005/memomap/internal/client/repositories/memories"
	"github.com/dmitrijs2005/memomap/internal/client/transport"
)

type fixture struct {
	repo  *memories.HTTPRepository
	srv   *apitest.Server
	alice string
	bob   string
}

func setup(t *testing.T) fixture {
	t.Helper()
	srv := apitest.New(t)
	caller, err := transport.NewCaller(transport.Options{BaseURL: srv.URL})
	require.NoError(t, err)

	ctx := context.Background()
	a, err := srv.Auth.Register(ctx, "alice", "pw")
	require.NoError(t, err)
	b, err := srv.Auth.Register(ctx, "bob", "pw")
	require.NoError(t, err)

	return fixture{repo: memories.NewHTTPRepository(caller), srv: srv, alice: *a.Token, bob: *b.Token}
}

func TestHTTP_CreateGetList(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	loc := "Bali"

	m, err := f.repo.Create(ctx, f.alice, "Trip", "https://img/1.jpg", &loc)
	require.NoError(t, err)
	assert.Equal(t, 1, m.ID)
	assert.Equal(t, 1, m.UserID)

	got, err := f.repo.GetByID(ctx, f.bob, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Trip", got.Caption)
	require.NotNil(t, got.Location)
	assert.Equal(t, "Bali", *got.Location)

	own, err := f.repo.ListOwn(ctx, f.bob)
	require.NoError(t, err)
	assert.Empty(t, own)

	all, err := f.repo.ListAll(ctx, f.bob)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "https://img/1.jpg", all[0].ImageURL)
}

func TestHTTP_UpdateAndDelete(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	m, err := f.repo.Create(ctx, f.alice, "Trip", "u1", nil)
	require.NoError(t, err)

	upd, err := f.repo.Update(ctx, f.alice, m.ID, "Trip 2", "u1", nil)
	require.NoError(t, err)
	assert.Equal(t, "Trip 2", upd.Caption)
	assert.Nil(t, upd.Location)

	ok, err := f.repo.Delete(ctx, f.alice, m.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Contains(t, f.srv.Requests(), "DELETE /api/memories/1")
}

func TestHTTP_ErrorsCarryStatusAndMessage(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	m, err := f.repo.Create(ctx, f.alice, "Trip", "u1", nil)
	require.NoError(t, err)

	cases := []struct {
		name   string
		call   func() error
		status int
		msg    string
	}{
		{
			name: "forbidden",
			call: func() error {
				_, err := f.repo.Delete(ctx, f.bob, m.ID)
				return err
			},
			status: 403,
			msg:    memories.ErrForbidden.Error(),
		},
		{
			name: "not found",
			call: func() error {
				_, err := f.repo.GetByID(ctx, f.alice, 42)
				return err
			},
			status: 404,
			msg:    memories.ErrNotFound.Error(),
		},
		{
			name: "bad token",
			call: func() error {
				_, err := f.repo.ListAll(ctx, "Unknown")
				return err
			},
			status: 401,
			msg:    "Unauthorized",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			var apiErr *transport.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tc.status, apiErr.StatusCode)
			assert.Equal(t, tc.msg, apiErr.Message)
		})
	}
}

func TestHTTP_CancelledContext(t *testing.T) {
	f := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.repo.ListAll(ctx, f.alice)
	require.ErrorIs(t, err, context.Canceled)
}
