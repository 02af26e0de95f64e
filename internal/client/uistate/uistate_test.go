package uistate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/memomap/internal/client/models"
)

func TestReduceAuth(t *testing.T) {
	user := models.User{ID: 1, Username: "alice"}

	tests := []struct {
		name        string
		state       AuthStatus
		event       AuthEvent
		wantPhase   AuthPhase
		wantEffects []Effect
	}{
		{"submit", AuthStatus{}, AuthSubmit{}, AuthSubmitting, nil},
		{"success", AuthStatus{Phase: AuthSubmitting}, AuthSucceededEvt{User: user}, AuthSucceeded,
			[]Effect{PersistSession, NavigateHome, ResetForm}},
		{"failure", AuthStatus{Phase: AuthSubmitting}, AuthFailedEvt{Message: "nope"}, AuthFailed, nil},
		{"consume success", AuthStatus{Phase: AuthSucceeded, User: &user}, AuthConsumed{}, AuthIdle, nil},
		{"consume failure", AuthStatus{Phase: AuthFailed}, AuthConsumed{}, AuthIdle, nil},
		{"consume while submitting", AuthStatus{Phase: AuthSubmitting}, AuthConsumed{}, AuthSubmitting, nil},
		{"logout", AuthStatus{Phase: AuthSucceeded}, AuthLoggedOut{}, AuthIdle,
			[]Effect{ClearSession, NavigateLogin}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, effects := ReduceAuth(tt.state, tt.event)
			assert.Equal(t, tt.wantPhase, got.Phase)
			assert.Equal(t, tt.wantEffects, effects)
		})
	}
}

func TestReduceAuth_CarriesUserAndMessage(t *testing.T) {
	s, _ := ReduceAuth(AuthStatus{}, AuthSucceededEvt{User: models.User{ID: 9}})
	if assert.NotNil(t, s.User) {
		assert.Equal(t, 9, s.User.ID)
	}

	s, _ = ReduceAuth(s, AuthFailedEvt{Message: "Username or password wrong"})
	assert.Nil(t, s.User)
	assert.Equal(t, "Username or password wrong", s.Message)
}

func TestAuthFormValid(t *testing.T) {
	assert.False(t, AuthForm{}.Valid())
	assert.False(t, AuthForm{Username: "  ", Password: "x"}.Valid())
	assert.False(t, AuthForm{Username: "a"}.Valid())
	assert.True(t, AuthForm{Username: "a", Password: "x"}.Valid())
}

func TestReduceList(t *testing.T) {
	items := []models.MemoryPost{{ID: 1}, {ID: 2}}

	s, eff := ReduceList(ListStatus{}, ListRequested{})
	assert.Equal(t, ListLoading, s.Phase)
	assert.Nil(t, eff)

	s, _ = ReduceList(s, ListLoadedEvt{Items: items})
	assert.Equal(t, ListLoaded, s.Phase)
	assert.Equal(t, items, s.Items)

	s, _ = ReduceList(s, ListRequested{})
	assert.Equal(t, ListLoading, s.Phase)
	assert.Equal(t, items, s.Items, "reload keeps previous items")

	s, _ = ReduceList(s, ListFailed{Message: "User not authenticated"})
	assert.Equal(t, ListError, s.Phase)
	assert.Empty(t, s.Items)
	assert.Equal(t, "User not authenticated", s.Message)
}

func TestReduceItem_MutationRefetchRules(t *testing.T) {
	post := &models.MemoryPost{ID: 3}

	tests := []struct {
		kind Mutation
		want []Effect
	}{
		{Created, []Effect{RefetchOwn}},
		{Deleted, []Effect{RefetchOwn}},
		{Updated, []Effect{RefetchFeed}},
	}
	for _, tt := range tests {
		s, eff := ReduceItem(ItemStatus{Phase: ItemLoading}, ItemMutated{Kind: tt.kind, Item: post})
		assert.Equal(t, ItemOperationSucceeded, s.Phase)
		assert.Equal(t, tt.want, eff)
	}
}

func TestReduceItem_LocationFlagSurvivesTransitions(t *testing.T) {
	s, _ := ReduceItem(ItemStatus{}, LocationFetching{On: true})
	assert.True(t, s.FetchingLocation)

	s, _ = ReduceItem(s, ItemRequested{})
	assert.True(t, s.FetchingLocation)
	assert.Equal(t, ItemLoading, s.Phase)

	s, _ = ReduceItem(s, ItemLoadedEvt{Item: models.MemoryPost{ID: 1}})
	assert.True(t, s.FetchingLocation)
	assert.Equal(t, 1, s.Item.ID)

	s, _ = ReduceItem(s, ItemFailed{Message: "x"})
	assert.True(t, s.FetchingLocation)
	assert.Nil(t, s.Item)

	s, _ = ReduceItem(s, ItemReset{})
	assert.Equal(t, ItemStatus{}, s)
}

func TestPhaseStrings(t *testing.T) {
	assert.Equal(t, "submitting", AuthSubmitting.String())
	assert.Equal(t, "loaded", ListLoaded.String())
	assert.Equal(t, "operation-succeeded", ItemOperationSucceeded.String())
	assert.Equal(t, "refetch-feed", RefetchFeed.String())
}
