package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, "clerk_self", zap.NewNop())
	require.NoError(t, err)
	return c
}

func TestNewClientRejectsEmptyBaseURL(t *testing.T) {
	_, err := NewClient("", "clerk_self", zap.NewNop())
	assert.ErrorIs(t, err, ErrEmptyBaseURL)
}

func TestRequestsCarryIdentityHeader(t *testing.T) {
	var gotHeader, gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Clerk-User-Id")
		gotPath = r.URL.Path
		w.Write([]byte(`[]`))
	})

	_, err := c.GetChannels(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, "clerk_self", gotHeader)
	assert.Equal(t, "/api/channels", gotPath)
}

func TestGetMessagesSendsLimit(t *testing.T) {
	var gotLimit string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		w.Write([]byte(`[{"id":3},{"id":2},{"id":1}]`))
	})

	msgs, err := c.GetMessages(context.Background(), 7, 25)
	require.NoError(t, err)

	assert.Equal(t, "25", gotLimit)
	require.Len(t, msgs, 3)
	// the backend page stays most-recent-first; views reverse it
	assert.Equal(t, int64(3), msgs[0].ID)
}

func TestGetMessagesDefaultsLimit(t *testing.T) {
	var gotLimit string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		w.Write([]byte(`[]`))
	})

	_, err := c.GetMessages(context.Background(), 7, 0)
	require.NoError(t, err)
	assert.Equal(t, "50", gotLimit)
}

func TestErrorCarriesServerMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"not a channel member"}`))
	})

	_, err := c.GetMessages(context.Background(), 7, 10)
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "not a channel member", apiErr.Message)
}

func TestErrorFallsBackToStatusText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.GetChannels(context.Background(), 0)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
}

func TestToggleReactionReturnsNewTotal(t *testing.T) {
	var gotMethod, gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"count":4}`))
	})

	count, err := c.ToggleReaction(context.Background(), 12)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/messages/12/reactions", gotPath)
	assert.Equal(t, 4, count)
}

func TestDeleteMessage(t *testing.T) {
	var gotMethod, gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.DeleteMessage(context.Background(), 12))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/messages/12", gotPath)
}

func TestGetConversationAddressesOtherUser(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Write([]byte(`[]`))
	})

	_, err := c.GetConversation(context.Background(), 42, 20)
	require.NoError(t, err)

	assert.Equal(t, "/api/direct-messages/conversation/42", gotPath)
	assert.Equal(t, []string{"clerk_self"}, gotQuery["clerkId"])
	assert.Equal(t, []string{"20"}, gotQuery["limit"])
}
