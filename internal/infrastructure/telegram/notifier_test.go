package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishSummaryPostsForm(t *testing.T) {
	t.Parallel()

	var gotPath, gotChat, gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotPath = r.URL.Path
		gotChat = r.PostForm.Get("chat_id")
		gotText = r.PostForm.Get("text")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewNotifier("token123", "-100200")
	n.apiBase = srv.URL

	require.NoError(t, n.PublishSummary(context.Background(), "Total created: 12"))
	assert.Equal(t, "/bottoken123/sendMessage", gotPath)
	assert.Equal(t, "-100200", gotChat)
	assert.Equal(t, "Total created: 12", gotText)
}

func TestPublishSummaryReportsAPIErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	n := NewNotifier("bad", "1")
	n.apiBase = srv.URL
	require.Error(t, n.PublishSummary(context.Background(), "x"))

	assert.Error(t, NewNotifier("", "").PublishSummary(context.Background(), "x"))
}
