package messenger

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphClientSendText(t *testing.T) {
	t.Parallel()

	var gotAuth string
	var gotPayload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/me/messages", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &gotPayload))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message_id":"m1"}`))
	}))
	defer srv.Close()

	c := NewGraphClient("page-token")
	c.baseAPI = srv.URL

	require.NoError(t, c.SendText(context.Background(), "fb-user-1", "สวัสดีค่ะ"))

	assert.Equal(t, "Bearer page-token", gotAuth)
	recipient, ok := gotPayload["recipient"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "fb-user-1", recipient["id"])
	message, ok := gotPayload["message"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "สวัสดีค่ะ", message["text"])
}

func TestGraphClientSendImage(t *testing.T) {
	t.Parallel()

	var gotPayload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &gotPayload))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewGraphClient("page-token")
	c.baseAPI = srv.URL

	require.NoError(t, c.SendImage(context.Background(), "fb-user-1", "https://img.example/black.jpg"))

	message := gotPayload["message"].(map[string]any)
	attachment := message["attachment"].(map[string]any)
	assert.Equal(t, "image", attachment["type"])
	payload := attachment["payload"].(map[string]any)
	assert.Equal(t, "https://img.example/black.jpg", payload["url"])
}

func TestGraphClientSendFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid recipient"}}`))
	}))
	defer srv.Close()

	c := NewGraphClient("page-token")
	c.baseAPI = srv.URL

	err := c.SendText(context.Background(), "nobody", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "invalid recipient")
}
