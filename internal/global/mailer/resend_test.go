package mailer

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"recruiting-portal/config"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestSend(t *testing.T) {
	var (
		gotAuth string
		got     sendRequest
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/emails", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email-1"}`))
	}))
	defer server.Close()

	m := New(resty.New(), config.Email{APIKey: "re_key", BaseURL: server.URL + "/", From: "careers@company.com"})
	id, err := m.Send(context.Background(), Message{
		To:          []string{"hiring@company.com"},
		Subject:     "Report",
		HTML:        "<p>hi</p>",
		Attachments: []Attachment{{Filename: "report.csv", Content: []byte("a,b\n1,2\n")}},
	})
	require.NoError(t, err)
	require.Equal(t, "email-1", id)
	require.Equal(t, "Bearer re_key", gotAuth)
	require.Equal(t, "careers@company.com", got.From)
	require.Equal(t, []string{"hiring@company.com"}, got.To)
	require.Len(t, got.Attachments, 1)

	content, err := base64.StdEncoding.DecodeString(got.Attachments[0].Content)
	require.NoError(t, err)
	require.Equal(t, "a,b\n1,2\n", string(content))
}

func TestSendProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"name":"validation_error","message":"invalid from address"}`))
	}))
	defer server.Close()

	m := New(resty.New(), config.Email{APIKey: "re_key", BaseURL: server.URL})
	_, err := m.Send(context.Background(), Message{To: []string{"a@b.com"}, Subject: "x"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "422")
	require.Contains(t, err.Error(), "invalid from address")
}

func TestSendRequiresKeyAndRecipient(t *testing.T) {
	m := New(resty.New(), config.Email{BaseURL: "http://127.0.0.1:1"})
	_, err := m.Send(context.Background(), Message{To: []string{"a@b.com"}})
	require.ErrorIs(t, err, ErrAPIKeyMissing)

	m = New(resty.New(), config.Email{APIKey: "re_key", BaseURL: "http://127.0.0.1:1"})
	_, err = m.Send(context.Background(), Message{})
	require.Error(t, err)
}
