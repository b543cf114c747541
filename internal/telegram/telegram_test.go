package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBookingURLs(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "Single URL",
			text:     "check this https://www.booking.com/hotel/nl/zeezicht.html?aid=1",
			expected: []string{"https://www.booking.com/hotel/nl/zeezicht.html?aid=1"},
		},
		{
			name: "Multiple URLs in order",
			text: "https://booking.com/a and https://www.booking.com/b",
			expected: []string{
				"https://booking.com/a",
				"https://www.booking.com/b",
			},
		},
		{
			name:     "Case insensitive host",
			text:     "HTTPS://WWW.BOOKING.COM/searchresults.html",
			expected: []string{"HTTPS://WWW.BOOKING.COM/searchresults.html"},
		},
		{
			name:     "No URLs",
			text:     "hello there",
			expected: nil,
		},
		{
			name:     "Other hosts ignored",
			text:     "https://www.airbnb.com/rooms/1234",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractBookingURLs(tt.text))
		})
	}
}

func TestSendMessage(t *testing.T) {
	var gotPayload map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottest-token/sendMessage", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	s := NewService(logrus.New(), "test-token", 30)
	s.apiBase = server.URL

	err := s.SendMessage(42, "Saved ✅ Hotel Zeezicht")
	require.NoError(t, err)
	assert.Equal(t, float64(42), gotPayload["chat_id"])
	assert.Equal(t, "Saved ✅ Hotel Zeezicht", gotPayload["text"])
	assert.Equal(t, "HTML", gotPayload["parse_mode"])
}

func TestSendMessage_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	s := NewService(logrus.New(), "bad-token", 30)
	s.apiBase = server.URL

	err := s.SendMessage(42, "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid bot token")
}

func TestGetUpdates_AdvancesOffset(t *testing.T) {
	var gotOffset []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOffset = append(gotOffset, r.URL.Query().Get("offset"))
		w.Write([]byte(`{
			"ok": true,
			"result": [
				{"update_id": 10, "message": {"message_id": 1, "chat": {"id": 42}, "text": "hello"}},
				{"update_id": 11, "message": {"message_id": 2, "chat": {"id": 42}, "text": "world"}}
			]
		}`))
	}))
	defer server.Close()

	s := NewService(logrus.New(), "test-token", 30)
	s.apiBase = server.URL

	updates, err := s.GetUpdates(context.Background())
	require.NoError(t, err)
	require.Len(t, updates, 2)
	assert.Equal(t, "hello", updates[0].Message.Text)

	_, err = s.GetUpdates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "12"}, gotOffset)
}
