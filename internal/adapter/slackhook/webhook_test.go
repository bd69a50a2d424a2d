package slackhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aws-slack-notifier/internal/domain/model"
)

func testMessage() model.Message {
	return model.Message{
		Channel:    "#alerts",
		Title:      "<https://example.com|Foo> is ALARM",
		Body:       "memory high",
		Color:      model.ColorDanger,
		Footer:     "CloudWatch",
		FooterIcon: "https://example.com/icon.ico",
		Timestamp:  1502223081,
	}
}

func TestDeliverPostsSlackPayload(t *testing.T) {
	var (
		gotBody        map[string]any
		gotContentType string
		gotLength      int64
		rawLength      int
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotContentType = r.Header.Get("Content-Type")
		gotLength = r.ContentLength
		data, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		rawLength = len(data)
		assert.NoError(t, json.Unmarshal(data, &gotBody))
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	outcome, err := NewWebhook(time.Second, nil).Deliver(context.Background(), testMessage(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, model.OutcomeSuccess, outcome.Kind)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, int64(rawLength), gotLength)

	assert.Equal(t, "#alerts", gotBody["channel"])
	attachments, ok := gotBody["attachments"].([]any)
	require.True(t, ok)
	require.Len(t, attachments, 1)
	att := attachments[0].(map[string]any)
	assert.Equal(t, "danger", att["color"])
	assert.Equal(t, "<https://example.com|Foo> is ALARM", att["title"])
	assert.Equal(t, "memory high", att["text"])
	assert.Equal(t, "CloudWatch", att["footer"])
	assert.Equal(t, "https://example.com/icon.ico", att["footer_icon"])
	assert.EqualValues(t, 1502223081, att["ts"])
}

func TestDeliverOmitsEmptyChannel(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
	}))
	defer srv.Close()

	msg := testMessage()
	msg.Channel = ""
	_, err := NewWebhook(time.Second, nil).Deliver(context.Background(), msg, srv.URL)
	require.NoError(t, err)
	assert.NotContains(t, gotBody, "channel")
}

func TestDeliverClassifiesResponses(t *testing.T) {
	cases := []struct {
		status int
		want   model.OutcomeKind
	}{
		{status: http.StatusOK, want: model.OutcomeSuccess},
		{status: http.StatusNoContent, want: model.OutcomeSuccess},
		{status: http.StatusBadRequest, want: model.OutcomeClientError},
		{status: http.StatusNotFound, want: model.OutcomeClientError},
		{status: http.StatusInternalServerError, want: model.OutcomeServerError},
		{status: http.StatusServiceUnavailable, want: model.OutcomeServerError},
	}
	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tc.status < http.StatusBadRequest {
					w.WriteHeader(tc.status)
					return
				}
				http.Error(w, "nope", tc.status)
			}))
			defer srv.Close()

			outcome, err := NewWebhook(time.Second, nil).Deliver(context.Background(), testMessage(), srv.URL)
			require.NoError(t, err)
			assert.Equal(t, tc.want, outcome.Kind)
			assert.Equal(t, tc.status, outcome.StatusCode)
			assert.Equal(t, http.StatusText(tc.status), outcome.Status)
		})
	}
}

func TestDeliverTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewWebhook(time.Second, nil).Deliver(context.Background(), testMessage(), url)
	require.Error(t, err)
}

func TestDeliverRequiresEndpoint(t *testing.T) {
	_, err := NewWebhook(time.Second, nil).Deliver(context.Background(), testMessage(), "")
	require.Error(t, err)
}
