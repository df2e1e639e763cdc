package incident

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendPostsEvent(t *testing.T) {
	var gotPath string
	var gotBody Event
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"accepted":true,"id":"inc-1"}`))
	}))
	defer srv.Close()

	s := NewSender(srv.URL)
	result, err := s.Send(Event{SourceID: 1, EventID: 5, Clock: 100, Value: 1})
	require.NoError(t, err)

	assert.Equal(t, "/events", gotPath)
	assert.EqualValues(t, 5, gotBody.EventID)
	assert.True(t, result.Accepted)
	assert.Equal(t, "inc-1", result.ID)
}

func TestSendCommentPostsToIncidentPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"accepted":true}`))
	}))
	defer srv.Close()

	s := NewSender(srv.URL)
	_, err := s.SendComment(Incident{ID: "inc-1"}, "investigating")
	require.NoError(t, err)
	assert.Equal(t, "/incidents/inc-1/comments", gotPath)
}

func TestSendSurfacesNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewSender(srv.URL)
	_, err := s.Send(Event{})
	assert.Error(t, err)
}
