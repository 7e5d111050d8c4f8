package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_DiscoverMovies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/discover/movie", r.URL.Path)
		assert.Equal(t, "key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		w.Write([]byte(`{"page":2,"results":[{"id":10,"title":"Heat","release_date":"1995-12-15","genre_ids":[28],"vote_average":8.3}]}`))
	}))
	defer srv.Close()

	res, err := NewClient("key", srv.URL).DiscoverMovies(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, "Heat", res.Results[0].Title)
	assert.Equal(t, []int{28}, res.Results[0].GenreIDs)
}

func TestClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status_message":"Invalid API key"}`))
	}))
	defer srv.Close()

	_, err := NewClient("bad", srv.URL).GetGenres(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "Invalid API key")
}
