package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// ImageBaseW500 prefixes poster paths returned by TMDB.
const ImageBaseW500 = "https://image.tmdb.org/t/p/w500"

// Client is the TMDB API client.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a new TMDB API client.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ---- TMDB Response Types ----

// DiscoverResponse is a page of TMDB movie results.
type DiscoverResponse struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// Movie is a movie from TMDB list results.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  string  `json:"poster_path"`
	GenreIDs    []int   `json:"genre_ids"`
	VoteAverage float64 `json:"vote_average"`
}

// MovieDetail is the detailed movie info from TMDB.
type MovieDetail struct {
	ID      int     `json:"id"`
	Title   string  `json:"title"`
	Genres  []Genre `json:"genres"`
	Runtime int     `json:"runtime"`
}

// Genre is a genre from TMDB.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type genreListResponse struct {
	Genres []Genre `json:"genres"`
}

// ---- Client Methods ----

// DiscoverMovies fetches one page of movies sorted by popularity.
func (c *Client) DiscoverMovies(ctx context.Context, page int) (*DiscoverResponse, error) {
	var result DiscoverResponse
	q := url.Values{"sort_by": {"popularity.desc"}, "page": {fmt.Sprint(page)}}
	slog.Debug("fetching TMDB discover", "page", page)
	if err := c.get(ctx, "/discover/movie", q, &result); err != nil {
		return nil, fmt.Errorf("discover page %d: %w", page, err)
	}
	return &result, nil
}

// GetMovieDetail fetches detailed movie info.
func (c *Client) GetMovieDetail(ctx context.Context, tmdbID int) (*MovieDetail, error) {
	var result MovieDetail
	slog.Debug("fetching TMDB movie detail", "tmdb_id", tmdbID)
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", tmdbID), nil, &result); err != nil {
		return nil, fmt.Errorf("movie %d: %w", tmdbID, err)
	}
	return &result, nil
}

// GetGenres fetches all movie genres.
func (c *Client) GetGenres(ctx context.Context) ([]Genre, error) {
	var result genreListResponse
	slog.Debug("fetching TMDB genres")
	if err := c.get(ctx, "/genre/movie/list", nil, &result); err != nil {
		return nil, fmt.Errorf("genres: %w", err)
	}
	return result.Genres, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, dst any) error {
	if q == nil {
		q = url.Values{}
	}
	q.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("TMDB API returned status %d: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
