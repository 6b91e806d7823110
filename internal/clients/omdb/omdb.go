// Package omdb is a client for the OMDb movie metadata API.
package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"cinelog/proj/internal/services/movies"
)

type Client struct {
	log     *slog.Logger
	apiKey  string
	baseURL string
	httpc   *http.Client
}

func New(log *slog.Logger, apiKey, baseURL string, timeout time.Duration) *Client {
	return &Client{
		log:     log,
		apiKey:  apiKey,
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// OMDb signals failure inside a 200 response: {"Response":"False","Error":"..."}.
type payload struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

type searchPayload struct {
	payload
	Search []struct {
		ImdbID string `json:"imdbID"`
		Title  string `json:"Title"`
		Year   string `json:"Year"`
		Poster string `json:"Poster"`
	} `json:"Search"`
	TotalResults string `json:"totalResults"`
}

type detailsPayload struct {
	payload
	ImdbID     string `json:"imdbID"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Poster     string `json:"Poster"`
	Plot       string `json:"Plot"`
	Director   string `json:"Director"`
	Actors     string `json:"Actors"`
	Genre      string `json:"Genre"`
	ImdbRating string `json:"imdbRating"`
}

func (c *Client) Search(ctx context.Context, query string, page int) (*movies.SearchResultDTO, error) {
	const op = "omdb.Client.Search"
	log := c.log.With("op", op, "query", query, "page", page)
	params := url.Values{}
	params.Set("s", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("type", "movie")
	var body searchPayload
	if err := c.get(ctx, params, &body); err != nil {
		log.Error("Error calling omdb search", "errMsg", err.Error())
		return nil, err
	}
	if body.Response == "False" {
		log.Info("omdb reported no results", "omdbError", body.Error)
		return nil, movies.ErrNoResults
	}
	total, _ := strconv.Atoi(body.TotalResults)
	result := &movies.SearchResultDTO{
		Results:      make([]movies.SearchItemDTO, 0, len(body.Search)),
		Page:         page,
		TotalResults: total,
	}
	for _, item := range body.Search {
		result.Results = append(result.Results, movies.SearchItemDTO{
			ImdbID: item.ImdbID,
			Title:  item.Title,
			Year:   item.Year,
			Poster: item.Poster,
		})
	}
	return result, nil
}

func (c *Client) GetByID(ctx context.Context, imdbID string) (*movies.MovieDetailsDTO, error) {
	const op = "omdb.Client.GetByID"
	log := c.log.With("op", op, "imdb_id", imdbID)
	params := url.Values{}
	params.Set("i", imdbID)
	params.Set("plot", "full")
	var body detailsPayload
	if err := c.get(ctx, params, &body); err != nil {
		log.Error("Error calling omdb details", "errMsg", err.Error())
		return nil, err
	}
	if body.Response == "False" {
		log.Info("omdb reported movie not found", "omdbError", body.Error)
		return nil, movies.ErrMovieNotFound
	}
	return &movies.MovieDetailsDTO{
		ImdbID:   body.ImdbID,
		Title:    body.Title,
		Year:     body.Year,
		Poster:   body.Poster,
		Plot:     body.Plot,
		Director: body.Director,
		Actors:   body.Actors,
		Genre:    body.Genre,
		Rating:   body.ImdbRating,
	}, nil
}

func (c *Client) get(ctx context.Context, params url.Values, dst any) error {
	params.Set("apikey", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("omdb request failed: %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}
