package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// NoInfo is the placeholder for absent optional fields in search results.
const NoInfo = "no info"

// MaxResults bounds every search; the upstream API is asked for at most this
// many documents and responses are truncated to it regardless.
const MaxResults = 5

const defaultBaseURL = "https://dapi.kakao.com/v2/local"

// Place is one keyword-search match.
type Place struct {
	Name      string `json:"place_name"`
	Address   string `json:"address_name"`
	Category  string `json:"category_name"`
	Phone     string `json:"phone"`
	DetailURL string `json:"place_url"`
}

// Client calls the Kakao Local keyword-search API.
//
// The client deliberately degrades instead of failing: any transport, status
// or parse problem yields an empty result set so a missing side capability
// never aborts the conversation it serves.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type Option func(*Client)

// WithBaseURL overrides the API base URL, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a place-search client authenticating with the given
// Kakao REST API key.
func NewClient(apiKey string, options ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range options {
		o(c)
	}
	return c
}

type keywordSearchResponse struct {
	Documents []struct {
		PlaceName    string `json:"place_name"`
		AddressName  string `json:"address_name"`
		CategoryName string `json:"category_name"`
		Phone        string `json:"phone"`
		PlaceURL     string `json:"place_url"`
	} `json:"documents"`
}

// Search looks up places matching query and returns 0 to MaxResults matches.
// It never returns an error; callers that need to distinguish "no matches"
// from "search degraded" wrap the result themselves. query must be non-empty;
// that guard belongs to the caller.
func (c *Client) Search(ctx context.Context, query string) []Place {
	endpoint := fmt.Sprintf("%s/search/keyword.json?query=%s&size=%d",
		c.baseURL, url.QueryEscape(query), MaxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("places: failed to build search request")
		return nil
	}
	req.Header.Set("Authorization", "KakaoAK "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("places: search request failed")
		return nil
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Str("status", strconv.Itoa(resp.StatusCode)).Str("query", query).Msg("places: search returned non-OK status")
		return nil
	}

	var parsed keywordSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		log.Warn().Err(err).Str("query", query).Msg("places: failed to parse search response")
		return nil
	}

	out := make([]Place, 0, len(parsed.Documents))
	for _, doc := range parsed.Documents {
		if len(out) == MaxResults {
			break
		}
		p := Place{
			Name:      doc.PlaceName,
			Address:   doc.AddressName,
			Category:  doc.CategoryName,
			Phone:     doc.Phone,
			DetailURL: doc.PlaceURL,
		}
		if p.Phone == "" {
			p.Phone = NoInfo
		}
		if p.DetailURL == "" {
			p.DetailURL = NoInfo
		}
		out = append(out, p)
	}
	log.Debug().Int("count", len(out)).Str("query", query).Msg("places: search completed")
	return out
}
