package exchange

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// MaxMarketsPerRequest caps how many market ids ListMarketBook batches into
// a single request (spec.md §5, "capped at 40 markets per request").
const MaxMarketsPerRequest = 40

// ServiceResponse is the exchange microservice's response envelope.
type ServiceResponse struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Error     *string         `json:"error"`
	Timestamp string          `json:"timestamp"`
}

// HTTPClient is the reference OddsProvider implementation: a thin wrapper
// over a betting-exchange HTTP API, authenticating with an app key plus
// username/password and exchanging a session token on every subsequent
// call.
type HTTPClient struct {
	baseURL  string
	appKey   string
	username string
	password string
	client   *http.Client
	log      zerolog.Logger

	sessionToken string
}

// NewHTTPClient creates an exchange HTTP client.
func NewHTTPClient(baseURL, appKey, username, password string, timeout time.Duration, log zerolog.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:  baseURL,
		appKey:   appKey,
		username: username,
		password: password,
		client:   &http.Client{Timeout: timeout},
		log:      log.With().Str("client", "exchange").Logger(),
	}
}

type loginRequest struct {
	AppKey   string `json:"app_key"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResult struct {
	SessionToken string `json:"session_token"`
}

// Login exchanges credentials for a session token, stored for later calls.
func (c *HTTPClient) Login() error {
	resp, err := c.post("/api/login", loginRequest{
		AppKey:   c.appKey,
		Username: c.username,
		Password: c.password,
	})
	if err != nil {
		return fmt.Errorf("exchange login: %w", err)
	}

	var result loginResult
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("exchange login: parse result: %w", err)
	}
	c.sessionToken = result.SessionToken
	return nil
}

type listMarketsRequest struct {
	Tournament string `json:"tournament,omitempty"`
	From       string `json:"from"`
	To         string `json:"to"`
}

type listMarketsResult struct {
	Markets []Market `json:"markets"`
}

// ListMarkets returns upcoming markets in [from, to], optionally filtered
// by tournament name.
func (c *HTTPClient) ListMarkets(tournament string, from, to time.Time) ([]Market, error) {
	resp, err := c.post("/api/markets/list", listMarketsRequest{
		Tournament: tournament,
		From:       from.Format(time.RFC3339),
		To:         to.Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("exchange list markets: %w", err)
	}

	var result listMarketsResult
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("exchange list markets: parse result: %w", err)
	}
	return result.Markets, nil
}

type listMarketBookRequest struct {
	MarketIDs []string `json:"market_ids"`
}

type listMarketBookResult struct {
	Books []MarketBook `json:"books"`
}

// ListMarketBook fetches current prices for marketIDs, splitting the
// request into MaxMarketsPerRequest-sized batches so a single call never
// exceeds the exchange's per-request market cap.
func (c *HTTPClient) ListMarketBook(marketIDs []string) ([]MarketBook, error) {
	var books []MarketBook
	for start := 0; start < len(marketIDs); start += MaxMarketsPerRequest {
		end := start + MaxMarketsPerRequest
		if end > len(marketIDs) {
			end = len(marketIDs)
		}
		batch := marketIDs[start:end]

		resp, err := c.post("/api/markets/book", listMarketBookRequest{MarketIDs: batch})
		if err != nil {
			return nil, fmt.Errorf("exchange list market book: %w", err)
		}

		var result listMarketBookResult
		if err := json.Unmarshal(resp.Data, &result); err != nil {
			return nil, fmt.Errorf("exchange list market book: parse result: %w", err)
		}
		books = append(books, result.Books...)
	}
	return books, nil
}

type fetchCompletedRequest struct {
	Since string `json:"since"`
}

type fetchCompletedResult struct {
	Matches []CompletedMatch `json:"matches"`
}

// FetchCompleted implements CompletedMatchFeed against the same exchange
// API ListMarkets/ListMarketBook use, reusing its session auth rather than
// standing up a separate results client.
func (c *HTTPClient) FetchCompleted(since time.Time) ([]CompletedMatch, error) {
	resp, err := c.post("/api/matches/completed", fetchCompletedRequest{Since: since.Format(time.RFC3339)})
	if err != nil {
		return nil, fmt.Errorf("exchange fetch completed: %w", err)
	}

	var result fetchCompletedResult
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("exchange fetch completed: parse result: %w", err)
	}
	return result.Matches, nil
}

// post makes an authenticated POST request against the exchange API.
func (c *HTTPClient) post(endpoint string, request interface{}) (*ServiceResponse, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.sessionToken != "" {
		req.Header.Set("X-Session-Token", c.sessionToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return c.parseResponse(resp)
}

func (c *HTTPClient) parseResponse(resp *http.Response) (*ServiceResponse, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var result ServiceResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if !result.Success {
		errMsg := "unknown error"
		if result.Error != nil {
			errMsg = *result.Error
		}
		return &result, fmt.Errorf("exchange error: %s", errMsg)
	}
	return &result, nil
}
