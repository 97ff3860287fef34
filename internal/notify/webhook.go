package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/tennis-value-engine/internal/domain"
)

// WebhookNotifier posts a JSON object with a single "text" field to one
// configured URL (e.g. a Slack or Discord incoming webhook), grounded on
// internal/clients/tradernet's request/response idiom: a small http.Client
// wrapper with a fixed timeout and one helper that does the marshal/POST.
// It sends no embed structure (title, colour, fields, footer, timestamp).
type WebhookNotifier struct {
	url    string
	client *http.Client
	log    zerolog.Logger
}

// NewWebhookNotifier builds a notifier posting to url.
func NewWebhookNotifier(url string, timeout time.Duration, log zerolog.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
		log:    log.With().Str("component", "notify").Logger(),
	}
}

type webhookEvent struct {
	Text string `json:"text"`
}

// NotifyBetSuggested posts a one-line summary of a newly surfaced bet
// candidate.
func (n *WebhookNotifier) NotifyBetSuggested(candidate domain.BetCandidate) error {
	text := fmt.Sprintf("Bet suggestion: %s to win %s vs %s (p=%.2f, EV=%.3f, %s, %.1fu)",
		candidate.Player, candidate.Match.Player1Name, candidate.Match.Player2Name,
		candidate.OurProbability, candidate.ExpectedValue, candidate.Model, candidate.RecommendedUnits)
	return n.post(text)
}

// NotifyBetSettled posts a one-line summary of a settled bet.
func (n *WebhookNotifier) NotifyBetSettled(bet domain.Bet, result domain.Result, profitLoss float64) error {
	text := fmt.Sprintf("Bet settled: %s (%s) — %s, P/L %.2f", bet.Selection, bet.MatchDescription, result, profitLoss)
	return n.post(text)
}

func (n *WebhookNotifier) post(text string) error {
	body, err := json.Marshal(webhookEvent{Text: text})
	if err != nil {
		return fmt.Errorf("notify: marshal event: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, n.url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("notify: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("notify: post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notify: webhook returned status %d", resp.StatusCode)
	}
	return nil
}
