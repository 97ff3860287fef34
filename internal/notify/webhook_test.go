package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/tennis-value-engine/internal/domain"
)

func TestNotifyBetSettledPostsJSON(t *testing.T) {
	var captured webhookEvent
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := NewWebhookNotifier(server.URL, 5*time.Second, zerolog.Nop())
	bet := domain.Bet{Selection: "Djokovic", MatchDescription: "Djokovic vs Alcaraz"}

	err := n.NotifyBetSettled(bet, domain.ResultWin, 1.52)
	require.NoError(t, err)
	assert.Contains(t, captured.Text, "Djokovic")
	assert.Contains(t, captured.Text, "Win")
}

func TestNotifyReturnsErrorOnNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	n := NewWebhookNotifier(server.URL, 5*time.Second, zerolog.Nop())
	err := n.NotifyBetSettled(domain.Bet{}, domain.ResultLoss, -1.0)
	require.Error(t, err)
}
