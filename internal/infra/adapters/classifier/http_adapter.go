package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"honeypot-arena/internal/domain"
	"honeypot-arena/internal/domain/model"
	"honeypot-arena/internal/domain/ports/adapter"
)

var _ adapter.ClassifierAdapter = (*HTTPAdapter)(nil)

// HTTPAdapter talks to the remote classification service over HTTP/JSON.
type HTTPAdapter struct {
	baseURL       string
	apiKey        string
	client        *http.Client
	healthTimeout time.Duration
	log           *zerolog.Logger
}

// NewHTTPAdapter creates the gateway client. analyzeTimeout bounds the
// /analyze call; healthTimeout bounds the liveness probe.
func NewHTTPAdapter(baseURL, apiKey string, analyzeTimeout, healthTimeout time.Duration, logger *zerolog.Logger) *HTTPAdapter {
	adLog := logger.With().Str("component", "ClassifierHTTP").Logger()
	return &HTTPAdapter{
		baseURL:       strings.TrimRight(baseURL, "/"),
		apiKey:        apiKey,
		client:        &http.Client{Timeout: analyzeTimeout},
		healthTimeout: healthTimeout,
		log:           &adLog,
	}
}

// analyzeResponse is the wire shape of a verdict. extractedIntelligence is
// decoded leniently: categories that are not lists of strings count as empty.
type analyzeResponse struct {
	SessionID    string                     `json:"sessionId"`
	Status       string                     `json:"status"`
	Reply        string                     `json:"reply"`
	ScamDetected bool                       `json:"scamDetected"`
	ShouldEngage bool                       `json:"shouldEngage"`
	Intelligence map[string]json.RawMessage `json:"extractedIntelligence"`
	AgentNotes   string                     `json:"agentNotes"`
}

func (a *HTTPAdapter) Analyze(ctx context.Context, req adapter.AnalyzeRequest) (*model.Verdict, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal analyze request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/analyze", bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("create analyze request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("x-api-key", a.apiKey)

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read analyze response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: analyze returned status %d", domain.ErrGatewayUnavailable, resp.StatusCode)
	}

	var wire analyzeResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedVerdict, err)
	}

	return &model.Verdict{
		SessionID:    wire.SessionID,
		Status:       wire.Status,
		Reply:        wire.Reply,
		ScamDetected: wire.ScamDetected,
		ShouldEngage: wire.ShouldEngage,
		Intelligence: decodeIntelligence(wire.Intelligence),
		AgentNotes:   wire.AgentNotes,
	}, nil
}

// decodeIntelligence keeps only categories that decode as string lists.
// Anything else (numbers, objects, nulls) counts as zero extracted items.
func decodeIntelligence(raw map[string]json.RawMessage) map[string][]string {
	out := make(map[string][]string, len(raw))
	for key, val := range raw {
		var items []string
		if err := json.Unmarshal(val, &items); err != nil {
			continue
		}
		out[key] = items
	}
	return out
}

func (a *HTTPAdapter) Health(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, a.healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := a.client.Do(req)
	if err != nil {
		a.log.Debug().Err(err).Msg("health probe failed")
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode >= 200 && resp.StatusCode <= 299
}
