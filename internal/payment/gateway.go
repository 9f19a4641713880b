package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"fashniz-be/internal/logger"
	"fashniz-be/internal/metrics"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.tokenpay.example.com"

// Gateway tokenizes card details with the payment provider.
type Gateway interface {
	Tokenize(ctx context.Context, card CardDetails) (*Token, error)
}

type httpGateway struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*Token]
}

func NewGateway(secretKey, baseURL string) Gateway {
	if secretKey == "" {
		logger.L().Warn("payment provider secret key is empty")
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	// Open after 3 consecutive failures so a dead provider fails fast
	// instead of stalling every checkout for the full client timeout.
	breaker := gobreaker.NewCircuitBreaker[*Token](gobreaker.Settings{
		Name:    "payment-tokenize",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	return &httpGateway{
		secretKey: secretKey,
		baseURL:   baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		breaker: breaker,
	}
}

func (g *httpGateway) Tokenize(ctx context.Context, card CardDetails) (*Token, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("card_name", card.Name),
	)

	if card.Number == "" || card.CVC == "" {
		return nil, ErrMissingCardDetails
	}

	token, err := g.breaker.Execute(func() (*Token, error) {
		return g.tokenize(ctx, card)
	})

	if err != nil {
		metrics.TokenizeFailures.Inc()
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			log.Warn("tokenization short-circuited, provider marked unavailable")
			return nil, ErrProviderUnavailable
		}
		log.Error("tokenization failed", zap.Error(err))
		return nil, err
	}

	return token, nil
}

func (g *httpGateway) tokenize(ctx context.Context, card CardDetails) (*Token, error) {
	body := map[string]interface{}{
		"card": map[string]interface{}{
			"number":    card.Number,
			"exp_month": card.ExpMonth,
			"exp_year":  card.ExpYear,
			"cvc":       card.CVC,
			"name":      card.Name,
		},
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/tokens", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.secretKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%w: provider returned %d: %s",
			ErrTokenizationFailed, resp.StatusCode, string(respBody))
	}

	var token Token
	if err := json.Unmarshal(respBody, &token); err != nil {
		return nil, err
	}
	if token.ID == "" {
		return nil, ErrTokenizationFailed
	}

	return &token, nil
}
