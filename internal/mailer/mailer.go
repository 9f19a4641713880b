package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"fashniz-be/internal/logger"
)

var ErrSendFailed = errors.New("failed to send email")

// Mailer delivers transactional mail through the provider's HTTP API.
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, to, orderID string, total int64) error
}

type httpMailer struct {
	apiKey     string
	baseURL    string
	fromAddr   string
	httpClient *http.Client
}

func NewMailer(apiKey, baseURL, fromAddr string) Mailer {
	if apiKey == "" {
		logger.L().Warn("mailer API key is empty")
	}
	if fromAddr == "" {
		fromAddr = "orders@fashniz.com"
	}

	return &httpMailer{
		apiKey:   apiKey,
		baseURL:  baseURL,
		fromAddr: fromAddr,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (m *httpMailer) SendOrderConfirmation(ctx context.Context, to, orderID string, total int64) error {
	body := map[string]interface{}{
		"from":    m.fromAddr,
		"to":      to,
		"subject": fmt.Sprintf("Your Fashniz order %s", orderID),
		"text": fmt.Sprintf(
			"Thank you for shopping with Fashniz!\n\nOrder %s has been received.\nOrder total: PKR %d\n\nWe will email you again once it ships.",
			orderID, total,
		),
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/v1/messages", bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: provider returned %d", ErrSendFailed, resp.StatusCode)
	}

	return nil
}
