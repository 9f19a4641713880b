package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCard = CardDetails{
	Number:   "4242424242424242",
	ExpMonth: 12,
	ExpYear:  2028,
	CVC:      "123",
	Name:     "Test Buyer",
}

func TestGateway_Tokenize(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/tokens", r.URL.Path)
			assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

			var body struct {
				Card map[string]any `json:"card"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "4242424242424242", body.Card["number"])

			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(Token{
				ID: "tok_123", Last4: "4242", Brand: "visa", ExpMonth: 12, ExpYear: 2028,
			})
		}))
		defer srv.Close()

		gw := NewGateway("sk_test", srv.URL)

		token, err := gw.Tokenize(context.Background(), testCard)
		require.NoError(t, err)
		assert.Equal(t, "tok_123", token.ID)
		assert.Equal(t, "4242", token.Last4)
	})

	t.Run("ProviderRejects", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusPaymentRequired)
			_, _ = w.Write([]byte(`{"error":"card_declined"}`))
		}))
		defer srv.Close()

		gw := NewGateway("sk_test", srv.URL)

		_, err := gw.Tokenize(context.Background(), testCard)
		assert.ErrorIs(t, err, ErrTokenizationFailed)
	})

	t.Run("MissingCardDetails", func(t *testing.T) {
		gw := NewGateway("sk_test", "http://unused.invalid")

		_, err := gw.Tokenize(context.Background(), CardDetails{})
		assert.ErrorIs(t, err, ErrMissingCardDetails)
	})

	t.Run("BreakerOpensAfterConsecutiveFailures", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		gw := NewGateway("sk_test", srv.URL)

		for i := 0; i < 3; i++ {
			_, err := gw.Tokenize(context.Background(), testCard)
			assert.Error(t, err)
		}

		// breaker is now open: fails fast without hitting the provider
		_, err := gw.Tokenize(context.Background(), testCard)
		assert.ErrorIs(t, err, ErrProviderUnavailable)
	})
}
