package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAPIURL = "https://api.stripe.com/v1"
	currency      = "usd"

	// Smallest chargeable amount, in whole currency units.
	minChargeAmount = 1.0
)

// ErrInvalidAmount is returned before any provider call when the requested
// amount is below the minimum chargeable unit.
var ErrInvalidAmount = errors.New("amount must be at least 1")

// PaymentIntent is the subset of the provider's intent object we rely on.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

type apiError struct {
	Error *struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Client talks to the payment provider's payment-intent API.
type Client struct {
	apiURL     string
	secretKey  string
	httpClient *http.Client
}

func New(apiURL, secretKey string) *Client {
	return &Client{
		apiURL:     strings.TrimRight(apiURL, "/"),
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// NewFromEnv builds a client from STRIPE_SECRET_KEY and optional STRIPE_API_URL.
func NewFromEnv() (*Client, error) {
	key := os.Getenv("STRIPE_SECRET_KEY")
	if key == "" {
		return nil, fmt.Errorf("stripe configuration missing: STRIPE_SECRET_KEY not set")
	}
	apiURL := os.Getenv("STRIPE_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	return New(apiURL, key), nil
}

// CreatePaymentIntent initiates a charge for the given amount (whole currency
// units) and returns the intent with its client secret. It only initiates;
// the client SDK completes the charge.
func (g *Client) CreatePaymentIntent(amount float64) (*PaymentIntent, error) {
	if amount < minChargeAmount {
		return nil, ErrInvalidAmount
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(int64(math.Round(amount*100)), 10))
	form.Set("currency", currency)
	form.Add("payment_method_types[]", "card")

	var intent PaymentIntent
	if err := g.do(http.MethodPost, "/payment_intents", form, &intent); err != nil {
		return nil, err
	}
	if intent.ClientSecret == "" {
		return nil, fmt.Errorf("provider returned empty client secret")
	}
	return &intent, nil
}

// GetPaymentIntent fetches the current state of an intent by its id.
func (g *Client) GetPaymentIntent(id string) (*PaymentIntent, error) {
	var intent PaymentIntent
	if err := g.do(http.MethodGet, "/payment_intents/"+url.PathEscape(id), nil, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// VerifyCharge confirms server-side that the referenced charge actually
// succeeded. Client-supplied transaction references are not trusted on
// their own.
func (g *Client) VerifyCharge(transactionID string) error {
	intent, err := g.GetPaymentIntent(transactionID)
	if err != nil {
		return err
	}
	if intent.Status != "succeeded" {
		return fmt.Errorf("charge %s not completed: status %q", transactionID, intent.Status)
	}
	return nil
}

func (g *Client) do(method, path string, form url.Values, out interface{}) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequest(method, g.apiURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach payment provider: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Error != nil {
			return fmt.Errorf("provider error: %s", apiErr.Error.Message)
		}
		return fmt.Errorf("provider API error (%d): %s", resp.StatusCode, string(data))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse provider response: %w", err)
	}
	return nil
}
