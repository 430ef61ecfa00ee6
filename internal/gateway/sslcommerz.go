// Package gateway talks to the SSLCommerz hosted-checkout API. A session is
// created with a form POST and concluded later by the gateway calling back the
// success or fail URL registered with the session.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	sandboxEndpoint = "https://sandbox.sslcommerz.com/gwprocess/v4/api.php"
	liveEndpoint    = "https://securepay.sslcommerz.com/gwprocess/v4/api.php"
)

var (
	// ErrSessionRejected means the gateway answered but refused the session.
	ErrSessionRejected = errors.New("gateway rejected the session")
	// ErrNoGatewayURL means the gateway accepted but returned no checkout URL.
	ErrNoGatewayURL = errors.New("gateway returned no checkout URL")
)

// SessionRequest carries everything the gateway needs to host a checkout page.
type SessionRequest struct {
	TransactionID   string
	TotalAmount     float64
	Currency        string
	ProductName     string
	ProductCategory string
	ProductCount    int
	CustomerName    string
	CustomerEmail   string
	CustomerCity    string
	CustomerAddress string
	CustomerZipCode string
	SuccessURL      string
	FailURL         string
	CancelURL       string
}

type Client struct {
	storeID       string
	storePassword string
	endpoint      string
	httpClient    *http.Client
}

func NewClient(storeID, storePassword string, live bool) *Client {
	endpoint := sandboxEndpoint
	if live {
		endpoint = liveEndpoint
	}
	return &Client{
		storeID:       storeID,
		storePassword: storePassword,
		endpoint:      endpoint,
		httpClient:    http.DefaultClient,
	}
}

type sessionResponse struct {
	Status         string `json:"status"`
	FailedReason   string `json:"failedreason"`
	GatewayPageURL string `json:"GatewayPageURL"`
}

// CreateSession registers a checkout session and returns the hosted page URL.
func (c *Client) CreateSession(ctx context.Context, s SessionRequest) (string, error) {
	form := url.Values{}
	form.Set("store_id", c.storeID)
	form.Set("store_passwd", c.storePassword)
	form.Set("total_amount", strconv.FormatFloat(s.TotalAmount, 'f', 2, 64))
	form.Set("currency", s.Currency)
	form.Set("tran_id", s.TransactionID)
	form.Set("success_url", s.SuccessURL)
	form.Set("fail_url", s.FailURL)
	form.Set("cancel_url", s.CancelURL)
	form.Set("shipping_method", "Courier")
	form.Set("product_name", s.ProductName)
	form.Set("product_category", s.ProductCategory)
	form.Set("product_profile", "general")
	form.Set("num_of_item", strconv.Itoa(s.ProductCount))
	form.Set("cus_name", s.CustomerName)
	form.Set("cus_email", s.CustomerEmail)
	form.Set("cus_add1", s.CustomerAddress)
	form.Set("cus_city", s.CustomerCity)
	form.Set("cus_postcode", s.CustomerZipCode)
	form.Set("cus_country", "Bangladesh")
	form.Set("cus_phone", "01711111111")
	form.Set("ship_name", s.CustomerName)
	form.Set("ship_add1", s.CustomerAddress)
	form.Set("ship_city", s.CustomerCity)
	form.Set("ship_postcode", s.CustomerZipCode)
	form.Set("ship_country", "Bangladesh")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("gateway: failed to build session request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gateway: session request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gateway: unexpected status %d from session endpoint", resp.StatusCode)
	}

	var body sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("gateway: failed to decode session response: %w", err)
	}

	if !strings.EqualFold(body.Status, "SUCCESS") {
		log.Warn().
			Str("tran_id", s.TransactionID).
			Str("status", body.Status).
			Str("reason", body.FailedReason).
			Msg("gateway: session rejected")
		return "", fmt.Errorf("%w: %s", ErrSessionRejected, body.FailedReason)
	}
	if body.GatewayPageURL == "" {
		return "", ErrNoGatewayURL
	}

	return body.GatewayPageURL, nil
}
