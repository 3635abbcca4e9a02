package payment

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/guonaihong/gout"
	"github.com/pkg/errors"

	"github.com/trendora/storefront/config"
)

const gatewayTimeout = 30 * time.Second

// CheckoutClient talks to the redirect-checkout provider over HTTP.
type CheckoutClient struct {
	apiURL    string
	secretKey string
}

func NewCheckoutClient(cfg config.CheckoutGatewayConfig) *CheckoutClient {
	return &CheckoutClient{
		apiURL:    strings.TrimRight(cfg.ApiUrl, "/"),
		secretKey: cfg.SecretKey,
	}
}

func (c *CheckoutClient) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	ctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()

	var (
		session Session
		code    int
	)
	err := gout.POST(c.apiURL + "/v1/checkout/sessions").
		WithContext(ctx).
		SetHeader(gout.H{"Authorization": "Bearer " + c.secretKey}).
		SetJSON(req).
		BindJSON(&session).
		Code(&code).
		Do()
	if err != nil {
		return nil, errors.Wrap(err, "checkout gateway request failed")
	}
	if code != http.StatusOK {
		return nil, errors.Errorf("checkout gateway returned status %d", code)
	}
	if session.URL == "" {
		return nil, errors.New("checkout gateway returned empty session url")
	}
	return &session, nil
}
