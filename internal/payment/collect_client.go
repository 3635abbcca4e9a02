package payment

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/guonaihong/gout"
	"github.com/pkg/errors"

	"github.com/trendora/storefront/config"
)

// CollectClient talks to the order/verify provider over HTTP with basic
// auth. Order creation carries an idempotency key.
type CollectClient struct {
	apiURL string
	auth   string
}

func NewCollectClient(cfg config.CollectGatewayConfig) *CollectClient {
	raw := cfg.KeyID + ":" + cfg.KeySecret
	return &CollectClient{
		apiURL: strings.TrimRight(cfg.ApiUrl, "/"),
		auth:   "Basic " + base64.StdEncoding.EncodeToString([]byte(raw)),
	}
}

func (c *CollectClient) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*GatewayOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()

	var (
		order GatewayOrder
		code  int
	)
	err := gout.POST(c.apiURL + "/v1/orders").
		WithContext(ctx).
		SetHeader(gout.H{
			"Authorization":   c.auth,
			"Idempotency-Key": uuid.NewString(),
		}).
		SetJSON(gout.H{
			"amount":   amount,
			"currency": currency,
			"receipt":  receipt,
		}).
		BindJSON(&order).
		Code(&code).
		Do()
	if err != nil {
		return nil, errors.Wrap(err, "collect gateway create order failed")
	}
	if code != http.StatusOK {
		return nil, errors.Errorf("collect gateway returned status %d", code)
	}
	if order.ID == "" {
		return nil, errors.New("collect gateway returned empty order id")
	}
	return &order, nil
}

func (c *CollectClient) FetchOrder(ctx context.Context, id string) (*GatewayOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()

	var (
		order GatewayOrder
		code  int
	)
	err := gout.GET(c.apiURL + "/v1/orders/" + id).
		WithContext(ctx).
		SetHeader(gout.H{"Authorization": c.auth}).
		BindJSON(&order).
		Code(&code).
		Do()
	if err != nil {
		return nil, errors.Wrap(err, "collect gateway fetch order failed")
	}
	if code == http.StatusNotFound {
		return nil, errors.Errorf("collect gateway order %s not found", id)
	}
	if code != http.StatusOK {
		return nil, errors.Errorf("collect gateway returned status %d", code)
	}
	return &order, nil
}
