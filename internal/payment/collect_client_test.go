package payment

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendora/storefront/config"
)

func collectTestConfig(url string) config.CollectGatewayConfig {
	return config.CollectGatewayConfig{ApiUrl: url, KeyID: "key_id", KeySecret: "key_secret"}
}

func TestCollectCreateOrder(t *testing.T) {
	var gotAuth, gotIdem string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/orders", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotIdem = r.Header.Get("Idempotency-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(GatewayOrder{
			ID: "order_x1", Amount: 11400, Currency: "INR", Receipt: "987", Status: "created",
		})
	}))
	defer srv.Close()

	client := NewCollectClient(collectTestConfig(srv.URL))
	order, err := client.CreateOrder(context.Background(), 11400, "INR", "987")
	require.NoError(t, err)

	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("key_id:key_secret"))
	assert.Equal(t, wantAuth, gotAuth)
	assert.NotEmpty(t, gotIdem)
	assert.Equal(t, float64(11400), gotBody["amount"])
	assert.Equal(t, "INR", gotBody["currency"])
	assert.Equal(t, "987", gotBody["receipt"])
	assert.Equal(t, "order_x1", order.ID)
	assert.Equal(t, "987", order.Receipt)
}

func TestCollectCreateOrder_EmptyIDRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(GatewayOrder{})
	}))
	defer srv.Close()

	client := NewCollectClient(collectTestConfig(srv.URL))
	_, err := client.CreateOrder(context.Background(), 100, "INR", "1")
	assert.Error(t, err)
}

func TestCollectFetchOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v1/orders/order_x1", r.URL.Path)
		json.NewEncoder(w).Encode(GatewayOrder{
			ID: "order_x1", Amount: 11400, Currency: "INR", Receipt: "987", Status: GatewayOrderPaid,
		})
	}))
	defer srv.Close()

	client := NewCollectClient(collectTestConfig(srv.URL))
	order, err := client.FetchOrder(context.Background(), "order_x1")
	require.NoError(t, err)
	assert.Equal(t, GatewayOrderPaid, order.Status)
	assert.Equal(t, "987", order.Receipt)
}

func TestCollectFetchOrder_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewCollectClient(collectTestConfig(srv.URL))
	_, err := client.FetchOrder(context.Background(), "missing")
	assert.Error(t, err)
}
