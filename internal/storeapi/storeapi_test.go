package storeapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/trendora/storefront/config"
	"github.com/trendora/storefront/internal/account"
	"github.com/trendora/storefront/internal/cart"
	"github.com/trendora/storefront/internal/catalog"
	"github.com/trendora/storefront/internal/domain"
	"github.com/trendora/storefront/internal/imagestore"
	"github.com/trendora/storefront/internal/order"
	"github.com/trendora/storefront/internal/payment"
	"github.com/trendora/storefront/internal/webserver"
)

type stubUserRepo struct {
	byEmail map[string]*domain.User
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.byEmail[user.Email] = user
	return nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, user := range r.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

type stubCartRepo struct {
	carts map[int64]domain.CartData
}

func (r *stubCartRepo) GetCart(_ context.Context, userID int64) (domain.CartData, error) {
	cart, ok := r.carts[userID]
	if !ok {
		cart = domain.NewCartData()
		r.carts[userID] = cart
	}
	return cart, nil
}

func (r *stubCartRepo) SaveCart(_ context.Context, userID int64, cart domain.CartData) error {
	r.carts[userID] = cart
	return nil
}

type stubProductRepo struct {
	products map[int64]*domain.Product
}

func (r *stubProductRepo) Create(_ context.Context, product *domain.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *stubProductRepo) List(_ context.Context) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) DeleteByID(_ context.Context, id int64) error {
	delete(r.products, id)
	return nil
}

type stubOrderRepo struct {
	orders map[int64]*domain.Order
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) error {
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *stubOrderRepo) DeleteByID(_ context.Context, id int64) error {
	delete(r.orders, id)
	return nil
}

func (r *stubOrderRepo) SetReceipt(_ context.Context, id int64, receipt string) error {
	if o, ok := r.orders[id]; ok {
		o.Receipt = receipt
	}
	return nil
}

func (r *stubOrderRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *stubOrderRepo) ListByUser(_ context.Context, userID int64) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id int64, status string) error {
	if o, ok := r.orders[id]; ok {
		o.Status = status
	}
	return nil
}

func (r *stubOrderRepo) CreateWithCartClear(ctx context.Context, o *domain.Order) error {
	return r.Create(ctx, o)
}

func (r *stubOrderRepo) MarkPaidWithCartClear(_ context.Context, orderID, _ int64) error {
	if o, ok := r.orders[orderID]; ok {
		o.Payment = true
	}
	return nil
}

type stubUserDirectory struct{}

func (stubUserDirectory) EmailByID(context.Context, int64) (string, error) {
	return "shopper@example.com", nil
}

type stubCheckoutGateway struct{}

func (stubCheckoutGateway) CreateSession(context.Context, payment.SessionRequest) (*payment.Session, error) {
	return &payment.Session{ID: "cs_1", URL: "https://pay.example/cs_1"}, nil
}

type stubCollectGateway struct{}

func (stubCollectGateway) CreateOrder(_ context.Context, amount int64, currency, receipt string) (*payment.GatewayOrder, error) {
	return &payment.GatewayOrder{ID: "gw_1", Amount: amount, Currency: currency, Receipt: receipt, Status: "created"}, nil
}

func (stubCollectGateway) FetchOrder(_ context.Context, id string) (*payment.GatewayOrder, error) {
	return &payment.GatewayOrder{ID: id, Status: "created"}, nil
}

type stubSettings struct{}

func (stubSettings) Currency(context.Context) string        { return "inr" }
func (stubSettings) DeliveryCharge(context.Context) float64 { return 10 }

type stubUploader struct{}

func (stubUploader) UploadAll(_ context.Context, files []imagestore.File) ([]string, error) {
	urls := make([]string, len(files))
	for i := range files {
		urls[i] = "https://img.example/" + files[i].Name
	}
	return urls, nil
}

func newTestAPI(t *testing.T) (*webserver.WebServer, *account.TokenIssuer) {
	t.Helper()
	cfg := &config.AppConfig{
		Admin: config.AdminConfig{Email: "admin@example.com", Password: "admin-password"},
		Auth:  config.AuthConfig{JwtSecret: "test-secret"},
	}
	issuer, err := account.NewTokenIssuer(cfg.Auth)
	require.NoError(t, err)

	accounts := account.NewService(&stubUserRepo{byEmail: map[string]*domain.User{}}, issuer, cfg.Admin)
	carts := cart.NewService(&stubCartRepo{carts: map[int64]domain.CartData{}})
	catalogSvc := catalog.NewService(&stubProductRepo{products: map[int64]*domain.Product{}}, stubUploader{}, nil)
	orders := order.NewService(
		&stubOrderRepo{orders: map[int64]*domain.Order{}},
		stubUserDirectory{}, stubCheckoutGateway{}, stubCollectGateway{},
		stubSettings{}, nil, nil,
	)

	ws := webserver.New(cfg)
	NewHandlers(accounts, carts, catalogSvc, orders).Register(ws, issuer)
	return ws, issuer
}

func doJSON(ws *webserver.WebServer, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	var reader *strings.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echoHeaderContentType, "application/json")
	if token != "" {
		req.Header.Set("token", token)
	}
	rec := httptest.NewRecorder()
	ws.Echo().ServeHTTP(rec, req)

	var decoded map[string]interface{}
	_ = json.Unmarshal(rec.Body.Bytes(), &decoded)
	return rec, decoded
}

const echoHeaderContentType = "Content-Type"

func TestRegisterLoginFlow(t *testing.T) {
	ws, issuer := newTestAPI(t)

	rec, body := doJSON(ws, http.MethodPost, "/api/user/register", "", map[string]string{
		"name": "Asha", "email": "asha@example.com", "password": "longenough",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, body["success"])
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	userID, err := issuer.ParseUser(token)
	require.NoError(t, err)
	assert.NotZero(t, userID)

	// duplicate registration fails inside the envelope, still HTTP 200
	rec, body = doJSON(ws, http.MethodPost, "/api/user/register", "", map[string]string{
		"name": "Other", "email": "asha@example.com", "password": "longenough2",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["success"])

	_, body = doJSON(ws, http.MethodPost, "/api/user/login", "", map[string]string{
		"email": "asha@example.com", "password": "longenough",
	})
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])
}

func TestCartRoutesRequireUserToken(t *testing.T) {
	ws, _ := newTestAPI(t)

	rec, body := doJSON(ws, http.MethodPost, "/api/cart/get", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "not authorized, login again", body["message"])

	rec, body = doJSON(ws, http.MethodPost, "/api/cart/get", "not-a-jwt", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestCartAddAndGet(t *testing.T) {
	ws, _ := newTestAPI(t)

	_, body := doJSON(ws, http.MethodPost, "/api/user/register", "", map[string]string{
		"name": "Asha", "email": "asha@example.com", "password": "longenough",
	})
	token := body["token"].(string)

	_, body = doJSON(ws, http.MethodPost, "/api/cart/add", token, map[string]string{
		"itemId": "p1", "size": "M",
	})
	assert.Equal(t, true, body["success"])

	_, body = doJSON(ws, http.MethodPost, "/api/cart/get", token, nil)
	require.Equal(t, true, body["success"])
	cartData, ok := body["cartData"].(map[string]interface{})
	require.True(t, ok)
	sizes, ok := cartData["p1"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), sizes["M"])
}

func TestAdminRoutesRejectUserToken(t *testing.T) {
	ws, issuer := newTestAPI(t)

	userToken, err := issuer.IssueUser(7)
	require.NoError(t, err)

	rec, body := doJSON(ws, http.MethodPost, "/api/order/list", userToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "not authorized, login again", body["message"])
}

func TestAdminFlow(t *testing.T) {
	ws, _ := newTestAPI(t)

	_, body := doJSON(ws, http.MethodPost, "/api/user/admin", "", map[string]string{
		"email": "admin@example.com", "password": "admin-password",
	})
	require.Equal(t, true, body["success"])
	adminToken := body["token"].(string)

	_, body = doJSON(ws, http.MethodPost, "/api/order/list", adminToken, nil)
	assert.Equal(t, true, body["success"])

	_, body = doJSON(ws, http.MethodPost, "/api/user/admin", "", map[string]string{
		"email": "admin@example.com", "password": "wrong",
	})
	assert.Equal(t, false, body["success"])
}

func TestPlaceOrderCOD(t *testing.T) {
	ws, _ := newTestAPI(t)

	_, body := doJSON(ws, http.MethodPost, "/api/user/register", "", map[string]string{
		"name": "Asha", "email": "asha@example.com", "password": "longenough",
	})
	token := body["token"].(string)

	_, body = doJSON(ws, http.MethodPost, "/api/order/place", token, map[string]interface{}{
		"items": []map[string]interface{}{
			{"productId": "101", "name": "Shirt", "size": "M", "quantity": 2, "price": 49.5},
		},
		"amount":  109,
		"address": map[string]interface{}{"city": "Pune"},
	})
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "order placed", body["message"])
}
