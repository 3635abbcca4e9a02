package order

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/trendora/storefront/internal/audit"
	"github.com/trendora/storefront/internal/domain"
	"github.com/trendora/storefront/internal/payment"
	"github.com/trendora/storefront/pkg/common"
	"github.com/trendora/storefront/pkg/metrics"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrPaymentFailed = errors.New("payment failed")
	ErrUnknownStatus = errors.New("unknown order status")
	ErrBadReceipt    = errors.New("gateway receipt does not reference a local order")
)

// ShopSettings supplies the currency code and the fixed delivery charge.
type ShopSettings interface {
	Currency(ctx context.Context) string
	DeliveryCharge(ctx context.Context) float64
}

// Notifier delivers payment confirmations. Failures never propagate.
type Notifier interface {
	OrderPaid(ctx context.Context, email string, order *domain.Order) error
}

// Service drives the three payment paths and post-payment reconciliation.
type Service struct {
	orders   OrderRepository
	users    UserDirectory
	checkout payment.CheckoutGateway
	collect  payment.CollectGateway
	settings ShopSettings
	notifier Notifier
	audit    audit.Recorder
}

func NewService(
	orders OrderRepository,
	users UserDirectory,
	checkout payment.CheckoutGateway,
	collect payment.CollectGateway,
	settings ShopSettings,
	notifier Notifier,
	rec audit.Recorder,
) *Service {
	if rec == nil {
		rec = audit.Nop()
	}
	return &Service{
		orders:   orders,
		users:    users,
		checkout: checkout,
		collect:  collect,
		settings: settings,
		notifier: notifier,
		audit:    rec,
	}
}

func newOrder(userID int64, items []domain.OrderItem, amount float64, address domain.Address, method string) *domain.Order {
	now := time.Now()
	return &domain.Order{
		ID:            common.UUIDint64(),
		UserID:        userID,
		Items:         items,
		Amount:        amount,
		Address:       address,
		Status:        domain.StatusPlaced,
		PaymentMethod: method,
		Payment:       false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// PlaceCOD persists an unpaid cash-on-delivery order and clears the cart.
// COD orders stay unpaid; no confirmation step exists for them.
func (s *Service) PlaceCOD(ctx context.Context, userID int64, items []domain.OrderItem, amount float64, address domain.Address) (*domain.Order, error) {
	order := newOrder(userID, items, amount, address, domain.PaymentMethodCOD)
	if err := s.orders.CreateWithCartClear(ctx, order); err != nil {
		return nil, err
	}
	metrics.Counter("orders_placed_cod")
	zap.L().Info("order placed",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", userID),
		zap.String("method", domain.PaymentMethodCOD))
	return order, nil
}

// PlaceCheckout persists an unpaid order and opens a redirect-checkout
// session with one line per item plus a delivery-charge line, amounts in the
// smallest currency unit. The cart is cleared only on verification.
func (s *Service) PlaceCheckout(ctx context.Context, userID int64, items []domain.OrderItem, amount float64, address domain.Address, origin string) (*domain.Order, string, error) {
	order := newOrder(userID, items, amount, address, domain.PaymentMethodCheckout)
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, "", err
	}

	currency := s.settings.Currency(ctx)
	lines := make([]payment.LineItem, 0, len(items)+1)
	for _, item := range items {
		lines = append(lines, payment.LineItem{
			Name:       item.Name,
			UnitAmount: toSmallestUnit(item.Price),
			Quantity:   item.Quantity,
		})
	}
	lines = append(lines, payment.LineItem{
		Name:       "Delivery Charges",
		UnitAmount: toSmallestUnit(s.settings.DeliveryCharge(ctx)),
		Quantity:   1,
	})

	session, err := s.checkout.CreateSession(ctx, payment.SessionRequest{
		Currency:   currency,
		LineItems:  lines,
		SuccessURL: fmt.Sprintf("%s/verify?success=true&orderId=%d", origin, order.ID),
		CancelURL:  fmt.Sprintf("%s/verify?success=false&orderId=%d", origin, order.ID),
	})
	if err != nil {
		return nil, "", err
	}

	metrics.Counter("orders_placed_checkout")
	zap.L().Info("checkout session created",
		zap.Int64("order_id", order.ID),
		zap.String("session_id", session.ID))
	return order, session.URL, nil
}

// VerifyCheckout reconciles the redirect callback. A literal "true" success
// flag marks the order paid and clears the cart; anything else deletes the
// order. The flag is client-supplied and taken at face value; see DESIGN.md
// for the trust discussion.
func (s *Service) VerifyCheckout(ctx context.Context, orderID int64, success string, userID int64) (bool, error) {
	if success != "true" {
		if err := s.orders.DeleteByID(ctx, orderID); err != nil {
			return false, err
		}
		zap.L().Info("checkout order deleted after failed payment",
			zap.Int64("order_id", orderID))
		return false, nil
	}

	if err := s.orders.MarkPaidWithCartClear(ctx, orderID, userID); err != nil {
		return false, err
	}
	metrics.Counter("payments_confirmed_checkout")
	s.notifyPaid(ctx, orderID, userID)
	return true, nil
}

// PlaceCollect persists an unpaid order, then creates the remote gateway
// order keyed by receipt = local order id. The gateway handle goes back to
// the caller for client-side payment completion.
func (s *Service) PlaceCollect(ctx context.Context, userID int64, items []domain.OrderItem, amount float64, address domain.Address) (*domain.Order, *payment.GatewayOrder, error) {
	order := newOrder(userID, items, amount, address, domain.PaymentMethodCollect)
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, nil, err
	}

	gw, err := s.collect.CreateOrder(ctx,
		toSmallestUnit(amount),
		strings.ToUpper(s.settings.Currency(ctx)),
		strconv.FormatInt(order.ID, 10))
	if err != nil {
		return nil, nil, err
	}

	if err := s.orders.SetReceipt(ctx, order.ID, gw.ID); err != nil {
		zap.L().Warn("failed to store gateway reference",
			zap.Int64("order_id", order.ID),
			zap.Error(err))
	}

	metrics.Counter("orders_placed_collect")
	zap.L().Info("gateway order created",
		zap.Int64("order_id", order.ID),
		zap.String("gateway_order_id", gw.ID))
	return order, gw, nil
}

// VerifyCollect fetches the gateway order's authoritative status. Only a
// remote "paid" marks the local order paid and clears the cart.
func (s *Service) VerifyCollect(ctx context.Context, userID int64, gatewayOrderID string) (*domain.Order, error) {
	gw, err := s.collect.FetchOrder(ctx, gatewayOrderID)
	if err != nil {
		return nil, err
	}
	if gw.Status != payment.GatewayOrderPaid {
		zap.L().Info("gateway order not paid",
			zap.String("gateway_order_id", gatewayOrderID),
			zap.String("status", gw.Status))
		return nil, ErrPaymentFailed
	}

	orderID, err := strconv.ParseInt(gw.Receipt, 10, 64)
	if err != nil {
		return nil, ErrBadReceipt
	}

	if err := s.orders.MarkPaidWithCartClear(ctx, orderID, userID); err != nil {
		return nil, err
	}
	metrics.Counter("payments_confirmed_collect")
	s.notifyPaid(ctx, orderID, userID)

	order, err := s.orders.GetByID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	return order, err
}

// ListAllOrders returns every order, unpaged.
func (s *Service) ListAllOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListAll(ctx)
}

// ListUserOrders returns one user's orders, unpaged.
func (s *Service) ListUserOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// UpdateStatus moves an order along the fulfilment state machine. Unknown
// states and disallowed transitions are rejected.
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, status string) error {
	if !domain.IsOrderStatus(status) {
		return ErrUnknownStatus
	}
	order, err := s.orders.GetByID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}
	if !domain.CanTransition(order.Status, status) {
		return domain.ErrInvalidStatusTransition
	}
	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return err
	}
	s.audit.Record(ctx, "order_status",
		fmt.Sprintf("order %d: %s -> %s", orderID, order.Status, status))
	return nil
}

func (s *Service) notifyPaid(ctx context.Context, orderID, userID int64) {
	if s.notifier == nil {
		return
	}
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		zap.L().Warn("skip payment notification, order not readable",
			zap.Int64("order_id", orderID), zap.Error(err))
		return
	}
	email, err := s.users.EmailByID(ctx, userID)
	if err != nil {
		zap.L().Warn("skip payment notification, user not readable",
			zap.Int64("user_id", userID), zap.Error(err))
		return
	}
	_ = s.notifier.OrderPaid(ctx, email, order)
}

func toSmallestUnit(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
