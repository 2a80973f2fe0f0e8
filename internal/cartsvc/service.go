package cartsvc

import (
	"context"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/talkincode/toughshop/internal/cart"
	"github.com/talkincode/toughshop/internal/catalog"
	"github.com/talkincode/toughshop/internal/domain"
)

// ErrProductNotFound is returned when adding a product missing from the catalog
var ErrProductNotFound = catalog.ErrProductNotFound

// ProductSource resolves product ids to catalog records
type ProductSource interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// Service is the cart use-case layer shared by all sessions
type Service struct {
	products  ProductSource
	carts     *Registry
	bus       EventBus.Bus
	formatter *cart.Formatter
}

func NewService(products ProductSource, carts *Registry, bus EventBus.Bus, formatter *cart.Formatter) *Service {
	return &Service{
		products:  products,
		carts:     carts,
		bus:       bus,
		formatter: formatter,
	}
}

// Registry returns the session cart registry
func (s *Service) Registry() *Registry {
	return s.carts
}

func (s *Service) publishChange(sessionID, op string, productID int64, v View) {
	s.bus.Publish(TopicCartChanged, CartChangedEvent{
		SessionID:  sessionID,
		Op:         op,
		ProductID:  productID,
		TotalPrice: v.TotalPrice,
		TotalCount: v.TotalCount,
	})
}

// AddProduct adds one unit of a catalog product to the session cart
func (s *Service) AddProduct(ctx context.Context, sessionID string, productID int64) (View, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return View{}, err
	}
	v := s.carts.Get(sessionID).AddItem(cart.Product{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Category: p.Category,
	})
	zap.L().Debug("cart item added",
		zap.String("session", sessionID),
		zap.Int64("product_id", productID),
		zap.Int("total_count", v.TotalCount))
	s.publishChange(sessionID, "add", productID, v)
	return v, nil
}

// UpdateQuantity sets the quantity of a line; invalid input is a silent no-op
func (s *Service) UpdateQuantity(sessionID string, productID int64, quantity int) (View, bool) {
	sc, ok := s.carts.Lookup(sessionID)
	if !ok {
		return View{Items: []cart.LineItem{}}, false
	}
	v, changed := sc.UpdateQuantity(productID, quantity)
	if changed {
		s.publishChange(sessionID, "update", productID, v)
	}
	return v, changed
}

// RemoveItem drops a line from the cart; unknown ids are a no-op
func (s *Service) RemoveItem(sessionID string, productID int64) (View, bool) {
	sc, ok := s.carts.Lookup(sessionID)
	if !ok {
		return View{Items: []cart.LineItem{}}, false
	}
	v, changed := sc.RemoveItem(productID)
	if changed {
		s.publishChange(sessionID, "remove", productID, v)
	}
	return v, changed
}

func (s *Service) Clear(sessionID string) View {
	sc, ok := s.carts.Lookup(sessionID)
	if !ok {
		return View{Items: []cart.LineItem{}}
	}
	v := sc.Clear()
	s.publishChange(sessionID, "clear", 0, v)
	return v
}

// View reads the session cart without creating one
func (s *Service) View(sessionID string) View {
	sc, ok := s.carts.Lookup(sessionID)
	if !ok {
		return View{Items: []cart.LineItem{}}
	}
	return sc.Snapshot()
}

// Checkout empties the session cart and returns the receipt with its
// rendered summary. An empty or unknown cart gives cart.ErrEmptyCart.
func (s *Service) Checkout(ctx context.Context, sessionID string) (*cart.Receipt, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	sc, ok := s.carts.Lookup(sessionID)
	if !ok {
		return nil, "", cart.ErrEmptyCart
	}
	receipt, err := sc.Checkout()
	if err != nil {
		return nil, "", errors.WithMessagef(err, "checkout session %s", sessionID)
	}
	summary := s.formatter.Summary(receipt)

	zap.L().Info("cart checked out",
		zap.String("session", sessionID),
		zap.Int("lines", len(receipt.Items)),
		zap.Int("total_count", receipt.TotalCount),
		zap.Int64("total_price", receipt.TotalPrice))

	s.bus.Publish(TopicCheckout, CheckoutEvent{
		SessionID: sessionID,
		Receipt:   receipt,
		Summary:   summary,
	})
	return receipt, summary, nil
}

// EvictIdle drops carts idle for longer than maxIdle and returns how many
func (s *Service) EvictIdle(maxIdle time.Duration) int {
	n := s.carts.EvictIdle(maxIdle)
	if n > 0 {
		zap.L().Info("idle carts evicted", zap.Int("count", n), zap.Duration("max_idle", maxIdle))
	}
	return n
}
