package app

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/talkincode/toughshop/internal/cartsvc"
	"github.com/talkincode/toughshop/internal/domain"
	"github.com/talkincode/toughshop/pkg/common"
	"github.com/talkincode/toughshop/pkg/metrics"
)

const (
	MetricCheckoutTotal = "shop_checkout_total"
	MetricCheckoutValue = "shop_checkout_value"
	MetricCartMutations = "shop_cart_mutations"
	MetricActiveCarts   = "shop_active_carts"
)

func (a *Application) subscribeEvents() error {
	if err := a.bus.Subscribe(cartsvc.TopicCheckout, a.onCheckout); err != nil {
		return errors.Wrap(err, "subscribe checkout")
	}
	if err := a.bus.Subscribe(cartsvc.TopicCartChanged, a.onCartChanged); err != nil {
		return errors.Wrap(err, "subscribe cart changes")
	}
	return nil
}

// onCheckout writes the audit row and bumps the checkout metrics
func (a *Application) onCheckout(e cartsvc.CheckoutEvent) {
	metrics.Incr(MetricCheckoutTotal, 1)
	metrics.Incr(MetricCheckoutValue, e.Receipt.TotalPrice)

	log := &domain.CheckoutLog{
		ID:         common.UUIDint64(),
		SessionID:  e.SessionID,
		TotalPrice: e.Receipt.TotalPrice,
		TotalCount: e.Receipt.TotalCount,
		Lines:      len(e.Receipt.Items),
		Summary:    e.Summary,
		OptTime:    e.Receipt.CheckedOutAt,
	}
	if err := a.gormDB.Create(log).Error; err != nil {
		zap.L().Error("failed to write checkout log", zap.String("session", e.SessionID), zap.Error(err))
	}
}

func (a *Application) onCartChanged(e cartsvc.CartChangedEvent) {
	metrics.Incr(MetricCartMutations, 1)
}
