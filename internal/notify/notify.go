package notify

import (
	"context"

	"github.com/coder-dkr/doomswear/internal/logger"
	"github.com/coder-dkr/doomswear/internal/models"
	"go.uber.org/zap"
)

// Notifier delivers order outcome messages. Delivery is best-effort:
// callers invoke it after commit and never propagate its errors.
type Notifier interface {
	OrderConfirmed(ctx context.Context, order *models.Order) error
	OrderFailed(ctx context.Context, order *models.Order) error
}

// LogNotifier stands in when no SMTP credentials are configured.
type LogNotifier struct{}

func (LogNotifier) OrderConfirmed(ctx context.Context, order *models.Order) error {
	logger.Log.Info("order confirmation (mail disabled)",
		zap.String("orderNumber", order.OrderNumber),
		zap.String("email", order.CustomerInfo.Email))
	return nil
}

func (LogNotifier) OrderFailed(ctx context.Context, order *models.Order) error {
	logger.Log.Info("order failure notice (mail disabled)",
		zap.String("orderNumber", order.OrderNumber),
		zap.String("status", order.Status),
		zap.String("email", order.CustomerInfo.Email))
	return nil
}
