// Package checkout implements order placement: a single atomic unit
// spanning the product inventory, the user's wallet and the orders
// table. A placement either fully applies (order written, inventory
// decremented, wallet debited, ledger entry appended) or, for recorded
// payment failures, writes the order alone; a fault mid-way leaves no
// trace at all.
package checkout

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/coder-dkr/doomswear/internal/logger"
	"github.com/coder-dkr/doomswear/internal/models"
	"github.com/coder-dkr/doomswear/internal/notify"
	"github.com/coder-dkr/doomswear/internal/payment"
	"github.com/coder-dkr/doomswear/internal/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrForbidden is returned when an order exists but belongs to a
// different user.
var ErrForbidden = errors.New("not authorized to access this order")

const notifyTimeout = 30 * time.Second

type Coordinator struct {
	store    *store.Store
	gateway  payment.Gateway
	notifier notify.Notifier
}

func New(st *store.Store, gateway payment.Gateway, notifier notify.Notifier) *Coordinator {
	return &Coordinator{store: st, gateway: gateway, notifier: notifier}
}

// PlaceOrderInput carries an already-validated placement request. The
// user is assumed authenticated; Status, when set, is the payment
// outcome proposed by the client (kept for compatibility with the
// existing checkout flow). An empty Status makes the coordinator charge
// through the payment gateway instead.
type PlaceOrderInput struct {
	UserID       uint
	ProductID    uint
	Quantity     int
	Color        string
	Size         string
	Image        string
	CustomerInfo models.CustomerInfo
	TotalAmount  decimal.Decimal
	Status       string
}

// Placement is the committed outcome. Inventory and Balance hold the
// post-decrement values and are only meaningful for a success status.
type Placement struct {
	Order     models.Order
	Inventory int
	Balance   decimal.Decimal
}

// Place runs the order placement transaction.
//
// Inside one atomic unit it checks product existence and stock, user
// existence and funds, snapshots the product as purchased, and writes
// the order. A success status additionally decrements inventory and
// debits the wallet in the same unit. Any error rolls everything back,
// order row included. The notifier fires only after commit and cannot
// affect the result.
func (c *Coordinator) Place(ctx context.Context, in PlaceOrderInput) (*Placement, error) {
	status := in.Status
	if status == "" {
		status = c.gateway.Charge(ctx, in.TotalAmount)
	}

	var placement Placement
	err := c.store.Atomically(ctx, func(tx *store.Store) error {
		product, err := tx.GetProduct(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product.Inventory < in.Quantity {
			return &store.InsufficientStockError{Available: product.Inventory}
		}

		user, err := tx.GetUser(ctx, in.UserID)
		if err != nil {
			return err
		}
		if user.Wallet.LessThan(in.TotalAmount) {
			return &store.InsufficientFundsError{Balance: user.Wallet, Required: in.TotalAmount}
		}

		order := models.Order{
			UserID:       in.UserID,
			OrderNumber:  newOrderNumber(),
			CustomerInfo: in.CustomerInfo,
			Product: models.ProductSnapshot{
				ProductID: product.ID,
				Name:      product.Name,
				Price:     product.Price,
				Color:     in.Color,
				Size:      in.Size,
				Quantity:  in.Quantity,
				Image:     in.Image,
			},
			TotalAmount: in.TotalAmount,
			Status:      status,
		}
		// A failed payment is still a recorded business event, so the
		// order row is written regardless of status.
		if err := tx.CreateOrder(ctx, &order); err != nil {
			return err
		}
		placement.Order = order

		if status != models.StatusSuccess {
			return nil
		}

		remaining, err := tx.Reserve(ctx, product.ID, in.Quantity)
		if err != nil {
			return err
		}
		orderID := order.ID
		balance, err := tx.Debit(ctx, in.UserID, in.TotalAmount, "Purchase of "+product.Name, &orderID)
		if err != nil {
			return err
		}
		placement.Inventory = remaining
		placement.Balance = balance
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.notifyAfterCommit(placement.Order)
	return &placement, nil
}

// GetOrder fetches an order on behalf of callerID. Non-owners get
// ErrForbidden even for orders that exist.
func (c *Coordinator) GetOrder(ctx context.Context, orderID, callerID uint) (*models.Order, error) {
	order, err := c.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != callerID {
		return nil, ErrForbidden
	}
	return order, nil
}

// notifyAfterCommit delivers the outcome message without holding up the
// caller. Delivery failures are logged and swallowed.
func (c *Coordinator) notifyAfterCommit(order models.Order) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		var err error
		if order.Status == models.StatusSuccess {
			err = c.notifier.OrderConfirmed(ctx, &order)
		} else {
			err = c.notifier.OrderFailed(ctx, &order)
		}
		if err != nil {
			logger.Log.Error("order notification failed",
				zap.String("orderNumber", order.OrderNumber),
				zap.Error(err))
		}
	}()
}

func newOrderNumber() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "ORD-" + id[:12]
}
