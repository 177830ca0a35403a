package checkout_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/coder-dkr/doomswear/internal/checkout"
	"github.com/coder-dkr/doomswear/internal/logger"
	"github.com/coder-dkr/doomswear/internal/models"
	"github.com/coder-dkr/doomswear/internal/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type stubGateway struct {
	status string
}

func (g stubGateway) Charge(ctx context.Context, amount decimal.Decimal) string {
	return g.status
}

type recordingNotifier struct {
	mu        sync.Mutex
	confirmed []string
	failed    []string
}

func (n *recordingNotifier) OrderConfirmed(ctx context.Context, order *models.Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmed = append(n.confirmed, order.OrderNumber)
	return nil
}

func (n *recordingNotifier) OrderFailed(ctx context.Context, order *models.Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failed = append(n.failed, order.OrderNumber)
	return nil
}

func (n *recordingNotifier) counts() (int, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.confirmed), len(n.failed)
}

type fixture struct {
	store    *store.Store
	notifier *recordingNotifier
	coord    *checkout.Coordinator
}

func newFixture(t *testing.T, gatewayStatus string) *fixture {
	t.Helper()
	logger.Init()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	st := store.NewWithDB(db)
	require.NoError(t, st.Migrate())

	notifier := &recordingNotifier{}
	return &fixture{
		store:    st,
		notifier: notifier,
		coord:    checkout.New(st, stubGateway{status: gatewayStatus}, notifier),
	}
}

func (f *fixture) product(t *testing.T, price int64, inventory int) *models.Product {
	t.Helper()
	p := models.Product{
		Name:        "Friends Vector Designing Hoodie",
		Description: "A cozy hoodie",
		Price:       decimal.NewFromInt(price),
		Images:      []string{"https://example.com/hoodie.jpeg"},
		Highlights:  []string{"Soft fabric"},
		Colors:      []models.Color{{Name: "Black", Value: "#000000", ColorClass: "bg-black"}},
		Sizes:       []string{"M", "L"},
		Tags:        []string{"hoodie"},
		Inventory:   inventory,
	}
	require.NoError(t, f.store.CreateProduct(context.Background(), &p))
	return &p
}

func (f *fixture) user(t *testing.T, wallet int64) *models.User {
	t.Helper()
	u := models.User{
		Name:     "Test Shopper",
		Email:    uuid.NewString() + "@test.com",
		Password: "irrelevant",
	}
	require.NoError(t, f.store.CreateUser(context.Background(), &u, decimal.NewFromInt(wallet)))
	return &u
}

func placementInput(user *models.User, product *models.Product, quantity int, total int64, status string) checkout.PlaceOrderInput {
	return checkout.PlaceOrderInput{
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  quantity,
		Color:     "Black",
		Size:      "L",
		Image:     "https://example.com/hoodie.jpeg",
		CustomerInfo: models.CustomerInfo{
			FullName: "Test Shopper",
			Email:    "shopper@test.com",
			Address:  "1 Main St",
			City:     "Pune",
			State:    "MH",
			ZipCode:  "411001",
		},
		TotalAmount: decimal.NewFromInt(total),
		Status:      status,
	}
}

func (f *fixture) orderCount(t *testing.T) int {
	t.Helper()
	// Orders have sequential ids starting at 1; probe until NotFound.
	count := 0
	for id := uint(1); ; id++ {
		_, err := f.store.GetOrder(context.Background(), id)
		if err != nil {
			break
		}
		count++
	}
	return count
}

func TestPlaceSuccess(t *testing.T) {
	f := newFixture(t, models.StatusSuccess)
	ctx := context.Background()
	p := f.product(t, 100, 1)
	u := f.user(t, 150)

	placement, err := f.coord.Place(ctx, placementInput(u, p, 1, 118, models.StatusSuccess))
	require.NoError(t, err)

	assert.Equal(t, models.StatusSuccess, placement.Order.Status)
	assert.Equal(t, 0, placement.Inventory)
	assert.True(t, placement.Balance.Equal(decimal.NewFromInt(32)), "got %s", placement.Balance)
	assert.NotEmpty(t, placement.Order.OrderNumber)

	gotP, err := f.store.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, gotP.Inventory)

	gotU, err := f.store.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, gotU.Wallet.Equal(decimal.NewFromInt(32)))

	entries, err := f.store.Statement(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	debit := entries[1]
	assert.Equal(t, models.KindDebit, debit.Kind)
	assert.True(t, debit.Amount.Equal(decimal.NewFromInt(118)))
	require.NotNil(t, debit.OrderID)
	assert.Equal(t, placement.Order.ID, *debit.OrderID)

	got, err := f.store.GetOrder(ctx, placement.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSuccess, got.Status)
	assert.Equal(t, "Friends Vector Designing Hoodie", got.Product.Name)
	assert.True(t, got.Product.Price.Equal(decimal.NewFromInt(100)), "snapshot keeps the paid price")
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(118)))

	require.Eventually(t, func() bool {
		confirmed, failed := f.notifier.counts()
		return confirmed == 1 && failed == 0
	}, time.Second, 10*time.Millisecond)
}

func TestPlaceDeclinedRecordsOrderWithoutMutation(t *testing.T) {
	f := newFixture(t, models.StatusSuccess)
	ctx := context.Background()
	p := f.product(t, 100, 1)
	u := f.user(t, 150)

	placement, err := f.coord.Place(ctx, placementInput(u, p, 1, 118, models.StatusDeclined))
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeclined, placement.Order.Status)

	gotP, err := f.store.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, gotP.Inventory, "declined placement must not touch inventory")

	gotU, err := f.store.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, gotU.Wallet.Equal(decimal.NewFromInt(150)), "declined placement must not touch the wallet")

	entries, err := f.store.Statement(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "declined placement must not append ledger entries")

	got, err := f.store.GetOrder(ctx, placement.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeclined, got.Status)

	require.Eventually(t, func() bool {
		confirmed, failed := f.notifier.counts()
		return confirmed == 0 && failed == 1
	}, time.Second, 10*time.Millisecond)
}

func TestPlaceErrorStatusIdempotent(t *testing.T) {
	f := newFixture(t, models.StatusSuccess)
	ctx := context.Background()
	p := f.product(t, 100, 5)
	u := f.user(t, 500)

	for i := 0; i < 3; i++ {
		_, err := f.coord.Place(ctx, placementInput(u, p, 1, 118, models.StatusError))
		require.NoError(t, err)
	}

	gotP, err := f.store.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, gotP.Inventory)

	gotU, err := f.store.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, gotU.Wallet.Equal(decimal.NewFromInt(500)))

	assert.Equal(t, 3, f.orderCount(t), "each failed attempt is still recorded")
}

func TestPlaceProductNotFound(t *testing.T) {
	f := newFixture(t, models.StatusSuccess)
	u := f.user(t, 500)

	fakeProduct := &models.Product{Model: gorm.Model{ID: 999}}
	_, err := f.coord.Place(context.Background(), placementInput(u, fakeProduct, 1, 118, models.StatusSuccess))
	require.ErrorIs(t, err, store.ErrProductNotFound)
	assert.Zero(t, f.orderCount(t), "aborted placement must not write an order")
}

func TestPlaceUserNotFound(t *testing.T) {
	f := newFixture(t, models.StatusSuccess)
	p := f.product(t, 100, 5)

	fakeUser := &models.User{Model: gorm.Model{ID: 999}}
	_, err := f.coord.Place(context.Background(), placementInput(fakeUser, p, 1, 118, models.StatusSuccess))
	require.ErrorIs(t, err, store.ErrUserNotFound)
	assert.Zero(t, f.orderCount(t))
}

func TestPlaceInsufficientStock(t *testing.T) {
	f := newFixture(t, models.StatusSuccess)
	ctx := context.Background()
	p := f.product(t, 100, 2)
	u := f.user(t, 10000)

	var stockErr *store.InsufficientStockError
	_, err := f.coord.Place(ctx, placementInput(u, p, 3, 354, models.StatusSuccess))
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Available)

	assert.Zero(t, f.orderCount(t))
	gotU, err := f.store.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, gotU.Wallet.Equal(decimal.NewFromInt(10000)))
}

func TestPlaceInsufficientFunds(t *testing.T) {
	f := newFixture(t, models.StatusSuccess)
	ctx := context.Background()
	p := f.product(t, 100, 5)
	u := f.user(t, 100)

	var fundsErr *store.InsufficientFundsError
	_, err := f.coord.Place(ctx, placementInput(u, p, 1, 118, models.StatusSuccess))
	require.ErrorAs(t, err, &fundsErr)
	assert.True(t, fundsErr.Balance.Equal(decimal.NewFromInt(100)))
	assert.True(t, fundsErr.Required.Equal(decimal.NewFromInt(118)))

	assert.Zero(t, f.orderCount(t))
	gotP, err := f.store.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, gotP.Inventory)
}

func TestPlaceConsultsGatewayWhenStatusOmitted(t *testing.T) {
	f := newFixture(t, models.StatusDeclined)
	ctx := context.Background()
	p := f.product(t, 100, 5)
	u := f.user(t, 500)

	placement, err := f.coord.Place(ctx, placementInput(u, p, 1, 118, ""))
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeclined, placement.Order.Status)

	gotP, err := f.store.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, gotP.Inventory)
}

func TestConcurrentPlacementsNeverOversell(t *testing.T) {
	const stock = 3
	const shoppers = 8

	f := newFixture(t, models.StatusSuccess)
	ctx := context.Background()
	p := f.product(t, 100, stock)

	users := make([]*models.User, shoppers)
	for i := range users {
		users[i] = f.user(t, 1000)
	}

	var wg sync.WaitGroup
	gate := make(chan struct{})
	results := make([]error, shoppers)

	for i := 0; i < shoppers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			<-gate
			_, err := f.coord.Place(ctx, placementInput(users[idx], p, 1, 100, models.StatusSuccess))
			results[idx] = err
		}(i)
	}

	close(gate)
	wg.Wait()

	successes, rejections := 0, 0
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		var stockErr *store.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		rejections++
	}

	assert.Equal(t, stock, successes)
	assert.Equal(t, shoppers-stock, rejections)

	gotP, err := f.store.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, gotP.Inventory, "inventory must land exactly at zero, never negative")
	assert.Equal(t, stock, f.orderCount(t), "only successful placements leave an order")
}

func TestConcurrentDebitsNeverOverdraw(t *testing.T) {
	const shoppers = 6
	const amount = 100
	const balance = 250 // floor(250/100) = 2 successes

	f := newFixture(t, models.StatusSuccess)
	ctx := context.Background()
	p := f.product(t, amount, 100)
	u := f.user(t, balance)

	var wg sync.WaitGroup
	gate := make(chan struct{})
	results := make([]error, shoppers)

	for i := 0; i < shoppers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			<-gate
			_, err := f.coord.Place(ctx, placementInput(u, p, 1, amount, models.StatusSuccess))
			results[idx] = err
		}(i)
	}

	close(gate)
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		var fundsErr *store.InsufficientFundsError
		require.ErrorAs(t, err, &fundsErr)
	}
	assert.Equal(t, 2, successes)

	gotU, err := f.store.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, gotU.Wallet.Equal(decimal.NewFromInt(50)), "got %s", gotU.Wallet)
	assert.False(t, gotU.Wallet.IsNegative())
}

func TestGetOrderOwnership(t *testing.T) {
	f := newFixture(t, models.StatusSuccess)
	ctx := context.Background()
	p := f.product(t, 100, 5)
	owner := f.user(t, 500)
	stranger := f.user(t, 500)

	placement, err := f.coord.Place(ctx, placementInput(owner, p, 1, 118, models.StatusSuccess))
	require.NoError(t, err)

	got, err := f.coord.GetOrder(ctx, placement.Order.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, placement.Order.OrderNumber, got.OrderNumber)

	_, err = f.coord.GetOrder(ctx, placement.Order.ID, stranger.ID)
	assert.ErrorIs(t, err, checkout.ErrForbidden)

	_, err = f.coord.GetOrder(ctx, placement.Order.ID+100, owner.ID)
	assert.ErrorIs(t, err, store.ErrOrderNotFound)
}

func TestOrderNumbersUniqueAcrossPlacements(t *testing.T) {
	f := newFixture(t, models.StatusSuccess)
	ctx := context.Background()
	p := f.product(t, 10, 50)
	u := f.user(t, 10000)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		placement, err := f.coord.Place(ctx, placementInput(u, p, 1, 10, models.StatusSuccess))
		require.NoError(t, err)
		require.False(t, seen[placement.Order.OrderNumber], "duplicate order number %s", placement.Order.OrderNumber)
		seen[placement.Order.OrderNumber] = true
	}
}
