package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bombershop-next/internal/cache"
	"github.com/bombershop-next/internal/config"
	"github.com/bombershop-next/internal/constants"
	"github.com/bombershop-next/internal/models"
	"github.com/bombershop-next/internal/printful"
	"github.com/bombershop-next/internal/queue"
	"github.com/bombershop-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type fakeRelayer struct {
	lastInput printful.OrderInput
	fail      bool
	calls     int
}

func (f *fakeRelayer) CreateOrder(ctx context.Context, input printful.OrderInput) (*printful.OrderResult, error) {
	f.calls++
	f.lastInput = input
	if f.fail {
		return nil, errors.New("printful rejected order")
	}
	return &printful.OrderResult{ID: 777001, ExternalID: input.ExternalID, Status: "pending"}, nil
}

func setupOrderServiceTest(t *testing.T, relayer *fakeRelayer) (*OrderService, *gorm.DB, *cache.VariantCache) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.ProductVariant{}, &models.Order{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	for _, table := range []string{"orders", "product_variants", "products"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("reset table %s failed: %v", table, err)
		}
	}

	cfg := &config.Config{}
	cfg.Snipcart.WebhookToken = "hook-secret"
	queueClient, _ := queue.NewClient(nil)
	variantCache := cache.NewVariantCache()

	svc := NewOrderService(
		cfg,
		repository.NewOrderRepository(db),
		repository.NewVariantRepository(db),
		relayer,
		variantCache,
		queueClient,
	)
	return svc, db, variantCache
}

func seedVariant(t *testing.T, db *gorm.DB, externalID string, remoteID int64) {
	t.Helper()
	product := &models.Product{
		RemoteID: remoteID * 10,
		Slug:     externalID + "-product",
		Name:     "Product for " + externalID,
		IsActive: true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	variant := &models.ProductVariant{
		ProductID:   product.ID,
		RemoteID:    remoteID,
		ExternalID:  externalID,
		Name:        "Variant " + externalID,
		RetailPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
		Currency:    "EUR",
		IsEnabled:   true,
		InStock:     true,
	}
	if err := db.Create(variant).Error; err != nil {
		t.Fatalf("create variant failed: %v", err)
	}
}

func completedOrderInput(token string) SnipcartOrderInput {
	return SnipcartOrderInput{
		Token:    token,
		Email:    "buyer@example.com",
		Total:    "49.90",
		Currency: "eur",
		Items: []SnipcartItem{
			{ExternalID: "ext-v-1", Name: "Classic Tee / M", Quantity: 2, Price: "24.95"},
		},
		Shipping: SnipcartAddress{
			Name:     "Jo Tester",
			Address1: "Main St 1",
			City:     "Berlin",
			Country:  "DE",
			Zip:      "10115",
		},
	}
}

func TestAcceptWebhookIsIdempotent(t *testing.T) {
	svc, _, _ := setupOrderServiceTest(t, &fakeRelayer{})

	first, err := svc.AcceptWebhook(completedOrderInput("token-1"))
	if err != nil {
		t.Fatalf("first webhook failed: %v", err)
	}
	if first.Status != constants.RelayStatusReceived && first.Status != constants.RelayStatusFailed {
		t.Fatalf("unexpected initial status %s", first.Status)
	}
	if first.Currency != "EUR" {
		t.Fatalf("currency want EUR got %s", first.Currency)
	}

	second, err := svc.AcceptWebhook(completedOrderInput("token-1"))
	if !errors.Is(err, ErrDuplicateWebhook) {
		t.Fatalf("duplicate webhook want ErrDuplicateWebhook got %v", err)
	}
	if second == nil || second.ID != first.ID {
		t.Fatalf("duplicate webhook should return the original order")
	}
}

func TestRelayForwardsOrder(t *testing.T) {
	relayer := &fakeRelayer{}
	svc, db, variantCache := setupOrderServiceTest(t, relayer)
	seedVariant(t, db, "ext-v-1", 9001)

	order, err := svc.AcceptWebhook(completedOrderInput("token-2"))
	if err != nil {
		t.Fatalf("webhook failed: %v", err)
	}

	if err := svc.Relay(context.Background(), order.ID); err != nil {
		t.Fatalf("relay failed: %v", err)
	}

	loaded, err := svc.GetByID(order.ID)
	if err != nil {
		t.Fatalf("load order failed: %v", err)
	}
	if loaded.Status != constants.RelayStatusForwarded {
		t.Fatalf("status want forwarded got %s", loaded.Status)
	}
	if loaded.PrintfulOrderID != 777001 {
		t.Fatalf("printful order id want 777001 got %d", loaded.PrintfulOrderID)
	}
	if loaded.ForwardedAt == nil {
		t.Fatal("forwarded_at should be set")
	}

	if len(relayer.lastInput.Items) != 1 {
		t.Fatalf("relay items want 1 got %d", len(relayer.lastInput.Items))
	}
	item := relayer.lastInput.Items[0]
	if item.SyncVariantID != 9001 || item.Quantity != 2 {
		t.Fatalf("relay item want variant 9001 qty 2 got %+v", item)
	}
	if relayer.lastInput.Recipient.CountryCode != "DE" {
		t.Fatalf("recipient country want DE got %s", relayer.lastInput.Recipient.CountryCode)
	}

	// 解析过的变体进缓存
	if id, ok := variantCache.Get("ext-v-1"); !ok || id != 9001 {
		t.Fatalf("variant cache want 9001 got %d ok=%v", id, ok)
	}

	// 已转发的订单再次转发为空操作
	if err := svc.Relay(context.Background(), order.ID); err != nil {
		t.Fatalf("repeat relay failed: %v", err)
	}
	if relayer.calls != 1 {
		t.Fatalf("relayer calls want 1 got %d", relayer.calls)
	}
}

func TestRelayFailureMarksOrder(t *testing.T) {
	relayer := &fakeRelayer{fail: true}
	svc, db, _ := setupOrderServiceTest(t, relayer)
	seedVariant(t, db, "ext-v-1", 9001)

	order, err := svc.AcceptWebhook(completedOrderInput("token-3"))
	if err != nil {
		t.Fatalf("webhook failed: %v", err)
	}

	if err := svc.Relay(context.Background(), order.ID); err == nil {
		t.Fatal("relay should fail")
	}

	loaded, _ := svc.GetByID(order.ID)
	if loaded.Status != constants.RelayStatusFailed {
		t.Fatalf("status want failed got %s", loaded.Status)
	}
	if loaded.ErrorMessage == "" {
		t.Fatal("error message should be recorded")
	}
}

func TestValidateWebhookToken(t *testing.T) {
	svc, _, _ := setupOrderServiceTest(t, &fakeRelayer{})

	if err := svc.ValidateWebhookToken("hook-secret"); err != nil {
		t.Fatalf("valid token rejected: %v", err)
	}
	if err := svc.ValidateWebhookToken("wrong"); !errors.Is(err, ErrWebhookTokenInvalid) {
		t.Fatalf("invalid token want ErrWebhookTokenInvalid got %v", err)
	}
}
