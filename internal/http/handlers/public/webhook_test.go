package public

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bombershop-next/internal/cache"
	"github.com/bombershop-next/internal/config"
	"github.com/bombershop-next/internal/constants"
	"github.com/bombershop-next/internal/models"
	"github.com/bombershop-next/internal/printful"
	"github.com/bombershop-next/internal/provider"
	"github.com/bombershop-next/internal/repository"
	"github.com/bombershop-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type fakeRelayer struct {
	lastInput printful.OrderInput
	calls     int
}

func (f *fakeRelayer) CreateOrder(ctx context.Context, input printful.OrderInput) (*printful.OrderResult, error) {
	f.calls++
	f.lastInput = input
	return &printful.OrderResult{ID: 555001, ExternalID: input.ExternalID, Status: "pending"}, nil
}

func setupWebhookTest(t *testing.T) (*gin.Engine, *fakeRelayer, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.ProductVariant{}, &models.Order{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	db.Exec("DELETE FROM orders")
	db.Exec("DELETE FROM product_variants")
	db.Exec("DELETE FROM products")

	product := models.Product{RemoteID: 410001, Slug: "logo-tee", Name: "Logo Tee", IsActive: true}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	variant := models.ProductVariant{
		ProductID:   product.ID,
		RemoteID:    510001,
		ExternalID:  "logo-tee-m",
		Name:        "Logo Tee / M",
		Size:        "M",
		RetailPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(19.95)),
		Currency:    "EUR",
		IsEnabled:   true,
		InStock:     true,
	}
	if err := db.Create(&variant).Error; err != nil {
		t.Fatalf("create variant failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.Snipcart.WebhookToken = "hook-token"

	relayer := &fakeRelayer{}
	orderService := service.NewOrderService(
		cfg,
		repository.NewOrderRepository(db),
		repository.NewVariantRepository(db),
		relayer,
		cache.NewVariantCache(),
		nil,
	)

	handler := New(&provider.Container{Config: cfg, OrderService: orderService})
	r := gin.New()
	r.POST("/api/v1/webhooks/snipcart", handler.SnipcartWebhook)
	return r, relayer, db
}

func webhookBody(token string) string {
	return `{
		"eventName": "order.completed",
		"content": {
			"token": "` + token + `",
			"email": "buyer@example.com",
			"currency": "EUR",
			"finalGrandTotal": 19.95,
			"items": [
				{"id": "logo-tee-m", "name": "Logo Tee / M", "quantity": 1, "price": 19.95}
			],
			"shippingAddress": {
				"fullName": "Jane Doe",
				"address1": "Main Street 1",
				"city": "Berlin",
				"country": "DE",
				"postalCode": "10115"
			}
		}
	}`
}

func postWebhook(t *testing.T, r *gin.Engine, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/snipcart", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(snipcartTokenHeader, token)
	}
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) (int, map[string]interface{}) {
	t.Helper()
	var resp struct {
		StatusCode int                    `json:"status_code"`
		Data       map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v body=%s", err, w.Body.String())
	}
	return resp.StatusCode, resp.Data
}

func TestSnipcartWebhookRejectsBadToken(t *testing.T) {
	r, relayer, _ := setupWebhookTest(t)

	w := postWebhook(t, r, "wrong-token", webhookBody("tok-bad"))
	code, _ := decodeEnvelope(t, w)
	if code != 401 {
		t.Fatalf("status_code want 401 got %d", code)
	}
	if relayer.calls != 0 {
		t.Fatalf("relayer should not be called, got %d calls", relayer.calls)
	}
}

func TestSnipcartWebhookAcceptsOrder(t *testing.T) {
	r, relayer, db := setupWebhookTest(t)

	w := postWebhook(t, r, "hook-token", webhookBody("tok-accept"))
	code, data := decodeEnvelope(t, w)
	if code != 0 {
		t.Fatalf("status_code want 0 got %d body=%s", code, w.Body.String())
	}
	if data["snipcart_token"] != "tok-accept" {
		t.Fatalf("snipcart token want tok-accept got %v", data["snipcart_token"])
	}

	// 队列未启用时回调内同步转发
	if relayer.calls != 1 {
		t.Fatalf("relayer calls want 1 got %d", relayer.calls)
	}
	if len(relayer.lastInput.Items) != 1 || relayer.lastInput.Items[0].SyncVariantID != 510001 {
		t.Fatalf("relay input should carry resolved sync variant id, got %+v", relayer.lastInput.Items)
	}

	var order models.Order
	if err := db.Where("snipcart_token = ?", "tok-accept").First(&order).Error; err != nil {
		t.Fatalf("load order failed: %v", err)
	}
	if order.Status != constants.RelayStatusForwarded {
		t.Fatalf("order status want %s got %s", constants.RelayStatusForwarded, order.Status)
	}
}

func TestSnipcartWebhookIsIdempotent(t *testing.T) {
	r, relayer, db := setupWebhookTest(t)

	first := postWebhook(t, r, "hook-token", webhookBody("tok-dup"))
	if code, _ := decodeEnvelope(t, first); code != 0 {
		t.Fatalf("first call should succeed, got %d", code)
	}
	second := postWebhook(t, r, "hook-token", webhookBody("tok-dup"))
	if code, _ := decodeEnvelope(t, second); code != 0 {
		t.Fatalf("duplicate call should succeed, got %d", code)
	}

	if relayer.calls != 1 {
		t.Fatalf("duplicate webhook must not relay again, calls=%d", relayer.calls)
	}
	var count int64
	db.Model(&models.Order{}).Where("snipcart_token = ?", "tok-dup").Count(&count)
	if count != 1 {
		t.Fatalf("order count want 1 got %d", count)
	}
}

func TestSnipcartWebhookIgnoresOtherEvents(t *testing.T) {
	r, relayer, _ := setupWebhookTest(t)

	body := `{"eventName": "order.refunded", "content": {"token": "tok-refund"}}`
	w := postWebhook(t, r, "hook-token", body)
	code, data := decodeEnvelope(t, w)
	if code != 0 {
		t.Fatalf("status_code want 0 got %d", code)
	}
	if data["ignored"] != true {
		t.Fatalf("unhandled event should be acknowledged as ignored, got %v", data)
	}
	if relayer.calls != 0 {
		t.Fatalf("relayer should not be called for other events")
	}
}
