package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bombershop-next/internal/cache"
	"github.com/bombershop-next/internal/config"
	"github.com/bombershop-next/internal/constants"
	"github.com/bombershop-next/internal/logger"
	"github.com/bombershop-next/internal/models"
	"github.com/bombershop-next/internal/printful"
	"github.com/bombershop-next/internal/queue"
	"github.com/bombershop-next/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderRelayer Printful 下单接口
type OrderRelayer interface {
	CreateOrder(ctx context.Context, input printful.OrderInput) (*printful.OrderResult, error)
}

// OrderService 订单转发服务。
// 接收 Snipcart 结算回调，落库后异步转发到 Printful 履约。
type OrderService struct {
	cfg          *config.Config
	orderRepo    repository.OrderRepository
	variantRepo  repository.VariantRepository
	relayer      OrderRelayer
	variantCache *cache.VariantCache
	queueClient  *queue.Client

	now func() time.Time
}

// NewOrderService 创建订单服务
func NewOrderService(
	cfg *config.Config,
	orderRepo repository.OrderRepository,
	variantRepo repository.VariantRepository,
	relayer OrderRelayer,
	variantCache *cache.VariantCache,
	queueClient *queue.Client,
) *OrderService {
	return &OrderService{
		cfg:          cfg,
		orderRepo:    orderRepo,
		variantRepo:  variantRepo,
		relayer:      relayer,
		variantCache: variantCache,
		queueClient:  queueClient,
		now:          time.Now,
	}
}

// SnipcartItem 结算条目
type SnipcartItem struct {
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	Price      string `json:"price"`
}

// SnipcartAddress 收件地址
type SnipcartAddress struct {
	Name     string `json:"name"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	Province string `json:"province"`
	Country  string `json:"country"`
	Zip      string `json:"postal_code"`
	Phone    string `json:"phone"`
}

// SnipcartOrderInput 结算回调输入
type SnipcartOrderInput struct {
	Token    string
	Email    string
	Total    string
	Currency string
	Items    []SnipcartItem
	Shipping SnipcartAddress
}

// ValidateWebhookToken 校验回调请求携带的共享密钥
func (s *OrderService) ValidateWebhookToken(token string) error {
	expected := strings.TrimSpace(s.cfg.Snipcart.WebhookToken)
	if expected == "" {
		// 未配置密钥时放行，适用于本地联调
		return nil
	}
	if strings.TrimSpace(token) != expected {
		return ErrWebhookTokenInvalid
	}
	return nil
}

// AcceptWebhook 接收 order.completed 回调，落库并推送转发任务。
// 以 Snipcart token 幂等，重复回调返回已有记录。
func (s *OrderService) AcceptWebhook(input SnipcartOrderInput) (*models.Order, error) {
	token := strings.TrimSpace(input.Token)
	if token == "" || len(input.Items) == 0 {
		return nil, ErrInvalidInput
	}

	existing, err := s.orderRepo.GetBySnipcartToken(token)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, ErrDuplicateWebhook
	}

	total := decimal.Zero
	if input.Total != "" {
		parsed, err := decimal.NewFromString(input.Total)
		if err != nil {
			return nil, ErrInvalidInput
		}
		total = parsed
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = "EUR"
	}

	snapshot, err := buildItemsSnapshot(input)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		SnipcartToken: token,
		ExternalID:    uuid.NewString(),
		Status:        constants.RelayStatusReceived,
		Email:         strings.TrimSpace(input.Email),
		ItemsJSON:     snapshot,
		AmountTotal:   models.NewMoneyFromDecimal(total),
		Currency:      currency,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	logger.Infow("order_webhook_accepted",
		"order_id", order.ID,
		"snipcart_token", token,
		"items", len(input.Items),
	)

	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueOrderRelay(queue.OrderRelayPayload{OrderID: order.ID}); err != nil {
			return nil, err
		}
		return order, nil
	}

	// 队列未启用时同步转发，失败只记录在订单上，回调本身仍算接收成功
	if relayErr := s.Relay(context.Background(), order.ID); relayErr != nil {
		logger.Errorw("order_relay_failed", "order_id", order.ID, "error", relayErr)
	}
	return s.orderRepo.GetByID(order.ID)
}

// Relay 将订单转发到 Printful。
// 已转发的订单直接返回；失败时记录原因并返回错误供队列重试。
func (s *OrderService) Relay(ctx context.Context, orderID uint) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrNotFound
	}
	if order.Status == constants.RelayStatusForwarded {
		return nil
	}

	input, err := s.buildRelayInput(order)
	if err != nil {
		s.markFailed(order, err)
		return err
	}

	result, err := s.relayer.CreateOrder(ctx, input)
	if err != nil {
		s.markFailed(order, err)
		return err
	}

	now := s.now()
	order.PrintfulOrderID = result.ID
	order.Status = constants.RelayStatusForwarded
	order.ErrorMessage = ""
	order.ForwardedAt = &now
	if err := s.orderRepo.Update(order); err != nil {
		return err
	}

	logger.Infow("order_relayed",
		"order_id", order.ID,
		"printful_order_id", result.ID,
		"status", result.Status,
	)
	return nil
}

// GetByID 查询订单
func (s *OrderService) GetByID(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// List 订单列表
func (s *OrderService) List(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

func (s *OrderService) buildRelayInput(order *models.Order) (printful.OrderInput, error) {
	var snapshot struct {
		Items    []SnipcartItem  `json:"items"`
		Shipping SnipcartAddress `json:"shipping"`
	}
	raw, err := json.Marshal(map[string]interface{}(order.ItemsJSON))
	if err != nil {
		return printful.OrderInput{}, err
	}
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return printful.OrderInput{}, err
	}
	if len(snapshot.Items) == 0 {
		return printful.OrderInput{}, fmt.Errorf("order %d has no relayable items", order.ID)
	}

	items := make([]printful.OrderItem, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		variantID, err := s.resolveVariantID(item.ExternalID)
		if err != nil {
			return printful.OrderInput{}, err
		}
		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		items = append(items, printful.OrderItem{
			SyncVariantID: variantID,
			Quantity:      quantity,
			RetailPrice:   item.Price,
		})
	}

	return printful.OrderInput{
		ExternalID: order.ExternalID,
		Recipient: printful.OrderRecipient{
			Name:        snapshot.Shipping.Name,
			Address1:    snapshot.Shipping.Address1,
			Address2:    snapshot.Shipping.Address2,
			City:        snapshot.Shipping.City,
			StateCode:   snapshot.Shipping.Province,
			CountryCode: snapshot.Shipping.Country,
			Zip:         snapshot.Shipping.Zip,
			Email:       order.Email,
			Phone:       snapshot.Shipping.Phone,
		},
		Items:   items,
		Confirm: true,
	}, nil
}

// resolveVariantID externalId -> Printful 变体 ID，先查进程内缓存再回源数据库
func (s *OrderService) resolveVariantID(externalID string) (int64, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return 0, fmt.Errorf("order item missing external id")
	}
	if s.variantCache != nil {
		if id, ok := s.variantCache.Get(externalID); ok {
			return id, nil
		}
	}
	variant, err := s.variantRepo.GetByExternalID(externalID)
	if err != nil {
		return 0, err
	}
	if variant == nil {
		return 0, fmt.Errorf("variant %s not found locally", externalID)
	}
	if s.variantCache != nil {
		s.variantCache.Set(externalID, variant.RemoteID)
	}
	return variant.RemoteID, nil
}

func (s *OrderService) markFailed(order *models.Order, cause error) {
	order.Status = constants.RelayStatusFailed
	order.ErrorMessage = cause.Error()
	if err := s.orderRepo.Update(order); err != nil {
		logger.Errorw("order_failure_persist_failed", "order_id", order.ID, "error", err)
	}
}

func buildItemsSnapshot(input SnipcartOrderInput) (models.JSON, error) {
	raw, err := json.Marshal(map[string]interface{}{
		"items":    input.Items,
		"shipping": input.Shipping,
	})
	if err != nil {
		return nil, err
	}
	var snapshot map[string]interface{}
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, err
	}
	return models.JSON(snapshot), nil
}
