package public

import (
	"encoding/json"
	"errors"

	"github.com/bombershop-next/internal/constants"
	"github.com/bombershop-next/internal/http/response"
	"github.com/bombershop-next/internal/service"

	"github.com/gin-gonic/gin"
)

const snipcartTokenHeader = "X-Snipcart-RequestToken"

// SnipcartWebhookRequest Snipcart 回调请求
type SnipcartWebhookRequest struct {
	EventName string               `json:"eventName"`
	Content   SnipcartOrderContent `json:"content"`
}

// SnipcartOrderContent 结算完成事件内容
type SnipcartOrderContent struct {
	Token           string                 `json:"token"`
	Email           string                 `json:"email"`
	Currency        string                 `json:"currency"`
	FinalGrandTotal json.Number            `json:"finalGrandTotal"`
	Items           []SnipcartItemPayload  `json:"items"`
	ShippingAddress SnipcartAddressPayload `json:"shippingAddress"`
}

// SnipcartItemPayload 结算条目
type SnipcartItemPayload struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Quantity int         `json:"quantity"`
	Price    json.Number `json:"price"`
}

// SnipcartAddressPayload 收件地址
type SnipcartAddressPayload struct {
	FullName   string `json:"fullName"`
	Address1   string `json:"address1"`
	Address2   string `json:"address2"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone"`
}

// SnipcartWebhook 接收 Snipcart 事件回调。
// 仅处理 order.completed，其余事件确认后忽略。
func (h *Handler) SnipcartWebhook(c *gin.Context) {
	if err := h.OrderService.ValidateWebhookToken(c.GetHeader(snipcartTokenHeader)); err != nil {
		requestLog(c).Warnw("snipcart_webhook_token_rejected", "client_ip", c.ClientIP())
		respondError(c, response.CodeUnauthorized, "invalid webhook token", nil)
		return
	}

	var req SnipcartWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid webhook payload", err)
		return
	}

	if req.EventName != constants.SnipcartEventOrderCompleted {
		requestLog(c).Infow("snipcart_webhook_ignored", "event", req.EventName)
		response.Success(c, gin.H{"ignored": true})
		return
	}

	order, err := h.OrderService.AcceptWebhook(buildOrderInput(req.Content))
	if err != nil {
		if errors.Is(err, service.ErrDuplicateWebhook) {
			// 重复回调视为成功，返回既有记录
			response.Success(c, order)
			return
		}
		if errors.Is(err, service.ErrInvalidInput) {
			respondError(c, response.CodeBadRequest, "invalid order content", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to accept order", err)
		return
	}

	response.Success(c, order)
}

func buildOrderInput(content SnipcartOrderContent) service.SnipcartOrderInput {
	items := make([]service.SnipcartItem, 0, len(content.Items))
	for _, item := range content.Items {
		items = append(items, service.SnipcartItem{
			ExternalID: item.ID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			Price:      item.Price.String(),
		})
	}
	return service.SnipcartOrderInput{
		Token:    content.Token,
		Email:    content.Email,
		Total:    content.FinalGrandTotal.String(),
		Currency: content.Currency,
		Items:    items,
		Shipping: service.SnipcartAddress{
			Name:     content.ShippingAddress.FullName,
			Address1: content.ShippingAddress.Address1,
			Address2: content.ShippingAddress.Address2,
			City:     content.ShippingAddress.City,
			Province: content.ShippingAddress.Province,
			Country:  content.ShippingAddress.Country,
			Zip:      content.ShippingAddress.PostalCode,
			Phone:    content.ShippingAddress.Phone,
		},
	}
}
