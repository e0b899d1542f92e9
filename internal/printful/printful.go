package printful

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	ErrConfigInvalid   = errors.New("printful config invalid")
	ErrRequestFailed   = errors.New("printful request failed")
	ErrResponseInvalid = errors.New("printful response invalid")
)

// 文件类型常量，仅 preview 表示真实商品图
const FileTypePreview = "preview"

// Config Printful 接口配置
type Config struct {
	BaseURL   string // 网关地址，如 https://api.printful.com
	APIKey    string // Bearer Token
	StoreID   string // 店铺 ID，多店铺 Token 必填
	TimeoutMS int    // 单次请求超时（毫秒）
}

func (c *Config) normalize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.APIKey = strings.TrimSpace(c.APIKey)
	c.StoreID = strings.TrimSpace(c.StoreID)
	if c.BaseURL == "" {
		c.BaseURL = "https://api.printful.com"
	}
	if c.TimeoutMS <= 0 {
		c.TimeoutMS = 15000
	}
}

// SyncProduct 店铺商品摘要
type SyncProduct struct {
	ID           int64  `json:"id"`
	ExternalID   string `json:"external_id"`
	Name         string `json:"name"`
	VariantCount int    `json:"variants"`
	SyncedCount  int    `json:"synced"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// VariantFile 变体文件，type 为 preview 时才是商品图
type VariantFile struct {
	ID      int64  `json:"id"`
	Type    string `json:"type"`
	URL     string `json:"url"`
	Preview string `json:"preview_url"`
	Status  string `json:"status"`
}

// SyncVariant 店铺商品变体
type SyncVariant struct {
	ID            int64         `json:"id"`
	ExternalID    string        `json:"external_id"`
	SyncProductID int64         `json:"sync_product_id"`
	Name          string        `json:"name"`
	Color         string        `json:"color"`
	Size          string        `json:"size"`
	RetailPrice   string        `json:"retail_price"`
	Currency      string        `json:"currency"`
	InStock       bool          `json:"in_stock"`
	IsIgnored     bool          `json:"is_ignored"`
	Files         []VariantFile `json:"files"`
}

// PreviewImages 返回 preview 类型且 URL 合法的商品图地址
func (v *SyncVariant) PreviewImages() []string {
	images := make([]string, 0, len(v.Files))
	for _, f := range v.Files {
		if f.Type != FileTypePreview {
			continue
		}
		candidate := f.Preview
		if candidate == "" {
			candidate = f.URL
		}
		if !isValidHTTPURL(candidate) {
			continue
		}
		images = append(images, candidate)
	}
	return images
}

func isValidHTTPURL(raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return false
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}

// ProductList 分页商品列表
type ProductList struct {
	Items []SyncProduct
	Total int
}

// ProductDetail 商品详情（含全部变体）
type ProductDetail struct {
	Product  SyncProduct
	Variants []SyncVariant
}

// OrderItem 下单条目
type OrderItem struct {
	SyncVariantID int64  `json:"sync_variant_id"`
	Quantity      int    `json:"quantity"`
	RetailPrice   string `json:"retail_price,omitempty"`
}

// OrderRecipient 收件人
type OrderRecipient struct {
	Name        string `json:"name"`
	Address1    string `json:"address1"`
	Address2    string `json:"address2,omitempty"`
	City        string `json:"city"`
	StateCode   string `json:"state_code,omitempty"`
	CountryCode string `json:"country_code"`
	Zip         string `json:"zip"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

// OrderInput 创建订单输入
type OrderInput struct {
	ExternalID string         `json:"external_id,omitempty"`
	Recipient  OrderRecipient `json:"recipient"`
	Items      []OrderItem    `json:"items"`
	Confirm    bool           `json:"-"`
}

// OrderResult 创建订单结果
type OrderResult struct {
	ID         int64  `json:"id"`
	ExternalID string `json:"external_id"`
	Status     string `json:"status"`
}

// Client Printful HTTP 客户端
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient 创建 Printful 客户端。
// 缺失的 API Key 不在此处拦截，首次请求会以 401 暴露出来。
func NewClient(cfg Config) *Client {
	cfg.normalize()
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond},
	}
}

// ListProducts 分页获取店铺商品
func (c *Client) ListProducts(ctx context.Context, offset, limit int) (*ProductList, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	endpoint := fmt.Sprintf("%s/store/products?offset=%d&limit=%d", c.cfg.BaseURL, offset, limit)

	respBytes, err := c.doJSON(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Code   int           `json:"code"`
		Result []SyncProduct `json:"result"`
		Paging struct {
			Total  int `json:"total"`
			Offset int `json:"offset"`
			Limit  int `json:"limit"`
		} `json:"paging"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if resp.Code != http.StatusOK {
		return nil, fmt.Errorf("%w: code %d", ErrResponseInvalid, resp.Code)
	}
	return &ProductList{Items: resp.Result, Total: resp.Paging.Total}, nil
}

// GetProduct 获取商品详情
func (c *Client) GetProduct(ctx context.Context, id int64) (*ProductDetail, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: product id is required", ErrConfigInvalid)
	}
	endpoint := c.cfg.BaseURL + "/store/products/" + strconv.FormatInt(id, 10)

	respBytes, err := c.doJSON(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Code   int `json:"code"`
		Result struct {
			SyncProduct  SyncProduct   `json:"sync_product"`
			SyncVariants []SyncVariant `json:"sync_variants"`
		} `json:"result"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if resp.Code != http.StatusOK {
		return nil, fmt.Errorf("%w: code %d", ErrResponseInvalid, resp.Code)
	}
	return &ProductDetail{Product: resp.Result.SyncProduct, Variants: resp.Result.SyncVariants}, nil
}

// CreateOrder 创建履约订单
func (c *Client) CreateOrder(ctx context.Context, input OrderInput) (*OrderResult, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: order items required", ErrConfigInvalid)
	}
	endpoint := c.cfg.BaseURL + "/orders"
	if input.Confirm {
		endpoint += "?confirm=1"
	}

	respBytes, err := c.doJSON(ctx, http.MethodPost, endpoint, input)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Code   int         `json:"code"`
		Result OrderResult `json:"result"`
		Error  struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if resp.Code != http.StatusOK {
		if resp.Error.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrResponseInvalid, resp.Error.Message)
		}
		return nil, fmt.Errorf("%w: code %d", ErrResponseInvalid, resp.Code)
	}
	return &resp.Result, nil
}

// Ping 探活，校验 Token 与店铺可达
func (c *Client) Ping(ctx context.Context) error {
	endpoint := c.cfg.BaseURL + "/store"
	_, err := c.doJSON(ctx, http.MethodGet, endpoint, nil)
	return err
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, payload interface{}) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
		}
		body = strings.NewReader(string(data))
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.StoreID != "" {
		req.Header.Set("X-PF-Store-Id", c.cfg.StoreID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	// 4xx/5xx 统一按请求失败处理，交由上层重试与熔断
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d %s", ErrRequestFailed, resp.StatusCode, truncateBody(respBytes))
	}
	return respBytes, nil
}

func truncateBody(body []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
