package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/shopify-tag-bot/internal/domain/entity"
	"github.com/yourusername/shopify-tag-bot/internal/domain/repository"
)

const defaultTimeout = 30 * time.Second

// Client Shopify Admin REST API client.
// repository.CatalogRepository ni implement qiladi.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

// NewClient Shopify clientini yaratish
func NewClient(shopURL, apiVersion, accessToken string) *Client {
	return &Client{
		baseURL:     fmt.Sprintf("https://%s/admin/api/%s", shopURL, apiVersion),
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: defaultTimeout},
	}
}

// OpenSession sessiyani ochish va credentiallarni shop.json orqali tekshirish
func (c *Client) OpenSession(ctx context.Context) (repository.CatalogSession, error) {
	session := &catalogSession{client: c}

	// Credentiallar ishlashini darhol aniqlash uchun do'kon ma'lumotini so'raymiz
	var shopResp struct {
		Shop struct {
			Name string `json:"name"`
		} `json:"shop"`
	}
	if _, err := session.doJSON(ctx, http.MethodGet, c.baseURL+"/shop.json", nil, &shopResp); err != nil {
		return nil, fmt.Errorf("shopify sessiyasi ochilmadi: %w", err)
	}

	log.Printf("🔗 Shopify sessiyasi ochildi: %s", shopResp.Shop.Name)
	return session, nil
}

type catalogSession struct {
	client *Client
	closed bool
}

type productPayload struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ProductType string `json:"product_type"`
	Tags        string `json:"tags"`
}

// FetchPage mahsulotlar sahifasini olish; pageInfo bo'sh bo'lsa birinchi sahifa
func (s *catalogSession) FetchPage(ctx context.Context, pageInfo string, limit int) (*entity.ProductPage, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	if pageInfo != "" {
		// page_info bilan birga filter parametrlarni yuborish mumkin emas
		query.Set("page_info", pageInfo)
	} else {
		query.Set("fields", "id,title,product_type,tags")
	}

	var resp struct {
		Products []productPayload `json:"products"`
	}
	header, err := s.doJSON(ctx, http.MethodGet, s.client.baseURL+"/products.json?"+query.Encode(), nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("mahsulotlar sahifasi olinmadi: %w", err)
	}

	page := &entity.ProductPage{
		Products: make([]entity.Product, 0, len(resp.Products)),
		NextPage: nextPageInfo(header.Get("Link")),
	}
	for _, p := range resp.Products {
		page.Products = append(page.Products, entity.Product{
			ID:          p.ID,
			Title:       p.Title,
			ProductType: p.ProductType,
			Tags:        p.Tags,
		})
	}
	return page, nil
}

// UpdateTags mahsulot teglarini yangilash
func (s *catalogSession) UpdateTags(ctx context.Context, productID int64, tags string) error {
	body := map[string]any{
		"product": map[string]any{
			"id":   productID,
			"tags": tags,
		},
	}

	endpoint := fmt.Sprintf("%s/products/%d.json", s.client.baseURL, productID)
	if _, err := s.doJSON(ctx, http.MethodPut, endpoint, body, nil); err != nil {
		return fmt.Errorf("mahsulot %d teglarini yangilab bo'lmadi: %w", productID, err)
	}
	return nil
}

// Close sessiyani yopish
func (s *catalogSession) Close() error {
	s.closed = true
	return nil
}

func (s *catalogSession) doJSON(ctx context.Context, method, endpoint string, body any, out any) (http.Header, error) {
	if s.closed {
		return nil, fmt.Errorf("sessiya yopilgan")
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("request body marshal qilinmadi: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("request yaratilmadi: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", s.client.accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("shopify API xatosi: status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("response parse qilinmadi: %w", err)
		}
	}
	return resp.Header, nil
}

// nextPageInfo Link headeridan rel="next" page_info cursorini ajratib olish.
// Format: <https://shop/admin/api/.../products.json?page_info=abc&limit=250>; rel="next"
func nextPageInfo(linkHeader string) string {
	if linkHeader == "" {
		return ""
	}

	for _, part := range strings.Split(linkHeader, ",") {
		if !strings.Contains(part, `rel="next"`) {
			continue
		}

		start := strings.Index(part, "<")
		end := strings.Index(part, ">")
		if start == -1 || end == -1 || end <= start {
			continue
		}

		parsed, err := url.Parse(part[start+1 : end])
		if err != nil {
			continue
		}
		return parsed.Query().Get("page_info")
	}
	return ""
}
