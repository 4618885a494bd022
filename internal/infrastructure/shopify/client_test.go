package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	return &Client{
		baseURL:     serverURL,
		accessToken: "test-token",
		httpClient:  &http.Client{Timeout: 5 * time.Second},
	}
}

func TestNextPageInfo(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{
			name:   "bo'sh header",
			header: "",
			want:   "",
		},
		{
			name:   "faqat next",
			header: `<https://shop.myshopify.com/admin/api/2024-01/products.json?page_info=abc123&limit=250>; rel="next"`,
			want:   "abc123",
		},
		{
			name:   "previous va next birga",
			header: `<https://shop.myshopify.com/admin/api/2024-01/products.json?page_info=prev1>; rel="previous", <https://shop.myshopify.com/admin/api/2024-01/products.json?page_info=next1>; rel="next"`,
			want:   "next1",
		},
		{
			name:   "faqat previous - oxirgi sahifa",
			header: `<https://shop.myshopify.com/admin/api/2024-01/products.json?page_info=prev1>; rel="previous"`,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextPageInfo(tt.header))
		})
	}
}

func TestOpenSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shop.json", r.URL.Path)
		assert.Equal(t, "test-token", r.Header.Get("X-Shopify-Access-Token"))
		json.NewEncoder(w).Encode(map[string]any{"shop": map[string]any{"name": "Test Shop"}})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	session, err := client.OpenSession(context.Background())
	require.NoError(t, err)
	require.NoError(t, session.Close())
}

func TestOpenSessionBadCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"errors":"Invalid API key"}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.OpenSession(context.Background())
	assert.Error(t, err)
}

func TestFetchPagePagination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/shop.json":
			json.NewEncoder(w).Encode(map[string]any{"shop": map[string]any{"name": "Test Shop"}})
		case "/products.json":
			assert.Equal(t, "250", r.URL.Query().Get("limit"))

			if r.URL.Query().Get("page_info") == "" {
				// Birinchi sahifa: filter fields + keyingi sahifaga Link
				assert.Equal(t, "id,title,product_type,tags", r.URL.Query().Get("fields"))
				w.Header().Set("Link", fmt.Sprintf(`<%s/products.json?page_info=cursor2&limit=250>; rel="next"`, "https://shop.example"))
				fmt.Fprint(w, `{"products":[{"id":1,"title":"Blue Shirt","product_type":"Shirt","tags":"old, sale"}]}`)
				return
			}

			// Ikkinchi sahifa: page_info bilan fields yuborilmaydi
			assert.Equal(t, "cursor2", r.URL.Query().Get("page_info"))
			assert.Empty(t, r.URL.Query().Get("fields"))
			fmt.Fprint(w, `{"products":[{"id":2,"title":"Red Hat","product_type":"Hat","tags":""}]}`)
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	session, err := client.OpenSession(context.Background())
	require.NoError(t, err)
	defer session.Close()

	page, err := session.FetchPage(context.Background(), "", 250)
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.Equal(t, int64(1), page.Products[0].ID)
	assert.Equal(t, "Shirt", page.Products[0].ProductType)
	assert.Equal(t, "old, sale", page.Products[0].Tags)
	assert.Equal(t, "cursor2", page.NextPage)

	page, err = session.FetchPage(context.Background(), page.NextPage, 250)
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.Equal(t, int64(2), page.Products[0].ID)
	assert.Empty(t, page.NextPage)
}

func TestUpdateTags(t *testing.T) {
	var gotBody map[string]map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/shop.json":
			json.NewEncoder(w).Encode(map[string]any{"shop": map[string]any{"name": "Test Shop"}})
		case "/products/42.json":
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			fmt.Fprint(w, `{"product":{"id":42}}`)
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	session, err := client.OpenSession(context.Background())
	require.NoError(t, err)
	defer session.Close()

	require.NoError(t, session.UpdateTags(context.Background(), 42, "new, old, sale"))

	assert.Equal(t, float64(42), gotBody["product"]["id"])
	assert.Equal(t, "new, old, sale", gotBody["product"]["tags"])
}

func TestUpdateTagsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/shop.json" {
			json.NewEncoder(w).Encode(map[string]any{"shop": map[string]any{"name": "Test Shop"}})
			return
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"errors":{"tags":["is invalid"]}}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	session, err := client.OpenSession(context.Background())
	require.NoError(t, err)
	defer session.Close()

	err = session.UpdateTags(context.Background(), 42, "bad")
	assert.Error(t, err)
}

func TestClosedSessionRejectsCalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"shop": map[string]any{"name": "Test Shop"}})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	session, err := client.OpenSession(context.Background())
	require.NoError(t, err)
	require.NoError(t, session.Close())

	_, err = session.FetchPage(context.Background(), "", 250)
	assert.Error(t, err)
}
