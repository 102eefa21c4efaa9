package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shopping-cart/internal/domain"
	cartsvc "shopping-cart/internal/service/cart"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type stubProductService struct {
	items map[int64]domain.CatalogItem
	err   error
}

func (s *stubProductService) List(_ context.Context) ([]domain.CatalogItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []domain.CatalogItem
	for _, code := range []int64{1, 2} {
		if item, ok := s.items[code]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubProductService) Get(_ context.Context, code int64) (*domain.CatalogItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	item, ok := s.items[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

func (s *stubProductService) GetByCode(ctx context.Context, code int64) (*domain.CatalogItem, error) {
	return s.Get(ctx, code)
}

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newStubCatalog() *stubProductService {
	return &stubProductService{items: map[int64]domain.CatalogItem{
		1: {Product: domain.NewProduct(1, "Shirt"), ListPrice: decimal.RequireFromString("19.99")},
		2: {Product: domain.NewProduct(2, "Mug"), ListPrice: decimal.RequireFromString("12.5")},
	}}
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	catalog := newStubCatalog()
	router, err := buildRouter(logDiscard(), nil, Deps{
		ProductSvc: catalog,
		CartSvc:    cartsvc.New(domain.NewCartRegistry(), catalog),
	})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func do(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode body %s: %v", rec.Body.String(), err)
	}
}

func TestBuildRouter_RequiresServices(t *testing.T) {
	if _, err := buildRouter(logDiscard(), nil, Deps{}); err == nil {
		t.Fatalf("expected error without services")
	}
}

func TestBuildRouter_RejectsBadOrigin(t *testing.T) {
	catalog := newStubCatalog()
	_, err := buildRouter(logDiscard(), nil, Deps{
		ProductSvc:     catalog,
		CartSvc:        cartsvc.New(domain.NewCartRegistry(), catalog),
		AllowedOrigins: []string{"not-an-origin"},
	})
	if err == nil {
		t.Fatalf("expected cors validation error")
	}
}

func TestHealthAndReady(t *testing.T) {
	router := newTestRouter(t)
	if rec := do(t, router, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec := do(t, router, http.MethodGet, "/readyz", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"catalog":"memory"`) {
		t.Fatalf("unexpected ready response %d %s", rec.Code, rec.Body.String())
	}
}

func TestRequestIDHeader(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/healthz", "")
	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/carts/nobody", nil)
	req.Header.Set(requestIDHeader, "req-123")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("expected propagated request id, got %q", rec.Header().Get(requestIDHeader))
	}
	var body errorResponse
	decodeBody(t, rec, &body)
	if body.StatusCode != http.StatusNotFound || body.RequestID != "req-123" {
		t.Fatalf("unexpected error body %+v", body)
	}
}

func TestProducts(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/products", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"listPrice":"12.50"`) {
		t.Fatalf("unexpected list response %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, router, http.MethodGet, "/products/1", "")
	var product productResponse
	decodeBody(t, rec, &product)
	if product.Code != 1 || product.Description != "Shirt" || product.ListPrice != "19.99" {
		t.Fatalf("unexpected product %+v", product)
	}

	if rec := do(t, router, http.MethodGet, "/products/abc", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if rec := do(t, router, http.MethodGet, "/products/99", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestProducts_InternalErrorHidesCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	catalog := &stubProductService{err: errors.New("db down")}
	router, err := buildRouter(logDiscard(), nil, Deps{
		ProductSvc: catalog,
		CartSvc:    cartsvc.New(domain.NewCartRegistry(), catalog),
	})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	rec := do(t, router, http.MethodGet, "/products", "")
	if rec.Code != http.StatusInternalServerError || strings.Contains(rec.Body.String(), "db down") {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestCartLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPut, "/carts/alice", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("open cart: %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, router, http.MethodPost, "/carts/alice/items", `{"productCode":1,"quantity":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("add item: %d %s", rec.Code, rec.Body.String())
	}
	rec = do(t, router, http.MethodPost, "/carts/alice/items", `{"productCode":2,"quantity":1,"unitPrice":"10.00"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("add item: %d %s", rec.Code, rec.Body.String())
	}
	rec = do(t, router, http.MethodPost, "/carts/alice/items", `{"productCode":1,"quantity":1,"unitPrice":"18.00"}`)

	var cart cartResponse
	decodeBody(t, rec, &cart)
	if len(cart.LineItems) != 2 {
		t.Fatalf("expected 2 line items, got %+v", cart)
	}
	first := cart.LineItems[0]
	if first.ProductCode != 1 || first.Quantity != 3 || first.UnitPrice != "18" || first.TotalPrice != "54" {
		t.Fatalf("unexpected merged line %+v", first)
	}
	if cart.TotalPrice != "64" || cart.TotalLineItemQuantity != 4 {
		t.Fatalf("unexpected cart totals %+v", cart)
	}

	rec = do(t, router, http.MethodGet, "/carts/alice", "")
	decodeBody(t, rec, &cart)
	if cart.CustomerID != "alice" || len(cart.LineItems) != 2 {
		t.Fatalf("unexpected fetched cart %+v", cart)
	}

	rec = do(t, router, http.MethodDelete, "/carts/alice/items/2", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"removed":true`) {
		t.Fatalf("remove item: %d %s", rec.Code, rec.Body.String())
	}
	rec = do(t, router, http.MethodDelete, "/carts/alice/items/2", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"removed":false`) {
		t.Fatalf("repeat remove item: %d %s", rec.Code, rec.Body.String())
	}
	rec = do(t, router, http.MethodDelete, "/carts/alice/items/1?description=Other", "")
	if !strings.Contains(rec.Body.String(), `"removed":false`) {
		t.Fatalf("expected description mismatch to keep item: %s", rec.Body.String())
	}

	rec = do(t, router, http.MethodDelete, "/carts/alice/positions/5", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"removed":false`) {
		t.Fatalf("out of range position: %d %s", rec.Code, rec.Body.String())
	}
	rec = do(t, router, http.MethodDelete, "/carts/alice/positions/0", "")
	if !strings.Contains(rec.Body.String(), `"removed":true`) {
		t.Fatalf("remove position 0: %s", rec.Body.String())
	}
	if rec := do(t, router, http.MethodDelete, "/carts/alice/positions/first", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad position, got %d", rec.Code)
	}

	rec = do(t, router, http.MethodDelete, "/carts/alice", "")
	if !strings.Contains(rec.Body.String(), `"invalidated":true`) {
		t.Fatalf("invalidate: %s", rec.Body.String())
	}
	rec = do(t, router, http.MethodDelete, "/carts/alice", "")
	if !strings.Contains(rec.Body.String(), `"invalidated":false`) {
		t.Fatalf("repeat invalidate: %s", rec.Body.String())
	}
	if rec := do(t, router, http.MethodGet, "/carts/alice", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after invalidate, got %d", rec.Code)
	}
}

func TestAddItemErrors(t *testing.T) {
	router := newTestRouter(t)
	cases := []struct {
		name string
		path string
		body string
		want int
	}{
		{name: "malformed body", path: "/carts/alice/items", body: `{`, want: http.StatusBadRequest},
		{name: "zero quantity", path: "/carts/alice/items", body: `{"productCode":1,"quantity":0}`, want: http.StatusBadRequest},
		{name: "bad price", path: "/carts/alice/items", body: `{"productCode":1,"quantity":1,"unitPrice":"abc"}`, want: http.StatusBadRequest},
		{name: "unknown product", path: "/carts/alice/items", body: `{"productCode":99,"quantity":1}`, want: http.StatusNotFound},
		{name: "blank customer", path: "/carts/%20/items", body: `{"productCode":1,"quantity":1}`, want: http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, tc.path, tc.body)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d body=%s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAverageTicket(t *testing.T) {
	router := newTestRouter(t)

	if rec := do(t, router, http.MethodGet, "/average-ticket", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without carts, got %d", rec.Code)
	}

	do(t, router, http.MethodPost, "/carts/alice/items", `{"productCode":1,"quantity":1,"unitPrice":"10.00"}`)
	do(t, router, http.MethodPost, "/carts/bob/items", `{"productCode":2,"quantity":1,"unitPrice":"15.00"}`)

	rec := do(t, router, http.MethodGet, "/average-ticket", "")
	var body struct {
		AverageTicket string `json:"averageTicket"`
		Carts         int    `json:"carts"`
	}
	decodeBody(t, rec, &body)
	if body.AverageTicket != "12.50" || body.Carts != 2 {
		t.Fatalf("unexpected average ticket %+v", body)
	}

	rec = do(t, router, http.MethodGet, "/carts", "")
	if !strings.Contains(rec.Body.String(), `"customers":["alice","bob"]`) {
		t.Fatalf("unexpected carts listing %s", rec.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	catalog := newStubCatalog()
	router, err := buildRouter(logDiscard(), nil, Deps{
		ProductSvc:     catalog,
		CartSvc:        cartsvc.New(domain.NewCartRegistry(), catalog),
		AllowedOrigins: []string{"https://shop.example"},
	})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	req := httptest.NewRequest(http.MethodOptions, "/carts/alice/items", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://shop.example" {
		t.Fatalf("expected allowed origin header, got %q (status %d)", got, rec.Code)
	}
}
