package controllers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/beanwagon-backend/internal/orders"
	"github.com/angelmondragon/beanwagon-backend/internal/records"
)

func newTestOrderService(t *testing.T) (orders.Service, *httptest.Server) {
	t.Helper()
	store := newTestStore(t)
	svc, err := orders.NewService(store)
	if err != nil {
		t.Fatalf("building order service: %v", err)
	}

	r := chi.NewRouter()
	r.Get("/v1/orders", ListOrders(svc, testLogger()))
	r.Post("/v1/orders", CreateOrder(svc, testLogger()))
	r.Patch("/v1/orders/{orderID}/status", UpdateOrderStatus(svc, testLogger()))
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return svc, server
}

func TestCreateOrder(t *testing.T) {
	_, server := newTestOrderService(t)

	body := `{"customerName":"Rosa","items":[{"drinkId":"latte","quantity":1,"selectedOptionIds":["size-large"]}]}`
	resp, err := http.Post(server.URL+"/v1/orders", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.StatusCode)
	}
	var order records.Order
	decodeData(t, resp.Body, &order)
	if order.ID == "" || order.Status != records.OrderStatusPending {
		t.Fatalf("unexpected order: %+v", order)
	}
}

func TestCreateOrderRejectsMissingItems(t *testing.T) {
	_, server := newTestOrderService(t)

	resp, err := http.Post(server.URL+"/v1/orders", "application/json", strings.NewReader(`{"customerName":"Rosa"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.StatusCode)
	}
}

func TestCreateOrderRejectsUnknownField(t *testing.T) {
	_, server := newTestOrderService(t)

	body := `{"customerName":"Rosa","totalAmount":999999,"items":[{"drinkId":"latte","quantity":1}]}`
	resp, err := http.Post(server.URL+"/v1/orders", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("client-priced fields must be rejected, got %d", resp.StatusCode)
	}
}

func TestListOrdersPaginates(t *testing.T) {
	svc, server := newTestOrderService(t)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := svc.Checkout(ctx, orders.CheckoutInput{
			CustomerName: fmt.Sprintf("Customer %d", i),
			Items:        []orders.CheckoutItem{{DrinkID: "drip", Quantity: 1}},
		})
		if err != nil {
			t.Fatalf("checkout %d: %v", i, err)
		}
	}

	resp, err := http.Get(server.URL + "/v1/orders?limit=2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var page orderListResponse
	decodeData(t, resp.Body, &page)
	if len(page.Orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(page.Orders))
	}
	if page.NextCursor == "" {
		t.Fatalf("expected a next cursor with a third order remaining")
	}

	resp2, err := http.Get(server.URL + "/v1/orders?limit=2&cursor=" + url.QueryEscape(page.NextCursor))
	if err != nil {
		t.Fatalf("get page 2: %v", err)
	}
	defer resp2.Body.Close()

	var page2 orderListResponse
	decodeData(t, resp2.Body, &page2)
	if len(page2.Orders) != 1 {
		t.Fatalf("expected 1 order on the last page, got %d", len(page2.Orders))
	}
	if page2.NextCursor != "" {
		t.Fatalf("last page must not carry a cursor")
	}
	for _, order := range page.Orders {
		if order.ID == page2.Orders[0].ID {
			t.Fatalf("order %s appeared on both pages", order.ID)
		}
	}
}

func TestListOrdersPaginatesHandWrittenIDs(t *testing.T) {
	store := newTestStore(t)
	svc, err := orders.NewService(store)
	if err != nil {
		t.Fatalf("building order service: %v", err)
	}
	handler := ListOrders(svc, testLogger())

	ctx := context.Background()
	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	var all []records.Order
	for i := 0; i < 3; i++ {
		all = append(all, records.Order{
			ID:           fmt.Sprintf("order-legacy-%d", i),
			CustomerName: "Ada",
			Items:        []records.OrderItem{{DrinkID: "drip", Name: "Drip Coffee", Quantity: 1}},
			Status:       records.OrderStatusPending,
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
			UpdatedAt:    base.Add(time.Duration(i) * time.Minute),
		})
	}
	store.SaveOrders(ctx, all)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/v1/orders?limit=2", nil))

	var page orderListResponse
	decodeData(t, resp.Body, &page)
	if len(page.Orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(page.Orders))
	}
	if page.NextCursor == "" {
		t.Fatalf("a full page must carry a cursor regardless of the id scheme")
	}

	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/v1/orders?limit=2&cursor="+url.QueryEscape(page.NextCursor), nil))

	var page2 orderListResponse
	decodeData(t, resp.Body, &page2)
	if len(page2.Orders) != 1 {
		t.Fatalf("expected 1 order on the last page, got %d", len(page2.Orders))
	}
	if page2.Orders[0].ID != "order-legacy-0" {
		t.Fatalf("unexpected last-page order %s", page2.Orders[0].ID)
	}
}

func TestListOrdersRejectsBadCursor(t *testing.T) {
	_, server := newTestOrderService(t)

	resp, err := http.Get(server.URL + "/v1/orders?cursor=%21%21not-base64")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.StatusCode)
	}
}

func TestUpdateOrderStatusTransition(t *testing.T) {
	svc, server := newTestOrderService(t)

	order, err := svc.Checkout(context.Background(), orders.CheckoutInput{
		CustomerName: "Rosa",
		Items:        []orders.CheckoutItem{{DrinkID: "drip", Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	patch := func(status string) *http.Response {
		req, err := http.NewRequest(http.MethodPatch,
			server.URL+"/v1/orders/"+order.ID+"/status", strings.NewReader(`{"status":"`+status+`"}`))
		if err != nil {
			t.Fatalf("building request: %v", err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("patch: %v", err)
		}
		return resp
	}

	resp := patch("in-progress")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	var updated records.Order
	decodeData(t, resp.Body, &updated)
	if updated.Status != records.OrderStatusInProgress {
		t.Fatalf("unexpected status %s", updated.Status)
	}

	// Skipping a state is rejected.
	resp = patch("completed")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.StatusCode)
	}

	// Unknown status value never reaches the service.
	resp = patch("brewing")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.StatusCode)
	}
}
