package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gokulraj121/karikalan-restaurant/internal/config"
	"github.com/gokulraj121/karikalan-restaurant/internal/logger"
	"github.com/gokulraj121/karikalan-restaurant/internal/models"
	"github.com/gokulraj121/karikalan-restaurant/internal/order"
	"github.com/gokulraj121/karikalan-restaurant/internal/promotion"
)

// memorySessionStore stands in for Redis in tests.
type memorySessionStore struct {
	sessions map[string]string
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[string]string)}
}

func (s *memorySessionStore) Create(ctx context.Context, user string, ttl time.Duration) (string, error) {
	id := uuid.NewString()
	s.sessions[id] = user
	return id, nil
}

func (s *memorySessionStore) Validate(ctx context.Context, id string) (string, error) {
	user, ok := s.sessions[id]
	if !ok {
		return "", ErrSessionNotFound
	}
	return user, nil
}

func (s *memorySessionStore) Delete(ctx context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

var testCreds = config.AdminConfig{User: "admin", Password: "secret"}

type fixture struct {
	t      *testing.T
	router http.Handler
	repo   *order.MemoryRepository
	promos *promotion.MemoryRepository
	cookie *http.Cookie
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.New("admin-service-test")
	repo := order.NewMemoryRepository()
	promos := promotion.NewMemoryRepository()
	svc := NewService(repo, promos, nil, log)
	h := NewHandler(svc, newMemorySessionStore(), testCreds, log)
	return &fixture{t: t, router: h.SetupRoutes(), repo: repo, promos: promos}
}

func (f *fixture) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	f.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			f.t.Fatalf("encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if f.cookie != nil {
		req.AddCookie(f.cookie)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) login() {
	f.t.Helper()
	rec := f.do(http.MethodPost, "/login", map[string]string{"username": "admin", "password": "secret"})
	if rec.Code != http.StatusOK {
		f.t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			f.cookie = c
			return
		}
	}
	f.t.Fatal("no session cookie set on login")
}

func (f *fixture) seedOrder(customer, phone string, orderType models.OrderType, total float64) string {
	f.t.Helper()
	id, err := f.repo.Create(context.Background(), &models.DraftOrder{
		Customer:      customer,
		Phone:         phone,
		Address:       models.PickupAddress,
		OrderType:     orderType,
		Items:         []models.OrderLine{{Name: "Tomato Soup", Price: 110, Quantity: 1}},
		Subtotal:      total,
		Total:         total,
		PaymentMethod: models.DefaultPaymentMethod,
		Date:          time.Now().UTC(),
	})
	if err != nil {
		f.t.Fatalf("seed order: %v", err)
	}
	return id
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodPost, "/login", map[string]string{"username": "admin", "password": "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/orders", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", rec.Code)
	}

	f.cookie = &http.Cookie{Name: sessionCookie, Value: "stale"}
	rec = f.do(http.MethodGet, "/orders", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with unknown session, got %d", rec.Code)
	}
}

func TestListOrdersWithFilters(t *testing.T) {
	f := newFixture(t)
	f.login()

	f.seedOrder("Anitha", "9876543210", models.Takeaway, 110)
	deliveryID := f.seedOrder("Bala", "9123456780", models.Delivery, 220)

	rec := f.do(http.MethodGet, "/orders", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var all []*models.PersistedOrder
	if err := json.NewDecoder(rec.Body).Decode(&all); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(all))
	}

	rec = f.do(http.MethodGet, "/orders?type=delivery", nil)
	var delivery []*models.PersistedOrder
	json.NewDecoder(rec.Body).Decode(&delivery)
	if len(delivery) != 1 || delivery[0].ID != deliveryID {
		t.Fatalf("unexpected delivery filter result: %+v", delivery)
	}

	rec = f.do(http.MethodGet, "/orders?search=anitha", nil)
	var found []*models.PersistedOrder
	json.NewDecoder(rec.Body).Decode(&found)
	if len(found) != 1 || found[0].Customer != "Anitha" {
		t.Fatalf("unexpected search result: %+v", found)
	}

	rec = f.do(http.MethodGet, "/orders?status=nonsense", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", rec.Code)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	f := newFixture(t)
	f.login()
	id := f.seedOrder("Anitha", "9876543210", models.Takeaway, 110)

	rec := f.do(http.MethodPut, "/orders/"+id+"/status", map[string]string{"status": "preparing"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var updated models.PersistedOrder
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Status != models.StatusPreparing {
		t.Errorf("expected preparing, got %s", updated.Status)
	}

	rec = f.do(http.MethodPut, "/orders/"+id+"/status", map[string]string{"status": "burnt"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", rec.Code)
	}

	rec = f.do(http.MethodPut, "/orders/missing/status", map[string]string{"status": "ready"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing order, got %d", rec.Code)
	}
}

func TestDashboardAggregates(t *testing.T) {
	f := newFixture(t)
	f.login()

	f.seedOrder("Anitha", "9876543210", models.Takeaway, 110)
	f.seedOrder("Bala", "9123456780", models.Delivery, 220)
	if _, err := f.promos.CreateOffer(context.Background(), &models.Offer{Title: "Weekend Special", Active: true}); err != nil {
		t.Fatalf("seed offer: %v", err)
	}

	rec := f.do(http.MethodGet, "/dashboard", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var dash Dashboard
	if err := json.NewDecoder(rec.Body).Decode(&dash); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dash.TotalOrders != 2 || dash.PendingOrders != 2 {
		t.Errorf("unexpected order counts: %+v", dash)
	}
	if dash.MonthlyRevenue != 330 {
		t.Errorf("expected monthly revenue 330, got %v", dash.MonthlyRevenue)
	}
	if dash.ActiveOffers != 1 {
		t.Errorf("expected 1 active offer, got %d", dash.ActiveOffers)
	}
}

func TestOfferEndpoints(t *testing.T) {
	f := newFixture(t)
	f.login()

	rec := f.do(http.MethodPost, "/offers", map[string]interface{}{"title": "Family Pack", "active": true})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created models.Offer
	json.NewDecoder(rec.Body).Decode(&created)
	if created.ID == "" {
		t.Fatal("expected offer id")
	}

	rec = f.do(http.MethodPost, "/offers", map[string]interface{}{"active": true})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing title, got %d", rec.Code)
	}

	rec = f.do(http.MethodPut, "/offers/"+created.ID, map[string]interface{}{"title": "Family Feast", "active": false})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = f.do(http.MethodDelete, "/offers/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	rec = f.do(http.MethodDelete, "/offers/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestDiscountValidation(t *testing.T) {
	f := newFixture(t)
	f.login()

	rec := f.do(http.MethodPost, "/discounts", map[string]interface{}{"code": "SAVE10", "type": "halfoff", "value": 10})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown type, got %d", rec.Code)
	}

	rec = f.do(http.MethodPost, "/discounts", map[string]interface{}{"code": "SAVE10", "type": "percentage", "value": 10, "active": true})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRequestBodiesRejectUnknownFields(t *testing.T) {
	f := newFixture(t)
	f.login()
	id := f.seedOrder("Anitha", "9876543210", models.Takeaway, 110)

	rec := f.do(http.MethodPut, "/orders/"+id+"/status", map[string]interface{}{"status": "ready", "priority": "high"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status-update field, got %d", rec.Code)
	}

	rec = f.do(http.MethodPost, "/offers", map[string]interface{}{"title": "Combo Deal", "banner": true})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown offer field, got %d", rec.Code)
	}

	o, err := f.repo.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if o.Status != models.StatusPending {
		t.Errorf("rejected request mutated the order: %s", o.Status)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	f := newFixture(t)
	f.login()

	rec := f.do(http.MethodPost, "/logout", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout failed: %d", rec.Code)
	}

	rec = f.do(http.MethodGet, "/orders", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rec.Code)
	}
}
