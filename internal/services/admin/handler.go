package admin

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/gokulraj121/karikalan-restaurant/internal/config"
	"github.com/gokulraj121/karikalan-restaurant/internal/logger"
	"github.com/gokulraj121/karikalan-restaurant/internal/models"
	"github.com/gokulraj121/karikalan-restaurant/internal/order"
	"github.com/gokulraj121/karikalan-restaurant/internal/promotion"
)

const (
	sessionCookie = "admin_session"
	sessionTTL    = time.Hour
)

// Handler handles HTTP requests for the admin service
type Handler struct {
	service  *Service
	sessions SessionStore
	creds    config.AdminConfig
	logger   *logger.Logger
}

// NewHandler creates a new admin handler
func NewHandler(service *Service, sessions SessionStore, creds config.AdminConfig, log *logger.Logger) *Handler {
	return &Handler{
		service:  service,
		sessions: sessions,
		creds:    creds,
		logger:   log,
	}
}

// SetupRoutes sets up the HTTP routes
func (h *Handler) SetupRoutes() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.withLogging)

	r.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)

	api := r.NewRoute().Subrouter()
	api.Use(h.withAuth)
	api.HandleFunc("/logout", h.Logout).Methods(http.MethodPost)
	api.HandleFunc("/orders", h.ListOrders).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}", h.GetOrder).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}/status", h.UpdateOrderStatus).Methods(http.MethodPut)
	api.HandleFunc("/dashboard", h.GetDashboard).Methods(http.MethodGet)
	api.HandleFunc("/offers", h.ListOffers).Methods(http.MethodGet)
	api.HandleFunc("/offers", h.CreateOffer).Methods(http.MethodPost)
	api.HandleFunc("/offers/{id}", h.UpdateOffer).Methods(http.MethodPut)
	api.HandleFunc("/offers/{id}", h.DeleteOffer).Methods(http.MethodDelete)
	api.HandleFunc("/discounts", h.ListDiscounts).Methods(http.MethodGet)
	api.HandleFunc("/discounts", h.CreateDiscount).Methods(http.MethodPost)
	api.HandleFunc("/discounts/{id}", h.UpdateDiscount).Methods(http.MethodPut)
	api.HandleFunc("/discounts/{id}", h.DeleteDiscount).Methods(http.MethodDelete)

	return r
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /login requests and sets the session cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	var req loginRequest
	if !h.decodeJSON(w, r, &req, requestID) {
		return
	}

	if req.Username != h.creds.User || req.Password != h.creds.Password {
		h.logger.Warn("login_rejected", "Invalid admin credentials", requestID, map[string]interface{}{
			"username": req.Username,
		})
		h.writeErrorResponse(w, http.StatusUnauthorized, "invalid credentials", requestID)
		return
	}

	sid, err := h.sessions.Create(r.Context(), req.Username, sessionTTL)
	if err != nil {
		h.logger.Error("session_create_failed", "Failed to create session", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "session error", requestID)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sid,
		Path:     "/",
		Expires:  time.Now().Add(sessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	h.logger.Info("login_succeeded", "Administrator logged in", requestID, map[string]interface{}{
		"username": req.Username,
	})
	w.WriteHeader(http.StatusOK)
}

// Logout handles POST /logout requests.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if c, err := r.Cookie(sessionCookie); err == nil {
		if err := h.sessions.Delete(r.Context(), c.Value); err != nil {
			h.logger.Error("session_delete_failed", "Failed to delete session", requestID, err, nil)
		}
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
	w.WriteHeader(http.StatusOK)
}

// ListOrders handles GET /orders requests with status, type and search
// query filters.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	f := order.Filter{
		Status:    r.URL.Query().Get("status"),
		OrderType: r.URL.Query().Get("type"),
		Search:    r.URL.Query().Get("search"),
	}
	if f.Status != "" && !models.ValidOrderStatus(f.Status) {
		h.writeErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("unknown status: %s", f.Status), requestID)
		return
	}
	if f.OrderType != "" && !models.ValidOrderType(f.OrderType) {
		h.writeErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("unknown order type: %s", f.OrderType), requestID)
		return
	}

	orders, err := h.service.ListOrders(r.Context(), f)
	if err != nil {
		h.logger.Error("db_query_failed", "Failed to list orders", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}
	if orders == nil {
		orders = []*models.PersistedOrder{}
	}
	h.writeJSON(w, http.StatusOK, orders, requestID)
}

// GetOrder handles GET /orders/{id} requests
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	id := mux.Vars(r)["id"]

	o, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, "Order not found", requestID)
			return
		}
		h.logger.Error("db_query_failed", "Failed to get order", requestID, err, map[string]interface{}{
			"order_id": id,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}
	h.writeJSON(w, http.StatusOK, o, requestID)
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus handles PUT /orders/{id}/status requests
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	id := mux.Vars(r)["id"]

	var req statusUpdateRequest
	if !h.decodeJSON(w, r, &req, requestID) {
		return
	}
	if !models.ValidOrderStatus(req.Status) {
		h.writeErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("unknown status: %s", req.Status), requestID)
		return
	}

	o, err := h.service.UpdateOrderStatus(r.Context(), id, models.OrderStatus(req.Status), requestID)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, "Order not found", requestID)
			return
		}
		h.logger.Error("db_update_failed", "Failed to update order status", requestID, err, map[string]interface{}{
			"order_id": id,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}
	h.writeJSON(w, http.StatusOK, o, requestID)
}

// GetDashboard handles GET /dashboard requests
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	dash, err := h.service.GetDashboard(r.Context())
	if err != nil {
		h.logger.Error("db_query_failed", "Failed to compute dashboard", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}
	h.writeJSON(w, http.StatusOK, dash, requestID)
}

// ListOffers handles GET /offers requests
func (h *Handler) ListOffers(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	offers, err := h.service.promos.ListOffers(r.Context())
	if err != nil {
		h.logger.Error("db_query_failed", "Failed to list offers", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}
	if offers == nil {
		offers = []*models.Offer{}
	}
	h.writeJSON(w, http.StatusOK, offers, requestID)
}

// CreateOffer handles POST /offers requests
func (h *Handler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	var offer models.Offer
	if !h.decodeJSON(w, r, &offer, requestID) {
		return
	}
	if offer.Title == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "title is required", requestID)
		return
	}

	id, err := h.service.promos.CreateOffer(r.Context(), &offer)
	if err != nil {
		h.logger.Error("db_insert_failed", "Failed to create offer", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}
	offer.ID = id
	h.writeJSON(w, http.StatusCreated, offer, requestID)
}

// UpdateOffer handles PUT /offers/{id} requests
func (h *Handler) UpdateOffer(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	var offer models.Offer
	if !h.decodeJSON(w, r, &offer, requestID) {
		return
	}
	offer.ID = mux.Vars(r)["id"]

	if err := h.service.promos.UpdateOffer(r.Context(), &offer); err != nil {
		if errors.Is(err, promotion.ErrNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, "Offer not found", requestID)
			return
		}
		h.logger.Error("db_update_failed", "Failed to update offer", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}
	h.writeJSON(w, http.StatusOK, offer, requestID)
}

// DeleteOffer handles DELETE /offers/{id} requests
func (h *Handler) DeleteOffer(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	id := mux.Vars(r)["id"]

	if err := h.service.promos.DeleteOffer(r.Context(), id); err != nil {
		if errors.Is(err, promotion.ErrNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, "Offer not found", requestID)
			return
		}
		h.logger.Error("db_delete_failed", "Failed to delete offer", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListDiscounts handles GET /discounts requests
func (h *Handler) ListDiscounts(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	discounts, err := h.service.promos.ListDiscounts(r.Context())
	if err != nil {
		h.logger.Error("db_query_failed", "Failed to list discounts", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}
	if discounts == nil {
		discounts = []*models.Discount{}
	}
	h.writeJSON(w, http.StatusOK, discounts, requestID)
}

// CreateDiscount handles POST /discounts requests
func (h *Handler) CreateDiscount(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	var d models.Discount
	if !h.decodeJSON(w, r, &d, requestID) {
		return
	}
	if d.Code == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "code is required", requestID)
		return
	}
	if d.Type != models.DiscountPercentage && d.Type != models.DiscountFixed {
		h.writeErrorResponse(w, http.StatusBadRequest, "type must be percentage or fixed", requestID)
		return
	}

	id, err := h.service.promos.CreateDiscount(r.Context(), &d)
	if err != nil {
		h.logger.Error("db_insert_failed", "Failed to create discount", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}
	d.ID = id
	h.writeJSON(w, http.StatusCreated, d, requestID)
}

// UpdateDiscount handles PUT /discounts/{id} requests
func (h *Handler) UpdateDiscount(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	var d models.Discount
	if !h.decodeJSON(w, r, &d, requestID) {
		return
	}
	d.ID = mux.Vars(r)["id"]

	if err := h.service.promos.UpdateDiscount(r.Context(), &d); err != nil {
		if errors.Is(err, promotion.ErrNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, "Discount not found", requestID)
			return
		}
		h.logger.Error("db_update_failed", "Failed to update discount", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}
	h.writeJSON(w, http.StatusOK, d, requestID)
}

// DeleteDiscount handles DELETE /discounts/{id} requests
func (h *Handler) DeleteDiscount(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	id := mux.Vars(r)["id"]

	if err := h.service.promos.DeleteDiscount(r.Context(), id); err != nil {
		if errors.Is(err, promotion.ErrNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, "Discount not found", requestID)
			return
		}
		h.logger.Error("db_delete_failed", "Failed to delete discount", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	healthy := h.service.HealthCheck(r.Context())

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "admin-service",
		"healthy":   healthy,
	}

	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
		response["status"] = "unhealthy"
	}
	json.NewEncoder(w).Encode(response)
}

// withAuth ensures a valid admin session exists.
func (h *Handler) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(sessionCookie)
		if err != nil {
			h.writeErrorResponse(w, http.StatusUnauthorized, "unauthorized", "")
			return
		}
		if _, err := h.sessions.Validate(r.Context(), c.Value); err != nil {
			h.writeErrorResponse(w, http.StatusUnauthorized, "unauthorized", "")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// decodeJSON decodes the request body into dst, rejecting unknown fields.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, requestID string) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err), requestID)
		return false
	}
	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, payload interface{}, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", requestID, err, nil)
	}
}

// writeErrorResponse writes an error response in JSON format
func (h *Handler) writeErrorResponse(w http.ResponseWriter, statusCode int, message, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	}

	json.NewEncoder(w).Encode(errorResponse)
}

// withLogging adds request logging middleware
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := logger.GenerateRequestID()

		h.logger.Debug("request_started",
			fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
				"user_agent":  r.Header.Get("User-Agent"),
			})

		rw := &responseWriter{ResponseWriter: w, statusCode: 200}
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		h.logger.Debug("request_completed",
			fmt.Sprintf("%s %s - %d", r.Method, r.URL.Path, rw.statusCode),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": rw.statusCode,
				"duration_ms": duration.Milliseconds(),
			})
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
