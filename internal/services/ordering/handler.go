package ordering

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/gokulraj121/karikalan-restaurant/internal/cart"
	"github.com/gokulraj121/karikalan-restaurant/internal/catalog"
	"github.com/gokulraj121/karikalan-restaurant/internal/checkout"
	"github.com/gokulraj121/karikalan-restaurant/internal/logger"
)

const sessionCookie = "session_id"

// Handler handles HTTP requests for the ordering service
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new ordering handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// SetupRoutes sets up the HTTP routes
func (h *Handler) SetupRoutes() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.withLogging)

	r.HandleFunc("/menu", h.GetMenu).Methods(http.MethodGet)
	r.HandleFunc("/menu/categories", h.GetCategories).Methods(http.MethodGet)
	r.HandleFunc("/cart", h.GetCart).Methods(http.MethodGet)
	r.HandleFunc("/cart/items", h.AddCartItem).Methods(http.MethodPost)
	r.HandleFunc("/cart/items/{id}", h.SetCartItemQuantity).Methods(http.MethodPut)
	r.HandleFunc("/cart/items/{id}", h.RemoveCartItem).Methods(http.MethodDelete)
	r.HandleFunc("/checkout", h.GetCheckout).Methods(http.MethodGet)
	r.HandleFunc("/checkout", h.SubmitCheckout).Methods(http.MethodPost)
	r.HandleFunc("/checkout/reset", h.ResetCheckout).Methods(http.MethodPost)
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)

	return r
}

// GetMenu handles GET /menu requests, with optional category and
// vegetarian query filters.
func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	var f catalog.Filter
	f.Category = r.URL.Query().Get("category")
	if veg := r.URL.Query().Get("veg"); veg != "" {
		switch strings.ToLower(veg) {
		case "true":
			t := true
			f.Vegetarian = &t
		case "false":
			fa := false
			f.Vegetarian = &fa
		default:
			h.writeErrorResponse(w, http.StatusBadRequest, "veg must be true or false", requestID)
			return
		}
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": h.service.catalog.List(f),
	}, requestID)
}

// GetCategories handles GET /menu/categories requests
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": h.service.catalog.Categories(),
	}, requestID)
}

// GetCart handles GET /cart requests
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	sess, release := h.session(w, r)
	defer release()

	h.writeCart(w, sess.flow.Cart(), requestID)
}

type addItemRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// AddCartItem handles POST /cart/items requests. Adding an item already in
// the cart merges quantities into the existing line.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	var req addItemRequest
	if !h.decodeJSON(w, r, &req, requestID) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, ok := h.service.catalog.Get(req.ItemID)
	if !ok {
		h.writeErrorResponse(w, http.StatusNotFound, fmt.Sprintf("unknown menu item: %s", req.ItemID), requestID)
		return
	}

	sess, release := h.session(w, r)
	defer release()

	sess.flow.Cart().AddItem(item.ID, req.Quantity, item.Name, item.Price)
	h.writeCart(w, sess.flow.Cart(), requestID)
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SetCartItemQuantity handles PUT /cart/items/{id} requests
func (h *Handler) SetCartItemQuantity(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	itemID := mux.Vars(r)["id"]

	var req setQuantityRequest
	if !h.decodeJSON(w, r, &req, requestID) {
		return
	}

	sess, release := h.session(w, r)
	defer release()

	sess.flow.Cart().SetQuantity(itemID, req.Quantity)
	h.writeCart(w, sess.flow.Cart(), requestID)
}

// RemoveCartItem handles DELETE /cart/items/{id} requests
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	itemID := mux.Vars(r)["id"]

	sess, release := h.session(w, r)
	defer release()

	sess.flow.Cart().RemoveItem(itemID)
	h.writeCart(w, sess.flow.Cart(), requestID)
}

// GetCheckout handles GET /checkout requests: the flow state and, once
// confirmed, the retained order confirmation.
func (h *Handler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	sess, release := h.session(w, r)
	defer release()

	response := map[string]interface{}{
		"state": sess.flow.State(),
	}
	if conf := sess.flow.Confirmation(); conf != nil {
		response["confirmation"] = conf
	}
	h.writeJSON(w, http.StatusOK, response, requestID)
}

// SubmitCheckout handles POST /checkout requests
func (h *Handler) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	var fields checkout.Fields
	if !h.decodeJSON(w, r, &fields, requestID) {
		return
	}

	sess, release := h.session(w, r)
	defer release()

	conf, err := h.service.Submit(r.Context(), sess.flow, fields, h.service.locatorFor(r))
	if err != nil {
		h.writeSubmitError(w, err, requestID)
		return
	}

	h.writeJSON(w, http.StatusCreated, conf, requestID)
}

// ResetCheckout handles POST /checkout/reset requests: discards the
// confirmation and starts a fresh order.
func (h *Handler) ResetCheckout(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	sess, release := h.session(w, r)
	defer release()

	sess.flow.Reset()
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"state": sess.flow.State(),
	}, requestID)
}

// HealthCheck handles GET /health requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	healthy := h.service.HealthCheck(r.Context())

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "order-service",
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

// session resolves the request's session from its cookie, minting a new
// session id when none is present, and returns the locked session.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session, func()) {
	var id string
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		id = c.Value
	} else {
		id = h.service.sessions.newID()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return h.service.sessions.acquire(id)
}

// writeSubmitError maps checkout failures onto HTTP statuses: validation
// errors are 400, a concurrent submit is 409, and persistence failures are
// 403 for the permission-denied class or 502 otherwise.
func (h *Handler) writeSubmitError(w http.ResponseWriter, err error, requestID string) {
	var verr checkout.ValidationError
	if errors.As(err, &verr) {
		h.writeErrorResponse(w, http.StatusBadRequest, verr.Message, requestID)
		return
	}
	if errors.Is(err, checkout.ErrSubmitInProgress) {
		h.writeErrorResponse(w, http.StatusConflict, err.Error(), requestID)
		return
	}
	var perr *checkout.PersistenceError
	if errors.As(err, &perr) {
		status := http.StatusBadGateway
		if perr.PermissionDenied() {
			status = http.StatusForbidden
		}
		h.writeErrorResponse(w, status, perr.UserMessage(), requestID)
		return
	}
	h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
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

// writeCart writes the standard cart view: the lines plus the derived
// subtotal.
func (h *Handler) writeCart(w http.ResponseWriter, store *cart.Store, requestID string) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"items":    store.Lines(),
		"subtotal": store.Subtotal(),
	}, requestID)
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
