package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"
	"github.com/wellywell/safetap/internal/auth"
	"github.com/wellywell/safetap/internal/db"
	"github.com/wellywell/safetap/internal/reconcile"
	"github.com/wellywell/safetap/internal/types"
	"github.com/wellywell/safetap/internal/validate"
)

const (
	defaultPageSize = 100
	maxPageSize     = 1000
	pingTimeout     = 2 * time.Second
)

type Store interface {
	Ping(ctx context.Context) error
	GetAdminHashedPassword(ctx context.Context, username string) (string, error)
	CreateOrder(ctx context.Context, order types.NewOrder) (*types.OrderRecord, error)
	AddPayment(ctx context.Context, orderNum string, payment types.NewPayment) (*types.PaymentRecord, error)
	GetOrder(ctx context.Context, orderID int) (*types.OrderWithPayments, error)
	GetOrderByNumber(ctx context.Context, orderNum string) (*types.OrderWithPayments, error)
	ListOrders(ctx context.Context, startID int, limit int) ([]types.OrderWithPayments, error)
	TransitionOrder(ctx context.Context, orderID int, decide db.StatusDecision) (*types.OrderWithPayments, error)
	RepairOrder(ctx context.Context, orderID int, decide db.StatusDecision) (*types.OrderWithPayments, error)
}

type HandlerSet struct {
	secret               []byte
	cookieExpiresSeconds int
	store                Store
}

var (
	ErrCouldNotParseBody = errors.New("could not parse body")
	ErrAuthDataEmpty     = errors.New("login or password cannot be empty")
	ErrAlreadyConsistent = errors.New("order is consistent with its payments")
)

func NewHandlerSet(secret []byte, cookieExpiresSecs int, store Store) *HandlerSet {
	return &HandlerSet{
		secret:               secret,
		cookieExpiresSeconds: cookieExpiresSecs,
		store:                store,
	}
}

func (h *HandlerSet) parseAuthData(body []byte) (username string, password string, err error) {

	var data struct {
		Username string `json:"login"`
		Password string `json:"password"`
	}

	err = json.Unmarshal(body, &data)
	if err != nil {
		return "", "", ErrCouldNotParseBody
	}

	if data.Username == "" || data.Password == "" {
		return "", "", ErrAuthDataEmpty
	}

	return data.Username, data.Password, nil
}

func (h *HandlerSet) handleAuthErrors(err error, w http.ResponseWriter) {

	if errors.Is(err, ErrCouldNotParseBody) {
		http.Error(w, "Could not parse body",
			http.StatusBadRequest)
	} else if errors.Is(err, ErrAuthDataEmpty) {
		http.Error(w, "Login and password cannot be empty",
			http.StatusBadRequest)
	} else {
		http.Error(w, "Unknown error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, code int, value any) {
	response, err := json.Marshal(value)
	if err != nil {
		http.Error(w, "Could not serialize result",
			http.StatusInternalServerError)
		return
	}
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(code)
	_, err = w.Write(response)
	if err != nil {
		logger.Errorf("Failed writing response: %s", err)
	}
}

func orderIDParam(w http.ResponseWriter, req *http.Request) (int, bool) {
	orderID, err := strconv.Atoi(chi.URLParam(req, "id"))
	if err != nil || orderID <= 0 {
		http.Error(w, "Invalid order id", http.StatusBadRequest)
		return 0, false
	}
	return orderID, true
}

func handleOrderErrors(err error, w http.ResponseWriter) {
	var notFound *db.OrderNotFoundError
	if errors.As(err, &notFound) {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	logger.Error(err)
	http.Error(w, "Error getting data", http.StatusInternalServerError)
}

func (h *HandlerSet) HandleHealth(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), pingTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		logger.Warningf("Health check failed: %s", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "database": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *HandlerSet) HandleLogin(w http.ResponseWriter, req *http.Request) {

	body, err := io.ReadAll(req.Body)
	if err != nil {
		http.Error(w, "Something went wrong",
			http.StatusInternalServerError)
		return
	}

	username, password, err := h.parseAuthData(body)
	if err != nil {
		h.handleAuthErrors(err, w)
		return
	}

	passwordInDB, err := h.store.GetAdminHashedPassword(req.Context(), username)
	if err != nil {
		var userNotFound *db.UserNotFoundError
		if errors.As(err, &userNotFound) {
			http.Error(w, "User not found", http.StatusUnauthorized)
			return
		}
		logger.Error(err)
		http.Error(w, "Something went wrong", http.StatusInternalServerError)
		return
	}

	if !auth.CheckPasswordHash(password, passwordInDB) {
		http.Error(w, "Wrong password", http.StatusUnauthorized)
		return
	}

	err = auth.SetAuthCookie(username, w, h.secret, h.cookieExpiresSeconds)
	if err != nil {
		http.Error(w, "Something went wrong",
			http.StatusInternalServerError)
		return
	}

	w.Header().Set("content-type", "text/plain")
	_, err = w.Write([]byte("success"))
	if err != nil {
		logger.Errorf("Failed writing response: %s", err)
	}
}

func (h *HandlerSet) HandlePostOrder(w http.ResponseWriter, req *http.Request) {

	body, err := io.ReadAll(req.Body)
	if err != nil {
		http.Error(w, "Something went wrong",
			http.StatusInternalServerError)
		return
	}

	var data types.NewOrder
	err = json.Unmarshal(body, &data)
	if err != nil {
		http.Error(w, "Could not parse body", http.StatusBadRequest)
		return
	}
	if data.Currency == "" {
		data.Currency = reconcile.DefaultCurrency
	}

	err = validate.ValidateOrder(data.OrderNum, data.CustomerName, data.Email, data.AmountCents, data.Currency)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	order, err := h.store.CreateOrder(req.Context(), data)
	if err != nil {
		var orderExists *db.OrderExistsError
		if errors.As(err, &orderExists) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		logger.Error(err)
		http.Error(w, "Could not create order", http.StatusInternalServerError)
		return
	}

	logger.Infof("Order %s created", order.OrderNum)
	writeJSON(w, http.StatusCreated, NewOrderView(types.OrderWithPayments{Order: *order}))
}

func (h *HandlerSet) HandlePostPayment(w http.ResponseWriter, req *http.Request) {

	orderNum := chi.URLParam(req, "number")
	if !validate.ValidateOrderNumber(orderNum) {
		http.Error(w, "Invalid order number", http.StatusUnprocessableEntity)
		return
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		http.Error(w, "Something went wrong",
			http.StatusInternalServerError)
		return
	}

	var data types.NewPayment
	err = json.Unmarshal(body, &data)
	if err != nil {
		http.Error(w, "Could not parse body", http.StatusBadRequest)
		return
	}
	if data.AmountCents <= 0 {
		http.Error(w, validate.ErrInvalidAmount.Error(), http.StatusUnprocessableEntity)
		return
	}
	if data.Currency != "" && !validate.ValidateCurrency(data.Currency) {
		http.Error(w, validate.ErrInvalidCurrency.Error(), http.StatusUnprocessableEntity)
		return
	}
	if data.Reference == "" {
		http.Error(w, "Payment reference cannot be empty", http.StatusUnprocessableEntity)
		return
	}

	payment, err := h.store.AddPayment(req.Context(), orderNum, data)
	if err != nil {
		handleOrderErrors(err, w)
		return
	}
	writeJSON(w, http.StatusAccepted, payment)
}

func (h *HandlerSet) HandleGetPublicOrder(w http.ResponseWriter, req *http.Request) {
	orderNum := chi.URLParam(req, "number")
	if !validate.ValidateOrderNumber(orderNum) {
		http.Error(w, "Invalid order number", http.StatusUnprocessableEntity)
		return
	}

	order, err := h.store.GetOrderByNumber(req.Context(), orderNum)
	if err != nil {
		handleOrderErrors(err, w)
		return
	}
	writeJSON(w, http.StatusOK, NewPublicOrderView(*order))
}

func (h *HandlerSet) HandleGetOrders(w http.ResponseWriter, req *http.Request) {

	startID, err := queryInt(req, "after", 0)
	if err != nil || startID < 0 {
		http.Error(w, "Invalid after parameter", http.StatusBadRequest)
		return
	}
	limit, err := queryInt(req, "limit", defaultPageSize)
	if err != nil || limit <= 0 || limit > maxPageSize {
		http.Error(w, "Invalid limit parameter", http.StatusBadRequest)
		return
	}

	orders, err := h.store.ListOrders(req.Context(), startID, limit)
	if err != nil {
		logger.Error(err)
		http.Error(w, "Error getting data", http.StatusInternalServerError)
		return
	}

	if len(orders) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, NewOrderView(o))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *HandlerSet) HandleGetOrder(w http.ResponseWriter, req *http.Request) {
	orderID, ok := orderIDParam(w, req)
	if !ok {
		return
	}

	order, err := h.store.GetOrder(req.Context(), orderID)
	if err != nil {
		handleOrderErrors(err, w)
		return
	}
	writeJSON(w, http.StatusOK, NewOrderView(*order))
}

func (h *HandlerSet) HandlePostTransition(w http.ResponseWriter, req *http.Request) {
	orderID, ok := orderIDParam(w, req)
	if !ok {
		return
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		http.Error(w, "Something went wrong",
			http.StatusInternalServerError)
		return
	}

	var data struct {
		Status types.OrderStatus `json:"status"`
	}
	err = json.Unmarshal(body, &data)
	if err != nil {
		http.Error(w, "Could not parse body", http.StatusBadRequest)
		return
	}
	if !data.Status.IsValid() {
		http.Error(w, "Unknown status", http.StatusBadRequest)
		return
	}

	var previous types.OrderStatus
	updated, err := h.store.TransitionOrder(req.Context(), orderID, func(s types.OrderWithPayments) (types.OrderStatus, error) {
		previous = s.Order.Status
		info := reconcile.AnalyzePayments(s.Payments)
		return data.Status, reconcile.ValidateStatusTransition(s.Order.Status, data.Status, info)
	})
	if err != nil {
		var invalid *reconcile.InvalidTransitionError
		if errors.As(err, &invalid) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		handleOrderErrors(err, w)
		return
	}

	admin, _ := auth.GetAuthenticatedUser(req)
	logger.WithFields(logger.Fields{
		"order": updated.Order.OrderNum,
		"from":  previous,
		"to":    updated.Order.Status,
		"admin": admin,
	}).Info("Order status changed")

	writeJSON(w, http.StatusOK, NewOrderView(*updated))
}

func (h *HandlerSet) HandleGetConsistency(w http.ResponseWriter, req *http.Request) {

	response := ConsistencyResponse{Inconsistent: []InconsistentOrder{}}

	startID := 0
	for {
		orders, err := h.store.ListOrders(req.Context(), startID, maxPageSize)
		if err != nil {
			logger.Error(err)
			http.Error(w, "Error getting data", http.StatusInternalServerError)
			return
		}
		if len(orders) == 0 {
			break
		}
		for _, o := range orders {
			startID = o.Order.OrderID
			response.Checked++

			info := reconcile.AnalyzePayments(o.Payments)
			report := reconcile.CheckOrderConsistency(o.Order.Status, info)
			if report.IsConsistent {
				continue
			}
			response.Inconsistent = append(response.Inconsistent, InconsistentOrder{
				OrderID:         o.Order.OrderID,
				OrderNum:        o.Order.OrderNum,
				Status:          o.Order.Status,
				SuggestedStatus: reconcile.DisplayStatus(o.Order.Status, info).PrimaryStatus,
				Issues:          report.Issues,
			})
		}
	}

	if len(response.Inconsistent) > 0 {
		logger.Warningf("%d of %d orders are inconsistent with their payments", len(response.Inconsistent), response.Checked)
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *HandlerSet) HandlePostRepair(w http.ResponseWriter, req *http.Request) {
	orderID, ok := orderIDParam(w, req)
	if !ok {
		return
	}

	var issues []string
	var previous types.OrderStatus
	updated, err := h.store.RepairOrder(req.Context(), orderID, func(s types.OrderWithPayments) (types.OrderStatus, error) {
		previous = s.Order.Status
		info := reconcile.AnalyzePayments(s.Payments)
		report := reconcile.CheckOrderConsistency(s.Order.Status, info)
		if report.IsConsistent {
			return "", ErrAlreadyConsistent
		}
		issues = report.Issues
		return reconcile.DisplayStatus(s.Order.Status, info).PrimaryStatus, nil
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyConsistent) {
			http.Error(w, "Order is already consistent", http.StatusConflict)
			return
		}
		handleOrderErrors(err, w)
		return
	}

	admin, _ := auth.GetAuthenticatedUser(req)
	logger.WithFields(logger.Fields{
		"order":  updated.Order.OrderNum,
		"from":   previous,
		"to":     updated.Order.Status,
		"issues": issues,
		"admin":  admin,
	}).Warning("Order status repaired")

	writeJSON(w, http.StatusOK, NewOrderView(*updated))
}

func queryInt(req *http.Request, name string, fallback int) (int, error) {
	raw := req.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
