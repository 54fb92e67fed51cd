package fakeapi

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jrsteele09/go-storefront-client/models"
)

type order struct {
	models.Order
	ownerKey string
	shipping models.Shipping
	email    string
}

// orderFor must be called with s.mu held.
func (s *Server) orderFor(w http.ResponseWriter, r *http.Request) (*order, bool) {
	id := chi.URLParam(r, paramID)
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return nil, false
	}
	o, ok := s.orders[id]
	if !ok {
		writeError(w, http.StatusNotFound, "order not found")
		return nil, false
	}
	return o, true
}

// createOrderHandler turns the caller's cart into a pending order and empties the cart.
func (s *Server) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ownerKey, ok := owner(w, r, req.SessionID)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartFor(ownerKey)
	if len(c.Items) == 0 {
		writeError(w, http.StatusBadRequest, "cart is empty")
		return
	}

	now := NowTimeFunc()
	o := &order{
		Order: models.Order{
			ID:            uuid.NewString(),
			Status:        models.StatusPending,
			PaymentStatus: models.PaymentPending,
			Items:         []models.OrderItem{},
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		ownerKey: ownerKey,
		shipping: req.Shipping,
		email:    req.Email,
	}
	for _, item := range c.Items {
		p, _ := s.catalog.product(item.ProductID)
		o.Items = append(o.Items, models.OrderItem{
			ProductID:   item.ProductID,
			ProductName: p.Name,
			Quantity:    item.Quantity,
			Size:        item.Size,
			UnitPrice:   p.Price,
		})
		o.TotalAmount += p.Price * float64(item.Quantity)
	}
	s.orders[o.ID] = o
	c.Items = nil

	writeJSON(w, http.StatusCreated, o.Order)
}

func (s *Server) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orderFor(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, o.Order)
}

// listOrdersHandler pages the caller's orders, newest first.
func (s *Server) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	ownerKey, ok := owner(w, r, r.URL.Query().Get("session_id"))
	if !ok {
		return
	}
	page, limit := paging(r, models.DefaultOrderLimit)

	s.mu.Lock()
	defer s.mu.Unlock()

	var mine []models.Order
	for _, o := range s.orders {
		if o.ownerKey == ownerKey {
			mine = append(mine, o.Order)
		}
	}
	sort.Slice(mine, func(i, j int) bool { return mine[i].CreatedAt.After(mine[j].CreatedAt) })

	out := models.OrderPage{Total: int64(len(mine)), Page: page, Limit: limit, Orders: []models.Order{}}
	if start := (page - 1) * limit; start < len(mine) {
		out.Orders = mine[start:min(start+limit, len(mine))]
	}
	writeJSON(w, http.StatusOK, out)
}

// processPaymentHandler is a mock gateway: a card number passing the Luhn check is charged.
func (s *Server) processPaymentHandler(w http.ResponseWriter, r *http.Request) {
	var req models.PaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.CardNumber == "" || req.CardHolder == "" || req.CVV == "" || req.ExpiryMonth == 0 || req.ExpiryYear == 0 {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orderFor(w, r)
	if !ok {
		return
	}
	if o.PaymentStatus == models.PaymentCompleted {
		writeError(w, http.StatusBadRequest, "order already paid")
		return
	}

	if msg := validateCard(req, NowTimeFunc()); msg != "" {
		o.PaymentStatus = models.PaymentFailed
		writeJSON(w, http.StatusBadRequest, models.PaymentResponse{
			OrderID:       o.ID,
			PaymentStatus: models.PaymentFailed,
			Message:       msg,
		})
		return
	}

	o.PaymentStatus = models.PaymentCompleted
	o.Status = models.StatusConfirmed
	o.UpdatedAt = NowTimeFunc()
	writeJSON(w, http.StatusOK, models.PaymentResponse{
		OrderID:               o.ID,
		PaymentStatus:         models.PaymentCompleted,
		TransactionID:         "TXN_" + o.ID[:8],
		Message:               "payment processed successfully",
		ConfirmationEmailSent: o.email != "" || o.shipping.Email != "",
	})
}

func (s *Server) confirmationHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orderFor(w, r)
	if !ok {
		return
	}

	items := make([]models.OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		item.ProductID = ""
		items = append(items, item)
	}
	writeJSON(w, http.StatusOK, models.Confirmation{
		OrderID:       o.ID,
		OrderDate:     o.CreatedAt,
		TotalAmount:   o.TotalAmount,
		Items:         items,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		Message:       "Thank you for your purchase!",
	})
}

// validateCard returns a decline message, or "" when the card is accepted.
func validateCard(req models.PaymentRequest, now time.Time) string {
	number := strings.ReplaceAll(req.CardNumber, " ", "")
	if !luhnValid(number) {
		return "card declined: invalid card number"
	}
	if req.ExpiryMonth < 1 || req.ExpiryMonth > 12 {
		return "card declined: invalid expiry month"
	}
	if req.ExpiryYear < now.Year() || (req.ExpiryYear == now.Year() && req.ExpiryMonth < int(now.Month())) {
		return "card declined: card expired"
	}
	if len(req.CVV) < 3 || len(req.CVV) > 4 {
		return "card declined: invalid cvv"
	}
	return ""
}

func luhnValid(number string) bool {
	if len(number) < 12 || len(number) > 19 {
		return false
	}
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		d := int(number[i] - '0')
		if d < 0 || d > 9 {
			return false
		}
		if double {
			if d *= 2; d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
