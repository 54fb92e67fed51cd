package fakeapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jrsteele09/go-storefront-client/models"
)

type cartItem struct {
	ID        string
	ProductID string
	Quantity  int
	Size      string
}

type cart struct {
	ID    string
	Items []*cartItem
}

func userOwner(userID string) string       { return "user:" + userID }
func sessionOwner(sessionID string) string { return "session:" + sessionID }

// owner resolves whose cart or orders a request refers to: the signed-in user, else the
// guest session id. It writes a 400 and returns false when neither is present.
func owner(w http.ResponseWriter, r *http.Request, sessionID string) (string, bool) {
	if claims := claimsFrom(r); claims != nil {
		return userOwner(claims.UserID), true
	}
	if sessionID != "" {
		return sessionOwner(sessionID), true
	}
	writeError(w, http.StatusBadRequest, "user_id or session_id required")
	return "", false
}

// cartFor must be called with s.mu held.
func (s *Server) cartFor(ownerKey string) *cart {
	c, ok := s.carts[ownerKey]
	if !ok {
		c = &cart{ID: uuid.NewString()}
		s.carts[ownerKey] = c
	}
	return c
}

// findCartItem must be called with s.mu held. Items are addressed by id alone.
func (s *Server) findCartItem(itemID string) (*cart, int) {
	for _, c := range s.carts {
		for i, item := range c.Items {
			if item.ID == itemID {
				return c, i
			}
		}
	}
	return nil, -1
}

func (s *Server) cartView(c *cart) models.Cart {
	out := models.Cart{ID: c.ID, Items: []models.CartItem{}}
	for _, item := range c.Items {
		p, _ := s.catalog.product(item.ProductID)
		out.Items = append(out.Items, models.CartItem{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: p.Name,
			Quantity:    item.Quantity,
			Size:        item.Size,
			Price:       p.Price,
			ImageURL:    p.ImageURL,
		})
		out.TotalPrice += p.Price * float64(item.Quantity)
	}
	out.TotalItems = len(c.Items)
	return out
}

func (s *Server) getCartHandler(w http.ResponseWriter, r *http.Request) {
	ownerKey, ok := owner(w, r, r.URL.Query().Get("session_id"))
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.cartView(s.cartFor(ownerKey)))
}

// addCartItemHandler merges quantities when the same product and size is added twice.
func (s *Server) addCartItemHandler(w http.ResponseWriter, r *http.Request) {
	var req models.AddCartItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ProductID == "" || req.Quantity < 1 {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	ownerKey, ok := owner(w, r, req.SessionID)
	if !ok {
		return
	}
	p, found := s.catalog.product(req.ProductID)
	if !found {
		writeError(w, http.StatusBadRequest, "product not found")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartFor(ownerKey)
	var item *cartItem
	for _, existing := range c.Items {
		if existing.ProductID == req.ProductID && existing.Size == req.Size {
			item = existing
			break
		}
	}
	if item == nil {
		item = &cartItem{ID: uuid.NewString(), ProductID: req.ProductID, Size: req.Size}
		c.Items = append(c.Items, item)
	}
	if item.Quantity+req.Quantity > p.AvailableUnits {
		if item.Quantity == 0 {
			c.Items = c.Items[:len(c.Items)-1]
		}
		writeError(w, http.StatusBadRequest, "insufficient stock")
		return
	}
	item.Quantity += req.Quantity

	writeJSON(w, http.StatusCreated, models.CartItem{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Size:      item.Size,
		Message:   "item added to cart",
	})
}

func (s *Server) updateCartItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, paramItemID)
	if _, err := uuid.Parse(itemID); err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	var req models.UpdateCartItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Quantity < 1 {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, i := s.findCartItem(itemID)
	if c == nil {
		writeError(w, http.StatusBadRequest, "cart item not found")
		return
	}
	item := c.Items[i]
	item.Quantity = req.Quantity
	item.Size = req.Size

	writeJSON(w, http.StatusOK, models.CartItem{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Size:      item.Size,
		Message:   "cart item updated",
	})
}

func (s *Server) removeCartItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, paramItemID)
	if _, err := uuid.Parse(itemID); err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if c, i := s.findCartItem(itemID); c != nil {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "item removed from cart"})
}

func (s *Server) clearCartHandler(w http.ResponseWriter, r *http.Request) {
	ownerKey, ok := owner(w, r, r.URL.Query().Get("session_id"))
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartFor(ownerKey).Items = nil
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "cart cleared"})
}
