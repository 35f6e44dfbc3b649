package httpapi

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/shopfront/internal/client/models"
)

// Products

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	q := strings.ToLower(r.URL.Query().Get("q"))

	out := make([]models.Product, 0)
	for _, p := range s.store.Products() {
		if category != "" && p.Category != category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		out = append(out, p)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Product(pathID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var p models.Product
	if !decodeJSON(w, r, &p) {
		return
	}
	p, err := s.store.CreateProduct(p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var p models.Product
	if !decodeJSON(w, r, &p) {
		return
	}
	p, err := s.store.UpdateProduct(pathID(r), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteProduct(pathID(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Cart

func (s *Server) handleCartTotal(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.CartTotal{Total: s.store.CartCount(userID(r.Context()))})
}

func (s *Server) handleListCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.CartItems(userID(r.Context())))
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	it, err := s.store.CartItem(userID(r.Context()), pathID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (s *Server) handleAddCart(w http.ResponseWriter, r *http.Request) {
	var req models.CartItem
	if !decodeJSON(w, r, &req) {
		return
	}
	it, err := s.store.AddCartItem(userID(r.Context()), req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

func (s *Server) handleUpdateCart(w http.ResponseWriter, r *http.Request) {
	var req models.CartItem
	if !decodeJSON(w, r, &req) {
		return
	}
	it, err := s.store.UpdateCartItem(userID(r.Context()), pathID(r), req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (s *Server) handleDeleteCart(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteCartItem(userID(r.Context()), pathID(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Addresses

func (s *Server) handleListAddresses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Addresses(userID(r.Context())))
}

func (s *Server) handleGetAddress(w http.ResponseWriter, r *http.Request) {
	a, err := s.store.Address(userID(r.Context()), pathID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleCreateAddress(w http.ResponseWriter, r *http.Request) {
	var a models.Address
	if !decodeJSON(w, r, &a) {
		return
	}
	a, err := s.store.CreateAddress(userID(r.Context()), a)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleUpdateAddress(w http.ResponseWriter, r *http.Request) {
	var a models.Address
	if !decodeJSON(w, r, &a) {
		return
	}
	a, err := s.store.UpdateAddress(userID(r.Context()), pathID(r), a)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleDeleteAddress(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteAddress(userID(r.Context()), pathID(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Orders

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Orders(userID(r.Context())))
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := s.store.Order(userID(r.Context()), pathID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	o, err := s.store.CreateOrder(userID(r.Context()), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (s *Server) handleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	o, err := s.store.UpdateOrderStatus(userID(r.Context()), pathID(r), req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteOrder(userID(r.Context()), pathID(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
