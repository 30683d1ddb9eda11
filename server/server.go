// Package server hosts a small HTTP endpoint that serves canned cart data
// for known user ids. It exists so the fetch client has a real collaborator
// to talk to in demos and integration tests.
package server

import (
	"fmt"
	"math/rand"
	"net/http"
	"strconv"

	"github.com/cartlab/cart-fetch/clients/cartapi"
	"github.com/cartlab/cart-fetch/utils/logger"
	"github.com/tidwall/sjson"
)

// Server serves canned carts keyed by user id. Unknown users get a 404 so
// clients exercise their normal failure path rather than a special case.
type Server struct {
	carts       map[int][]cartapi.CartItem
	failureRate float64
	logger      logger.Logger
}

type Option func(*Server)

// WithFailureRate makes the handler fail a fraction of requests with a 503,
// which is handy for demoing the client's retry path. Rate is clamped to
// [0, 1].
func WithFailureRate(rate float64) Option {
	return func(s *Server) {
		if rate < 0 {
			rate = 0
		}
		if rate > 1 {
			rate = 1
		}
		s.failureRate = rate
	}
}

// WithLogger sets the logger for request logging
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// New creates a server holding the given canned carts
func New(carts map[int][]cartapi.CartItem, opts ...Option) *Server {
	s := &Server{
		carts:  carts,
		logger: logger.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler serving GET /cart?uid=N
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/cart", s.handleCart)
	return mux
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uid, err := strconv.Atoi(r.URL.Query().Get("uid"))
	if err != nil {
		http.Error(w, "uid must be a number", http.StatusBadRequest)
		return
	}

	if s.failureRate > 0 && rand.Float64() < s.failureRate {
		s.logger.Printf("cart server: injected failure for user %d", uid)
		http.Error(w, "temporarily unavailable", http.StatusServiceUnavailable)
		return
	}

	items, ok := s.carts[uid]
	if !ok {
		s.logger.Printf("cart server: no cart for user %d", uid)
		http.Error(w, "no cart for user", http.StatusNotFound)
		return
	}

	body, err := encodeCart(items)
	if err != nil {
		http.Error(w, "failed to encode cart", http.StatusInternalServerError)
		return
	}

	s.logger.Printf("cart server: served %d items for user %d", len(items), uid)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// encodeCart builds the JSON array payload one field at a time
func encodeCart(items []cartapi.CartItem) ([]byte, error) {
	body := []byte(`[]`)
	for i, item := range items {
		var err error
		body, err = sjson.SetBytes(body, fmt.Sprintf("%d.name", i), item.Name)
		if err != nil {
			return nil, err
		}
		body, err = sjson.SetBytes(body, fmt.Sprintf("%d.quantity", i), item.Quantity)
		if err != nil {
			return nil, err
		}
	}
	return body, nil
}
