package session

import (
	"fmt"
	"math"

	"github.com/cortexhub/cortex-concierge/internal/catalog"
)

// CartItem is one priced line in a cart view.
type CartItem struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	ItemTotal   float64 `json:"item_total"`
}

// CartView is a snapshot of the cart with computed totals. Message is set
// only for an empty cart so callers can tell "nothing in the cart" apart
// from a zero-priced line.
type CartView struct {
	Items      []CartItem `json:"items"`
	TotalPrice float64    `json:"total_price"`
	Message    string     `json:"message,omitempty"`
}

// Cart maps product ids to quantities. It is owned by a Session and must only
// be touched through Session methods, which hold the session lock.
type Cart struct {
	quantities map[string]int
	order      []string
}

func newCart() *Cart {
	return &Cart{quantities: make(map[string]int)}
}

// add increments the entry for a product, recording first-seen order so that
// views are deterministic.
func (c *Cart) add(productID string, quantity int) {
	if _, ok := c.quantities[productID]; !ok {
		c.order = append(c.order, productID)
	}
	c.quantities[productID] += quantity
}

// AddToCart validates the product against the store and adds the quantity to
// this session's cart. The confirmation reports the added delta only, not the
// running cart contents.
func (s *Session) AddToCart(store *catalog.Store, productID string, quantity int) (string, error) {
	p, err := store.Product(productID)
	if err != nil {
		return "", fmt.Errorf("product %q: %w", productID, err)
	}
	if quantity > p.Stock {
		return "", fmt.Errorf("%s has only %d in stock: %w", p.Name, p.Stock, catalog.ErrInsufficientStock)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.add(productID, quantity)
	return fmt.Sprintf("Added %d x %s to your cart.", quantity, p.Name), nil
}

// ViewCart prices the cart against the store. Line totals and the grand total
// are rounded to two decimals.
func (s *Session) ViewCart(store *catalog.Store) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.cart.order) == 0 {
		return CartView{Items: []CartItem{}, TotalPrice: 0, Message: "Your shopping cart is empty."}
	}

	view := CartView{Items: make([]CartItem, 0, len(s.cart.order))}
	var total float64
	for _, id := range s.cart.order {
		p, err := store.Product(id)
		if err != nil {
			continue
		}
		qty := s.cart.quantities[id]
		lineTotal := p.Price * float64(qty)
		total += lineTotal
		view.Items = append(view.Items, CartItem{
			ProductName: p.Name,
			Quantity:    qty,
			ItemTotal:   round2(lineTotal),
		})
	}
	view.TotalPrice = round2(total)
	return view
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
