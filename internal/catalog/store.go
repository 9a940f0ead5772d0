package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Store holds the read-mostly catalog data. Products keep their seed order so
// that search and recommendation results are deterministic.
type Store struct {
	products []Product
	byID     map[string]int
	orders   map[string]Order
	reviews  map[string][]Review
}

// NewStore creates a store from the given data. Order ids are matched
// case-insensitively, so they are indexed lowercased.
func NewStore(products []Product, orders []Order, reviews map[string][]Review) *Store {
	s := &Store{
		products: products,
		byID:     make(map[string]int, len(products)),
		orders:   make(map[string]Order, len(orders)),
		reviews:  reviews,
	}
	for i, p := range products {
		s.byID[p.ID] = i
	}
	for _, o := range orders {
		s.orders[strings.ToLower(o.ID)] = o
	}
	if s.reviews == nil {
		s.reviews = map[string][]Review{}
	}
	return s
}

// NewSeededStore creates a store with the built-in demo data.
func NewSeededStore() *Store {
	return NewStore(seedProducts(), seedOrders(), seedReviews())
}

// Product looks up a product by id.
func (s *Store) Product(id string) (Product, error) {
	i, ok := s.byID[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return s.products[i], nil
}

// Search returns products whose name, description or any tag contains the
// query, case-insensitively. An empty category means no category filter and a
// maxPrice of zero or less means no price ceiling. Results keep catalog order.
func (s *Store) Search(query, category string, maxPrice float64) []Product {
	q := strings.ToLower(query)
	results := []Product{}
	for _, p := range s.products {
		if !matches(p, q) {
			continue
		}
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if maxPrice > 0 && p.Price > maxPrice {
			continue
		}
		results = append(results, p)
	}
	return results
}

func matches(p Product, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Order looks up an order by id, case-insensitively.
func (s *Store) Order(id string) (Order, error) {
	o, ok := s.orders[strings.ToLower(id)]
	if !ok {
		return Order{}, ErrNotFound
	}
	return o, nil
}

// InitiatePayment starts a mock payment for an order. It never mutates order
// state; the transaction id is fresh on every call.
func (s *Store) InitiatePayment(orderID, method string) (PaymentResult, error) {
	o, ok := s.orders[strings.ToLower(orderID)]
	if !ok {
		return PaymentResult{}, ErrNotFound
	}
	txn := "txn_" + uuid.NewString()[:8]
	return PaymentResult{
		Status:        "success",
		Message:       fmt.Sprintf("Payment of $%.2f for order %s initiated via %s.", o.Total, orderID, method),
		TransactionID: txn,
	}, nil
}

// Recommendation criteria accepted by Recommend.
const (
	CriteriaRelated  = "related"
	CriteriaTopRated = "top-rated"
)

// Recommend returns products related to the given one. "related" returns the
// products whose ids appear in the source product's related list, in catalog
// order, silently dropping dangling ids. "top-rated" returns up to three other
// products in the same category by descending rating, ties kept in catalog
// order. Unrecognized criteria yield an empty list.
func (s *Store) Recommend(productID, criteria string) ([]Product, error) {
	src, err := s.Product(productID)
	if err != nil {
		return nil, err
	}

	switch criteria {
	case CriteriaRelated:
		related := make(map[string]bool, len(src.RelatedIDs))
		for _, id := range src.RelatedIDs {
			related[id] = true
		}
		results := []Product{}
		for _, p := range s.products {
			if related[p.ID] {
				results = append(results, p)
			}
		}
		return results, nil

	case CriteriaTopRated:
		peers := []Product{}
		for _, p := range s.products {
			if p.Category == src.Category && p.ID != src.ID {
				peers = append(peers, p)
			}
		}
		sort.SliceStable(peers, func(i, j int) bool {
			return peers[i].Rating > peers[j].Rating
		})
		if len(peers) > 3 {
			peers = peers[:3]
		}
		return peers, nil

	default:
		return []Product{}, nil
	}
}

// Reviews returns the reviews for a product. Unknown product ids are an error;
// a known product with no reviews returns an empty list.
func (s *Store) Reviews(productID string) ([]Review, error) {
	if _, ok := s.byID[productID]; !ok {
		return nil, ErrNotFound
	}
	return s.reviews[productID], nil
}

// Help answers a general support topic.
func Help(topic string) string {
	t := strings.ToLower(topic)
	switch {
	case strings.Contains(t, "hour"):
		return "Our store is open from 9 AM to 8 PM, Monday to Saturday. Online support is available 24/7."
	case strings.Contains(t, "return"), strings.Contains(t, "refund"):
		return "You can return any item within 30 days of purchase for a full refund."
	case strings.Contains(t, "contact"):
		return "You can contact our support team via email at support@example.com."
	default:
		return "I'm sorry, I can't find information on that topic. Could you please rephrase?"
	}
}
