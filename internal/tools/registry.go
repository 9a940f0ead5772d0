// Package tools declares the fixed set of concierge operations the classifier
// may choose from. The registry is an immutable value built once at startup;
// it is the single source of truth for tool names, descriptions and parameter
// schemas.
package tools

import "encoding/json"

// Kind is the closed set of operations. Dispatch switches exhaustively on it
// instead of looking functions up by name.
type Kind int

const (
	KindSearchProducts Kind = iota
	KindGetOrderStatus
	KindInitiatePayment
	KindRecommendProducts
	KindGetGeneralHelp
	KindAddToCart
	KindViewCart
	KindGetProductReviews
)

// NoToolFound is the sentinel the classifier resolves to when no registered
// tool fits the utterance.
const NoToolFound = "no_tool_found"

// Param describes one tool parameter.
type Param struct {
	Name        string
	Type        string
	Description string
	Required    bool
}

// Spec describes one registered tool.
type Spec struct {
	Name        string
	Kind        Kind
	Description string
	Params      []Param
}

// Registry is the immutable tool catalog.
type Registry struct {
	specs  []Spec
	byName map[string]Spec
}

// NewRegistry builds the registry of all concierge tools.
func NewRegistry() *Registry {
	specs := []Spec{
		{
			Name: "search_products", Kind: KindSearchProducts,
			Description: "Searches for products in the e-commerce catalog based on a query, category, and maximum price.",
			Params: []Param{
				{Name: "query", Type: "string", Description: "The search term for the product name, e.g., 'running shoes', 'leather wallet'.", Required: true},
				{Name: "category", Type: "string", Description: "The specific category to filter by, e.g., 'apparel', 'electronics'."},
				{Name: "max_price", Type: "number", Description: "The maximum price for the products."},
			},
		},
		{
			Name: "get_order_status", Kind: KindGetOrderStatus,
			Description: "Retrieves the status and details of a specific order using its ID.",
			Params: []Param{
				{Name: "order_id", Type: "string", Description: "The unique identifier for the order, e.g., 'ord_12345'.", Required: true},
			},
		},
		{
			Name: "initiate_payment", Kind: KindInitiatePayment,
			Description: "Initiates the payment process for a given order ID using the chosen payment method.",
			Params: []Param{
				{Name: "order_id", Type: "string", Description: "The unique identifier for the order to pay, e.g., 'ord_12345'.", Required: true},
				{Name: "payment_method", Type: "string", Description: "The payment method, e.g., 'credit card', 'paypal'.", Required: true},
			},
		},
		{
			Name: "recommend_products", Kind: KindRecommendProducts,
			Description: "Recommends other products based on a specific product and criteria like 'related' items or 'top-rated' in the same category.",
			Params: []Param{
				{Name: "product_id", Type: "string", Description: "The ID of the product to base recommendations on, e.g., 'p001'.", Required: true},
				{Name: "criteria", Type: "string", Description: "Recommendation criteria: 'related' or 'top-rated'. Defaults to 'related'."},
			},
		},
		{
			Name: "get_general_help", Kind: KindGetGeneralHelp,
			Description: "Provides general help or information about common topics like store hours, return policy, or contact info.",
			Params: []Param{
				{Name: "topic", Type: "string", Description: "The topic the user is asking about, e.g., 'hours', 'return policy', 'contact'.", Required: true},
			},
		},
		{
			Name: "add_to_cart", Kind: KindAddToCart,
			Description: "Adds a specified quantity of a product to the user's shopping cart.",
			Params: []Param{
				{Name: "product_id", Type: "string", Description: "The unique ID of the product to add, e.g., 'p001'.", Required: true},
				{Name: "quantity", Type: "integer", Description: "The number of units of the product to add.", Required: true},
			},
		},
		{
			Name: "view_cart", Kind: KindViewCart,
			Description: "Shows the current contents of the user's shopping cart, including items and total price.",
		},
		{
			Name: "get_product_reviews", Kind: KindGetProductReviews,
			Description: "Retrieves customer reviews for a specific product by its ID.",
			Params: []Param{
				{Name: "product_id", Type: "string", Description: "The unique ID of the product to get reviews for, e.g., 'p007'.", Required: true},
			},
		},
	}

	byName := make(map[string]Spec, len(specs))
	for _, s := range specs {
		byName[s.Name] = s
	}
	return &Registry{specs: specs, byName: byName}
}

// Lookup resolves a tool name. The second return is false for names the
// classifier invented.
func (r *Registry) Lookup(name string) (Spec, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// Specs returns the tools in declaration order.
func (r *Registry) Specs() []Spec {
	return r.specs
}

// PromptJSON renders the registry as the JSON tool listing embedded in the
// classifier prompt.
func (r *Registry) PromptJSON() string {
	type schema struct {
		Type       string                    `json:"type"`
		Properties map[string]map[string]any `json:"properties"`
		Required   []string                  `json:"required,omitempty"`
	}
	type entry struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Parameters  schema `json:"parameters"`
	}

	entries := make([]entry, 0, len(r.specs))
	for _, s := range r.specs {
		sc := schema{Type: "object", Properties: map[string]map[string]any{}}
		for _, p := range s.Params {
			sc.Properties[p.Name] = map[string]any{
				"type":        p.Type,
				"description": p.Description,
			}
			if p.Required {
				sc.Required = append(sc.Required, p.Name)
			}
		}
		entries = append(entries, entry{Name: s.Name, Description: s.Description, Parameters: sc})
	}

	data, _ := json.MarshalIndent(entries, "", "  ")
	return string(data)
}
