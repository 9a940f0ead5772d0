package tools

import (
	"errors"
	"fmt"
)

// ErrValidation marks a missing or malformed tool argument. The dispatcher
// converts it into a tool-level error result, never a process fault.
var ErrValidation = errors.New("invalid tool arguments")

// Typed argument structs, one per tool kind.
type (
	SearchArgs struct {
		Query    string
		Category string
		MaxPrice float64
	}
	OrderStatusArgs struct {
		OrderID string
	}
	PaymentArgs struct {
		OrderID string
		Method  string
	}
	RecommendArgs struct {
		ProductID string
		Criteria  string
	}
	HelpArgs struct {
		Topic string
	}
	CartAddArgs struct {
		ProductID string
		Quantity  int
	}
	ReviewsArgs struct {
		ProductID string
	}
)

// Args is the closed union of per-tool argument structs.
type Args struct {
	Kind        Kind
	Search      SearchArgs
	OrderStatus OrderStatusArgs
	Payment     PaymentArgs
	Recommend   RecommendArgs
	Help        HelpArgs
	CartAdd     CartAddArgs
	Reviews     ReviewsArgs
}

// ParseArgs validates a flat argument map from the classifier against the
// spec and decodes it into the typed form for the given kind.
func ParseArgs(spec Spec, raw map[string]any) (Args, error) {
	args := Args{Kind: spec.Kind}

	for _, p := range spec.Params {
		if p.Required {
			if _, ok := raw[p.Name]; !ok {
				return args, fmt.Errorf("%w: missing required parameter %q", ErrValidation, p.Name)
			}
		}
	}

	var err error
	switch spec.Kind {
	case KindSearchProducts:
		if args.Search.Query, err = stringField(raw, "query"); err != nil {
			return args, err
		}
		if args.Search.Category, err = optionalString(raw, "category"); err != nil {
			return args, err
		}
		if args.Search.MaxPrice, err = optionalNumber(raw, "max_price"); err != nil {
			return args, err
		}

	case KindGetOrderStatus:
		if args.OrderStatus.OrderID, err = stringField(raw, "order_id"); err != nil {
			return args, err
		}

	case KindInitiatePayment:
		if args.Payment.OrderID, err = stringField(raw, "order_id"); err != nil {
			return args, err
		}
		if args.Payment.Method, err = stringField(raw, "payment_method"); err != nil {
			return args, err
		}

	case KindRecommendProducts:
		if args.Recommend.ProductID, err = stringField(raw, "product_id"); err != nil {
			return args, err
		}
		if args.Recommend.Criteria, err = optionalString(raw, "criteria"); err != nil {
			return args, err
		}
		if args.Recommend.Criteria == "" {
			args.Recommend.Criteria = "related"
		}

	case KindGetGeneralHelp:
		if args.Help.Topic, err = stringField(raw, "topic"); err != nil {
			return args, err
		}

	case KindAddToCart:
		if args.CartAdd.ProductID, err = stringField(raw, "product_id"); err != nil {
			return args, err
		}
		if args.CartAdd.Quantity, err = intField(raw, "quantity"); err != nil {
			return args, err
		}
		if args.CartAdd.Quantity <= 0 {
			return args, fmt.Errorf("%w: quantity must be positive", ErrValidation)
		}

	case KindViewCart:
		// no parameters

	case KindGetProductReviews:
		if args.Reviews.ProductID, err = stringField(raw, "product_id"); err != nil {
			return args, err
		}
	}

	return args, nil
}

func stringField(raw map[string]any, key string) (string, error) {
	v, ok := raw[key]
	if !ok {
		return "", fmt.Errorf("%w: missing required parameter %q", ErrValidation, key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("%w: parameter %q must be a non-empty string", ErrValidation, key)
	}
	return s, nil
}

func optionalString(raw map[string]any, key string) (string, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: parameter %q must be a string", ErrValidation, key)
	}
	return s, nil
}

func optionalNumber(raw map[string]any, key string) (float64, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return 0, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%w: parameter %q must be a number", ErrValidation, key)
	}
}

func intField(raw map[string]any, key string) (int, error) {
	v, ok := raw[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing required parameter %q", ErrValidation, key)
	}
	switch n := v.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("%w: parameter %q must be an integer", ErrValidation, key)
		}
		return int(n), nil
	case int:
		return n, nil
	default:
		return 0, fmt.Errorf("%w: parameter %q must be an integer", ErrValidation, key)
	}
}
