// Package agent runs the request pipeline: tool selection, dispatch against
// the catalog, and response synthesis.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cortexhub/cortex-concierge/internal/catalog"
	"github.com/cortexhub/cortex-concierge/internal/inference"
	"github.com/cortexhub/cortex-concierge/internal/metrics"
	"github.com/cortexhub/cortex-concierge/internal/session"
	"github.com/cortexhub/cortex-concierge/internal/tools"
)

// ToolError marks the terminal state for a request whose reasoning call
// failed; it is a result value, never a raised fault.
const ToolError = "error"

// Outcome is the terminal state of the tool stage for one request.
type Outcome struct {
	Tool   string
	Result any
}

// errorResult carries tool-level failures inside the result payload, the
// same way the catalog tools report unknown ids.
type errorResult struct {
	Error string `json:"error"`
}

// noticeResult carries informational non-failures, e.g. "no reviews yet".
type noticeResult struct {
	Message string `json:"message"`
}

// cartAddResult confirms an add-to-cart.
type cartAddResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Dispatcher resolves an utterance to exactly one tool and invokes it.
type Dispatcher struct {
	registry *tools.Registry
	store    *catalog.Store
	llm      inference.Client
	logger   zerolog.Logger
}

// NewDispatcher creates a dispatcher. A nil reasoning client means every
// utterance resolves to no_tool_found.
func NewDispatcher(registry *tools.Registry, store *catalog.Store, llm inference.Client, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		store:    store,
		llm:      llm,
		logger:   logger.With().Str("component", "dispatcher").Logger(),
	}
}

const selectionPrompt = `You are an intelligent e-commerce assistant. Your task is to understand the user's request,
select the appropriate tool from the provided list, and extract the necessary parameters to call it.
Available tools: %s
Respond with ONLY a single, valid JSON object in the format: {"tool_name": "...", "parameters": {...}}
If no tool is suitable, respond with: {"tool_name": "no_tool_found", "parameters": {}}`

// toolChoice is the structured response demanded from the reasoning service.
type toolChoice struct {
	ToolName   string         `json:"tool_name"`
	Parameters map[string]any `json:"parameters"`
}

const rephraseMessage = "I am not sure how to help with that. Could you please rephrase your request?"

// Run classifies the utterance and dispatches the chosen tool against this
// session. Exactly one tool runs per request; reasoning failures terminate
// the request in the "error" state without retrying.
func (d *Dispatcher) Run(ctx context.Context, text string, sess *session.Session) Outcome {
	if d.llm == nil {
		metrics.DegradedResponses.WithLabelValues("tool_selection").Inc()
		return Outcome{Tool: tools.NoToolFound, Result: rephraseMessage}
	}

	resp, err := d.llm.Complete(ctx, &inference.Request{
		System:      fmt.Sprintf(selectionPrompt, d.registry.PromptJSON()),
		User:        text,
		Temperature: 0.0,
		MaxTokens:   256,
		JSONMode:    true,
	})
	if err != nil {
		d.logger.Error().Err(err).Msg("Tool selection failed")
		metrics.DegradedResponses.WithLabelValues("tool_selection").Inc()
		return Outcome{Tool: ToolError, Result: errorResult{Error: fmt.Sprintf("An error occurred: %v", err)}}
	}

	var choice toolChoice
	if err := json.Unmarshal([]byte(resp.Content), &choice); err != nil {
		d.logger.Error().Str("content", resp.Content).Msg("Unparseable tool choice")
		metrics.DegradedResponses.WithLabelValues("tool_selection").Inc()
		return Outcome{Tool: ToolError, Result: errorResult{Error: fmt.Sprintf("An error occurred: %v", err)}}
	}

	spec, ok := d.registry.Lookup(choice.ToolName)
	if !ok {
		d.logger.Info().Str("tool", choice.ToolName).Msg("No registered tool fits")
		return Outcome{Tool: tools.NoToolFound, Result: rephraseMessage}
	}
	d.logger.Info().Str("tool", spec.Name).Interface("parameters", choice.Parameters).Msg("Dispatching tool")
	metrics.ToolInvocations.WithLabelValues(spec.Name).Inc()

	return Outcome{Tool: spec.Name, Result: d.Dispatch(spec, choice.Parameters, sess)}
}

// Dispatch validates the arguments and invokes the operation bound to the
// spec's kind. All failures come back inside the result, never as a fault.
func (d *Dispatcher) Dispatch(spec tools.Spec, raw map[string]any, sess *session.Session) any {
	args, err := tools.ParseArgs(spec, raw)
	if err != nil {
		return errorResult{Error: err.Error()}
	}

	switch args.Kind {
	case tools.KindSearchProducts:
		return d.store.Search(args.Search.Query, args.Search.Category, args.Search.MaxPrice)

	case tools.KindGetOrderStatus:
		order, err := d.store.Order(args.OrderStatus.OrderID)
		if err != nil {
			return errorResult{Error: "Order not found."}
		}
		return order

	case tools.KindInitiatePayment:
		res, err := d.store.InitiatePayment(args.Payment.OrderID, args.Payment.Method)
		if err != nil {
			return errorResult{Error: "Cannot initiate payment. Order not found."}
		}
		return res

	case tools.KindRecommendProducts:
		products, err := d.store.Recommend(args.Recommend.ProductID, args.Recommend.Criteria)
		if err != nil {
			return errorResult{Error: "Product not found."}
		}
		return products

	case tools.KindGetGeneralHelp:
		return catalog.Help(args.Help.Topic)

	case tools.KindAddToCart:
		msg, err := sess.AddToCart(d.store, args.CartAdd.ProductID, args.CartAdd.Quantity)
		if err != nil {
			switch {
			case errors.Is(err, catalog.ErrNotFound):
				return errorResult{Error: fmt.Sprintf("Product with ID '%s' not found.", args.CartAdd.ProductID)}
			case errors.Is(err, catalog.ErrInsufficientStock):
				return errorResult{Error: err.Error()}
			default:
				return errorResult{Error: err.Error()}
			}
		}
		return cartAddResult{Status: "success", Message: msg}

	case tools.KindViewCart:
		return sess.ViewCart(d.store)

	case tools.KindGetProductReviews:
		reviews, err := d.store.Reviews(args.Reviews.ProductID)
		if err != nil {
			return errorResult{Error: "Product not found."}
		}
		if len(reviews) == 0 {
			return noticeResult{Message: "No reviews found for this product yet."}
		}
		return reviews

	default:
		return errorResult{Error: fmt.Sprintf("unhandled tool kind %d", args.Kind)}
	}
}
