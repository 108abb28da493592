// Package pool turns a shopper's "start a pool" click into a messaging deep
// link addressed to the PoolPower team.
//
// The package knows nothing about the surface the shopper uses. A host (the
// HTTP form, the JSON API, the Telegram ops bot) binds the deals it shows with
// Initialize or Replace and, on every click, calls Activate with a Prompter to
// ask for a quantity and a Navigator to open the link.
package pool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"poolpower/internal/domain"
	"poolpower/internal/domain/entity"
	"poolpower/internal/domain/value"
	"poolpower/pkg/contextx"
	"poolpower/pkg/errcodes"
	"poolpower/pkg/logx"
	"poolpower/pkg/urix"
)

const (
	DefaultBrand            = "PoolPower"
	DefaultMessagingBaseURL = "https://wa.me"

	// ValidationMessage is shown for every rejected answer, cancellation included.
	ValidationMessage = "Please enter a valid quantity greater than zero."
)

var (
	ErrInvalidQuantity = domain.NewError(errcodes.InvalidQuantity, ValidationMessage)
	ErrDealNotBound    = domain.NewError(errcodes.DealNotFound, "deal is not on the page")

	errPromptDismissed = errors.New("prompt dismissed")
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Prompter is the blocking dialog of a host.
type Prompter interface {
	// Prompt shows message and waits for free text. ok is false when the
	// shopper dismissed the prompt without answering.
	Prompt(ctx context.Context, message string) (answer string, ok bool)
	Alert(ctx context.Context, message string)
}

// Navigator opens a target in a new browsing context without leaving the
// current page. It must not block on the outcome.
type Navigator interface {
	OpenInNewContext(ctx context.Context, target string)
}

type Handler struct {
	brand            string
	messagingBaseURL string

	mu       sync.RWMutex
	bindings map[value.DealID]entity.ActionableItem
	order    []value.DealID
}

func NewHandler() *Handler {
	return &Handler{
		brand:            DefaultBrand,
		messagingBaseURL: DefaultMessagingBaseURL,
		bindings:         make(map[value.DealID]entity.ActionableItem),
	}
}

func (h *Handler) WithBrand(brand string) *Handler {
	if brand != "" {
		h.brand = brand
	}
	return h
}

func (h *Handler) WithMessagingBaseURL(baseURL string) *Handler {
	if baseURL != "" {
		h.messagingBaseURL = strings.TrimRight(baseURL, "/")
	}
	return h
}

// Initialize binds every item not bound yet and returns how many were added.
// Items whose deal id is already bound are skipped, so calling it again for
// the same page never makes one click prompt twice.
func (h *Handler) Initialize(ctx context.Context, items []entity.ActionableItem) int {
	h.mu.Lock()
	added := h.bindLocked(items)
	total := len(h.order)
	h.mu.Unlock()

	logger(ctx).Info("pool handler loaded",
		slog.Int(logx.FieldCount, added),
		slog.Int("bound", total),
	)

	return added
}

// Replace drops all bindings and binds items, as when the page is rendered
// again with a fresh catalog.
func (h *Handler) Replace(ctx context.Context, items []entity.ActionableItem) int {
	h.mu.Lock()
	h.bindings = make(map[value.DealID]entity.ActionableItem, len(items))
	h.order = nil
	added := h.bindLocked(items)
	h.mu.Unlock()

	logger(ctx).Info("pool handler rebound", slog.Int(logx.FieldCount, added))

	return added
}

func (h *Handler) bindLocked(items []entity.ActionableItem) int {
	added := 0

	for _, item := range items {
		if _, ok := h.bindings[item.DealID]; ok {
			continue
		}

		h.bindings[item.DealID] = item
		h.order = append(h.order, item.DealID)
		added++
	}

	return added
}

// Item returns the bound item for id.
func (h *Handler) Item(id value.DealID) (entity.ActionableItem, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	item, ok := h.bindings[id]
	return item, ok
}

// Items returns the bound items in binding order.
func (h *Handler) Items() []entity.ActionableItem {
	h.mu.RLock()
	defer h.mu.RUnlock()

	items := make([]entity.ActionableItem, 0, len(h.order))
	for _, id := range h.order {
		items = append(items, h.bindings[id])
	}

	return items
}

// PromptMessage is the question asked before a pool is started for item.
func (h *Handler) PromptMessage(item entity.ActionableItem) string {
	return fmt.Sprintf("How many units of \"%s\" (%s) do you need?\n\nEnter quantity:", item.ItemName, item.DealID)
}

// Activate runs one click on the element bound to id: it asks p for a
// quantity, rejects anything that is not a positive integer with a single
// alert, and otherwise opens the messaging link through n. The link is
// returned as well. A rejected activation changes no state.
func (h *Handler) Activate(ctx context.Context, id value.DealID, p Prompter, n Navigator) (string, error) {
	item, ok := h.Item(id)
	if !ok {
		return "", fmt.Errorf("deal %s: %w", id, ErrDealNotBound)
	}

	answer, ok := p.Prompt(ctx, h.PromptMessage(item))
	if !ok {
		p.Alert(ctx, ValidationMessage)
		return "", domain.WrapError(errPromptDismissed, errcodes.InvalidQuantity, ValidationMessage)
	}

	quantity, err := value.ParseQuantity(answer)
	if err != nil {
		p.Alert(ctx, ValidationMessage)
		return "", domain.WrapError(err, errcodes.InvalidQuantity, ValidationMessage)
	}

	link := h.Link(entity.NewPoolRequest(item, quantity))

	n.OpenInNewContext(ctx, link)

	return link, nil
}

// Message is the text pre-filled in the messaging app.
func (h *Handler) Message(req entity.PoolRequest) string {
	return fmt.Sprintf(
		"Hi %s, I want to join/create a pool for %s (%s). I need %d units.",
		h.brand,
		req.ItemName,
		req.DealID,
		req.Quantity.Int64(),
	)
}

// Link is <base>/<contact>?text=<escaped message>. The contact number is used
// as given.
func (h *Handler) Link(req entity.PoolRequest) string {
	return h.messagingBaseURL + "/" + req.ContactNumber.String() + "?text=" + urix.EscapeComponent(h.Message(req))
}
