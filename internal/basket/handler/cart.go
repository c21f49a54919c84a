package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"basket-service/internal/basket/model"
	"basket-service/internal/basket/service"
	"basket-service/internal/middleware"
)

type resolveRequest struct {
	Query string `json:"query"`
}

type selectRequest struct {
	Choice string `json:"choice"`
}

type addItemRequest struct {
	Product  string           `json:"product"`
	Quantity *decimal.Decimal `json:"quantity,omitempty"` // по умолчанию 1
}

type cartResponse struct {
	Lines []model.CartLine `json:"lines"`
	Items decimal.Decimal  `json:"items"` // сумма количеств
}

// remember сохраняет ответ резолвера, если по нему ещё нужно выбирать.
func (h *Handler) remember(user string, res model.Resolution) {
	switch res.Kind {
	case model.AmbiguousGroups, model.AmbiguousVariants:
		h.sessions.SetPending(user, res)
	default:
		h.sessions.ClearPending(user)
	}
}

// Resolve: POST /resolve {query}.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "%v", err)
		return
	}
	res := service.Resolve(h.catalog.Snapshot(), req.Query, h.cfg.SuggestLimit)
	h.remember(middleware.GetUserID(r), res)
	h.log(r).Debug().Str("query", req.Query).Str("kind", string(res.Kind)).Msg("resolve")
	writeJSON(w, http.StatusOK, res)
}

// Select: POST /resolve/select {choice}: выбор из последнего неоднозначного ответа.
func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "%v", err)
		return
	}
	user := middleware.GetUserID(r)
	pending, ok := h.sessions.Pending(user)
	if !ok {
		h.fail(w, r, service.ErrNoPendingSelection)
		return
	}
	res, err := service.Select(h.catalog.Snapshot(), pending, req.Choice)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.remember(user, res)
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) Cart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cartOf(middleware.GetUserID(r)))
}

func (h *Handler) cartOf(user string) cartResponse {
	lines := h.sessions.Lines(user)
	items := decimal.Zero
	for _, l := range lines {
		items = items.Add(l.Quantity)
	}
	if lines == nil {
		lines = []model.CartLine{}
	}
	return cartResponse{Lines: lines, Items: items}
}

// AddItem: POST /cart/items {product, quantity}. product должен точно совпадать с наименованием в каталоге.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "%v", err)
		return
	}
	req.Product = strings.TrimSpace(req.Product)
	qty := decimal.NewFromInt(1)
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	if !qty.IsPositive() {
		h.fail(w, r, fmt.Errorf("%w: %s", service.ErrInvalidQuantity, qty))
		return
	}
	if !h.catalog.Snapshot().HasProduct(req.Product) {
		h.fail(w, r, &service.UnknownProductsError{Names: []string{req.Product}})
		return
	}
	user := middleware.GetUserID(r)
	total := h.sessions.Add(user, req.Product, qty)
	h.log(r).Debug().Str("product", req.Product).Str("quantity", total.String()).Msg("cart add")
	writeJSON(w, http.StatusOK, model.CartLine{Name: req.Product, Quantity: total})
}

// RemoveItem: DELETE /cart/items/{product}.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	product, err := pathParam(r, "product")
	if err != nil {
		badRequest(w, "bad product: %v", err)
		return
	}
	if !h.sessions.Remove(middleware.GetUserID(r), product) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not in cart: " + product})
		return
	}
	writeJSON(w, http.StatusOK, h.cartOf(middleware.GetUserID(r)))
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(middleware.GetUserID(r))
	w.WriteHeader(http.StatusNoContent)
}

// EndSession: POST /session/end: корзина и незавершённый выбор выбрасываются.
func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	n := h.sessions.End(middleware.GetUserID(r))
	writeJSON(w, http.StatusOK, map[string]decimal.Decimal{"items": n})
}

// Quote: GET /cart/quote: вся корзина в каждом магазине по отдельности.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	q, err := service.QuoteCart(h.sessions.Lines(middleware.GetUserID(r)), h.catalog.Snapshot().Prices())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// Optimize: GET /cart/optimize?max_stores=K.
func (h *Handler) Optimize(w http.ResponseWriter, r *http.Request) {
	k, err := atoi(r.URL.Query().Get("max_stores"), h.cfg.MaxStores)
	if err != nil {
		badRequest(w, "max_stores must be an integer")
		return
	}
	lines := h.sessions.Lines(middleware.GetUserID(r))
	plan, err := h.opt.Optimize(r.Context(), lines, h.catalog.Snapshot().Prices(), k)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.log(r).Info().
		Int("lines", len(lines)).
		Int("cap", k).
		Strs("stores", plan.UsedStores).
		Str("total", plan.Total.String()).
		Msg("cart optimized")
	writeJSON(w, http.StatusOK, plan)
}
