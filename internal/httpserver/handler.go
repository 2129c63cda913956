package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/nikolayk812/hgshop/internal/cart"
	"github.com/nikolayk812/hgshop/internal/domain"
	"github.com/nikolayk812/hgshop/internal/httpserver/middleware"
	"github.com/nikolayk812/hgshop/internal/httpserver/response"
	"github.com/nikolayk812/hgshop/internal/port"
	"github.com/nikolayk812/hgshop/internal/quote"
	"github.com/nikolayk812/hgshop/internal/telemetry"
	"github.com/nikolayk812/hgshop/internal/view"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	flashCookie = "hg_flash"
	flashAdded  = "added"

	addedToCart      = "Added to cart"
	quoteSentNotice  = "Quote request sent. We will be in touch."
	quoteFailedAlert = "We could not send your quote request. Please try again."
)

type Deps struct {
	Catalog     port.Catalog
	Storage     port.CartStorage
	Delivery    port.QuoteDelivery
	QuoteTo     string
	Formatter   domain.MoneyFormatter
	Renderer    *view.Renderer
	Instruments *telemetry.Instruments
	Tracer      trace.Tracer
	Logger      *zap.Logger
}

type ShopHandler struct {
	deps Deps
}

func NewShopHandler(deps Deps) *ShopHandler {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Tracer == nil {
		deps.Tracer = otel.Tracer("github.com/nikolayk812/hgshop/internal/httpserver")
	}
	return &ShopHandler{deps: deps}
}

func (h *ShopHandler) loadStore(ctx context.Context) *cart.Store {
	return cart.Load(ctx, middleware.OwnerIDFromContext(ctx), cart.Deps{
		Catalog:   h.deps.Catalog,
		Storage:   h.deps.Storage,
		Formatter: h.deps.Formatter,
		Logger:    telemetry.WithTrace(ctx, h.deps.Logger),
	})
}

// Index handles GET /
func (h *ShopHandler) Index(w http.ResponseWriter, r *http.Request) {
	store := h.loadStore(r.Context())
	cv := view.NewCartView(store, h.deps.Formatter)
	defer cv.Close()

	h.render(w, r, http.StatusOK, view.PageData{
		Cards: view.NewCatalogView(h.deps.Catalog, h.deps.Formatter).Cards(),
		Cart:  cv.Model(),
		Toast: h.takeFlash(w, r),
	})
}

// QuickView handles GET /products/{id}
func (h *ShopHandler) QuickView(w http.ResponseWriter, r *http.Request) {
	catalogView := view.NewCatalogView(h.deps.Catalog, h.deps.Formatter)

	card, ok := catalogView.Card(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	store := h.loadStore(r.Context())
	cv := view.NewCartView(store, h.deps.Formatter)
	defer cv.Close()

	h.render(w, r, http.StatusOK, view.PageData{
		Cards:     catalogView.Cards(),
		QuickView: &card,
		Cart:      cv.Model(),
	})
}

// AddItem handles POST /cart/items
func (h *ShopHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	ctx := r.Context()
	productID := r.PostForm.Get("product_id")

	catalogView := view.NewCatalogView(h.deps.Catalog, h.deps.Formatter)
	if size := r.PostForm.Get("size"); size != "" {
		catalogView.SelectSize(productID, domain.Size(size))
	}
	if color := r.PostForm.Get("color"); color != "" {
		catalogView.SelectColor(productID, color)
	}

	store := h.loadStore(ctx)
	if err := catalogView.Add(ctx, store, productID); err != nil {
		h.deps.Logger.Error("cart persist failed",
			zap.String("operation", "add"), zap.String("owner_id", store.OwnerID()), zap.Error(err))
	}

	if _, ok := h.deps.Catalog.Product(productID); ok {
		h.record(ctx, "add")
		setFlash(w, flashAdded)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// LineAction handles POST /cart/lines/{key}/{action}
func (h *ShopHandler) LineAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rawKey, err := pathParam(r, "key")
	if err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	key, err := domain.ParseLineKey(rawKey)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	store := h.loadStore(ctx)

	action := chi.URLParam(r, "action")
	switch action {
	case "increment":
		err = store.IncrementLine(ctx, key)
	case "decrement":
		err = store.DecrementLine(ctx, key)
	case "remove":
		err = store.RemoveLine(ctx, key)
	default:
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.deps.Logger.Error("cart persist failed",
			zap.String("operation", action), zap.String("owner_id", store.OwnerID()), zap.Error(err))
	}
	h.record(ctx, action)

	http.Redirect(w, r, "/#cart", http.StatusSeeOther)
}

// SubmitQuote handles POST /quote
func (h *ShopHandler) SubmitQuote(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	ctx, span := h.deps.Tracer.Start(r.Context(), "quote.Submit")
	defer span.End()

	form := quote.Form{
		FullName: r.PostForm.Get("fullName"),
		Email:    r.PostForm.Get("email"),
		Phone:    r.PostForm.Get("phone"),
		Message:  r.PostForm.Get("message"),
	}

	store := h.loadStore(ctx)
	cv := view.NewCartView(store, h.deps.Formatter)
	defer cv.Close()

	composer := quote.NewComposer(h.deps.QuoteTo, h.deps.Delivery, h.deps.Formatter, telemetry.WithTrace(ctx, h.deps.Logger))

	receipt, err := composer.Submit(ctx, form, store)
	span.SetAttributes(
		attribute.String("quote.state", composer.State().String()),
		attribute.Int("cart.item_count", store.ItemCount()),
	)

	page := view.PageData{
		Cards: view.NewCatalogView(h.deps.Catalog, h.deps.Formatter).Cards(),
		Cart:  cv.Model(),
		Form:  view.QuoteForm(form),
	}

	var verr *quote.ValidationError
	switch {
	case errors.As(err, &verr):
		h.recordQuote(ctx, composer.State().String())
		page.Alert = verr.Message
		h.render(w, r, http.StatusUnprocessableEntity, page)
		return
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, "delivery failed")
		h.recordQuote(ctx, "failed")
		h.deps.Logger.Error("quote delivery failed", zap.Error(err))
		page.Alert = quoteFailedAlert
		h.render(w, r, http.StatusBadGateway, page)
		return
	}

	h.recordQuote(ctx, composer.State().String())

	if receipt.RedirectURL != "" {
		http.Redirect(w, r, receipt.RedirectURL, http.StatusSeeOther)
		return
	}

	page.Form = view.QuoteForm{}
	page.Notice = quoteSentNotice
	h.render(w, r, http.StatusOK, page)
}

// Cart handles GET /api/cart
func (h *ShopHandler) Cart(w http.ResponseWriter, r *http.Request) {
	store := h.loadStore(r.Context())
	cv := view.NewCartView(store, h.deps.Formatter)
	defer cv.Close()

	response.JSON(w, http.StatusOK, cv.Model())
}

func (h *ShopHandler) render(w http.ResponseWriter, r *http.Request, status int, data view.PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := h.deps.Renderer.Page(w, data); err != nil {
		h.deps.Logger.Error("page render failed",
			zap.String("path", r.URL.Path), zap.Error(err))
	}
}

func (h *ShopHandler) record(ctx context.Context, operation string) {
	if h.deps.Instruments != nil {
		h.deps.Instruments.CartMutation(ctx, operation)
	}
}

func (h *ShopHandler) recordQuote(ctx context.Context, result string) {
	if h.deps.Instruments != nil {
		h.deps.Instruments.QuoteSubmission(ctx, result)
	}
}

// pathParam returns a decoded route parameter. chi matches on RawPath when the
// request carries one (an escaped "/" in a key), and its params stay escaped.
func pathParam(r *http.Request, name string) (string, error) {
	value := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return value, nil
	}

	decoded, err := url.PathUnescape(value)
	if err != nil {
		return "", fmt.Errorf("url.PathUnescape: %w", err)
	}
	return decoded, nil
}

func setFlash(w http.ResponseWriter, code string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    code,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// takeFlash returns the pending toast text and clears it.
func (h *ShopHandler) takeFlash(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return ""
	}

	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1})

	switch c.Value {
	case flashAdded:
		return addedToCart
	default:
		return ""
	}
}
