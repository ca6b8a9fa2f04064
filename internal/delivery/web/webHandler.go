package web

import (
	"log/slog"
	"net/http"
	"time"

	"storefront/internal/domain"
	"storefront/internal/usecase"
	"storefront/internal/views"

	"github.com/gin-gonic/gin"
)

const sessionCookie = "session_id"

// WebHandler serves the storefront pages. Every POST publishes an intent
// event on the shopper's session bus and redirects back to the page; the
// page itself is re-rendered from state on the following GET.
type WebHandler struct {
	sessions *usecase.Manager
	log      *slog.Logger
}

func NewWebHandler(sessions *usecase.Manager, log *slog.Logger) *WebHandler {
	return &WebHandler{
		sessions: sessions,
		log:      log,
	}
}

// session resolves the shopper's session from the cookie, creating one on
// first visit.
func (h *WebHandler) session(c *gin.Context) *usecase.Session {
	id, _ := c.Cookie(sessionCookie)
	s := h.sessions.GetOrCreate(c.Request.Context(), id)
	if s.ID != id {
		c.SetCookie(sessionCookie, s.ID, 86400, "/", "", false, true)
	}
	return s
}

// GetPage renders the whole storefront for the shopper's session.
func (h *WebHandler) GetPage(c *gin.Context) {
	s := h.session(c)

	html, err := s.Render()
	if err != nil {
		h.log.Error("failed to render page", "session_id", s.ID, "error", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, string(html))
}

// SelectCard opens a product preview.
func (h *WebHandler) SelectCard(c *gin.Context) {
	s := h.session(c)

	item, ok := s.LookupProduct(c.Param("id"))
	if !ok {
		h.log.Warn("unknown product selected", "product_id", c.Param("id"))
		h.redirect(c)
		return
	}

	s.Emit(views.EventCardSelect, item)
	h.redirect(c)
}

// AddToBasket adds the previewed product.
func (h *WebHandler) AddToBasket(c *gin.Context) {
	s := h.session(c)

	item, ok := s.LookupProduct(c.Param("id"))
	if !ok {
		h.log.Warn("unknown product added", "product_id", c.Param("id"))
		h.redirect(c)
		return
	}

	s.Emit(views.EventCardAdd, item)
	h.redirect(c)
}

// DeleteFromBasket removes a basket line. Deletion goes by id, so an item
// that has since left the catalog can still be removed.
func (h *WebHandler) DeleteFromBasket(c *gin.Context) {
	s := h.session(c)

	item, ok := s.LookupProduct(c.Param("id"))
	if !ok {
		item = domain.Product{ID: c.Param("id")}
	}

	s.Emit(views.EventBasketDelete, item)
	h.redirect(c)
}

func (h *WebHandler) OpenBasket(c *gin.Context) {
	h.session(c).Emit(views.EventBasketOpen, nil)
	h.redirect(c)
}

func (h *WebHandler) OpenOrder(c *gin.Context) {
	h.session(c).Emit(views.EventOrderOpen, nil)
	h.redirect(c)
}

// SetPayment records the chosen payment method as a field change.
func (h *WebHandler) SetPayment(c *gin.Context) {
	s := h.session(c)

	method := c.Param("method")
	s.Emit(views.FieldChangeEvent(domain.FieldPayment), views.FieldChange{
		Field: domain.FieldPayment,
		Value: method,
	})
	h.redirect(c)
}

// SubmitOrder finishes checkout step one. The address arrives with the
// submit, so its field change is published first.
func (h *WebHandler) SubmitOrder(c *gin.Context) {
	s := h.session(c)

	s.Emit(views.FieldChangeEvent(domain.FieldAddress), views.FieldChange{
		Field: domain.FieldAddress,
		Value: c.PostForm("address"),
	})
	s.Emit(views.EventOrderSubmit, nil)
	h.redirect(c)
}

// SubmitContacts finishes checkout step two and triggers the order
// submission.
func (h *WebHandler) SubmitContacts(c *gin.Context) {
	s := h.session(c)

	s.Emit(views.FieldChangeEvent(domain.FieldEmail), views.FieldChange{
		Field: domain.FieldEmail,
		Value: c.PostForm("email"),
	})
	s.Emit(views.FieldChangeEvent(domain.FieldPhone), views.FieldChange{
		Field: domain.FieldPhone,
		Value: c.PostForm("phone"),
	})
	s.Emit(views.EventContactsSubmit, nil)
	h.redirect(c)
}

func (h *WebHandler) CloseModal(c *gin.Context) {
	h.session(c).Emit(views.EventModalClose, nil)
	h.redirect(c)
}

// redirect sends the browser back to the page after an intent post.
func (h *WebHandler) redirect(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

// HealthCheck endpoint.
func (h *WebHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "storefront",
	})
}
