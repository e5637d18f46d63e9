package controllers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-billing/display"
	"github.com/yeremiapane/restaurant-billing/services"
	"github.com/yeremiapane/restaurant-billing/utils"
)

// CartSession membungkus cart milik terminal kasir. Semua akses ke cart
// melewati mutex ini.
type CartSession struct {
	mu   sync.Mutex
	cart *services.Cart
}

func NewCartSession() *CartSession {
	return &CartSession{cart: services.NewCart()}
}

// With menjalankan fn dengan cart terkunci
func (s *CartSession) With(fn func(cart *services.Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.cart)
}

func (s *CartSession) Snapshot() services.CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Snapshot()
}

type CartController struct {
	Session *CartSession
	Catalog services.ItemFinder
	Hub     services.Broadcaster
}

func NewCartController(session *CartSession, catalog services.ItemFinder, hub services.Broadcaster) *CartController {
	return &CartController{Session: session, Catalog: catalog, Hub: hub}
}

func (cc *CartController) GetCart(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Current cart", cc.Session.Snapshot())
}

// AddLine -> tambah item ke cart dengan harga & GST saat ini
func (cc *CartController) AddLine(c *gin.Context) {
	var req struct {
		ItemName string `json:"item_name"`
		Quantity int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var view services.CartView
	err := cc.Session.With(func(cart *services.Cart) error {
		if _, err := cart.AddLine(c.Request.Context(), cc.Catalog, req.ItemName, req.Quantity); err != nil {
			return err
		}
		view = cart.Snapshot()
		return nil
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	cc.broadcast(view)
	utils.RespondJSON(c, http.StatusOK, "Item added to cart", view)
}

// UpdateOptions -> mode, metode bayar, dan teks diskon. Field kosong diabaikan.
func (cc *CartController) UpdateOptions(c *gin.Context) {
	var req struct {
		Mode          *string `json:"mode"`
		PaymentMethod *string `json:"payment_method"`
		Discount      *string `json:"discount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var view services.CartView
	err := cc.Session.With(func(cart *services.Cart) error {
		if req.Mode != nil {
			if err := cart.SetMode(*req.Mode); err != nil {
				return err
			}
		}
		if req.PaymentMethod != nil {
			if err := cart.SetPaymentMethod(*req.PaymentMethod); err != nil {
				return err
			}
		}
		if req.Discount != nil {
			cart.SetDiscountText(*req.Discount)
		}
		view = cart.Snapshot()
		return nil
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	cc.broadcast(view)
	utils.RespondJSON(c, http.StatusOK, "Cart updated", view)
}

func (cc *CartController) ClearCart(c *gin.Context) {
	var view services.CartView
	_ = cc.Session.With(func(cart *services.Cart) error {
		cart.Clear()
		view = cart.Snapshot()
		return nil
	})

	cc.broadcast(view)
	utils.RespondJSON(c, http.StatusOK, "Cart cleared", view)
}

func (cc *CartController) broadcast(view services.CartView) {
	if cc.Hub != nil {
		cc.Hub.Broadcast(display.EventCartUpdate, view)
	}
}
