package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-billing/display"
	"github.com/yeremiapane/restaurant-billing/services"
	"github.com/yeremiapane/restaurant-billing/utils"
)

type MenuController struct {
	Catalog *services.MenuCatalog
	Hub     services.Broadcaster
}

func NewMenuController(catalog *services.MenuCatalog, hub services.Broadcaster) *MenuController {
	return &MenuController{Catalog: catalog, Hub: hub}
}

// GetMenu -> daftar item sesuai urutan penyimpanan
func (mc *MenuController) GetMenu(c *gin.Context) {
	items, err := mc.Catalog.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

// AddMenuItem (admin)
func (mc *MenuController) AddMenuItem(c *gin.Context) {
	var req struct {
		ItemName string          `json:"item_name"`
		Category string          `json:"category"`
		Price    decimal.Decimal `json:"price"`
		GST      decimal.Decimal `json:"gst"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := mc.Catalog.Add(c.Request.Context(), req.ItemName, req.Category, req.Price, req.GST)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	mc.broadcastMenu(c)
	utils.RespondJSON(c, http.StatusCreated, "Item added", item)
}

// DeleteMenuItem (admin) -> hapus berdasarkan nama, case-insensitive
func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	item, err := mc.Catalog.Remove(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	mc.broadcastMenu(c)
	utils.RespondJSON(c, http.StatusOK, "Removed: "+item.ItemName, item)
}

func (mc *MenuController) broadcastMenu(c *gin.Context) {
	if mc.Hub == nil {
		return
	}
	items, err := mc.Catalog.List(c.Request.Context())
	if err != nil {
		utils.ErrorLogger.Warnf("Menu broadcast skipped: %v", err)
		return
	}
	mc.Hub.Broadcast(display.EventMenuUpdate, items)
}
