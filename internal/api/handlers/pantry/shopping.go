package pantry

import (
	"net/http"

	corepantry "smart-chef/internal/core/pantry"
	"smart-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// AddShoppingItemRequest 手動加入購物清單
type AddShoppingItemRequest struct {
	Store   string  `json:"store"`
	Product string  `json:"product" binding:"required"`
	Qty     float64 `json:"qty"`
	Note    string  `json:"note"`
}

// HandleShoppingList 列出購物清單
func (h *Handler) HandleShoppingList(c *gin.Context) {
	profile := profileParam(c)

	items, err := h.store.LoadShoppingList(profile)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": profile,
		"items":   items,
	})
}

// HandleAddShoppingItem 手動追加購物清單項目
func (h *Handler) HandleAddShoppingItem(c *gin.Context) {
	profile := profileParam(c)

	var req AddShoppingItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: err.Error(),
		})
		return
	}
	if req.Qty <= 0 {
		req.Qty = 1
	}

	items, err := h.store.LoadShoppingList(profile)
	if err != nil {
		writeError(c, err)
		return
	}
	item := corepantry.ShoppingListItem{
		Store:   req.Store,
		Product: req.Product,
		Qty:     req.Qty,
		Note:    req.Note,
	}
	items = append(items, item)

	if err := h.store.SaveShoppingList(profile, items); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}
