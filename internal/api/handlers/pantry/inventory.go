package pantry

import (
	"net/http"
	"time"

	corepantry "smart-chef/internal/core/pantry"
	"smart-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InventoryItemView 庫存品項加上推導欄位
type InventoryItemView struct {
	corepantry.InventoryItem
	DaysLeft *int              `json:"days_left,omitempty"`
	Status   corepantry.Status `json:"status"`
}

// AddInventoryRequest 新增庫存品項
type AddInventoryRequest struct {
	Name        string     `json:"name" binding:"required"`
	Category    string     `json:"category"`
	Subcategory string     `json:"subcategory"`
	Location    string     `json:"location"`
	Quantity    float64    `json:"quantity"`
	Unit        string     `json:"unit"`
	PurchasedOn *time.Time `json:"purchased_on,omitempty"`
	ExpiresOn   *time.Time `json:"expires_on,omitempty"`
	Barcode     string     `json:"barcode"`
	Notes       string     `json:"notes"`
}

// HandleListInventory 列出庫存，附剩餘天數與狀態
func (h *Handler) HandleListInventory(c *gin.Context) {
	profile := profileParam(c)

	items, err := h.store.LoadInventory(profile)
	if err != nil {
		writeError(c, err)
		return
	}

	now := time.Now()
	views := make([]InventoryItemView, 0, len(items))
	for _, it := range items {
		view := InventoryItemView{
			InventoryItem: it,
			Status:        it.StatusOn(now),
		}
		if days, ok := it.DaysLeft(now); ok {
			view.DaysLeft = &days
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": profile,
		"items":   views,
	})
}

// HandleAddInventory 新增庫存品項並覆寫庫存表
func (h *Handler) HandleAddInventory(c *gin.Context) {
	reqID := requestID(c)
	profile := profileParam(c)

	var req AddInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: err.Error(),
		})
		return
	}
	if req.Quantity < 0 {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "quantity must not be negative",
		})
		return
	}

	items, err := h.store.LoadInventory(profile)
	if err != nil {
		writeError(c, err)
		return
	}

	item := corepantry.InventoryItem{
		ID:          common.GenerateUUID(),
		Name:        req.Name,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Location:    req.Location,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		PurchasedOn: req.PurchasedOn,
		ExpiresOn:   req.ExpiresOn,
		Barcode:     req.Barcode,
		Notes:       req.Notes,
	}
	items = append(items, item)

	if err := h.store.SaveInventory(profile, items); err != nil {
		writeError(c, err)
		return
	}

	common.LogInfo("庫存品項已新增",
		zap.String("request_id", reqID),
		zap.String("profile", profile),
		zap.String("name", item.Name),
	)

	c.JSON(http.StatusCreated, item)
}

// HandleReplaceInventory 整表覆寫庫存（對應前端表格編輯後存檔）
func (h *Handler) HandleReplaceInventory(c *gin.Context) {
	profile := profileParam(c)

	var items []corepantry.InventoryItem
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: err.Error(),
		})
		return
	}
	for i := range items {
		if items[i].Quantity < 0 {
			c.JSON(http.StatusBadRequest, common.ErrorResponse{
				Code:    common.ErrCodeInvalidRequest,
				Message: "quantity must not be negative",
			})
			return
		}
		if items[i].ID == "" {
			items[i].ID = uuid.New().String()
		}
	}

	if err := h.store.SaveInventory(profile, items); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": profile,
		"count":   len(items),
	})
}
