package api

import (
	"net/http"

	"ecommerce-api/internal/models"

	"github.com/gin-gonic/gin"
)

type placeOrderRequest struct {
	Products []orderLineRequest `json:"products" binding:"required,min=1,dive"`
}

type orderLineRequest struct {
	Product  int64 `json:"product" binding:"required"`
	Quantity int   `json:"quantity" binding:"required"`
}

// placeOrder handles POST /api/orders
func (h *Handler) placeOrder(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Authorization denied"})
		return
	}

	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request body"})
		return
	}

	lines := make([]models.OrderLine, 0, len(req.Products))
	for _, p := range req.Products {
		lines = append(lines, models.OrderLine{ProductID: p.Product, Quantity: p.Quantity})
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), principal, lines)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// listOrders handles GET /api/orders
func (h *Handler) listOrders(c *gin.Context) {
	principal, _ := principalFrom(c)

	orders, err := h.orders.ListOrders(c.Request.Context(), principal)
	if err != nil {
		fail(c, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

// getOrder handles GET /api/orders/:id
func (h *Handler) getOrder(c *gin.Context) {
	principal, _ := principalFrom(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), principal, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type setOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// setOrderStatus handles PUT /api/orders/:id
func (h *Handler) setOrderStatus(c *gin.Context) {
	principal, _ := principalFrom(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req setOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request body"})
		return
	}

	order, err := h.orders.SetOrderStatus(c.Request.Context(), principal, id, req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
