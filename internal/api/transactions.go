package api

import (
	"net/http"

	"ecommerce-api/internal/models"

	"github.com/gin-gonic/gin"
)

type createTransactionRequest struct {
	OrderID int64 `json:"orderId" binding:"required"`
	Amount  int64 `json:"amount" binding:"required"`
}

// createTransaction handles POST /api/transactions
func (h *Handler) createTransaction(c *gin.Context) {
	principal, _ := principalFrom(c)

	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request body"})
		return
	}

	txn, err := h.transactions.CreateTransaction(c.Request.Context(), principal, req.OrderID, req.Amount)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}

// listTransactions handles GET /api/transactions
func (h *Handler) listTransactions(c *gin.Context) {
	principal, _ := principalFrom(c)

	txns, err := h.transactions.ListTransactions(c.Request.Context(), principal)
	if err != nil {
		fail(c, err)
		return
	}
	if txns == nil {
		txns = []models.Transaction{}
	}
	c.JSON(http.StatusOK, txns)
}

// getTransaction handles GET /api/transactions/:id
func (h *Handler) getTransaction(c *gin.Context) {
	principal, _ := principalFrom(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	txn, err := h.transactions.GetTransaction(c.Request.Context(), principal, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, txn)
}

// refundTransaction handles POST /api/transactions/:id/refund
func (h *Handler) refundTransaction(c *gin.Context) {
	principal, _ := principalFrom(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	txn, err := h.transactions.RefundTransaction(c.Request.Context(), principal, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, txn)
}
