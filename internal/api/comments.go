package api

import (
	"net/http"

	"ecommerce-api/internal/models"

	"github.com/gin-gonic/gin"
)

type createCommentRequest struct {
	Product int64  `json:"product" binding:"required"`
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment" binding:"required"`
}

// createComment handles POST /api/comments
func (h *Handler) createComment(c *gin.Context) {
	principal, _ := principalFrom(c)

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request body"})
		return
	}

	comment, err := h.comments.CreateComment(c.Request.Context(), principal, req.Product, req.Rating, req.Comment)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// listComments handles GET /api/products/:id/comments
func (h *Handler) listComments(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}

	comments, err := h.comments.ListComments(c.Request.Context(), productID)
	if err != nil {
		fail(c, err)
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	c.JSON(http.StatusOK, comments)
}

// approveComment handles PUT /api/comments/:id/approve
func (h *Handler) approveComment(c *gin.Context) {
	principal, _ := principalFrom(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	comment, err := h.comments.ApproveComment(c.Request.Context(), principal, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// deleteComment handles DELETE /api/comments/:id
func (h *Handler) deleteComment(c *gin.Context) {
	principal, _ := principalFrom(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.comments.DeleteComment(c.Request.Context(), principal, id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Comment deleted"})
}
