package api

import (
	"net/http"

	"ecommerce-api/internal/models"
	"ecommerce-api/internal/service"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Name            string         `json:"name" binding:"required"`
	Email           string         `json:"email" binding:"required,email"`
	Password        string         `json:"password" binding:"required"`
	ShippingAddress models.Address `json:"shipping_address"`
	BillingAddress  models.Address `json:"billing_address"`
	Role            string         `json:"role"`
}

// registerClient handles POST /api/clients
func (h *Handler) registerClient(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request body"})
		return
	}

	token, err := h.clients.Register(c.Request.Context(), service.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		Role:            req.Role,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// loginClient handles POST /api/clients/login
func (h *Handler) loginClient(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request body"})
		return
	}

	token, err := h.clients.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// listClients handles GET /api/clients
func (h *Handler) listClients(c *gin.Context) {
	principal, _ := principalFrom(c)

	clients, err := h.clients.ListClients(c.Request.Context(), principal)
	if err != nil {
		fail(c, err)
		return
	}
	if clients == nil {
		clients = []models.Client{}
	}
	c.JSON(http.StatusOK, clients)
}

// getClient handles GET /api/clients/:id
func (h *Handler) getClient(c *gin.Context) {
	principal, _ := principalFrom(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	client, err := h.clients.GetClient(c.Request.Context(), principal, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

type updateClientRequest struct {
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	ShippingAddress *models.Address `json:"shipping_address"`
	BillingAddress  *models.Address `json:"billing_address"`
}

// updateClient handles PUT /api/clients/:id
func (h *Handler) updateClient(c *gin.Context) {
	principal, _ := principalFrom(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req updateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request body"})
		return
	}

	client, err := h.clients.UpdateClient(c.Request.Context(), principal, id, service.UpdateInput{
		Name:            req.Name,
		Email:           req.Email,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// deleteClient handles DELETE /api/clients/:id
func (h *Handler) deleteClient(c *gin.Context) {
	principal, _ := principalFrom(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.clients.DeleteClient(c.Request.Context(), principal, id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Client removed"})
}
