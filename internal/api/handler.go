package api

import (
	"net/http"
	"strconv"
	"time"

	"ecommerce-api/internal/auth"
	"ecommerce-api/internal/service"
	"ecommerce-api/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	tokens       *auth.TokenManager
	clients      *service.ClientService
	products     *service.ProductService
	orders       *service.OrderService
	transactions *service.TransactionService
	comments     *service.CommentService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	tokens *auth.TokenManager,
	clients *service.ClientService,
	products *service.ProductService,
	orders *service.OrderService,
	transactions *service.TransactionService,
	comments *service.CommentService,
) *Handler {
	return &Handler{
		tokens:       tokens,
		clients:      clients,
		products:     products,
		orders:       orders,
		transactions: transactions,
		comments:     comments,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	authed := h.authRequired()
	admin := h.adminRequired()

	api.POST("/clients", h.registerClient)
	api.POST("/clients/login", h.loginClient)
	api.GET("/clients", authed, admin, h.listClients)
	api.GET("/clients/:id", authed, h.getClient)
	api.PUT("/clients/:id", authed, h.updateClient)
	api.DELETE("/clients/:id", authed, admin, h.deleteClient)

	api.POST("/products", authed, admin, h.createProduct)
	api.PUT("/products/:id", authed, admin, h.updateProduct)
	api.DELETE("/products/:id", authed, admin, h.deleteProduct)
	api.GET("/products", h.listProducts)
	api.GET("/products/:id", h.getProduct)
	api.GET("/products/:id/comments", h.listComments)

	api.POST("/orders", authed, h.placeOrder)
	api.GET("/orders", authed, h.listOrders)
	api.GET("/orders/:id", authed, h.getOrder)
	api.PUT("/orders/:id", authed, admin, h.setOrderStatus)

	api.POST("/transactions", authed, h.createTransaction)
	api.GET("/transactions", authed, h.listTransactions)
	api.GET("/transactions/:id", authed, h.getTransaction)
	api.POST("/transactions/:id/refund", authed, admin, h.refundTransaction)

	api.POST("/comments", authed, h.createComment)
	api.PUT("/comments/:id/approve", authed, admin, h.approveComment)
	api.DELETE("/comments/:id", authed, admin, h.deleteComment)
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid id"})
		return 0, false
	}
	return id, true
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
