package handler

import (
	"errors"
	"net/http"

	"github.com/paras978/UASTWL-Backend/internal/middleware"
	"github.com/paras978/UASTWL-Backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles registration, login and account requests
type AuthHandler struct {
	service service.AuthService
	logger  *logrus.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{service: s, logger: logger}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	_, err := h.service.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.WithError(err).Error("Error registering user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		h.logger.WithError(err).Error("Error logging in")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"account": user,
	})
}

// Me returns the account behind the presented bearer token
func (h *AuthHandler) Me(c *gin.Context) {
	userIDVal, exists := c.Get(middleware.AuthUserKey)
	userID, ok := userIDVal.(int)
	if !exists || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	user, err := h.service.GetAccount(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account no longer exists"})
			return
		}
		h.logger.WithError(err).Error("Error fetching account")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": user})
}

// ListAccounts returns every registered account (admin only)
func (h *AuthHandler) ListAccounts(c *gin.Context) {
	users, err := h.service.ListAccounts(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Error listing accounts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": users})
}

// RegisterAuthRoutes registers the auth routes. Register and login live at
// the root; the introspection and admin routes sit under /api behind the
// bearer-token middleware.
func (h *AuthHandler) RegisterAuthRoutes(root, api *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	root.POST("/register", h.Register)
	root.POST("/login", h.Login)

	api.GET("/me", authMW, h.Me)

	adminGroup := api.Group("/admin")
	adminGroup.Use(authMW, adminMW)
	{
		adminGroup.GET("/accounts", h.ListAccounts)
	}
}
