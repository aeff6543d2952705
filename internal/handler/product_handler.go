package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/paras978/UASTWL-Backend/internal/model"
	"github.com/paras978/UASTWL-Backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ProductHandler handles product CRUD requests
type ProductHandler struct {
	service service.ProductService
	logger  *logrus.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(s service.ProductService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{service: s, logger: logger}
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req model.ProductForm
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Incomplete product information"})
		return
	}

	// The image part is optional
	image, _ := c.FormFile("Image")

	product, err := h.service.Create(c.Request.Context(), req, image)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateProduct) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.WithError(err).Error("Error saving product")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save the product"})
		return
	}

	resp := gin.H{"message": "Product uploaded successfully"}
	if product.Path != nil {
		// Presence of the key tells clients an image was stored
		resp["path"] = *product.Path
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.service.List(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Error listing products")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *ProductHandler) GetByID(c *gin.Context) {
	rawID := c.Param("id")

	// A malformed id and an absent one get the same answer; clients only
	// asked whether the product exists.
	productID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Product With " + rawID + " Not Found"})
		return
	}

	product, err := h.service.GetByID(c.Request.Context(), productID)
	if err != nil {
		if !errors.Is(err, service.ErrProductNotFound) {
			h.logger.WithError(err).Error("Error fetching product")
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "Product With " + rawID + " Not Found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (h *ProductHandler) Update(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	var req model.ProductForm
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Incomplete product information"})
		return
	}

	image, _ := c.FormFile("productImage")

	product, err := h.service.Update(c.Request.Context(), productID, req, image)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		h.logger.WithError(err).Error("Error updating product")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update the product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), productID); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		h.logger.WithError(err).Error("Error deleting product")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete the product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// RegisterProductRoutes registers product routes under the API group
func (h *ProductHandler) RegisterProductRoutes(api *gin.RouterGroup) {
	productGroup := api.Group("/products")
	{
		productGroup.POST("", h.Create)
		productGroup.GET("", h.List)
		productGroup.GET("/:id", h.GetByID)
		productGroup.PUT("/:id", h.Update)
		productGroup.DELETE("/:id", h.Delete)
	}
}
