package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	config "github.com/VivekMakwana7/ecommerce-full-stack/configs"
	"github.com/VivekMakwana7/ecommerce-full-stack/internal/db"
	"github.com/VivekMakwana7/ecommerce-full-stack/internal/models"
)

type CreateProductRequest struct {
	Name          string   `form:"name" binding:"required"`
	Description   string   `form:"description"`
	Price         float64  `form:"price" binding:"required,gt=0"`
	Quantity      int      `form:"quantity" binding:"min=0"`
	Sizes         []string `form:"size"`
	Colors        []string `form:"color"`
	CategoryID    uint     `form:"categoryId" binding:"required"`
	SubCategoryID uint     `form:"subCategoryId" binding:"required"`
}

type UpdateProductRequest struct {
	Name          *string  `form:"name"`
	Description   *string  `form:"description"`
	Price         *float64 `form:"price"`
	Quantity      *int     `form:"quantity"`
	Sizes         []string `form:"size"`
	Colors        []string `form:"color"`
	CategoryID    *uint    `form:"categoryId"`
	SubCategoryID *uint    `form:"subCategoryId"`
}

func CreateProduct(c *gin.Context) {
	var req CreateProductRequest

	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var category models.Category
	if err := db.DB.First(&category, req.CategoryID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Category not found with ID: %d", req.CategoryID)})
		return
	}

	var subCategory models.Category
	if err := db.DB.First(&subCategory, req.SubCategoryID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("SubCategory not found with ID: %d", req.SubCategoryID)})
		return
	}

	imagePath, err := saveUploadedImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Quantity:      req.Quantity,
		Sizes:         req.Sizes,
		Colors:        req.Colors,
		Image:         imagePath,
		CategoryID:    req.CategoryID,
		SubCategoryID: req.SubCategoryID,
	}

	if err := db.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := db.DB.Preload("Category").Preload("SubCategory").First(&product, product.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve product with category details"})
		return
	}

	product.Image = publicImageURL(product.Image)

	c.JSON(http.StatusCreated, product)
}

func GetProducts(c *gin.Context) {
	var products []models.Product

	if err := db.DB.Preload("Category").Preload("SubCategory").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve products"})
		return
	}

	for i := range products {
		products[i].Image = publicImageURL(products[i].Image)
	}

	c.JSON(http.StatusOK, products)
}

func GetProduct(c *gin.Context) {
	var productID uint
	if _, err := fmt.Sscan(c.Param("id"), &productID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var product models.Product
	if err := db.DB.Preload("Category").Preload("SubCategory").First(&product, productID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Product with ID %d not found", productID)})
		return
	}

	product.Image = publicImageURL(product.Image)

	c.JSON(http.StatusOK, product)
}

func UpdateProduct(c *gin.Context) {
	var productID uint
	if _, err := fmt.Sscan(c.Param("id"), &productID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var product models.Product
	if err := db.DB.First(&product, productID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Product with ID %d not found", productID)})
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.CategoryID != nil {
		var category models.Category
		if err := db.DB.First(&category, *req.CategoryID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Category not found with ID: %d", *req.CategoryID)})
			return
		}
		product.CategoryID = *req.CategoryID
	}

	if req.SubCategoryID != nil {
		var subCategory models.Category
		if err := db.DB.First(&subCategory, *req.SubCategoryID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("SubCategory not found with ID: %d", *req.SubCategoryID)})
			return
		}
		product.SubCategoryID = *req.SubCategoryID
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}
	if len(req.Sizes) > 0 {
		product.Sizes = req.Sizes
	}
	if len(req.Colors) > 0 {
		product.Colors = req.Colors
	}

	if imagePath, err := saveUploadedImage(c); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	} else if imagePath != "" {
		product.Image = imagePath
	}

	if err := db.DB.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	product.Image = publicImageURL(product.Image)

	c.JSON(http.StatusOK, product)
}

func DeleteProduct(c *gin.Context) {
	var productID uint
	if _, err := fmt.Sscan(c.Param("id"), &productID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var product models.Product
	if err := db.DB.First(&product, productID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Product with ID %d not found", productID)})
		return
	}

	if err := db.DB.Delete(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

// saveUploadedImage stores the optional multipart "image" file under the
// configured upload directory with a random filename. Returns the stored
// relative path, or "" when the request carries no image.
func saveUploadedImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}

	cfg := config.LoadAppConfig()

	filename := uuid.NewString() + filepath.Ext(file.Filename)
	dst := filepath.Join(cfg.UploadDir, filename)

	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", fmt.Errorf("failed to save uploaded image: %w", err)
	}

	return dst, nil
}

// publicImageURL rewrites a stored image path into an absolute link under the
// configured public base URL. Stored paths may carry OS-specific separators.
func publicImageURL(image string) string {
	if image == "" {
		return ""
	}

	clean := strings.ReplaceAll(image, `\`, "/")
	parts := strings.Split(clean, "/")
	filename := parts[len(parts)-1]

	cfg := config.LoadAppConfig()
	return cfg.PublicBaseURL + "/uploads/" + filename
}
