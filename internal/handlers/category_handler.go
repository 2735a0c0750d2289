package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VivekMakwana7/ecommerce-full-stack/internal/db"
	"github.com/VivekMakwana7/ecommerce-full-stack/internal/models"
	"github.com/VivekMakwana7/ecommerce-full-stack/internal/utils"
)

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ParentID    *uint  `json:"parentId"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ParentID    *uint   `json:"parentId"`
}

func CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.ParentID != nil {
		var parentCategory models.Category

		if err := db.DB.First(&parentCategory, *req.ParentID).Error; err != nil {

			errorMessage := fmt.Sprintf("Parent category not found with ID: %d", *req.ParentID)

			c.JSON(http.StatusNotFound, gin.H{"error": errorMessage})
			return
		}
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
	}

	if err := db.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := db.DB.Preload("Parent").First(&category, category.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve category with parent details"})
		return
	}

	c.JSON(http.StatusCreated, category)
}

func GetCategories(c *gin.Context) {
	var categories []models.Category

	if err := db.DB.Preload("Children").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve categories"})
		return
	}

	c.JSON(http.StatusOK, categories)
}

func GetCategory(c *gin.Context) {
	var categoryID uint
	if _, err := fmt.Sscan(c.Param("id"), &categoryID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	var category models.Category
	if err := db.DB.Preload("Children").Preload("Parent").First(&category, categoryID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Category with ID %d not found", categoryID)})
		return
	}

	c.JSON(http.StatusOK, category)
}

func UpdateCategory(c *gin.Context) {
	var categoryID uint
	if _, err := fmt.Sscan(c.Param("id"), &categoryID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	var category models.Category
	if err := db.DB.First(&category, categoryID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Category with ID %d not found", categoryID)})
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.ParentID != nil {
		var parentCategory models.Category
		if err := db.DB.First(&parentCategory, *req.ParentID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Parent category not found with ID: %d", *req.ParentID)})
			return
		}
		category.ParentID = req.ParentID
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := db.DB.Save(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, category)
}

func DeleteCategory(c *gin.Context) {
	var categoryID uint
	if _, err := fmt.Sscan(c.Param("id"), &categoryID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	var category models.Category
	if err := db.DB.First(&category, categoryID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Category with ID %d not found", categoryID)})
		return
	}

	if err := db.DB.Delete(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}

// GetCategoryProducts lists products across the whole category subtree rooted
// at :id, so a parent category also surfaces its sub-categories' products.
func GetCategoryProducts(c *gin.Context) {
	var categoryID uint
	if _, err := fmt.Sscan(c.Param("id"), &categoryID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	var category models.Category
	if err := db.DB.First(&category, categoryID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Category with ID %d not found", categoryID)})
		return
	}

	categoryIDs, err := utils.GetAllCategoryIDs(categoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var products []models.Product
	err = db.DB.
		Preload("Category").
		Preload("SubCategory").
		Where("category_id IN ? OR sub_category_id IN ?", categoryIDs, categoryIDs).
		Find(&products).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	for i := range products {
		products[i].Image = publicImageURL(products[i].Image)
	}

	c.JSON(http.StatusOK, products)
}
