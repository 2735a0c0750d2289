package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/VivekMakwana7/ecommerce-full-stack/internal/db"
	"github.com/VivekMakwana7/ecommerce-full-stack/internal/handlers"
	"github.com/VivekMakwana7/ecommerce-full-stack/internal/models"
)

func setupCategoryTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	// Initialize an in-memory SQLite database
	testDB, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		panic("failed to connect test database: " + err.Error())
	}

	err = testDB.AutoMigrate(&models.Category{}, &models.Product{})
	if err != nil {
		panic("failed to auto-migrate models: " + err.Error())
	}

	originalDB := db.DB
	db.SetTestDB(testDB)

	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	{
		api.POST("/categories", handlers.CreateCategory)
		api.GET("/categories", handlers.GetCategories)
		api.GET("/categories/:id", handlers.GetCategory)
		api.PUT("/categories/:id", handlers.UpdateCategory)
		api.DELETE("/categories/:id", handlers.DeleteCategory)
		api.GET("/categories/:id/products", handlers.GetCategoryProducts)
	}

	t.Cleanup(func() {
		db.SetTestDB(originalDB)
	})

	return r, testDB
}

func performCategoryRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestCategoryHandlers(t *testing.T) {

	router, testDB := setupCategoryTestRouter(t)

	t.Run("Successfully creates a root category", func(t *testing.T) {
		reqBody := handlers.CreateCategoryRequest{Name: "Clothing", Description: "Apparel"}
		recorder := performCategoryRequest(router, http.MethodPost, "/api/categories", reqBody)

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var created models.Category
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
		assert.Greater(t, created.ID, uint(0))
		assert.Equal(t, "Clothing", created.Name)
		assert.Nil(t, created.ParentID)
	})

	t.Run("Creates a child category under an existing parent", func(t *testing.T) {
		parent := models.Category{Name: "Shoes"}
		testDB.Create(&parent)

		reqBody := handlers.CreateCategoryRequest{Name: "Sneakers", ParentID: &parent.ID}
		recorder := performCategoryRequest(router, http.MethodPost, "/api/categories", reqBody)

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var created models.Category
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
		if assert.NotNil(t, created.ParentID) {
			assert.Equal(t, parent.ID, *created.ParentID)
		}
		if assert.NotNil(t, created.Parent) {
			assert.Equal(t, "Shoes", created.Parent.Name)
		}
	})

	t.Run("Returns 404 for a missing parent", func(t *testing.T) {
		missing := uint(99999)
		reqBody := handlers.CreateCategoryRequest{Name: "Orphan", ParentID: &missing}
		recorder := performCategoryRequest(router, http.MethodPost, "/api/categories", reqBody)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		var response map[string]string
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Contains(t, response["error"], "99999")
	})

	t.Run("Returns 400 when name is missing", func(t *testing.T) {
		recorder := performCategoryRequest(router, http.MethodPost, "/api/categories", map[string]interface{}{"description": "nameless"})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Updates name and reparents a category", func(t *testing.T) {
		parent := models.Category{Name: "Accessories"}
		testDB.Create(&parent)
		category := models.Category{Name: "Belt"}
		testDB.Create(&category)

		newName := "Belts"
		reqBody := handlers.UpdateCategoryRequest{Name: &newName, ParentID: &parent.ID}
		recorder := performCategoryRequest(router, http.MethodPut, fmt.Sprintf("/api/categories/%d", category.ID), reqBody)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var stored models.Category
		testDB.First(&stored, category.ID)
		assert.Equal(t, "Belts", stored.Name)
		if assert.NotNil(t, stored.ParentID) {
			assert.Equal(t, parent.ID, *stored.ParentID)
		}
	})

	t.Run("Deletes a category", func(t *testing.T) {
		category := models.Category{Name: "Temporary"}
		testDB.Create(&category)

		recorder := performCategoryRequest(router, http.MethodDelete, fmt.Sprintf("/api/categories/%d", category.ID), nil)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var count int64
		testDB.Model(&models.Category{}).Where("id = ?", category.ID).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("Lists products across the category subtree", func(t *testing.T) {
		parent := models.Category{Name: "Outdoor"}
		testDB.Create(&parent)
		child := models.Category{Name: "Camping", ParentID: &parent.ID}
		testDB.Create(&child)

		inParent := models.Product{Name: "Tent", Price: 100, Quantity: 1, CategoryID: parent.ID, SubCategoryID: parent.ID}
		testDB.Create(&inParent)
		inChild := models.Product{Name: "Sleeping Bag", Price: 40, Quantity: 1, CategoryID: child.ID, SubCategoryID: child.ID}
		testDB.Create(&inChild)

		recorder := performCategoryRequest(router, http.MethodGet, fmt.Sprintf("/api/categories/%d/products", parent.ID), nil)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var products []models.Product
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &products))
		assert.Len(t, products, 2)
	})
}
