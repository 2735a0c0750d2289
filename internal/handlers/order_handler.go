package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VivekMakwana7/ecommerce-full-stack/internal/auth"
	"github.com/VivekMakwana7/ecommerce-full-stack/internal/db"
	"github.com/VivekMakwana7/ecommerce-full-stack/internal/models"
	"github.com/VivekMakwana7/ecommerce-full-stack/internal/notifier"
	"github.com/VivekMakwana7/ecommerce-full-stack/internal/orders"
)

type CreateOrderRequest struct {
	Items           []orders.ItemRequest `json:"items" binding:"required,dive"`
	ShippingAddress string               `json:"shippingAddress" binding:"required"`
}

type UpdatePaymentRequest struct {
	OrderID       uint   `json:"orderId" binding:"required"`
	TransactionID string `json:"transactionId" binding:"required"`
	Status        string `json:"status" binding:"required,oneof=success failure"`
}

func CreateOrder(c *gin.Context) {

	user := auth.CurrentUser(c)
	if user == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req CreateOrderRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	svc := orders.NewService(db.DB)

	order, err := svc.CreateOrder(req.Items, req.ShippingAddress, user.ID)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	transformOrderImages(order)

	go func(user models.User, order models.Order) {

		if err := notifier.SendSMS(user.Number, order.ID, order.TotalAmount); err != nil {
			fmt.Printf("Failed to send SMS for order %d to %s: %v\n", order.ID, user.Number, err)
		}
	}(*user, *order)

	go func(user models.User, order models.Order) {

		if err := notifier.SendEmail(user.Email, user.Name, order.ID, order.TotalAmount); err != nil {
			fmt.Printf("Failed to send email for order %d to %s: %v\n", order.ID, user.Email, err)
		}
	}(*user, *order)

	c.JSON(http.StatusCreated, gin.H{"message": "order created successfully", "order": order})
}

func GetOrders(c *gin.Context) {

	var orderList []models.Order

	err := db.DB.
		Preload("Items.Product").
		Preload("User").
		Order("created_at DESC").
		Find(&orderList).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve orders"})
		return
	}

	for i := range orderList {
		transformOrderImages(&orderList[i])
	}

	c.JSON(http.StatusOK, orderList)
}

func GetOrder(c *gin.Context) {

	var orderID uint
	if _, err := fmt.Sscan(c.Param("id"), &orderID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var order models.Order

	err := db.DB.
		Preload("Items.Product").
		Preload("User").
		First(&order, orderID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Order with ID %d not found", orderID)})
		return
	}

	transformOrderImages(&order)

	c.JSON(http.StatusOK, order)
}

// UpdatePaymentStatus is the payment webhook / admin action that settles a
// pending order one way or the other.
func UpdatePaymentStatus(c *gin.Context) {

	var req UpdatePaymentRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	svc := orders.NewService(db.DB)

	order, err := svc.ReconcilePayment(req.OrderID, req.TransactionID, orders.PaymentOutcome(req.Status))
	if err != nil {
		respondOrderError(c, err)
		return
	}

	transformOrderImages(order)

	c.JSON(http.StatusOK, gin.H{"message": "payment status updated", "order": order})
}

func respondOrderError(c *gin.Context, err error) {

	var notFound *orders.NotFoundError
	var noStock *orders.InsufficientStockError
	var badInput *orders.InvalidInputError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &noStock):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     noStock.Error(),
			"productId": noStock.ProductID,
			"available": noStock.Available,
			"requested": noStock.Requested,
		})
	case errors.As(err, &badInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": badInput.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process order"})
	}
}

func transformOrderImages(order *models.Order) {
	for i := range order.Items {
		if order.Items[i].Product != nil {
			order.Items[i].Product.Image = publicImageURL(order.Items[i].Product.Image)
		}
	}
}
