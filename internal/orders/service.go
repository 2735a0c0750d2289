package orders

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/VivekMakwana7/ecommerce-full-stack/internal/models"
)

// ItemRequest is one requested order line: which product, how many, and the
// free-text variant selectors.
type ItemRequest struct {
	ProductID uint   `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Size      string `json:"size" binding:"required"`
	Color     string `json:"color" binding:"required"`
}

// PaymentOutcome is the result reported by the payment webhook or an admin action.
type PaymentOutcome string

const (
	PaymentSuccess PaymentOutcome = "success"
	PaymentFailure PaymentOutcome = "failure"
)

// Service owns the order-creation and payment-reconciliation transactions.
// Product stock is only ever mutated inside one of its units of work while
// holding the product's row lock.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// lockForUpdate adds a SELECT ... FOR UPDATE clause on engines that support
// row-level locks. The SQLite dialect used in tests rejects the clause and
// serializes writers natively, so it is skipped there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// CreateOrder atomically validates stock, decrements inventory, and persists
// the order with its line items. Every stock check happens under the product's
// row lock, so two concurrent orders against the same product serialize and
// the later one sees the earlier decrement. On any failure the whole unit of
// work rolls back: no stock mutation and no order row survives.
//
// Products are locked in the order the caller listed them, not a canonical
// order. Two concurrent multi-item orders naming the same products in opposite
// sequence can therefore deadlock in the lock manager; catalog overlap is
// assumed low enough that this stays an accepted risk rather than a sort.
func (s *Service) CreateOrder(items []ItemRequest, shippingAddress string, userID uint) (*models.Order, error) {

	if len(items) == 0 {
		return nil, &InvalidInputError{Reason: "at least one item is required"}
	}
	if strings.TrimSpace(shippingAddress) == "" {
		return nil, &InvalidInputError{Reason: "shipping address is required"}
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, &InvalidInputError{Reason: fmt.Sprintf("quantity must be at least 1 for product %d", item.ProductID)}
		}
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", tx.Error)
	}

	var orderItems []models.OrderItem
	var totalAmount float64

	for _, item := range items {

		var product models.Product

		if err := lockForUpdate(tx).First(&product, item.ProductID).Error; err != nil {

			tx.Rollback()

			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &NotFoundError{Entity: "Product", ID: item.ProductID}
			}
			return nil, err
		}

		if product.Quantity < item.Quantity {

			tx.Rollback()

			return nil, &InsufficientStockError{
				ProductID: product.ID,
				Name:      product.Name,
				Available: product.Quantity,
				Requested: item.Quantity,
			}
		}

		product.Quantity -= item.Quantity

		if err := tx.Save(&product).Error; err != nil {
			tx.Rollback()
			return nil, err
		}

		orderItems = append(orderItems, models.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Color:     item.Color,
			Price:     product.Price, // unit price snapshotted at purchase time
		})

		totalAmount += product.Price * float64(item.Quantity)
	}

	order := models.Order{
		UserID:          userID,
		Items:           orderItems,
		TotalAmount:     totalAmount,
		Status:          models.OrderStatusPending,
		ShippingAddress: shippingAddress,
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	if err := s.db.Preload("Items.Product").Preload("User").First(&order, order.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve order with items: %w", err)
	}

	return &order, nil
}

// ReconcilePayment records the payment transaction id and transitions the
// order's status. A FAILURE outcome cancels the order and restores each line's
// stock under the product's row lock, undoing the decrement made at creation.
// The operation is idempotent: when the status already matches the outcome
// nothing transitions and no stock moves a second time.
func (s *Service) ReconcilePayment(orderID uint, transactionID string, outcome PaymentOutcome) (*models.Order, error) {

	if outcome != PaymentSuccess && outcome != PaymentFailure {
		return nil, &InvalidInputError{Reason: fmt.Sprintf("unknown payment outcome: %q", outcome)}
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", tx.Error)
	}

	var order models.Order

	if err := lockForUpdate(tx).Preload("Items").First(&order, orderID).Error; err != nil {

		tx.Rollback()

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "Order", ID: orderID}
		}
		return nil, err
	}

	order.TransactionID = &transactionID

	switch outcome {

	case PaymentFailure:
		// Already-cancelled orders were compensated on a previous call.
		if order.Status != models.OrderStatusCancelled {

			order.Status = models.OrderStatusCancelled

			for _, item := range order.Items {

				var product models.Product

				if err := lockForUpdate(tx).First(&product, item.ProductID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						// product removed since purchase; nothing to restore
						continue
					}
					tx.Rollback()
					return nil, err
				}

				product.Quantity += item.Quantity

				if err := tx.Save(&product).Error; err != nil {
					tx.Rollback()
					return nil, err
				}
			}
		}

	case PaymentSuccess:
		if order.Status != models.OrderStatusCompleted {
			order.Status = models.OrderStatusCompleted
		}
	}

	// Line items are immutable after creation; only the order row changes.
	if err := tx.Omit(clause.Associations).Save(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit payment update: %w", err)
	}

	if err := s.db.Preload("Items.Product").Preload("User").First(&order, order.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve order with items: %w", err)
	}

	return &order, nil
}
