package orderControllers

import (
	"fmt"
	"testing"
	"time"

	"github.com/12Mina/Baba-Milk-Delivery/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func createOrder(t *testing.T, db *gorm.DB, status models.OrderStatus) models.Order {
	t.Helper()
	order := models.Order{
		OrderRef:        uuid.NewString(),
		TotalAmount:     270,
		DeliveryAddress: "Bole, Addis Ababa",
		DeliveryPhone:   "+251912345678",
		PaymentMethod:   models.PaymentCashOnDelivery,
		PaymentDetails:  "{}",
		Status:          status,
		OrderDate:       time.Now(),
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestSetStatus(t *testing.T) {
	db := newTestDB(t)
	order := createOrder(t, db, models.OrderStatusPlaced)

	updated, err := SetStatus(db, order.ID, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, updated.Status)

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.OrderStatusConfirmed, stored.Status)
}

func TestSetStatusAnyToAnyWithinAllowList(t *testing.T) {
	db := newTestDB(t)
	order := createOrder(t, db, models.OrderStatusDelivered)

	// Admins may jump backwards to correct mistakes.
	updated, err := SetStatus(db, order.ID, "placed")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPlaced, updated.Status)
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	db := newTestDB(t)
	order := createOrder(t, db, models.OrderStatusConfirmed)

	_, err := SetStatus(db, order.ID, "shipped")
	assert.ErrorIs(t, err, models.ErrInvalidOrderStatus)

	// The prior status is left unchanged.
	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.OrderStatusConfirmed, stored.Status)
}

func TestSetStatusOrderNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := SetStatus(db, 999, "confirmed")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderViewTrackerFields(t *testing.T) {
	view := toOrderView(models.Order{Status: models.OrderStatusPendingTelebirr})
	assert.Equal(t, 0, view.TrackerIndex)
	assert.Equal(t, models.TrackerStatuses, view.TrackerStatuses)

	view = toOrderView(models.Order{Status: models.OrderStatusCancelled})
	assert.Equal(t, -1, view.TrackerIndex)
}
