package checkoutControllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	cartControllers "github.com/12Mina/Baba-Milk-Delivery/controllers/cart"
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
		&models.Product{},
		&models.CartItem{},
		&models.DeliveryInfo{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func createProduct(t *testing.T, db *gorm.DB, name string, price float64) models.Product {
	t.Helper()
	product := models.Product{Name: name, Category: models.CategoryMilk, Price: price, ImagePath: "p.png"}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func saveValidDelivery(t *testing.T, db *gorm.DB, ownerKey string) {
	t.Helper()
	_, err := SaveDeliveryInfo(db, ownerKey, DeliveryRequest{
		Name:    "Abebe",
		Phone:   "0912345678",
		Address: "Bole, Addis Ababa",
	})
	require.NoError(t, err)
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}

func TestPlaceOrderCashOnDelivery(t *testing.T) {
	db := newTestDB(t)
	milk := createProduct(t, db, "Fresh Cow Milk (1L)", 80)
	yogurt := createProduct(t, db, "Organic Whole Milk (1L)", 95)

	const ownerKey = "user:1"
	require.NoError(t, cartControllers.AddItem(db, ownerKey, milk.ID, 1))
	require.NoError(t, cartControllers.AddItem(db, ownerKey, yogurt.ID, 2))
	saveValidDelivery(t, db, ownerKey)

	userID := uint(1)
	order, err := PlaceOrder(db, ownerKey, &userID, FinalizeRequest{PaymentMethod: models.PaymentCashOnDelivery})
	require.NoError(t, err)

	assert.Equal(t, 270.0, order.TotalAmount)
	assert.Equal(t, models.OrderStatusPlaced, order.Status)
	assert.Equal(t, "+251912345678", order.DeliveryPhone)
	assert.NotEmpty(t, order.OrderRef)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 80.0, order.Items[0].PriceAtPurchase)
	assert.Equal(t, 95.0, order.Items[1].PriceAtPurchase)
	assert.Equal(t, 2, order.Items[1].Quantity)

	// Cart and delivery info are cleared only after the commit.
	items, err := cartControllers.Items(db, ownerKey)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.EqualValues(t, 0, countRows(t, db, &models.DeliveryInfo{}))
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := newTestDB(t)
	saveValidDelivery(t, db, "user:1")

	_, err := PlaceOrder(db, "user:1", nil, FinalizeRequest{PaymentMethod: models.PaymentCashOnDelivery})
	assert.ErrorIs(t, err, ErrEmptyCart)

	assert.EqualValues(t, 0, countRows(t, db, &models.Order{}))
	assert.EqualValues(t, 0, countRows(t, db, &models.OrderItem{}))
}

func TestPlaceOrderProductVanishedIsAtomic(t *testing.T) {
	db := newTestDB(t)
	milk := createProduct(t, db, "Milk", 80)
	cheese := createProduct(t, db, "Cheddar Cheese (200g)", 150)

	const ownerKey = "user:1"
	require.NoError(t, cartControllers.AddItem(db, ownerKey, milk.ID, 1))
	require.NoError(t, cartControllers.AddItem(db, ownerKey, cheese.ID, 1))
	saveValidDelivery(t, db, ownerKey)

	// The cheese disappears from the catalog before finalize.
	require.NoError(t, db.Delete(&models.Product{}, cheese.ID).Error)

	_, err := PlaceOrder(db, ownerKey, nil, FinalizeRequest{PaymentMethod: models.PaymentCashOnDelivery})
	var unavailable *ProductUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "Cheddar Cheese (200g)", unavailable.Name)

	// No partial order, cart untouched.
	assert.EqualValues(t, 0, countRows(t, db, &models.Order{}))
	assert.EqualValues(t, 0, countRows(t, db, &models.OrderItem{}))
	items, err := cartControllers.Items(db, ownerKey)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestPlaceOrderUsesLiveCatalogPrices(t *testing.T) {
	db := newTestDB(t)
	milk := createProduct(t, db, "Milk", 80)

	const ownerKey = "user:1"
	require.NoError(t, cartControllers.AddItem(db, ownerKey, milk.ID, 2))
	saveValidDelivery(t, db, ownerKey)

	// Price changes after the item was added: the cart still displays the
	// snapshot, but the order must be computed from the live price.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", milk.ID).Update("price", 100).Error)

	items, err := cartControllers.Items(db, ownerKey)
	require.NoError(t, err)
	assert.Equal(t, 160.0, cartControllers.Total(items))

	order, err := PlaceOrder(db, ownerKey, nil, FinalizeRequest{PaymentMethod: models.PaymentCashOnDelivery})
	require.NoError(t, err)
	assert.Equal(t, 200.0, order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 100.0, order.Items[0].PriceAtPurchase)
}

func TestPlaceOrderTelebirr(t *testing.T) {
	db := newTestDB(t)
	milk := createProduct(t, db, "Milk", 80)

	const ownerKey = "guest:abc"
	require.NoError(t, cartControllers.AddItem(db, ownerKey, milk.ID, 1))
	saveValidDelivery(t, db, ownerKey)

	order, err := PlaceOrder(db, ownerKey, nil, FinalizeRequest{
		PaymentMethod: models.PaymentTelebirr,
		PaymentPhone:  "0912345678",
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPendingTelebirr, order.Status)
	assert.Nil(t, order.UserID)

	var details map[string]string
	require.NoError(t, json.Unmarshal([]byte(order.PaymentDetails), &details))
	assert.Equal(t, "+251912345678", details["phone"])
}

func TestPlaceOrderMobileMoneyRequiresPhone(t *testing.T) {
	db := newTestDB(t)
	milk := createProduct(t, db, "Milk", 80)
	require.NoError(t, cartControllers.AddItem(db, "user:1", milk.ID, 1))
	saveValidDelivery(t, db, "user:1")

	_, err := PlaceOrder(db, "user:1", nil, FinalizeRequest{PaymentMethod: models.PaymentCBEBirr})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.EqualValues(t, 0, countRows(t, db, &models.Order{}))
}

func TestPlaceOrderInvalidPaymentMethod(t *testing.T) {
	db := newTestDB(t)
	milk := createProduct(t, db, "Milk", 80)
	require.NoError(t, cartControllers.AddItem(db, "user:1", milk.ID, 1))
	saveValidDelivery(t, db, "user:1")

	_, err := PlaceOrder(db, "user:1", nil, FinalizeRequest{PaymentMethod: "paypal"})
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
	assert.EqualValues(t, 0, countRows(t, db, &models.Order{}))
}

func TestPlaceOrderWithoutDeliveryInfo(t *testing.T) {
	db := newTestDB(t)
	milk := createProduct(t, db, "Milk", 80)
	require.NoError(t, cartControllers.AddItem(db, "user:1", milk.ID, 1))

	_, err := PlaceOrder(db, "user:1", nil, FinalizeRequest{PaymentMethod: models.PaymentCashOnDelivery})
	assert.ErrorIs(t, err, ErrCheckoutIncomplete)
}

func TestSaveDeliveryInfoValid(t *testing.T) {
	db := newTestDB(t)

	info, err := SaveDeliveryInfo(db, "user:1", DeliveryRequest{
		Name:    "Abebe",
		Phone:   "0912345678",
		Address: "Bole, Addis Ababa",
	})
	require.NoError(t, err)
	assert.Equal(t, "+251912345678", info.Phone)
	assert.Equal(t, "Bole, Addis Ababa", info.Address)
}

func TestSaveDeliveryInfoPreservesPartialInput(t *testing.T) {
	db := newTestDB(t)

	_, err := SaveDeliveryInfo(db, "user:1", DeliveryRequest{
		Name:  "Abebe",
		Phone: "12ab",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Messages, 2)

	// The rejected submission is still stored for re-display.
	var stored models.DeliveryInfo
	require.NoError(t, db.Where("owner_key = ?", "user:1").First(&stored).Error)
	assert.Equal(t, "Abebe", stored.Name)
	assert.Equal(t, "12ab", stored.Phone)
	assert.Empty(t, stored.Address)
}

func TestSaveDeliveryInfoOverwritesPriorAttempt(t *testing.T) {
	db := newTestDB(t)

	_, err := SaveDeliveryInfo(db, "user:1", DeliveryRequest{Phone: "bad"})
	require.True(t, errors.As(err, new(*ValidationError)))

	info, err := SaveDeliveryInfo(db, "user:1", DeliveryRequest{
		Phone:   "0912345678",
		Address: "Bole, Addis Ababa",
	})
	require.NoError(t, err)
	assert.Equal(t, "+251912345678", info.Phone)

	assert.EqualValues(t, 1, countRows(t, db, &models.DeliveryInfo{}))
}
