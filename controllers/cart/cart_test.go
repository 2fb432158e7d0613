package cartControllers

import (
	"fmt"
	"testing"

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

func TestAddItem(t *testing.T) {
	db := newTestDB(t)
	milk := createProduct(t, db, "Fresh Cow Milk (1L)", 80)

	require.NoError(t, AddItem(db, "user:1", milk.ID, 1))

	items, err := Items(db, "user:1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, milk.ID, items[0].ProductID)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, "Fresh Cow Milk (1L)", items[0].ProductName)
	assert.Equal(t, 80.0, items[0].ProductPrice)

	// Adding again increments the existing entry.
	require.NoError(t, AddItem(db, "user:1", milk.ID, 2))
	items, err = Items(db, "user:1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAddItemUnknownProduct(t *testing.T) {
	db := newTestDB(t)

	err := AddItem(db, "user:1", 999, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)

	items, err := Items(db, "user:1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAddItemInvalidDelta(t *testing.T) {
	db := newTestDB(t)
	milk := createProduct(t, db, "Milk", 80)

	assert.ErrorIs(t, AddItem(db, "user:1", milk.ID, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, AddItem(db, "user:1", milk.ID, -2), ErrInvalidQuantity)
}

func TestSetQuantity(t *testing.T) {
	db := newTestDB(t)
	milk := createProduct(t, db, "Milk", 80)
	require.NoError(t, AddItem(db, "user:1", milk.ID, 1))

	require.NoError(t, SetQuantity(db, "user:1", milk.ID, 5))
	items, err := Items(db, "user:1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestSetQuantityZeroDeletesEntry(t *testing.T) {
	db := newTestDB(t)
	milk := createProduct(t, db, "Milk", 80)
	require.NoError(t, AddItem(db, "user:1", milk.ID, 3))

	require.NoError(t, SetQuantity(db, "user:1", milk.ID, 0))

	items, err := Items(db, "user:1")
	require.NoError(t, err)
	assert.Empty(t, items, "entry set to zero must be absent, never stored as zero")
}

func TestSetQuantityErrors(t *testing.T) {
	db := newTestDB(t)
	milk := createProduct(t, db, "Milk", 80)
	require.NoError(t, AddItem(db, "user:1", milk.ID, 1))

	assert.ErrorIs(t, SetQuantity(db, "user:1", milk.ID, -1), ErrInvalidQuantity)
	assert.ErrorIs(t, SetQuantity(db, "user:1", 999, 2), ErrItemNotFound)

	// Failed updates leave the entry untouched.
	items, err := Items(db, "user:1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	db := newTestDB(t)
	milk := createProduct(t, db, "Milk", 80)
	require.NoError(t, AddItem(db, "user:1", milk.ID, 1))

	require.NoError(t, RemoveItem(db, "user:1", milk.ID))
	assert.ErrorIs(t, RemoveItem(db, "user:1", milk.ID), ErrItemNotFound)
}

func TestTotalUsesSnapshotPrices(t *testing.T) {
	db := newTestDB(t)
	milk := createProduct(t, db, "Milk", 80)
	yogurt := createProduct(t, db, "Yogurt", 95)

	require.NoError(t, AddItem(db, "user:1", milk.ID, 1))
	require.NoError(t, AddItem(db, "user:1", yogurt.ID, 2))

	items, err := Items(db, "user:1")
	require.NoError(t, err)
	assert.Equal(t, 270.0, Total(items))

	// A later catalog price change does not move the displayed total.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", milk.ID).Update("price", 200).Error)
	items, err = Items(db, "user:1")
	require.NoError(t, err)
	assert.Equal(t, 270.0, Total(items))
}

func TestTotalQuantity(t *testing.T) {
	db := newTestDB(t)
	milk := createProduct(t, db, "Milk", 80)
	yogurt := createProduct(t, db, "Yogurt", 95)

	count, err := TotalQuantity(db, "user:1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, AddItem(db, "user:1", milk.ID, 2))
	require.NoError(t, AddItem(db, "user:1", yogurt.ID, 3))

	count, err = TotalQuantity(db, "user:1")
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestCartsAreScopedByOwner(t *testing.T) {
	db := newTestDB(t)
	milk := createProduct(t, db, "Milk", 80)

	require.NoError(t, AddItem(db, "user:1", milk.ID, 1))
	require.NoError(t, AddItem(db, "guest:abc", milk.ID, 4))

	items, err := Items(db, "user:1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)

	items, err = Items(db, "guest:abc")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)
}

func TestMergeGuestCart(t *testing.T) {
	db := newTestDB(t)
	a := createProduct(t, db, "Product A", 80)
	b := createProduct(t, db, "Product B", 95)

	// Guest cart {A:2}, user cart {A:1, B:3}.
	require.NoError(t, AddItem(db, "guest:abc", a.ID, 2))
	require.NoError(t, AddItem(db, "user:1", a.ID, 1))
	require.NoError(t, AddItem(db, "user:1", b.ID, 3))

	require.NoError(t, MergeGuestCart(db, "guest:abc", "user:1"))

	items, err := Items(db, "user:1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	quantities := map[uint]int{}
	for _, item := range items {
		quantities[item.ProductID] = item.Quantity
	}
	assert.Equal(t, 3, quantities[a.ID])
	assert.Equal(t, 3, quantities[b.ID])

	guestItems, err := Items(db, "guest:abc")
	require.NoError(t, err)
	assert.Empty(t, guestItems, "guest cart must be discarded after merge")
}

func TestMergeGuestCartNoGuest(t *testing.T) {
	db := newTestDB(t)
	a := createProduct(t, db, "Product A", 80)
	require.NoError(t, AddItem(db, "user:1", a.ID, 1))

	require.NoError(t, MergeGuestCart(db, "", "user:1"))

	items, err := Items(db, "user:1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
