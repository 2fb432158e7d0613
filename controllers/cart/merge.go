package cartControllers

import (
	"errors"

	"github.com/12Mina/Baba-Milk-Delivery/models"
	"gorm.io/gorm"
)

// MergeGuestCart folds a guest cart into a user's cart after a successful
// login or signup. Quantities are summed on product collision, the user's
// existing snapshot wins, and the guest cart is discarded. Called exactly
// once per authentication.
func MergeGuestCart(db *gorm.DB, guestKey, userKey string) error {
	if guestKey == "" || guestKey == userKey {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var guestItems []models.CartItem
		if err := tx.Where("owner_key = ?", guestKey).Order("added_at ASC, id ASC").Find(&guestItems).Error; err != nil {
			return err
		}

		for _, guestItem := range guestItems {
			var item models.CartItem
			err := tx.Where("owner_key = ? AND product_id = ?", userKey, guestItem.ProductID).First(&item).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				guestItem.ID = 0
				guestItem.OwnerKey = userKey
				if err := tx.Create(&guestItem).Error; err != nil {
					return err
				}
				continue
			}
			if err != nil {
				return err
			}

			item.Quantity += guestItem.Quantity
			if err := tx.Save(&item).Error; err != nil {
				return err
			}
		}

		return tx.Where("owner_key = ?", guestKey).Delete(&models.CartItem{}).Error
	})
}
