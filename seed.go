package main

import (
	"errors"
	"log"

	"github.com/12Mina/Baba-Milk-Delivery/models"
	"gorm.io/gorm"
)

var seedProducts = []models.Product{
	{Name: "Fresh Cow Milk (1L)", Category: models.CategoryMilk, Price: 80.00, ImagePath: "product1.png", Description: "Pure, pasteurized cow milk, delivered fresh daily."},
	{Name: "Organic Whole Milk (1L)", Category: models.CategoryMilk, Price: 95.00, ImagePath: "product2.png", Description: "Sourced from organic farms, rich in nutrients and flavor."},
	{Name: "Low-Fat Milk (1L)", Category: models.CategoryMilk, Price: 70.00, ImagePath: "product3.png", Description: "A healthy choice with reduced fat content, perfect for everyday use."},
	{Name: "Lactose-Free Milk (1L)", Category: models.CategoryMilk, Price: 110.00, ImagePath: "product4.png", Description: "Easy to digest, all the goodness of milk without lactose."},
	{Name: "Skim Milk (1L)", Category: models.CategoryMilk, Price: 65.00, ImagePath: "product5.png", Description: "Virtually fat-free, ideal for health-conscious individuals."},
	{Name: "Goat Milk (500ml)", Category: models.CategoryMilk, Price: 120.00, ImagePath: "product6.png", Description: "Nutrient-rich goat milk, a great alternative for sensitive stomachs."},
	{Name: "Almond Milk (1L)", Category: models.CategoryMilk, Price: 100.00, ImagePath: "product7.png", Description: "Dairy-free almond milk, perfect for vegans or those with intolerances."},
	{Name: "Soy Milk (1L)", Category: models.CategoryMilk, Price: 90.00, ImagePath: "product8.png", Description: "Plant-based soy milk, high in protein and versatile."},
	{Name: "Chocolate Milk (2L)", Category: models.CategoryMilk, Price: 95.00, ImagePath: "product9.png", Description: "Rich chocolate-flavored milk, a treat for all ages."},
	{Name: "Strawberry Milk (500ml)", Category: models.CategoryMilk, Price: 95.00, ImagePath: "product10.png", Description: "Sweet strawberry-flavored milk, a fun drink for kids."},
	{Name: "Cheddar Cheese (200g)", Category: models.CategoryCheese, Price: 150.00, ImagePath: "product11.png", Description: "Classic sharp cheddar cheese block, aged to perfection."},
	{Name: "Mozzarella Cheese (200g)", Category: models.CategoryCheese, Price: 130.00, ImagePath: "product12.png", Description: "Perfect for pizzas and pastas, melts beautifully and stretches."},
	{Name: "Feta Cheese (150g)", Category: models.CategoryCheese, Price: 120.00, ImagePath: "product13.png", Description: "Tangy and salty, ideal for salads and Mediterranean dishes."},
	{Name: "Gouda Cheese (200g)", Category: models.CategoryCheese, Price: 160.00, ImagePath: "product14.png", Description: "Semi-hard cheese with a mild, nutty flavor."},
	{Name: "Cream Cheese (250g)", Category: models.CategoryCheese, Price: 100.00, ImagePath: "product15.png", Description: "Smooth and spreadable, great for bagels and cooking."},
	{Name: "Parmesan Cheese (100g)", Category: models.CategoryCheese, Price: 180.00, ImagePath: "product16.png", Description: "Hard, granular cheese perfect for grating over pasta."},
	{Name: "Ricotta Cheese (250g)", Category: models.CategoryCheese, Price: 90.00, ImagePath: "product17.png", Description: "Soft and creamy, ideal for Italian desserts and savory dishes."},
	{Name: "Cottage Cheese (250g)", Category: models.CategoryCheese, Price: 80.00, ImagePath: "product18.png", Description: "High in protein, a versatile and healthy snack."},
	{Name: "Swiss Cheese (200g)", Category: models.CategoryCheese, Price: 140.00, ImagePath: "product19.png", Description: "Distinctive holes and a mild, nutty taste."},
	{Name: "Provolone Cheese (200g)", Category: models.CategoryCheese, Price: 135.00, ImagePath: "product20.png", Description: "Versatile cheese, great for sandwiches and melting."},
	{Name: "Plain Yogurt (500g)", Category: models.CategoryYogurt, Price: 70.00, ImagePath: "product21.png", Description: "Creamy and natural plain yogurt, great for breakfast or cooking."},
	{Name: "Strawberry Yogurt (200g)", Category: models.CategoryYogurt, Price: 55.00, ImagePath: "product22.png", Description: "Sweet strawberry-flavored yogurt, a delightful snack."},
	{Name: "Vanilla Bean Yogurt (200g)", Category: models.CategoryYogurt, Price: 60.00, ImagePath: "product23.png", Description: "Smooth vanilla yogurt with real bean specks."},
	{Name: "Greek Yogurt (250g)", Category: models.CategoryYogurt, Price: 85.00, ImagePath: "product24.png", Description: "Thick and protein-rich Greek yogurt."},
	{Name: "Blueberry Yogurt (200g)", Category: models.CategoryYogurt, Price: 58.00, ImagePath: "product25.png", Description: "Fruity yogurt with juicy blueberries."},
	{Name: "Mango Yogurt (200g)", Category: models.CategoryYogurt, Price: 58.00, ImagePath: "product26.png", Description: "Tropical mango-flavored yogurt."},
	{Name: "Honey Yogurt (200g)", Category: models.CategoryYogurt, Price: 62.00, ImagePath: "product27.png", Description: "Naturally sweetened with pure honey."},
	{Name: "Peach Yogurt (200g)", Category: models.CategoryYogurt, Price: 55.00, ImagePath: "product28.png", Description: "Refreshing peach-flavored yogurt."},
	{Name: "Low-Fat Yogurt (500g)", Category: models.CategoryYogurt, Price: 65.00, ImagePath: "product29.png", Description: "Healthy low-fat option for everyday consumption."},
	{Name: "Probiotic Yogurt (200g)", Category: models.CategoryYogurt, Price: 75.00, ImagePath: "product30.png", Description: "Contains live cultures for digestive health."},
	{Name: "Salted Butter (250g)", Category: models.CategoryButter, Price: 90.00, ImagePath: "product31.png", Description: "Rich and creamy salted butter, perfect for spreading."},
	{Name: "Unsalted Butter (250g)", Category: models.CategoryButter, Price: 90.00, ImagePath: "product32.png", Description: "Pure, unsalted butter for baking and cooking, allows flavor control."},
	{Name: "Ghee (Clarified Butter, 500g)", Category: models.CategoryButter, Price: 200.00, ImagePath: "product33.png", Description: "Traditional clarified butter, rich flavor and high smoke point."},
	{Name: "Garlic Herb Butter (150g)", Category: models.CategoryButter, Price: 110.00, ImagePath: "product34.png", Description: "Infused with garlic and herbs, perfect for steaks or bread."},
	{Name: "Whipped Butter (200g)", Category: models.CategoryButter, Price: 85.00, ImagePath: "product35.png", Description: "Light and airy whipped butter, easy to spread."},
	{Name: "Cultured Butter (250g)", Category: models.CategoryButter, Price: 105.00, ImagePath: "product36.png", Description: "Tangy and flavorful, made from cultured cream."},
	{Name: "European Style Butter (250g)", Category: models.CategoryButter, Price: 115.00, ImagePath: "product37.png", Description: "Higher fat content for richer taste and texture."},
	{Name: "Light Butter (250g)", Category: models.CategoryButter, Price: 75.00, ImagePath: "product38.png", Description: "Reduced-fat butter alternative."},
	{Name: "Brown Butter (100g)", Category: models.CategoryButter, Price: 130.00, ImagePath: "product39.png", Description: "Nutty and aromatic, great for desserts and savory dishes."},
	{Name: "Avocado Oil Butter (250g)", Category: models.CategoryButter, Price: 125.00, ImagePath: "product40.png", Description: "Blend of butter and healthy avocado oil."},
}

// seedDatabase replaces the product catalog and ensures a default admin
// user exists.
func seedDatabase(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Product{}).Error; err != nil {
			return err
		}
		if err := tx.Create(&seedProducts).Error; err != nil {
			return err
		}
		log.Printf("📦 Seeded %d products", len(seedProducts))

		var admin models.User
		err := tx.Where("is_admin = ?", true).First(&admin).Error
		if err == nil {
			log.Println("Admin user already exists, skipping creation")
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		admin = models.User{
			Name:    "Admin",
			Phone:   "+251911223344",
			Address: "Admin Office, Addis Ababa",
			IsAdmin: true,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		log.Println("👤 Default admin user created (phone: +251911223344), login via OTP")
		return nil
	})
}
