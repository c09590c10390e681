// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/voltstore/backend/internal/domain/cart"
	"github.com/voltstore/backend/internal/domain/order"
	"github.com/voltstore/backend/internal/domain/product"
	"github.com/voltstore/backend/internal/domain/user"
	"github.com/voltstore/backend/internal/domain/wishlist"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		&user.User{},

		&product.Category{},
		&product.Product{},
		&product.ProductImage{},
		&product.Review{},

		&cart.CartItem{},

		&order.Order{},
		&order.OrderItem{},
		&order.OrderStatusHistory{},

		&wishlist.WishlistItem{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email_active ON users(email, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_users_role ON users(role)",
		"CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at DESC)",

		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category_active ON products(category_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_featured ON products(is_featured, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
		"CREATE INDEX IF NOT EXISTS idx_products_rating ON products(rating DESC)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Category indexes
		"CREATE INDEX IF NOT EXISTS idx_categories_sort_order ON categories(sort_order)",

		// Product image indexes
		"CREATE INDEX IF NOT EXISTS idx_product_images_product_primary ON product_images(product_id, is_primary)",
		"CREATE INDEX IF NOT EXISTS idx_product_images_sort_order ON product_images(product_id, sort_order)",

		// Review indexes
		"CREATE INDEX IF NOT EXISTS idx_reviews_product_created ON reviews(product_id, created_at DESC)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_reviews_product_user ON reviews(product_id, user_id) WHERE deleted_at IS NULL",

		// Cart indexes
		"CREATE INDEX IF NOT EXISTS idx_cart_items_created_at ON cart_items(created_at DESC)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_user_status ON orders(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",

		// Order items indexes
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id)",

		// Order status history indexes
		"CREATE INDEX IF NOT EXISTS idx_order_status_history_order ON order_status_history(order_id, created_at DESC)",

		// Wishlist indexes
		"CREATE INDEX IF NOT EXISTS idx_wishlist_items_created_at ON wishlist_items(created_at DESC)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts initial catalog and account data. All seeds are
// idempotent.
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedCategories(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	if err := m.seedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := m.seedDemoCustomer(); err != nil {
		return fmt.Errorf("failed to seed demo customer: %w", err)
	}

	if err := m.seedProducts(); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	if err := m.seedReviews(); err != nil {
		return fmt.Errorf("failed to seed reviews: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

// storefrontCategories is the seeded navigation set. Slugs match the
// storefront's category links, so list filters resolve against them.
var storefrontCategories = []product.Category{
	{
		Name:        "Laptops",
		Slug:        "laptops",
		Description: "Notebooks and ultrabooks for work, creation, and play",
		SortOrder:   1,
		IsActive:    true,
	},
	{
		Name:        "Phones",
		Slug:        "phones",
		Description: "Latest smartphones from top brands",
		SortOrder:   2,
		IsActive:    true,
	},
	{
		Name:        "Tablets",
		Slug:        "tablets",
		Description: "Tablets and e-readers for reading, sketching, and streaming",
		SortOrder:   3,
		IsActive:    true,
	},
	{
		Name:        "Audio",
		Slug:        "audio",
		Description: "Headphones, earbuds, and speakers",
		SortOrder:   4,
		IsActive:    true,
	},
	{
		Name:        "Accessories",
		Slug:        "accessories",
		Description: "Chargers, hubs, keyboards, and everything in between",
		SortOrder:   5,
		IsActive:    true,
	},
	{
		Name:        "Gaming",
		Slug:        "gaming",
		Description: "Consoles, controllers, and gaming gear",
		SortOrder:   6,
		IsActive:    true,
	},
}

// seedCategories creates the storefront categories
func (m *Migration) seedCategories() error {
	log.Println("🏷️ Seeding categories...")

	for _, category := range storefrontCategories {
		var existing product.Category
		result := m.db.Where("slug = ?", category.Slug).First(&existing)
		if result.Error != nil {
			if err := m.db.Create(&category).Error; err != nil {
				return err
			}
			log.Printf("✅ Created category: %s", category.Name)
		}
	}

	return nil
}

func (m *Migration) seedAdminUser() error {
	log.Println("👤 Seeding admin user...")

	var existing user.User
	result := m.db.Where("email = ?", "admin@voltstore.com").First(&existing)
	if result.Error == nil {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	adminUser := user.User{
		Email:     "admin@voltstore.com",
		Password:  string(hashedPassword),
		FirstName: "Volt",
		LastName:  "Admin",
		Role:      user.RoleAdmin,
		IsActive:  true,
	}

	if err := m.db.Create(&adminUser).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Println("✅ Created admin user: admin@voltstore.com")
	return nil
}

func (m *Migration) seedDemoCustomer() error {
	log.Println("👤 Seeding demo customer...")

	var existing user.User
	result := m.db.Where("email = ?", "customer@voltstore.com").First(&existing)
	if result.Error == nil {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("customer123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	demoUser := user.User{
		Email:     "customer@voltstore.com",
		Password:  string(hashedPassword),
		FirstName: "Demo",
		LastName:  "Customer",
		Phone:     "+15550100",
		Role:      user.RoleCustomer,
		IsActive:  true,
	}

	if err := m.db.Create(&demoUser).Error; err != nil {
		return err
	}

	log.Println("✅ Created demo customer: customer@voltstore.com")
	return nil
}

type seedProduct struct {
	product product.Product
	images  []string
}

// catalogSeeds builds the demo catalog for the given category IDs, keyed by
// category slug. Prices are in cents.
func catalogSeeds(categoryIDs map[string]uint) []seedProduct {
	return []seedProduct{
		{
			product: product.Product{
				SKU:            "MBP-16-M4MAX",
				Name:           "MacBook Pro 16\" M4 Max",
				Slug:           "macbook-pro-16-m4-max",
				Description:    "The most powerful MacBook Pro ever, with the M4 Max chip, a stunning Liquid Retina XDR display, and all-day battery life.",
				Brand:          "Apple",
				Price:          349900,
				CompareAtPrice: 369900,
				Stock:          25,
				CategoryID:     categoryIDs["laptops"],
				IsFeatured:     true,
				IsActive:       true,
				Specs: product.SpecList{
					{Key: "Chip", Value: "Apple M4 Max"},
					{Key: "Memory", Value: "36GB unified"},
					{Key: "Storage", Value: "1TB SSD"},
					{Key: "Display", Value: "16.2\" Liquid Retina XDR"},
				},
			},
			images: []string{"/images/products/macbook-pro-16.jpg"},
		},
		{
			product: product.Product{
				SKU:         "DELL-XPS-15",
				Name:        "Dell XPS 15",
				Slug:        "dell-xps-15",
				Description: "A 15.6-inch creator laptop with an OLED display, Intel Core Ultra 7, and a machined aluminum chassis.",
				Brand:       "Dell",
				Price:       189900,
				Stock:       40,
				CategoryID:  categoryIDs["laptops"],
				IsActive:    true,
				Specs: product.SpecList{
					{Key: "Processor", Value: "Intel Core Ultra 7"},
					{Key: "Memory", Value: "32GB DDR5"},
					{Key: "Storage", Value: "1TB SSD"},
					{Key: "Display", Value: "15.6\" 3.5K OLED"},
				},
			},
			images: []string{"/images/products/dell-xps-15.jpg"},
		},
		{
			product: product.Product{
				SKU:            "LEN-TP-X1C",
				Name:           "ThinkPad X1 Carbon Gen 12",
				Slug:           "thinkpad-x1-carbon-gen-12",
				Description:    "The business ultrabook benchmark. Under 2.5 pounds with a legendary keyboard and MIL-SPEC durability.",
				Brand:          "Lenovo",
				Price:          164900,
				CompareAtPrice: 189900,
				Stock:          30,
				CategoryID:     categoryIDs["laptops"],
				IsActive:       true,
				Specs: product.SpecList{
					{Key: "Processor", Value: "Intel Core Ultra 5"},
					{Key: "Memory", Value: "16GB LPDDR5x"},
					{Key: "Weight", Value: "1.09 kg"},
				},
			},
			images: []string{"/images/products/thinkpad-x1.jpg"},
		},
		{
			product: product.Product{
				SKU:         "IPH-16-PRO",
				Name:        "iPhone 16 Pro",
				Slug:        "iphone-16-pro",
				Description: "Titanium design, the A18 Pro chip, and a 48MP camera system with 5x telephoto zoom.",
				Brand:       "Apple",
				Price:       109900,
				Stock:       120,
				CategoryID:  categoryIDs["phones"],
				IsFeatured:  true,
				IsActive:    true,
				Specs: product.SpecList{
					{Key: "Chip", Value: "A18 Pro"},
					{Key: "Display", Value: "6.3\" Super Retina XDR"},
					{Key: "Camera", Value: "48MP Fusion"},
				},
			},
			images: []string{"/images/products/iphone-16-pro.jpg"},
		},
		{
			product: product.Product{
				SKU:            "SAM-S25-ULTRA",
				Name:           "Samsung Galaxy S25 Ultra",
				Slug:           "samsung-galaxy-s25-ultra",
				Description:    "Galaxy AI on a 6.9-inch QHD+ display with a 200MP camera and built-in S Pen.",
				Brand:          "Samsung",
				Price:          129900,
				CompareAtPrice: 139900,
				Stock:          85,
				CategoryID:     categoryIDs["phones"],
				IsFeatured:     true,
				IsActive:       true,
				Specs: product.SpecList{
					{Key: "Processor", Value: "Snapdragon 8 Elite"},
					{Key: "Display", Value: "6.9\" Dynamic AMOLED 2X"},
					{Key: "Camera", Value: "200MP wide"},
				},
			},
			images: []string{"/images/products/galaxy-s25-ultra.jpg"},
		},
		{
			product: product.Product{
				SKU:         "GOO-PX-9-PRO",
				Name:        "Google Pixel 9 Pro",
				Slug:        "google-pixel-9-pro",
				Description: "The smartest Pixel yet, with Gemini built in and the best Pixel camera ever.",
				Brand:       "Google",
				Price:       99900,
				Stock:       60,
				CategoryID:  categoryIDs["phones"],
				IsActive:    true,
				Specs: product.SpecList{
					{Key: "Chip", Value: "Google Tensor G4"},
					{Key: "Display", Value: "6.3\" Super Actua"},
				},
			},
			images: []string{"/images/products/pixel-9-pro.jpg"},
		},
		{
			product: product.Product{
				SKU:         "IPAD-PRO-13-M4",
				Name:        "iPad Pro 13\" M4",
				Slug:        "ipad-pro-13-m4",
				Description: "Impossibly thin, with the M4 chip and a breakthrough Ultra Retina XDR display.",
				Brand:       "Apple",
				Price:       129900,
				Stock:       45,
				CategoryID:  categoryIDs["tablets"],
				IsFeatured:  true,
				IsActive:    true,
				Specs: product.SpecList{
					{Key: "Chip", Value: "Apple M4"},
					{Key: "Display", Value: "13\" Ultra Retina XDR"},
					{Key: "Thickness", Value: "5.1 mm"},
				},
			},
			images: []string{"/images/products/ipad-pro-13.jpg"},
		},
		{
			product: product.Product{
				SKU:            "SAM-TAB-S10",
				Name:           "Samsung Galaxy Tab S10 Ultra",
				Slug:           "samsung-galaxy-tab-s10-ultra",
				Description:    "A 14.6-inch AMOLED canvas with S Pen included, built for multitasking and sketching.",
				Brand:          "Samsung",
				Price:          119900,
				CompareAtPrice: 129900,
				Stock:          35,
				CategoryID:     categoryIDs["tablets"],
				IsActive:       true,
				Specs: product.SpecList{
					{Key: "Display", Value: "14.6\" Dynamic AMOLED 2X"},
					{Key: "S Pen", Value: "Included"},
				},
			},
			images: []string{"/images/products/galaxy-tab-s10.jpg"},
		},
		{
			product: product.Product{
				SKU:         "AMZ-KINDLE-PW",
				Name:        "Kindle Paperwhite Signature",
				Slug:        "kindle-paperwhite-signature",
				Description: "A 7-inch glare-free display, wireless charging, and weeks of battery life.",
				Brand:       "Amazon",
				Price:       19999,
				Stock:       150,
				CategoryID:  categoryIDs["tablets"],
				IsActive:    true,
				Specs: product.SpecList{
					{Key: "Display", Value: "7\" 300 ppi e-ink"},
					{Key: "Storage", Value: "32GB"},
				},
			},
			images: []string{"/images/products/kindle-paperwhite.jpg"},
		},
		{
			product: product.Product{
				SKU:            "SONY-WH1000XM6",
				Name:           "Sony WH-1000XM6",
				Slug:           "sony-wh-1000xm6",
				Description:    "Industry-leading noise cancellation with 30-hour battery life and multipoint connection.",
				Brand:          "Sony",
				Price:          39999,
				CompareAtPrice: 44999,
				Stock:          75,
				CategoryID:     categoryIDs["audio"],
				IsFeatured:     true,
				IsActive:       true,
				Specs: product.SpecList{
					{Key: "Battery", Value: "30 hours ANC on"},
					{Key: "Driver", Value: "30mm carbon fiber"},
				},
			},
			images: []string{"/images/products/sony-wh1000xm6.jpg"},
		},
		{
			product: product.Product{
				SKU:         "APL-AIRPODS-PRO3",
				Name:        "AirPods Pro 3",
				Slug:        "airpods-pro-3",
				Description: "Adaptive audio, hearing health features, and up to 8 hours of listening per charge.",
				Brand:       "Apple",
				Price:       24900,
				Stock:       200,
				CategoryID:  categoryIDs["audio"],
				IsActive:    true,
				Specs: product.SpecList{
					{Key: "Battery", Value: "8 hours per charge"},
					{Key: "Case", Value: "MagSafe, USB-C"},
				},
			},
			images: []string{"/images/products/airpods-pro-3.jpg"},
		},
		{
			product: product.Product{
				SKU:         "BOSE-SLFLEX-2",
				Name:        "Bose SoundLink Flex 2",
				Slug:        "bose-soundlink-flex-2",
				Description: "A rugged, waterproof portable speaker with surprisingly deep bass.",
				Brand:       "Bose",
				Price:       14900,
				Stock:       90,
				CategoryID:  categoryIDs["audio"],
				IsActive:    true,
				Specs: product.SpecList{
					{Key: "Rating", Value: "IP67"},
					{Key: "Battery", Value: "12 hours"},
				},
			},
			images: []string{"/images/products/soundlink-flex.jpg"},
		},
		{
			product: product.Product{
				SKU:         "ANK-GAN-100W",
				Name:        "Anker Prime 100W GaN Charger",
				Slug:        "anker-prime-100w-gan-charger",
				Description: "Three ports and 100 watts in a charger smaller than a golf ball sleeve.",
				Brand:       "Anker",
				Price:       7999,
				Stock:       300,
				CategoryID:  categoryIDs["accessories"],
				IsActive:    true,
				Specs: product.SpecList{
					{Key: "Output", Value: "100W max"},
					{Key: "Ports", Value: "2x USB-C, 1x USB-A"},
				},
			},
			images: []string{"/images/products/anker-gan-100w.jpg"},
		},
		{
			product: product.Product{
				SKU:            "LOG-MX-MASTER4",
				Name:           "Logitech MX Master 4",
				Slug:           "logitech-mx-master-4",
				Description:    "The flagship productivity mouse with haptic feedback and an 8K DPI sensor.",
				Brand:          "Logitech",
				Price:          11999,
				CompareAtPrice: 12999,
				Stock:          110,
				CategoryID:     categoryIDs["accessories"],
				IsActive:       true,
				Specs: product.SpecList{
					{Key: "Sensor", Value: "8000 DPI"},
					{Key: "Battery", Value: "70 days"},
				},
			},
			images: []string{"/images/products/mx-master-4.jpg"},
		},
		{
			product: product.Product{
				SKU:         "KEY-K8-PRO",
				Name:        "Keychron K8 Pro",
				Slug:        "keychron-k8-pro",
				Description: "A hot-swappable wireless mechanical keyboard with QMK/VIA support.",
				Brand:       "Keychron",
				Price:       9999,
				Stock:       65,
				CategoryID:  categoryIDs["accessories"],
				IsActive:    true,
				Specs: product.SpecList{
					{Key: "Layout", Value: "Tenkeyless"},
					{Key: "Switches", Value: "Gateron Pro, hot-swappable"},
				},
			},
			images: []string{"/images/products/keychron-k8-pro.jpg"},
		},
		{
			product: product.Product{
				SKU:         "SONY-PS5-PRO",
				Name:        "PlayStation 5 Pro",
				Slug:        "playstation-5-pro",
				Description: "Advanced ray tracing, AI-driven upscaling, and 2TB of storage.",
				Brand:       "Sony",
				Price:       69999,
				Stock:       20,
				CategoryID:  categoryIDs["gaming"],
				IsFeatured:  true,
				IsActive:    true,
				Specs: product.SpecList{
					{Key: "Storage", Value: "2TB SSD"},
					{Key: "Output", Value: "8K"},
				},
			},
			images: []string{"/images/products/ps5-pro.jpg"},
		},
		{
			product: product.Product{
				SKU:         "NIN-SWITCH-2",
				Name:        "Nintendo Switch 2",
				Slug:        "nintendo-switch-2",
				Description: "The next generation of hybrid play with a 7.9-inch 120Hz display.",
				Brand:       "Nintendo",
				Price:       44999,
				Stock:       50,
				CategoryID:  categoryIDs["gaming"],
				IsActive:    true,
				Specs: product.SpecList{
					{Key: "Display", Value: "7.9\" 120Hz LCD"},
					{Key: "Storage", Value: "256GB"},
				},
			},
			images: []string{"/images/products/switch-2.jpg"},
		},
		{
			product: product.Product{
				SKU:            "XBX-ELITE-2",
				Name:           "Xbox Elite Controller Series 2",
				Slug:           "xbox-elite-controller-series-2",
				Description:    "Adjustable-tension thumbsticks, interchangeable paddles, and 40 hours of battery.",
				Brand:          "Microsoft",
				Price:          15999,
				CompareAtPrice: 17999,
				Stock:          0,
				CategoryID:     categoryIDs["gaming"],
				IsActive:       true,
				Specs: product.SpecList{
					{Key: "Battery", Value: "40 hours"},
					{Key: "Paddles", Value: "4 interchangeable"},
				},
			},
			images: []string{"/images/products/xbox-elite-2.jpg"},
		},
	}
}

// seedProducts creates the demo catalog
func (m *Migration) seedProducts() error {
	log.Println("🛍️ Seeding products...")

	categoryIDs := make(map[string]uint)
	var categories []product.Category
	if err := m.db.Find(&categories).Error; err != nil {
		return err
	}
	for _, c := range categories {
		categoryIDs[c.Slug] = c.ID
	}

	createdCount := 0
	for _, seed := range catalogSeeds(categoryIDs) {
		var existing product.Product
		result := m.db.Where("sku = ?", seed.product.SKU).First(&existing)
		if result.Error == nil {
			continue
		}

		prod := seed.product
		if err := m.db.Create(&prod).Error; err != nil {
			log.Printf("⚠️ Failed to create product %s: %v", prod.SKU, err)
			continue
		}

		for i, url := range seed.images {
			img := product.ProductImage{
				ProductID: prod.ID,
				URL:       url,
				AltText:   prod.Name,
				SortOrder: i,
				IsPrimary: i == 0,
			}
			if err := m.db.Create(&img).Error; err != nil {
				log.Printf("⚠️ Failed to create image for %s: %v", prod.SKU, err)
			}
		}

		createdCount++
	}

	if createdCount > 0 {
		log.Printf("✅ Created %d products", createdCount)
	}
	return nil
}

// seedReviews creates a few demo reviews and refreshes product aggregates
func (m *Migration) seedReviews() error {
	log.Println("⭐ Seeding reviews...")

	var reviewCount int64
	m.db.Model(&product.Review{}).Count(&reviewCount)
	if reviewCount > 0 {
		return nil
	}

	var demoUser user.User
	if err := m.db.Where("email = ?", "customer@voltstore.com").First(&demoUser).Error; err != nil {
		log.Println("⚠️ No demo customer found, skipping reviews")
		return nil
	}

	var adminUser user.User
	if err := m.db.Where("email = ?", "admin@voltstore.com").First(&adminUser).Error; err != nil {
		return nil
	}

	reviewSeeds := []struct {
		sku     string
		userID  uint
		rating  int
		comment string
	}{
		{"MBP-16-M4MAX", demoUser.ID, 5, "Handles every workload I throw at it without the fans ever spinning up. The display alone is worth the price."},
		{"MBP-16-M4MAX", adminUser.ID, 4, "Fantastic machine, though the notch still bothers me after a year of MacBooks."},
		{"SONY-WH1000XM6", demoUser.ID, 5, "The noise cancellation is unreal on flights. Best headphones I have owned."},
		{"IPH-16-PRO", adminUser.ID, 5, "The camera upgrade over my 14 Pro is noticeable, especially the telephoto."},
		{"LOG-MX-MASTER4", demoUser.ID, 4, "Great mouse for productivity. The haptics are subtle but useful."},
	}

	for _, seed := range reviewSeeds {
		var prod product.Product
		if err := m.db.Where("sku = ?", seed.sku).First(&prod).Error; err != nil {
			continue
		}

		review := product.Review{
			ProductID: prod.ID,
			UserID:    seed.userID,
			Rating:    seed.rating,
			Comment:   seed.comment,
		}
		if err := m.db.Create(&review).Error; err != nil {
			log.Printf("⚠️ Failed to create review for %s: %v", seed.sku, err)
			continue
		}

		m.db.Model(&prod).Updates(map[string]interface{}{
			"rating": gorm.Expr(
				"(SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE product_id = ? AND deleted_at IS NULL)", prod.ID),
			"review_count": gorm.Expr(
				"(SELECT COUNT(*) FROM reviews WHERE product_id = ? AND deleted_at IS NULL)", prod.ID),
		})
	}

	log.Println("✅ Seeded demo reviews")
	return nil
}

// DropAllTables drops all tables (use with extreme caution)
func (m *Migration) DropAllTables() error {
	log.Println("⚠️ WARNING: Dropping all database tables...")

	// Reverse dependency order
	tables := []string{
		"wishlist_items",
		"order_status_history",
		"order_items",
		"orders",
		"cart_items",
		"reviews",
		"product_images",
		"products",
		"categories",
		"users",
	}

	for _, table := range tables {
		if err := m.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			log.Printf("⚠️ Failed to drop table %s: %v", table, err)
		}
	}

	log.Println("✅ All tables dropped")
	return nil
}
