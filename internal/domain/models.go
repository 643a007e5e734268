// Package domain defines the persistence models for the storefront catalog
// (categories, products, images, order items, reviews) and the search-term
// counter. These types are mapped with GORM and form the data layer the
// search subsystem reads from.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// Category groups products for browsing and filtering.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Name: display name; also matched by free-text search.
//   - Slug: URL-friendly unique identifier.
type Category struct {
	ID        string         `json:"id"         gorm:"type:char(36);primaryKey"`
	Name      string         `json:"name"       gorm:"type:varchar(255);not null"`
	Slug      string         `json:"slug"       gorm:"type:varchar(255);not null;uniqueIndex"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"          gorm:"index"`
}

// TableName returns the database table name for Category.
func (Category) TableName() string { return "categories" }

// Product is a sellable catalog item.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - Name / Description: free text used by search and suggestions.
//   - Price: unit price; precision concerns belong to the checkout layer.
//   - Stock: units available; suggestions only consider Stock > 0.
//   - CategoryID: optional FK to Category.
//   - CreatedAt: drives the default "newest" ordering.
type Product struct {
	ID          string         `json:"id"          gorm:"type:char(36);primaryKey"`
	Name        string         `json:"name"        gorm:"type:varchar(255);not null;index"`
	Description string         `json:"description" gorm:"type:text;not null;default:''"`
	Price       float64        `json:"price"       gorm:"not null;index"`
	Stock       int            `json:"stock"       gorm:"not null;default:0"`
	CategoryID  *string        `json:"category_id" gorm:"type:char(36);index"`
	CreatedAt   time.Time      `json:"created_at"  gorm:"index"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-"           gorm:"index"`

	Category *Category     `json:"-" gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Images   []ProductImage `json:"-" gorm:"foreignKey:ProductID"`
}

// TableName returns the database table name for Product.
func (Product) TableName() string { return "products" }

// ProductImage is an image URL attached to a product. The lowest Position is
// the primary image.
type ProductImage struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	ProductID string    `json:"product_id" gorm:"type:char(36);not null;index:idx_product_images,priority:1"`
	URL       string    `json:"url"        gorm:"type:text;not null"`
	Position  int       `json:"position"   gorm:"not null;default:0;index:idx_product_images,priority:2"`
	CreatedAt time.Time `json:"created_at"`

	Product Product `json:"-" gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for ProductImage.
func (ProductImage) TableName() string { return "product_images" }

// OrderItem is a purchased line. Only its count per product is consumed here
// (popularity ordering).
type OrderItem struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	OrderID   string    `json:"order_id"   gorm:"type:char(36);not null;index"`
	ProductID string    `json:"product_id" gorm:"type:char(36);not null;index"`
	Quantity  int       `json:"quantity"   gorm:"not null;default:1"`
	UnitPrice float64   `json:"unit_price" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`

	Product Product `json:"-" gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for OrderItem.
func (OrderItem) TableName() string { return "order_items" }

// Review is a customer rating of a product.
type Review struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	ProductID string    `json:"product_id" gorm:"type:char(36);not null;index"`
	UserID    string    `json:"user_id"    gorm:"type:varchar(64);not null"`
	Rating    int       `json:"rating"     gorm:"not null;check:rating BETWEEN 1 AND 5"`
	Comment   string    `json:"comment"    gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`

	Product Product `json:"-" gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Review.
func (Review) TableName() string { return "reviews" }

// SearchTerm counts how often a normalized (lowercase) term was searched.
type SearchTerm struct {
	Term           string    `json:"term"             gorm:"type:varchar(255);primaryKey"`
	Count          int64     `json:"count"            gorm:"not null;default:0;index"`
	LastSearchedAt time.Time `json:"last_searched_at"`
}

// TableName returns the database table name for SearchTerm.
func (SearchTerm) TableName() string { return "search_terms" }
