package repo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-storefront-search/internal/domain"
)

// Seed is a catalog fixture loaded from YAML.
//
//	categories:
//	  - {name: Audio, slug: audio}
//	products:
//	  - name: Wireless Headphones
//	    price: 79.99
//	    stock: 12
//	    category: audio
//	    images: [https://cdn.example.com/wh.jpg]
//	    orders: 3
//	    reviews:
//	      - {user: u1, rating: 5}
type Seed struct {
	Categories []SeedCategory `yaml:"categories"`
	Products   []SeedProduct  `yaml:"products"`
}

// SeedCategory is one category entry.
type SeedCategory struct {
	Name string `yaml:"name"`
	Slug string `yaml:"slug"`
}

// SeedProduct is one product entry. Category references a category slug.
// Orders is the number of single-unit order items to create.
type SeedProduct struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Price       float64      `yaml:"price"`
	Stock       int          `yaml:"stock"`
	Category    string       `yaml:"category"`
	Images      []string     `yaml:"images"`
	Orders      int          `yaml:"orders"`
	Reviews     []SeedReview `yaml:"reviews"`
}

// SeedReview is one review entry.
type SeedReview struct {
	User    string `yaml:"user"`
	Rating  int    `yaml:"rating"`
	Comment string `yaml:"comment"`
}

// SeedResult reports how many rows ApplySeed wrote.
type SeedResult struct {
	Categories int
	Products   int
}

// LoadSeedFile reads and validates a YAML seed file.
func LoadSeedFile(path string) (*Seed, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", path, err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes and validates YAML seed data.
func ParseSeed(data []byte) (*Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}
	return &s, nil
}

// Validate checks required fields and cross references.
func (s *Seed) Validate() error {
	slugs := make(map[string]struct{}, len(s.Categories))
	for i, c := range s.Categories {
		if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Slug) == "" {
			return fmt.Errorf("categories[%d]: name and slug are required", i)
		}
		if _, dup := slugs[c.Slug]; dup {
			return fmt.Errorf("categories[%d]: duplicate slug %q", i, c.Slug)
		}
		slugs[c.Slug] = struct{}{}
	}
	for i, p := range s.Products {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("products[%d]: name is required", i)
		}
		if p.Price < 0 || p.Stock < 0 || p.Orders < 0 {
			return fmt.Errorf("products[%d]: price, stock and orders must be >= 0", i)
		}
		if p.Category != "" {
			if _, ok := slugs[p.Category]; !ok {
				return fmt.Errorf("products[%d]: unknown category %q", i, p.Category)
			}
		}
		for j, r := range p.Reviews {
			if r.Rating < 1 || r.Rating > 5 {
				return fmt.Errorf("products[%d].reviews[%d]: rating must be between 1 and 5", i, j)
			}
		}
	}
	return nil
}

// ApplySeed writes the fixture in a single transaction. Categories are
// upserted by slug; products are always inserted. Product creation times
// step forward one second per entry from now, so the last listed product is
// the newest.
func ApplySeed(ctx context.Context, db *gorm.DB, s *Seed, now time.Time) (SeedResult, error) {
	var res SeedResult
	now = now.UTC()
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		catIDs := make(map[string]string, len(s.Categories))
		for _, c := range s.Categories {
			row := domain.Category{ID: uuid.NewString(), Name: c.Name, Slug: c.Slug, CreatedAt: now, UpdatedAt: now}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "slug"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
			}).Create(&row).Error; err != nil {
				return fmt.Errorf("upsert category %q: %w", c.Slug, err)
			}
			var stored domain.Category
			if err := tx.Where("slug = ?", c.Slug).First(&stored).Error; err != nil {
				return fmt.Errorf("load category %q: %w", c.Slug, err)
			}
			catIDs[c.Slug] = stored.ID
			res.Categories++
		}

		for i, p := range s.Products {
			at := now.Add(time.Duration(i) * time.Second)
			row := domain.Product{
				ID:          uuid.NewString(),
				Name:        p.Name,
				Description: p.Description,
				Price:       p.Price,
				Stock:       p.Stock,
				CreatedAt:   at,
				UpdatedAt:   at,
			}
			if id, ok := catIDs[p.Category]; ok {
				row.CategoryID = &id
			}
			for pos, url := range p.Images {
				row.Images = append(row.Images, domain.ProductImage{ID: uuid.NewString(), URL: url, Position: pos, CreatedAt: at})
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("insert product %q: %w", p.Name, err)
			}

			orderID := uuid.NewString()
			for n := 0; n < p.Orders; n++ {
				item := domain.OrderItem{ID: uuid.NewString(), OrderID: orderID, ProductID: row.ID, Quantity: 1, UnitPrice: p.Price, CreatedAt: at}
				if err := tx.Create(&item).Error; err != nil {
					return fmt.Errorf("insert order item for %q: %w", p.Name, err)
				}
			}
			for _, r := range p.Reviews {
				rev := domain.Review{ID: uuid.NewString(), ProductID: row.ID, UserID: r.User, Rating: r.Rating, Comment: r.Comment, CreatedAt: at}
				if err := tx.Create(&rev).Error; err != nil {
					return fmt.Errorf("insert review for %q: %w", p.Name, err)
				}
			}
			res.Products++
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}
	return res, nil
}
