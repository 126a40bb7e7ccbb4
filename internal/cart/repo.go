package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/kaffecito/kaffecito/internal/catalog"
	"github.com/kaffecito/kaffecito/pkg/db"
	"github.com/kaffecito/kaffecito/pkg/types"
	"gorm.io/gorm"
)

type lineRecord struct {
	ID         uint `gorm:"primaryKey"`
	Position   int  `gorm:"not null"`
	ProductID  int  `gorm:"not null"`
	Name       string
	PriceCents int64
	CategoryID int
	Stock      int
	Active     bool
	ImageURL   string
	Quantity   int `gorm:"not null"`
	Notes      string
}

func (lineRecord) TableName() string {
	return "cart_lines"
}

type metaRecord struct {
	ID          uint `gorm:"primaryKey"`
	TableNumber int
}

func (metaRecord) TableName() string {
	return "cart_meta"
}

// Repository snapshots the cart into the local state database so it survives
// between command invocations; the snapshot is destroyed by Save of an empty
// store, which is what Clear-then-Save after submission amounts to.
type Repository struct {
	client *db.Client
}

func NewRepository(client *db.Client) (*Repository, error) {
	if client == nil {
		return nil, fmt.Errorf("state database client required")
	}
	if err := client.DB().AutoMigrate(&lineRecord{}, &metaRecord{}); err != nil {
		return nil, fmt.Errorf("migrating cart tables: %w", err)
	}
	return &Repository{client: client}, nil
}

// Load hydrates a Store from the stored snapshot.
func (r *Repository) Load(ctx context.Context) (*Store, error) {
	var records []lineRecord
	if err := r.client.DB().WithContext(ctx).Order("position asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("loading cart: %w", err)
	}

	store := NewStore()
	for _, rec := range records {
		store.lines = append(store.lines, Line{
			Product: catalog.Product{
				ID:         rec.ProductID,
				Name:       rec.Name,
				Price:      types.FromCents(rec.PriceCents),
				CategoryID: rec.CategoryID,
				Stock:      rec.Stock,
				Active:     rec.Active,
				ImageURL:   rec.ImageURL,
			},
			Quantity: rec.Quantity,
			Notes:    rec.Notes,
		})
	}

	var meta metaRecord
	err := r.client.DB().WithContext(ctx).First(&meta, 1).Error
	if err == nil {
		store.table = meta.TableNumber
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("loading cart meta: %w", err)
	}
	return store, nil
}

// Save replaces the snapshot with the store's current contents.
func (r *Repository) Save(ctx context.Context, store *Store) error {
	items := store.Items()
	table := store.Table()

	return r.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&lineRecord{}).Error; err != nil {
			return fmt.Errorf("clearing cart snapshot: %w", err)
		}
		for i, line := range items {
			rec := lineRecord{
				Position:   i,
				ProductID:  line.Product.ID,
				Name:       line.Product.Name,
				PriceCents: line.Product.Price.Cents(),
				CategoryID: line.Product.CategoryID,
				Stock:      line.Product.Stock,
				Active:     line.Product.Active,
				ImageURL:   line.Product.ImageURL,
				Quantity:   line.Quantity,
				Notes:      line.Notes,
			}
			if err := tx.Create(&rec).Error; err != nil {
				return fmt.Errorf("saving cart line: %w", err)
			}
		}

		meta := metaRecord{ID: 1, TableNumber: table}
		if err := tx.Save(&meta).Error; err != nil {
			return fmt.Errorf("saving cart meta: %w", err)
		}
		return nil
	})
}
