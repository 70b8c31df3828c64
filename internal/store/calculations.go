package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Calculations provides access to calculation storage.
type Calculations struct {
	db *gorm.DB
}

// NewCalculations creates a calculation repository.
func NewCalculations(db *gorm.DB) *Calculations {
	return &Calculations{db: db}
}

// Create saves a new calculation and fills in its ID and timestamps.
func (r *Calculations) Create(ctx context.Context, c *Calculation) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("failed to create calculation: %w", err)
	}
	return nil
}

// FindByID retrieves a calculation by its ID.
func (r *Calculations) FindByID(ctx context.Context, id uint) (*Calculation, error) {
	var c Calculation
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find calculation: %w", err)
	}
	return &c, nil
}

// FindAll retrieves every calculation in insertion order.
func (r *Calculations) FindAll(ctx context.Context) ([]*Calculation, error) {
	var cs []*Calculation
	if err := r.db.WithContext(ctx).Order("id").Find(&cs).Error; err != nil {
		return nil, fmt.Errorf("failed to find calculations: %w", err)
	}
	return cs, nil
}

// Update overwrites the operation, operands and result of an existing
// calculation. Zero operands are written too.
func (r *Calculations) Update(ctx context.Context, c *Calculation) error {
	result := r.db.WithContext(ctx).Model(&Calculation{}).Where("id = ?", c.ID).Updates(map[string]any{
		"type":       c.Type,
		"a":          c.A,
		"b":          c.B,
		"result":     c.Result,
		"updated_at": time.Now(),
	})
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update calculation: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a calculation by ID.
func (r *Calculations) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Calculation{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete calculation: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
