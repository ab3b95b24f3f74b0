package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"

	"github.com/santhosh-ovd/indian-dishes/server/internal/models"
)

var (
	ErrDishNotFound = errors.New("dish not found")
	ErrDuplicateID  = errors.New("duplicate dish id")
)

// nameFilterFalsePositiveRate bounds how often a miss on FindByName still scans the store.
const nameFilterFalsePositiveRate = 0.01

// DishRepository defines the interface for dish data access
type DishRepository interface {
	All(ctx context.Context) ([]models.Dish, error)
	GetByID(ctx context.Context, id string) (*models.Dish, error)
	FindByName(ctx context.Context, name string) (*models.Dish, error)
	Len() int
}

// InMemoryDishRepository implements DishRepository over a fixed, ordered slice.
// It is never mutated after construction, so it is safe for concurrent use
// without locking.
type InMemoryDishRepository struct {
	dishes []models.Dish
	byID   map[string]int
	names  *bloom.BloomFilter
}

// NewInMemoryDishRepository creates a read-only store from the given dishes.
// The slice is copied; ids must be unique.
func NewInMemoryDishRepository(dishes []models.Dish) (*InMemoryDishRepository, error) {
	stored := make([]models.Dish, len(dishes))
	copy(stored, dishes)

	n := uint(len(stored))
	if n == 0 {
		n = 1
	}
	names := bloom.NewWithEstimates(n, nameFilterFalsePositiveRate)
	byID := make(map[string]int, len(stored))

	for i, d := range stored {
		if _, exists := byID[d.ID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, d.ID)
		}
		byID[d.ID] = i
		names.AddString(nameKey(d.Name))
	}

	return &InMemoryDishRepository{
		dishes: stored,
		byID:   byID,
		names:  names,
	}, nil
}

// All returns the dishes in store order. The returned slice is a copy.
func (r *InMemoryDishRepository) All(ctx context.Context) ([]models.Dish, error) {
	dishes := make([]models.Dish, len(r.dishes))
	copy(dishes, r.dishes)
	return dishes, nil
}

// GetByID returns a dish by its ID
func (r *InMemoryDishRepository) GetByID(ctx context.Context, id string) (*models.Dish, error) {
	i, exists := r.byID[id]
	if !exists {
		return nil, ErrDishNotFound
	}
	dish := r.dishes[i]
	return &dish, nil
}

// FindByName returns the first dish, in store order, whose name equals name
// ignoring case.
func (r *InMemoryDishRepository) FindByName(ctx context.Context, name string) (*models.Dish, error) {
	key := nameKey(name)
	if !r.names.TestString(key) {
		return nil, ErrDishNotFound
	}

	for i := range r.dishes {
		if nameKey(r.dishes[i].Name) == key {
			dish := r.dishes[i]
			return &dish, nil
		}
	}
	return nil, ErrDishNotFound
}

// Len returns the number of dishes in the store.
func (r *InMemoryDishRepository) Len() int {
	return len(r.dishes)
}

func nameKey(name string) string {
	return strings.ToLower(name)
}
