package service

import (
	"context"
	"strings"

	"github.com/santhosh-ovd/indian-dishes/server/internal/models"
	"github.com/santhosh-ovd/indian-dishes/server/internal/repository"
)

// DishService is the dish query engine: filtering, sorting, pagination,
// free-text search and ingredient matching over a read-only repository.
// It holds no mutable state and is safe for concurrent use.
type DishService struct {
	repo repository.DishRepository
}

// NewDishService creates a new dish service
func NewDishService(repo repository.DishRepository) *DishService {
	return &DishService{
		repo: repo,
	}
}

// ListDishes filters by diet and course, sorts, then paginates.
// Total counts the filtered dishes before pagination.
func (s *DishService) ListDishes(ctx context.Context, req models.QueryRequest) (*models.QueryResult, error) {
	req = req.Normalize()

	dishes, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	filtered := filterDishes(dishes, func(d models.Dish) bool {
		if req.Diet != "" && !strings.EqualFold(d.Diet, req.Diet) {
			return false
		}
		if req.Course != "" && !strings.EqualFold(d.Course, req.Course) {
			return false
		}
		return true
	})

	total := len(filtered)
	sortDishes(filtered, req.SortBy, req.SortOrder)

	return &models.QueryResult{
		Data:  paginate(filtered, req.Page, req.Limit),
		Total: total,
	}, nil
}

// GetDishByName returns the first dish whose name matches ignoring case,
// or repository.ErrDishNotFound.
func (s *DishService) GetDishByName(ctx context.Context, name string) (*models.Dish, error) {
	return s.repo.FindByName(ctx, name)
}

// GetDishByID returns the dish with the exact id, or repository.ErrDishNotFound.
func (s *DishService) GetDishByID(ctx context.Context, id string) (*models.Dish, error) {
	return s.repo.GetByID(ctx, id)
}

// SearchDishes returns, in store order, every dish whose name, ingredients,
// state or region contains the trimmed query ignoring case. A blank query
// returns an empty result.
func (s *DishService) SearchDishes(ctx context.Context, query string) ([]models.Dish, error) {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return []models.Dish{}, nil
	}

	dishes, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	return filterDishes(dishes, func(d models.Dish) bool {
		return containsFold(d.Name, term) ||
			containsFold(d.Ingredients, term) ||
			containsFold(d.State, term) ||
			containsFold(d.Region, term)
	}), nil
}

// FindPossibleDishes returns dishes for which at least one of their
// ingredients and at least one supplied ingredient contain each other as a
// substring, in either direction. "chilli" therefore matches
// "red chilli powder", and "red chilli powder" matches a dish listing "chilli".
// This favors recall; it is not set equality.
func (s *DishService) FindPossibleDishes(ctx context.Context, ingredients []string) ([]models.Dish, error) {
	available := normalizeIngredients(ingredients)
	if len(available) == 0 {
		return []models.Dish{}, nil
	}

	dishes, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	return filterDishes(dishes, func(d models.Dish) bool {
		for _, required := range splitIngredients(d.Ingredients) {
			for _, have := range available {
				if strings.Contains(required, have) || strings.Contains(have, required) {
					return true
				}
			}
		}
		return false
	}), nil
}

// SearchByIngredients returns dishes that contain every supplied ingredient,
// where an ingredient is contained when one of the dish's ingredients has it
// as a substring.
func (s *DishService) SearchByIngredients(ctx context.Context, ingredients []string) ([]models.Dish, error) {
	wanted := normalizeIngredients(ingredients)
	if len(wanted) == 0 {
		return []models.Dish{}, nil
	}

	dishes, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	return filterDishes(dishes, func(d models.Dish) bool {
		have := splitIngredients(d.Ingredients)
		for _, w := range wanted {
			found := false
			for _, h := range have {
				if strings.Contains(h, w) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}), nil
}

// AdvancedSearch ANDs every non-empty criterion: name is a case-insensitive
// substring, state, region and course are case-insensitive equality, diet and
// flavor profile are exact equality.
func (s *DishService) AdvancedSearch(ctx context.Context, c models.SearchCriteria) ([]models.Dish, error) {
	dishes, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.ToLower(c.Name)
	return filterDishes(dishes, func(d models.Dish) bool {
		switch {
		case c.Name != "" && !containsFold(d.Name, name):
			return false
		case c.State != "" && !strings.EqualFold(d.State, c.State):
			return false
		case c.Region != "" && !strings.EqualFold(d.Region, c.Region):
			return false
		case c.Diet != "" && d.Diet != c.Diet:
			return false
		case c.Course != "" && !strings.EqualFold(d.Course, c.Course):
			return false
		case c.FlavorProfile != "" && d.FlavorProfile != c.FlavorProfile:
			return false
		}
		return true
	}), nil
}

// DishesByRegion returns dishes from the region, ignoring case.
func (s *DishService) DishesByRegion(ctx context.Context, region string) ([]models.Dish, error) {
	return s.AdvancedSearch(ctx, models.SearchCriteria{Region: region})
}

// DishesByState returns dishes from the state, ignoring case.
func (s *DishService) DishesByState(ctx context.Context, state string) ([]models.Dish, error) {
	return s.AdvancedSearch(ctx, models.SearchCriteria{State: state})
}

// DishesByCourse returns dishes of the course, ignoring case.
func (s *DishService) DishesByCourse(ctx context.Context, course string) ([]models.Dish, error) {
	return s.AdvancedSearch(ctx, models.SearchCriteria{Course: course})
}

// DishesByDiet returns dishes whose diet is exactly diet.
func (s *DishService) DishesByDiet(ctx context.Context, diet string) ([]models.Dish, error) {
	if diet == "" {
		return []models.Dish{}, nil
	}
	return s.AdvancedSearch(ctx, models.SearchCriteria{Diet: diet})
}

// Count returns the number of dishes in the store.
func (s *DishService) Count() int {
	return s.repo.Len()
}
