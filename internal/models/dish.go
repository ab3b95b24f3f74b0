package models

// Diet values used by the dataset.
const (
	DietVegetarian    = "vegetarian"
	DietNonVegetarian = "non vegetarian"
)

// Dish represents a single Indian dish from the static dataset.
// Ingredients is kept as the comma-separated string found in the source data.
type Dish struct {
	ID            string `json:"id" yaml:"id" validate:"required"`
	Name          string `json:"name" yaml:"name" validate:"required"`
	Ingredients   string `json:"ingredients" yaml:"ingredients" validate:"required"`
	Diet          string `json:"diet" yaml:"diet" validate:"required,oneof='vegetarian' 'non vegetarian'"`
	PrepTime      int    `json:"prep_time" yaml:"prep_time" validate:"gte=0"`
	CookTime      int    `json:"cook_time" yaml:"cook_time" validate:"gte=0"`
	FlavorProfile string `json:"flavor_profile" yaml:"flavor_profile"`
	Course        string `json:"course" yaml:"course" validate:"required"`
	State         string `json:"state" yaml:"state"`
	Region        string `json:"region" yaml:"region"`
}
