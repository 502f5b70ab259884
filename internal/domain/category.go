package domain

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Field limits for categories
const (
	MaxCategoryNameLength  = 50
	MaxCategoryIconLength  = 100
	MaxCategoryColorLength = 20
)

// Category validation errors
var (
	ErrEmptyCategoryName    = errors.New("category name cannot be empty")
	ErrCategoryNameTooLong  = errors.New("category name is too long")
	ErrCategoryIconTooLong  = errors.New("category icon is too long")
	ErrCategoryColorTooLong = errors.New("category color is too long")
)

// Category is a named label with optional display hints. Tasks refer to
// categories by name only; Task.Category stays a free label.
type Category struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Icon  *string `json:"icon,omitempty"`
	Color *string `json:"color,omitempty"`
}

// NewCategoryParams carries the fields accepted when creating a category.
type NewCategoryParams struct {
	Name  string
	Icon  *string
	Color *string
}

// NewCategory builds a validated Category. The ID is assigned by the store.
func NewCategory(params NewCategoryParams) (*Category, error) {
	c := &Category{
		Name:  strings.TrimSpace(params.Name),
		Icon:  params.Icon,
		Color: params.Color,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the name and the optional display fields.
func (c *Category) Validate() error {
	if c.Name == "" {
		return NewValidationError("name", "cannot be empty", ErrEmptyCategoryName)
	}
	if utf8.RuneCountInString(c.Name) > MaxCategoryNameLength {
		return NewValidationError("name", "must be at most 50 characters", ErrCategoryNameTooLong)
	}
	if c.Icon != nil && utf8.RuneCountInString(*c.Icon) > MaxCategoryIconLength {
		return NewValidationError("icon", "must be at most 100 characters", ErrCategoryIconTooLong)
	}
	if c.Color != nil && utf8.RuneCountInString(*c.Color) > MaxCategoryColorLength {
		return NewValidationError("color", "must be at most 20 characters", ErrCategoryColorTooLong)
	}
	return nil
}

// CategoryPatch is a partial update of a Category. Nil fields are left as they are.
type CategoryPatch struct {
	Name  *string
	Icon  *string
	Color *string
}

// ApplyPatch applies the supplied fields and re-validates the category.
// On validation failure the category is restored to its previous state.
func (c *Category) ApplyPatch(patch CategoryPatch) error {
	orig := *c

	if patch.Name != nil {
		c.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Icon != nil {
		icon := *patch.Icon
		c.Icon = &icon
	}
	if patch.Color != nil {
		color := *patch.Color
		c.Color = &color
	}

	if err := c.Validate(); err != nil {
		*c = orig
		return err
	}
	return nil
}
