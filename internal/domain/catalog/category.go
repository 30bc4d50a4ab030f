package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/gosimple/slug"
	"github.com/shopfront/backend/internal/domain/shared"
)

// Category groups products. Names are unique across the catalog.
type Category struct {
	shared.BaseAggregateRoot
	Name        string
	Slug        string
	Description string
}

// NewCategory validates the input and builds a category ready to persist
func NewCategory(name, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slug.Make(name),
		Description:       strings.TrimSpace(description),
	}, nil
}

// Update renames the category and replaces its description
func (c *Category) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return err
	}

	c.Name = name
	c.Slug = slug.Make(name)
	c.Description = strings.TrimSpace(description)
	c.IncrementVersion()
	return nil
}

func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 255 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 255 characters")
	}
	return nil
}

// ErrCategoryInUse is returned when deleting a category that still holds products
var ErrCategoryInUse = shared.NewDomainError("CATEGORY_IN_USE", "Category still has products")

// ErrCategoryNameTaken is returned when a category name already exists
var ErrCategoryNameTaken = shared.NewDomainError("CATEGORY_NAME_EXISTS", "A category with this name already exists")

// ErrCategoryNotFound is returned when a product payload references an unknown category
var ErrCategoryNotFound = shared.NewDomainError("CATEGORY_NOT_FOUND", "Referenced category does not exist")
