package models

// Category represents a global post category. Categories have no owner and
// are managed by administrators only.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CreateCategoryRequest represents a category creation request
type CreateCategoryRequest struct {
	Name string `json:"name"`
}
