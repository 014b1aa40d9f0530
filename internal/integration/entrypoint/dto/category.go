// Package dto defines request and response payloads for the API endpoints.
package dto

import (
	"github.com/billfold/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
	Type  string `json:"type" binding:"required"`
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	Icon      string `json:"icon"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a Category entity to its response payload.
func ToCategoryResponse(category *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID.String(),
		Name:      category.Name,
		Color:     category.Color,
		Icon:      category.Icon,
		Type:      string(category.Type),
		CreatedAt: category.CreatedAt.Format(timeFormat),
	}
}

// ToCategoryListResponse converts a slice of categories to a list response.
func ToCategoryListResponse(categories []*entity.Category) CategoryListResponse {
	out := CategoryListResponse{Categories: make([]CategoryResponse, len(categories))}
	for i, category := range categories {
		out.Categories[i] = ToCategoryResponse(category)
	}
	return out
}
