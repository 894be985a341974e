package handler

import (
	"net/http"

	"github.com/kontor/kontor-backend/internal/domain"
	"github.com/kontor/kontor-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	resolver *service.CategoryResolver
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(resolver *service.CategoryResolver) *CategoryHandler {
	return &CategoryHandler{resolver: resolver}
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          int32  `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	IsDefault   bool   `json:"isDefault"`
}

// GetCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} CategoryResponse
// @Router /categories [get]
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	categories, err := h.resolver.Categories(c.Request().Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list categories")
		return NewInternalError(c, "Failed to list categories")
	}

	response := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		response[i] = toCategoryResponse(category)
	}
	return c.JSON(http.StatusOK, response)
}

func toCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Type:        string(category.Type),
		Description: category.Description,
		IsDefault:   category.IsDefault,
	}
}
