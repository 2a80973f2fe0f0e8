package adminapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/talkincode/toughshop/internal/catalog"
	"github.com/talkincode/toughshop/internal/domain"
	"github.com/talkincode/toughshop/internal/webserver"
)

type productPayload struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Price       int64  `json:"price" validate:"gte=0"`
	Category    string `json:"category" validate:"omitempty,max=64"`
	Image       string `json:"image" validate:"omitempty,max=1024"`
	Description string `json:"description" validate:"omitempty,max=2048"`
}

type productUpdatePayload struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Price       *int64  `json:"price" validate:"omitempty,gte=0"`
	Category    *string `json:"category" validate:"omitempty,max=64"`
	Image       *string `json:"image" validate:"omitempty,max=1024"`
	Description *string `json:"description" validate:"omitempty,max=2048"`
}

// registerProductRoutes registers catalog product CRUD endpoints
func registerProductRoutes(s *webserver.WebServer) {
	s.ApiGET("/admin/products", listProducts)
	s.ApiGET("/admin/products/:id", getProduct)
	s.ApiPOST("/admin/products", createProduct)
	s.ApiPUT("/admin/products/:id", updateProduct)
	s.ApiDELETE("/admin/products/:id", deleteProduct)
}

func catalogCache(c echo.Context) *catalog.Cache {
	return webserver.GetAppContext(c).Catalog()
}

func listProducts(c echo.Context) error {
	page, pageSize := webserver.ParsePagination(c)

	// Sorting defaults to newest first for operators
	order := strings.ToUpper(strings.TrimSpace(c.QueryParam("order")))
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	filter := catalog.ProductFilter{
		Category: strings.TrimSpace(c.QueryParam("category")),
		Query:    strings.TrimSpace(c.QueryParam("q")),
		Sort:     strings.TrimSpace(c.QueryParam("sort")),
		Order:    order,
		Page:     page,
		PageSize: pageSize,
	}

	rows, total, err := catalogCache(c).Repository().List(c.Request().Context(), filter)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getProduct(c echo.Context) error {
	id, err := webserver.ParseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}
	return ok(c, p)
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	now := time.Now()
	p := domain.Product{
		Name:        payload.Name,
		Price:       payload.Price,
		Category:    strings.TrimSpace(payload.Category),
		Image:       strings.TrimSpace(payload.Image),
		Description: payload.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	cache := catalogCache(c)
	if err := cache.Repository().Create(c.Request().Context(), &p); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}
	cache.Invalidate(p.ID)
	return ok(c, p)
}

func updateProduct(c echo.Context) error {
	id, err := webserver.ParseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	var payload productUpdatePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}
	if payload.Name != nil {
		name := strings.TrimSpace(*payload.Name)
		payload.Name = &name
		if name == "" {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
		}
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	cache := catalogCache(c)
	p, err := cache.Repository().GetByID(c.Request().Context(), id)
	if errors.Is(err, catalog.ErrProductNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}

	if payload.Name != nil {
		p.Name = *payload.Name
	}
	if payload.Price != nil {
		p.Price = *payload.Price
	}
	if payload.Category != nil {
		p.Category = strings.TrimSpace(*payload.Category)
	}
	if payload.Image != nil {
		p.Image = strings.TrimSpace(*payload.Image)
	}
	if payload.Description != nil {
		p.Description = *payload.Description
	}
	p.UpdatedAt = time.Now()

	if err := cache.Repository().Update(c.Request().Context(), p); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}
	cache.Invalidate(p.ID)
	return ok(c, p)
}

func deleteProduct(c echo.Context) error {
	id, err := webserver.ParseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	cache := catalogCache(c)
	err = cache.Repository().Delete(c.Request().Context(), id)
	if errors.Is(err, catalog.ErrProductNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}
	cache.Invalidate(id)
	return ok(c, map[string]interface{}{"id": id})
}
