package shopapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/talkincode/toughshop/internal/catalog"
	"github.com/talkincode/toughshop/internal/webserver"
)

func registerProductRoutes(s *webserver.WebServer) {
	s.ApiGET("/shop/products", listProducts)
	s.ApiGET("/shop/products/:id", getProduct)
	s.ApiGET("/shop/categories", listCategories)
}

func listProducts(c echo.Context) error {
	page, pageSize := webserver.ParsePagination(c)
	filter := catalog.ProductFilter{
		Category: strings.TrimSpace(c.QueryParam("category")),
		Query:    strings.TrimSpace(c.QueryParam("q")),
		Sort:     strings.TrimSpace(c.QueryParam("sort")),
		Order:    strings.TrimSpace(c.QueryParam("order")),
		Page:     page,
		PageSize: pageSize,
	}

	repo := webserver.GetAppContext(c).Catalog().Repository()
	rows, total, err := repo.List(c.Request().Context(), filter)
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
	p, err := webserver.GetAppContext(c).Catalog().GetByID(c.Request().Context(), id)
	if errors.Is(err, catalog.ErrProductNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}
	return ok(c, p)
}

func listCategories(c echo.Context) error {
	repo := webserver.GetAppContext(c).Catalog().Repository()
	categories, err := repo.Categories(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query categories", err.Error())
	}
	return ok(c, categories)
}
