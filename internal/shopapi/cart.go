package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/talkincode/toughshop/internal/cart"
	"github.com/talkincode/toughshop/internal/cartsvc"
	"github.com/talkincode/toughshop/internal/webserver"
)

type addItemPayload struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
}

// values below one are ignored by the cart rather than rejected; the upper
// bound matches cart.MaxQuantity
type updateQuantityPayload struct {
	Quantity *int `json:"quantity" validate:"required,lte=9999"`
}

type mutationResult struct {
	cartsvc.View
	Changed bool `json:"changed"`
}

type checkoutResult struct {
	Summary string        `json:"summary"`
	Receipt *cart.Receipt `json:"receipt"`
}

func registerCartRoutes(s *webserver.WebServer) {
	s.ApiGET("/shop/cart", getCart)
	s.ApiGET("/shop/cart/count", getCartCount)
	s.ApiPOST("/shop/cart/items", addCartItem)
	s.ApiPUT("/shop/cart/items/:id", updateCartItem)
	s.ApiDELETE("/shop/cart/items/:id", removeCartItem)
	s.ApiDELETE("/shop/cart", clearCart)
	s.ApiPOST("/shop/cart/checkout", checkoutCart)
}

func carts(c echo.Context) *cartsvc.Service {
	return webserver.GetAppContext(c).Carts()
}

func getCart(c echo.Context) error {
	return ok(c, carts(c).View(lookupCartID(c)))
}

func getCartCount(c echo.Context) error {
	v := carts(c).View(lookupCartID(c))
	return ok(c, map[string]int{"totalCount": v.TotalCount})
}

func addCartItem(c echo.Context) error {
	var payload addItemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart item", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return failValidation(c, err)
	}

	sid, err := ensureCartID(c)
	if err != nil {
		return err
	}
	v, err := carts(c).AddProduct(c.Request().Context(), sid, payload.ProductID)
	if errors.Is(err, cartsvc.ErrProductNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}
	return ok(c, v)
}

func updateCartItem(c echo.Context) error {
	id, err := webserver.ParseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var payload updateQuantityPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse quantity", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return failValidation(c, err)
	}

	v, changed := carts(c).UpdateQuantity(lookupCartID(c), id, *payload.Quantity)
	return ok(c, mutationResult{View: v, Changed: changed})
}

func removeCartItem(c echo.Context) error {
	id, err := webserver.ParseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	v, changed := carts(c).RemoveItem(lookupCartID(c), id)
	return ok(c, mutationResult{View: v, Changed: changed})
}

func clearCart(c echo.Context) error {
	return ok(c, carts(c).Clear(lookupCartID(c)))
}

func checkoutCart(c echo.Context) error {
	receipt, summary, err := carts(c).Checkout(c.Request().Context(), lookupCartID(c))
	if errors.Is(err, cart.ErrEmptyCart) {
		return fail(c, http.StatusConflict, "CART_EMPTY", "Your cart is empty", nil)
	} else if err != nil {
		return err
	}
	return ok(c, checkoutResult{Summary: summary, Receipt: receipt})
}
