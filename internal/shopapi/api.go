// Package shopapi serves the storefront: catalog browsing and the
// per-session shopping cart.
package shopapi

import (
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/talkincode/toughshop/internal/webserver"
	"github.com/talkincode/toughshop/pkg/common"
)

// cartSessionKey is the session value naming the visitor's cart
const cartSessionKey = "cart_id"

// Init registers the storefront routes under /api/shop
func Init(s *webserver.WebServer) {
	registerProductRoutes(s)
	registerCartRoutes(s)
}

var (
	ok             = webserver.OK
	fail           = webserver.Fail
	paged          = webserver.Paged
	failValidation = webserver.FailValidation
)

// lookupCartID returns the cart id stored in the session, "" when none
func lookupCartID(c echo.Context) string {
	sess, _ := session.Get(webserver.SessionName, c)
	if sess == nil {
		return ""
	}
	id, _ := sess.Values[cartSessionKey].(string)
	return id
}

// ensureCartID returns the session's cart id, minting and saving one on
// first use. It must run before the response body is written.
func ensureCartID(c echo.Context) (string, error) {
	// an undecodable cookie still yields a fresh session
	sess, err := session.Get(webserver.SessionName, c)
	if sess == nil {
		return "", errors.Wrap(err, "load session")
	}
	if id, _ := sess.Values[cartSessionKey].(string); id != "" {
		return id, nil
	}
	id := common.UUID()
	sess.Values[cartSessionKey] = id
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return "", errors.Wrap(err, "save session")
	}
	return id, nil
}
