// Package adminapi serves catalog management for shop operators.
package adminapi

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/talkincode/toughshop/internal/webserver"
)

// Init registers the admin routes under /api/admin
func Init(s *webserver.WebServer) {
	registerProductRoutes(s)
	registerMetricsRoutes(s)
}

var (
	ok                    = webserver.OK
	fail                  = webserver.Fail
	paged                 = webserver.Paged
	handleValidationError = webserver.FailValidation
)

// GetDB returns the database handle of the request's application
func GetDB(c echo.Context) *gorm.DB {
	return webserver.GetAppContext(c).DB()
}
