package middleware

import "github.com/labstack/echo/v4"

// AllowedHeaders is the Access-Control-Allow-Headers value sent with every response.
const AllowedHeaders = "Origin, X-Requested-With, Content-Type, Accept, x-auth"

// AllowHeaders adds the Access-Control-Allow-Headers header to every
// response, not only to preflight requests.
func AllowHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Add(echo.HeaderAccessControlAllowHeaders, AllowedHeaders)
			return next(c)
		}
	}
}
