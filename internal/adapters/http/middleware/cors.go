package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORS response headers.
const (
	HeaderAllowOrigin  = "Access-Control-Allow-Origin"
	HeaderAllowMethods = "Access-Control-Allow-Methods"
	HeaderAllowHeaders = "Access-Control-Allow-Headers"
)

// CORS returns middleware that opens a route to any origin. methods lists
// what the route serves; OPTIONS is always appended. A preflight request is
// answered with 200 and an empty body and goes no further.
func CORS(methods ...string) gin.HandlerFunc {
	allow := AllowMethods(methods...)

	return func(c *gin.Context) {
		SetCORSHeaders(c, allow)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

// SetCORSHeaders writes the CORS headers with a prepared method list.
func SetCORSHeaders(c *gin.Context, allowMethods string) {
	h := c.Writer.Header()
	h.Set(HeaderAllowOrigin, "*")
	h.Set(HeaderAllowMethods, allowMethods)
	h.Set(HeaderAllowHeaders, "Content-Type")
}

// AllowMethods renders a method list for Access-Control-Allow-Methods,
// e.g. "GET, OPTIONS".
func AllowMethods(methods ...string) string {
	list := make([]string, 0, len(methods)+1)
	for _, m := range methods {
		if m != http.MethodOptions {
			list = append(list, m)
		}
	}

	return strings.Join(append(list, http.MethodOptions), ", ")
}
