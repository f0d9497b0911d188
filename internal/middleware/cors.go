package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
)

// CORS answers preflight requests and decorates the others for the given origins.
//
// Preflight requests are answered by cors itself and stop the chain.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	})

	return func(gctx *gin.Context) {
		var passed bool

		c.Handler(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			passed = true
			gctx.Request = r
			gctx.Next()
		})).ServeHTTP(gctx.Writer, gctx.Request)

		if !passed {
			gctx.Abort()
		}
	}
}
