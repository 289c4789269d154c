package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"registrar/pkg/logger"
)

func CORS(allowedOrigins []string, log *logger.Logger) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         600,
	})
	log.Debug("CORS configured", "allowed_origins", allowedOrigins)
	return c.Handler
}
