package web

import (
	"net/http"

	"github.com/charmbracelet/kanban/pkg/config"
	"github.com/go-chi/cors"
	"github.com/gobwas/glob"
)

var defaultCORSHeaders = []string{
	"Accept",
	"Authorization",
	"Content-Type",
	APIKeyHeader,
}

var defaultCORSMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodOptions,
}

// NewCORSHandler returns the CORS middleware for cfg. Allowed origins are
// glob patterns where "*" stops at dots and colons. A lone "*" allows any
// origin. With no patterns configured no cross-origin request is allowed.
func NewCORSHandler(cfg config.CORSConfig) (func(http.Handler) http.Handler, error) {
	patterns := make([]glob.Glob, 0, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			o = "**"
		}
		g, err := glob.Compile(o, '.', ':')
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, g)
	}

	headers := cfg.AllowedHeaders
	if len(headers) == 0 {
		headers = defaultCORSHeaders
	}
	methods := cfg.AllowedMethods
	if len(methods) == 0 {
		methods = defaultCORSMethods
	}

	return cors.Handler(cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			for _, g := range patterns {
				if g.Match(origin) {
					return true
				}
			}
			return false
		},
		AllowedMethods:   methods,
		AllowedHeaders:   headers,
		AllowCredentials: true,
		MaxAge:           300,
	}), nil
}
