package http

import (
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// createCORSMiddleware returns the CORS middleware for the dashboard and the public
// supervision request form, or nil when CORS is off or no usable origin is configured.
//
// allowOriginsStr is a comma-separated origin list. A lone "*" allows any origin for the
// public form; credentials are then disabled since browsers reject "*" with credentials.
func createCORSMiddleware(enabled bool, allowOriginsStr string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	origins, rejected := parseOrigins(allowOriginsStr)
	for _, origin := range rejected {
		logger.Warn("ignoring invalid CORS origin", slog.String("origin", origin))
	}
	if len(origins) == 0 {
		logger.Warn("CORS enabled but no valid origins configured - CORS will not be applied")
		return nil
	}

	config := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:  []string{"Authorization", "Content-Type", "X-Request-Id"},
		ExposeHeaders: []string{"X-Request-Id", "Retry-After"},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 1 && origins[0] == "*" {
		config.AllowAllOrigins = true
		logger.Info("CORS enabled for any origin without credentials")
	} else {
		config.AllowOrigins = origins
		config.AllowCredentials = true
		logger.Info("CORS enabled", slog.Any("origins", origins))
	}

	return cors.New(config)
}

// parseOrigins splits the list and keeps "*" or absolute http(s) origins without a path.
func parseOrigins(originsStr string) (origins, rejected []string) {
	for part := range strings.SplitSeq(originsStr, ",") {
		origin := strings.TrimRight(strings.TrimSpace(part), "/")
		if origin == "" {
			continue
		}
		if origin == "*" || validOrigin(origin) {
			origins = append(origins, origin)
			continue
		}
		rejected = append(rejected, origin)
	}
	return origins, rejected
}

func validOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" && u.Path == "" && u.RawQuery == ""
}
