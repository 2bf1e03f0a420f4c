package restapi

import (
	"net/http"
	"time"

	"transitpulse.org/internal/app"
)

// RestAPI is the HTTP surface over the scoring and analytics core.
type RestAPI struct {
	*app.Application
	rateLimiter *RateLimiter
}

// NewRestAPI creates a RestAPI with a shared per-key rate limiter.
func NewRestAPI(application *app.Application) *RestAPI {
	return &RestAPI{
		Application: application,
		rateLimiter: NewRateLimiter(application.Config.RateLimit, time.Second),
	}
}

// RequestHasInvalidAPIKey reports whether the request's key query
// parameter is missing from the configured key set.
func (api *RestAPI) RequestHasInvalidAPIKey(r *http.Request) bool {
	key := r.URL.Query().Get("key")
	return !containsKey(api.Config.ApiKeys, key) && !containsKey(api.Config.AdminApiKeys, key)
}

// RequestHasInvalidAdminAPIKey reports whether the request lacks an
// administrative key. Admin keys gate recomputation triggers and
// report moderation.
func (api *RestAPI) RequestHasInvalidAdminAPIKey(r *http.Request) bool {
	return !containsKey(api.Config.AdminApiKeys, r.URL.Query().Get("key"))
}

func containsKey(keys []string, key string) bool {
	if key == "" {
		return false
	}
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
