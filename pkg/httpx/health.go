package httpx

import (
	"context"
	"net/http"
	"sort"
	"time"
)

// HealthChecker is satisfied by any dependency that exposes a Ping method
// (database.Database, cache.RedisClient and events.EventBus all qualify).
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthChecks maps a dependency name (reported as a JSON key) to its checker.
type HealthChecks map[string]HealthChecker

// HealthHandler probes every checker and answers 200 {"status":"ok", ...} or
// 503 {"status":"degraded", ...} with "unreachable" for each failing dependency.
func HealthHandler(checks HealthChecks) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := map[string]string{"status": "ok"}
		for _, name := range names {
			resp[name] = "ok"
			if err := checks[name].Ping(ctx); err != nil {
				resp["status"] = "degraded"
				resp[name] = "unreachable"
			}
		}

		status := http.StatusOK
		if resp["status"] != "ok" {
			status = http.StatusServiceUnavailable
		}
		JSON(w, status, resp)
	}
}
