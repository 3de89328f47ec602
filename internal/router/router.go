package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/pkamnerd/movie-booking-locks/internal/handler" // import the handlers that implement business logic
)

// RegisterRoutes registers the health check and the booking endpoints on
// the provided Echo instance. One POST route exists per concurrency
// strategy; the paths are kept identical to the legacy service so
// existing load-test scripts keep working.
func RegisterRoutes(e *echo.Echo, b *handler.BookingHandler) {
	// Health endpoint for load balancers and monitoring systems.
	e.GET("/healthz", handler.Health)

	// Index page listing every claimed booking with its related names.
	e.GET("/", b.Index)

	// Booking without any lock technique: the intentionally racy baseline.
	e.POST("/create", b.NoLock)

	// Booking with a row lock on the seeded placeholder row (recommended).
	e.POST("/create/database/lockforupdate", b.LockForUpdate)

	// Booking with an exclusive lock taken before inserting; prone to
	// gap-lock deadlocks when run without seeded placeholders.
	e.POST("/create/database/lockforinsert", b.LockForInsert)

	// Booking under a shared lock whose read is deliberately discarded.
	e.POST("/create/database/sharedlock", b.SharedLock)

	// Booking under a Redis SET NX mutex instead of a database lock.
	e.POST("/create/redis", b.RedisLock)
}
