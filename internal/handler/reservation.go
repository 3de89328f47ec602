package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pkamnerd/movie-booking-locks/internal/delay"
	"github.com/pkamnerd/movie-booking-locks/internal/model"
	"github.com/pkamnerd/movie-booking-locks/internal/queue"
	"github.com/pkamnerd/movie-booking-locks/internal/redislock"
	"github.com/pkamnerd/movie-booking-locks/internal/repository"
	queue_publisher "github.com/pkamnerd/movie-booking-locks/internal/service"
	"github.com/pkamnerd/movie-booking-locks/internal/store"
	"github.com/pkamnerd/movie-booking-locks/internal/strategy"
	"github.com/pkamnerd/movie-booking-locks/internal/validator"
)

// BookingHandler serves the reservation endpoints. Each endpoint runs
// the same pipeline — validate the claim, pick a strategy, attempt,
// map the outcome — and differs only in which concurrency strategy it
// selects. Validation always happens before any strategy runs, so a
// bad request never opens a transaction.
type BookingHandler struct {
	Validator *validator.ClaimValidator // resolves request codes to a claim
	Store     store.Store               // booking persistence used by strategies
	Bookings  *repository.BookingRepo   // booking listing for the index page
	Locks     *redislock.Manager        // nil when Redis is unavailable
	Publish   bool                      // emit booking.created events on wins
}

// NewBookingHandler constructs a BookingHandler. locks may be nil; the
// Redis strategy then reports its absence instead of booking.
func NewBookingHandler(v *validator.ClaimValidator, bookings *repository.BookingRepo, locks *redislock.Manager) *BookingHandler {
	if v == nil || bookings == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{
		Validator: v,
		Store:     bookings,
		Bookings:  bookings,
		Locks:     locks,
		Publish:   true,
	}
}

// apiResponse is the envelope every reservation endpoint returns. The
// embedded code always equals the HTTP status.
type apiResponse struct {
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

func respond(c echo.Context, code int, data interface{}, msg string) error {
	if data == nil {
		data = echo.Map{}
	}
	return c.JSON(code, apiResponse{Code: code, Data: data, Message: msg})
}

// Messages mirror the legacy API responses.
const (
	msgCreated     = "Booking is created!"
	msgNotAccepted = "Booking is not accepted!"
)

// NoLock handles POST /create.
func (h *BookingHandler) NoLock(c echo.Context) error {
	return h.reserve(c, strategy.KindNoLock)
}

// LockForUpdate handles POST /create/database/lockforupdate. Requires
// the placeholder bookings to be seeded (`cmd/init -booking`).
func (h *BookingHandler) LockForUpdate(c echo.Context) error {
	return h.reserve(c, strategy.KindLockForUpdate)
}

// LockForInsert handles POST /create/database/lockforinsert. Run it
// without seeded placeholders to provoke its gap-lock deadlocks.
func (h *BookingHandler) LockForInsert(c echo.Context) error {
	return h.reserve(c, strategy.KindLockForInsert)
}

// SharedLock handles POST /create/database/sharedlock.
func (h *BookingHandler) SharedLock(c echo.Context) error {
	return h.reserve(c, strategy.KindSharedLock)
}

// RedisLock handles POST /create/redis.
func (h *BookingHandler) RedisLock(c echo.Context) error {
	return h.reserve(c, strategy.KindRedisLock)
}

func (h *BookingHandler) reserve(c echo.Context, kind strategy.Kind) error {
	d := waitFrom(c)
	var req validator.Request
	// A body that fails to bind is handled like an empty one: the
	// validator rejects it with the missing-parameters message.
	_ = c.Bind(&req)

	// Attempts deliberately ignore client disconnects: once a claim
	// starts it runs to completion, holding its locks through the full
	// injected pause.
	ctx := context.WithoutCancel(c.Request().Context())

	claim, err := h.Validator.Validate(ctx, req)
	if err != nil {
		if ve := validator.AsError(err); ve != nil {
			return respond(c, http.StatusBadRequest, nil, ve.Message)
		}
		return respond(c, http.StatusInternalServerError, nil, "database error")
	}

	strat, err := strategy.New(kind, h.Store, d, h.Locks)
	if err != nil {
		return respond(c, http.StatusInternalServerError, nil, err.Error())
	}

	switch out := strat.Attempt(ctx, claim); out.Result {
	case strategy.ResultWon:
		if h.Publish {
			h.publishCreated(ctx, out.BookingID, strat.Name(), claim)
		}
		return respond(c, http.StatusOK, echo.Map{"id": out.BookingID, "request": claim}, msgCreated)
	case strategy.ResultLost:
		return respond(c, http.StatusNotAcceptable, nil, msgNotAccepted)
	default:
		return respond(c, http.StatusLocked, nil, out.Err.Error())
	}
}

// waitFrom reads the optional ?wait= override (seconds). The default
// 30s pause keeps the race window far wider than request latency.
func waitFrom(c echo.Context) *delay.Injector {
	if raw := c.QueryParam("wait"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			return delay.Seconds(n)
		}
	}
	return delay.New(delay.DefaultWait)
}

// publishCreated emits the booking.created event for a win. Best
// effort: the booking is committed already, so publish failures are
// logged by the publisher and otherwise ignored.
func (h *BookingHandler) publishCreated(ctx context.Context, bookingID uint64, strategyName string, claim model.SeatClaim) {
	_ = queue_publisher.PublishBookingCreated(ctx, queue.BookingCreatedEvent{
		BookingID: bookingID,
		Strategy:  strategyName,
		UserID:    claim.UserID,
		MovieID:   claim.MovieID,
		ScreenID:  claim.ScreenID,
		SeatID:    claim.SeatID,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
}
