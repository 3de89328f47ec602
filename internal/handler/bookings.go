package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Index handles GET /. It lists every claimed booking joined with its
// user, movie, screen and seat, newest first. After a burst of
// concurrent claims this listing is where double bookings from the
// unsafe strategies become visible: the same seat code shows up twice.
func (h *BookingHandler) Index(c echo.Context) error {
	details, err := h.Bookings.List(context.WithoutCancel(c.Request().Context()))
	if err != nil {
		return respond(c, http.StatusInternalServerError, nil, "database error")
	}
	return respond(c, http.StatusOK, echo.Map{"bookings": details}, "")
}
