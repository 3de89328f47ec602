package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkamnerd/movie-booking-locks/internal/delay"
	"github.com/pkamnerd/movie-booking-locks/internal/model"
	"github.com/pkamnerd/movie-booking-locks/internal/repository"
	"github.com/pkamnerd/movie-booking-locks/internal/store"
	"github.com/pkamnerd/movie-booking-locks/internal/validator"
)

// fakeStore is a single-seat store.Store for handler tests. It records
// how many calls it received so tests can assert that rejected
// requests never reach persistence.
type fakeStore struct {
	mu        sync.Mutex
	booking   *model.Booking
	nextID    uint64
	calls     int
	insertErr error
}

func (f *fakeStore) FindBooking(context.Context, model.SeatClaim, store.LockMode) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.booking == nil {
		return nil, nil
	}
	b := *f.booking
	return &b, nil
}

func (f *fakeStore) InsertBooking(_ context.Context, claim model.SeatClaim) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.nextID++
	uid := claim.UserID
	f.booking = &model.Booking{
		ID: f.nextID, UserID: &uid,
		ScreenID: claim.ScreenID, SeatID: claim.SeatID, MovieID: claim.MovieID,
	}
	return f.nextID, nil
}

func (f *fakeStore) BeginTx(context.Context) (store.Tx, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return &fakeTx{s: f}, nil
}

type fakeTx struct{ s *fakeStore }

func (t *fakeTx) FindBooking(ctx context.Context, claim model.SeatClaim, mode store.LockMode) (*model.Booking, error) {
	return t.s.FindBooking(ctx, claim, mode)
}

func (t *fakeTx) InsertBooking(ctx context.Context, claim model.SeatClaim) (uint64, error) {
	return t.s.InsertBooking(ctx, claim)
}

func (t *fakeTx) UpdateBooking(_ context.Context, claim model.SeatClaim) (int64, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	t.s.calls++
	if t.s.booking == nil {
		return 0, nil
	}
	uid := claim.UserID
	t.s.booking.UserID = &uid
	return 1, nil
}

func (t *fakeTx) Commit() error   { return nil }
func (t *fakeTx) Rollback() error { return nil }

// newTestHandler wires a handler whose validator runs against sqlmock
// and whose booking store is the in-memory fake. Publishing is off so
// tests never dial a broker.
func newTestHandler(t *testing.T) (*BookingHandler, *fakeStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	fs := &fakeStore{}
	h := NewBookingHandler(validator.New(repository.NewEntityRepo(db)), repository.NewBookingRepo(db), nil)
	h.Store = fs
	h.Publish = false
	return h, fs, mock
}

func expectResolvedClaim(mock sqlmock.Sqlmock) {
	one := func(id uint64) *sqlmock.Rows { return sqlmock.NewRows([]string{"id"}).AddRow(id) }
	mock.ExpectQuery(`FROM users`).WillReturnRows(one(7))
	mock.ExpectQuery(`FROM movies`).WillReturnRows(one(1))
	mock.ExpectQuery(`FROM screens`).WillReturnRows(one(2))
	mock.ExpectQuery(`FROM seats`).WillReturnRows(one(3))
}

const claimBody = `{"user_id":7,"movie_code":"SM2020","screen_code":"A","seat_code":"A01"}`

func doPOST(t *testing.T, h func(echo.Context) error, target, body string) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))

	var envelope apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func TestReserveRejectsIncompleteRequest(t *testing.T) {
	h, fs, mock := newTestHandler(t)

	rec, envelope := doPOST(t, h.NoLock, "/create?wait=0", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, http.StatusBadRequest, envelope.Code)
	assert.Equal(t, "Required parameters is not set.", envelope.Message)
	assert.Zero(t, fs.calls, "a rejected request must not touch the bookings store")
	assert.NoError(t, mock.ExpectationsWereMet(), "a rejected request must not run lookups")
}

func TestReserveTreatsUnparsableBodyAsEmpty(t *testing.T) {
	h, fs, _ := newTestHandler(t)

	rec, envelope := doPOST(t, h.NoLock, "/create?wait=0", `not json at all`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Required parameters is not set.", envelope.Message)
	assert.Zero(t, fs.calls)
}

func TestReserveWinsFreeSeat(t *testing.T) {
	h, fs, mock := newTestHandler(t)
	expectResolvedClaim(mock)

	rec, envelope := doPOST(t, h.NoLock, "/create?wait=0", claimBody)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusOK, envelope.Code)
	assert.Equal(t, "Booking is created!", envelope.Message)

	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), data["id"])
	require.NotNil(t, fs.booking)
	require.NotNil(t, fs.booking.UserID)
	assert.Equal(t, uint64(7), *fs.booking.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveLosesTakenSeat(t *testing.T) {
	h, fs, mock := newTestHandler(t)
	expectResolvedClaim(mock)
	uid := uint64(9)
	fs.booking = &model.Booking{ID: 1, UserID: &uid, ScreenID: 2, SeatID: 3, MovieID: 1}

	rec, envelope := doPOST(t, h.NoLock, "/create?wait=0", claimBody)
	assert.Equal(t, http.StatusNotAcceptable, rec.Code)
	assert.Equal(t, http.StatusNotAcceptable, envelope.Code)
	assert.Equal(t, "Booking is not accepted!", envelope.Message)
	assert.Equal(t, uint64(9), *fs.booking.UserID, "the existing booking is untouched")
}

func TestReserveReportsStoreFailure(t *testing.T) {
	h, fs, mock := newTestHandler(t)
	expectResolvedClaim(mock)
	fs.insertErr = fmt.Errorf("%w: waited too long for the row", store.ErrLockWaitTimeout)

	rec, envelope := doPOST(t, h.NoLock, "/create?wait=0", claimBody)
	assert.Equal(t, http.StatusLocked, rec.Code)
	assert.Equal(t, http.StatusLocked, envelope.Code)
	assert.Contains(t, envelope.Message, "waited too long")
}

func TestLockForUpdateRouteClaimsPlaceholder(t *testing.T) {
	h, fs, mock := newTestHandler(t)
	expectResolvedClaim(mock)
	fs.booking = &model.Booking{ID: 5, ScreenID: 2, SeatID: 3, MovieID: 1} // unclaimed placeholder
	fs.nextID = 5

	rec, envelope := doPOST(t, h.LockForUpdate, "/create/database/lockforupdate?wait=0", claimBody)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Booking is created!", envelope.Message)

	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(5), data["id"], "the placeholder row is claimed, not replaced")
	require.NotNil(t, fs.booking.UserID)
	assert.Equal(t, uint64(7), *fs.booking.UserID)
}

func TestRedisRouteWithoutRedisFails(t *testing.T) {
	h, _, mock := newTestHandler(t)
	expectResolvedClaim(mock)

	rec, envelope := doPOST(t, h.RedisLock, "/create/redis?wait=0", claimBody)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, envelope.Message, "redis")
}

func TestWaitFrom(t *testing.T) {
	e := echo.New()
	ctxFor := func(target string) echo.Context {
		req := httptest.NewRequest(http.MethodPost, target, nil)
		return e.NewContext(req, httptest.NewRecorder())
	}

	assert.Equal(t, delay.DefaultWait, waitFrom(ctxFor("/create")).Duration())
	assert.Equal(t, time.Duration(0), waitFrom(ctxFor("/create?wait=0")).Duration())
	assert.Equal(t, 5*time.Second, waitFrom(ctxFor("/create?wait=5")).Duration())
	assert.Equal(t, delay.DefaultWait, waitFrom(ctxFor("/create?wait=-3")).Duration(), "negative overrides fall back to the default")
	assert.Equal(t, delay.DefaultWait, waitFrom(ctxFor("/create?wait=soon")).Duration())
}

func TestIndexListsBookings(t *testing.T) {
	h, _, mock := newTestHandler(t)
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"b.id", "u.id", "u.name", "m.title", "sc.code", "se.code", "b.created_at", "b.updated_at"}).
		AddRow(1, 7, "Demo User 07", "Spider-Man: Far From Home", "A", "A01", now, now)
	mock.ExpectQuery(`FROM bookings b`).WillReturnRows(rows)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Index(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	bookings, ok := data["bookings"].([]interface{})
	require.True(t, ok)
	require.Len(t, bookings, 1)
	first, ok := bookings[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "A01", first["seat_code"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
