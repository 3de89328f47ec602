package validator

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkamnerd/movie-booking-locks/internal/model"
	"github.com/pkamnerd/movie-booking-locks/internal/repository"
)

func newTestValidator(t *testing.T) (*ClaimValidator, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(repository.NewEntityRepo(db)), mock
}

func idRow(id uint64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id"}).AddRow(id)
}

func noRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id"})
}

func TestValidateMissingFields(t *testing.T) {
	cases := []struct {
		name string
		req  Request
	}{
		{"empty payload", Request{}},
		{"no user", Request{ScreenCode: "A", SeatCode: "A01"}},
		{"no screen", Request{UserID: 1, SeatCode: "A01"}},
		{"no seat", Request{UserID: 1, ScreenCode: "A"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, mock := newTestValidator(t)

			_, err := v.Validate(context.Background(), tc.req)
			ve := AsError(err)
			require.NotNil(t, ve)
			assert.Equal(t, ReasonMissingFields, ve.Reason)
			assert.Equal(t, "Required parameters is not set.", ve.Message)
			// A rejected request must not have queried anything.
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestValidateUnknownRecords(t *testing.T) {
	v, mock := newTestValidator(t)

	mock.ExpectQuery(`FROM users`).WithArgs(uint64(1)).WillReturnRows(idRow(1))
	mock.ExpectQuery(`FROM movies`).WithArgs("SM2020").WillReturnRows(idRow(4))
	mock.ExpectQuery(`FROM screens`).WithArgs("A").WillReturnRows(idRow(2))
	mock.ExpectQuery(`FROM seats`).WithArgs("Z99").WillReturnRows(noRow())

	_, err := v.Validate(context.Background(), Request{
		UserID: 1, MovieCode: "SM2020", ScreenCode: "A", SeatCode: "Z99",
	})
	ve := AsError(err)
	require.NotNil(t, ve)
	assert.Equal(t, ReasonNotFound, ve.Reason)
	assert.Equal(t, "Database records is not existing.", ve.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateResolvesClaim(t *testing.T) {
	v, mock := newTestValidator(t)

	mock.ExpectQuery(`FROM users`).WithArgs(uint64(7)).WillReturnRows(idRow(7))
	mock.ExpectQuery(`FROM movies`).WithArgs("SM2020").WillReturnRows(idRow(4))
	mock.ExpectQuery(`FROM screens`).WithArgs("A").WillReturnRows(idRow(2))
	mock.ExpectQuery(`FROM seats`).WithArgs("A01").WillReturnRows(idRow(31))

	claim, err := v.Validate(context.Background(), Request{
		UserID: 7, MovieCode: "SM2020", ScreenCode: "A", SeatCode: "A01",
	})
	require.NoError(t, err)
	assert.Equal(t, model.SeatClaim{UserID: 7, MovieID: 4, ScreenID: 2, SeatID: 31}, claim)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateMovieCodeIsOptional(t *testing.T) {
	v, mock := newTestValidator(t)

	mock.ExpectQuery(`FROM users`).WithArgs(uint64(7)).WillReturnRows(idRow(7))
	mock.ExpectQuery(`FROM movies`).WithArgs("").WillReturnRows(noRow())
	mock.ExpectQuery(`FROM screens`).WithArgs("A").WillReturnRows(idRow(2))
	mock.ExpectQuery(`FROM seats`).WithArgs("A01").WillReturnRows(idRow(31))

	claim, err := v.Validate(context.Background(), Request{
		UserID: 7, ScreenCode: "A", SeatCode: "A01",
	})
	require.NoError(t, err)
	assert.Zero(t, claim.MovieID, "an unresolved movie passes validation; the foreign key rejects it later")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateLookupFailureIsNotValidationError(t *testing.T) {
	v, mock := newTestValidator(t)

	dbErr := errors.New("connection refused")
	mock.ExpectQuery(`FROM users`).WithArgs(uint64(7)).WillReturnError(dbErr)

	_, err := v.Validate(context.Background(), Request{
		UserID: 7, ScreenCode: "A", SeatCode: "A01",
	})
	require.Error(t, err)
	assert.Nil(t, AsError(err), "infrastructure failures must not masquerade as client errors")
}
