package v1

import (
	"errors"
	"net/http"

	"github.com/centavo-app/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errNoSession         = errors.New("you need to be signed in for this request")
	errMonthInvalid      = errors.New("the month must be specified as YYYY-MM")
	errGoalNotDebt       = errors.New("this goal is not a debt")
	errGoalNotInvestment = errors.New("this goal is not an investment")
)
