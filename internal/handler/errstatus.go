package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/unirecords/registrar-backend/internal/apperr"
	"github.com/unirecords/registrar-backend/internal/response"
)

// writeDomainError translates a rule-engine failure into the response
// envelope exactly once. Handlers call it for any error coming out of the
// service layer; anything unrecognized is a 500.
func writeDomainError(c *gin.Context, err error) {
	if appErr := apperr.As(err); appErr != nil {
		switch appErr.Kind {
		case apperr.KindNotFound:
			response.FailWithMessage(c, http.StatusNotFound, response.ErrNotFound, appErr.Error())
		case apperr.KindConflict:
			code := response.ErrConflict
			if appErr.Capacity > 0 {
				code = response.ErrCapacityFull
			}
			response.FailWithMessage(c, http.StatusConflict, code, appErr.Error())
		case apperr.KindForbidden:
			response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		case apperr.KindInvalidOperation:
			response.FailWithMessage(c, http.StatusBadRequest, response.ErrInvalidOperation, appErr.Error())
		case apperr.KindDeletionBlocked:
			response.FailWithMessage(c, http.StatusConflict, response.ErrDeletionBlocked, appErr.Error())
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		case "23503":
			response.Fail(c, http.StatusConflict, response.ErrDeletionBlocked)
			return
		}
	}

	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}

// pathID parses a numeric path parameter, writing the 400 itself on failure.
func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}
