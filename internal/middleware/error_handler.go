package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/EmilioNacato/DashboardProcesador/internal/client"
	"github.com/EmilioNacato/DashboardProcesador/internal/dto"
)

// MapError translates service and storage errors into the status the
// dashboard needs to render distinct states: not-found, upstream failure and
// internal error are different things, never coalesced into an empty result.
func MapError(err error) (int, dto.ErrorResponse) {
	switch {
	case errors.Is(err, client.ErrNotFound), errors.Is(err, pgx.ErrNoRows):
		return http.StatusNotFound, dto.ErrorResponse{Error: "resource not found"}
	case errors.Is(err, client.ErrUpstream):
		return http.StatusBadGateway, dto.ErrorResponse{
			Error:   "transaction processor unavailable",
			Details: err.Error(),
		}
	}

	log.Error().Err(err).Msg("unhandled error")
	return http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"}
}

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			status, resp := MapError(err)
			c.JSON(status, resp)
		}
	}
}
