package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EmilioNacato/DashboardProcesador/internal/dto"
	"github.com/EmilioNacato/DashboardProcesador/internal/service"
	"github.com/EmilioNacato/DashboardProcesador/internal/timeutil"
)

type StatsHandler struct {
	svc *service.TransactionService
}

func NewStatsHandler(svc *service.TransactionService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) GetStats(c *gin.Context) {
	rng, err := dto.ParseRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	txns, err := h.svc.QueryRange(c.Request.Context(), rng.From, rng.To)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.StatsResponse{
		Summary: service.AggregateStats(txns),
		From:    timeutil.FormatDisplay(rng.From),
		To:      timeutil.FormatDisplay(rng.To),
	})
}

func (h *StatsHandler) GetChart(c *gin.Context) {
	rng, err := dto.ParseRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	txns, err := h.svc.QueryRange(c.Request.Context(), rng.From, rng.To)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ChartResponse{
		Series: service.DailySeries(txns),
		From:   timeutil.FormatDisplay(rng.From),
		To:     timeutil.FormatDisplay(rng.To),
	})
}
