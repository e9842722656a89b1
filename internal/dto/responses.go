package dto

import (
	"github.com/EmilioNacato/DashboardProcesador/internal/model"
	"github.com/EmilioNacato/DashboardProcesador/internal/service"
)

type TransactionListResponse struct {
	Data       []model.Transaction `json:"data"`
	Summary    service.Stats       `json:"summary"`
	Pagination Pagination          `json:"pagination"`
}

type StatsResponse struct {
	Summary service.Stats `json:"summary"`
	From    string        `json:"from"`
	To      string        `json:"to"`
}

type ChartResponse struct {
	Series []service.DayBucket `json:"series"`
	From   string              `json:"from"`
	To     string              `json:"to"`
}

type HistoryResponse struct {
	TransactionCode string               `json:"transactionCode"`
	Events          []model.HistoryEvent `json:"events"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
