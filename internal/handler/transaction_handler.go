package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EmilioNacato/DashboardProcesador/internal/dto"
	"github.com/EmilioNacato/DashboardProcesador/internal/model"
	"github.com/EmilioNacato/DashboardProcesador/internal/normalize"
	"github.com/EmilioNacato/DashboardProcesador/internal/service"
)

type TransactionHandler struct {
	svc *service.TransactionService
}

func NewTransactionHandler(svc *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

// List serves the dashboard table: a date-range query with optional status
// filter, paginated, with summary stats over the whole filtered set.
func (h *TransactionHandler) List(c *gin.Context) {
	rng, err := dto.ParseRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	p := dto.ParsePagination(c)

	txns, err := h.svc.QueryRange(c.Request.Context(), rng.From, rng.To)
	if err != nil {
		c.Error(err)
		return
	}

	if status := c.Query("status"); status != "" {
		txns = filterByStatus(txns, status)
	}

	summary := service.AggregateStats(txns)
	lo, hi := p.Slice(len(txns))

	c.JSON(http.StatusOK, dto.TransactionListResponse{
		Data:       txns[lo:hi],
		Summary:    summary,
		Pagination: dto.NewPagination(p, len(txns)),
	})
}

func (h *TransactionHandler) GetByCode(c *gin.Context) {
	txn, err := h.svc.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, txn)
}

func (h *TransactionHandler) History(c *gin.Context) {
	code := c.Param("code")
	events, err := h.svc.History(c.Request.Context(), code)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.HistoryResponse{
		TransactionCode: code,
		Events:          events,
	})
}

func (h *TransactionHandler) Fraudulent(c *gin.Context) {
	txns, err := h.svc.Fraudulent(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": txns, "count": len(txns)})
}

// filterByStatus keeps transactions whose canonical status matches the
// requested one, so ?status=COMPLETADA and ?status=COM select the same rows.
func filterByStatus(txns []model.Transaction, status string) []model.Transaction {
	want := normalize.CanonicalStatus(status)
	out := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if t.Status == want {
			out = append(out, t)
		}
	}
	return out
}
