package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EmilioNacato/DashboardProcesador/internal/dto"
	"github.com/EmilioNacato/DashboardProcesador/internal/model"
)

func rangeRecords() []map[string]any {
	return []map[string]any{
		{
			"codigoUnicoTransaccion": "tx-1",
			"estado":                 "COM",
			"fechaTransaccion":       "2025-03-01 09:00:00",
			"monto":                  120.0,
			"numeroTarjeta":          "4532123456789012",
		},
		{
			"codigoUnicoTransaccion": "tx-2",
			"estado":                 "PEN",
			"fechaTransaccion":       "2025-03-01 10:00:00",
			"monto":                  80.0,
		},
		{
			"codigoUnicoTransaccion": "tx-3",
			"estado":                 "ERR",
			"fechaTransaccion":       "2025-03-02 11:00:00",
			"monto":                  30.0,
		},
	}
}

func TestTransactionHandler_List(t *testing.T) {
	upstream := http.NewServeMux()
	upstream.HandleFunc("/api/v1/transacciones/recientes", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(rangeRecords())
	})
	router := setupAPIRouter(t, upstream)

	t.Run("happy: normalized page with summary", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/transactions?date_from=2025-03-01&date_to=2025-03-02", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.TransactionListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 3)
		assert.Equal(t, "COMPLETED", resp.Data[0].Status)
		assert.Equal(t, "••••9012", resp.Data[0].MaskedCard)
		assert.Equal(t, 3, resp.Summary.Total)
		assert.Equal(t, 1, resp.Summary.Completed)
		assert.Equal(t, 120.0, resp.Summary.CompletedAmount)
		assert.Equal(t, 1, resp.Pagination.TotalPages)
	})

	t.Run("happy: status filter accepts raw codes", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/transactions?status=COMPLETADA", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.TransactionListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "tx-1", resp.Data[0].Code)
	})

	t.Run("happy: second page", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/transactions?page=2&page_size=2", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.TransactionListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Data, 1)
		assert.Equal(t, 2, resp.Pagination.TotalPages)
		assert.Equal(t, 3, resp.Pagination.TotalItems)
	})

	t.Run("bad: out-of-range time is rejected before any fetch", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/transactions?date_from=2025-03-01&time_from=24:00", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad: inverted range", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/transactions?date_from=2025-03-05&date_to=2025-03-01", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTransactionHandler_List_UpstreamDown(t *testing.T) {
	upstream := http.NewServeMux()
	upstream.HandleFunc("/api/v1/transacciones/recientes", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	router := setupAPIRouter(t, upstream)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/transactions", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code, "a failed fetch is not an empty result")

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "transaction processor unavailable", resp.Error)
}

func TestTransactionHandler_GetByCode(t *testing.T) {
	upstream := http.NewServeMux()
	upstream.HandleFunc("/api/v1/transacciones/tx-9", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"9","codigoUnicoTransaccion":"tx-9","estado":"DEB","monto":55.5,"fechaCreacion":"2025-03-01 09:00:00"}`))
	})
	upstream.HandleFunc("/api/v1/historial/transaccion/tx-9", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "h1", "estado": "DEB", "fechaEstadoCambio": "2025-03-01 09:01:00"},
		})
	})
	router := setupAPIRouter(t, upstream)

	t.Run("happy: merged detail", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/transactions/tx-9", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var txn model.Transaction
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &txn))
		assert.Equal(t, "DEBIT", txn.Status)
		assert.Equal(t, "DÉBITO", txn.StatusName)
		assert.Equal(t, "warning", txn.Severity)
		assert.Len(t, txn.History, 1)
	})

	t.Run("bad: unknown code is a 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/transactions/desconocida", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTransactionHandler_History(t *testing.T) {
	upstream := http.NewServeMux()
	upstream.HandleFunc("/api/v1/historial/transaccion/tx-2", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "h1", "estado": "PEN", "fechaEstadoCambio": "2025-03-01 09:00:00"},
			{"id": "h2", "estado": "COM", "fechaEstadoCambio": "2025-03-01 09:30:00"},
		})
	})
	router := setupAPIRouter(t, upstream)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/transactions/tx-2/history", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.HistoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "tx-2", resp.TransactionCode)
	require.Len(t, resp.Events, 2)
	assert.Equal(t, "h2", resp.Events[0].ID)
}

func TestTransactionHandler_Fraudulent(t *testing.T) {
	upstream := http.NewServeMux()
	upstream.HandleFunc("/api/v1/historial/fraude", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"codigoUnicoTransaccion": "fr-1", "estado": "FRA", "monto": 1500.0},
		})
	})
	router := setupAPIRouter(t, upstream)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/fraud", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data  []model.Transaction `json:"data"`
		Count int                 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "FRAUD", resp.Data[0].Status)
}
