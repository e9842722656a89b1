package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EmilioNacato/DashboardProcesador/internal/dto"
	"github.com/EmilioNacato/DashboardProcesador/internal/model"
	"github.com/EmilioNacato/DashboardProcesador/internal/repository"
)

// FilterHandler persists each client's last date-range filter so the
// dashboard reopens on the same view.
type FilterHandler struct {
	repo *repository.FilterRepository
}

func NewFilterHandler(repo *repository.FilterRepository) *FilterHandler {
	return &FilterHandler{repo: repo}
}

func (h *FilterHandler) Get(c *gin.Context) {
	filter, err := h.repo.Get(c.Request.Context(), c.Param("client"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, filter)
}

func (h *FilterHandler) Save(c *gin.Context) {
	var req dto.SaveFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "validation failed: " + err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	filter := &model.SavedFilter{
		ClientID: c.Param("client"),
		DateFrom: req.DateFrom,
		TimeFrom: req.TimeFrom,
		DateTo:   req.DateTo,
		TimeTo:   req.TimeTo,
	}
	if err := h.repo.Save(c.Request.Context(), filter); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, filter)
}
