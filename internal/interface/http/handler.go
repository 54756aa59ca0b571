package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zmanhub/zmanim-chart/internal/domain/zmanchart"
	apperrors "github.com/zmanhub/zmanim-chart/pkg/errors"
)

// ZmanimHandler wires the HTTP transport to the comparison service.
type ZmanimHandler struct {
	svc    zmanchart.Service
	logger *slog.Logger
}

// NewZmanimHandler constructs the root HTTP handler.
func NewZmanimHandler(svc zmanchart.Service, logger *slog.Logger) *ZmanimHandler {
	return &ZmanimHandler{
		svc:    svc,
		logger: logger.With("component", "http.handler"),
	}
}

// CompareChart runs a comparison and responds with the rendered interactive
// chart as HTML.
func (h *ZmanimHandler) CompareChart(c *gin.Context) {
	resp, ok := h.compare(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(resp.ChartHTML))
}

// CompareSeries runs a comparison and responds with the chart data and skip
// report as JSON, for API consumers that render client-side.
func (h *ZmanimHandler) CompareSeries(c *gin.Context) {
	resp, ok := h.compare(c)
	if !ok {
		return
	}
	resp.ChartHTML = ""
	c.JSON(http.StatusOK, resp)
}

// Options lists the selectable zmanim.
func (h *ZmanimHandler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"options": h.svc.Options()})
}

func (h *ZmanimHandler) compare(c *gin.Context) (zmanchart.Response, bool) {
	var req zmanchart.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return zmanchart.Response{}, false
	}

	resp, err := h.svc.Compare(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "compare_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "chart_render_error"):
			status = http.StatusBadGateway
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return zmanchart.Response{}, false
	}
	return resp, true
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
