package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/federation-analytics/internal/analytics"
	"github.com/maxviazov/federation-analytics/internal/export"
	"github.com/maxviazov/federation-analytics/internal/model"
	"github.com/maxviazov/federation-analytics/internal/service"
	"github.com/maxviazov/federation-analytics/pkg/response"
)

// dateLayout is accepted for from/to alongside RFC 3339.
const dateLayout = "2006-01-02"

type ReportHandler struct {
	svc     service.ReportService
	timeout time.Duration
}

func NewReportHandler(svc service.ReportService, timeout time.Duration) *ReportHandler {
	return &ReportHandler{svc: svc, timeout: timeout}
}

func (h *ReportHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/reports")
	g.GET("", h.report)
	g.GET("/daily", h.preset((service.ReportService).GenerateDailyReport))
	g.GET("/weekly", h.preset((service.ReportService).GenerateWeeklyReport))
	g.GET("/monthly", h.preset((service.ReportService).GenerateMonthlyReport))
	g.GET("/export", h.export)
}

func (h *ReportHandler) report(c *gin.Context) {
	spec, err := periodSpecFromQuery(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	ctx, cancel := h.context(c)
	defer cancel()

	rep, err := h.svc.GenerateReport(ctx, spec)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, rep)
}

func (h *ReportHandler) preset(gen func(service.ReportService, context.Context) (model.Report, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := h.context(c)
		defer cancel()

		rep, err := gen(h.svc, ctx)
		if err != nil {
			response.WriteError(c, err)
			return
		}
		response.WriteData(c, http.StatusOK, rep)
	}
}

// export validates the format before generating, so an unknown format never
// touches the database. pdf parses but fails in the exporter after generation.
func (h *ReportHandler) export(c *gin.Context) {
	format, err := export.ParseFormat(c.DefaultQuery("format", string(export.FormatJSON)))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	spec, err := periodSpecFromQuery(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	ctx, cancel := h.context(c)
	defer cancel()

	rep, err := h.svc.GenerateReport(ctx, spec)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	body, err := export.Export(rep, format)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	name := fmt.Sprintf("report-%s.%s", rep.ReportDate.Format(dateLayout), format.Extension())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, format.ContentType(), []byte(body))
}

func (h *ReportHandler) context(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

// periodSpecFromQuery reads ?from=&to= (RFC 3339 or YYYY-MM-DD) or
// ?period=<preset>. With neither, the monthly preset applies.
func periodSpecFromQuery(c *gin.Context) (analytics.PeriodSpec, error) {
	from, hasFrom := c.GetQuery("from")
	to, hasTo := c.GetQuery("to")
	if hasFrom || hasTo {
		var spec analytics.PeriodSpec
		if hasFrom {
			t, err := parseBound(from)
			if err != nil {
				return analytics.PeriodSpec{}, &analytics.InvalidPeriodError{Reason: "from: " + err.Error()}
			}
			spec.Start = &t
		}
		if hasTo {
			t, err := parseBound(to)
			if err != nil {
				return analytics.PeriodSpec{}, &analytics.InvalidPeriodError{Reason: "to: " + err.Error()}
			}
			spec.End = &t
		}
		return spec, nil
	}

	p, err := analytics.ParsePreset(c.DefaultQuery("period", string(analytics.PresetMonth)))
	if err != nil {
		return analytics.PeriodSpec{}, err
	}
	return analytics.PeriodSpec{Preset: p}, nil
}

func parseBound(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected RFC 3339 or %s, got %q", dateLayout, s)
	}
	return t, nil
}
