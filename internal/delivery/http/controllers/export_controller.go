package controllers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	h "confdata/internal/delivery/http/helpers"
	"confdata/internal/delivery/http/middleware"
	"confdata/internal/domain"
)

// ExportObserver records the outcome of each export.
type ExportObserver interface {
	Observe(report string, elapsed time.Duration, err error)
}

// ExportController serves the file downloads. Every handler must be mounted
// behind the superuser guard.
type ExportController struct {
	Logger  *slog.Logger
	Service domain.ExportService
	Metrics ExportObserver
	// SiteDomain builds review links; the request host is used when empty.
	SiteDomain string
}

func NewExportController(logger *slog.Logger, svc domain.ExportService, metrics ExportObserver, siteDomain string) *ExportController {
	return &ExportController{
		Logger:     logger,
		Service:    svc,
		Metrics:    metrics,
		SiteDomain: siteDomain,
	}
}

// ExportProposals godoc
// @Summary Export proposals
// @Description Every proposal ordered by id with its review aggregates and a link to the review page. All fields quoted.
// @Tags export
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} file "proposal_export.csv"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /export/proposals [get]
func (c *ExportController) ExportProposals(w http.ResponseWriter, r *http.Request) {
	site := c.siteDomain(r)
	c.serve(w, r, domain.ReportProposals, func(ctx context.Context, out io.Writer) error {
		return c.Service.ExportProposals(ctx, out, site)
	})
}

// ExportSpeakers godoc
// @Summary Export speakers
// @Description Every speaker ordered by id. All fields quoted.
// @Tags export
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} file "speaker_export.csv"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /export/speakers [get]
func (c *ExportController) ExportSpeakers(w http.ResponseWriter, r *http.Request) {
	c.serve(w, r, domain.ReportSpeakers, c.Service.ExportSpeakers)
}

// ExportGuidebookSchedule godoc
// @Summary Export the schedule for Guidebook
// @Description One spreadsheet row per slot, ordered by day and start time.
// @Tags export
// @Produce application/vnd.ms-excel
// @Security BearerAuth
// @Success 200 {file} file "guidebook_schedule.xls"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /export/schedule/guidebook [get]
func (c *ExportController) ExportGuidebookSchedule(w http.ResponseWriter, r *http.Request) {
	c.serve(w, r, domain.ReportGuidebookSchedule, c.Service.ExportGuidebookSchedule)
}

// ExportGuidebookSpeakers godoc
// @Summary Export presenting speakers for Guidebook
// @Description Speakers with at least one non-cancelled presentation.
// @Tags export
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} file "guidebook_speakers.csv"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /export/speakers/guidebook [get]
func (c *ExportController) ExportGuidebookSpeakers(w http.ResponseWriter, r *http.Request) {
	c.serve(w, r, domain.ReportGuidebookSpeakers, c.Service.ExportGuidebookSpeakers)
}

// ExportGuidebookSponsors godoc
// @Summary Export active sponsors for Guidebook
// @Tags export
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} file "guidebook_sponsors.csv"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /export/sponsors/guidebook [get]
func (c *ExportController) ExportGuidebookSponsors(w http.ResponseWriter, r *http.Request) {
	c.serve(w, r, domain.ReportGuidebookSponsors, c.Service.ExportGuidebookSponsors)
}

// ExportMailchimpSponsors godoc
// @Summary Export sponsor contacts for Mailchimp
// @Description Active sponsors with contact names split and a ticket access code.
// @Tags export
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} file "mailchimp_sponsor.csv"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /export/sponsors/mailchimp [get]
func (c *ExportController) ExportMailchimpSponsors(w http.ResponseWriter, r *http.Request) {
	c.serve(w, r, domain.ReportMailchimpSponsors, c.Service.ExportMailchimpSponsors)
}

// ExportTicketbudSponsors godoc
// @Summary Export sponsor discount codes for Ticketbud
// @Description One discount code per active sponsor with the usage limit of its level.
// @Tags export
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} file "ticketbud_sponsor.csv"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /export/sponsors/ticketbud [get]
func (c *ExportController) ExportTicketbudSponsors(w http.ResponseWriter, r *http.Request) {
	c.serve(w, r, domain.ReportTicketbudSponsors, c.Service.ExportTicketbudSponsors)
}

func (c *ExportController) siteDomain(r *http.Request) string {
	if c.SiteDomain != "" {
		return c.SiteDomain
	}
	return r.Host
}

// serve streams one report as an attachment. Errors before the first byte get a
// JSON 500; after that the connection is aborted so the client sees a truncated download.
func (c *ExportController) serve(w http.ResponseWriter, r *http.Request, report domain.Report, run func(context.Context, io.Writer) error) {
	start := time.Now()
	aw := &attachmentWriter{w: w, report: report}
	err := run(r.Context(), aw)
	if c.Metrics != nil {
		c.Metrics.Observe(report.Name, time.Since(start), err)
	}
	if err == nil {
		aw.commit()
		userID, _ := middleware.UserIDFromContext(r.Context())
		c.Logger.InfoContext(r.Context(), "export served", "report", report.Name, "user_id", userID, "duration_ms", time.Since(start).Milliseconds())
		return
	}

	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "report", report.Name, "err", err)
	if aw.started {
		panic(http.ErrAbortHandler)
	}
	h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
}

// attachmentWriter sets the download headers on the first write.
type attachmentWriter struct {
	w       http.ResponseWriter
	report  domain.Report
	started bool
}

func (a *attachmentWriter) commit() {
	if a.started {
		return
	}
	a.started = true
	a.w.Header().Set("Content-Type", a.report.ContentType)
	a.w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.report.Filename))
	a.w.WriteHeader(http.StatusOK)
}

func (a *attachmentWriter) Write(p []byte) (int, error) {
	a.commit()
	return a.w.Write(p)
}
