package controllers

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	h "confdata/internal/delivery/http/helpers"
	"confdata/internal/domain"
)

// DataController serves the HTML pages of the data section.
type DataController struct {
	Logger   *slog.Logger
	Service  domain.ExportService
	Renderer domain.PageRenderer
	Metrics  ExportObserver
}

func NewDataController(logger *slog.Logger, svc domain.ExportService, renderer domain.PageRenderer, metrics ExportObserver) *DataController {
	return &DataController{
		Logger:   logger,
		Service:  svc,
		Renderer: renderer,
		Metrics:  metrics,
	}
}

// Home godoc
// @Summary Data export index
// @Description HTML page linking every export.
// @Tags data
// @Produce html
// @Security BearerAuth
// @Success 200 {string} string "HTML page"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /data/ [get]
func (c *DataController) Home(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := c.Renderer.RenderDataIndex(&buf, domain.Reports()); err != nil {
		c.fail(w, r, err)
		return
	}
	writeHTML(w, buf.Bytes())
}

// SponsorListing godoc
// @Summary Sponsor listing page
// @Description Active sponsors grouped by level with logos and listing text rendered from Markdown, for pasting into a newsletter.
// @Tags data
// @Produce html
// @Security BearerAuth
// @Success 200 {string} string "HTML page"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /export/sponsors/raw [get]
func (c *DataController) SponsorListing(w http.ResponseWriter, r *http.Request) {
	var (
		buf   bytes.Buffer
		start = time.Now()
	)
	groups, err := c.Service.SponsorListing(r.Context())
	if err == nil {
		err = c.Renderer.RenderSponsorListing(&buf, groups)
	}
	if c.Metrics != nil {
		c.Metrics.Observe(domain.ReportSponsorListing.Name, time.Since(start), err)
	}
	if err != nil {
		c.fail(w, r, err)
		return
	}
	writeHTML(w, buf.Bytes())
}

func (c *DataController) fail(w http.ResponseWriter, r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", domain.ContentTypeHTML)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
