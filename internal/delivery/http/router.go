package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"confdata/internal/delivery/http/controllers"
	"confdata/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// admin guards every data page and export; metrics may be nil.
func NewRouter(
	exportController *controllers.ExportController,
	dataController *controllers.DataController,
	authController *controllers.AuthController,
	admin func(http.HandlerFunc) http.HandlerFunc,
	metrics http.Handler,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Data section
	mux.HandleFunc("GET /data/{$}", admin(dataController.Home))
	mux.HandleFunc("GET "+domain.ReportSponsorListing.Path, admin(dataController.SponsorListing))

	exports := map[domain.Report]http.HandlerFunc{
		domain.ReportProposals:         exportController.ExportProposals,
		domain.ReportSpeakers:          exportController.ExportSpeakers,
		domain.ReportGuidebookSchedule: exportController.ExportGuidebookSchedule,
		domain.ReportGuidebookSpeakers: exportController.ExportGuidebookSpeakers,
		domain.ReportGuidebookSponsors: exportController.ExportGuidebookSponsors,
		domain.ReportMailchimpSponsors: exportController.ExportMailchimpSponsors,
		domain.ReportTicketbudSponsors: exportController.ExportTicketbudSponsors,
	}
	for report, handler := range exports {
		mux.HandleFunc("GET "+report.Path, admin(handler))
	}

	// Auth
	mux.HandleFunc("POST /auth/login", authController.Login)

	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
