package domain

import (
	"context"
	"io"
)

// Content types used by export responses.
const (
	ContentTypeCSV         = "text/csv"
	ContentTypeSpreadsheet = "application/vnd.ms-excel"
	ContentTypeHTML        = "text/html; charset=utf-8"
)

// Report describes one downloadable export.
type Report struct {
	// Name identifies the report on the command line and in metrics.
	Name        string
	Title       string
	Path        string
	Filename    string
	ContentType string
}

var (
	ReportProposals = Report{
		Name: "proposals", Title: "Export Proposals", Path: "/export/proposals",
		Filename: "proposal_export.csv", ContentType: ContentTypeCSV,
	}
	ReportSpeakers = Report{
		Name: "speakers", Title: "Export Speakers", Path: "/export/speakers",
		Filename: "speaker_export.csv", ContentType: ContentTypeCSV,
	}
	ReportGuidebookSchedule = Report{
		Name: "schedule-guidebook", Title: "Guidebook: Schedule Export", Path: "/export/schedule/guidebook",
		Filename: "guidebook_schedule.xls", ContentType: ContentTypeSpreadsheet,
	}
	ReportGuidebookSpeakers = Report{
		Name: "speakers-guidebook", Title: "Guidebook: Speaker Export", Path: "/export/speakers/guidebook",
		Filename: "guidebook_speakers.csv", ContentType: ContentTypeCSV,
	}
	ReportGuidebookSponsors = Report{
		Name: "sponsors-guidebook", Title: "Guidebook: Sponsor Export", Path: "/export/sponsors/guidebook",
		Filename: "guidebook_sponsors.csv", ContentType: ContentTypeCSV,
	}
	ReportMailchimpSponsors = Report{
		Name: "sponsors-mailchimp", Title: "Mailchimp: Sponsor Export", Path: "/export/sponsors/mailchimp",
		Filename: "mailchimp_sponsor.csv", ContentType: ContentTypeCSV,
	}
	ReportSponsorListing = Report{
		Name: "sponsors-raw", Title: "Mailchimp: Export Sponsors (Markdown/HTML)", Path: "/export/sponsors/raw",
		ContentType: ContentTypeHTML,
	}
	ReportTicketbudSponsors = Report{
		Name: "sponsors-ticketbud", Title: "Ticketbud: Sponsor Export", Path: "/export/sponsors/ticketbud",
		Filename: "ticketbud_sponsor.csv", ContentType: ContentTypeCSV,
	}
)

// Reports returns every export in the order the data index lists them.
func Reports() []Report {
	return []Report{
		ReportProposals,
		ReportSpeakers,
		ReportGuidebookSchedule,
		ReportGuidebookSpeakers,
		ReportGuidebookSponsors,
		ReportMailchimpSponsors,
		ReportSponsorListing,
		ReportTicketbudSponsors,
	}
}

// ExportService builds the data exports. Each method reads everything it needs
// before writing, so a failed query leaves w untouched.
type ExportService interface {
	ExportProposals(ctx context.Context, w io.Writer, siteDomain string) error
	ExportSpeakers(ctx context.Context, w io.Writer) error
	ExportGuidebookSchedule(ctx context.Context, w io.Writer) error
	ExportGuidebookSponsors(ctx context.Context, w io.Writer) error
	ExportMailchimpSponsors(ctx context.Context, w io.Writer) error
	ExportTicketbudSponsors(ctx context.Context, w io.Writer) error
	ExportGuidebookSpeakers(ctx context.Context, w io.Writer) error
	SponsorListing(ctx context.Context) ([]*SponsorLevelGroup, error)
}

// PageRenderer renders the HTML pages of the data section.
type PageRenderer interface {
	RenderDataIndex(w io.Writer, reports []Report) error
	RenderSponsorListing(w io.Writer, groups []*SponsorLevelGroup) error
}
