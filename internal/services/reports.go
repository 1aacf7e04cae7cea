package services

import (
	"context"
	"fmt"
	"io"

	"confdata/internal/domain"
)

// WriteReport runs the downloadable report called name against svc.
// siteDomain is only used by the proposal export.
func WriteReport(ctx context.Context, svc domain.ExportService, name, siteDomain string, w io.Writer) error {
	switch name {
	case domain.ReportProposals.Name:
		return svc.ExportProposals(ctx, w, siteDomain)
	case domain.ReportSpeakers.Name:
		return svc.ExportSpeakers(ctx, w)
	case domain.ReportGuidebookSchedule.Name:
		return svc.ExportGuidebookSchedule(ctx, w)
	case domain.ReportGuidebookSpeakers.Name:
		return svc.ExportGuidebookSpeakers(ctx, w)
	case domain.ReportGuidebookSponsors.Name:
		return svc.ExportGuidebookSponsors(ctx, w)
	case domain.ReportMailchimpSponsors.Name:
		return svc.ExportMailchimpSponsors(ctx, w)
	case domain.ReportTicketbudSponsors.Name:
		return svc.ExportTicketbudSponsors(ctx, w)
	}
	return fmt.Errorf("%w: unknown report %q", domain.ErrInvalidInput, name)
}

// DownloadableReports returns the reports WriteReport accepts.
func DownloadableReports() []domain.Report {
	var out []domain.Report
	for _, r := range domain.Reports() {
		if r.Filename != "" {
			out = append(out, r)
		}
	}
	return out
}
