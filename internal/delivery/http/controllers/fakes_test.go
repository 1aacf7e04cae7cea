package controllers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"confdata/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var errPartial = errors.New("connection reset")

// fakeExportService writes body for every report. When err is set it is returned,
// after writing body if writeBeforeErr is true.
type fakeExportService struct {
	body           string
	err            error
	writeBeforeErr bool
	groups         []*domain.SponsorLevelGroup
	gotSite        string
	calls          []string
}

func (f *fakeExportService) write(name string, w io.Writer) error {
	f.calls = append(f.calls, name)
	if f.err != nil && !f.writeBeforeErr {
		return f.err
	}
	if _, err := io.WriteString(w, f.body); err != nil {
		return err
	}
	return f.err
}

func (f *fakeExportService) ExportProposals(ctx context.Context, w io.Writer, siteDomain string) error {
	f.gotSite = siteDomain
	return f.write(domain.ReportProposals.Name, w)
}

func (f *fakeExportService) ExportSpeakers(ctx context.Context, w io.Writer) error {
	return f.write(domain.ReportSpeakers.Name, w)
}

func (f *fakeExportService) ExportGuidebookSchedule(ctx context.Context, w io.Writer) error {
	return f.write(domain.ReportGuidebookSchedule.Name, w)
}

func (f *fakeExportService) ExportGuidebookSponsors(ctx context.Context, w io.Writer) error {
	return f.write(domain.ReportGuidebookSponsors.Name, w)
}

func (f *fakeExportService) ExportMailchimpSponsors(ctx context.Context, w io.Writer) error {
	return f.write(domain.ReportMailchimpSponsors.Name, w)
}

func (f *fakeExportService) ExportTicketbudSponsors(ctx context.Context, w io.Writer) error {
	return f.write(domain.ReportTicketbudSponsors.Name, w)
}

func (f *fakeExportService) ExportGuidebookSpeakers(ctx context.Context, w io.Writer) error {
	return f.write(domain.ReportGuidebookSpeakers.Name, w)
}

func (f *fakeExportService) SponsorListing(ctx context.Context) ([]*domain.SponsorLevelGroup, error) {
	f.calls = append(f.calls, domain.ReportSponsorListing.Name)
	if f.err != nil {
		return nil, f.err
	}
	return f.groups, nil
}

// fakeRenderer writes a short marker instead of real HTML.
type fakeRenderer struct {
	err       error
	gotGroups []*domain.SponsorLevelGroup
	gotTitles []string
}

func (f *fakeRenderer) RenderDataIndex(w io.Writer, reports []domain.Report) error {
	if f.err != nil {
		return f.err
	}
	for _, r := range reports {
		f.gotTitles = append(f.gotTitles, r.Title)
	}
	_, err := io.WriteString(w, "<ul>index</ul>")
	return err
}

func (f *fakeRenderer) RenderSponsorListing(w io.Writer, groups []*domain.SponsorLevelGroup) error {
	if f.err != nil {
		return f.err
	}
	f.gotGroups = groups
	_, err := io.WriteString(w, "<h2>sponsors</h2>")
	return err
}

type observation struct {
	report string
	failed bool
}

type fakeObserver struct {
	seen []observation
}

func (f *fakeObserver) Observe(report string, _ time.Duration, err error) {
	f.seen = append(f.seen, observation{report: report, failed: err != nil})
}

type fakeAuthService struct {
	token string
	user  *domain.User
	err   error
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	return f.token, f.user, nil
}
