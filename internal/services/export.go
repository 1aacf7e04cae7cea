package services

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"confdata/internal/adapters/tabular"
	"confdata/internal/adapters/textutil"
	"confdata/internal/domain"
)

const scheduleSheet = "Schedule"

var (
	proposalHeader = []string{
		"id", "proposal_type", "speaker", "speaker_email", "title", "audience_level", "kind",
		"recording_release", "status", "comment_count", "score",
		"plus_one", "plus_zero", "minus_zero", "minus_one", "review_detail",
	}
	speakerHeader  = []string{"id", "name", "email"}
	scheduleHeader = []string{
		"Session Title", "Date", "Time Start", "Time End", "Room/Location",
		"Schedule Track (Optional)", "Description (Optional)",
	}
	guidebookListHeader = []string{
		"Name", "Sub-Title (i.e. Location, Table/Booth, or Title/Sponsorship Level)",
		"Description (Optional)", "Location/Room", "Image (Optional)",
	}
	mailchimpHeader = []string{
		"Email Address", "Company", "Sponsor Tier", "Full Name", "First Name", "Last Name", "Access Code",
	}
	ticketbudHeader = []string{
		"code", "price_off", "percent_off", "usage_limit", "start_time", "end_time", "times_used", "savings",
	}
)

type exportService struct {
	proposalRepo       domain.ProposalRepository
	reviewRepo         domain.ReviewResultRepository
	speakerRepo        domain.SpeakerRepository
	sponsorRepo        domain.SponsorRepository
	scheduleRepo       domain.ScheduleRepository
	mediaURL           string
	accessCodeTemplate string
	contextTimeout     time.Duration
}

// NewExportService creates the export service. mediaURL prefixes stored photo and
// logo paths; accessCodeTemplate formats sponsor access codes (empty means the default).
func NewExportService(
	proposalRepo domain.ProposalRepository,
	reviewRepo domain.ReviewResultRepository,
	speakerRepo domain.SpeakerRepository,
	sponsorRepo domain.SponsorRepository,
	scheduleRepo domain.ScheduleRepository,
	mediaURL string,
	accessCodeTemplate string,
	timeout time.Duration,
) domain.ExportService {
	return &exportService{
		proposalRepo:       proposalRepo,
		reviewRepo:         reviewRepo,
		speakerRepo:        speakerRepo,
		sponsorRepo:        sponsorRepo,
		scheduleRepo:       scheduleRepo,
		mediaURL:           mediaURL,
		accessCodeTemplate: accessCodeTemplate,
		contextTimeout:     timeout,
	}
}

func (s *exportService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.contextTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.contextTimeout)
}

func (s *exportService) ExportProposals(ctx context.Context, w io.Writer, siteDomain string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	proposals, err := s.proposalRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list proposals: %w", err)
	}
	rows := make([][]string, 0, len(proposals))
	for _, p := range proposals {
		if p.Result == nil {
			res, _, err := s.reviewRepo.GetOrCreate(ctx, p.ID)
			if err != nil {
				return fmt.Errorf("ensure review result for proposal %d: %w", p.ID, err)
			}
			p.Result = res
		}
		rows = append(rows, proposalRow(p, siteDomain))
	}
	return tabular.WriteAll(tabular.NewCSVWriter(w, tabular.QuoteAll), proposalHeader, rows)
}

func proposalRow(p *domain.Proposal, siteDomain string) []string {
	res := p.Result
	if res == nil {
		res = domain.NewReviewResult(p.ID)
	}
	return []string{
		strconv.FormatInt(p.ID, 10),
		p.Kind.Name,
		p.SpeakerName,
		p.SpeakerEmail,
		p.Title,
		p.AudienceLevel().Label(),
		p.Kind.Name,
		formatBool(p.RecordingRelease()),
		string(p.Status()),
		strconv.Itoa(res.CommentCount),
		strconv.FormatFloat(res.Score, 'f', 2, 64),
		strconv.Itoa(res.PlusOne),
		strconv.Itoa(res.PlusZero),
		strconv.Itoa(res.MinusZero),
		strconv.Itoa(res.MinusOne),
		ReviewURL(siteDomain, p.ID),
	}
}

// ReviewURL is the absolute link to a proposal's review page.
func ReviewURL(siteDomain string, proposalID int64) string {
	return fmt.Sprintf("https://%s/reviews/review/%d/", siteDomain, proposalID)
}

func (s *exportService) ExportSpeakers(ctx context.Context, w io.Writer) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	speakers, err := s.speakerRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list speakers: %w", err)
	}
	rows := make([][]string, 0, len(speakers))
	for _, sp := range speakers {
		rows = append(rows, []string{strconv.FormatInt(sp.ID, 10), sp.Name, sp.Email})
	}
	return tabular.WriteAll(tabular.NewCSVWriter(w, tabular.QuoteAll), speakerHeader, rows)
}

func (s *exportService) ExportGuidebookSchedule(ctx context.Context, w io.Writer) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	slots, err := s.scheduleRepo.ListSlots(ctx)
	if err != nil {
		return fmt.Errorf("list slots: %w", err)
	}
	rows := make([][]string, 0, len(slots))
	for _, sl := range slots {
		rows = append(rows, scheduleRow(sl))
	}
	return tabular.WriteWorkbook(w, scheduleSheet, scheduleHeader, rows)
}

func scheduleRow(sl *domain.Slot) []string {
	var title, description, track string
	if sl.Content != nil {
		title = sl.Content.Title
		description = sl.Content.Description
		if sl.Content.Variant != nil {
			track = sl.Content.Variant.Level().Label()
		}
	}
	if sl.ContentOverride != "" {
		title = sl.ContentOverride
	}
	if track == domain.AudienceLevelNotApplicable.Label() {
		track = "N/A"
	}
	rooms := make([]string, 0, len(sl.Rooms))
	for _, r := range sl.Rooms {
		rooms = append(rooms, r.Name)
	}
	return []string{
		title,
		sl.Date.Format("2006-01-02"),
		sl.Start.Format("15:04:05"),
		sl.End.Format("15:04:05"),
		strings.Join(rooms, ", "),
		track,
		textutil.GuidebookText(description),
	}
}

func (s *exportService) ExportGuidebookSponsors(ctx context.Context, w io.Writer) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	sponsors, err := s.sponsorRepo.ListActive(ctx, domain.SponsorOrderByLevel)
	if err != nil {
		return fmt.Errorf("list sponsors: %w", err)
	}
	rows := make([][]string, 0, len(sponsors))
	for _, sp := range sponsors {
		rows = append(rows, []string{
			sp.Name,
			sp.Level.Name,
			sp.ListingText,
			"",
			textutil.MediaURL(s.mediaURL, sp.WebLogo),
		})
	}
	return tabular.WriteAll(tabular.NewCSVWriter(w, tabular.QuoteAll), guidebookListHeader, rows)
}

func (s *exportService) ExportMailchimpSponsors(ctx context.Context, w io.Writer) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	sponsors, err := s.sponsorRepo.ListActive(ctx, domain.SponsorOrderByLevelAndName)
	if err != nil {
		return fmt.Errorf("list sponsors: %w", err)
	}
	rows := make([][]string, 0, len(sponsors))
	for _, sp := range sponsors {
		first, last := splitContactName(sp.ContactName)
		rows = append(rows, []string{
			sp.ContactEmail,
			sp.Name,
			sp.Level.Name,
			sp.ContactName,
			first,
			last,
			AccessCode(s.accessCodeTemplate, sp),
		})
	}
	return tabular.WriteAll(tabular.NewCSVWriter(w, tabular.QuoteAll), mailchimpHeader, rows)
}

func (s *exportService) ExportTicketbudSponsors(ctx context.Context, w io.Writer) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	sponsors, err := s.sponsorRepo.ListActive(ctx, domain.SponsorOrderByLevelAndName)
	if err != nil {
		return fmt.Errorf("list sponsors: %w", err)
	}
	rows := make([][]string, 0, len(sponsors))
	for _, sp := range sponsors {
		rows = append(rows, []string{
			AccessCode(s.accessCodeTemplate, sp),
			"0",
			"0",
			strconv.Itoa(UsageLimit(sp.Level.Name)),
			"",
			"",
			"",
			"0",
		})
	}
	return tabular.WriteAll(tabular.NewCSVWriter(w, tabular.QuoteMinimal), ticketbudHeader, rows)
}

func (s *exportService) ExportGuidebookSpeakers(ctx context.Context, w io.Writer) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	speakers, err := s.speakerRepo.ListPresenting(ctx)
	if err != nil {
		return fmt.Errorf("list presenting speakers: %w", err)
	}
	rows := make([][]string, 0, len(speakers))
	for _, sp := range speakers {
		rows = append(rows, []string{
			sp.Name,
			"",
			textutil.ToASCII(sp.Biography),
			"",
			textutil.MediaURL(s.mediaURL, sp.Photo),
		})
	}
	return tabular.WriteAll(tabular.NewCSVWriter(w, tabular.QuoteAll), guidebookListHeader, rows)
}

func (s *exportService) SponsorListing(ctx context.Context) ([]*domain.SponsorLevelGroup, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	sponsors, err := s.sponsorRepo.ListActive(ctx, domain.SponsorOrderByLevelAndName)
	if err != nil {
		return nil, fmt.Errorf("list sponsors: %w", err)
	}
	groups := []*domain.SponsorLevelGroup{}
	var current *domain.SponsorLevelGroup
	for _, sp := range sponsors {
		if current == nil || current.Level.ID != sp.Level.ID {
			current = &domain.SponsorLevelGroup{Level: sp.Level}
			groups = append(groups, current)
		}
		current.Sponsors = append(current.Sponsors, sp)
	}
	return groups, nil
}

// formatBool matches the True/False spelling downstream imports were built against.
func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
