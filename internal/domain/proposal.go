package domain

import "context"

// AudienceLevel is the intended audience of a talk or tutorial.
type AudienceLevel int

const (
	AudienceLevelNovice        AudienceLevel = 1
	AudienceLevelExperienced   AudienceLevel = 2
	AudienceLevelIntermediate  AudienceLevel = 3
	AudienceLevelNotApplicable AudienceLevel = 4
)

var audienceLevelLabels = map[AudienceLevel]string{
	AudienceLevelNovice:        "Novice",
	AudienceLevelExperienced:   "Experienced",
	AudienceLevelIntermediate:  "Intermediate",
	AudienceLevelNotApplicable: "Not Applicable",
}

// Label returns the display label, or "" for an unset or unknown level.
func (l AudienceLevel) Label() string {
	return audienceLevelLabels[l]
}

// ProposalKind is the submission category a proposal was filed under.
type ProposalKind struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ProposalVariant is the concrete type behind a proposal row.
type ProposalVariant interface {
	Level() AudienceLevel
	Recordable() bool
}

// TalkProposal holds the fields stored for talk submissions.
type TalkProposal struct {
	AudienceLevel    AudienceLevel
	RecordingRelease bool
}

func (t TalkProposal) Level() AudienceLevel { return t.AudienceLevel }
func (t TalkProposal) Recordable() bool     { return t.RecordingRelease }

// TutorialProposal holds the fields stored for tutorial submissions.
type TutorialProposal struct {
	AudienceLevel    AudienceLevel
	RecordingRelease bool
}

func (t TutorialProposal) Level() AudienceLevel { return t.AudienceLevel }
func (t TutorialProposal) Recordable() bool     { return t.RecordingRelease }

// BaseProposal is used when a proposal has no variant row.
type BaseProposal struct{}

func (BaseProposal) Level() AudienceLevel { return 0 }
func (BaseProposal) Recordable() bool     { return false }

// ReviewStatus is the outcome recorded on a review result.
type ReviewStatus string

const (
	ReviewStatusUndecided ReviewStatus = "undecided"
	ReviewStatusAccepted  ReviewStatus = "accepted"
	ReviewStatusRejected  ReviewStatus = "rejected"
	ReviewStatusStandby   ReviewStatus = "standby"
)

// ReviewResult aggregates the peer-review votes on a proposal.
type ReviewResult struct {
	ProposalID   int64        `json:"proposal_id"`
	CommentCount int          `json:"comment_count"`
	Score        float64      `json:"score"`
	PlusOne      int          `json:"plus_one"`
	PlusZero     int          `json:"plus_zero"`
	MinusZero    int          `json:"minus_zero"`
	MinusOne     int          `json:"minus_one"`
	Status       ReviewStatus `json:"status"`
}

// NewReviewResult returns the empty result stored for a proposal nobody has reviewed yet.
func NewReviewResult(proposalID int64) *ReviewResult {
	return &ReviewResult{ProposalID: proposalID, Status: ReviewStatusUndecided}
}

// Proposal is a talk or tutorial submission resolved to its variant.
type Proposal struct {
	ID           int64
	Kind         ProposalKind
	Title        string
	SpeakerID    int64
	SpeakerName  string
	SpeakerEmail string
	Cancelled    bool
	Variant      ProposalVariant
	// Result is nil when no review result row exists yet.
	Result *ReviewResult
}

func (p *Proposal) variant() ProposalVariant {
	if p.Variant == nil {
		return BaseProposal{}
	}
	return p.Variant
}

// AudienceLevel returns the variant's audience level.
func (p *Proposal) AudienceLevel() AudienceLevel { return p.variant().Level() }

// RecordingRelease reports whether the speaker agreed to be recorded.
func (p *Proposal) RecordingRelease() bool { return p.variant().Recordable() }

// Status returns the review status, undecided when there is no result yet.
func (p *Proposal) Status() ReviewStatus {
	if p.Result == nil || p.Result.Status == "" {
		return ReviewStatusUndecided
	}
	return p.Result.Status
}

// ProposalRepository reads proposals with their variant and review result.
type ProposalRepository interface {
	// ListAll returns every proposal ordered by id.
	ListAll(ctx context.Context) ([]*Proposal, error)
}

// ReviewResultRepository stores proposal review results.
type ReviewResultRepository interface {
	// GetOrCreate returns the result for proposalID, inserting an empty one if missing.
	// created is true only when a row was inserted.
	GetOrCreate(ctx context.Context, proposalID int64) (result *ReviewResult, created bool, err error)
}
