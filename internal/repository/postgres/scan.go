package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"confdata/internal/domain"
)

// clockValue scans DATE and TIME columns. lib/pq returns time.Time; SQLite
// stores them as text.
type clockValue struct {
	layouts []string
	Time    time.Time
}

func dateValue() *clockValue {
	return &clockValue{layouts: []string{"2006-01-02", time.RFC3339}}
}

func timeOfDayValue() *clockValue {
	return &clockValue{layouts: []string{"15:04:05.999999999", "15:04", time.RFC3339}}
}

func (c *clockValue) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		c.Time = time.Time{}
		return nil
	case time.Time:
		c.Time = v
		return nil
	case []byte:
		return c.parse(string(v))
	case string:
		return c.parse(v)
	}
	return fmt.Errorf("cannot scan %T into date/time", src)
}

func (c *clockValue) parse(s string) error {
	for _, layout := range c.layouts {
		if t, err := time.Parse(layout, s); err == nil {
			c.Time = t
			return nil
		}
	}
	return fmt.Errorf("cannot parse %q as date/time", s)
}

// variantColumns receives the LEFT JOINed talk and tutorial columns of a proposal.
type variantColumns struct {
	talkID            sql.NullInt64
	talkLevel         sql.NullInt64
	talkRecording     sql.NullBool
	tutorialID        sql.NullInt64
	tutorialLevel     sql.NullInt64
	tutorialRecording sql.NullBool
}

func (v *variantColumns) dest() []any {
	return []any{&v.talkID, &v.talkLevel, &v.talkRecording, &v.tutorialID, &v.tutorialLevel, &v.tutorialRecording}
}

// resolve returns the concrete variant, or nil when the row has neither.
func (v *variantColumns) resolve() domain.ProposalVariant {
	switch {
	case v.talkID.Valid:
		return domain.TalkProposal{
			AudienceLevel:    domain.AudienceLevel(v.talkLevel.Int64),
			RecordingRelease: v.talkRecording.Bool,
		}
	case v.tutorialID.Valid:
		return domain.TutorialProposal{
			AudienceLevel:    domain.AudienceLevel(v.tutorialLevel.Int64),
			RecordingRelease: v.tutorialRecording.Bool,
		}
	}
	return nil
}

const variantSelect = `t.proposal_id, t.audience_level, t.recording_release,
		       tu.proposal_id, tu.audience_level, tu.recording_release`

const variantJoins = `LEFT JOIN talk_proposals t ON t.proposal_id = %[1]s
		LEFT JOIN tutorial_proposals tu ON tu.proposal_id = %[1]s`
