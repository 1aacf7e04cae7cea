package domain

import (
	"context"
	"time"
)

// Room is a physical room a slot takes place in.
type Room struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// Presentation is the accepted content placed in a slot.
type Presentation struct {
	ID          int64
	Title       string
	Description string
	Cancelled   bool
	// Variant of the linked proposal; nil when the presentation has none.
	Variant ProposalVariant
}

// Slot is a scheduled time block in the conference program.
type Slot struct {
	ID int64
	// Date is the calendar day of the slot; Start and End carry only the time of day.
	Date            time.Time
	Start           time.Time
	End             time.Time
	ContentOverride string
	Rooms           []Room
	// Content is nil for slots without a presentation (breaks, lunch).
	Content *Presentation
}

// ScheduleRepository reads the conference schedule.
type ScheduleRepository interface {
	// ListSlots returns every slot with rooms and content, ordered by day and start time.
	ListSlots(ctx context.Context) ([]*Slot, error)
}
