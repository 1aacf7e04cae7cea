package domain

import "context"

// Speaker represents a conference speaker.
type Speaker struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Biography string `json:"biography"`
	// Photo is the storage path of the uploaded photo, empty when none.
	Photo string `json:"photo"`
}

// SpeakerRepository reads speakers.
type SpeakerRepository interface {
	// ListAll returns every speaker ordered by id.
	ListAll(ctx context.Context) ([]*Speaker, error)
	// ListPresenting returns, once each and ordered by name, the speakers with at
	// least one presentation that is not cancelled.
	ListPresenting(ctx context.Context) ([]*Speaker, error)
}
