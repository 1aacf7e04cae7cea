package services

import (
	"context"
	"time"

	"confdata/internal/domain"
)

// fakeProposalRepo is an in-memory ProposalRepository for tests.
type fakeProposalRepo struct {
	proposals []*domain.Proposal
	results   *fakeReviewResultRepo
	err       error
}

func (f *fakeProposalRepo) ListAll(ctx context.Context) ([]*domain.Proposal, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Proposal, 0, len(f.proposals))
	for _, p := range f.proposals {
		cp := *p
		if f.results != nil {
			if res, ok := f.results.byID[p.ID]; ok {
				r := *res
				cp.Result = &r
			}
		}
		out = append(out, &cp)
	}
	return out, nil
}

// fakeReviewResultRepo is an in-memory ReviewResultRepository for tests.
type fakeReviewResultRepo struct {
	byID    map[int64]*domain.ReviewResult
	created []int64
	err     error
}

func newFakeReviewResultRepo() *fakeReviewResultRepo {
	return &fakeReviewResultRepo{byID: map[int64]*domain.ReviewResult{}}
}

func (f *fakeReviewResultRepo) GetOrCreate(ctx context.Context, proposalID int64) (*domain.ReviewResult, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	if res, ok := f.byID[proposalID]; ok {
		return res, false, nil
	}
	res := domain.NewReviewResult(proposalID)
	f.byID[proposalID] = res
	f.created = append(f.created, proposalID)
	return res, true, nil
}

// fakeSpeakerRepo is an in-memory SpeakerRepository for tests.
type fakeSpeakerRepo struct {
	all        []*domain.Speaker
	presenting []*domain.Speaker
	err        error
}

func (f *fakeSpeakerRepo) ListAll(ctx context.Context) ([]*domain.Speaker, error) {
	return f.all, f.err
}

func (f *fakeSpeakerRepo) ListPresenting(ctx context.Context) ([]*domain.Speaker, error) {
	return f.presenting, f.err
}

// fakeSponsorRepo is an in-memory SponsorRepository for tests. It returns
// sponsors in the order given and records the requested ordering.
type fakeSponsorRepo struct {
	sponsors  []*domain.Sponsor
	lastOrder domain.SponsorOrder
	err       error
}

func (f *fakeSponsorRepo) ListActive(ctx context.Context, order domain.SponsorOrder) ([]*domain.Sponsor, error) {
	f.lastOrder = order
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Sponsor
	for _, s := range f.sponsors {
		if s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}

// fakeScheduleRepo is an in-memory ScheduleRepository for tests.
type fakeScheduleRepo struct {
	slots []*domain.Slot
	err   error
}

func (f *fakeScheduleRepo) ListSlots(ctx context.Context) ([]*domain.Slot, error) {
	return f.slots, f.err
}

type fakeUserRepo struct {
	byEmail   map[string]*domain.User
	superuser bool
	err       error
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) SaveCredentials(ctx context.Context, u *domain.User, superuser bool) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.byEmail == nil {
		f.byEmail = map[string]*domain.User{}
	}
	saved := *u
	if existing, ok := f.byEmail[u.Email]; ok {
		saved.ID = existing.ID
		if saved.Name == "" {
			saved.Name = existing.Name
		}
	} else {
		saved.ID = "u-" + u.Email
	}
	f.byEmail[u.Email] = &saved
	f.superuser = f.superuser || superuser
	return &saved, nil
}

type fakeRoleRepo struct {
	roles map[string][]*domain.Role
	err   error
}

func (f *fakeRoleRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Role, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.roles[userID], nil
}

// fakeHasher treats the stored hash as salt+password.
type fakeHasher struct {
	saltErr error
}

func (f fakeHasher) GenerateSalt() (string, error) { return "salt", f.saltErr }

func (fakeHasher) Hash(salt, password string) (string, error) { return salt + password, nil }

func (fakeHasher) Compare(hash, salt, password string) error {
	if hash != salt+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

type fakeIssuer struct {
	gotUserID string
	gotRoles  []string
	err       error
}

func (f *fakeIssuer) Issue(userID, email string, roles []string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.gotUserID = userID
	f.gotRoles = roles
	return "token-" + userID, nil
}
