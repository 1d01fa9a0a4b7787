package internal

import "context"

// One interface per record collection. Mutations report affected-row
// counts so handlers can surface them directly; a zero count is a no-op,
// not an error. Lookups that match nothing return (nil, nil).

type UserStore interface {
	Insert(ctx context.Context, u User) (string, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	SetRole(ctx context.Context, id string, role Role) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type DraftContestStore interface {
	Insert(ctx context.Context, d DraftContest) (string, error)
	List(ctx context.Context) ([]DraftContest, error)
	Find(ctx context.Context, id string) (*DraftContest, error)
	UpdateFields(ctx context.Context, id string, f ContestFields) (int64, error)
	SetStatus(ctx context.Context, id string, status DraftStatus) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type ContestStore interface {
	Insert(ctx context.Context, c Contest) (string, error)
	List(ctx context.Context) ([]Contest, error)
	Find(ctx context.Context, id string) (*Contest, error)
}

type SubmissionStore interface {
	Insert(ctx context.Context, s Submission) (string, error)
	List(ctx context.Context) ([]Submission, error)
	Find(ctx context.Context, id string) (*Submission, error)
	ListByContest(ctx context.Context, contestID string) ([]Submission, error)
	MarkWinners(ctx context.Context, contestID string) (int64, error)
}

type WinnerStore interface {
	Insert(ctx context.Context, w Winner) (string, error)
	ListByEmail(ctx context.Context, email string) ([]Winner, error)
}

type PaymentStore interface {
	Insert(ctx context.Context, p Payment) (string, error)
	ListByEmail(ctx context.Context, email string) ([]Payment, error)
}

type AuditStore interface {
	Record(ctx context.Context, actor, action, details string)
	Recent(ctx context.Context, limit int) ([]AuditEntry, error)
}

// Stores bundles the collection handles and is passed to every handler
// at construction. No package-level connection state.
type Stores struct {
	Users       UserStore
	Drafts      DraftContestStore
	Contests    ContestStore
	Submissions SubmissionStore
	Winners     WinnerStore
	Payments    PaymentStore
	Audit       AuditStore
}
