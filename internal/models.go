package internal

import "errors"

// Role is the closed set of privilege levels a user can hold. The zero
// value means an ordinary participant with no elevated access.
type Role string

const (
	RoleNone    Role = ""
	RoleAdmin   Role = "admin"
	RoleCreator Role = "creator"
)

func (r Role) Valid() bool {
	switch r {
	case RoleNone, RoleAdmin, RoleCreator:
		return true
	}
	return false
}

var ErrInvalidRole = errors.New("invalid role")

type DraftStatus string

const (
	DraftPending  DraftStatus = "Pending"
	DraftApproved DraftStatus = "Approved"
)

const (
	SubmissionSubmitted = "submitted"
	SubmissionWinner    = "winner"
)

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  Role   `json:"role,omitempty"`
}

// ContestFields is the payload shared by draft and published contests.
type ContestFields struct {
	ContestName        string   `json:"contest_name"`
	Image              string   `json:"image"`
	Description        string   `json:"description"`
	ContestPrice       float64  `json:"contest_price"`
	PrizeMoney         float64  `json:"prize_money"`
	Instruction        string   `json:"instruction"`
	Tags               []string `json:"tags"`
	Deadline           string   `json:"deadline"`
	ParticipationCount int      `json:"participation_count"`
	CreatorEmail       string   `json:"creator_email,omitempty"`
}

// DraftContest sits in the review queue until an admin approves it.
type DraftContest struct {
	ID string `json:"id"`
	ContestFields
	Status DraftStatus `json:"status"`
}

// Contest is a published contest. There is no status field; presence in
// the contests collection means published.
type Contest struct {
	ID string `json:"id"`
	ContestFields
}

type Submission struct {
	ID               string `json:"id"`
	ContestID        string `json:"contest_id"`
	ParticipantEmail string `json:"participant_email"`
	Payload          string `json:"payload"`
	Status           string `json:"status"`
}

// Winner is append-only; one is recorded when a submission is promoted.
type Winner struct {
	ID               string  `json:"id"`
	ContestID        string  `json:"contest_id"`
	ParticipantEmail string  `json:"participant_email"`
	ContestName      string  `json:"contest_name,omitempty"`
	PrizeMoney       float64 `json:"prize_money,omitempty"`
}

// Payment is the client-reported record persisted after the provider-side
// payment completes. The server does not verify it against the provider.
type Payment struct {
	ID              string  `json:"id"`
	Email           string  `json:"email"`
	ContestID       string  `json:"contest_id"`
	Amount          float64 `json:"amount"`
	TransactionDate string  `json:"transaction_date"`
}

type AuditEntry struct {
	ID        int64  `json:"id"`
	CreatedAt string `json:"created_at"`
	Actor     string `json:"actor"`
	Action    string `json:"action"`
	Details   string `json:"details"`
}
