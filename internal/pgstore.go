package internal

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewStores wires pgx-backed implementations for every collection.
func NewStores(db *pgxpool.Pool) *Stores {
	return &Stores{
		Users:       &pgUserStore{db},
		Drafts:      &pgDraftStore{db},
		Contests:    &pgContestStore{db},
		Submissions: &pgSubmissionStore{db},
		Winners:     &pgWinnerStore{db},
		Payments:    &pgPaymentStore{db},
		Audit:       &pgAuditStore{db},
	}
}

/* ===================== USERS ===================== */

type pgUserStore struct{ db *pgxpool.Pool }

func (s *pgUserStore) Insert(ctx context.Context, u User) (string, error) {
	id := uuid.NewString()
	_, err := qExec(ctx, s.db, psql.Insert("users").
		Columns("id", "email", "name", "role").
		Values(id, u.Email, u.Name, string(u.Role)))
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *pgUserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := qRow(ctx, s.db, psql.Select("id", "email", "name", "role").
		From("users").Where(sq.Eq{"email": email})).
		Scan(&u.ID, &u.Email, &u.Name, &u.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *pgUserStore) List(ctx context.Context) ([]User, error) {
	rows, err := qQuery(ctx, s.db, psql.Select("id", "email", "name", "role").
		From("users").OrderBy("email ASC"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// SetRole reports rows actually changed, so promoting an already-promoted
// user is a zero-effect call.
func (s *pgUserStore) SetRole(ctx context.Context, id string, role Role) (int64, error) {
	tag, err := qExec(ctx, s.db, psql.Update("users").
		Set("role", string(role)).
		Where(sq.Eq{"id": id}).
		Where(sq.NotEq{"role": string(role)}))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *pgUserStore) Delete(ctx context.Context, id string) (int64, error) {
	tag, err := qExec(ctx, s.db, psql.Delete("users").Where(sq.Eq{"id": id}))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

/* ===================== DRAFT CONTESTS ===================== */

type pgDraftStore struct{ db *pgxpool.Pool }

var contestColumns = []string{
	"contest_name", "image", "description", "contest_price", "prize_money",
	"instruction", "tags", "deadline", "participation_count", "creator_email",
}

func contestValues(f ContestFields) []any {
	tags := f.Tags
	if tags == nil {
		tags = []string{}
	}
	return []any{
		f.ContestName, f.Image, f.Description, f.ContestPrice, f.PrizeMoney,
		f.Instruction, tags, f.Deadline, f.ParticipationCount, f.CreatorEmail,
	}
}

func scanContestFields(f *ContestFields) []any {
	return []any{
		&f.ContestName, &f.Image, &f.Description, &f.ContestPrice, &f.PrizeMoney,
		&f.Instruction, &f.Tags, &f.Deadline, &f.ParticipationCount, &f.CreatorEmail,
	}
}

func (s *pgDraftStore) Insert(ctx context.Context, d DraftContest) (string, error) {
	id := uuid.NewString()
	_, err := qExec(ctx, s.db, psql.Insert("draft_contests").
		Columns(append([]string{"id"}, append(contestColumns, "status")...)...).
		Values(append([]any{id}, append(contestValues(d.ContestFields), string(d.Status))...)...))
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *pgDraftStore) List(ctx context.Context) ([]DraftContest, error) {
	rows, err := qQuery(ctx, s.db, psql.Select(append([]string{"id"}, append(contestColumns, "status")...)...).
		From("draft_contests").OrderBy("contest_name ASC"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []DraftContest{}
	for rows.Next() {
		var d DraftContest
		dest := append([]any{&d.ID}, scanContestFields(&d.ContestFields)...)
		dest = append(dest, &d.Status)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *pgDraftStore) Find(ctx context.Context, id string) (*DraftContest, error) {
	var d DraftContest
	dest := append([]any{&d.ID}, scanContestFields(&d.ContestFields)...)
	dest = append(dest, &d.Status)
	err := qRow(ctx, s.db, psql.Select(append([]string{"id"}, append(contestColumns, "status")...)...).
		From("draft_contests").Where(sq.Eq{"id": id})).Scan(dest...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *pgDraftStore) UpdateFields(ctx context.Context, id string, f ContestFields) (int64, error) {
	q := psql.Update("draft_contests").Where(sq.Eq{"id": id})
	vals := contestValues(f)
	for i, col := range contestColumns {
		q = q.Set(col, vals[i])
	}
	tag, err := qExec(ctx, s.db, q)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *pgDraftStore) SetStatus(ctx context.Context, id string, status DraftStatus) (int64, error) {
	tag, err := qExec(ctx, s.db, psql.Update("draft_contests").
		Set("status", string(status)).
		Where(sq.Eq{"id": id}).
		Where(sq.NotEq{"status": string(status)}))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *pgDraftStore) Delete(ctx context.Context, id string) (int64, error) {
	tag, err := qExec(ctx, s.db, psql.Delete("draft_contests").Where(sq.Eq{"id": id}))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

/* ===================== CONTESTS ===================== */

type pgContestStore struct{ db *pgxpool.Pool }

func (s *pgContestStore) Insert(ctx context.Context, c Contest) (string, error) {
	id := uuid.NewString()
	_, err := qExec(ctx, s.db, psql.Insert("contests").
		Columns(append([]string{"id"}, contestColumns...)...).
		Values(append([]any{id}, contestValues(c.ContestFields)...)...))
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *pgContestStore) List(ctx context.Context) ([]Contest, error) {
	rows, err := qQuery(ctx, s.db, psql.Select(append([]string{"id"}, contestColumns...)...).
		From("contests").OrderBy("contest_name ASC"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Contest{}
	for rows.Next() {
		var c Contest
		dest := append([]any{&c.ID}, scanContestFields(&c.ContestFields)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *pgContestStore) Find(ctx context.Context, id string) (*Contest, error) {
	var c Contest
	dest := append([]any{&c.ID}, scanContestFields(&c.ContestFields)...)
	err := qRow(ctx, s.db, psql.Select(append([]string{"id"}, contestColumns...)...).
		From("contests").Where(sq.Eq{"id": id})).Scan(dest...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

/* ===================== SUBMISSIONS ===================== */

type pgSubmissionStore struct{ db *pgxpool.Pool }

func (s *pgSubmissionStore) Insert(ctx context.Context, sub Submission) (string, error) {
	id := uuid.NewString()
	_, err := qExec(ctx, s.db, psql.Insert("submissions").
		Columns("id", "contest_id", "participant_email", "payload", "status").
		Values(id, sub.ContestID, sub.ParticipantEmail, sub.Payload, sub.Status))
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *pgSubmissionStore) List(ctx context.Context) ([]Submission, error) {
	return s.query(ctx, psql.Select("id", "contest_id", "participant_email", "payload", "status").
		From("submissions").OrderBy("id ASC"))
}

func (s *pgSubmissionStore) ListByContest(ctx context.Context, contestID string) ([]Submission, error) {
	return s.query(ctx, psql.Select("id", "contest_id", "participant_email", "payload", "status").
		From("submissions").Where(sq.Eq{"contest_id": contestID}).OrderBy("id ASC"))
}

func (s *pgSubmissionStore) query(ctx context.Context, q sq.SelectBuilder) ([]Submission, error) {
	rows, err := qQuery(ctx, s.db, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Submission{}
	for rows.Next() {
		var sub Submission
		if err := rows.Scan(&sub.ID, &sub.ContestID, &sub.ParticipantEmail, &sub.Payload, &sub.Status); err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

func (s *pgSubmissionStore) Find(ctx context.Context, id string) (*Submission, error) {
	var sub Submission
	err := qRow(ctx, s.db, psql.Select("id", "contest_id", "participant_email", "payload", "status").
		From("submissions").Where(sq.Eq{"id": id})).
		Scan(&sub.ID, &sub.ContestID, &sub.ParticipantEmail, &sub.Payload, &sub.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// MarkWinners promotes every submission of the contest that is not
// already a winner and reports how many changed.
func (s *pgSubmissionStore) MarkWinners(ctx context.Context, contestID string) (int64, error) {
	tag, err := qExec(ctx, s.db, psql.Update("submissions").
		Set("status", SubmissionWinner).
		Where(sq.Eq{"contest_id": contestID}).
		Where(sq.NotEq{"status": SubmissionWinner}))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

/* ===================== WINNERS ===================== */

type pgWinnerStore struct{ db *pgxpool.Pool }

func (s *pgWinnerStore) Insert(ctx context.Context, w Winner) (string, error) {
	id := uuid.NewString()
	_, err := qExec(ctx, s.db, psql.Insert("winners").
		Columns("id", "contest_id", "participant_email", "contest_name", "prize_money").
		Values(id, w.ContestID, w.ParticipantEmail, w.ContestName, w.PrizeMoney))
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *pgWinnerStore) ListByEmail(ctx context.Context, email string) ([]Winner, error) {
	rows, err := qQuery(ctx, s.db, psql.Select("id", "contest_id", "participant_email", "contest_name", "prize_money").
		From("winners").Where(sq.Eq{"participant_email": email}).OrderBy("id ASC"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Winner{}
	for rows.Next() {
		var w Winner
		if err := rows.Scan(&w.ID, &w.ContestID, &w.ParticipantEmail, &w.ContestName, &w.PrizeMoney); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

/* ===================== PAYMENTS ===================== */

type pgPaymentStore struct{ db *pgxpool.Pool }

func (s *pgPaymentStore) Insert(ctx context.Context, p Payment) (string, error) {
	id := uuid.NewString()
	_, err := qExec(ctx, s.db, psql.Insert("payments").
		Columns("id", "email", "contest_id", "amount", "transaction_date").
		Values(id, p.Email, p.ContestID, p.Amount, p.TransactionDate))
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *pgPaymentStore) ListByEmail(ctx context.Context, email string) ([]Payment, error) {
	rows, err := qQuery(ctx, s.db, psql.Select("id", "email", "contest_id", "amount", "transaction_date").
		From("payments").Where(sq.Eq{"email": email}).OrderBy("id ASC"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Payment{}
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.Email, &p.ContestID, &p.Amount, &p.TransactionDate); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

/* ===================== AUDIT LOG ===================== */

type pgAuditStore struct{ db *pgxpool.Pool }

// Record is best-effort; an audit miss never fails the operation.
func (s *pgAuditStore) Record(ctx context.Context, actor, action, details string) {
	_, _ = qExec(ctx, s.db, psql.Insert("logs").
		Columns("actor", "action", "details").
		Values(actor, action, details))
}

func (s *pgAuditStore) Recent(ctx context.Context, limit int) ([]AuditEntry, error) {
	rows, err := qQuery(ctx, s.db, psql.Select("id", "to_char(created_at, 'YYYY-MM-DD HH24:MI:SS')", "actor", "action", "details").
		From("logs").OrderBy("id DESC").Limit(uint64(limit)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []AuditEntry{}
	for rows.Next() {
		var e AuditEntry
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.Actor, &e.Action, &e.Details); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
