package internal

import (
	"context"

	"go.uber.org/zap"
)

// The three state transitions in the system. None are reversible, and a
// transition that matches no record reports zero rows instead of failing.

// PromoteRole sets a user's role. Values outside the closed enum are
// rejected before any store write.
func PromoteRole(ctx context.Context, s *Stores, id string, role Role) (int64, error) {
	if !role.Valid() || role == RoleNone {
		return 0, ErrInvalidRole
	}
	return s.Users.SetRole(ctx, id, role)
}

// ApproveDraft moves a draft contest to Approved. Repeat calls are
// zero-effect; there is no transition back to Pending. Copying the
// approved draft into the published contests collection remains a
// client-driven step.
func ApproveDraft(ctx context.Context, s *Stores, id string) (int64, error) {
	return s.Drafts.SetStatus(ctx, id, DraftApproved)
}

// MarkWinner promotes every not-yet-winner submission whose contest_id
// matches the supplied key. Callers wanting single-submission promotion
// must pass a key that matches exactly one row.
//
// When exactly one submission is promoted, a companion winner record is
// written carrying the participant's email and the contest's prize
// metadata. The two writes are not atomic: if the winner insert fails
// after the status update landed, the update stays and the miss is
// logged.
func MarkWinner(ctx context.Context, s *Stores, contestID string) (int64, error) {
	subs, err := s.Submissions.ListByContest(ctx, contestID)
	if err != nil {
		return 0, err
	}
	var candidate *Submission
	for i := range subs {
		if subs[i].Status == SubmissionSubmitted {
			candidate = &subs[i]
		}
	}

	modified, err := s.Submissions.MarkWinners(ctx, contestID)
	if err != nil {
		return 0, err
	}

	if modified == 1 && candidate != nil {
		w := Winner{
			ContestID:        contestID,
			ParticipantEmail: candidate.ParticipantEmail,
		}
		if contest, err := s.Contests.Find(ctx, contestID); err == nil && contest != nil {
			w.ContestName = contest.ContestName
			w.PrizeMoney = contest.PrizeMoney
		}
		if _, err := s.Winners.Insert(ctx, w); err != nil {
			zlog.Warn("winner record not created",
				zap.String("contest_id", contestID),
				zap.String("participant_email", candidate.ParticipantEmail),
				zap.Error(err))
		}
	}
	return modified, nil
}
