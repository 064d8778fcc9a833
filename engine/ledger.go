package engine

import (
	"tp-forum-engine/errs"
	"tp-forum-engine/models"
)

const (
	VoteUserNotFoundErrMessage = "vote user not found"
)

// VoteLedger keeps one vote per user and thread and the thread tally equal
// to the sum of its votes.
type VoteLedger struct {
	store     VoteStore
	validator *models.VoteValidator

	userNotFoundErr *errs.Error
}

func NewVoteLedger(store VoteStore) *VoteLedger {
	return &VoteLedger{
		store:           store,
		validator:       models.NewVoteValidator(),
		userNotFoundErr: errs.NewUserNotFoundError(VoteUserNotFoundErrMessage),
	}
}

// CastVote records vote on the thread and returns the thread with its
// updated tally. A repeated vote only moves the tally by the difference.
func (l *VoteLedger) CastVote(h ThreadHandle, vote models.Vote) (*models.Thread, error) {
	if err := l.validator.Validate(&vote); err != nil {
		return nil, err
	}

	var result *models.Thread
	err := l.store.WithVoteTx(func(tx VoteTx) error {
		thread, err := tx.LockThread(h)
		if err != nil {
			return err
		}

		nickname, found, err := tx.FindUserNickname(vote.Nickname)
		if err != nil {
			return errs.Wrap(err, "select voter")
		}
		if !found {
			return l.userNotFoundErr
		}
		vote.Nickname = nickname

		oldVoice, voted, err := tx.FindVoice(thread.ID, vote.Nickname)
		if err != nil {
			return errs.Wrap(err, "select vote")
		}

		delta := vote.Voice
		if voted {
			if oldVoice == vote.Voice {
				result = thread
				return nil
			}
			delta = vote.Voice - oldVoice
			err = tx.UpdateVote(thread.ID, &vote)
		} else {
			err = tx.InsertVote(thread.ID, &vote)
		}
		if err != nil {
			return errs.Wrap(err, "write vote")
		}

		result, err = tx.AddThreadVotes(thread.ID, delta)
		return errs.Wrap(err, "update thread votes")
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
