package models

import (
	"tp-forum-engine/errs"
)

//easyjson:json
type Vote struct {
	Nickname string `json:"nickname"`
	Voice    int32  `json:"voice"`
}

type VoteValidator struct {
	err *errs.Error
}

func NewVoteValidator() *VoteValidator {
	return &VoteValidator{
		err: errs.NewInvalidFormatError(ValidationErrMessage),
	}
}

func (v *VoteValidator) Validate(vote *Vote) error {
	if vote.Nickname == "" {
		return v.err
	}
	if vote.Voice != -1 && vote.Voice != 1 {
		return v.err
	}
	return nil
}
