package models

import (
	"github.com/go-openapi/strfmt"

	"tp-forum-engine/errs"
	"tp-forum-engine/paths"
)

//easyjson:json
type Post struct {
	ID       int64           `json:"id"`
	Parent   int64           `json:"parent,omitempty"`
	Author   string          `json:"author"`
	Forum    string          `json:"forum"`
	Thread   int32           `json:"thread"`
	Message  string          `json:"message"`
	Created  strfmt.DateTime `json:"created"`
	IsEdited bool            `json:"isEdited"`
	Path     paths.Path      `json:"-"`
}

func (p *Post) IsRoot() bool {
	return p.Parent == 0
}

type PostValidator struct {
	err *errs.Error
}

func NewPostValidator() *PostValidator {
	return &PostValidator{
		err: errs.NewInvalidFormatError(ValidationErrMessage),
	}
}

func (v *PostValidator) Validate(post *Post) error {
	if post.Parent < 0 {
		return v.err
	}
	if post.Author == "" {
		return v.err
	}
	if post.Message == "" {
		return v.err
	}
	return nil
}

//easyjson:json
type Posts []Post
