package models

import (
	"database/sql"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
)

const (
	ValidationErrMessage = "invalid request body"
)

type NullString sql.NullString

func NewNullString(s string) NullString {
	return NullString{
		Valid:  s != "",
		String: s,
	}
}

func (ns *NullString) Scan(value interface{}) error {
	return (*sql.NullString)(ns).Scan(value)
}

func (ns NullString) MarshalEasyJSON(out *jwriter.Writer) {
	if ns.Valid {
		out.String(ns.String)
		return
	}
	out.RawString("null")
}

func (ns *NullString) UnmarshalEasyJSON(in *jlexer.Lexer) {
	if in.IsNull() {
		in.Skip()
		ns.Valid = false
		ns.String = ""
		return
	}
	ns.String = in.String()
	ns.Valid = true
}

type NullTimestamp struct {
	Valid     bool
	Timestamp strfmt.DateTime
}

func NewNullTimestamp(t time.Time) NullTimestamp {
	return NullTimestamp{
		Valid:     !t.IsZero(),
		Timestamp: strfmt.DateTime(t),
	}
}

func (t *NullTimestamp) Scan(value interface{}) error {
	if value == nil {
		t.Valid = false
		t.Timestamp = strfmt.DateTime{}
		return nil
	}
	if err := t.Timestamp.Scan(value); err != nil {
		return err
	}
	t.Valid = true
	return nil
}

func (t NullTimestamp) MarshalEasyJSON(out *jwriter.Writer) {
	if !t.Valid {
		out.RawString("null")
		return
	}
	out.Raw(t.Timestamp.MarshalJSON())
}

func (t *NullTimestamp) UnmarshalEasyJSON(in *jlexer.Lexer) {
	if in.IsNull() {
		in.Skip()
		t.Valid = false
		return
	}
	if data := in.Raw(); in.Ok() {
		in.AddError(t.Timestamp.UnmarshalJSON(data))
		t.Valid = in.Ok()
	}
}
