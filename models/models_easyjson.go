// easyjson codecs for the models package. Maintained by hand alongside the types.

package models

import (
	json "encoding/json"

	easyjson "github.com/mailru/easyjson"
	jlexer "github.com/mailru/easyjson/jlexer"
	jwriter "github.com/mailru/easyjson/jwriter"
)

// suppress unused package warning
var (
	_ *json.RawMessage
	_ *jlexer.Lexer
	_ *jwriter.Writer
	_ easyjson.Marshaler
)

func easyjsonDecodePost(in *jlexer.Lexer, out *Post) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "id":
			out.ID = int64(in.Int64())
		case "parent":
			out.Parent = int64(in.Int64())
		case "author":
			out.Author = string(in.String())
		case "forum":
			out.Forum = string(in.String())
		case "thread":
			out.Thread = int32(in.Int32())
		case "message":
			out.Message = string(in.String())
		case "created":
			if data := in.Raw(); in.Ok() {
				in.AddError((out.Created).UnmarshalJSON(data))
			}
		case "isEdited":
			out.IsEdited = bool(in.Bool())
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

func easyjsonEncodePost(out *jwriter.Writer, in Post) {
	out.RawByte('{')
	out.RawString(`"id":`)
	out.Int64(int64(in.ID))
	if in.Parent != 0 {
		out.RawString(`,"parent":`)
		out.Int64(int64(in.Parent))
	}
	out.RawString(`,"author":`)
	out.String(string(in.Author))
	out.RawString(`,"forum":`)
	out.String(string(in.Forum))
	out.RawString(`,"thread":`)
	out.Int32(int32(in.Thread))
	out.RawString(`,"message":`)
	out.String(string(in.Message))
	out.RawString(`,"created":`)
	out.Raw((in.Created).MarshalJSON())
	out.RawString(`,"isEdited":`)
	out.Bool(bool(in.IsEdited))
	out.RawByte('}')
}

// MarshalEasyJSON supports easyjson.Marshaler interface
func (v Post) MarshalEasyJSON(w *jwriter.Writer) {
	easyjsonEncodePost(w, v)
}

// UnmarshalEasyJSON supports easyjson.Unmarshaler interface
func (v *Post) UnmarshalEasyJSON(l *jlexer.Lexer) {
	easyjsonDecodePost(l, v)
}

func easyjsonDecodePosts(in *jlexer.Lexer, out *Posts) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		in.Skip()
		*out = nil
	} else {
		in.Delim('[')
		if *out == nil {
			if !in.IsDelim(']') {
				*out = make(Posts, 0, 1)
			} else {
				*out = Posts{}
			}
		} else {
			*out = (*out)[:0]
		}
		for !in.IsDelim(']') {
			var v1 Post
			easyjsonDecodePost(in, &v1)
			*out = append(*out, v1)
			in.WantComma()
		}
		in.Delim(']')
	}
	if isTopLevel {
		in.Consumed()
	}
}

func easyjsonEncodePosts(out *jwriter.Writer, in Posts) {
	if in == nil && (out.Flags&jwriter.NilSliceAsEmpty) == 0 {
		out.RawString("null")
		return
	}
	out.RawByte('[')
	for i, v := range in {
		if i > 0 {
			out.RawByte(',')
		}
		easyjsonEncodePost(out, v)
	}
	out.RawByte(']')
}

// MarshalEasyJSON supports easyjson.Marshaler interface
func (v Posts) MarshalEasyJSON(w *jwriter.Writer) {
	easyjsonEncodePosts(w, v)
}

// UnmarshalEasyJSON supports easyjson.Unmarshaler interface
func (v *Posts) UnmarshalEasyJSON(l *jlexer.Lexer) {
	easyjsonDecodePosts(l, v)
}

func easyjsonDecodeThread(in *jlexer.Lexer, out *Thread) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "id":
			if in.IsNull() {
				in.Skip()
			} else {
				out.ID = int32(in.Int32())
			}
		case "slug":
			(out.Slug).UnmarshalEasyJSON(in)
		case "title":
			if in.IsNull() {
				in.Skip()
			} else {
				out.Title = string(in.String())
			}
		case "forum":
			if in.IsNull() {
				in.Skip()
			} else {
				out.Forum = string(in.String())
			}
		case "author":
			if in.IsNull() {
				in.Skip()
			} else {
				out.Author = string(in.String())
			}
		case "created":
			(out.Created).UnmarshalEasyJSON(in)
		case "message":
			if in.IsNull() {
				in.Skip()
			} else {
				out.Message = string(in.String())
			}
		case "votes":
			if in.IsNull() {
				in.Skip()
			} else {
				out.NumVotes = int32(in.Int32())
			}
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

func easyjsonEncodeThread(out *jwriter.Writer, in Thread) {
	out.RawByte('{')
	out.RawString(`"id":`)
	out.Int32(int32(in.ID))
	out.RawString(`,"slug":`)
	(in.Slug).MarshalEasyJSON(out)
	out.RawString(`,"title":`)
	out.String(string(in.Title))
	out.RawString(`,"forum":`)
	out.String(string(in.Forum))
	out.RawString(`,"author":`)
	out.String(string(in.Author))
	out.RawString(`,"created":`)
	(in.Created).MarshalEasyJSON(out)
	out.RawString(`,"message":`)
	out.String(string(in.Message))
	out.RawString(`,"votes":`)
	out.Int32(int32(in.NumVotes))
	out.RawByte('}')
}

// MarshalEasyJSON supports easyjson.Marshaler interface
func (v Thread) MarshalEasyJSON(w *jwriter.Writer) {
	easyjsonEncodeThread(w, v)
}

// UnmarshalEasyJSON supports easyjson.Unmarshaler interface
func (v *Thread) UnmarshalEasyJSON(l *jlexer.Lexer) {
	easyjsonDecodeThread(l, v)
}

func easyjsonDecodeThreadRef(in *jlexer.Lexer, out *ThreadRef) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "id":
			if in.IsNull() {
				in.Skip()
			} else {
				out.ID = int32(in.Int32())
			}
		case "slug":
			(out.Slug).UnmarshalEasyJSON(in)
		case "forum":
			if in.IsNull() {
				in.Skip()
			} else {
				out.Forum = string(in.String())
			}
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

func easyjsonEncodeThreadRef(out *jwriter.Writer, in ThreadRef) {
	out.RawByte('{')
	out.RawString(`"id":`)
	out.Int32(int32(in.ID))
	out.RawString(`,"slug":`)
	(in.Slug).MarshalEasyJSON(out)
	out.RawString(`,"forum":`)
	out.String(string(in.Forum))
	out.RawByte('}')
}

// MarshalEasyJSON supports easyjson.Marshaler interface
func (v ThreadRef) MarshalEasyJSON(w *jwriter.Writer) {
	easyjsonEncodeThreadRef(w, v)
}

// UnmarshalEasyJSON supports easyjson.Unmarshaler interface
func (v *ThreadRef) UnmarshalEasyJSON(l *jlexer.Lexer) {
	easyjsonDecodeThreadRef(l, v)
}

func easyjsonDecodeVote(in *jlexer.Lexer, out *Vote) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "nickname":
			out.Nickname = string(in.String())
		case "voice":
			out.Voice = int32(in.Int32())
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

func easyjsonEncodeVote(out *jwriter.Writer, in Vote) {
	out.RawByte('{')
	out.RawString(`"nickname":`)
	out.String(string(in.Nickname))
	out.RawString(`,"voice":`)
	out.Int32(int32(in.Voice))
	out.RawByte('}')
}

// MarshalEasyJSON supports easyjson.Marshaler interface
func (v Vote) MarshalEasyJSON(w *jwriter.Writer) {
	easyjsonEncodeVote(w, v)
}

// UnmarshalEasyJSON supports easyjson.Unmarshaler interface
func (v *Vote) UnmarshalEasyJSON(l *jlexer.Lexer) {
	easyjsonDecodeVote(l, v)
}
