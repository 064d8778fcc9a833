package models

//easyjson:json
type Thread struct {
	ID       int32         `json:"id"`
	Slug     NullString    `json:"slug"`
	Title    string        `json:"title"`
	Forum    string        `json:"forum"`
	Author   string        `json:"author"`
	Created  NullTimestamp `json:"created"`
	Message  string        `json:"message"`
	NumVotes int32         `json:"votes"`
}

// ThreadRef holds the attributes of a thread that never change after the
// thread is created.
//
//easyjson:json
type ThreadRef struct {
	ID    int32      `json:"id"`
	Slug  NullString `json:"slug"`
	Forum string     `json:"forum"`
}

func (t *Thread) Ref() *ThreadRef {
	return &ThreadRef{
		ID:    t.ID,
		Slug:  t.Slug,
		Forum: t.Forum,
	}
}
