// Package engine holds the post tree core of the forum: batch insertion of
// replies with materialized paths, the three post read strategies and the
// thread vote ledger. Storage is reached only through the interfaces in
// store.go.
package engine

import (
	"strconv"
)

// ThreadHandle addresses a thread either by id or by slug.
type ThreadHandle struct {
	id     int32
	slug   string
	bySlug bool
}

func ThreadByID(id int32) ThreadHandle {
	return ThreadHandle{id: id}
}

func ThreadBySlug(slug string) ThreadHandle {
	return ThreadHandle{slug: slug, bySlug: true}
}

// ParseThreadHandle treats anything that parses as a 32-bit integer as an
// id and everything else as a slug.
func ParseThreadHandle(slugOrID string) ThreadHandle {
	if id, err := strconv.ParseInt(slugOrID, 10, 32); err == nil {
		return ThreadByID(int32(id))
	}
	return ThreadBySlug(slugOrID)
}

func (h ThreadHandle) ID() (int32, bool) {
	return h.id, !h.bySlug
}

func (h ThreadHandle) Slug() (string, bool) {
	return h.slug, h.bySlug
}

func (h ThreadHandle) String() string {
	if h.bySlug {
		return "slug:" + h.slug
	}
	return "id:" + strconv.FormatInt(int64(h.id), 10)
}
