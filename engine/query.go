package engine

import (
	"tp-forum-engine/errs"
)

const (
	UnknownSortErrMessage  = "unknown sort"
	InvalidLimitErrMessage = "limit must be positive"
)

type Sort int

const (
	SortFlat Sort = iota
	SortTree
	SortParentTree
)

var sortNames = map[Sort]string{
	SortFlat:       "flat",
	SortTree:       "tree",
	SortParentTree: "parent_tree",
}

// ParseSort maps the external sort name to a Sort. An empty name means flat.
func ParseSort(name string) (Sort, error) {
	if name == "" {
		return SortFlat, nil
	}
	for sort, sortName := range sortNames {
		if sortName == name {
			return sort, nil
		}
	}
	return SortFlat, errs.NewInvalidFormatError(UnknownSortErrMessage)
}

func (s Sort) String() string {
	return sortNames[s]
}

// Page selects which page of a read strategy is wanted: either FirstPage
// or PageAfter a previously returned post.
type Page interface {
	isPage()
}

type FirstPage struct{}

// PageAfter resumes strictly after the post Since in the requested
// direction.
type PageAfter struct {
	Since int64
}

func (FirstPage) isPage() {}
func (PageAfter) isPage() {}

// PageSince builds a Page from an optional cursor where zero means none.
func PageSince(since int64) Page {
	if since == 0 {
		return FirstPage{}
	}
	return PageAfter{Since: since}
}

type PostsQuery struct {
	Thread ThreadHandle
	Sort   Sort
	Limit  int
	Page   Page
	Desc   bool
}

// PostsSelect is a PostsQuery with the thread already resolved.
type PostsSelect struct {
	ThreadID int32
	Sort     Sort
	Limit    int
	Page     Page
	Desc     bool
}
