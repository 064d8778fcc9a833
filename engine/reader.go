package engine

import (
	"tp-forum-engine/errs"
	"tp-forum-engine/models"
)

// PostReader serves the flat, tree and parent_tree read strategies.
type PostReader struct {
	resolver ThreadResolver
	store    PostReadStore

	invalidLimitErr *errs.Error
}

func NewPostReader(resolver ThreadResolver, store PostReadStore) *PostReader {
	return &PostReader{
		resolver:        resolver,
		store:           store,
		invalidLimitErr: errs.NewInvalidFormatError(InvalidLimitErrMessage),
	}
}

// Posts resolves the thread and runs the strategy named by q.Sort. A nil
// q.Page is treated as FirstPage.
func (r *PostReader) Posts(q *PostsQuery) (models.Posts, error) {
	if q.Limit <= 0 {
		return nil, r.invalidLimitErr
	}
	if _, ok := sortNames[q.Sort]; !ok {
		return nil, errs.NewInvalidFormatError(UnknownSortErrMessage)
	}

	thread, err := r.resolver.ResolveThread(q.Thread)
	if err != nil {
		return nil, errs.Wrap(err, "resolve thread")
	}

	page := q.Page
	if page == nil {
		page = FirstPage{}
	}

	posts, err := r.store.SelectPosts(&PostsSelect{
		ThreadID: thread.ID,
		Sort:     q.Sort,
		Limit:    q.Limit,
		Page:     page,
		Desc:     q.Desc,
	})
	if err != nil {
		return nil, errs.Wrap(err, "select posts")
	}
	if posts == nil {
		posts = make(models.Posts, 0)
	}
	return posts, nil
}

// Flat orders by creation time, then id.
func (r *PostReader) Flat(h ThreadHandle, limit int, page Page, desc bool) (models.Posts, error) {
	return r.Posts(&PostsQuery{Thread: h, Sort: SortFlat, Limit: limit, Page: page, Desc: desc})
}

// Tree orders by path, a pre-order walk of the reply tree.
func (r *PostReader) Tree(h ThreadHandle, limit int, page Page, desc bool) (models.Posts, error) {
	return r.Posts(&PostsQuery{Thread: h, Sort: SortTree, Limit: limit, Page: page, Desc: desc})
}

// ParentTree pages over root posts: limit counts roots, and every post
// below a selected root is returned with it.
func (r *PostReader) ParentTree(h ThreadHandle, limit int, page Page, desc bool) (models.Posts, error) {
	return r.Posts(&PostsQuery{Thread: h, Sort: SortParentTree, Limit: limit, Page: page, Desc: desc})
}
