package memstore

import (
	"sort"
	"time"

	"tp-forum-engine/engine"
	"tp-forum-engine/models"
	"tp-forum-engine/paths"
)

func (s *Store) SelectPosts(sel *engine.PostsSelect) (models.Posts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var selected []*models.Post
	switch sel.Sort {
	case engine.SortTree:
		selected = s.selectTree(sel)
	case engine.SortParentTree:
		selected = s.selectParentTree(sel)
	default:
		selected = s.selectFlat(sel)
	}

	posts := make(models.Posts, len(selected))
	for i, post := range selected {
		posts[i] = *post
	}
	return posts, nil
}

func (s *Store) selectFlat(sel *engine.PostsSelect) []*models.Post {
	var candidates []*models.Post
	switch page := sel.Page.(type) {
	case engine.PageAfter:
		for _, post := range s.threadPosts[sel.ThreadID] {
			if (!sel.Desc && post.ID > page.Since) || (sel.Desc && post.ID < page.Since) {
				candidates = append(candidates, post)
			}
		}
	case engine.FirstPage:
		candidates = append(candidates, s.threadPosts[sel.ThreadID]...)
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if sel.Desc {
			a, b = b, a
		}
		ta, tb := time.Time(a.Created), time.Time(b.Created)
		if !ta.Equal(tb) {
			return ta.Before(tb)
		}
		return a.ID < b.ID
	})
	return limit(candidates, sel.Limit)
}

func (s *Store) selectTree(sel *engine.PostsSelect) []*models.Post {
	var candidates []*models.Post
	switch page := sel.Page.(type) {
	case engine.PageAfter:
		cursor, ok := s.posts[page.Since]
		if !ok {
			return nil
		}
		for _, post := range s.threadPosts[sel.ThreadID] {
			cmp := paths.Compare(post.Path, cursor.Path)
			if (!sel.Desc && cmp > 0) || (sel.Desc && cmp < 0) {
				candidates = append(candidates, post)
			}
		}
	case engine.FirstPage:
		candidates = append(candidates, s.threadPosts[sel.ThreadID]...)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if sel.Desc {
			return paths.Less(candidates[j].Path, candidates[i].Path)
		}
		return paths.Less(candidates[i].Path, candidates[j].Path)
	})
	return limit(candidates, sel.Limit)
}

func (s *Store) selectParentTree(sel *engine.PostsSelect) []*models.Post {
	var roots []int64
	switch page := sel.Page.(type) {
	case engine.PageAfter:
		cursor, ok := s.posts[page.Since]
		if !ok {
			return nil
		}
		bound := cursor.Path.RootID()
		for _, post := range s.threadPosts[sel.ThreadID] {
			if !post.IsRoot() {
				continue
			}
			if (!sel.Desc && post.ID > bound) || (sel.Desc && post.ID < bound) {
				roots = append(roots, post.ID)
			}
		}
	case engine.FirstPage:
		for _, post := range s.threadPosts[sel.ThreadID] {
			if post.IsRoot() {
				roots = append(roots, post.ID)
			}
		}
	}

	sort.Slice(roots, func(i, j int) bool {
		if sel.Desc {
			return roots[i] > roots[j]
		}
		return roots[i] < roots[j]
	})
	if len(roots) > sel.Limit {
		roots = roots[:sel.Limit]
	}

	chosen := make(map[int64]bool, len(roots))
	for _, id := range roots {
		chosen[id] = true
	}

	var selected []*models.Post
	for _, post := range s.threadPosts[sel.ThreadID] {
		if chosen[post.Path.RootID()] {
			selected = append(selected, post)
		}
	}

	sort.Slice(selected, func(i, j int) bool {
		a, b := selected[i].Path, selected[j].Path
		if sel.Desc && a.RootID() != b.RootID() {
			return a.RootID() > b.RootID()
		}
		return paths.Less(a, b)
	})
	return selected
}

func limit(posts []*models.Post, n int) []*models.Post {
	if len(posts) > n {
		return posts[:n]
	}
	return posts
}
