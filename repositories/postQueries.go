package repositories

import (
	"tp-forum-engine/engine"
)

// Every read strategy has one fixed statement per cursor and direction
// combination. Statements without a cursor take ($1 thread, $2 limit),
// statements with one take ($1 thread, $2 since, $3 limit).
const (
	PostAttributes = `
        p."id",p."parent_id",p."author",p."forum",p."thread",
        p."message",p."created_timestamp",p."is_edited",p."path"
    `

	selectThreadPosts = `
        SELECT ` + PostAttributes + `
        FROM "post" p
        WHERE p."thread" = $1`

	SelectPostsFlatQuery = selectThreadPosts + `
        ORDER BY p."created_timestamp", p."id"
        LIMIT $2;
    `
	SelectPostsFlatDescQuery = selectThreadPosts + `
        ORDER BY p."created_timestamp" DESC, p."id" DESC
        LIMIT $2;
    `
	SelectPostsFlatSinceQuery = selectThreadPosts + ` AND p."id" > $2
        ORDER BY p."created_timestamp", p."id"
        LIMIT $3;
    `
	SelectPostsFlatSinceDescQuery = selectThreadPosts + ` AND p."id" < $2
        ORDER BY p."created_timestamp" DESC, p."id" DESC
        LIMIT $3;
    `

	cursorPath = `(SELECT c."path" FROM "post" c WHERE c."id" = $2)`

	SelectPostsTreeQuery = selectThreadPosts + `
        ORDER BY p."path"
        LIMIT $2;
    `
	SelectPostsTreeDescQuery = selectThreadPosts + `
        ORDER BY p."path" DESC
        LIMIT $2;
    `
	SelectPostsTreeSinceQuery = selectThreadPosts + ` AND p."path" > ` + cursorPath + `
        ORDER BY p."path"
        LIMIT $3;
    `
	SelectPostsTreeSinceDescQuery = selectThreadPosts + ` AND p."path" < ` + cursorPath + `
        ORDER BY p."path" DESC
        LIMIT $3;
    `

	selectRoots = `
            SELECT r."id"
            FROM "post" r
            WHERE r."thread" = $1 AND r."parent_id" = 0`
	cursorRoot = `(SELECT c."path"[1] FROM "post" c WHERE c."id" = $2)`

	SelectPostsParentTreeQuery = selectThreadPosts + ` AND p."path"[1] IN (` + selectRoots + `
            ORDER BY r."id"
            LIMIT $2
        )
        ORDER BY p."path";
    `
	SelectPostsParentTreeDescQuery = selectThreadPosts + ` AND p."path"[1] IN (` + selectRoots + `
            ORDER BY r."id" DESC
            LIMIT $2
        )
        ORDER BY p."path"[1] DESC, p."path";
    `
	SelectPostsParentTreeSinceQuery = selectThreadPosts + ` AND p."path"[1] IN (` + selectRoots + `
              AND r."id" > ` + cursorRoot + `
            ORDER BY r."id"
            LIMIT $3
        )
        ORDER BY p."path";
    `
	SelectPostsParentTreeSinceDescQuery = selectThreadPosts + ` AND p."path"[1] IN (` + selectRoots + `
              AND r."id" < ` + cursorRoot + `
            ORDER BY r."id" DESC
            LIMIT $3
        )
        ORDER BY p."path"[1] DESC, p."path";
    `
)

type postsVariant struct {
	sort  engine.Sort
	since bool
	desc  bool
}

type postsStatement struct {
	name  string
	query string
}

var selectPostsStatements = map[postsVariant]postsStatement{
	{engine.SortFlat, false, false}: {"select_posts_flat", SelectPostsFlatQuery},
	{engine.SortFlat, false, true}:  {"select_posts_flat_desc", SelectPostsFlatDescQuery},
	{engine.SortFlat, true, false}:  {"select_posts_flat_since", SelectPostsFlatSinceQuery},
	{engine.SortFlat, true, true}:   {"select_posts_flat_since_desc", SelectPostsFlatSinceDescQuery},

	{engine.SortTree, false, false}: {"select_posts_tree", SelectPostsTreeQuery},
	{engine.SortTree, false, true}:  {"select_posts_tree_desc", SelectPostsTreeDescQuery},
	{engine.SortTree, true, false}:  {"select_posts_tree_since", SelectPostsTreeSinceQuery},
	{engine.SortTree, true, true}:   {"select_posts_tree_since_desc", SelectPostsTreeSinceDescQuery},

	{engine.SortParentTree, false, false}: {"select_posts_parent_tree", SelectPostsParentTreeQuery},
	{engine.SortParentTree, false, true}:  {"select_posts_parent_tree_desc", SelectPostsParentTreeDescQuery},
	{engine.SortParentTree, true, false}:  {"select_posts_parent_tree_since", SelectPostsParentTreeSinceQuery},
	{engine.SortParentTree, true, true}:   {"select_posts_parent_tree_since_desc", SelectPostsParentTreeSinceDescQuery},
}

// selectPostsArgs picks the statement for sel and binds its arguments.
func selectPostsArgs(sel *engine.PostsSelect) (string, []interface{}, bool) {
	variant := postsVariant{sort: sel.Sort, desc: sel.Desc}
	args := []interface{}{sel.ThreadID}

	if page, ok := sel.Page.(engine.PageAfter); ok {
		variant.since = true
		args = append(args, page.Since)
	}
	args = append(args, sel.Limit)

	stmt, ok := selectPostsStatements[variant]
	return stmt.name, args, ok
}
