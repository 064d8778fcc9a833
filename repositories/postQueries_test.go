package repositories

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tp-forum-engine/engine"
)

func TestSelectPostsStatementsCoverEveryVariant(t *testing.T) {
	names := map[string]bool{}
	for _, sort := range []engine.Sort{engine.SortFlat, engine.SortTree, engine.SortParentTree} {
		for _, since := range []bool{false, true} {
			for _, desc := range []bool{false, true} {
				stmt, ok := selectPostsStatements[postsVariant{sort: sort, since: since, desc: desc}]
				require.True(t, ok, "%s since=%v desc=%v", sort, since, desc)

				assert.False(t, names[stmt.name], stmt.name)
				names[stmt.name] = true

				assert.True(t, strings.HasPrefix(stmt.name, "select_posts_"+sort.String()), stmt.name)
				assert.Equal(t, since, strings.Contains(stmt.name, "_since"), stmt.name)
				assert.Equal(t, desc, strings.HasSuffix(stmt.name, "_desc"), stmt.name)
			}
		}
	}
	assert.Len(t, selectPostsStatements, len(names))
}

func TestSelectPostsStatementsBindLimitLast(t *testing.T) {
	for variant, stmt := range selectPostsStatements {
		limit := "LIMIT $2"
		if variant.since {
			limit = "LIMIT $3"
			assert.Contains(t, stmt.query, "$2", stmt.name)
		} else {
			assert.NotContains(t, stmt.query, "$3", stmt.name)
		}
		assert.Contains(t, stmt.query, limit, stmt.name)
		assert.Contains(t, stmt.query, `p."thread" = $1`, stmt.name)
	}
}

func TestSelectPostsStatementsOrder(t *testing.T) {
	tests := []struct {
		variant postsVariant
		order   string
	}{
		{postsVariant{engine.SortFlat, false, false}, `ORDER BY p."created_timestamp", p."id"`},
		{postsVariant{engine.SortFlat, true, true}, `ORDER BY p."created_timestamp" DESC, p."id" DESC`},
		{postsVariant{engine.SortTree, true, false}, `ORDER BY p."path"`},
		{postsVariant{engine.SortTree, false, true}, `ORDER BY p."path" DESC`},
		{postsVariant{engine.SortParentTree, false, false}, `ORDER BY p."path";`},
		{postsVariant{engine.SortParentTree, true, true}, `ORDER BY p."path"[1] DESC, p."path";`},
	}
	for _, tt := range tests {
		stmt := selectPostsStatements[tt.variant]
		assert.Contains(t, stmt.query, tt.order, stmt.name)
	}

	since := selectPostsStatements[postsVariant{engine.SortParentTree, true, false}]
	assert.Contains(t, since.query, `r."id" > (SELECT c."path"[1]`)
	sinceDesc := selectPostsStatements[postsVariant{engine.SortTree, true, true}]
	assert.Contains(t, sinceDesc.query, `p."path" < (SELECT c."path"`)
}

func TestSelectPostsArgs(t *testing.T) {
	name, args, ok := selectPostsArgs(&engine.PostsSelect{
		ThreadID: 3,
		Sort:     engine.SortTree,
		Limit:    5,
		Page:     engine.FirstPage{},
	})
	require.True(t, ok)
	assert.Equal(t, "select_posts_tree", name)
	assert.Equal(t, []interface{}{int32(3), 5}, args)

	name, args, ok = selectPostsArgs(&engine.PostsSelect{
		ThreadID: 3,
		Sort:     engine.SortParentTree,
		Limit:    5,
		Page:     engine.PageAfter{Since: 42},
		Desc:     true,
	})
	require.True(t, ok)
	assert.Equal(t, "select_posts_parent_tree_since_desc", name)
	assert.Equal(t, []interface{}{int32(3), int64(42), 5}, args)

	_, _, ok = selectPostsArgs(&engine.PostsSelect{Sort: engine.Sort(9), Limit: 1, Page: engine.FirstPage{}})
	assert.False(t, ok)
}

func TestPostsCapacityIsBounded(t *testing.T) {
	const huge = 100000000000000000

	tests := []struct {
		sort  engine.Sort
		limit int
		want  int
	}{
		{engine.SortFlat, 5, 5},
		{engine.SortTree, MaxPostsPrealloc, MaxPostsPrealloc},
		{engine.SortFlat, huge, MaxPostsPrealloc},
		{engine.SortTree, huge, MaxPostsPrealloc},
		{engine.SortParentTree, 1, MaxPostsPrealloc},
		{engine.SortParentTree, huge, MaxPostsPrealloc},
	}
	for _, tt := range tests {
		sel := &engine.PostsSelect{ThreadID: 1, Sort: tt.sort, Limit: tt.limit, Page: engine.FirstPage{}}
		assert.Equal(t, tt.want, postsCapacity(sel), "%s limit=%d", tt.sort, tt.limit)
		assert.NotPanics(t, func() {
			_ = make([]int64, 0, postsCapacity(sel))
		})

		_, args, ok := selectPostsArgs(sel)
		require.True(t, ok)
		assert.Equal(t, tt.limit, args[len(args)-1])
	}
}

func TestThreadStatement(t *testing.T) {
	assert.Equal(t, SelectThreadRefBySlug, threadStatement(engine.ParseThreadHandle("abc"), SelectThreadRefByID, SelectThreadRefBySlug))
	assert.Equal(t, SelectThreadRefByID, threadStatement(engine.ParseThreadHandle("12"), SelectThreadRefByID, SelectThreadRefBySlug))
	assert.Equal(t, int32(12), threadKey(engine.ThreadByID(12)))
	assert.Equal(t, "abc", threadKey(engine.ThreadBySlug("abc")))
}
