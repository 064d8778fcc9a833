package services

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/mailru/easyjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"tp-forum-engine/engine"
	"tp-forum-engine/errs"
	"tp-forum-engine/memstore"
	"tp-forum-engine/models"
)

func newTestServer(t *testing.T) (*Server, *memstore.Store) {
	store := memstore.New()
	store.AddUser("alice")
	store.AddUser("bob")
	store.AddForum("pirates")
	_, err := store.AddThread(models.Thread{
		Slug:   models.NewNullString("jolly"),
		Title:  "Jolly",
		Forum:  "pirates",
		Author: "alice",
	})
	require.NoError(t, err)

	now := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	srv := NewServer(ServerConfig{Host: "127.0.0.1", Port: 5000}, ServerComponents{
		PostWriter: engine.NewPostWriter(store, store).WithClock(func() time.Time { return now }),
		PostReader: engine.NewPostReader(store, store),
		VoteLedger: engine.NewVoteLedger(store),
	})
	return srv, store
}

func perform(srv *Server, method, uri, body string) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	req.SetBodyString(body)

	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	srv.Handler()(ctx)
	return ctx
}

func decodePosts(t *testing.T, ctx *fasthttp.RequestCtx) models.Posts {
	var posts models.Posts
	require.NoError(t, easyjson.Unmarshal(ctx.Response.Body(), &posts))
	return posts
}

func decodeError(t *testing.T, ctx *fasthttp.RequestCtx) string {
	var e errs.Error
	require.NoError(t, easyjson.Unmarshal(ctx.Response.Body(), &e))
	return e.Message
}

func TestCreatePosts(t *testing.T) {
	srv, _ := newTestServer(t)

	ctx := perform(srv, "POST", "/api/thread/jolly/create",
		`[{"author":"ALICE","message":"first"},{"author":"bob","message":"reply","parent":1}]`)
	require.Equal(t, http.StatusCreated, ctx.Response.StatusCode())
	assert.Equal(t, JsonType, string(ctx.Response.Header.ContentType()))

	posts := decodePosts(t, ctx)
	require.Len(t, posts, 2)
	assert.Equal(t, int64(1), posts[0].ID)
	assert.Equal(t, "alice", posts[0].Author)
	assert.Equal(t, int64(0), posts[0].Parent)
	assert.Equal(t, int64(1), posts[1].Parent)
	assert.Equal(t, "pirates", posts[1].Forum)
	assert.Equal(t, int32(1), posts[1].Thread)
	assert.Contains(t, string(ctx.Response.Body()), `"created":"2020-01-02T03:04:05.000Z"`)
}

func TestCreatePostsEmptyBatch(t *testing.T) {
	srv, _ := newTestServer(t)

	ctx := perform(srv, "POST", "/api/thread/1/create", `[]`)
	assert.Equal(t, http.StatusCreated, ctx.Response.StatusCode())
	assert.Equal(t, "[]", string(ctx.Response.Body()))

	ctx = perform(srv, "POST", "/api/thread/404/create", `[]`)
	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
}

func TestCreatePostsErrors(t *testing.T) {
	srv, store := newTestServer(t)

	tests := []struct {
		name   string
		uri    string
		body   string
		status int
	}{
		{"unknown thread", "/api/thread/missing/create", `[{"author":"alice","message":"m"}]`, http.StatusNotFound},
		{"unknown author", "/api/thread/jolly/create", `[{"author":"carol","message":"m"}]`, http.StatusNotFound},
		{"foreign parent", "/api/thread/jolly/create", `[{"author":"alice","message":"m","parent":77}]`, http.StatusConflict},
		{"malformed body", "/api/thread/jolly/create", `{"author":`, http.StatusUnprocessableEntity},
		{"empty message", "/api/thread/jolly/create", `[{"author":"alice"}]`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := perform(srv, "POST", tt.uri, tt.body)
			assert.Equal(t, tt.status, ctx.Response.StatusCode())
			assert.NotEmpty(t, decodeError(t, ctx))
		})
	}
	assert.Equal(t, 0, store.PostCount(1))
}

func TestFindPosts(t *testing.T) {
	srv, _ := newTestServer(t)

	ctx := perform(srv, "POST", "/api/thread/jolly/create",
		`[{"author":"alice","message":"a"},{"author":"bob","message":"b","parent":1},{"author":"alice","message":"c"},{"author":"bob","message":"d","parent":1}]`)
	require.Equal(t, http.StatusCreated, ctx.Response.StatusCode())

	tests := []struct {
		query string
		ids   []int64
	}{
		{"", []int64{1, 2, 3, 4}},
		{"?sort=flat&desc=true&limit=2", []int64{4, 3}},
		{"?sort=tree", []int64{1, 2, 4, 3}},
		{"?sort=tree&since=2&limit=1", []int64{4}},
		{"?sort=parent_tree&limit=1", []int64{1, 2, 4}},
		{"?sort=parent_tree&limit=1&since=1", []int64{3}},
		{"?sort=parent_tree&desc=true", []int64{3, 1, 2, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			ctx := perform(srv, "GET", "/api/thread/1/posts"+tt.query, "")
			require.Equal(t, http.StatusOK, ctx.Response.StatusCode())

			posts := decodePosts(t, ctx)
			ids := make([]int64, len(posts))
			for i := range posts {
				ids[i] = posts[i].ID
			}
			assert.Equal(t, tt.ids, ids)
		})
	}
}

func TestFindPostsDefaultLimit(t *testing.T) {
	srv, _ := newTestServer(t)

	body := "["
	for i := 0; i < DefaultLimit+2; i++ {
		if i > 0 {
			body += ","
		}
		body += fmt.Sprintf(`{"author":"alice","message":"m%d"}`, i)
	}
	body += "]"
	require.Equal(t, http.StatusCreated, perform(srv, "POST", "/api/thread/jolly/create", body).Response.StatusCode())

	ctx := perform(srv, "GET", "/api/thread/jolly/posts", "")
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.Len(t, decodePosts(t, ctx), DefaultLimit)

	for _, sort := range []string{"flat", "tree", "parent_tree"} {
		ctx = perform(srv, "GET", "/api/thread/jolly/posts?limit=100000000000000000&sort="+sort, "")
		require.Equal(t, http.StatusOK, ctx.Response.StatusCode(), sort)
		assert.Len(t, decodePosts(t, ctx), DefaultLimit+2, sort)
	}
}

func TestFindPostsErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		uri    string
		status int
	}{
		{"/api/thread/missing/posts", http.StatusNotFound},
		{"/api/thread/1/posts?sort=random", http.StatusUnprocessableEntity},
		{"/api/thread/1/posts?limit=abc", http.StatusUnprocessableEntity},
		{"/api/thread/1/posts?limit=0", http.StatusUnprocessableEntity},
		{"/api/thread/1/posts?since=x", http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		ctx := perform(srv, "GET", tt.uri, "")
		assert.Equal(t, tt.status, ctx.Response.StatusCode(), tt.uri)
	}

	ctx := perform(srv, "GET", "/api/thread/1/posts", "")
	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "[]", string(ctx.Response.Body()))
}

func TestAddVote(t *testing.T) {
	srv, store := newTestServer(t)

	ctx := perform(srv, "POST", "/api/thread/jolly/vote", `{"nickname":"alice","voice":1}`)
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())

	var thread models.Thread
	require.NoError(t, easyjson.Unmarshal(ctx.Response.Body(), &thread))
	assert.Equal(t, int32(1), thread.ID)
	assert.Equal(t, int32(1), thread.NumVotes)
	assert.Equal(t, "jolly", thread.Slug.String)

	ctx = perform(srv, "POST", "/api/thread/1/vote", `{"nickname":"ALICE","voice":-1}`)
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	require.NoError(t, easyjson.Unmarshal(ctx.Response.Body(), &thread))
	assert.Equal(t, int32(-1), thread.NumVotes)
	assert.Equal(t, 1, store.VoteCount(1))

	ctx = perform(srv, "POST", "/api/thread/1/vote", `{"nickname":"carol","voice":1}`)
	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())

	ctx = perform(srv, "POST", "/api/thread/missing/vote", `{"nickname":"alice","voice":1}`)
	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())

	ctx = perform(srv, "POST", "/api/thread/1/vote", `{"nickname":"alice","voice":2}`)
	assert.Equal(t, http.StatusUnprocessableEntity, ctx.Response.StatusCode())
}
