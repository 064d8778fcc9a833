package services

import (
	"net/http"

	"github.com/valyala/fasthttp"

	"tp-forum-engine/engine"
	"tp-forum-engine/models"
)

func (srv *Server) createPosts(ctx *fasthttp.RequestCtx) {
	var posts models.Posts
	if err := srv.ReadBody(ctx, &posts); err != nil {
		srv.WriteError(ctx, err)
		return
	}

	created, err := srv.components.PostWriter.CreatePosts(srv.readThreadHandle(ctx), posts)
	if err != nil {
		srv.WriteError(ctx, err)
		return
	}

	srv.WriteJSON(ctx, http.StatusCreated, created)
}

func (srv *Server) findPosts(ctx *fasthttp.RequestCtx) {
	limit, err := srv.readLimit(ctx)
	if err != nil {
		srv.WriteError(ctx, err)
		return
	}

	page, err := srv.readSince(ctx)
	if err != nil {
		srv.WriteError(ctx, err)
		return
	}

	sort, err := engine.ParseSort(string(ctx.QueryArgs().Peek("sort")))
	if err != nil {
		srv.WriteError(ctx, err)
		return
	}

	posts, err := srv.components.PostReader.Posts(&engine.PostsQuery{
		Thread: srv.readThreadHandle(ctx),
		Sort:   sort,
		Limit:  limit,
		Page:   page,
		Desc:   srv.readDescFlag(ctx),
	})
	if err != nil {
		srv.WriteError(ctx, err)
		return
	}

	srv.WriteJSON(ctx, http.StatusOK, posts)
}
