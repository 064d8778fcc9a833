package services

import (
	"net/http"

	"github.com/valyala/fasthttp"

	"tp-forum-engine/models"
)

func (srv *Server) addVote(ctx *fasthttp.RequestCtx) {
	var vote models.Vote
	if err := srv.ReadBody(ctx, &vote); err != nil {
		srv.WriteError(ctx, err)
		return
	}

	thread, err := srv.components.VoteLedger.CastVote(srv.readThreadHandle(ctx), vote)
	if err != nil {
		srv.WriteError(ctx, err)
		return
	}

	srv.WriteJSON(ctx, http.StatusOK, thread)
}
