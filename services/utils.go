package services

import (
	"net/http"
	"strconv"

	"github.com/mailru/easyjson"
	"github.com/pkg/errors"
	"github.com/valyala/fasthttp"

	"tp-forum-engine/engine"
	"tp-forum-engine/errs"
	"tp-forum-engine/logger"
)

const (
	JsonType = "application/json"

	DefaultLimit = 10
)

func (srv *Server) ReadBody(ctx *fasthttp.RequestCtx, v easyjson.Unmarshaler) error {
	if err := easyjson.Unmarshal(ctx.PostBody(), v); err != nil {
		return srv.invalidFormatErr
	}
	return nil
}

func (srv *Server) WriteJSON(ctx *fasthttp.RequestCtx, status int, v easyjson.Marshaler) {
	b, err := easyjson.Marshal(v)
	if err != nil {
		srv.WriteError(ctx, errs.NewStoreError(err, "encode response"))
		return
	}
	ctx.SetStatusCode(status)
	ctx.Response.Header.SetContentType(JsonType)
	ctx.Response.SetBody(b)
}

// WriteError renders err as {"message": ...} with the status of its kind.
// Server side failures are logged.
func (srv *Server) WriteError(ctx *fasthttp.RequestCtx, err error) {
	var e *errs.Error
	if !errors.As(err, &e) {
		e = errs.NewStoreError(err, http.StatusText(http.StatusInternalServerError))
	}

	if e.HttpStatus >= http.StatusInternalServerError {
		logger.Error("request failed",
			logger.String("method", string(ctx.Method())),
			logger.String("path", string(ctx.Path())),
			logger.String("kind", e.Kind.String()),
			logger.ErrorField(err),
		)
	}

	b, _ := easyjson.Marshal(e)
	ctx.SetStatusCode(e.HttpStatus)
	ctx.Response.Header.SetContentType(JsonType)
	ctx.Response.SetBody(b)
}

func (srv *Server) readThreadHandle(ctx *fasthttp.RequestCtx) engine.ThreadHandle {
	return engine.ParseThreadHandle(ctx.UserValue("slug_or_id").(string))
}

func (srv *Server) readLimit(ctx *fasthttp.RequestCtx) (int, error) {
	if !ctx.QueryArgs().Has("limit") {
		return DefaultLimit, nil
	}
	limit, err := ctx.QueryArgs().GetUint("limit")
	if err != nil || limit == 0 {
		return 0, srv.invalidFormatErr
	}
	return limit, nil
}

func (srv *Server) readSince(ctx *fasthttp.RequestCtx) (engine.Page, error) {
	raw := ctx.QueryArgs().Peek("since")
	if len(raw) == 0 {
		return engine.FirstPage{}, nil
	}
	since, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return nil, srv.invalidFormatErr
	}
	return engine.PageSince(since), nil
}

func (srv *Server) readDescFlag(ctx *fasthttp.RequestCtx) bool {
	return ctx.QueryArgs().GetBool("desc")
}
