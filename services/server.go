package services

import (
	"net"
	"strconv"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	"tp-forum-engine/engine"
	"tp-forum-engine/errs"
)

const (
	InvalidFormatErrMessage = "invalid request parameter"
)

type ServerConfig struct {
	Host string
	Port int
}

type ServerComponents struct {
	PostWriter *engine.PostWriter
	PostReader *engine.PostReader
	VoteLedger *engine.VoteLedger
}

type Server struct {
	router *router.Router
	server *fasthttp.Server

	config     ServerConfig
	components ServerComponents

	invalidFormatErr *errs.Error
}

func NewServer(config ServerConfig, components ServerComponents) *Server {
	srv := &Server{
		config:           config,
		components:       components,
		invalidFormatErr: errs.NewInvalidFormatError(InvalidFormatErrMessage),
	}

	r := router.New()

	r.POST("/api/thread/:slug_or_id/create", srv.createPosts)
	r.GET("/api/thread/:slug_or_id/posts", srv.findPosts)
	r.POST("/api/thread/:slug_or_id/vote", srv.addVote)

	srv.router = r
	srv.server = &fasthttp.Server{
		Handler: r.Handler,
	}
	return srv
}

// Handler exposes the routed handler, mainly for in-process tests.
func (srv *Server) Handler() fasthttp.RequestHandler {
	return srv.router.Handler
}

func (srv *Server) Run() error {
	addr := net.JoinHostPort(srv.config.Host, strconv.Itoa(srv.config.Port))
	return srv.server.ListenAndServe(addr)
}

// Shutdown stops accepting connections and waits for open requests.
func (srv *Server) Shutdown() error {
	return srv.server.Shutdown()
}
