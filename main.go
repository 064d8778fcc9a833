package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"tp-forum-engine/cache"
	"tp-forum-engine/config"
	"tp-forum-engine/engine"
	"tp-forum-engine/logger"
	"tp-forum-engine/memstore"
	"tp-forum-engine/repositories"
	"tp-forum-engine/services"
)

type backend struct {
	posts     engine.PostWriteStore
	reads     engine.PostReadStore
	votes     engine.VoteStore
	resolver  engine.ThreadResolver
	allocator engine.Allocator

	closers []func() error
}

func (b *backend) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			logger.Warn("close failed", logger.ErrorField(err))
		}
	}
}

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	handleErr(err)

	handleErr(logger.Init(&cfg.Logging))
	defer logger.Sync()

	b := &backend{}
	defer b.close()

	switch cfg.Store.Driver {
	case config.DriverMemory:
		handleErr(openMemory(cfg, b))
	default:
		handleErr(openPostgres(cfg, b))
	}

	if cfg.Store.Allocator == config.AllocatorSnowflake {
		allocator, err := engine.NewSnowflakeAllocator(cfg.Snowflake.Node)
		handleErr(err)
		b.allocator = allocator
	}

	resolver := b.resolver
	if cfg.Cache.ThreadCacheMB > 0 {
		threadCache, err := cache.NewThreadCache(b.resolver, cfg.Cache.ThreadCacheMB, cfg.Cache.ThreadCacheTTL)
		handleErr(err)
		b.closers = append(b.closers, threadCache.Close)
		resolver = threadCache
	}

	srv := services.NewServer(
		services.ServerConfig{
			Host: cfg.Server.Host,
			Port: cfg.Server.Port,
		},
		services.ServerComponents{
			PostWriter: engine.NewPostWriter(b.posts, b.allocator),
			PostReader: engine.NewPostReader(resolver, b.reads),
			VoteLedger: engine.NewVoteLedger(b.votes),
		},
	)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("server started",
			logger.String("host", cfg.Server.Host),
			logger.Int("port", cfg.Server.Port),
			logger.String("store", cfg.Store.Driver),
			logger.String("allocator", cfg.Store.Allocator),
		)
		if err := srv.Run(); err != nil {
			logger.Error("server stopped", logger.ErrorField(err))
		}
		ch <- syscall.SIGTERM
	}()

	<-ch

	handleErr(srv.Shutdown())
	logger.Info("server shut down")
}

func openMemory(cfg *config.Config, b *backend) error {
	store := memstore.New()
	if cfg.Store.Fixture != "" {
		fixture, err := memstore.LoadFixture(cfg.Store.Fixture)
		if err != nil {
			return err
		}
		if err := store.Seed(fixture); err != nil {
			return err
		}
		logger.Info("memory store seeded",
			logger.String("fixture", cfg.Store.Fixture),
			logger.Int("threads", len(fixture.Threads)),
		)
	}

	b.posts = store
	b.reads = store
	b.votes = store
	b.resolver = store
	b.allocator = store
	return nil
}

func openPostgres(cfg *config.Config, b *backend) error {
	conn, err := repositories.NewConnection(&cfg.Database, logger.Get())
	if err != nil {
		return err
	}
	if err := conn.Open(); err != nil {
		return err
	}
	b.closers = append(b.closers, conn.Close)

	users := repositories.NewUserRepository(conn)
	forums := repositories.NewForumRepository(conn)
	threads := repositories.NewThreadRepository(conn)
	posts := repositories.NewPostRepository(conn, threads)
	votes := repositories.NewVoteRepository(conn, threads)

	for _, init := range []func() error{users.Init, forums.Init, threads.Init, posts.Init, votes.Init} {
		if err := init(); err != nil {
			return err
		}
	}

	b.posts = posts
	b.reads = posts
	b.votes = votes
	b.resolver = threads

	if cfg.Store.Allocator != config.AllocatorSequence {
		return nil
	}

	// ids are drawn while a batch holds a connection of the main pool
	seqConfig := cfg.Database
	seqConfig.MaxConnections = 2
	seqConn, err := repositories.NewConnection(&seqConfig, logger.Get())
	if err != nil {
		return err
	}
	if err := seqConn.Open(); err != nil {
		return err
	}
	b.closers = append(b.closers, seqConn.Close)

	sequence := repositories.NewSequenceAllocator(seqConn)
	if err := sequence.Init(); err != nil {
		return err
	}
	b.allocator = sequence
	return nil
}

func handleErr(err error) {
	if err != nil {
		logger.Error("fatal error", logger.ErrorField(err))
		panic(fmt.Sprintf("%v\n%s", err, string(debug.Stack())))
	}
}
