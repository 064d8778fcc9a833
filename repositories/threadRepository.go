package repositories

import (
	"tp-forum-engine/engine"
	"tp-forum-engine/errs"
	"tp-forum-engine/models"
)

const (
	ThreadNotFoundErrMessage = "thread not found"
)

const (
	CreateThreadTableQuery = `
	    CREATE TABLE IF NOT EXISTS "thread" (
            "id" SERIAL
                CONSTRAINT "thread_id_pk" PRIMARY KEY,
            "slug" CITEXT
                CONSTRAINT "thread_slug_nullable" NULL
                CONSTRAINT "thread_slug_unique" UNIQUE,
            "title" TEXT
                CONSTRAINT "thread_title_not_null" NOT NULL,
            "forum" CITEXT
                CONSTRAINT "thread_forum_not_null" NOT NULL
                CONSTRAINT "thread_forum_fk" REFERENCES "forum"("slug") ON DELETE CASCADE,
            "author" CITEXT
                CONSTRAINT "thread_author_not_null" NOT NULL
                CONSTRAINT "thread_author_fk" REFERENCES "user"("nickname") ON DELETE CASCADE,
            "created_timestamp" TIMESTAMP WITH TIME ZONE
                CONSTRAINT "thread_created_timestamp_nullable" NULL,
            "message" TEXT
                CONSTRAINT "thread_message_not_null" NOT NULL,
            "num_votes" INTEGER
                DEFAULT(0)
                CONSTRAINT "thread_num_votes_not_null" NOT NULL
        );
    `

	SelectThreadRefByID          = "select_thread_ref_by_id"
	SelectThreadRefBySlug        = "select_thread_ref_by_slug"
	SelectThreadByIDForUpdate    = "select_thread_by_id_for_update"
	SelectThreadBySlugForUpdate  = "select_thread_by_slug_for_update"
	UpdateThreadNumVotesReturned = "update_thread_num_votes_returned"

	ThreadRefAttributes = `th."id",th."slug",th."forum"`
	ThreadAttributes    = `
        th."id",th."slug",th."title",th."forum",th."author",
        th."created_timestamp",th."message",th."num_votes"
    `

	SelectThreadRefByIDQuery = `
        SELECT ` + ThreadRefAttributes + `
        FROM "thread" th
        WHERE th."id" = $1;
    `
	SelectThreadRefBySlugQuery = `
        SELECT ` + ThreadRefAttributes + `
        FROM "thread" th
        WHERE th."slug" = $1;
    `
	SelectThreadByIDForUpdateQuery = `
        SELECT ` + ThreadAttributes + `
        FROM "thread" th
        WHERE th."id" = $1
        FOR UPDATE;
    `
	SelectThreadBySlugForUpdateQuery = `
        SELECT ` + ThreadAttributes + `
        FROM "thread" th
        WHERE th."slug" = $1
        FOR UPDATE;
    `
	UpdateThreadNumVotesReturnedQuery = `
        UPDATE "thread" AS th SET
            "num_votes" = th."num_votes" + $2
        WHERE th."id" = $1
        RETURNING ` + ThreadAttributes + `;
    `
)

// ThreadRepository resolves thread handles against the thread table.
type ThreadRepository struct {
	conn        *Connection
	notFoundErr *errs.Error
}

func NewThreadRepository(conn *Connection) *ThreadRepository {
	return &ThreadRepository{
		conn:        conn,
		notFoundErr: errs.NewThreadNotFoundError(ThreadNotFoundErrMessage),
	}
}

func (r *ThreadRepository) Init() error {
	err := r.conn.execInit(CreateThreadTableQuery)
	if err != nil {
		return err
	}

	statements := []struct{ name, query string }{
		{SelectThreadRefByID, SelectThreadRefByIDQuery},
		{SelectThreadRefBySlug, SelectThreadRefBySlugQuery},
		{SelectThreadByIDForUpdate, SelectThreadByIDForUpdateQuery},
		{SelectThreadBySlugForUpdate, SelectThreadBySlugForUpdateQuery},
		{UpdateThreadNumVotesReturned, UpdateThreadNumVotesReturnedQuery},
	}
	for _, stmt := range statements {
		if err := r.conn.prepareStmt(stmt.name, stmt.query); err != nil {
			return err
		}
	}
	return nil
}

func (r *ThreadRepository) ResolveThread(h engine.ThreadHandle) (*models.ThreadRef, error) {
	return r.resolveThread(r.conn.conn, h)
}

func (r *ThreadRepository) resolveThread(q queryer, h engine.ThreadHandle) (*models.ThreadRef, error) {
	var ref models.ThreadRef
	err := q.QueryRow(threadStatement(h, SelectThreadRefByID, SelectThreadRefBySlug), threadKey(h)).
		Scan(&ref.ID, &ref.Slug, &ref.Forum)
	if isNoRows(err) {
		return nil, r.notFoundErr
	}
	if err != nil {
		return nil, errs.NewStoreError(err, "select thread")
	}
	return &ref, nil
}

// lockThread reads the thread and holds its row lock until the
// transaction ends.
func (r *ThreadRepository) lockThread(q queryer, h engine.ThreadHandle) (*models.Thread, error) {
	var thread models.Thread
	row := q.QueryRow(threadStatement(h, SelectThreadByIDForUpdate, SelectThreadBySlugForUpdate), threadKey(h))
	err := r.scanThread(row.Scan, &thread)
	if isNoRows(err) {
		return nil, r.notFoundErr
	}
	if err != nil {
		return nil, errs.NewStoreError(err, "lock thread")
	}
	return &thread, nil
}

func (r *ThreadRepository) addThreadVotes(q queryer, threadID int32, delta int32) (*models.Thread, error) {
	var thread models.Thread
	row := q.QueryRow(UpdateThreadNumVotesReturned, threadID, delta)
	if err := r.scanThread(row.Scan, &thread); err != nil {
		return nil, errs.NewStoreError(err, "update thread votes")
	}
	return &thread, nil
}

func (r *ThreadRepository) scanThread(f ScanFunc, thread *models.Thread) error {
	return f(
		&thread.ID, &thread.Slug, &thread.Title,
		&thread.Forum, &thread.Author, &thread.Created,
		&thread.Message, &thread.NumVotes,
	)
}

func threadStatement(h engine.ThreadHandle, byID, bySlug string) string {
	if _, ok := h.Slug(); ok {
		return bySlug
	}
	return byID
}

func threadKey(h engine.ThreadHandle) interface{} {
	if slug, ok := h.Slug(); ok {
		return slug
	}
	id, _ := h.ID()
	return id
}
