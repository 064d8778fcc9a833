package repositories

import (
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/jackc/pgx"

	"tp-forum-engine/engine"
	"tp-forum-engine/errs"
	"tp-forum-engine/models"
	"tp-forum-engine/paths"
)

const (
	MaxPostsPrealloc = 100

	PostAuthorConstraint = "post_author_fk"
)

const (
	PostAuthorNotFoundErrMessage  = "post author not found"
	UnknownPostsVariantErrMessage = "unknown posts query variant"
)

const (
	CreatePostTableQuery = `
        CREATE TABLE IF NOT EXISTS "post" (
            "id" BIGINT
                CONSTRAINT "post_id_pk" PRIMARY KEY,
            "parent_id" BIGINT
                DEFAULT(0)
                CONSTRAINT "post_parent_id_not_null" NOT NULL,
            "author" CITEXT COLLATE "ucs_basic"
                CONSTRAINT "post_author_not_null" NOT NULL
                CONSTRAINT "post_author_fk" REFERENCES "user"("nickname"),
            "forum" CITEXT COLLATE "ucs_basic"
                CONSTRAINT "post_forum_not_null" NOT NULL
                CONSTRAINT "post_forum_fk" REFERENCES "forum"("slug"),
            "thread" INTEGER
                CONSTRAINT "post_thread_not_null" NOT NULL
                CONSTRAINT "post_thread_fk" REFERENCES "thread"("id"),
            "message" TEXT
                CONSTRAINT "post_message_not_null" NOT NULL,
            "created_timestamp" TIMESTAMPTZ
                CONSTRAINT "post_created_timestamp_not_null" NOT NULL,
            "is_edited" BOOLEAN
                DEFAULT(FALSE)
                CONSTRAINT "post_is_edited_not_null" NOT NULL,
            "path" BIGINT ARRAY
                CONSTRAINT "post_path_not_null" NOT NULL
        );

        CREATE SEQUENCE IF NOT EXISTS "post_id_seq" START 1;

        CREATE INDEX IF NOT EXISTS "post_thread_created_idx" ON "post"("thread","created_timestamp","id");
        CREATE INDEX IF NOT EXISTS "post_thread_path_idx" ON "post"("thread","path");
        CREATE INDEX IF NOT EXISTS "post_thread_roots_idx" ON "post"("thread","parent_id","id");
        CREATE INDEX IF NOT EXISTS "post_root_path_idx" ON "post"(("path"[1]),"path");
    `

	SelectPostPathByIDAndThread = "select_post_path_by_id_and_thread"

	SelectPostPathByIDAndThreadQuery = `
        SELECT p."path" FROM "post" p WHERE p."id" = $1 AND p."thread" = $2;
    `
)

var postColumns = []string{
	"id", "parent_id", "author", "forum", "thread",
	"message", "created_timestamp", "is_edited", "path",
}

// PostRepository stores posts in PostgreSQL and serves the three read
// strategies from prepared statements.
type PostRepository struct {
	conn    *Connection
	threads *ThreadRepository

	authorNotFoundErr *errs.Error
}

func NewPostRepository(conn *Connection, threads *ThreadRepository) *PostRepository {
	return &PostRepository{
		conn:              conn,
		threads:           threads,
		authorNotFoundErr: errs.NewUserNotFoundError(PostAuthorNotFoundErrMessage),
	}
}

func (r *PostRepository) Init() error {
	err := r.conn.execInit(CreatePostTableQuery)
	if err != nil {
		return err
	}

	err = r.conn.prepareStmt(SelectPostPathByIDAndThread, SelectPostPathByIDAndThreadQuery)
	if err != nil {
		return err
	}

	for _, stmt := range selectPostsStatements {
		if err := r.conn.prepareStmt(stmt.name, stmt.query); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostRepository) WithPostTx(fn func(tx engine.PostTx) error) error {
	return r.conn.performTxOp(func(tx *pgx.Tx) error {
		return fn(&postTx{tx: tx, repo: r})
	})
}

func (r *PostRepository) SelectPosts(sel *engine.PostsSelect) (models.Posts, error) {
	name, args, ok := selectPostsArgs(sel)
	if !ok {
		return nil, errs.NewStoreError(nil, UnknownPostsVariantErrMessage)
	}

	rows, err := r.conn.conn.Query(name, args...)
	if err != nil {
		return nil, errs.NewStoreError(err, "select posts")
	}
	defer rows.Close()

	posts := make(models.Posts, 0, postsCapacity(sel))
	for rows.Next() {
		var post models.Post
		if err := scanPost(rows.Scan, &post); err != nil {
			return nil, errs.NewStoreError(err, "scan post")
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewStoreError(err, "select posts")
	}
	return posts, nil
}

// postsCapacity bounds the preallocation for a page. The limit comes from
// the client, and for parent_tree it counts roots rather than rows.
func postsCapacity(sel *engine.PostsSelect) int {
	if sel.Sort == engine.SortParentTree || sel.Limit > MaxPostsPrealloc {
		return MaxPostsPrealloc
	}
	return sel.Limit
}

// copyError maps a failed batch copy. Only the author key names a client
// mistake; the forum and thread keys were checked by the caller.
func (r *PostRepository) copyError(err error) error {
	if isForeignKeyViolation(err, PostAuthorConstraint) {
		return r.authorNotFoundErr
	}
	return errs.NewStoreError(err, "copy posts")
}

func scanPost(f ScanFunc, post *models.Post) error {
	var (
		created time.Time
		path    []int64
	)
	err := f(
		&post.ID, &post.Parent, &post.Author, &post.Forum, &post.Thread,
		&post.Message, &created, &post.IsEdited, &path,
	)
	if err != nil {
		return err
	}
	post.Created = strfmt.DateTime(created.UTC())
	post.Path = paths.Path(path)
	return nil
}

type postTx struct {
	tx   *pgx.Tx
	repo *PostRepository
}

func (t *postTx) ResolveThread(h engine.ThreadHandle) (*models.ThreadRef, error) {
	return t.repo.threads.resolveThread(t.tx, h)
}

func (t *postTx) FindUserNickname(nickname string) (string, bool, error) {
	return findUserNickname(t.tx, nickname)
}

func (t *postTx) FindPostPath(threadID int32, postID int64) (paths.Path, bool, error) {
	var path []int64
	err := t.tx.QueryRow(SelectPostPathByIDAndThread, postID, threadID).Scan(&path)
	if isNoRows(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return paths.Path(path), true, nil
}

// InsertPosts copies the batch into the post table and moves the forum
// post counter by the batch size. All posts of a batch share a thread.
func (t *postTx) InsertPosts(posts models.Posts) error {
	rows := make([][]interface{}, len(posts))
	for i := range posts {
		p := &posts[i]
		rows[i] = []interface{}{
			p.ID, p.Parent, p.Author, p.Forum, p.Thread,
			p.Message, time.Time(p.Created), p.IsEdited, []int64(p.Path),
		}
	}

	n, err := t.tx.CopyFrom(pgx.Identifier{"post"}, postColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return t.repo.copyError(err)
	}
	if n != len(posts) {
		return errs.NewStoreError(nil, "copy posts: short write")
	}

	if len(posts) > 0 {
		if err := addForumPosts(t.tx, posts[0].Forum, len(posts)); err != nil {
			return errs.NewStoreError(err, "update forum posts")
		}
	}
	return nil
}
