package repositories

const (
	CreateForumTableQuery = `
	    CREATE TABLE IF NOT EXISTS "forum" (
            "slug" CITEXT
                CONSTRAINT "forum_slug_pk" PRIMARY KEY,
            "title" TEXT
                CONSTRAINT "forum_title_not_null" NOT NULL,
            "admin" CITEXT
                CONSTRAINT "forum_admin_not_null" NOT NULL
                CONSTRAINT "forum_admin_fk" REFERENCES "user"("nickname") ON DELETE CASCADE,
            "num_posts" BIGINT
                DEFAULT(0)
                CONSTRAINT "forum_num_posts_not_null" NOT NULL
        );
    `

	UpdateForumNumPosts = "update_forum_num_posts"

	UpdateForumNumPostsQuery = `
        UPDATE "forum" SET
            "num_posts" = "num_posts" + $2
        WHERE "slug" = $1;
    `
)

// ForumRepository owns the forum table and its post counter.
type ForumRepository struct {
	conn *Connection
}

func NewForumRepository(conn *Connection) *ForumRepository {
	return &ForumRepository{
		conn: conn,
	}
}

func (r *ForumRepository) Init() error {
	if err := r.conn.execInit(CreateForumTableQuery); err != nil {
		return err
	}
	return r.conn.prepareStmt(UpdateForumNumPosts, UpdateForumNumPostsQuery)
}

func addForumPosts(q queryer, forum string, n int) error {
	_, err := q.Exec(UpdateForumNumPosts, forum, n)
	return err
}
