package repositories

const (
	CreateUserTableQuery = `
        CREATE EXTENSION IF NOT EXISTS citext;

        CREATE TABLE IF NOT EXISTS "user" (
            "nickname" CITEXT COLLATE "ucs_basic"
                CONSTRAINT "user_nickname_pk" PRIMARY KEY,
            "fullname" TEXT
                CONSTRAINT "user_fullname_not_null" NOT NULL,
            "email" CITEXT COLLATE "ucs_basic"
                CONSTRAINT "user_email_not_null" NOT NULL,
            "about" TEXT
                CONSTRAINT "user_about_not_null" NOT NULL
        );

        CREATE UNIQUE INDEX IF NOT EXISTS "user_email_idx" ON "user"("email");
    `

	SelectUserNicknameByNickname = "select_user_nickname_by_nickname"

	SelectUserNicknameByNicknameQuery = `
        SELECT u."nickname" FROM "user" u WHERE u."nickname" = $1;
    `
)

// UserRepository owns the user table. Profiles are maintained elsewhere;
// the engine only needs nickname lookups.
type UserRepository struct {
	conn *Connection
}

func NewUserRepository(conn *Connection) *UserRepository {
	return &UserRepository{
		conn: conn,
	}
}

func (r *UserRepository) Init() error {
	if err := r.conn.execInit(CreateUserTableQuery); err != nil {
		return err
	}
	return r.conn.prepareStmt(SelectUserNicknameByNickname, SelectUserNicknameByNicknameQuery)
}

// findUserNickname returns the stored spelling of nickname.
func findUserNickname(q queryer, nickname string) (string, bool, error) {
	var stored string
	err := q.QueryRow(SelectUserNicknameByNickname, nickname).Scan(&stored)
	if isNoRows(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return stored, true, nil
}
