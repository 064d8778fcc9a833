package repositories

import (
	"github.com/jackc/pgx"

	"tp-forum-engine/engine"
	"tp-forum-engine/errs"
	"tp-forum-engine/models"
)

const (
	VoteUserNotFoundErrMessage = "vote user not found"

	VoteNicknameConstraint = "vote_nickname_fk"
)

const (
	CreateVoteTableQuery = `
	    CREATE TABLE IF NOT EXISTS "vote" (
            "nickname" CITEXT
                CONSTRAINT "vote_nickname_not_null" NOT NULL
                CONSTRAINT "vote_nickname_fk" REFERENCES "user"("nickname") ON DELETE CASCADE,
            "thread" INTEGER
                CONSTRAINT "vote_thread_not_null" NOT NULL
                CONSTRAINT "vote_thread_fk" REFERENCES "thread"("id") ON DELETE CASCADE,
            "voice" INTEGER
                CONSTRAINT "vote_voice_not_null" NOT NULL
                CONSTRAINT "vote_voice_check" CHECK("voice" IN (-1, 1)),
            CONSTRAINT "vote_thread_nickname_pk" PRIMARY KEY("thread","nickname")
        );
    `

	InsertVote      = "insert_vote"
	SelectVoteVoice = "select_vote_voice"
	UpdateVote      = "update_vote"

	InsertVoteQuery = `
        INSERT INTO "vote"("thread","nickname","voice") VALUES($1,$2,$3);
    `
	SelectVoteVoiceQuery = `
        SELECT v."voice"
        FROM "vote" v
        WHERE v."thread" = $1 AND
              v."nickname" = $2;
    `
	UpdateVoteQuery = `
        UPDATE "vote" SET "voice" = $3
        WHERE "thread" = $1 AND "nickname" = $2;
    `
)

// VoteRepository keeps the vote table. Vote transactions serialize on the
// thread row lock.
type VoteRepository struct {
	conn    *Connection
	threads *ThreadRepository

	userNotFoundErr *errs.Error
}

func NewVoteRepository(conn *Connection, threads *ThreadRepository) *VoteRepository {
	return &VoteRepository{
		conn:            conn,
		threads:         threads,
		userNotFoundErr: errs.NewUserNotFoundError(VoteUserNotFoundErrMessage),
	}
}

func (r *VoteRepository) Init() error {
	err := r.conn.execInit(CreateVoteTableQuery)
	if err != nil {
		return err
	}

	err = r.conn.prepareStmt(InsertVote, InsertVoteQuery)
	if err != nil {
		return err
	}
	err = r.conn.prepareStmt(SelectVoteVoice, SelectVoteVoiceQuery)
	if err != nil {
		return err
	}
	err = r.conn.prepareStmt(UpdateVote, UpdateVoteQuery)
	if err != nil {
		return err
	}

	return nil
}

func (r *VoteRepository) WithVoteTx(fn func(tx engine.VoteTx) error) error {
	return r.conn.performTxOp(func(tx *pgx.Tx) error {
		return fn(&voteTx{tx: tx, repo: r})
	})
}

type voteTx struct {
	tx   *pgx.Tx
	repo *VoteRepository
}

func (t *voteTx) LockThread(h engine.ThreadHandle) (*models.Thread, error) {
	return t.repo.threads.lockThread(t.tx, h)
}

func (t *voteTx) FindUserNickname(nickname string) (string, bool, error) {
	return findUserNickname(t.tx, nickname)
}

func (t *voteTx) FindVoice(threadID int32, nickname string) (int32, bool, error) {
	var voice int32
	err := t.tx.QueryRow(SelectVoteVoice, threadID, nickname).Scan(&voice)
	if isNoRows(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return voice, true, nil
}

func (t *voteTx) InsertVote(threadID int32, vote *models.Vote) error {
	_, err := t.tx.Exec(InsertVote, threadID, vote.Nickname, vote.Voice)
	if isForeignKeyViolation(err, VoteNicknameConstraint) {
		return t.repo.userNotFoundErr
	}
	return err
}

func (t *voteTx) UpdateVote(threadID int32, vote *models.Vote) error {
	_, err := t.tx.Exec(UpdateVote, threadID, vote.Nickname, vote.Voice)
	return err
}

func (t *voteTx) AddThreadVotes(threadID int32, delta int32) (*models.Thread, error) {
	return t.repo.threads.addThreadVotes(t.tx, threadID, delta)
}
