package repositories

import (
	"tp-forum-engine/errs"
)

const (
	SelectNextPostID = "select_next_post_id"

	SelectNextPostIDQuery = `
        SELECT nextval('post_id_seq');
    `
)

// SequenceAllocator draws post ids from post_id_seq. It should run on its
// own connection pool: ids are requested while a batch transaction holds a
// connection of the main pool.
type SequenceAllocator struct {
	conn *Connection
}

func NewSequenceAllocator(conn *Connection) *SequenceAllocator {
	return &SequenceAllocator{
		conn: conn,
	}
}

// Init prepares the statement. The sequence itself is created with the
// post table.
func (a *SequenceAllocator) Init() error {
	return a.conn.prepareStmt(SelectNextPostID, SelectNextPostIDQuery)
}

func (a *SequenceAllocator) NextID() (int64, error) {
	var id int64
	if err := a.conn.conn.QueryRow(SelectNextPostID).Scan(&id); err != nil {
		return 0, errs.NewAllocationError(err)
	}
	return id, nil
}
