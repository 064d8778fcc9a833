package repositories

import (
	"github.com/jackc/pgx"
	"github.com/jackc/pgx/log/zapadapter"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"tp-forum-engine/config"
	"tp-forum-engine/errs"
)

const (
	ForeignKeyViolationCode = "23503"
)

// queryer is the part of the pgx API shared by *pgx.ConnPool and *pgx.Tx.
type queryer interface {
	QueryRow(sql string, args ...interface{}) *pgx.Row
	Query(sql string, args ...interface{}) (*pgx.Rows, error)
	Exec(sql string, args ...interface{}) (pgx.CommandTag, error)
}

type ScanFunc func(...interface{}) error

type Connection struct {
	conn   *pgx.ConnPool
	config pgx.ConnPoolConfig
}

func NewConnection(cfg *config.DatabaseConfig, log *zap.Logger) (*Connection, error) {
	logLevel, err := pgx.LogLevelFromString(cfg.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "pg log level")
	}

	return &Connection{
		config: pgx.ConnPoolConfig{
			ConnConfig: pgx.ConnConfig{
				Host:     cfg.Host,
				Port:     uint16(cfg.Port),
				Database: cfg.Name,
				User:     cfg.User,
				Password: cfg.Password,
				Logger:   zapadapter.NewLogger(log),
				LogLevel: logLevel,
			},
			MaxConnections: cfg.MaxConnections,
		},
	}, nil
}

func (c *Connection) Open() error {
	var err error
	c.conn, err = pgx.NewConnPool(c.config)
	return errors.Wrap(err, "open connection pool")
}

func (c *Connection) Close() error {
	c.conn.Close()
	return nil
}

func (c *Connection) execInit(query string) error {
	_, err := c.conn.Exec(query)
	return errors.Wrap(err, "init schema")
}

func (c *Connection) prepareStmt(name, query string) error {
	_, err := c.conn.Prepare(name, query)
	return errors.Wrapf(err, "prepare %s", name)
}

// performTxOp runs op in a transaction that is committed only when op
// returns nil.
func (c *Connection) performTxOp(op func(tx *pgx.Tx) error) error {
	tx, err := c.conn.Begin()
	if err != nil {
		return errs.NewStoreError(err, "begin transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := op(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return errs.NewStoreError(err, "commit transaction")
	}
	return nil
}

func isNoRows(err error) bool {
	return errors.Cause(err) == pgx.ErrNoRows
}

// isForeignKeyViolation reports whether err violates the named foreign key.
func isForeignKeyViolation(err error, constraint string) bool {
	pgErr, ok := errors.Cause(err).(pgx.PgError)
	return ok && pgErr.Code == ForeignKeyViolationCode && pgErr.ConstraintName == constraint
}
