package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"guild/pkg/platform/sentinel"
	txcontext "guild/pkg/platform/tx"
)

// pgUniqueViolation is the SQLSTATE for a unique-constraint violation.
const pgUniqueViolation = "23505"

// Codec tells the generic SQL backend how to persist one entity type: the
// table, the column list, and how to turn an entity into column values and a
// row back into an entity. The id and active columns must be part of Columns.
type Codec[T Entity[T]] struct {
	Table   string
	Columns []string
	Values  func(T) []any
	Scan    func(row RowScanner) (T, error)
}

// RowScanner is the subset of *sql.Row/*sql.Rows the codec scans from.
type RowScanner interface {
	Scan(dest ...any) error
}

// Postgres is the SQL backend. It honors a transaction carried in context so
// workflow writes share one transaction without threading *sql.Tx through
// every signature.
type Postgres[T Entity[T]] struct {
	db    *sql.DB
	codec Codec[T]
	sb    sq.StatementBuilderType
}

// NewPostgres wraps a database handle with an entity codec.
func NewPostgres[T Entity[T]](db *sql.DB, codec Codec[T]) *Postgres[T] {
	return &Postgres[T]{
		db:    db,
		codec: codec,
		sb:    sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (p *Postgres[T]) execer(ctx context.Context) executor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return p.db
}

func (p *Postgres[T]) Find(ctx context.Context, id uuid.UUID) (T, error) {
	var zero T
	query, args, err := p.sb.Select(p.codec.Columns...).
		From(p.codec.Table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return zero, err
	}
	row := p.execer(ctx).QueryRowContext(ctx, query, args...)
	entity, err := p.codec.Scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, sentinel.ErrNotFound
		}
		return zero, translatePgError(err)
	}
	return entity, nil
}

func (p *Postgres[T]) FindAll(ctx context.Context) ([]T, error) {
	query, args, err := p.sb.Select(p.codec.Columns...).
		From(p.codec.Table).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := p.execer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translatePgError(err)
	}
	defer rows.Close()

	var all []T
	for rows.Next() {
		entity, err := p.codec.Scan(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, entity)
	}
	return all, rows.Err()
}

func (p *Postgres[T]) Insert(ctx context.Context, entity T) error {
	query, args, err := p.sb.Insert(p.codec.Table).
		Columns(p.codec.Columns...).
		Values(p.codec.Values(entity)...).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := p.execer(ctx).ExecContext(ctx, query, args...); err != nil {
		return translatePgError(err)
	}
	return nil
}

func (p *Postgres[T]) Update(ctx context.Context, entity T) error {
	values := p.codec.Values(entity)
	update := p.sb.Update(p.codec.Table)
	for i, column := range p.codec.Columns {
		if column == "id" {
			continue
		}
		update = update.Set(column, values[i])
	}
	query, args, err := update.Where(sq.Eq{"id": entity.EntityID()}).ToSql()
	if err != nil {
		return err
	}
	result, err := p.execer(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return translatePgError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", sentinel.ErrConflict, pgErr.ConstraintName)
	}
	return err
}

// PostgresTx is the SQL tx.Runner: begin, carry the transaction in context,
// roll back unless fn succeeds, commit.
type PostgresTx struct {
	db *sql.DB
}

// NewPostgresTx wraps a database handle.
func NewPostgresTx(db *sql.DB) *PostgresTx {
	return &PostgresTx{db: db}
}

func (t *PostgresTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	dbTx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = dbTx.Rollback()
	}()

	if err := fn(txcontext.WithTx(ctx, dbTx)); err != nil {
		return err
	}
	return dbTx.Commit()
}
