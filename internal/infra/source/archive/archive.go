// Package archive serves channel history from the Postgres message
// archive. Messages stream out of the database in posted_at order, so a
// scan can stop early without loading a whole channel into memory.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"channel-report/internal/domain/entity"
	"channel-report/internal/resilience/retry"
	"channel-report/internal/source"
)

const historyQuery = `
SELECT id, posted_at, text
FROM messages
WHERE channel = $1 AND posted_at >= $2
ORDER BY posted_at ASC, id ASC`

// Source reads archived messages from a SQL database.
type Source struct {
	db          *sql.DB
	retryConfig retry.Config
}

// New creates an archive Source over the given connection pool.
func New(db *sql.DB) *Source {
	return &Source{
		db:          db,
		retryConfig: retry.ArchiveDBConfig(),
	}
}

// History returns an iterator over the channel's messages posted on or
// after the anchor, ascending. Opening the cursor is retried on transient
// connection errors; iteration itself is not.
func (s *Source) History(ctx context.Context, channel string, anchor time.Time) (source.Iterator, error) {
	var rows *sql.Rows

	err := retry.WithBackoff(ctx, s.retryConfig, func() error {
		var qerr error
		rows, qerr = s.db.QueryContext(ctx, historyQuery, channel, anchor)
		return qerr
	})
	if err != nil {
		return nil, fmt.Errorf("query history for channel %q: %w", channel, err)
	}

	return &rowsIterator{channel: channel, rows: rows}, nil
}

// rowsIterator adapts a sql.Rows cursor to the message iterator.
type rowsIterator struct {
	channel string
	rows    *sql.Rows
}

func (it *rowsIterator) Next(ctx context.Context) (entity.Message, bool, error) {
	if err := ctx.Err(); err != nil {
		return entity.Message{}, false, err
	}

	if !it.rows.Next() {
		return entity.Message{}, false, it.rows.Err()
	}

	var (
		id       int64
		postedAt time.Time
		text     sql.NullString
	)
	if err := it.rows.Scan(&id, &postedAt, &text); err != nil {
		return entity.Message{}, false, err
	}

	return entity.Message{
		Channel:  it.channel,
		ID:       id,
		PostedAt: postedAt.UTC(),
		Text:     text.String,
	}, true, nil
}

func (it *rowsIterator) Close() error {
	return it.rows.Close()
}
