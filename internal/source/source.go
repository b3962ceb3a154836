// Package source defines the message history contract consumed by the
// channel scanner.
//
// A channel's history is potentially unbounded, so it is exposed as a lazy
// iterator the scanner can abandon after any element without draining it.
// Traversal is anchored before the report window and walks forward: History
// yields messages in ascending timestamp order, beginning at the first
// message dated on or after the anchor day. The scanner stops consuming as
// soon as a message's calendar day falls past the window's end date.
package source

import (
	"context"
	"time"

	"channel-report/internal/domain/entity"
)

// Iterator produces one channel's messages in ascending timestamp order.
// Next returns false with a nil error when the history is exhausted.
// Close releases the backing handle and must be called even when the
// iterator is abandoned early.
type Iterator interface {
	Next(ctx context.Context) (entity.Message, bool, error)
	Close() error
}

// Source produces message histories for channel identifiers.
type Source interface {
	// History opens the history of the given channel, anchored at the given
	// calendar day. Opening may fail (unknown channel, transport error);
	// iteration failures are reported by the iterator itself.
	History(ctx context.Context, channel string, anchor time.Time) (Iterator, error)
}

// SliceIterator iterates over an in-memory message slice. Sources that
// fetch their history eagerly (such as the feed adapter) wrap their result
// in one; tests use it as a fixture history.
type SliceIterator struct {
	messages []entity.Message
	pos      int
}

// NewSliceIterator creates an iterator over messages, which must already be
// in ascending timestamp order.
func NewSliceIterator(messages []entity.Message) *SliceIterator {
	return &SliceIterator{messages: messages}
}

// Next returns the next message, honoring context cancellation.
func (it *SliceIterator) Next(ctx context.Context) (entity.Message, bool, error) {
	if err := ctx.Err(); err != nil {
		return entity.Message{}, false, err
	}
	if it.pos >= len(it.messages) {
		return entity.Message{}, false, nil
	}
	msg := it.messages[it.pos]
	it.pos++
	return msg, true, nil
}

// Close is a no-op; slice iterators hold no resources.
func (it *SliceIterator) Close() error {
	return nil
}
