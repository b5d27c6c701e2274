// Package feed keeps an in-process copy of a collection current. A Feed
// delivers the full document list once on subscribe and again after every
// change event, always from a single goroutine and in order.
package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"sportsclub/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
)

// ChangeStream is satisfied by *mongo.ChangeStream.
type ChangeStream interface {
	Next(ctx context.Context) bool
	Err() error
	ResumeToken() bson.Raw
	Close(ctx context.Context) error
}

// Source loads the current documents and opens a change stream on them.
type Source[T any] interface {
	Load(ctx context.Context) ([]T, error)
	Watch(ctx context.Context, resumeAfter bson.Raw) (ChangeStream, error)
}

type Listener[T any] func(items []T)

// Unsubscribe stops the feed and waits until no listener call is running.
type Unsubscribe func()

type Feed[T any] struct {
	source     Source[T]
	name       string
	log        *logger.Logger
	retryDelay time.Duration
}

func New[T any](source Source[T], name string, log *logger.Logger) *Feed[T] {
	return &Feed[T]{
		source:     source,
		name:       name,
		log:        log,
		retryDelay: 2 * time.Second,
	}
}

// Subscribe opens the stream before the initial load so that no change made
// in between is lost, then hands the initial list to onChange before
// returning.
func (f *Feed[T]) Subscribe(ctx context.Context, onChange Listener[T]) (Unsubscribe, error) {
	stream, err := f.source.Watch(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to watch %s: %w", f.name, err)
	}

	items, err := f.source.Load(ctx)
	if err != nil {
		_ = stream.Close(context.Background())
		return nil, fmt.Errorf("failed to load %s: %w", f.name, err)
	}
	onChange(items)

	ctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	go func() {
		defer close(done)
		f.run(ctx, stream, onChange)
	}()

	f.log.Info("Feed subscribed", "feed", f.name, "items", len(items))

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
			f.log.Info("Feed unsubscribed", "feed", f.name)
		})
	}, nil
}

func (f *Feed[T]) run(ctx context.Context, stream ChangeStream, onChange Listener[T]) {
	defer func() {
		if stream != nil {
			_ = stream.Close(context.Background())
		}
	}()

	for {
		for stream.Next(ctx) {
			items, err := f.source.Load(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				f.log.Error("Failed to reload feed", "feed", f.name, "error", err)
				continue
			}
			onChange(items)
		}

		if ctx.Err() != nil {
			return
		}

		err := stream.Err()
		f.log.Warn("Change stream interrupted, reopening", "feed", f.name, "error", err)

		resume := stream.ResumeToken()
		_ = stream.Close(context.Background())
		stream = nil

		for stream == nil {
			select {
			case <-ctx.Done():
				return
			case <-time.After(f.retryDelay):
			}

			s, err := f.source.Watch(ctx, resume)
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, context.Canceled) {
					return
				}
				f.log.Error("Failed to reopen change stream", "feed", f.name, "error", err)
				// The token may have rolled off the oplog; start fresh.
				resume = nil
				continue
			}
			stream = s
		}

		// Changes may have been missed while the stream was down.
		if items, err := f.source.Load(ctx); err == nil {
			onChange(items)
		} else if ctx.Err() == nil {
			f.log.Error("Failed to reload feed", "feed", f.name, "error", err)
		}
	}
}
