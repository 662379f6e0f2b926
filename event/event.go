// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package event

import (
	"context"
	"errors"
	"sync"
)

var (
	_ Subscription[struct{}]        = (*SubscriptionFunc[struct{}])(nil)
	_ Subscription[struct{}]        = (*Buffer[struct{}])(nil)
	_ SubscriptionFactory[struct{}] = (*SubscriptionFuncFactory[struct{}])(nil)

	ErrClosed = errors.New("subscription closed")
)

// SubscriptionFactory returns an instance of a concrete Subscription
type SubscriptionFactory[T any] interface {
	New() (Subscription[T], error)
}

// Subscription defines how to consume events
type Subscription[T any] interface {
	// Accept returns fatal errors
	Accept(ctx context.Context, t T) error
	// Close returns fatal errors
	Close() error
}

type SubscriptionFuncFactory[T any] struct {
	AcceptF func(ctx context.Context, t T) error
}

func (s SubscriptionFuncFactory[T]) New() (Subscription[T], error) {
	return SubscriptionFunc[T](s), nil
}

type SubscriptionFunc[T any] struct {
	AcceptF func(ctx context.Context, t T) error
}

func (s SubscriptionFunc[T]) Accept(ctx context.Context, t T) error {
	return s.AcceptF(ctx, t)
}

func (SubscriptionFunc[_]) Close() error {
	return nil
}

// Buffer keeps the last [size] accepted values in arrival order.
type Buffer[T any] struct {
	size int

	l      sync.Mutex
	items  []T
	closed bool
}

func NewBuffer[T any](size int) *Buffer[T] {
	return &Buffer[T]{size: size}
}

func (b *Buffer[T]) Accept(_ context.Context, t T) error {
	b.l.Lock()
	defer b.l.Unlock()

	if b.closed {
		return ErrClosed
	}
	if b.size <= 0 {
		return nil
	}
	if len(b.items) == b.size {
		copy(b.items, b.items[1:])
		b.items = b.items[:len(b.items)-1]
	}
	b.items = append(b.items, t)
	return nil
}

// Items returns a copy of the buffered values, oldest first.
func (b *Buffer[T]) Items() []T {
	b.l.Lock()
	defer b.l.Unlock()

	items := make([]T, len(b.items))
	copy(items, b.items)
	return items
}

func (b *Buffer[T]) Close() error {
	b.l.Lock()
	defer b.l.Unlock()

	b.closed = true
	return nil
}

func NotifyAll[T any](ctx context.Context, e T, subs ...Subscription[T]) error {
	var errs []error
	for _, sub := range subs {
		if err := sub.Accept(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CloseAll closes every subscription and joins their errors.
func CloseAll[T any](subs ...Subscription[T]) error {
	var errs []error
	for _, sub := range subs {
		if err := sub.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
