// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"fmt"

	"github.com/ava-labs/pairfactory/consts"
)

// Typed is implemented by every value that can be registered with a
// [TypeParser].
type Typed interface {
	GetTypeID() uint8
}

type decoder[T any] struct {
	name string
	f    func(*Packer) (T, error)
}

// TypeParser maps a leading type byte to the function that decodes the rest
// of the value.
type TypeParser[T any] struct {
	indexToDecoder map[uint8]decoder[T]
}

func NewTypeParser[T any]() *TypeParser[T] {
	return &TypeParser[T]{
		indexToDecoder: map[uint8]decoder[T]{},
	}
}

// Register adds [f] as the decoder for the type ID of [instance].
func (p *TypeParser[T]) Register(instance Typed, f func(*Packer) (T, error)) error {
	if len(p.indexToDecoder) == int(consts.MaxUint8) {
		return ErrTooManyItems
	}
	id := instance.GetTypeID()
	if _, ok := p.indexToDecoder[id]; ok {
		return fmt.Errorf("%w: type id %d", ErrDuplicateItem, id)
	}
	p.indexToDecoder[id] = decoder[T]{
		name: fmt.Sprintf("%T", instance),
		f:    f,
	}
	return nil
}

func (p *TypeParser[T]) LookupIndex(index uint8) (func(*Packer) (T, error), bool) {
	d, ok := p.indexToDecoder[index]
	return d.f, ok
}

// Name returns the Go type name registered for [index].
func (p *TypeParser[T]) Name(index uint8) (string, bool) {
	d, ok := p.indexToDecoder[index]
	return d.name, ok
}

// Unmarshal reads a type byte from [pk] and decodes the value it names.
func (p *TypeParser[T]) Unmarshal(pk *Packer) (T, error) {
	var empty T
	id := pk.UnpackByte()
	if err := pk.Err(); err != nil {
		return empty, err
	}
	f, ok := p.LookupIndex(id)
	if !ok {
		return empty, fmt.Errorf("%w: type id %d", ErrUnknownType, id)
	}
	return f(pk)
}
