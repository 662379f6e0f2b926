// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"github.com/ava-labs/avalanchego/utils/set"

	"github.com/ava-labs/pairfactory/consts"
)

// OptionalPacker packs a run of fields that may each be absent. A uint64
// presence mask leads the run; bit i is set when field i was written. It
// carries partial updates and the optional parts of stored records.
type OptionalPacker struct {
	present set.Bits64
	field   uint8
	inner   *Packer
}

// NewOptionalWriter returns an empty run with room for [initial] bytes of
// field data.
func NewOptionalWriter(initial int) *OptionalPacker {
	return &OptionalPacker{
		inner: NewWriter(initial, consts.MaxInt),
	}
}

// NewOptionalReader reads the presence mask at the current offset of [p] and
// returns a reader over the fields that follow it.
func (p *Packer) NewOptionalReader() *OptionalPacker {
	return &OptionalPacker{
		present: set.Bits64(p.UnpackUint64(false)),
		inner:   p,
	}
}

// PackOptional writes the presence mask of [o] followed by its fields.
func (p *Packer) PackOptional(o *OptionalPacker) {
	p.PackUint64(uint64(o.present))
	p.PackFixedBytes(o.inner.Bytes())
}

// mark claims the next field slot and records whether it is [present].
func (o *OptionalPacker) mark(present bool) bool {
	if o.field > consts.MaxUint64Offset {
		o.inner.addErr(ErrTooManyItems)
		return false
	}
	if present {
		o.present.Add(uint(o.field))
	}
	o.field++
	return present
}

// next reports whether the next field slot was written.
func (o *OptionalPacker) next() bool {
	ok := o.present.Contains(uint(o.field))
	o.field++
	return ok
}

// PackUint64 writes [v] when it is non-nil. Zero is a valid present value.
func (o *OptionalPacker) PackUint64(v *uint64) {
	if o.mark(v != nil) {
		o.inner.PackUint64(*v)
	}
}

func (o *OptionalPacker) UnpackUint64() *uint64 {
	if !o.next() {
		return nil
	}
	v := o.inner.UnpackUint64(false)
	return &v
}

// PackString writes [s] unless it is empty.
func (o *OptionalPacker) PackString(s string) {
	if o.mark(len(s) > 0) {
		o.inner.PackString(s)
	}
}

func (o *OptionalPacker) UnpackString() string {
	if !o.next() {
		return ""
	}
	return o.inner.UnpackString(true)
}

// PackAddress writes [addr] unless it is [EmptyAddress].
func (o *OptionalPacker) PackAddress(addr Address) {
	if o.mark(addr != EmptyAddress) {
		o.inner.PackAddress(addr)
	}
}

// UnpackAddress sets [dest] to the next address, or [EmptyAddress] when it
// was not written.
func (o *OptionalPacker) UnpackAddress(dest *Address) {
	if !o.next() {
		*dest = EmptyAddress
		return
	}
	o.inner.UnpackAddress(dest)
}

// Done fails the reader if the mask marks a field past the last one read.
func (o *OptionalPacker) Done() {
	if o.field > consts.MaxUint64Offset {
		return
	}
	if uint64(o.present)>>o.field != 0 {
		o.inner.addErr(ErrInvalidBitset)
	}
}

func (o *OptionalPacker) Err() error {
	return o.inner.Err()
}
