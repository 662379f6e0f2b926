// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/consts"
	"github.com/ava-labs/pairfactory/keys"
	"github.com/ava-labs/pairfactory/state"
)

const customPrefix = "custom-"

// PairType is the discriminant of a pair-type profile. The built-in kinds
// are closed; [Custom] carries an arbitrary case-sensitive name.
type PairType struct {
	Name   string
	Custom bool
}

var (
	XYK          = PairType{Name: "xyk"}
	Stable       = PairType{Name: "stable"}
	Concentrated = PairType{Name: "concentrated"}
)

func Custom(name string) PairType {
	return PairType{Name: name, Custom: true}
}

// String returns the storage form of [p]: the built-in name or
// "custom-<name>".
func (p PairType) String() string {
	if p.Custom {
		return customPrefix + p.Name
	}
	return p.Name
}

func ParsePairType(s string) (PairType, error) {
	var p PairType
	switch s {
	case XYK.Name, Stable.Name, Concentrated.Name:
		p = PairType{Name: s}
	default:
		name, ok := strings.CutPrefix(s, customPrefix)
		if !ok || len(name) == 0 {
			return PairType{}, fmt.Errorf("%w: %q", ErrInvalidPairType, s)
		}
		p = Custom(name)
	}
	if len(s) > MaxPairTypeNameLen {
		return PairType{}, fmt.Errorf("%w: %q is longer than %d", ErrInvalidPairType, s, MaxPairTypeNameLen)
	}
	return p, nil
}

func (p PairType) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PairType) UnmarshalText(b []byte) error {
	parsed, err := ParsePairType(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// PairTypeEntry is the profile shared by every pair of one [PairType].
type PairTypeEntry struct {
	PairType          PairType `json:"pairType"`
	TemplateID        uint64   `json:"templateID"`
	TotalFeeBps       uint16   `json:"totalFeeBps"`
	MakerFeeBps       uint16   `json:"makerFeeBps"`
	Disabled          bool     `json:"disabled"`
	GeneratorDisabled bool     `json:"generatorDisabled"`
	Permissioned      bool     `json:"permissioned"`
}

// Validate checks that the discriminant survives a round trip through its
// storage form and that the fees are in range.
func (e *PairTypeEntry) Validate() error {
	parsed, err := ParsePairType(e.PairType.String())
	if err != nil {
		return err
	}
	if parsed != e.PairType {
		return fmt.Errorf("%w: %q", ErrInvalidPairType, e.PairType.Name)
	}
	return e.ValidateFees()
}

// ValidateFees requires total+maker to lie in [0, MaxFeeBps] and maker not to
// exceed total.
func (e *PairTypeEntry) ValidateFees() error {
	if uint32(e.TotalFeeBps)+uint32(e.MakerFeeBps) > MaxFeeBps {
		return fmt.Errorf("%w: %s total %d + maker %d exceeds %d", ErrInvalidFeeBps, e.PairType, e.TotalFeeBps, e.MakerFeeBps, MaxFeeBps)
	}
	if e.MakerFeeBps > e.TotalFeeBps {
		return fmt.Errorf("%w: %s maker %d exceeds total %d", ErrInvalidFeeBps, e.PairType, e.MakerFeeBps, e.TotalFeeBps)
	}
	return nil
}

func (e *PairTypeEntry) Size() int {
	return codec.StringLen(e.PairType.String()) + consts.Uint64Len + 2*consts.Uint16Len + 3*consts.BoolLen
}

func (e *PairTypeEntry) Marshal(p *codec.Packer) {
	p.PackString(e.PairType.String())
	p.PackUint64(e.TemplateID)
	p.PackUint16(e.TotalFeeBps)
	p.PackUint16(e.MakerFeeBps)
	p.PackBool(e.Disabled)
	p.PackBool(e.GeneratorDisabled)
	p.PackBool(e.Permissioned)
}

func UnmarshalPairTypeEntry(p *codec.Packer) (*PairTypeEntry, error) {
	var e PairTypeEntry
	name := p.UnpackString(true)
	if err := p.Err(); err != nil {
		return nil, err
	}
	pairType, err := ParsePairType(name)
	if err != nil {
		return nil, err
	}
	e.PairType = pairType
	e.TemplateID = p.UnpackUint64(false)
	e.TotalFeeBps = p.UnpackUint16(false)
	e.MakerFeeBps = p.UnpackUint16(false)
	e.Disabled = p.UnpackBool()
	e.GeneratorDisabled = p.UnpackBool()
	e.Permissioned = p.UnpackBool()
	return &e, p.Err()
}

// [pairTypePrefix] + [discriminant]
func PairTypeKey(pairType PairType) []byte {
	name := pairType.String()
	k := make([]byte, 0, 1+len(name))
	k = append(k, pairTypePrefix)
	k = append(k, name...)
	return keys.EncodeChunks(k, PairTypeChunks)
}

func GetPairType(
	ctx context.Context,
	im state.Immutable,
	pairType PairType,
) (*PairTypeEntry, bool, error) {
	v, err := im.GetValue(ctx, PairTypeKey(pairType))
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	e, err := UnmarshalPairTypeEntry(codec.NewReader(v, len(v)))
	if err != nil {
		return nil, false, fmt.Errorf("%w: pair type %s: %w", ErrCorruptValue, pairType, err)
	}
	return e, true, nil
}

// SetPairType upserts [entry] under its discriminant.
func SetPairType(ctx context.Context, mu state.Mutable, entry *PairTypeEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	p := codec.NewWriter(entry.Size(), entry.Size())
	entry.Marshal(p)
	if err := p.Err(); err != nil {
		return err
	}
	return mu.Insert(ctx, PairTypeKey(entry.PairType), p.Bytes())
}

// PairTypes returns every stored entry in ascending discriminant order.
func PairTypes(db database.Iteratee) ([]*PairTypeEntry, error) {
	it := db.NewIteratorWithPrefix([]byte{pairTypePrefix})
	defer it.Release()

	var entries []*PairTypeEntry
	for it.Next() {
		v := it.Value()
		e, err := UnmarshalPairTypeEntry(codec.NewReader(v, len(v)))
		if err != nil {
			return nil, fmt.Errorf("%w: pair type key %x: %w", ErrCorruptValue, it.Key(), err)
		}
		entries = append(entries, e)
	}
	return entries, it.Error()
}
