// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package asset

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/consts"
)

// Kind distinguishes a native denom from a token contract.
type Kind uint8

const (
	NativeKind Kind = iota
	TokenKind
)

const (
	MinDenomLen = 3
	MaxDenomLen = 128

	// MaxPairAssets bounds how many assets a single pair may hold.
	MaxPairAssets = 8
)

// Info identifies one side of a pair.
type Info struct {
	Kind  Kind
	Denom string
	Token codec.Address
}

func Native(denom string) Info {
	return Info{Kind: NativeKind, Denom: denom}
}

func Token(addr codec.Address) Info {
	return Info{Kind: TokenKind, Token: addr}
}

// ID returns the raw identifier of [i]: the denom bytes or the token address.
func (i Info) ID() []byte {
	if i.Kind == NativeKind {
		return []byte(i.Denom)
	}
	return i.Token[:]
}

// String returns the denom or the bech32 token address.
func (i Info) String() string {
	if i.Kind == NativeKind {
		return i.Denom
	}
	saddr, err := codec.AddressBech32(consts.HRP, i.Token)
	if err != nil {
		return i.Token.String()
	}
	return saddr
}

func (i Info) Equal(o Info) bool {
	if i.Kind != o.Kind {
		return false
	}
	if i.Kind == NativeKind {
		return i.Denom == o.Denom
	}
	return i.Token == o.Token
}

// Size is the packed length of [i].
func (i Info) Size() int {
	return consts.ByteLen + consts.Uint16Len + len(i.ID())
}

// Encode returns kind || uint16 len || id.
func (i Info) Encode() []byte {
	p := codec.NewWriter(i.Size(), consts.NetworkSizeLimit)
	i.Marshal(p)
	return p.Bytes()
}

func (i Info) Marshal(p *codec.Packer) {
	p.PackByte(byte(i.Kind))
	if i.Kind == NativeKind {
		p.PackString(i.Denom)
		return
	}
	p.PackString(string(i.Token[:]))
}

func Unmarshal(p *codec.Packer) (Info, error) {
	kind := Kind(p.UnpackByte())
	raw := p.UnpackString(true)
	if err := p.Err(); err != nil {
		return Info{}, err
	}
	switch kind {
	case NativeKind:
		return Native(raw), nil
	case TokenKind:
		if len(raw) != codec.AddressLen {
			return Info{}, fmt.Errorf("%w: %d bytes", ErrInvalidToken, len(raw))
		}
		return Token(codec.Address([]byte(raw))), nil
	default:
		return Info{}, fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}
}

func MarshalInfos(p *codec.Packer, infos []Info) {
	p.PackByte(uint8(len(infos)))
	for _, info := range infos {
		info.Marshal(p)
	}
}

func UnmarshalInfos(p *codec.Packer) ([]Info, error) {
	count := int(p.UnpackByte())
	if err := p.Err(); err != nil {
		return nil, err
	}
	if count > MaxPairAssets {
		return nil, fmt.Errorf("%w: %d assets", ErrInvalidAssetSet, count)
	}
	infos := make([]Info, 0, count)
	for i := 0; i < count; i++ {
		info, err := Unmarshal(p)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func InfosSize(infos []Info) int {
	size := consts.ByteLen
	for _, info := range infos {
		size += info.Size()
	}
	return size
}

// Label joins the assets in caller order, for example "uatom-uosmo".
func Label(infos []Info) string {
	parts := make([]string, len(infos))
	for i, info := range infos {
		parts[i] = info.String()
	}
	return strings.Join(parts, "-")
}

type jsonInfo struct {
	Native *string `json:"native,omitempty"`
	Token  *string `json:"token,omitempty"`
}

// MarshalJSON renders {"native":"<denom>"} or {"token":"<bech32>"}.
func (i Info) MarshalJSON() ([]byte, error) {
	var j jsonInfo
	if i.Kind == NativeKind {
		j.Native = &i.Denom
	} else {
		saddr, err := codec.AddressBech32(consts.HRP, i.Token)
		if err != nil {
			return nil, err
		}
		j.Token = &saddr
	}
	return json.Marshal(j)
}

func (i *Info) UnmarshalJSON(b []byte) error {
	var j jsonInfo
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	switch {
	case j.Native != nil && j.Token == nil:
		*i = Native(*j.Native)
	case j.Token != nil && j.Native == nil:
		addr, err := codec.ParseAddressBech32(consts.HRP, *j.Token)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidToken, *j.Token)
		}
		*i = Token(addr)
	default:
		return fmt.Errorf("%w: expected exactly one of native or token", ErrUnknownKind)
	}
	return nil
}
