// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/pairfactory/asset"
	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/consts"
)

const MaxInitParamsSize = 4 * 1024

type Coin struct {
	Denom  string `json:"denom"`
	Amount uint64 `json:"amount"`
}

// ReplyOn selects when the issuer of a [SubMsg] is called back.
type ReplyOn uint8

const (
	ReplyNever ReplyOn = iota
	ReplySuccess
	ReplyError
	ReplyAlways
)

func (r ReplyOn) String() string {
	switch r {
	case ReplyNever:
		return "never"
	case ReplySuccess:
		return "success"
	case ReplyError:
		return "error"
	case ReplyAlways:
		return "always"
	default:
		return "unknown"
	}
}

// Message is a call issued to a collaborator contract.
type Message interface {
	codec.Typed
}

// SubMsg is a [Message] tagged with the id its callback will carry.
type SubMsg struct {
	ID      uint64
	Msg     Message
	ReplyOn ReplyOn
}

var (
	_ Message = (*InstantiatePair)(nil)
	_ Message = (*ExecuteContract)(nil)
)

// InstantiatePair deploys a new pair contract from a template.
type InstantiatePair struct {
	TemplateID uint64
	Admin      codec.Address
	Label      string
	Funds      []Coin
	Msg        *PairInstantiateMsg
}

func (*InstantiatePair) GetTypeID() uint8 {
	return consts.InstantiatePairID
}

// PairInstantiateMsg is handed to a pair contract when it is created.
type PairInstantiateMsg struct {
	PairType        string
	AssetInfos      []asset.Info
	TokenTemplateID uint64
	Factory         codec.Address
	InitParams      []byte
}

func (m *PairInstantiateMsg) Size() int {
	return codec.StringLen(m.PairType) +
		asset.InfosSize(m.AssetInfos) +
		consts.Uint64Len +
		codec.AddressLen +
		codec.BytesLen(m.InitParams)
}

func (m *PairInstantiateMsg) Marshal(p *codec.Packer) {
	p.PackString(m.PairType)
	asset.MarshalInfos(p, m.AssetInfos)
	p.PackUint64(m.TokenTemplateID)
	p.PackAddress(m.Factory)
	p.PackBytes(m.InitParams)
}

func (m *PairInstantiateMsg) Bytes() []byte {
	p := codec.NewWriter(m.Size(), consts.NetworkSizeLimit)
	m.Marshal(p)
	return p.Bytes()
}

func UnmarshalPairInstantiateMsg(b []byte) (*PairInstantiateMsg, error) {
	p := codec.NewReader(b, consts.NetworkSizeLimit)
	var m PairInstantiateMsg
	m.PairType = p.UnpackString(true)
	infos, err := asset.UnmarshalInfos(p)
	if err != nil {
		return nil, err
	}
	m.AssetInfos = infos
	m.TokenTemplateID = p.UnpackUint64(false)
	p.UnpackAddress(&m.Factory)
	var params []byte
	p.UnpackBytes(MaxInitParamsSize, false, &params)
	if err := p.Err(); err != nil {
		return nil, err
	}
	if len(params) > 0 {
		m.InitParams = params
	}
	if !p.Empty() {
		return nil, codec.ErrExtraBytes
	}
	return &m, nil
}

// ExecuteContract calls an already deployed contract.
type ExecuteContract struct {
	Contract codec.Address
	Msg      []byte
	Funds    []Coin
}

func (*ExecuteContract) GetTypeID() uint8 {
	return consts.ExecuteContractID
}

// DeactivatePool asks the incentives contract to zero out the allocation of
// the pool behind [LPToken].
type DeactivatePool struct {
	LPToken codec.Address
}

func (*DeactivatePool) GetTypeID() uint8 {
	return consts.DeactivatePoolID
}

func (d *DeactivatePool) Bytes() []byte {
	p := codec.NewWriter(consts.ByteLen+codec.AddressLen, consts.ByteLen+codec.AddressLen)
	p.PackByte(d.GetTypeID())
	p.PackAddress(d.LPToken)
	return p.Bytes()
}

func UnmarshalDeactivatePool(b []byte) (*DeactivatePool, error) {
	p := codec.NewReader(b, consts.ByteLen+codec.AddressLen)
	id := p.UnpackByte()
	if err := p.Err(); err != nil {
		return nil, err
	}
	if id != consts.DeactivatePoolID {
		return nil, ErrUnknownMessage
	}
	var d DeactivatePool
	p.UnpackAddress(&d.LPToken)
	return &d, p.Err()
}
