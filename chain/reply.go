// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"bytes"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/ava-labs/pairfactory/codec"
)

// Field numbers of MsgInstantiateContractResponse.
const (
	instantiateAddressField protowire.Number = 1
	instantiateDataField    protowire.Number = 2
)

// SubMsgResult is the outcome of a [SubMsg]. A non-empty [Error] marks a
// failure.
type SubMsgResult struct {
	Error string      `json:"error,omitempty"`
	Data  codec.Bytes `json:"data,omitempty"`
}

func (r *SubMsgResult) Failed() bool {
	return len(r.Error) > 0
}

// Reply is delivered to the issuer of a [SubMsg] with the same [ID].
type Reply struct {
	ID     uint64       `json:"id"`
	Result SubMsgResult `json:"result"`
}

// InstantiateResult is what the host reports after deploying a contract.
type InstantiateResult struct {
	Address codec.Address
	Data    []byte

	// Calls are issued by the new contract during instantiation. They run
	// before the issuer is called back.
	Calls []*Call
}

// EncodeInstantiateResponse returns the protobuf encoding of
// MsgInstantiateContractResponse{contract_address, data}.
func EncodeInstantiateResponse(contractAddr string, data []byte) []byte {
	b := protowire.AppendTag(nil, instantiateAddressField, protowire.BytesType)
	b = protowire.AppendString(b, contractAddr)
	if len(data) > 0 {
		b = protowire.AppendTag(b, instantiateDataField, protowire.BytesType)
		b = protowire.AppendBytes(b, data)
	}
	return b
}

// ParseInstantiateResponse decodes a MsgInstantiateContractResponse. Unknown
// fields are skipped.
func ParseInstantiateResponse(b []byte) (string, []byte, error) {
	var (
		addr string
		data []byte
	)
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return "", nil, fmt.Errorf("%w: %w", ErrInvalidProtobuf, protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == instantiateAddressField && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return "", nil, fmt.Errorf("%w: contract_address: %w", ErrInvalidProtobuf, protowire.ParseError(n))
			}
			addr = v
			b = b[n:]
		case num == instantiateDataField && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return "", nil, fmt.Errorf("%w: data: %w", ErrInvalidProtobuf, protowire.ParseError(n))
			}
			data = bytes.Clone(v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return "", nil, fmt.Errorf("%w: field %d: %w", ErrInvalidProtobuf, num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	if len(addr) == 0 {
		return "", nil, ErrMissingContractAddress
	}
	return addr, data, nil
}
