// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var (
	ErrUnknownMessage         = errors.New("unknown message")
	ErrMissingContractAddress = errors.New("missing contract address")
	ErrInvalidProtobuf        = errors.New("invalid protobuf")
)
