// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package asset

import "errors"

var (
	ErrInvalidAssetSet = errors.New("invalid asset set")
	ErrInvalidDenom    = errors.New("invalid native denom")
	ErrInvalidToken    = errors.New("invalid token address")
	ErrUnknownKind     = errors.New("unknown asset kind")
)
