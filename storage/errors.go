// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import "errors"

var (
	ErrConfigNotFound   = errors.New("config not found")
	ErrPairTypeNotFound = errors.New("pair type not found")
	ErrPairNotFound     = errors.New("pair not found")
	ErrInvalidFeeBps    = errors.New("invalid fee bps")
	ErrInvalidPairType  = errors.New("invalid pair type")
	ErrCorruptValue     = errors.New("corrupt value")
)
