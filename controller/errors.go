// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package controller

import "errors"

var (
	ErrCallDepthExceeded = errors.New("call depth exceeded")
	ErrInvalidLimit      = errors.New("invalid limit")
	ErrClosed            = errors.New("controller closed")
)
