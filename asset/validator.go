// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package asset

import (
	"context"
	"fmt"

	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/consts"
)

// Validator decides whether a single asset is well-formed.
type Validator interface {
	ValidateAsset(ctx context.Context, info Info) error
}

var _ Validator = DefaultValidator{}

// DefaultValidator accepts native denoms that look like bank denoms and token
// addresses carrying a token type byte.
type DefaultValidator struct{}

func (DefaultValidator) ValidateAsset(_ context.Context, info Info) error {
	switch info.Kind {
	case NativeKind:
		return validateDenom(info.Denom)
	case TokenKind:
		if info.Token == codec.EmptyAddress {
			return fmt.Errorf("%w: empty", ErrInvalidToken)
		}
		switch info.Token.TypeID() {
		case consts.TokenAddressID, consts.LiquidityTokenAddressID:
			return nil
		default:
			return fmt.Errorf("%w: %s has type %d", ErrInvalidToken, info, info.Token.TypeID())
		}
	default:
		return fmt.Errorf("%w: %d", ErrUnknownKind, info.Kind)
	}
}

// validateDenom follows the bank module denom grammar:
// [a-zA-Z][a-zA-Z0-9/:._-]{2,127}.
func validateDenom(denom string) error {
	if len(denom) < MinDenomLen || len(denom) > MaxDenomLen {
		return fmt.Errorf("%w: %q has length %d", ErrInvalidDenom, denom, len(denom))
	}
	for i, c := range denom {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i == 0:
			return fmt.Errorf("%w: %q must start with a letter", ErrInvalidDenom, denom)
		case c >= '0' && c <= '9', c == '/', c == ':', c == '.', c == '_', c == '-':
		default:
			return fmt.Errorf("%w: %q contains %q", ErrInvalidDenom, denom, c)
		}
	}
	return nil
}

// ValidateInfos checks that [infos] names at least two pairwise distinct,
// individually valid assets.
func ValidateInfos(ctx context.Context, v Validator, infos []Info) error {
	if len(infos) < 2 {
		return fmt.Errorf("%w: need at least 2 assets, got %d", ErrInvalidAssetSet, len(infos))
	}
	if len(infos) > MaxPairAssets {
		return fmt.Errorf("%w: at most %d assets, got %d", ErrInvalidAssetSet, MaxPairAssets, len(infos))
	}
	for i, info := range infos {
		if err := v.ValidateAsset(ctx, info); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidAssetSet, err)
		}
		for _, other := range infos[:i] {
			if info.Equal(other) {
				return fmt.Errorf("%w: duplicate asset %s", ErrInvalidAssetSet, info)
			}
		}
	}
	return nil
}
