// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package asset

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/consts"
)

func testToken() Info {
	return Token(codec.CreateAddress(consts.TokenAddressID, ids.GenerateTestID()))
}

func TestPairKeyOrderIndependent(t *testing.T) {
	require := require.New(t)
	a, b, c := Native("uatom"), Native("uosmo"), testToken()

	perms := [][]Info{
		{a, b, c},
		{a, c, b},
		{b, a, c},
		{b, c, a},
		{c, a, b},
		{c, b, a},
	}
	want, err := PairKey(perms[0])
	require.NoError(err)
	for _, p := range perms[1:] {
		got, err := PairKey(p)
		require.NoError(err)
		require.Equal(want, got)
	}
	require.Equal(Sorted([]Info{c, b, a}), Sorted([]Info{a, b, c}))
}

func TestPairKeyInvalid(t *testing.T) {
	tests := map[string][]Info{
		"empty":     nil,
		"single":    {Native("uatom")},
		"duplicate": {Native("uatom"), Native("uatom")},
	}
	for name, infos := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := PairKey(infos)
			require.ErrorIs(t, err, ErrInvalidAssetSet)
		})
	}
}

func TestPairKeyDistinguishesKinds(t *testing.T) {
	require := require.New(t)
	tok := testToken()
	// A native denom spelled like the raw token bytes is still a different asset.
	spoof := Native(string(tok.Token[:]))

	k1, err := PairKey([]Info{Native("uatom"), tok})
	require.NoError(err)
	k2, err := PairKey([]Info{Native("uatom"), spoof})
	require.NoError(err)
	require.NotEqual(k1, k2)
}

func TestValidateInfos(t *testing.T) {
	ctx := context.Background()
	accountAddr := codec.CreateAddress(consts.AccountAddressID, ids.GenerateTestID())

	tests := []struct {
		name   string
		infos  []Info
		err    error
		nested error
	}{
		{
			name:  "valid native pair",
			infos: []Info{Native("uatom"), Native("ibc/27394FB092D2ECCD56123C74F36E4C1F926001CEADA9CA97EA622B25F41E5EB2")},
		},
		{
			name:  "valid mixed pair",
			infos: []Info{Native("uluna"), testToken()},
		},
		{
			name:  "too few",
			infos: []Info{Native("uatom")},
			err:   ErrInvalidAssetSet,
		},
		{
			name:  "duplicate",
			infos: []Info{Native("uatom"), Native("uosmo"), Native("uatom")},
			err:   ErrInvalidAssetSet,
		},
		{
			name:   "short denom",
			infos:  []Info{Native("ua"), Native("uosmo")},
			err:    ErrInvalidAssetSet,
			nested: ErrInvalidDenom,
		},
		{
			name:   "denom starts with digit",
			infos:  []Info{Native("1atom"), Native("uosmo")},
			err:    ErrInvalidAssetSet,
			nested: ErrInvalidDenom,
		},
		{
			name:   "denom with space",
			infos:  []Info{Native("u atom"), Native("uosmo")},
			err:    ErrInvalidAssetSet,
			nested: ErrInvalidDenom,
		},
		{
			name:   "account is not a token",
			infos:  []Info{Native("uatom"), Token(accountAddr)},
			err:    ErrInvalidAssetSet,
			nested: ErrInvalidToken,
		},
		{
			name:   "empty token",
			infos:  []Info{Native("uatom"), Token(codec.EmptyAddress)},
			err:    ErrInvalidAssetSet,
			nested: ErrInvalidToken,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInfos(ctx, DefaultValidator{}, tt.infos)
			if tt.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.err)
			if tt.nested != nil {
				require.ErrorIs(t, err, tt.nested)
			}
		})
	}
}

func TestInfosPacking(t *testing.T) {
	require := require.New(t)
	infos := []Info{Native("uatom"), testToken()}

	p := codec.NewWriter(InfosSize(infos), consts.NetworkSizeLimit)
	MarshalInfos(p, infos)
	require.NoError(p.Err())
	require.Len(p.Bytes(), InfosSize(infos))

	got, err := UnmarshalInfos(codec.NewReader(p.Bytes(), consts.NetworkSizeLimit))
	require.NoError(err)
	require.Equal(infos, got)
}

func TestInfoJSON(t *testing.T) {
	require := require.New(t)
	tok := testToken()

	b, err := json.Marshal([]Info{Native("uatom"), tok})
	require.NoError(err)

	var got []Info
	require.NoError(json.Unmarshal(b, &got))
	require.Equal([]Info{Native("uatom"), tok}, got)

	var bad Info
	require.ErrorIs(json.Unmarshal([]byte(`{}`), &bad), ErrUnknownKind)
	require.ErrorIs(json.Unmarshal([]byte(`{"token":"nope"}`), &bad), ErrInvalidToken)
}

func TestLabel(t *testing.T) {
	require.Equal(t, "uatom-uosmo", Label([]Info{Native("uatom"), Native("uosmo")}))
}

func TestParsePairKey(t *testing.T) {
	require := require.New(t)
	infos := []Info{testToken(), Native("uosmo"), Native("uatom")}

	key, err := PairKey(infos)
	require.NoError(err)
	parsed, err := ParsePairKey(key)
	require.NoError(err)
	require.Equal(Sorted(infos), parsed)

	_, err = ParsePairKey(Native("uatom").Encode())
	require.ErrorIs(err, ErrInvalidAssetSet)
}
