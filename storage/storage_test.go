// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/pairfactory/asset"
	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/consts"
	"github.com/ava-labs/pairfactory/pebble"
	"github.com/ava-labs/pairfactory/state"
	"github.com/ava-labs/pairfactory/tstate"
)

// newView returns a view over [db] allowed to touch every key in [ks].
func newView(db database.Database, ks ...[]byte) (*tstate.TState, *tstate.TStateView) {
	scope := state.Keys{}
	for _, k := range ks {
		scope.Add(string(k), state.All)
	}
	ts := tstate.New(db, len(ks))
	return ts, ts.NewView(scope)
}

func commit(t *testing.T, db database.Database, ts *tstate.TState, tsv *tstate.TStateView) {
	tsv.Commit()
	require.NoError(t, ts.WriteTo(db.NewBatch()))
}

func testAddress(typeID uint8) codec.Address {
	return codec.CreateAddress(typeID, ids.GenerateTestID())
}

func TestConfig(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := memdb.New()
	_, tsv := newView(db, ConfigKey())

	_, err := GetConfig(ctx, tsv)
	require.ErrorIs(err, ErrConfigNotFound)

	tests := []*Config{
		{
			Owner:           testAddress(consts.AccountAddressID),
			TokenTemplateID: 123,
			CoinRegistry:    testAddress(consts.AccountAddressID),
		},
		{
			Owner:           testAddress(consts.AccountAddressID),
			TokenTemplateID: 0,
			FeeCollector:    testAddress(consts.AccountAddressID),
			Incentives:      testAddress(consts.AccountAddressID),
			CoinRegistry:    testAddress(consts.AccountAddressID),
		},
		{
			Owner:           testAddress(consts.AccountAddressID),
			TokenTemplateID: 7,
			Incentives:      testAddress(consts.AccountAddressID),
			CoinRegistry:    testAddress(consts.AccountAddressID),
		},
	}
	for _, c := range tests {
		require.NoError(SetConfig(ctx, tsv, c))
		got, err := GetConfig(ctx, tsv)
		require.NoError(err)
		require.Equal(c, got)
		require.Equal(c.FeeCollector != codec.EmptyAddress, got.HasFeeCollector())
		require.Equal(c.Incentives != codec.EmptyAddress, got.HasIncentives())
	}
}

func TestParsePairType(t *testing.T) {
	tests := []struct {
		in   string
		want PairType
		err  error
	}{
		{in: "xyk", want: XYK},
		{in: "stable", want: Stable},
		{in: "concentrated", want: Concentrated},
		{in: "custom-X", want: Custom("X")},
		{in: "custom-x", want: Custom("x")},
		{in: "custom-", err: ErrInvalidPairType},
		{in: "XYK", err: ErrInvalidPairType},
		{in: "custom-" + string(make([]byte, MaxPairTypeNameLen)), err: ErrInvalidPairType},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePairType(tt.in)
			require.ErrorIs(t, err, tt.err)
			if tt.err == nil {
				require.Equal(t, tt.want, got)
				require.Equal(t, tt.in, got.String())
			}
		})
	}
	require.NotEqual(t, Custom("X").String(), Custom("x").String())
}

func TestValidateFees(t *testing.T) {
	tests := []struct {
		total uint16
		maker uint16
		ok    bool
	}{
		{total: 0, maker: 0, ok: true},
		{total: 30, maker: 0, ok: true},
		{total: 100, maker: 10, ok: true},
		{total: 5_000, maker: 5_000, ok: true},
		{total: 10_000, maker: 0, ok: true},
		{total: 10, maker: 100, ok: false},
		{total: 9_000, maker: 1_001, ok: false},
		{total: 10_000, maker: 1, ok: false},
		{total: 65_535, maker: 0, ok: false},
	}
	for _, tt := range tests {
		e := &PairTypeEntry{PairType: XYK, TotalFeeBps: tt.total, MakerFeeBps: tt.maker}
		err := e.ValidateFees()
		if tt.ok {
			require.NoError(t, err, "total=%d maker=%d", tt.total, tt.maker)
		} else {
			require.ErrorIs(t, err, ErrInvalidFeeBps, "total=%d maker=%d", tt.total, tt.maker)
		}
	}
}

func TestSetPairTypeRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		entry *PairTypeEntry
		err   error
	}{
		{name: "unknown builtin", entry: &PairTypeEntry{PairType: PairType{Name: "bogus"}}, err: ErrInvalidPairType},
		{name: "empty builtin", entry: &PairTypeEntry{}, err: ErrInvalidPairType},
		{name: "empty custom", entry: &PairTypeEntry{PairType: Custom("")}, err: ErrInvalidPairType},
		{name: "fees", entry: &PairTypeEntry{PairType: XYK, MakerFeeBps: 1}, err: ErrInvalidFeeBps},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			db := memdb.New()
			_, tsv := newView(db, PairTypeKey(tt.entry.PairType))
			require.ErrorIs(SetPairType(ctx, tsv, tt.entry), tt.err)
			all, err := PairTypes(db)
			require.NoError(err)
			require.Empty(all)
		})
	}
}

func TestPairTypes(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := memdb.New()

	entries := []*PairTypeEntry{
		{PairType: Stable, TemplateID: 2, TotalFeeBps: 5, MakerFeeBps: 5},
		{PairType: XYK, TemplateID: 1, TotalFeeBps: 30, MakerFeeBps: 3, Permissioned: true},
		{PairType: Custom("X"), TemplateID: 3, Disabled: true, GeneratorDisabled: true},
	}
	var ks [][]byte
	for _, e := range entries {
		ks = append(ks, PairTypeKey(e.PairType))
	}
	ts, tsv := newView(db, ks...)

	_, ok, err := GetPairType(ctx, tsv, XYK)
	require.NoError(err)
	require.False(ok)

	for _, e := range entries {
		require.NoError(SetPairType(ctx, tsv, e))
	}
	got, ok, err := GetPairType(ctx, tsv, XYK)
	require.NoError(err)
	require.True(ok)
	require.Equal(entries[1], got)

	// Upsert overwrites.
	updated := *entries[0]
	updated.Disabled = true
	require.NoError(SetPairType(ctx, tsv, &updated))
	commit(t, db, ts, tsv)

	all, err := PairTypes(db)
	require.NoError(err)
	require.Equal([]*PairTypeEntry{entries[2], &updated, entries[1]}, all)
}

func TestPairs(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := memdb.New()

	var pairKeys [][]byte
	for _, denoms := range [][2]string{
		{"uatom", "uosmo"},
		{"uatom", "uluna"},
		{"uluna", "uosmo"},
		{"ujuno", "uosmo"},
	} {
		k, err := asset.PairKey([]asset.Info{asset.Native(denoms[0]), asset.Native(denoms[1])})
		require.NoError(err)
		pairKeys = append(pairKeys, k)
	}
	var ks [][]byte
	for _, k := range pairKeys {
		ks = append(ks, PairKey(k))
	}
	ts, tsv := newView(db, ks...)

	addrs := map[string]codec.Address{}
	for _, k := range pairKeys {
		addr := testAddress(consts.PairAddressID)
		addrs[string(k)] = addr
		require.NoError(SetPair(ctx, tsv, k, addr))
	}
	got, ok, err := GetPair(ctx, tsv, pairKeys[0])
	require.NoError(err)
	require.True(ok)
	require.Equal(addrs[string(pairKeys[0])], got)

	require.NoError(DeletePair(ctx, tsv, pairKeys[3]))
	_, ok, err = GetPair(ctx, tsv, pairKeys[3])
	require.NoError(err)
	require.False(ok)
	commit(t, db, ts, tsv)

	page, err := Pairs(db, nil, 10)
	require.NoError(err)
	require.Len(page, 3)
	for i, p := range page {
		require.Equal(addrs[string(p.Key)], p.Address)
		if i > 0 {
			require.Negative(compareKeys(page[i-1].Key, p.Key))
		}
	}

	first, err := Pairs(db, nil, 1)
	require.NoError(err)
	require.Len(first, 1)
	rest, err := Pairs(db, first[0].Key, 10)
	require.NoError(err)
	require.Equal(page[1:], rest)

	// The cursor need not be registered.
	rest, err = Pairs(db, pairKeys[3], 10)
	require.NoError(err)
	for _, p := range rest {
		require.Positive(compareKeys(p.Key, pairKeys[3]))
	}

	last, err := Pairs(db, page[2].Key, 10)
	require.NoError(err)
	require.Empty(last)
}

func TestPairsOrderedByPairKey(t *testing.T) {
	require := require.New(t)
	db := memdb.New()

	mustKey := func(denoms ...string) []byte {
		infos := make([]asset.Info, 0, len(denoms))
		for _, d := range denoms {
			infos = append(infos, asset.Native(d))
		}
		k, err := asset.PairKey(infos)
		require.NoError(err)
		return k
	}
	pairKeys := [][]byte{
		mustKey("aaa", "bbb", "ccc"),
		mustKey("aaa", "bbb"),
		mustKey("aaa", "bbc"),
		{0x00, 0x00, 0xff},
		{0x00},
	}
	var ks [][]byte
	for _, k := range pairKeys {
		ks = append(ks, PairKey(k))
	}
	ts, tsv := newView(db, ks...)
	for _, k := range pairKeys {
		require.NoError(SetPair(context.Background(), tsv, k, testAddress(consts.PairAddressID)))
	}
	commit(t, db, ts, tsv)

	page, err := Pairs(db, nil, 10)
	require.NoError(err)
	got := make([][]byte, 0, len(page))
	for _, p := range page {
		got = append(got, p.Key)
	}
	require.Equal([][]byte{
		pairKeys[4],
		pairKeys[1],
		pairKeys[0],
		pairKeys[2],
		pairKeys[3],
	}, got)

	rest, err := Pairs(db, pairKeys[1], 10)
	require.NoError(err)
	require.Len(rest, 3)
	require.Equal(pairKeys[0], rest[0].Key)
}

func compareKeys(a, b []byte) int {
	return compareBytes(PairKey(a), PairKey(b))
}

func compareBytes(a, b []byte) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return len(a) - len(b)
}

func TestSlots(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := memdb.New()
	ts, tsv := newView(db, PendingCreationKey(), LastCreationKey(), OwnershipProposalKey(), VersionKey())

	_, ok, err := GetPendingCreation(ctx, tsv)
	require.NoError(err)
	require.False(ok)
	pairKey, err := asset.PairKey([]asset.Info{asset.Native("uatom"), asset.Native("uosmo")})
	require.NoError(err)
	require.NoError(SetPendingCreation(ctx, tsv, pairKey))
	got, ok, err := GetPendingCreation(ctx, tsv)
	require.NoError(err)
	require.True(ok)
	require.Equal(pairKey, got)
	require.NoError(ClearPendingCreation(ctx, tsv))
	_, ok, err = GetPendingCreation(ctx, tsv)
	require.NoError(err)
	require.False(ok)

	_, ok, err = GetLastCreation(ctx, tsv)
	require.NoError(err)
	require.False(ok)
	require.NoError(SetLastCreation(ctx, tsv, pairKey))
	got, ok, err = GetLastCreation(ctx, tsv)
	require.NoError(err)
	require.True(ok)
	require.Equal(pairKey, got)

	proposal := &OwnershipProposal{Owner: testAddress(consts.AccountAddressID), Expiry: 1_700_000_100}
	require.NoError(SetOwnershipProposal(ctx, tsv, proposal))
	gotProposal, ok, err := GetOwnershipProposal(ctx, tsv)
	require.NoError(err)
	require.True(ok)
	require.Equal(proposal, gotProposal)
	require.False(gotProposal.Expired(1_700_000_100))
	require.True(gotProposal.Expired(1_700_000_101))
	require.NoError(ClearOwnershipProposal(ctx, tsv))
	_, ok, err = GetOwnershipProposal(ctx, tsv)
	require.NoError(err)
	require.False(ok)

	version := &Version{Contract: ContractName, Version: consts.Version.String()}
	require.NoError(SetVersion(ctx, tsv, version))
	commit(t, db, ts, tsv)

	gotVersion, ok, err := GetVersion(ctx, state.NewReadOnly(db))
	require.NoError(err)
	require.True(ok)
	require.Equal(version, gotVersion)
}

func putValue(t *testing.T, db DB, k, v []byte) {
	batch := db.NewBatch()
	require.NoError(t, batch.Put(k, v))
	require.NoError(t, batch.Write())
}

func TestNewInMemory(t *testing.T) {
	require := require.New(t)
	db, gatherer, err := New(pebble.NewDefaultConfig(), "", "state")
	require.NoError(err)
	require.NotNil(gatherer)
	putValue(t, db, []byte{1}, []byte{2})
	require.NoError(db.Close())
}

func TestNewPersistent(t *testing.T) {
	require := require.New(t)
	cfg := pebble.NewDefaultConfig()
	cfg.Sync = false
	dir := t.TempDir()

	db, _, err := New(cfg, dir, "state")
	require.NoError(err)
	putValue(t, db, []byte{1}, []byte{2})
	require.NoError(db.Close())

	db, _, err = New(cfg, dir, "state")
	require.NoError(err)
	v, err := db.Get([]byte{1})
	require.NoError(err)
	require.Equal([]byte{2}, v)
	require.NoError(db.Close())
}
