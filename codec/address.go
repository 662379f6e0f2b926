// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/formatting/address"
)

const AddressLen = 33

// Address is a type byte followed by a 32 byte identifier. The type byte
// tells accounts, the factory and deployed contracts apart.
type Address [AddressLen]byte

var EmptyAddress = Address{}

// CreateAddress returns [Address] made from concatenating
// [typeID] with [id].
func CreateAddress(typeID uint8, id ids.ID) Address {
	a := make([]byte, AddressLen)
	a[0] = typeID
	copy(a[1:], id[:])
	return Address(a)
}

// AddressBech32 returns a Bech32 address from [hrp] and [p].
// This function uses avalanchego's FormatBech32 function.
func AddressBech32(hrp string, p Address) (string, error) {
	return address.FormatBech32(hrp, p[:])
}

// MustAddressBech32 returns a Bech32 address from [hrp] and [p] or panics.
func MustAddressBech32(hrp string, p Address) string {
	addr, err := AddressBech32(hrp, p)
	if err != nil {
		panic(err)
	}
	return addr
}

// ParseAddressBech32 parses a Bech32 encoded address string and extracts
// its [Address]. If there is an error reading the address or
// the hrp value is not valid, ParseAddressBech32 returns an error.
func ParseAddressBech32(hrp, saddr string) (Address, error) {
	phrp, p, err := address.ParseBech32(saddr)
	if err != nil {
		return EmptyAddress, err
	}
	if phrp != hrp {
		return EmptyAddress, ErrIncorrectHRP
	}
	// The decoded bytes carry a trailing pad byte: bech32 groups bits in
	// fives and the final group is padded out to a full byte.
	if len(p) < AddressLen {
		return EmptyAddress, ErrInsufficientLength
	}
	return Address(p[:AddressLen]), nil
}

// TypeID returns the leading type byte of [a].
func (a Address) TypeID() uint8 {
	return a[0]
}

// String implements fmt.Stringer with the hex form of [a].
func (a Address) String() string {
	return ToHex(a[:])
}

// MarshalText returns the hex representation of [a].
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText parses a hex encoded address with an optional 0x prefix.
func (a *Address) UnmarshalText(text []byte) error {
	b, err := LoadHex(string(text), AddressLen)
	if err != nil {
		return err
	}
	copy(a[:], b)
	return nil
}
