// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"fmt"
	"slices"

	"github.com/ava-labs/avalanchego/utils/wrappers"
	"golang.org/x/exp/maps"

	"github.com/ava-labs/pairfactory/chain"
	"github.com/ava-labs/pairfactory/codec"
)

var Parser chain.ActionRegistry

var constructors = map[string]func() chain.Action{
	"update_config":           func() chain.Action { return &UpdateConfig{} },
	"update_pair_type":        func() chain.Action { return &UpdatePairType{} },
	"create_pair":             func() chain.Action { return &CreatePair{} },
	"deregister":              func() chain.Action { return &Deregister{} },
	"propose_new_owner":       func() chain.Action { return &ProposeOwner{} },
	"drop_ownership_proposal": func() chain.Action { return &DropOwnershipProposal{} },
	"claim_ownership":         func() chain.Action { return &ClaimOwnership{} },
}

// New returns an empty action for the user facing [name], ready to be
// decoded from JSON.
func New(name string) (chain.Action, error) {
	f, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	return f(), nil
}

// Names lists every name accepted by [New] in ascending order.
func Names() []string {
	names := maps.Keys(constructors)
	slices.Sort(names)
	return names
}

func init() {
	Parser = codec.NewTypeParser[chain.Action]()

	errs := &wrappers.Errs{}
	errs.Add(
		Parser.Register(&UpdateConfig{}, UnmarshalUpdateConfig),
		Parser.Register(&UpdatePairType{}, UnmarshalUpdatePairType),
		Parser.Register(&CreatePair{}, UnmarshalCreatePair),
		Parser.Register(&Deregister{}, UnmarshalDeregister),
		Parser.Register(&ProposeOwner{}, UnmarshalProposeOwner),
		Parser.Register(&DropOwnershipProposal{}, UnmarshalDropOwnershipProposal),
		Parser.Register(&ClaimOwnership{}, UnmarshalClaimOwnership),
	)
	if errs.Errored() {
		panic(errs.Err)
	}
}
