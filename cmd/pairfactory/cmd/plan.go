// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"text/template"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/pairfactory/chain"
	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/consts"
)

var (
	ErrInvalidPlan = errors.New("invalid plan")
	ErrInvalidStep = errors.New("invalid step")
	ErrUnexpected  = errors.New("unexpected outcome")
)

// Plan is a scripted sequence of actions run against an in-memory registry.
// YAML and JSON are both accepted.
type Plan struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Actor owning the registry at genesis
	Owner string `yaml:"owner"`
	// Actor standing in for the incentives contract, if any
	Incentives string `yaml:"incentives"`
	Steps      []Step `yaml:"steps"`
}

type Step struct {
	Description string `yaml:"description"`
	Actor       string `yaml:"actor"`
	// Name accepted by actions.New
	Action string `yaml:"action"`
	// JSON body of the action. {{addr "name"}} and {{bech32 "name"}} expand
	// to the address of an actor.
	Params string       `yaml:"params"`
	Funds  []chain.Coin `yaml:"funds"`
	// Seconds to move the clock forward before the step runs
	Advance uint64  `yaml:"advance"`
	Require Require `yaml:"require"`
}

type Require struct {
	// Substring of the expected failure
	Error string `yaml:"error"`
	// Expected event names in emission order
	Events []string `yaml:"events"`
}

func unmarshalPlan(b []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPlan, err)
	}
	if len(p.Owner) == 0 {
		return nil, fmt.Errorf("%w: no owner", ErrInvalidPlan)
	}
	if len(p.Steps) == 0 {
		return nil, fmt.Errorf("%w: no steps found", ErrInvalidPlan)
	}
	for i, step := range p.Steps {
		if len(step.Actor) == 0 || len(step.Action) == 0 {
			return nil, fmt.Errorf("%w %d: actor and action are required", ErrInvalidStep, i)
		}
	}
	return &p, nil
}

// actorAddress derives a stable account address from [name].
func actorAddress(name string) codec.Address {
	return codec.CreateAddress(consts.AccountAddressID, ids.ID(hashing.ComputeHash256Array([]byte(name))))
}

var paramFuncs = template.FuncMap{
	"addr": func(name string) string {
		return actorAddress(name).String()
	},
	"bech32": func(name string) string {
		return codec.MustAddressBech32(consts.HRP, actorAddress(name))
	},
}

func renderParams(params string) ([]byte, error) {
	t, err := template.New("params").Funcs(paramFuncs).Parse(params)
	if err != nil {
		return nil, err
	}
	var b bytes.Buffer
	if err := t.Execute(&b, nil); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
