// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chaintest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/pairfactory/chain"
	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/state"
)

// ActionTest is a single parameterized test. It calls Execute on the action with the passed parameters
// and checks that all assertions pass.
type ActionTest struct {
	Name string

	Action chain.Action

	Runtime   chain.Runtime
	State     state.Mutable
	Timestamp int64
	Actor     codec.Address

	// ExpectedResponse is compared against the response when set.
	ExpectedResponse *chain.Response
	ExpectedErr      error

	Assertion func(context.Context, *testing.T, state.Mutable, *chain.Response)
}

// Run executes the [ActionTest] and make sure all assertions pass.
func (test *ActionTest) Run(ctx context.Context, t *testing.T) {
	t.Run(test.Name, func(t *testing.T) {
		require := require.New(t)

		resp, err := test.Action.Execute(ctx, test.Runtime, test.State, test.Timestamp, test.Actor)

		require.ErrorIs(err, test.ExpectedErr)
		if test.ExpectedErr != nil {
			require.Nil(resp)
		}
		if test.ExpectedResponse != nil {
			require.Equal(test.ExpectedResponse, resp)
		}

		if test.Assertion != nil {
			test.Assertion(ctx, t, test.State, resp)
		}
	})
}

// ReplyTest delivers [Reply] to [Handler] and checks the outcome.
type ReplyTest struct {
	Name string

	Handler chain.ReplyHandler
	Reply   *chain.Reply

	Runtime chain.Runtime
	State   state.Mutable

	ExpectedResponse *chain.Response
	ExpectedErr      error

	Assertion func(context.Context, *testing.T, state.Mutable, *chain.Response)
}

func (test *ReplyTest) Run(ctx context.Context, t *testing.T) {
	t.Run(test.Name, func(t *testing.T) {
		require := require.New(t)

		resp, err := test.Handler.Reply(ctx, test.Runtime, test.State, test.Reply)

		require.ErrorIs(err, test.ExpectedErr)
		if test.ExpectedErr != nil {
			require.Nil(resp)
		}
		if test.ExpectedResponse != nil {
			require.Equal(test.ExpectedResponse, resp)
		}

		if test.Assertion != nil {
			test.Assertion(ctx, t, test.State, resp)
		}
	})
}

// ActionBenchmark is a parameterized benchmark. It calls Execute on the action with the passed parameters
// and checks that all assertions pass. To avoid using shared state between runs, a new
// state is created for each iteration using the provided `CreateState` function.
type ActionBenchmark struct {
	Name   string
	Action chain.Action

	Runtime     chain.Runtime
	CreateState func() state.Mutable
	Timestamp   int64
	Actor       codec.Address

	ExpectedErr error
}

// Run executes the [ActionBenchmark] and make sure all the benchmark assertions pass.
func (test *ActionBenchmark) Run(ctx context.Context, b *testing.B) {
	require := require.New(b)

	// create a slice of b.N states
	states := make([]state.Mutable, b.N)
	for i := 0; i < b.N; i++ {
		states[i] = test.CreateState()
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := test.Action.Execute(ctx, test.Runtime, states[i], test.Timestamp, test.Actor)
		require.ErrorIs(err, test.ExpectedErr)
	}
}
