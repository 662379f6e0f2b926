// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava-labs/pairfactory/actions"
	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/config"
	"github.com/ava-labs/pairfactory/consts"
	"github.com/ava-labs/pairfactory/genesis"
)

func newSimulateCmd(f *flags) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "simulate [path]",
		Short: "Run a plan against an in-memory registry, \"-\" reads stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				b   []byte
				err error
			)
			if args[0] == "-" {
				b, err = io.ReadAll(cmd.InOrStdin())
			} else {
				b, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}
			plan, err := unmarshalPlan(b)
			if err != nil {
				return err
			}
			cfg, g, err := f.load()
			if err != nil {
				return err
			}
			log := newLogger(cfg, "simulator", !verbose)
			defer log.Stop()
			return simulate(cmd.Context(), cfg, g, plan, log, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log to stderr")
	return cmd
}

// StepResult is printed as one JSON line per step.
type StepResult struct {
	ID          int      `json:"id"`
	Description string   `json:"description,omitempty"`
	Success     bool     `json:"success"`
	Error       string   `json:"error,omitempty"`
	Events      []string `json:"events,omitempty"`
}

func simulate(
	ctx context.Context,
	cfg *config.Config,
	g *genesis.Genesis,
	plan *Plan,
	log logging.Logger,
	out io.Writer,
) error {
	// Simulations never touch disk.
	simCfg := *cfg
	simCfg.DataDir = ""
	simCfg.TraceEnabled = false

	simGenesis := *g
	simGenesis.Owner = codec.MustAddressBech32(consts.HRP, actorAddress(plan.Owner))
	if len(simGenesis.CoinRegistry) == 0 {
		simGenesis.CoinRegistry = codec.MustAddressBech32(consts.HRP, actorAddress("coin_registry"))
	}
	if len(plan.Incentives) > 0 {
		simGenesis.Incentives = codec.MustAddressBech32(consts.HRP, actorAddress(plan.Incentives))
	}

	n, err := newNode(ctx, &simCfg, &simGenesis, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := n.Close(); err != nil {
			log.Warn("failed to close simulation", zap.Error(err))
		}
	}()

	log.Info("running plan",
		zap.String("name", plan.Name),
		zap.Int("steps", len(plan.Steps)),
	)
	enc := json.NewEncoder(out)
	clock := n.controller.Clock()
	clock.Set(time.Unix(clock.Time().Unix(), 0))
	for i, step := range plan.Steps {
		if step.Advance > 0 {
			clock.Set(clock.Time().Add(time.Duration(step.Advance) * time.Second))
		}
		result, err := runStep(ctx, n, i, &step)
		if err != nil {
			return err
		}
		if err := enc.Encode(result); err != nil {
			return err
		}
	}
	return nil
}

func runStep(ctx context.Context, n *node, i int, step *Step) (*StepResult, error) {
	action, err := actions.New(step.Action)
	if err != nil {
		return nil, fmt.Errorf("%w %d: %w", ErrInvalidStep, i, err)
	}
	params, err := renderParams(step.Params)
	if err != nil {
		return nil, fmt.Errorf("%w %d: %w", ErrInvalidStep, i, err)
	}
	if len(strings.TrimSpace(string(params))) > 0 {
		if err := json.Unmarshal(params, action); err != nil {
			return nil, fmt.Errorf("%w %d: %w", ErrInvalidStep, i, err)
		}
	}

	r := &StepResult{ID: i, Description: step.Description}
	result, err := n.controller.Submit(ctx, actorAddress(step.Actor), action, step.Funds)
	switch {
	case err != nil:
		r.Error = err.Error()
	default:
		r.Success = result.Success
		for _, e := range result.Events {
			r.Events = append(r.Events, e.Action)
		}
	}

	if len(step.Require.Error) > 0 {
		if !strings.Contains(r.Error, step.Require.Error) {
			return nil, fmt.Errorf("%w at step %d: expected error %q, got %q", ErrUnexpected, i, step.Require.Error, r.Error)
		}
	} else if len(r.Error) > 0 {
		return nil, fmt.Errorf("%w at step %d: %s", ErrUnexpected, i, r.Error)
	}
	if step.Require.Events != nil && !slices.Equal(step.Require.Events, r.Events) {
		return nil, fmt.Errorf("%w at step %d: expected events %v, got %v", ErrUnexpected, i, step.Require.Events, r.Events)
	}
	return r, nil
}
