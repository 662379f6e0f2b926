// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ava-labs/pairfactory/actions"
	"github.com/ava-labs/pairfactory/chain"
)

var errInvalidCoin = errors.New("coin must be <denom>:<amount>")

var submitCmd = &cobra.Command{
	Use:   "submit [action] [json params]",
	Short: "Submit an action as the configured actor",
	Long:  "Submit an action as the configured actor. Actions: " + strings.Join(actions.Names(), ", "),
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		action, err := actions.New(args[0])
		if err != nil {
			return err
		}
		if len(args) == 2 {
			if err := json.Unmarshal([]byte(args[1]), action); err != nil {
				return fmt.Errorf("failed to decode params: %w", err)
			}
		}
		rawFunds, err := cmd.Flags().GetStringSlice("funds")
		if err != nil {
			return err
		}
		funds, err := parseCoins(rawFunds)
		if err != nil {
			return err
		}
		actor, err := getActor(cmd)
		if err != nil {
			return fmt.Errorf("failed to get actor: %w", err)
		}
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		yes, err := cmd.Flags().GetBool("yes")
		if err != nil {
			return err
		}
		if !yes {
			if err := confirm(fmt.Sprintf("submit %s as %s", args[0], actor)); err != nil {
				return err
			}
		}
		result, err := client.Submit(cmd.Context(), actor, action, funds)
		if err != nil {
			return fmt.Errorf("failed to submit %s: %w", args[0], err)
		}
		return printValue(cmd, resultsResponse{Results: []*chain.Result{result}})
	},
}

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Print recently committed requests",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		results, err := client.Results(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get results: %w", err)
		}
		return printValue(cmd, resultsResponse{Results: results})
	},
}

type resultsResponse struct {
	Results []*chain.Result `json:"results"`
}

func (r resultsResponse) String() string {
	var b strings.Builder
	for _, result := range r.Results {
		fmt.Fprintf(&b, "success=%t calls=%d timestamp=%d\n", result.Success, result.Calls, result.Timestamp)
		for _, e := range result.Events {
			fmt.Fprintf(&b, "  %s", e.Action)
			for _, attr := range e.Attributes {
				fmt.Fprintf(&b, " %s=%s", attr.Key, attr.Value)
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func parseCoins(args []string) ([]chain.Coin, error) {
	coins := make([]chain.Coin, 0, len(args))
	for _, arg := range args {
		denom, rawAmount, ok := strings.Cut(arg, ":")
		if !ok || len(denom) == 0 {
			return nil, fmt.Errorf("%w: %q", errInvalidCoin, arg)
		}
		amount, err := strconv.ParseUint(rawAmount, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", errInvalidCoin, arg, err)
		}
		coins = append(coins, chain.Coin{Denom: denom, Amount: amount})
	}
	return coins, nil
}

func init() {
	rootCmd.AddCommand(submitCmd, resultsCmd)
	submitCmd.Flags().StringSlice("funds", nil, "coins attached to the action, <denom>:<amount>")
	submitCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
}
