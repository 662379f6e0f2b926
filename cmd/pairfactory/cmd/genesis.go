// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ava-labs/pairfactory/genesis"
)

func newGenesisCmd() *cobra.Command {
	g := genesis.Default()
	cmd := &cobra.Command{
		Use:   "genesis",
		Short: "Print a genesis file built from the defaults",
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := json.MarshalIndent(g, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return err
		},
	}
	cmd.Flags().StringVar(&g.Owner, "owner", "", "bech32 address of the owner")
	cmd.Flags().StringVar(&g.CoinRegistry, "coin-registry", "", "bech32 address of the coin registry")
	cmd.Flags().StringVar(&g.FeeCollector, "fee-collector", "", "bech32 address of the fee collector")
	cmd.Flags().StringVar(&g.Incentives, "incentives", "", "bech32 address of the incentives contract")
	cmd.Flags().Uint64Var(&g.TokenTemplateID, "token-template", g.TokenTemplateID, "template of liquidity tokens")
	return cmd
}
