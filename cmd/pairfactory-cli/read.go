// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ava-labs/pairfactory/asset"
	"github.com/ava-labs/pairfactory/rpc"
	"github.com/ava-labs/pairfactory/storage"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the registry is reachable",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		ok, err := client.Ping(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to ping: %w", err)
		}
		return printValue(cmd, valueResponse{Key: "success", Value: fmt.Sprint(ok)})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the contract version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		v, err := client.Version(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		return printValue(cmd, versionResponse{v})
	},
}

type versionResponse struct {
	*rpc.VersionReply
}

func (r versionResponse) String() string {
	return r.Contract + " " + r.Version
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the registry config and pair types",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		cfg, err := client.Config(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get config: %w", err)
		}
		return printValue(cmd, configResponse{cfg})
	},
}

type configResponse struct {
	*rpc.ConfigReply
}

func (r configResponse) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "owner: %s\n", r.Owner)
	fmt.Fprintf(&b, "token template: %d\n", r.TokenTemplateID)
	fmt.Fprintf(&b, "fee collector: %s\n", orNone(r.FeeCollector))
	fmt.Fprintf(&b, "incentives: %s\n", orNone(r.Incentives))
	fmt.Fprintf(&b, "coin registry: %s\n", r.CoinRegistry)
	for _, entry := range r.PairTypes {
		fmt.Fprintf(&b, "pair type %s: template=%d total=%d maker=%d disabled=%t permissioned=%t\n",
			entry.PairType, entry.TemplateID, entry.TotalFeeBps, entry.MakerFeeBps, entry.Disabled, entry.Permissioned)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func orNone(s string) string {
	if len(s) == 0 {
		return "none"
	}
	return s
}

var pairCmd = &cobra.Command{
	Use:   "pair [asset] [asset]...",
	Short: "Look up the pair registered for a set of assets",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		infos, err := parseAssetInfos(args)
		if err != nil {
			return err
		}
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		pair, err := client.Pair(cmd.Context(), infos)
		if err != nil {
			return fmt.Errorf("failed to get pair: %w", err)
		}
		return printValue(cmd, pairsResponse{Pairs: []*rpc.PairInfo{pair}})
	},
}

var pairsCmd = &cobra.Command{
	Use:   "pairs",
	Short: "List registered pairs in key order",
	RunE: func(cmd *cobra.Command, _ []string) error {
		startAfter, err := cmd.Flags().GetStringSlice("start-after")
		if err != nil {
			return err
		}
		limit, err := cmd.Flags().GetInt("limit")
		if err != nil {
			return err
		}
		var cursor []asset.Info
		if len(startAfter) > 0 {
			cursor, err = parseAssetInfos(startAfter)
			if err != nil {
				return err
			}
		}
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		pairs, err := client.Pairs(cmd.Context(), cursor, limit)
		if err != nil {
			return fmt.Errorf("failed to list pairs: %w", err)
		}
		return printValue(cmd, pairsResponse{Pairs: pairs})
	},
}

type pairsResponse struct {
	Pairs []*rpc.PairInfo `json:"pairs"`
}

func (r pairsResponse) String() string {
	lines := make([]string, len(r.Pairs))
	for i, pair := range r.Pairs {
		assets := make([]string, len(pair.AssetInfos))
		for j, info := range pair.AssetInfos {
			assets[j] = info.String()
		}
		lines[i] = fmt.Sprintf("%s %s lp=%s [%s]", pair.ContractAddr, pair.PairType, pair.LiquidityToken, strings.Join(assets, ", "))
	}
	return strings.Join(lines, "\n")
}

var feeInfoCmd = &cobra.Command{
	Use:   "fee-info [pair type]",
	Short: "Print the fees charged by pairs of a type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pairType, err := storage.ParsePairType(args[0])
		if err != nil {
			return err
		}
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		fees, err := client.FeeInfo(cmd.Context(), pairType)
		if err != nil {
			return fmt.Errorf("failed to get fee info: %w", err)
		}
		return printValue(cmd, feeInfoResponse{fees})
	},
}

type feeInfoResponse struct {
	*rpc.FeeInfoReply
}

func (r feeInfoResponse) String() string {
	return fmt.Sprintf("total=%d maker=%d collector=%s", r.TotalFeeBps, r.MakerFeeBps, orNone(r.FeeCollector))
}

var disabledCmd = &cobra.Command{
	Use:   "disabled-pair-types",
	Short: "List pair types that no longer accept new pairs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		pairTypes, err := client.DisabledPairTypes(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get disabled pair types: %w", err)
		}
		return printValue(cmd, disabledResponse{PairTypes: pairTypes})
	},
}

type disabledResponse struct {
	PairTypes []storage.PairType `json:"pairTypes"`
}

func (r disabledResponse) String() string {
	names := make([]string, len(r.PairTypes))
	for i, p := range r.PairTypes {
		names[i] = p.String()
	}
	return strings.Join(names, "\n")
}

func init() {
	rootCmd.AddCommand(pingCmd, versionCmd, configCmd, pairCmd, pairsCmd, feeInfoCmd, disabledCmd)
	pairsCmd.Flags().StringSlice("start-after", nil, "assets of the last pair already seen")
	pairsCmd.Flags().Int("limit", 0, "maximum number of pairs, 0 uses the server default")
}
