// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ava-labs/pairfactory/chain"
	"github.com/ava-labs/pairfactory/pubsub"
	"github.com/ava-labs/pairfactory/rpc"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream committed requests until interrupted",
	RunE: func(cmd *cobra.Command, _ []string) error {
		endpoint, err := getConfigValue(cmd, "endpoint", true)
		if err != nil {
			return fmt.Errorf("failed to get endpoint: %w", err)
		}
		client, err := pubsub.NewClient(cmd.Context(), strings.TrimSuffix(endpoint, "/")+rpc.WebSocketEndpoint)
		if err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}
		defer client.Close()

		for {
			result, err := client.Listen()
			if err != nil {
				return err
			}
			if err := printValue(cmd, resultsResponse{Results: []*chain.Result{result}}); err != nil {
				return err
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
