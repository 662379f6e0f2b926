// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var endpointCmd = &cobra.Command{
	Use:   "endpoint",
	Short: "Manage endpoint",
	RunE: func(cmd *cobra.Command, _ []string) error {
		endpoint, err := getConfigValue(cmd, "endpoint", true)
		if err != nil {
			return fmt.Errorf("failed to get endpoint: %w", err)
		}
		return printValue(cmd, valueResponse{Key: "endpoint", Value: endpoint})
	},
}

var endpointSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the endpoint URL, e.g. http://127.0.0.1:9650/ext",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return setFlag(cmd, "endpoint")
	},
}

var actorCmd = &cobra.Command{
	Use:   "actor",
	Short: "Manage the address actions are submitted as",
	RunE: func(cmd *cobra.Command, _ []string) error {
		actor, err := getConfigValue(cmd, "actor", true)
		if err != nil {
			return fmt.Errorf("failed to get actor: %w", err)
		}
		return printValue(cmd, valueResponse{Key: "actor", Value: actor})
	},
}

var actorSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the actor address",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if _, err := getActor(cmd); err != nil {
			return fmt.Errorf("invalid actor: %w", err)
		}
		return setFlag(cmd, "actor")
	},
}

type valueResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (r valueResponse) String() string {
	return r.Value
}

func setFlag(cmd *cobra.Command, key string) error {
	value, err := cmd.Flags().GetString(key)
	if err != nil {
		return fmt.Errorf("failed to get %s flag: %w", key, err)
	}
	if value == "" {
		return fmt.Errorf("%s is required", key)
	}
	if err := setConfigValue(key, value); err != nil {
		return fmt.Errorf("failed to update config: %w", err)
	}
	return printValue(cmd, valueResponse{Key: key, Value: value})
}

func init() {
	rootCmd.AddCommand(endpointCmd, actorCmd)
	endpointCmd.AddCommand(endpointSetCmd)
	actorCmd.AddCommand(actorSetCmd)
}
