// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ava-labs/avalanchego/utils/perms"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ava-labs/pairfactory/asset"
	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/consts"
	"github.com/ava-labs/pairfactory/rpc"
)

var errInvalidAssetInfo = errors.New("asset must be native:<denom> or token:<bech32>")

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error getting home directory:", err)
		os.Exit(1)
	}

	configDir := filepath.Join(homeDir, ".pairfactory-cli")
	if err := os.MkdirAll(configDir, perms.ReadWriteExecute); err != nil {
		fmt.Fprintln(os.Stderr, "Error creating config directory:", err)
		os.Exit(1)
	}

	configFile := filepath.Join(configDir, "config.yaml")
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error creating config file:", err)
			os.Exit(1)
		}
		_ = f.Close()
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "Error reading config:", err)
			os.Exit(1)
		}
	}
}

func isJSONOutputRequested(cmd *cobra.Command) (bool, error) {
	output, err := getConfigValue(cmd, "output", false)
	if err != nil {
		return false, fmt.Errorf("failed to get output format: %w", err)
	}
	return strings.ToLower(output) == "json", nil
}

func printValue(cmd *cobra.Command, v fmt.Stringer) error {
	isJSON, err := isJSONOutputRequested(cmd)
	if err != nil {
		return err
	}

	if isJSON {
		jsonBytes, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), v.String())
	return nil
}

func getConfigValue(cmd *cobra.Command, key string, required bool) (string, error) {
	if value, err := cmd.Flags().GetString(key); err == nil && value != "" {
		return value, nil
	}
	if value := viper.GetString(key); value != "" {
		return value, nil
	}
	if required {
		return "", fmt.Errorf("required value for %s not found", key)
	}
	return "", nil
}

func setConfigValue(key, value string) error {
	viper.Set(key, value)
	return viper.WriteConfig()
}

func newClient(cmd *cobra.Command) (*rpc.JSONRPCClient, error) {
	endpoint, err := getConfigValue(cmd, "endpoint", true)
	if err != nil {
		return nil, fmt.Errorf("failed to get endpoint: %w", err)
	}
	return rpc.NewJSONRPCClient(endpoint), nil
}

func getActor(cmd *cobra.Command) (codec.Address, error) {
	actor, err := getConfigValue(cmd, "actor", true)
	if err != nil {
		return codec.EmptyAddress, err
	}
	return codec.ParseAddressBech32(consts.HRP, actor)
}

// parseAssetInfos reads "native:<denom>" and "token:<bech32>" arguments.
func parseAssetInfos(args []string) ([]asset.Info, error) {
	infos := make([]asset.Info, 0, len(args))
	for _, arg := range args {
		kind, value, ok := strings.Cut(arg, ":")
		if !ok || len(value) == 0 {
			return nil, fmt.Errorf("%w: %q", errInvalidAssetInfo, arg)
		}
		switch kind {
		case "native":
			infos = append(infos, asset.Native(value))
		case "token":
			addr, err := codec.ParseAddressBech32(consts.HRP, value)
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %w", errInvalidAssetInfo, arg, err)
			}
			infos = append(infos, asset.Token(addr))
		default:
			return nil, fmt.Errorf("%w: %q", errInvalidAssetInfo, arg)
		}
	}
	return infos, nil
}
