// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ava-labs/pairfactory/config"
	"github.com/ava-labs/pairfactory/consts"
	"github.com/ava-labs/pairfactory/genesis"
)

type flags struct {
	configPath  string
	genesisPath string
}

func NewRootCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   consts.Name,
		Short: "Pair factory registry daemon",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cobra.EnablePrefixMatching = true
	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.DisableAutoGenTag = true
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.PersistentFlags().StringVar(&f.configPath, "config", "", "path to the config file")
	cmd.PersistentFlags().StringVar(&f.genesisPath, "genesis", "", "path to the genesis file")

	cmd.AddCommand(
		newRunCmd(f),
		newSimulateCmd(f),
		newGenesisCmd(),
	)
	return cmd
}

func (f *flags) load() (*config.Config, *genesis.Genesis, error) {
	cfg, err := loadConfig(f.configPath)
	if err != nil {
		return nil, nil, err
	}
	g, err := loadGenesis(f.genesisPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, g, nil
}

func loadConfig(path string) (*config.Config, error) {
	if len(path) == 0 {
		return config.New(nil)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return config.New(b)
}

func loadGenesis(path string) (*genesis.Genesis, error) {
	if len(path) == 0 {
		return genesis.Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return genesis.New(b)
}
