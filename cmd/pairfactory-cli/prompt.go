// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"errors"
	"strings"

	"github.com/manifoldco/promptui"
)

var (
	errInputEmpty    = errors.New("input is empty")
	errInvalidChoice = errors.New("invalid choice")
	errAborted       = errors.New("aborted")
)

func validateContinue(input string) error {
	if len(input) == 0 {
		return errInputEmpty
	}
	lower := strings.ToLower(input)
	if lower == "y" || lower == "n" {
		return nil
	}
	return errInvalidChoice
}

// confirm asks before anything is submitted.
func confirm(label string) error {
	promptText := promptui.Prompt{
		Label:    label + " (y/n)",
		Validate: validateContinue,
	}
	rawContinue, err := promptText.Run()
	if err != nil {
		return err
	}
	if strings.ToLower(rawContinue) == "n" {
		return errAborted
	}
	return nil
}
