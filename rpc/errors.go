// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ava-labs/pairfactory/actions"
	"github.com/ava-labs/pairfactory/storage"
)

var ErrSubmitDisabled = errors.New("submit disabled")

// knownErrors are recovered from the message of a JSON-RPC error since the
// wire loses error identity.
var knownErrors = []error{
	storage.ErrPairNotFound,
	storage.ErrPairTypeNotFound,
	storage.ErrConfigNotFound,
	actions.ErrUnauthorized,
	actions.ErrPairAlreadyExists,
	actions.ErrPairTypeDisabled,
	actions.ErrOwnershipProposalNotFound,
	ErrSubmitDisabled,
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range knownErrors {
		if strings.Contains(err.Error(), known.Error()) {
			return fmt.Errorf("%w: %w", known, err)
		}
	}
	return err
}
