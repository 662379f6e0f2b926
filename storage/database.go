// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"io"
	"os"
	"path/filepath"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/utils/perms"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/pairfactory/pebble"
	"github.com/ava-labs/pairfactory/state"
)

// DB is a [state.Database] that can be closed.
type DB interface {
	state.Database
	io.Closer
}

// New opens the registry store under [dataDir]/[namespace]. An empty
// [dataDir] keeps everything in memory.
func New(cfg pebble.Config, dataDir string, namespace string) (DB, prometheus.Gatherer, error) {
	if len(dataDir) == 0 {
		return memdb.New(), prometheus.NewRegistry(), nil
	}
	path := filepath.Join(dataDir, namespace)
	if err := os.MkdirAll(path, perms.ReadWriteExecute); err != nil {
		return nil, nil, err
	}
	db, registry, err := pebble.New(path, cfg)
	if err != nil {
		return nil, nil, err
	}
	return db, registry, nil
}
