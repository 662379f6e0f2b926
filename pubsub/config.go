// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import "time"

type ServerConfig struct {
	// Size of the ws read buffer
	ReadBufferSize int `json:"readBufferSize"`
	// Size of the ws write buffer
	WriteBufferSize int `json:"writeBufferSize"`
	// Maximum number of pending messages to send to a peer.
	MaxPendingMessages int `json:"maxPendingMessages"`
	// Maximum message size in bytes allowed from peer.
	MaxReadMessageSize int `json:"maxReadMessageSize"`
	// Time allowed to write a message to the peer.
	WriteWait time.Duration `json:"writeWait"`
	// Time allowed to read the next pong message from the peer.
	PongWait time.Duration `json:"pongWait"`
	// Send pings to peer with this period. Must be less than pongWait.
	PingPeriod time.Duration `json:"pingPeriod"`
}

func NewDefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		ReadBufferSize:     readBufferSize,
		WriteBufferSize:    writeBufferSize,
		MaxPendingMessages: maxPendingMessages,
		MaxReadMessageSize: maxReadMessageSize,
		WriteWait:          writeWait,
		PongWait:           pongWait,
		PingPeriod:         pingPeriod,
	}
}
