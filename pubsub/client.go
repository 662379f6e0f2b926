// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/ava-labs/pairfactory/chain"
)

// Client receives the results streamed by a [Server].
type Client struct {
	conn *websocket.Conn
}

// NewClient dials [uri]. An http(s) scheme is rewritten to ws(s).
func NewClient(ctx context.Context, uri string) (*Client, error) {
	uri = strings.Replace(uri, "http", "ws", 1)
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, uri, nil)
	if err != nil {
		return nil, err
	}
	_ = resp.Body.Close()
	return &Client{conn: conn}, nil
}

// Listen blocks until the next result arrives or the connection closes.
func (c *Client) Listen() (*chain.Result, error) {
	_, msg, err := c.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	var result chain.Result
	if err := json.Unmarshal(msg, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Close() error {
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return c.conn.Close()
}
