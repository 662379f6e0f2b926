// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ava-labs/pairfactory/chain"
	"github.com/ava-labs/pairfactory/event"
)

var (
	_ http.Handler                      = (*Server)(nil)
	_ event.Subscription[*chain.Result] = (*Server)(nil)
)

// Server streams every committed result to its websocket subscribers as
// JSON text messages.
//
// Connect to the server using websocket.DefaultDialer.Dial() or [NewClient].
type Server struct {
	log      logging.Logger
	config   *ServerConfig
	upgrader websocket.Upgrader

	lock   sync.RWMutex
	conns  *Connections
	closed bool
}

func New(log logging.Logger, config *ServerConfig) *Server {
	return &Server{
		log:    log,
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		conns: NewConnections(),
	}
}

// ServeHTTP upgrades the request and starts the connection's pumps.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.lock.RLock()
	closed := s.closed
	s.lock.RUnlock()
	if closed {
		http.Error(w, ErrClosed.Error(), http.StatusServiceUnavailable)
		return
	}

	wsConn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("failed to upgrade",
			zap.Error(err),
		)
		return
	}
	s.addConnection(&Connection{
		s:    s,
		conn: wsConn,
		send: make(chan []byte, s.config.MaxPendingMessages),
	})
}

// Accept publishes [result] to every subscriber.
func (s *Server) Accept(_ context.Context, result *chain.Result) error {
	msg, err := json.Marshal(result)
	if err != nil {
		return err
	}
	s.Publish(msg)
	return nil
}

// Publish sends [msg] to every connection.
func (s *Server) Publish(msg []byte) {
	for _, conn := range s.conns.Conns() {
		if !conn.Send(msg) {
			s.log.Verbo(
				"dropping message to subscribed connection due to too many pending messages",
			)
		}
	}
}

// Connections returns the number of active subscribers.
func (s *Server) Connections() int {
	return s.conns.Len()
}

// Close disconnects every subscriber and rejects new ones.
func (s *Server) Close() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.closed {
		return ErrClosed
	}
	s.closed = true
	for _, conn := range s.conns.Conns() {
		conn.deactivate()
	}
	return nil
}

func (s *Server) addConnection(conn *Connection) {
	s.conns.Add(conn)

	go conn.writePump()
	go conn.readPump()
}

func (s *Server) removeConnection(conn *Connection) {
	s.conns.Remove(conn)
}
