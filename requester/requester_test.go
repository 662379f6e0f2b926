// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package requester

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json2"
	"github.com/stretchr/testify/require"
)

type EchoArgs struct {
	Value string `json:"value"`
}

type EchoReply struct {
	Value  string `json:"value"`
	Header string `json:"header"`
	Query  string `json:"query"`
}

type echoService struct{}

func (echoService) Echo(r *http.Request, args *EchoArgs, reply *EchoReply) error {
	reply.Value = args.Value
	reply.Header = r.Header.Get("X-Test")
	reply.Query = r.URL.Query().Get("q")
	return nil
}

func TestSendRequest(t *testing.T) {
	require := require.New(t)

	s := rpc.NewServer()
	s.RegisterCodec(json2.NewCodec(), "application/json")
	require.NoError(s.RegisterService(echoService{}, "test"))
	srv := httptest.NewServer(s)
	defer srv.Close()

	req := New(srv.URL, "test")
	reply := new(EchoReply)
	require.NoError(req.SendRequest(
		context.Background(),
		"Echo",
		&EchoArgs{Value: "pair"},
		reply,
		WithHeader("X-Test", "header"),
		WithQueryParam("q", "query"),
	))
	require.Equal(&EchoReply{Value: "pair", Header: "header", Query: "query"}, reply)

	require.Error(req.SendRequest(context.Background(), "Missing", &EchoArgs{}, new(EchoReply)))
}

func TestSendRequestStatusCode(t *testing.T) {
	require := require.New(t)

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	err := New(srv.URL, "test").SendRequest(context.Background(), "Echo", &EchoArgs{}, new(EchoReply))
	require.ErrorContains(err, "404")
}
