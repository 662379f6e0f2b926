// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

// Attribute is a single key/value pair of an [Event].
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Event records one observable mutation.
type Event struct {
	Action     string      `json:"action"`
	Attributes []Attribute `json:"attributes"`
}

func NewEvent(action string) *Event {
	return &Event{Action: action}
}

func (e *Event) Add(key, value string) *Event {
	e.Attributes = append(e.Attributes, Attribute{Key: key, Value: value})
	return e
}

// Get returns the first value stored under [key].
func (e *Event) Get(key string) (string, bool) {
	for _, a := range e.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Response is the output of an [Action] or a [ReplyHandler].
type Response struct {
	Messages []*SubMsg
	Events   []*Event
}

func NewResponse() *Response {
	return &Response{}
}

func (r *Response) AddMessage(m *SubMsg) *Response {
	r.Messages = append(r.Messages, m)
	return r
}

func (r *Response) AddEvent(e *Event) *Response {
	r.Events = append(r.Events, e)
	return r
}

// Result summarizes a committed or discarded request.
type Result struct {
	Success   bool     `json:"success"`
	Error     string   `json:"error,omitempty"`
	Events    []*Event `json:"events"`
	Calls     int      `json:"calls"`
	Timestamp int64    `json:"timestamp"`
}
