package apiclient

import (
	"strconv"

	"github.com/monitoring-agents/zbxingest/internal/ir"
	"github.com/monitoring-agents/zbxingest/internal/jsonreader"
	"github.com/monitoring-agents/zbxingest/internal/parse"
	"github.com/monitoring-agents/zbxingest/internal/rpc"
)

// Client owns one upstream session: a URI, an auth token acquired by
// OpenSession, and the transport used for every call after that. It is
// not safe for concurrent use; a poller worker owns one Client, reused
// across cycles.
type Client struct {
	URI       string
	Transport *rpc.Transport

	authToken string
}

// New returns a Client bound to uri, using transport for every call.
func New(uri string, transport *rpc.Transport) *Client {
	return &Client{URI: uri, Transport: transport}
}

// OpenSession authenticates and stores the resulting auth token for use
// by every subsequent query method on this Client. Returns a
// *rpc.TransportError or *rpc.AuthError on failure.
func (c *Client) OpenSession(user, password string) error {
	token, err := c.Transport.Login(c.URI, user, password)
	if err != nil {
		return err
	}
	c.authToken = token
	return nil
}

func (c *Client) fetch(method string, params any, parseEach func(r *jsonreader.Reader, i int) (*ir.Group, error)) (*ir.Table, error) {
	body, err := c.Transport.Call(c.URI, method, params, c.authToken)
	if err != nil {
		return nil, err
	}
	if protoErr := rpc.DecodeProtocolError(body); protoErr != nil {
		return nil, protoErr
	}

	r, err := jsonreader.New(body)
	if err != nil {
		return nil, &ParseError{Method: method, Err: err}
	}
	if err := r.EnterObject("result"); err != nil {
		return nil, &ParseError{Method: method, Err: err}
	}
	defer r.LeaveObject()

	table := ir.NewTable()
	n := r.CountElements()
	for i := 0; i < n; i++ {
		g, err := parseEach(r, i)
		if err != nil {
			return nil, &ParseError{Method: method, Err: err}
		}
		table.Append(g)
	}
	return table, nil
}

// GetTriggers fetches every trigger changed at or after since (unix
// seconds), deriving each row's hostid from its nested hosts array. hook
// is forwarded to the trigger parser's functions-cache extension seam
// (see parse.TriggerHook); callers pass nil until that pass exists.
func (c *Client) GetTriggers(since int, hook parse.TriggerHook) (*ir.Table, error) {
	params := map[string]any{
		"output":          "extend",
		"lastChangeSince": since,
		"selectHosts":     "refer",
	}
	return c.fetch("trigger.get", params, func(r *jsonreader.Reader, i int) (*ir.Group, error) {
		return parse.Trigger(r, i, hook)
	})
}

// GetItems fetches every item, deriving each row's applicationid from its
// nested applications array.
func (c *Client) GetItems() (*ir.Table, error) {
	params := map[string]any{
		"output":             "extend",
		"selectApplications": "refer",
	}
	return c.fetch("item.get", params, parse.Item)
}

// GetHosts fetches every host.
func (c *Client) GetHosts() (*ir.Table, error) {
	params := map[string]any{"output": "extend"}
	return c.fetch("host.get", params, parse.Host)
}

// GetApplications fetches every application.
func (c *Client) GetApplications() (*ir.Table, error) {
	params := map[string]any{"output": "extend"}
	return c.fetch("application.get", params, parse.Application)
}

// GetEvents fetches every event with eventid >= fromID.
func (c *Client) GetEvents(fromID uint64) (*ir.Table, error) {
	params := map[string]any{
		"output":       "extend",
		"eventid_from": strconv.FormatUint(fromID, 10),
	}
	return c.fetch("event.get", params, parse.Event)
}
