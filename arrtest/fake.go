// Package arrtest provides test doubles for code built on arrcore: a fake
// REST requester, a fake JSON-RPC caller, call assertions and payload
// factories shaped like real *arr responses.
package arrtest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/s0up4200/arrcore/endpoint"
)

// Call is one recorded request.
type Call struct {
	Method   string
	Template string
	Path     string
	Params   endpoint.Params
}

// ResponseFunc computes a response from the call being made.
type ResponseFunc func(call Call) (any, error)

// FakeClient implements client.Requester. Responses are looked up by
// "METHOD template" first and then by template; unconfigured endpoints
// answer with the endpoint's default response.
type FakeClient struct {
	mu        sync.Mutex
	responses map[string]any
	errs      map[string]error
	calls     []Call
}

func NewFakeClient() *FakeClient {
	return &FakeClient{
		responses: make(map[string]any),
		errs:      make(map[string]error),
	}
}

// SetResponse configures the payload for every method on ep. resp may be a
// ResponseFunc.
func (f *FakeClient) SetResponse(ep endpoint.Endpoint, resp any) *FakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[ep.Template()] = resp
	return f
}

// SetResponseFor configures the payload for one method on ep.
func (f *FakeClient) SetResponseFor(method string, ep endpoint.Endpoint, resp any) *FakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[methodKey(method, ep.Template())] = resp
	return f
}

// SetError makes every call to ep fail with err.
func (f *FakeClient) SetError(ep endpoint.Endpoint, err error) *FakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[ep.Template()] = err
	return f
}

// Calls returns a copy of the call log.
func (f *FakeClient) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// Reset clears the call log but keeps configured responses.
func (f *FakeClient) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *FakeClient) Get(ctx context.Context, ep endpoint.Endpoint, params endpoint.Params, out any) error {
	return f.do(ctx, http.MethodGet, ep, params, out)
}

func (f *FakeClient) Post(ctx context.Context, ep endpoint.Endpoint, params endpoint.Params, out any) error {
	return f.do(ctx, http.MethodPost, ep, params, out)
}

func (f *FakeClient) Put(ctx context.Context, ep endpoint.Endpoint, params endpoint.Params, out any) error {
	return f.do(ctx, http.MethodPut, ep, params, out)
}

func (f *FakeClient) Delete(ctx context.Context, ep endpoint.Endpoint, params endpoint.Params, out any) error {
	return f.do(ctx, http.MethodDelete, ep, params, out)
}

func (f *FakeClient) do(ctx context.Context, method string, ep endpoint.Endpoint, params endpoint.Params, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, _ := endpoint.Resolve(ep, params)
	call := Call{
		Method:   method,
		Template: ep.Template(),
		Path:     path,
		Params:   endpoint.Params{}.Merge(params),
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	err := f.errs[call.Template]
	resp, configured := f.responses[methodKey(method, call.Template)]
	if !configured {
		resp, configured = f.responses[call.Template]
	}
	f.mu.Unlock()

	if err != nil {
		return err
	}

	if fn, ok := resp.(ResponseFunc); ok {
		if resp, err = fn(call); err != nil {
			return err
		}
	}

	if !configured {
		// Defaults are generic shapes; one that does not fit out is
		// treated as an empty answer.
		_ = decode(ep.DefaultResponse(), out)
		return nil
	}
	return decode(resp, out)
}

func decode(resp, out any) error {
	if resp == nil || out == nil {
		return nil
	}
	b, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("arrtest: encode response: %w", err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("arrtest: decode response into %T: %w", out, err)
	}
	return nil
}

func methodKey(method, template string) string {
	return strings.ToUpper(method) + " " + template
}
