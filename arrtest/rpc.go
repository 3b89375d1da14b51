package arrtest

import (
	"context"
	"fmt"
	"sync"
)

// RPCCall is one recorded JSON-RPC invocation.
type RPCCall struct {
	Method string
	Params []any
}

// FakeRPC stands in for a JSON-RPC transport such as the NZBGet client. It
// answers with the response configured for the method, or null.
type FakeRPC struct {
	mu        sync.Mutex
	responses map[string]any
	errs      map[string]error
	calls     []RPCCall
	nextID    int
}

func NewFakeRPC() *FakeRPC {
	return &FakeRPC{
		responses: make(map[string]any),
		errs:      make(map[string]error),
	}
}

func (f *FakeRPC) SetResponse(method string, resp any) *FakeRPC {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[method] = resp
	return f
}

func (f *FakeRPC) SetError(method string, err error) *FakeRPC {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[method] = err
	return f
}

// Call records the invocation and decodes the configured response into out.
func (f *FakeRPC) Call(ctx context.Context, method string, params []any, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	f.nextID++
	f.calls = append(f.calls, RPCCall{Method: method, Params: append([]any(nil), params...)})
	resp := f.responses[method]
	err := f.errs[method]
	f.mu.Unlock()

	if err != nil {
		return fmt.Errorf("rpc %s: %w", method, err)
	}
	return decode(resp, out)
}

// RequestID is the number of calls made so far.
func (f *FakeRPC) RequestID() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.nextID
}

func (f *FakeRPC) Calls() []RPCCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]RPCCall, len(f.calls))
	copy(out, f.calls)
	return out
}
