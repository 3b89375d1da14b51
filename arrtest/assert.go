package arrtest

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/s0up4200/arrcore/endpoint"
)

func (f *FakeClient) count(match func(Call) bool) int {
	n := 0
	for _, c := range f.Calls() {
		if match(c) {
			n++
		}
	}
	return n
}

func onTemplate(ep endpoint.Endpoint) func(Call) bool {
	return func(c Call) bool { return c.Template == ep.Template() }
}

func (f *FakeClient) AssertCalled(t testing.TB, ep endpoint.Endpoint) bool {
	t.Helper()
	return assert.Positive(t, f.count(onTemplate(ep)),
		"expected endpoint [%s] to be called, but it was not", ep.Template())
}

func (f *FakeClient) AssertNotCalled(t testing.TB, ep endpoint.Endpoint) bool {
	t.Helper()
	return assert.Zero(t, f.count(onTemplate(ep)),
		"expected endpoint [%s] not to be called, but it was", ep.Template())
}

// AssertCalledWith passes when some call to ep carried exactly params,
// including the ones consumed by path placeholders. Values are compared by
// their JSON form, so 5 and int64(5) are equal.
func (f *FakeClient) AssertCalledWith(t testing.TB, ep endpoint.Endpoint, params endpoint.Params) bool {
	t.Helper()
	want := canonical(params)
	found := f.count(func(c Call) bool {
		return c.Template == ep.Template() && canonical(c.Params) == want
	}) > 0
	return assert.True(t, found,
		"expected endpoint [%s] to be called with params %s, calls: %s", ep.Template(), want, f.describe())
}

func (f *FakeClient) AssertCalledWithMethod(t testing.TB, method string, ep endpoint.Endpoint) bool {
	t.Helper()
	found := f.count(func(c Call) bool {
		return c.Template == ep.Template() && strings.EqualFold(c.Method, method)
	}) > 0
	return assert.True(t, found,
		"expected endpoint [%s] to be called with method [%s], but it was not", ep.Template(), strings.ToUpper(method))
}

func (f *FakeClient) AssertCalledTimes(t testing.TB, ep endpoint.Endpoint, times int) bool {
	t.Helper()
	n := f.count(onTemplate(ep))
	return assert.Equal(t, times, n,
		"expected endpoint [%s] to be called %d times, but it was called %d times", ep.Template(), times, n)
}

func (f *FakeClient) AssertNothingCalled(t testing.TB) bool {
	t.Helper()
	return assert.Empty(t, f.Calls(), "expected no endpoints to be called, but some were")
}

func (f *FakeClient) describe() string {
	var sb strings.Builder
	for _, c := range f.Calls() {
		sb.WriteString("\n  ")
		sb.WriteString(c.Method)
		sb.WriteString(" ")
		sb.WriteString(c.Path)
		sb.WriteString(" ")
		sb.WriteString(canonical(c.Params))
	}
	return sb.String()
}

func (f *FakeRPC) count(method string) int {
	n := 0
	for _, c := range f.Calls() {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (f *FakeRPC) AssertCalled(t testing.TB, method string) bool {
	t.Helper()
	return assert.Positive(t, f.count(method), "expected method [%s] to be called, but it was not", method)
}

func (f *FakeRPC) AssertNotCalled(t testing.TB, method string) bool {
	t.Helper()
	return assert.Zero(t, f.count(method), "expected method [%s] not to be called, but it was", method)
}

func (f *FakeRPC) AssertCalledWith(t testing.TB, method string, params []any) bool {
	t.Helper()
	want := canonical(params)
	for _, c := range f.Calls() {
		if c.Method == method && canonical(c.Params) == want {
			return true
		}
	}
	return assert.Fail(t, "unexpected params",
		"expected method [%s] to be called with params %s, but it was not", method, want)
}

func (f *FakeRPC) AssertCalledTimes(t testing.TB, method string, times int) bool {
	t.Helper()
	n := f.count(method)
	return assert.Equal(t, times, n,
		"expected method [%s] to be called %d times, but it was called %d times", method, times, n)
}

func (f *FakeRPC) AssertNothingCalled(t testing.TB) bool {
	t.Helper()
	return assert.Empty(t, f.Calls(), "expected no methods to be called, but some were")
}

// canonical renders v as JSON. Map keys are sorted by encoding/json, and an
// empty params map equals a nil one.
func canonical(v any) string {
	switch p := v.(type) {
	case endpoint.Params:
		if len(p) == 0 {
			return "{}"
		}
	case []any:
		if len(p) == 0 {
			return "[]"
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "<unencodable>"
	}
	return string(b)
}
