package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testState struct {
	mu      sync.Mutex
	counter int
}

func echoHandler(body string) Handler[*testState] {
	return func(_ context.Context, _ *http.Request, _ *testState) (*Response, error) {
		return OK(body), nil
	}
}

func TestNewWithState(t *testing.T) {
	t.Run("creates router holding the given state", func(t *testing.T) {
		state := &testState{}
		r := NewWithState(state)
		require.NotNil(t, r)
		assert.Same(t, state, r.state)
	})
}

func TestRouterHandle(t *testing.T) {
	t.Run("appends routes in registration order", func(t *testing.T) {
		r := NewWithState(&testState{}).
			Get(MustPath("/a"), echoHandler("a")).
			Post(MustPath("/b"), echoHandler("b"))

		routes := r.Routes()
		require.Len(t, routes, 2)
		assert.Equal(t, RouteInfo{Method: http.MethodGet, Template: "/a", Params: []Param{}}, routes[0])
		assert.Equal(t, RouteInfo{Method: http.MethodPost, Template: "/b", Params: []Param{}}, routes[1])
	})

	t.Run("uppercases the method", func(t *testing.T) {
		r := NewWithState(&testState{}).Handle("get", MustPath("/a"), echoHandler("a"))
		assert.Equal(t, http.MethodGet, r.Routes()[0].Method)
	})

	t.Run("accepts duplicate registrations", func(t *testing.T) {
		r := NewWithState(&testState{}).
			Get(MustPath("/a"), echoHandler("first")).
			Get(MustPath("/a"), echoHandler("second"))
		assert.Len(t, r.Routes(), 2)
	})

	t.Run("panics on nil pattern", func(t *testing.T) {
		assert.Panics(t, func() {
			NewWithState(&testState{}).Handle(http.MethodGet, nil, echoHandler("x"))
		})
	})

	t.Run("panics on nil handler", func(t *testing.T) {
		assert.Panics(t, func() {
			NewWithState(&testState{}).Handle(http.MethodGet, MustPath("/a"), nil)
		})
	})
}

func TestRouterMethodWrappers(t *testing.T) {
	wrappers := map[string]func(r *Router[*testState], p *Pattern, h Handler[*testState]) *Router[*testState]{
		http.MethodHead:    (*Router[*testState]).Head,
		http.MethodGet:     (*Router[*testState]).Get,
		http.MethodPost:    (*Router[*testState]).Post,
		http.MethodPut:     (*Router[*testState]).Put,
		http.MethodPatch:   (*Router[*testState]).Patch,
		http.MethodDelete:  (*Router[*testState]).Delete,
		http.MethodOptions: (*Router[*testState]).Options,
		http.MethodConnect: (*Router[*testState]).Connect,
		http.MethodTrace:   (*Router[*testState]).Trace,
	}

	for method, register := range wrappers {
		t.Run(method, func(t *testing.T) {
			r := register(NewWithState(&testState{}), MustPath("/x"), echoHandler("x"))

			routes := r.Routes()
			require.Len(t, routes, 1)
			assert.Equal(t, method, routes[0].Method)

			req := httptest.NewRequest(method, "/x", nil)
			resp, err := r.Run(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}

func TestRouterRun(t *testing.T) {
	t.Run("dispatches to matched handler", func(t *testing.T) {
		r := NewWithState(&testState{}).Get(MustPath("/hello"), echoHandler("hello"))

		resp, err := r.Run(context.Background(), httptest.NewRequest(http.MethodGet, "/hello", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "hello", string(resp.Body))
	})

	t.Run("returns 404 for unmatched path", func(t *testing.T) {
		r := NewWithState(&testState{}).Get(MustPath("/hello"), echoHandler("hello"))

		resp, err := r.Run(context.Background(), httptest.NewRequest(http.MethodGet, "/goodbye", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "page not found", string(resp.Body))
	})

	t.Run("returns 404 for method mismatch", func(t *testing.T) {
		r := NewWithState(&testState{}).Get(MustPath("/hello"), echoHandler("hello"))

		resp, err := r.Run(context.Background(), httptest.NewRequest(http.MethodPost, "/hello", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("returns 404 on empty route table", func(t *testing.T) {
		r := NewWithState(&testState{})

		resp, err := r.Run(context.Background(), httptest.NewRequest(http.MethodGet, "/anything", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("first match wins across overlapping patterns", func(t *testing.T) {
		r := NewWithState(&testState{}).
			Get(MustPath("/users/:id"), echoHandler("param")).
			Get(MustPath("/users/me"), echoHandler("literal"))

		resp, err := r.Run(context.Background(), httptest.NewRequest(http.MethodGet, "/users/me", nil))
		require.NoError(t, err)
		assert.Equal(t, "param", string(resp.Body))
	})

	t.Run("only the first of identical routes is reachable", func(t *testing.T) {
		var first, second int
		r := NewWithState(&testState{}).
			Get(MustPath("/a"), func(_ context.Context, _ *http.Request, _ *testState) (*Response, error) {
				first++
				return OK("first"), nil
			}).
			Get(MustPath("/a"), func(_ context.Context, _ *http.Request, _ *testState) (*Response, error) {
				second++
				return OK("second"), nil
			})

		for i := 0; i < 3; i++ {
			resp, err := r.Run(context.Background(), httptest.NewRequest(http.MethodGet, "/a", nil))
			require.NoError(t, err)
			assert.Equal(t, "first", string(resp.Body))
		}
		assert.Equal(t, 3, first)
		assert.Zero(t, second)
	})

	t.Run("method filters before pattern", func(t *testing.T) {
		r := NewWithState(&testState{}).
			Post(MustPath("/users/:id"), echoHandler("post")).
			Get(MustPath("/users/:id"), echoHandler("get"))

		resp, err := r.Run(context.Background(), httptest.NewRequest(http.MethodGet, "/users/42", nil))
		require.NoError(t, err)
		assert.Equal(t, "get", string(resp.Body))
	})

	t.Run("handler sees captured parameters", func(t *testing.T) {
		r := NewWithState(&testState{}).
			Get(MustPath("/users/:id"), func(_ context.Context, req *http.Request, _ *testState) (*Response, error) {
				id, ok := VarGet(req, "id")
				require.True(t, ok)
				return OK(id), nil
			})

		resp, err := r.Run(context.Background(), httptest.NewRequest(http.MethodGet, "/users/42", nil))
		require.NoError(t, err)
		assert.Equal(t, "42", string(resp.Body))
	})

	t.Run("handler error propagates verbatim", func(t *testing.T) {
		boom := errors.New("boom")
		r := NewWithState(&testState{}).
			Get(MustPath("/fail"), func(_ context.Context, _ *http.Request, _ *testState) (*Response, error) {
				return nil, boom
			}).
			Get(MustPath("/fail"), echoHandler("fallback"))

		resp, err := r.Run(context.Background(), httptest.NewRequest(http.MethodGet, "/fail", nil))
		assert.Nil(t, resp)
		assert.Equal(t, boom, err)
	})

	t.Run("nil request fails with ErrNoURL", func(t *testing.T) {
		r := NewWithState(&testState{})
		_, err := r.Run(context.Background(), nil)
		assert.ErrorIs(t, err, ErrNoURL)
	})

	t.Run("request without URL fails with ErrNoURL", func(t *testing.T) {
		r := NewWithState(&testState{}).Get(MustPath("/hello"), echoHandler("hello"))

		req := &http.Request{Method: http.MethodGet}
		_, err := r.Run(context.Background(), req)
		assert.ErrorIs(t, err, ErrNoURL)
	})

	t.Run("context reaches the handler", func(t *testing.T) {
		type ctxKeyT struct{}
		ctx := context.WithValue(context.Background(), ctxKeyT{}, "marker")

		r := NewWithState(&testState{}).
			Get(MustPath("/ctx"), func(ctx context.Context, _ *http.Request, _ *testState) (*Response, error) {
				assert.Equal(t, "marker", ctx.Value(ctxKeyT{}))
				return NoContent(), nil
			})

		_, err := r.Run(ctx, httptest.NewRequest(http.MethodGet, "/ctx", nil))
		require.NoError(t, err)
	})
}

func TestRouterSharedState(t *testing.T) {
	t.Run("every handler observes the same state instance", func(t *testing.T) {
		state := &testState{}
		var seen []*testState

		r := NewWithState(state).
			Get(MustPath("/a"), func(_ context.Context, _ *http.Request, s *testState) (*Response, error) {
				seen = append(seen, s)
				return NoContent(), nil
			})

		for i := 0; i < 2; i++ {
			_, err := r.Run(context.Background(), httptest.NewRequest(http.MethodGet, "/a", nil))
			require.NoError(t, err)
		}

		require.Len(t, seen, 2)
		assert.Same(t, state, seen[0])
		assert.Same(t, state, seen[1])
	})

	t.Run("concurrent handlers share one state", func(t *testing.T) {
		state := &testState{}
		r := NewWithState(state).
			Get(MustPath("/inc"), func(_ context.Context, _ *http.Request, s *testState) (*Response, error) {
				s.mu.Lock()
				s.counter++
				s.mu.Unlock()
				return NoContent(), nil
			})

		const n = 32
		var wg sync.WaitGroup
		wg.Add(n)
		for i := 0; i < n; i++ {
			go func() {
				defer wg.Done()
				_, err := r.Run(context.Background(), httptest.NewRequest(http.MethodGet, "/inc", nil))
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		assert.Equal(t, n, state.counter)
	})
}

func TestRouterRoutes(t *testing.T) {
	t.Run("reports parameters with macros", func(t *testing.T) {
		r := NewWithState(&testState{}).Get(MustPath("/users/:id(uuid)"), echoHandler("u"))

		routes := r.Routes()
		require.Len(t, routes, 1)
		assert.Equal(t, []Param{{Name: "id", Macro: "uuid"}}, routes[0].Params)
	})
}

func BenchmarkRouterRun(b *testing.B) {
	r := NewWithState(&testState{})
	for _, tpl := range []string{"/a", "/b/:id", "/c/:id(int)", "/d/e/f", "/users/:id"} {
		r.Get(MustPath(tpl), echoHandler(tpl))
	}
	req := httptest.NewRequest(http.MethodGet, "/users/42", nil)

	for i := 0; i < b.N; i++ {
		if _, err := r.Run(context.Background(), req); err != nil {
			b.Fatal(err)
		}
	}
}
