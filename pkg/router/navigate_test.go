package router

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/hashroute/pkg/history"
	"github.com/vango-dev/hashroute/pkg/query"
)

func TestNavigateReplaceVsPush(t *testing.T) {
	hs := newHarness(t, "#/", testRoutes())

	if mode := hs.r.Navigate("/x", query.NewMap()); mode != ModePush {
		t.Errorf("Navigate(/x) = %v, want push", mode)
	}
	if mode := hs.r.Navigate("/x", query.MapOf(map[string]any{"a": 1})); mode != ModeReplace {
		t.Errorf("Navigate(/x, a=1) = %v, want replace", mode)
	}
	if diff := cmp.Diff([]string{"#/", "#/x?a=1"}, hs.h.Entries()); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}

	if mode := hs.r.Navigate("/y", nil); mode != ModePush {
		t.Errorf("Navigate(/y) = %v, want push", mode)
	}
	if diff := cmp.Diff([]string{"#/", "#/x?a=1", "#/y"}, hs.h.Entries()); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	if got := hs.location(t); got != "/y" {
		t.Errorf("location = %q, want /y", got)
	}
}

func TestNavigateReplaceDoesNotRoute(t *testing.T) {
	hs := newHarness(t, "#/x", testRoutes())

	hs.r.Navigate("/x", query.MapOf(map[string]any{"a": "1"}))

	if hs.updates != 1 {
		t.Errorf("updates = %d, want 1", hs.updates)
	}
	if hs.r.Params().Len() != 0 {
		t.Errorf("params = %v, want empty until the token is routed", hs.r.Params())
	}
}

func TestNavigatePushRoutesOnce(t *testing.T) {
	hs := newHarness(t, "#/", testRoutes())

	hs.r.Navigate("/about", query.MapOf(map[string]any{"from": "home"}))

	if hs.updates != 2 {
		t.Errorf("updates = %d, want 2", hs.updates)
	}
	if got := hs.h.Token(); got != "#/about?from=home" {
		t.Errorf("token = %q, want #/about?from=home", got)
	}
	if hs.h.Len() != 2 {
		t.Errorf("history length = %d, want 2", hs.h.Len())
	}
}

func TestHref(t *testing.T) {
	r := New(history.NewMemory(""), Config{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})

	tests := []struct {
		name   string
		route  string
		params *query.Map
		want   string
	}{
		{"nil params", "/x", nil, "#/x"},
		{"empty params", "/x", query.NewMap(), "#/x"},
		{"flat", "/x", query.MapOf(map[string]any{"a": "1", "b": 2}), "#/x?a=1&b=2"},
		{"falsy dropped", "/x", query.MapOf(map[string]any{"a": nil, "b": "1", "c": false}), "#/x?b=1"},
		{"only falsy", "/x", query.MapOf(map[string]any{"a": nil}), "#/x"},
		{"empty string kept", "/x", query.MapOf(map[string]any{"a": ""}), "#/x?a="},
		{"list", "/x", query.MapOf(map[string]any{"t": []string{"a", "b"}}), "#/x?t[]=a&t[]=b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Href(tt.route, tt.params); got != tt.want {
				t.Errorf("Href() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFlatParamsRoundTrip(t *testing.T) {
	params := query.MapOf(map[string]any{"page": 3, "q": "go", "sort": "name"})
	h := history.NewMemory("#/")
	r := New(h, Config{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	r.Mount(testRoutes())
	defer r.Dispose()

	r.Navigate("/x", params)

	if !r.Params().Equal(params) {
		t.Errorf("params = %v, want %v", r.Params(), params)
	}
}

func TestNavigationModeString(t *testing.T) {
	if ModePush.String() != "push" {
		t.Errorf("ModePush.String() = %q", ModePush.String())
	}
	if ModeReplace.String() != "replace" {
		t.Errorf("ModeReplace.String() = %q", ModeReplace.String())
	}
}

func TestNavigationRequestURI(t *testing.T) {
	req := NavigationRequest{Route: "/a", Params: query.MapOf(map[string]any{"k": "v", "z": nil})}
	if got := req.URI(); got != "/a?k=v" {
		t.Errorf("URI() = %q, want /a?k=v", got)
	}
	if got := (NavigationRequest{Route: "/a"}).URI(); got != "/a" {
		t.Errorf("URI() = %q, want /a", got)
	}
}
