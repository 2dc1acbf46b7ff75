package router

import (
	"testing"

	"github.com/vango-dev/hashroute/pkg/query"
	"github.com/vango-dev/hashroute/pkg/vdom"
)

func click(t *testing.T, node *vdom.VNode) {
	t.Helper()
	fn, ok := node.Handler("click").(func())
	if !ok {
		t.Fatalf("node has no click handler: %v", node.Props)
	}
	fn()
}

func TestLinkAttributes(t *testing.T) {
	hs := newHarness(t, "#/", testRoutes())

	link := hs.r.Link("About", "/about", query.MapOf(map[string]any{"from": "home"}))

	if link.Tag != "a" {
		t.Errorf("Tag = %q, want a", link.Tag)
	}
	if got := link.Props["href"]; got != "#/about?from=home" {
		t.Errorf("href = %v, want #/about?from=home", got)
	}
	if got := link.Props["data-link"]; got != "true" {
		t.Errorf("data-link = %v, want true", got)
	}
	if _, ok := link.Props["aria-current"]; ok {
		t.Error("aria-current set on a link to another page")
	}
	if got := link.TextContent(); got != "About" {
		t.Errorf("text = %q, want About", got)
	}
}

func TestLinkMarksCurrentPage(t *testing.T) {
	hs := newHarness(t, "#/about", testRoutes())

	link := hs.r.Link("About", "/about", nil, vdom.Class("nav"))
	if got := link.Props["aria-current"]; got != "page" {
		t.Errorf("aria-current = %v, want page", got)
	}
	if got := link.Props["class"]; got != "nav" {
		t.Errorf("class = %v, want nav", got)
	}
}

func TestLinkClickPushes(t *testing.T) {
	hs := newHarness(t, "#/", testRoutes())

	click(t, hs.r.Link("About", "/about", query.MapOf(map[string]any{"from": "home"})))

	if got := hs.location(t); got != "/about" {
		t.Errorf("location = %q, want /about", got)
	}
	if got := hs.r.Params().Lookup("from"); !got.Equal(query.Str("home")) {
		t.Errorf("params[from] = %v, want \"home\"", got)
	}
	if hs.h.Len() != 2 {
		t.Errorf("history length = %d, want 2", hs.h.Len())
	}
}

func TestLinkClickSameRouteReplacesAndRoutes(t *testing.T) {
	hs := newHarness(t, "#/about", testRoutes())

	click(t, hs.r.Link("Team", "/about", query.MapOf(map[string]any{"tab": "team"})))

	if got := hs.r.Params().Lookup("tab"); !got.Equal(query.Str("team")) {
		t.Errorf("params[tab] = %v, want \"team\"", got)
	}
	if hs.h.Len() != 1 {
		t.Errorf("history length = %d, want 1", hs.h.Len())
	}
	if got := hs.h.Token(); got != "#/about?tab=team" {
		t.Errorf("token = %q, want #/about?tab=team", got)
	}
	if hs.updates != 2 {
		t.Errorf("updates = %d, want 2", hs.updates)
	}
}

func TestFollowReturnsMode(t *testing.T) {
	hs := newHarness(t, "#/x", testRoutes())

	if mode := hs.r.Follow("/x", nil); mode != ModeReplace {
		t.Errorf("Follow(/x) = %v, want replace", mode)
	}
	if hs.updates != 1 {
		t.Errorf("updates = %d, want 1 for an unchanged URI", hs.updates)
	}
	if mode := hs.r.Follow("/y", nil); mode != ModePush {
		t.Errorf("Follow(/y) = %v, want push", mode)
	}
}

func TestRender(t *testing.T) {
	hs := newHarness(t, "#/about?name=ada", testRoutes())

	greet := func(params *query.Map) *vdom.VNode {
		return vdom.P("hello ", params.Lookup("name").Text())
	}
	hs.r.matched = append(hs.r.matched, greet)

	out := hs.r.Render()
	if out.Tag != "div" {
		t.Errorf("Tag = %q, want div", out.Tag)
	}
	if got := out.Props["class"]; got != "router-view" {
		t.Errorf("class = %v, want router-view", got)
	}
	if len(out.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(out.Children))
	}
	if got := out.Children[0].TextContent(); got != "about" {
		t.Errorf("first child = %q, want about", got)
	}
	if got := out.Children[1].TextContent(); got != "hello ada" {
		t.Errorf("second child = %q, want hello ada", got)
	}
}

func TestRenderBeforeMount(t *testing.T) {
	r := New(nil, Config{})
	out := r.Render()
	if len(out.Children) != 0 {
		t.Errorf("children = %d, want 0", len(out.Children))
	}
}
