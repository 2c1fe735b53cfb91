package client

import (
	"strings"
	"testing"
)

func TestRequest_ResolveTemplates(t *testing.T) {
	r := newRequest("https://api.example.com").
		withPath("/users/{id}/files/{name}").
		withPathParam("id", closed(42)).
		withPathParam("name", closed("report one.pdf"))

	res, err := r.resolve()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.url != "https://api.example.com/users/42/files/report%20one.pdf" {
		t.Errorf("url = %q", res.url)
	}
}

func TestRequest_URLWithEmbeddedPathAndQuery(t *testing.T) {
	r := newRequest("").withURL("https://api.example.com/v2/search?q=go&limit=5")

	res, err := r.resolve()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.url != "https://api.example.com/v2/search?q=go&limit=5" {
		t.Errorf("url = %q", res.url)
	}
}

func TestRequest_URLReplacesPathAndQuery(t *testing.T) {
	r := newRequest("https://old.example.com/old?stale=1").
		withURL("https://new.example.com/fresh")

	res, err := r.resolve()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.url != "https://new.example.com/fresh" {
		t.Errorf("url = %q", res.url)
	}
}

func TestRequest_InvalidURLDeferred(t *testing.T) {
	r := newRequest("not a url")

	// configuration continues without panicking
	r = r.withPath("/x").setQuery("a", closed(1))

	_, err := r.resolve()
	if !IsConfig(err) {
		t.Errorf("expected config error, got %v", err)
	}
}

func TestRequest_NoURL(t *testing.T) {
	r := newRequest("").withPath("/x")
	_, err := r.resolve()
	if !IsConfig(err) {
		t.Errorf("expected config error, got %v", err)
	}
}

func TestRequest_SetVsAddQuery(t *testing.T) {
	r := newRequest("https://api.example.com").
		addQuery("tag", closed("a")).
		addQuery("tag", closed("b")).
		setQuery("tag", closed("only"))

	res, err := r.resolve()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !strings.HasSuffix(res.url, "?tag=only") {
		t.Errorf("url = %q", res.url)
	}
}

func TestRequest_QueryOrderPreserved(t *testing.T) {
	r := newRequest("https://api.example.com").
		setQuery("b", closed(2)).
		setQuery("a", closed(1)).
		setQuery("c", closed(3))

	res, err := r.resolve()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !strings.HasSuffix(res.url, "?b=2&a=1&c=3") {
		t.Errorf("url = %q, want insertion order", res.url)
	}
}

func TestRequest_HeaderCanonicalization(t *testing.T) {
	r := newRequest("https://api.example.com").
		setHeader("x-api-key", closed("one")).
		setHeader("X-Api-Key", closed("two"))

	res, err := r.resolve()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got := res.header.Values("X-Api-Key"); len(got) != 1 || got[0] != "two" {
		t.Errorf("X-Api-Key = %v, want single canonical value", got)
	}
}

func TestRequest_AddHeaderKeepsValues(t *testing.T) {
	r := newRequest("https://api.example.com").
		addHeader("Accept", closed("application/json")).
		addHeader("Accept", closed("text/plain"))

	res, err := r.resolve()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got := res.header.Values("Accept"); len(got) != 2 {
		t.Errorf("Accept = %v", got)
	}
}

func TestRequest_ImmutableModifiers(t *testing.T) {
	base := newRequest("https://api.example.com").withPath("/base")
	derived := base.withPath("/derived").setQuery("x", closed(1))

	baseRes, _ := base.resolve()
	derivedRes, _ := derived.resolve()

	if baseRes.url != "https://api.example.com/base" {
		t.Errorf("base mutated: %q", baseRes.url)
	}
	if derivedRes.url != "https://api.example.com/derived?x=1" {
		t.Errorf("derived = %q", derivedRes.url)
	}
}

func TestRequest_String(t *testing.T) {
	r := newRequest("https://api.example.com").withMethod("post").withPath("/things")
	if got := r.String(); got != "POST https://api.example.com/things" {
		t.Errorf("String() = %q", got)
	}

	bad := newRequest("")
	if got := bad.String(); !strings.Contains(got, "<unset>") {
		t.Errorf("String() = %q", got)
	}
}

func TestRequest_AppendPath(t *testing.T) {
	r := newRequest("https://api.example.com").withPath("/v1").appendPath("/users")
	res, _ := r.resolve()
	if res.url != "https://api.example.com/v1/users" {
		t.Errorf("url = %q", res.url)
	}
}
