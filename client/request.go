package client

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Supplier produces a value at execution time rather than at
// configuration time, so a single client can send a fresh value (a
// counter, a rotating token) on every request. Each supplier is
// resolved exactly once per execution.
type Supplier func() string

// closed wraps an eager value in a supplier.
func closed(val any) Supplier {
	s := fmt.Sprint(val)
	return func() string { return s }
}

// pair is one key/value entry of an ordered multimap.
type pair struct {
	key string
	val Supplier
}

// Request is an immutable request descriptor: method, base url, path
// with {name} templates, and ordered query/header multimaps. Modifier
// helpers return copies; descriptors are shared freely between derived
// clients.
type Request struct {
	method     string
	base       string // scheme://authority
	path       string
	pathParams map[string]Supplier
	query      []pair
	headers    []pair
	err        error // deferred bad-url error, surfaced at execution
}

func newRequest(rawURL string) Request {
	r := Request{method: http.MethodGet, path: "/"}
	if rawURL == "" {
		return r
	}
	return r.withURL(rawURL)
}

func (r Request) withMethod(method string) Request {
	r.method = strings.ToUpper(method)
	return r
}

// withURL replaces the base url. Path and query embedded in the url are
// split out; the previous path and query are discarded.
func (r Request) withURL(rawURL string) Request {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		r.err = NewConfigError(fmt.Sprintf("invalid url: %q", rawURL))
		return r
	}

	r.base = u.Scheme + "://" + u.Host
	r.path = u.Path
	if r.path == "" {
		r.path = "/"
	}
	r.query = nil
	for _, p := range decodeQuery(u.RawQuery) {
		r.query = append(r.query, p)
	}
	r.err = nil
	return r
}

func (r Request) withPath(path string) Request {
	r.path = path
	return r
}

func (r Request) appendPath(segment string) Request {
	r.path += segment
	return r
}

func (r Request) withPathParam(key string, val Supplier) Request {
	params := make(map[string]Supplier, len(r.pathParams)+1)
	for k, v := range r.pathParams {
		params[k] = v
	}
	params[key] = val
	r.pathParams = params
	return r
}

// setPair replaces every value for key, keeping first-set position.
func setPair(pairs []pair, key string, val Supplier) []pair {
	out := make([]pair, 0, len(pairs)+1)
	inserted := false
	for _, p := range pairs {
		if p.key == key {
			if !inserted {
				out = append(out, pair{key: key, val: val})
				inserted = true
			}
			continue
		}
		out = append(out, p)
	}
	if !inserted {
		out = append(out, pair{key: key, val: val})
	}
	return out
}

func addPair(pairs []pair, key string, val Supplier) []pair {
	out := make([]pair, len(pairs), len(pairs)+1)
	copy(out, pairs)
	return append(out, pair{key: key, val: val})
}

func (r Request) setQuery(key string, val Supplier) Request {
	r.query = setPair(r.query, key, val)
	return r
}

func (r Request) addQuery(key string, val Supplier) Request {
	r.query = addPair(r.query, key, val)
	return r
}

func (r Request) setHeader(key string, val Supplier) Request {
	r.headers = setPair(r.headers, http.CanonicalHeaderKey(key), val)
	return r
}

func (r Request) addHeader(key string, val Supplier) Request {
	r.headers = addPair(r.headers, http.CanonicalHeaderKey(key), val)
	return r
}

func (r Request) urlSet() bool {
	return r.base != ""
}

// resolved is one execution's worth of the descriptor: every supplier
// evaluated exactly once.
type resolved struct {
	method string
	url    string
	header http.Header
}

// resolve evaluates the descriptor for one execution.
func (r Request) resolve() (resolved, error) {
	if r.err != nil {
		return resolved{}, r.err
	}
	if !r.urlSet() {
		return resolved{}, NewConfigError("url has not been set")
	}

	path := r.path
	for key, sup := range r.pathParams {
		path = strings.ReplaceAll(path, "{"+key+"}", url.PathEscape(sup()))
	}

	full := r.base + path
	if len(r.query) > 0 {
		full += "?" + encodeQuery(r.query)
	}

	header := make(http.Header, len(r.headers))
	for _, p := range r.headers {
		header.Add(p.key, p.val())
	}

	return resolved{method: r.method, url: full, header: header}, nil
}

// String renders "METHOD url?query", resolving suppliers to do so.
func (r Request) String() string {
	res, err := r.resolve()
	if err != nil {
		return r.method + " <unset>"
	}
	return res.method + " " + res.url
}
