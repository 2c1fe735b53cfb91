package client

import (
	"net/url"
	"strings"
)

// encodeQuery renders ordered pairs as a percent-encoded query string,
// resolving each supplier once.
func encodeQuery(pairs []pair) string {
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.val()))
	}
	return b.String()
}

// decodeQuery parses a raw query string into ordered pairs, keeping
// duplicate keys. Malformed entries are skipped.
func decodeQuery(raw string) []pair {
	if raw == "" {
		return nil
	}

	var pairs []pair
	for _, part := range strings.Split(raw, "&") {
		key, val, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		k, err := url.QueryUnescape(key)
		if err != nil {
			continue
		}
		v, err := url.QueryUnescape(val)
		if err != nil {
			continue
		}
		pairs = append(pairs, pair{key: k, val: closed(v)})
	}
	return pairs
}

// encodeForm renders url.Values in stable key order as a form body.
func encodeForm(values url.Values) string {
	return values.Encode()
}
