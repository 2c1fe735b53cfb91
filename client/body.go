package client

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// BodyMapper converts a request body value into bytes. Raw values
// ([]byte, string, io.Reader) bypass the mapper entirely.
type BodyMapper interface {
	// ContentType is the default MIME type for mapped bodies, used when
	// no Content-Type header was configured.
	ContentType() string
	// Encode turns the body value into bytes.
	Encode(body any) ([]byte, error)
}

// JSONBody returns the default body mapper, which marshals any value
// with encoding/json.
func JSONBody() BodyMapper {
	return jsonBodyMapper{}
}

type jsonBodyMapper struct{}

func (jsonBodyMapper) ContentType() string {
	return "application/json"
}

func (jsonBodyMapper) Encode(body any) ([]byte, error) {
	return json.Marshal(body)
}

// FormBody returns a body mapper that form-encodes url.Values or
// map[string]string bodies.
func FormBody() BodyMapper {
	return formBodyMapper{}
}

type formBodyMapper struct{}

func (formBodyMapper) ContentType() string {
	return "application/x-www-form-urlencoded"
}

func (formBodyMapper) Encode(body any) ([]byte, error) {
	switch v := body.(type) {
	case url.Values:
		return []byte(encodeForm(v)), nil
	case map[string]string:
		values := make(url.Values, len(v))
		for k, val := range v {
			values.Set(k, val)
		}
		return []byte(encodeForm(values)), nil
	default:
		return nil, fmt.Errorf("form body must be url.Values or map[string]string, got %T", body)
	}
}
