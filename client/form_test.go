package client

import (
	"net/url"
	"testing"
)

func TestEncodeQuery_OrderAndEscaping(t *testing.T) {
	pairs := []pair{
		{key: "q", val: closed("hello world")},
		{key: "lang", val: closed("go")},
		{key: "q", val: closed("second")},
	}
	got := encodeQuery(pairs)
	want := "q=hello+world&lang=go&q=second"
	if got != want {
		t.Errorf("encodeQuery = %q, want %q", got, want)
	}
}

func TestDecodeQuery(t *testing.T) {
	pairs := decodeQuery("a=1&b=two%20words&a=3")
	if len(pairs) != 3 {
		t.Fatalf("got %d pairs", len(pairs))
	}
	if pairs[1].key != "b" || pairs[1].val() != "two words" {
		t.Errorf("pair = %s=%s", pairs[1].key, pairs[1].val())
	}
	if pairs[2].key != "a" || pairs[2].val() != "3" {
		t.Error("duplicate keys not preserved")
	}
}

func TestDecodeQuery_SkipsMalformed(t *testing.T) {
	pairs := decodeQuery("good=1&novalue&bad=%zz")
	if len(pairs) != 1 || pairs[0].key != "good" {
		t.Errorf("pairs = %v", pairs)
	}
}

func TestDecodeQuery_Empty(t *testing.T) {
	if pairs := decodeQuery(""); pairs != nil {
		t.Errorf("expected nil, got %v", pairs)
	}
}

func TestFormBody_Encode(t *testing.T) {
	m := FormBody()
	if m.ContentType() != "application/x-www-form-urlencoded" {
		t.Errorf("content type = %q", m.ContentType())
	}

	got, err := m.Encode(url.Values{"b": {"2"}, "a": {"1"}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(got) != "a=1&b=2" {
		t.Errorf("encoded = %q", got)
	}

	got, err = m.Encode(map[string]string{"key": "val ue"})
	if err != nil {
		t.Fatalf("Encode map: %v", err)
	}
	if string(got) != "key=val+ue" {
		t.Errorf("encoded = %q", got)
	}

	if _, err := m.Encode(42); err == nil {
		t.Error("expected error for unsupported body type")
	}
}

func TestJSONBody_Encode(t *testing.T) {
	m := JSONBody()
	if m.ContentType() != "application/json" {
		t.Errorf("content type = %q", m.ContentType())
	}
	got, err := m.Encode(map[string]int{"n": 1})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(got) != `{"n":1}` {
		t.Errorf("encoded = %q", got)
	}
}
