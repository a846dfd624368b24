package cgt

import (
	"encoding/json"
	"testing"
)

func TestJsonObjectWriterAppend(t *testing.T) {
	var w jsonObjectWriter
	w.Append("b", 1)
	w.Append("a", "two")

	got, err := w.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	// insertion order is preserved, not alphabetical
	want := `{"b":1,"a":"two"}`
	if string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestJsonObjectWriterOptional(t *testing.T) {
	var w jsonObjectWriter
	w.Optional("empty", "")
	w.Optional("zero", 0)
	w.Append("kept", 1)

	got, err := w.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"kept":1}`
	if string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestJsonObjectWriterEmbed(t *testing.T) {
	var w jsonObjectWriter
	w.Append("a", 1)
	w.EmbedFrom(map[string]int{"b": 2})

	got, err := w.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"a":1,"b":2}`
	if string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestJsonObjectWriterEmpty(t *testing.T) {
	var w jsonObjectWriter
	got, err := w.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{}` {
		t.Errorf("got %s, want {}", got)
	}
	if !json.Valid(got) {
		t.Error("output is not valid JSON")
	}
}
