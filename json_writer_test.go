package statements

import (
	"encoding/json"
	"testing"
)

func TestJsonObjectWriter(t *testing.T) {
	t.Run("empty object", func(t *testing.T) {
		var w jsonObjectWriter
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "{}"; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("embed keeps field order", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("type", "fx")
		w.Embed(json.RawMessage(`{"tradeId":"7","side":"BUY"}`))
		w.Append("n", 2)
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"type":"fx","tradeId":"7","side":"BUY","n":2}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("optional fields", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("shares", 0) // a zero value is still written by Append.
		w.Optional("comment", "")
		w.Optional("venue", "Фондовый рынок")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"shares":0,"venue":"Фондовый рынок"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("embed from money", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("type", "fee")
		w.EmbedFrom(M(12.5, "RUB"))
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"type":"fee","currency":"RUB","amount":12.5}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("embed rejects non objects", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("type", "fx")
		w.EmbedFrom([]int{1, 2})
		w.Append("n", 2)
		if _, err := w.MarshalJSON(); err == nil {
			t.Error("MarshalJSON() error = nil, want an error")
		}
	})
}
