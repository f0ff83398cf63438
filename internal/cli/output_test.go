package cli

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestFprintJSON(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		var buf bytes.Buffer
		input := jsonAction{OK: true, Action: "mark_read", EmailID: "m1"}

		if err := fprintJSON(&buf, input); err != nil {
			t.Fatalf("fprintJSON() error = %v", err)
		}

		var got jsonAction
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("failed to parse output: %v", err)
		}
		if got != input {
			t.Errorf("got %+v, want %+v", got, input)
		}
	})

	t.Run("indented output", func(t *testing.T) {
		var buf bytes.Buffer
		if err := fprintJSON(&buf, map[string]int{"a": 1}); err != nil {
			t.Fatalf("fprintJSON() error = %v", err)
		}
		if buf.String() == `{"a":1}`+"\n" {
			t.Error("expected indented JSON, got compact")
		}
	})

	t.Run("empty slice", func(t *testing.T) {
		var buf bytes.Buffer
		if err := fprintJSON(&buf, []jsonEmail{}); err != nil {
			t.Fatalf("fprintJSON() error = %v", err)
		}
		if got := buf.String(); got != "[]\n" {
			t.Errorf("got %q, want %q", got, "[]\n")
		}
	})
}
