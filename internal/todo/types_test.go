package todo

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestEncodeDecodeItems(t *testing.T) {
	items := []Item{
		{ID: 1, Text: "a", Done: true},
		{ID: 1700000000000, Text: "b", Done: false},
	}

	data, err := EncodeItems(items)
	if err != nil {
		t.Fatalf("EncodeItems failed: %v", err)
	}
	got, err := DecodeItems(data)
	if err != nil {
		t.Fatalf("DecodeItems failed: %v", err)
	}
	if !reflect.DeepEqual(got, items) {
		t.Errorf("round trip: got %+v, want %+v", got, items)
	}
}

func TestEncodeItemsNil(t *testing.T) {
	data, err := EncodeItems(nil)
	if err != nil {
		t.Fatalf("EncodeItems failed: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("EncodeItems(nil): got %s, want []", data)
	}
}

func TestDecodeItemsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantPath string
	}{
		{"not json", `{{{`, ""},
		{"object instead of array", `{"id": 1}`, ""},
		{"string id", `[{"id": "1", "text": "a", "done": false}]`, "[0].id"},
		{"fractional id", `[{"id": 1.5, "text": "a", "done": false}]`, "[0].id"},
		{"missing text", `[{"id": 1, "done": false}]`, ""},
		{"done not bool", `[{"id": 1, "text": "a", "done": "yes"}]`, "[0].done"},
		{"duplicate ids", `[{"id": 1, "text": "a", "done": false}, {"id": 1, "text": "b", "done": true}]`, "[1].id"},
		{"trailing data", `[] []`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeItems([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrPersistedDataUnreadable) {
				t.Errorf("error %v does not wrap ErrPersistedDataUnreadable", err)
			}
			if tt.wantPath != "" && !strings.Contains(err.Error(), tt.wantPath) {
				t.Errorf("error %q does not mention %s", err, tt.wantPath)
			}
		})
	}
}

func TestDecodeItemsExtraFieldsAllowed(t *testing.T) {
	got, err := DecodeItems([]byte(`[{"id": 7, "text": "x", "done": true, "color": "red"}]`))
	if err != nil {
		t.Fatalf("DecodeItems failed: %v", err)
	}
	want := []Item{{ID: 7, Text: "x", Done: true}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestValidationErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &ValidationError{Path: "[0].id", Err: inner}
	if !errors.Is(err, inner) {
		t.Error("ValidationError should unwrap to inner error")
	}
	if err.Error() != "[0].id: boom" {
		t.Errorf("Error(): got %q", err.Error())
	}
	if (&ValidationError{Err: inner}).Error() != "boom" {
		t.Error("Error() without path should be the inner message")
	}
}

func TestTheme(t *testing.T) {
	for _, dark := range []bool{true, false} {
		got, err := DecodeTheme(EncodeTheme(dark))
		if err != nil {
			t.Fatalf("DecodeTheme failed: %v", err)
		}
		if got != dark {
			t.Errorf("theme round trip: got %v, want %v", got, dark)
		}
	}
	if _, err := DecodeTheme("dark"); err == nil {
		t.Error("DecodeTheme(dark) should fail")
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"#", ""},
		{"/0/id", "[0].id"},
		{"#/12/text", "[12].text"},
		{"/a~1b/c~0d", "a/b.c~d"},
	}
	for _, tt := range tests {
		if got := jsonPointerToPath(tt.in); got != tt.want {
			t.Errorf("jsonPointerToPath(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSeedItems(t *testing.T) {
	seed := SeedItems()
	if len(seed) != 4 {
		t.Fatalf("seed length: got %d, want 4", len(seed))
	}
	for i, it := range seed {
		if it.ID != int64(i+1) {
			t.Errorf("seed[%d].ID: got %d, want %d", i, it.ID, i+1)
		}
		if it.Done != (it.ID == 1) {
			t.Errorf("seed[%d].Done: got %v", i, it.Done)
		}
	}
	seed[0].Text = "changed"
	if SeedItems()[0].Text == "changed" {
		t.Error("SeedItems should return a fresh slice")
	}
}
