package todo

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestEncodeEmpty(t *testing.T) {
	for _, tasks := range [][]Task{nil, {}} {
		data, err := Encode(tasks)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		if string(data) != "[]" {
			t.Errorf("Encode(%#v): got %s, want []", tasks, data)
		}
	}
}

func TestEncodeFieldNames(t *testing.T) {
	data, err := Encode([]Task{{ID: 42, Text: "buy milk", Completed: true}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := `[{"id":42,"text":"buy milk","completed":true}]`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	tasks := []Task{
		{ID: 1718000000000, Text: "a", Completed: false},
		{ID: 1718000000001, Text: "b \"quoted\"", Completed: true},
		{ID: 1718000000002, Text: "ünïcode ✓", Completed: false},
	}
	data, err := Encode(tasks)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, tasks) {
		t.Errorf("round trip: got %+v, want %+v", got, tasks)
	}
}

func TestDecodeEmptyArray(t *testing.T) {
	got, err := Decode([]byte(" [] \n"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("got %#v, want empty non-nil slice", got)
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantPath string
	}{
		{"not json", `{not json`, ""},
		{"truncated", `[{"id":1,"text":"a","completed":false}`, ""},
		{"trailing data", `[] []`, ""},
		{"null", `null`, ""},
		{"object", `{"id":1}`, ""},
		{"missing text", `[{"id":1,"completed":false}]`, "[0]"},
		{"string id", `[{"id":"1","text":"a","completed":false}]`, "[0].id"},
		{"fractional id", `[{"id":1.5,"text":"a","completed":false}]`, "[0].id"},
		{"string completed", `[{"id":1,"text":"a","completed":"yes"}]`, "[0].completed"},
		{"bad second item", `[{"id":1,"text":"a","completed":false},{"id":2,"text":3,"completed":false}]`, "[1].text"},
		{"empty text", `[{"id":1,"text":"","completed":false}]`, "[0].text"},
		{"untrimmed text", `[{"id":1,"text":" a ","completed":false}]`, "[0].text"},
		{"id above maximum", `[{"id":9007199254740992,"text":"a","completed":false}]`, "[0].id"},
		{"max int64 id", `[{"id":9223372036854775807,"text":"a","completed":false}]`, "[0].id"},
		{"duplicate ids", `[{"id":1,"text":"a","completed":false},{"id":1,"text":"b","completed":true}]`, "[1].id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.input))
			if err == nil {
				t.Fatalf("expected error, got tasks %+v", got)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError in chain, got %T: %v", err, err)
			}
			if tt.wantPath != "" && !strings.Contains(err.Error(), tt.wantPath) {
				t.Errorf("error %q does not mention %q", err, tt.wantPath)
			}
		})
	}
}

func TestDecodeLargestID(t *testing.T) {
	got, err := Decode([]byte(`[{"id":9007199254740991,"text":"a","completed":false}]`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got[0].ID != maxID {
		t.Errorf("id: got %d, want %d", got[0].ID, int64(maxID))
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"#", ""},
		{"/0", "[0]"},
		{"/0/text", "[0].text"},
		{"#/12/id", "[12].id"},
		{"/a~1b/c~0d", "a/b.c~d"},
	}
	for _, tt := range tests {
		if got := jsonPointerToPath(tt.ptr); got != tt.want {
			t.Errorf("jsonPointerToPath(%q): got %q, want %q", tt.ptr, got, tt.want)
		}
	}
}
