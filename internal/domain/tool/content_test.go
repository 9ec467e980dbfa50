package tool

import (
	"encoding/json"
	"testing"
)

func TestTextf_SingleItem(t *testing.T) {
	t.Parallel()

	items := Textf("counted %d words", 3)
	if len(items) != 1 {
		t.Fatalf("len(items) = %d; want 1", len(items))
	}
	text, ok := items[0].(TextContent)
	if !ok {
		t.Fatalf("items[0] is %T; want TextContent", items[0])
	}
	if text.Text != "counted 3 words" {
		t.Errorf("Text = %q; want %q", text.Text, "counted 3 words")
	}
	if text.Kind() != ContentKindText {
		t.Errorf("Kind() = %q; want %q", text.Kind(), ContentKindText)
	}
}

func TestErrorf_SingleItem(t *testing.T) {
	t.Parallel()

	items := Errorf(404, "page %q not found", "x")
	if len(items) != 1 {
		t.Fatalf("len(items) = %d; want 1", len(items))
	}
	errItem, ok := items[0].(ErrorContent)
	if !ok {
		t.Fatalf("items[0] is %T; want ErrorContent", items[0])
	}
	if errItem.Code != 404 {
		t.Errorf("Code = %d; want 404", errItem.Code)
	}
	if errItem.Error != `page "x" not found` {
		t.Errorf("Error = %q; want %q", errItem.Error, `page "x" not found`)
	}
}

func TestIsError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		items []Content
		want  bool
	}{
		{"nil sequence", nil, false},
		{"text only", Textf("ok"), false},
		{"error leading", Errorf(500, "boom"), true},
		{"error after text", []Content{TextContent{Text: "a"}, ErrorContent{Code: 1}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := IsError(tc.items); got != tc.want {
				t.Errorf("IsError = %v; want %v", got, tc.want)
			}
		})
	}
}

func TestMarshalContent_TaggedUnion(t *testing.T) {
	t.Parallel()

	items := []Content{
		TextContent{Text: "hello"},
		ImageContent{Data: "aGk=", MIMEType: "image/png"},
		ErrorContent{Code: 429, Error: "rate limited"},
	}

	data, err := MarshalContent(items)
	if err != nil {
		t.Fatalf("MarshalContent returned error: %v", err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if len(raw) != 3 {
		t.Fatalf("len(raw) = %d; want 3", len(raw))
	}
	if raw[0]["type"] != "text" || raw[0]["text"] != "hello" {
		t.Errorf("raw[0] = %v; want text item", raw[0])
	}
	if raw[1]["type"] != "image" || raw[1]["mime_type"] != "image/png" {
		t.Errorf("raw[1] = %v; want image item", raw[1])
	}
	if raw[2]["type"] != "error" || raw[2]["code"] != float64(429) {
		t.Errorf("raw[2] = %v; want error item", raw[2])
	}
}

func TestUnmarshalContent_RoundTrip(t *testing.T) {
	t.Parallel()

	original := []Content{
		TextContent{Text: "hello"},
		ImageContent{Data: "aGk=", MIMEType: "image/jpeg"},
		ErrorContent{Code: 500, Error: "boom"},
	}
	data, err := MarshalContent(original)
	if err != nil {
		t.Fatalf("MarshalContent returned error: %v", err)
	}

	back, err := UnmarshalContent(data)
	if err != nil {
		t.Fatalf("UnmarshalContent returned error: %v", err)
	}
	if len(back) != len(original) {
		t.Fatalf("len(back) = %d; want %d", len(back), len(original))
	}
	for i := range original {
		if back[i] != original[i] {
			t.Errorf("item %d = %#v; want %#v", i, back[i], original[i])
		}
	}
}

func TestUnmarshalContent_UnknownTag(t *testing.T) {
	t.Parallel()

	_, err := UnmarshalContent([]byte(`[{"type":"audio"}]`))
	if err == nil {
		t.Fatal("expected error for unknown type tag")
	}
}
