package routes

import (
	"errors"
	"testing"
	"testing/fstest"
)

func TestLoadMappings(t *testing.T) {
	fsys := fstest.MapFS{
		"url-mappings.yaml": &fstest.MapFile{Data: []byte(`mappings:
  "/old-page/": "blog/new-page"
  "best/crm": "blog/guides/crm-roundup"
`)},
	}

	mappings, err := LoadMappings(fsys, "url-mappings.yaml")
	if err != nil {
		t.Fatalf("LoadMappings: %v", err)
	}
	if mappings.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", mappings.Len())
	}

	fileID, ok := mappings.Lookup("/old-page/")
	if !ok || fileID != "blog/new-page" {
		t.Fatalf("lookup /old-page/: %q, %v", fileID, ok)
	}
	// Keys are normalized to the canonical trailing-slash form.
	fileID, ok = mappings.Lookup("/best/crm/")
	if !ok || fileID != "blog/guides/crm-roundup" {
		t.Fatalf("lookup /best/crm/: %q, %v", fileID, ok)
	}
}

func TestLoadMappingsMissingFile(t *testing.T) {
	mappings, err := LoadMappings(fstest.MapFS{}, "url-mappings.yaml")
	if err != nil {
		t.Fatalf("LoadMappings: %v", err)
	}
	if mappings.Len() != 0 {
		t.Fatalf("expected empty table, got %d", mappings.Len())
	}
}

func TestLoadMappingsRejectsInvalidDocuments(t *testing.T) {
	cases := map[string]string{
		"wrong value type": `mappings:
  "/old/": 42
`,
		"unknown top-level key": `mappings: {}
extra: true
`,
		"missing mappings key": `other: {}
`,
	}
	for name, doc := range cases {
		fsys := fstest.MapFS{
			"url-mappings.yaml": &fstest.MapFile{Data: []byte(doc)},
		}
		if _, err := LoadMappings(fsys, "url-mappings.yaml"); !errors.Is(err, ErrMappingsInvalid) {
			t.Fatalf("%s: expected ErrMappingsInvalid, got %v", name, err)
		}
	}
}

func TestNormalizePath(t *testing.T) {
	cases := map[string]string{
		"":         "",
		"/":        "",
		"a":        "/a/",
		"/a/b":     "/a/b/",
		"  /a/  ":  "/a/",
		"a/b/c///": "/a/b/c/",
	}
	for input, want := range cases {
		if got := NormalizePath(input); got != want {
			t.Fatalf("NormalizePath(%q) = %q, want %q", input, got, want)
		}
	}
}
