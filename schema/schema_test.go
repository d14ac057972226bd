// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package schema_test

import (
	"strings"
	"testing"

	"github.com/creachadair/jinspect/ast"
	"github.com/creachadair/jinspect/schema"
)

func mustParse(t *testing.T, src string) ast.Value {
	t.Helper()
	v, err := ast.Parse(src)
	if err != nil {
		t.Fatalf("Parse %q: %v", src, err)
	}
	return v
}

const testSchema = `{
  "type": "object",
  "required": ["name"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "tags": {"type": "array", "items": {"type": "string"}},
    "age":  {"type": "integer", "minimum": 0}
  }
}`

func TestValid(t *testing.T) {
	s := mustParse(t, testSchema)
	for _, doc := range []string{
		`{"name":"x"}`,
		`{"name":"x","tags":[],"age":0,"extra":null}`,
		`{"name":"x","age":12345678901234567890}`,
	} {
		res := schema.Validate(mustParse(t, doc), s)
		if !res.Valid || len(res.Errors) != 0 {
			t.Errorf("Validate %s: got %+v, want valid", doc, res)
		}
		if res.Errors == nil {
			t.Errorf("Validate %s: errors should be empty, not nil", doc)
		}
	}
}

func TestInvalid(t *testing.T) {
	s := mustParse(t, testSchema)
	tests := []struct {
		doc   string
		paths []string
	}{
		{`[]`, []string{"/"}},
		{`{}`, []string{"/"}},
		{`{"name":""}`, []string{"/name"}},
		{`{"name":"x","tags":["a",2,"c",false]}`, []string{"/tags/1", "/tags/3"}},
		{`{"name":1,"age":-1}`, []string{"/age", "/name"}},
		{`{"name":"x","age":1.5}`, []string{"/age"}},
	}
	for _, tc := range tests {
		res := schema.Validate(mustParse(t, tc.doc), s)
		if res.Valid {
			t.Errorf("Validate %s: got valid, want errors", tc.doc)
			continue
		}
		var paths []string
		for _, e := range res.Errors {
			if e.Message == "" {
				t.Errorf("Validate %s: empty message at %q", tc.doc, e.Path)
			}
			paths = append(paths, e.Path)
		}
		if strings.Join(paths, " ") != strings.Join(tc.paths, " ") {
			t.Errorf("Validate %s: got paths %q, want %q", tc.doc, paths, tc.paths)
		}
	}
}

func TestBadSchema(t *testing.T) {
	res := schema.Validate(mustParse(t, `{}`), mustParse(t, `{"type": 17}`))
	if res.Valid {
		t.Fatal("Validate with a bad schema reported valid")
	}
	if len(res.Errors) != 1 || res.Errors[0].Path != schema.RootPath {
		t.Errorf("Errors: got %+v, want one at the root", res.Errors)
	}
	if _, err := schema.Compile(mustParse(t, `{"$ref": "#/nonesuch"}`)); err == nil {
		t.Error("Compile with a dangling reference: got nil error")
	}
}

func TestCompiled(t *testing.T) {
	s, err := schema.Compile(mustParse(t, `{"type":"array","maxItems":2}`))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if res := s.Validate(mustParse(t, `[1,2]`)); !res.Valid {
		t.Errorf("Validate [1,2]: got %+v", res)
	}
	if res := s.Validate(mustParse(t, `[1,2,3]`)); res.Valid || res.Errors[0].Path != "/" {
		t.Errorf("Validate [1,2,3]: got %+v, want an error at /", res)
	}
}
