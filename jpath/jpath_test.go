package jpath_test

import (
	"strings"
	"testing"

	"github.com/creachadair/jinspect/ast"
	"github.com/creachadair/jinspect/jpath"
	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"$.store.book[*]..author", "$.store.book.*..author"},
		{"$..author", ""},
		{"$.store.*", ""},
		{"$.store..price", ""},
		{"$..book[2]", ""},
		{"$..book[(@.length-1)]", ""},
		{"$..book[-1:]", ""},
		{"$..book[0,1]", ""},
		{"$..book[:2]", ""},
		{"$..book[?(@.isbn)]", ""},
		{"$..book[?(@price<10)]", ""},
		{"$..*", ""},
		{"$..[0]", ""},
		{"$['apple sauce'].pearPlum..'cherry apple'", "$['apple sauce'].pearPlum..['cherry apple']"},
		{"$[a][1:3][b]['c d e']", "$['a'][1:3]['b']['c d e']"},
		{"$", ""},
	}
	for _, test := range tests {
		e, err := jpath.Parse(test.input)
		if err != nil {
			t.Errorf("Parse %q: %v", test.input, err)
			continue
		}
		want := test.want
		if want == "" {
			want = test.input
		}
		if got := e.String(); got != want {
			t.Errorf("Parse %q:\n got %q\nwant %q", test.input, got, want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"store.book",
		"$.",
		"$[1",
		"$[?(@.a]",
		"$.a b",
		"$[!]",
	} {
		if e, err := jpath.Parse(input); err == nil {
			t.Errorf("Parse %q: got %v, want error", input, e)
		}
	}
}

const storeJSON = `{"store":{"book":[
{"category":"reference","author":"Nigel Rees","title":"Sayings of the Century","price":8.95},
{"category":"fiction","author":"Evelyn Waugh","title":"Sword of Honour","price":12.99},
{"category":"fiction","author":"Herman Melville","title":"Moby Dick","isbn":"0-553-21311-3","price":8.99},
{"category":"fiction","author":"J. R. R. Tolkien","title":"The Lord of the Rings","isbn":"0-395-19395-8","price":22.99}],
"bicycle":{"color":"red","price":19.95}}}`

func mustParse(t *testing.T, text string) ast.Value {
	t.Helper()
	v, err := ast.Parse(text)
	if err != nil {
		t.Fatalf("Parse input: %v", err)
	}
	return v
}

func valuesJSON(rs []jpath.Result) string {
	return ast.Array(jpath.Values(rs)).JSON()
}

// Examples from https://www.ietf.org/archive/id/draft-goessner-dispatch-jsonpath-00.html
func TestEvalStore(t *testing.T) {
	val := mustParse(t, storeJSON)

	tests := []struct {
		name  string
		query string
		want  string // JSON array of values
	}{
		{"AllAuthors1", "$.store.book[*].author",
			`["Nigel Rees","Evelyn Waugh","Herman Melville","J. R. R. Tolkien"]`},
		{"AllAuthors2", "$..author",
			`["Nigel Rees","Evelyn Waugh","Herman Melville","J. R. R. Tolkien"]`},
		{"AllPrices", "$.store..price", `[8.95,12.99,8.99,22.99,19.95]`},
		{"StoreKeys", "$.store.*[?(@.color)].color", `[]`},
		{"Book2", "$..book[2].title", `["Moby Dick"]`},
		{"LastBook1", "$..book[-1:].title", `["The Lord of the Rings"]`},
		{"LastBook2", "$..book[(@.length-1)].title", `["The Lord of the Rings"]`},
		{"FirstTwoBooks1", "$..book[0,1].price", `[8.95,12.99]`},
		{"FirstTwoBooks2", "$..book[:2].price", `[8.95,12.99]`},
		{"FilterISBN", "$..book[?(@.isbn)].title", `["Moby Dick","The Lord of the Rings"]`},
		{"CheapBooks", "$..book[?(@.price<10)].price", `[8.95,8.99]`},
		{"Shorthand", "$..book[?(@price<10)].price", `[8.95,8.99]`},
		{"Equal", "$..book[?(@.category=='reference')].author", `["Nigel Rees"]`},
		{"And", "$..book[?(@.category=='fiction' && @.price>20)].author", `["J. R. R. Tolkien"]`},
		{"Or", "$..book[?(@.price<9 || @.price>20)].price", `[8.95,8.99,22.99]`},
		{"Not", "$..book[?(!@.isbn)].price", `[8.95,12.99]`},
		{"Script", "$.store[('bicycle')].color", `["red"]`},
		{"Missing", "$.store.nonesuch", `[]`},
		{"NameOnArray", "$.store.book.author", `[]`},
		{"IndexOutOfRange", "$.store.book[10]", `[]`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rs, err := jpath.Query(val, test.query)
			if err != nil {
				t.Fatalf("Query %q: %v", test.query, err)
			}
			if got := valuesJSON(rs); got != test.want {
				t.Errorf("Result:\n got %#q,\nwant %#q", got, test.want)
			}
		})
	}
}

func TestDescendOrder(t *testing.T) {
	val := mustParse(t, `{"a":{"b":[1,{"c":2}]},"d":3}`)
	rs, err := jpath.Query(val, "$..*")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	want := []string{"/a", "/d", "/a/b", "/a/b/0", "/a/b/1", "/a/b/1/c"}
	if diff := cmp.Diff(want, jpath.Pointers(rs)); diff != "" {
		t.Errorf("Pointers (-want, +got):\n%s", diff)
	}
}

func TestPointers(t *testing.T) {
	val := mustParse(t, `{"items":[{"id":1},{"id":2}]}`)
	rs, err := jpath.Query(val, "$.items[*].id")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if diff := cmp.Diff([]string{"/items/0/id", "/items/1/id"}, jpath.Pointers(rs)); diff != "" {
		t.Errorf("Pointers (-want, +got):\n%s", diff)
	}
	if got, want := valuesJSON(rs), `[1,2]`; got != want {
		t.Errorf("Values: got %#q, want %#q", got, want)
	}
}

func TestEscapedPointers(t *testing.T) {
	val := mustParse(t, `{"a/b":{"m~n":true}}`)
	rs, err := jpath.Query(val, "$['a/b']['m~n']")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if diff := cmp.Diff([]string{"/a~1b/m~0n"}, jpath.Pointers(rs)); diff != "" {
		t.Errorf("Pointers (-want, +got):\n%s", diff)
	}
}

func TestRoot(t *testing.T) {
	val := mustParse(t, `[1,2]`)
	rs, err := jpath.Query(val, "$")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(rs) != 1 || rs[0].Pointer != "" || rs[0].Value.JSON() != "[1,2]" {
		t.Errorf("Query $: got %+v, want the root", rs)
	}
}

func TestFilterErrors(t *testing.T) {
	val := mustParse(t, storeJSON)
	for _, q := range []string{
		"$..book[?(@.price <)]",
		"$..book[?(@.price < 1 2)]",
		"$..book[?(@.)]",
		"$..book[(@.size)]",
	} {
		rs, err := jpath.Query(val, q)
		if err == nil {
			t.Errorf("Query %q: got %v, want error", q, rs)
		} else if !strings.Contains(err.Error(), "step") {
			t.Errorf("Query %q: error %v does not name the step", q, err)
		}
	}
}
