package formspec_test

import (
	"errors"
	"reflect"
	"testing"

	"filetalk/pkg/formspec"
)

func mustParse(t *testing.T, text string) *formspec.Schema {
	t.Helper()
	schema, err := formspec.Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", text, err)
	}
	return schema
}

func TestParseBlankAndCommentLines(t *testing.T) {
	t.Parallel()

	schema := mustParse(t, "\n\n# just a comment\n# another comment\n")
	if len(schema.Fields) != 0 {
		t.Fatalf("expected no fields, got %d", len(schema.Fields))
	}
}

func TestParseCommentDoesNotProduceField(t *testing.T) {
	t.Parallel()

	schema := mustParse(t, "# not a field\nname -- str<30>\n")
	if len(schema.Fields) != 1 || schema.Fields[0].ID != "name" {
		t.Fatalf("unexpected fields: %+v", schema.Fields)
	}
}

func TestParseDirectives(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want formspec.Directives
	}{
		{"channel", "# channel: my-chan\n", formspec.Directives{Channel: "my-chan"}},
		{"outbox", "# outbox: ./mybox\n", formspec.Directives{Outbox: "./mybox"}},
		{"trimmed", "#  channel:   spaced  \n", formspec.Directives{Channel: "spaced"}},
		{"unknown key is a comment", "# something: else\n", formspec.Directives{}},
		{"later overwrites earlier", "# channel: a\n# channel: b\n", formspec.Directives{Channel: "b"}},
		{"empty value ignored", "# channel:\n", formspec.Directives{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			schema := mustParse(t, tt.text)
			if schema.Directives != tt.want {
				t.Errorf("directives = %+v, want %+v", schema.Directives, tt.want)
			}
		})
	}
}

func TestParseFieldTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want formspec.Field
	}{
		{"str", "name -- str<30>", formspec.Field{ID: "name", Type: formspec.TypeStr, Width: 30}},
		{"text", "notes -- text<60,5>", formspec.Field{ID: "notes", Type: formspec.TypeText, Width: 60, Height: 5}},
		{"bool", "active -- bool", formspec.Field{ID: "active", Type: formspec.TypeBool}},
		{"date", "today -- date", formspec.Field{ID: "today", Type: formspec.TypeDate}},
		{"time", "now -- time", formspec.Field{ID: "now", Type: formspec.TypeTime}},
		{"int", "count -- int<10>", formspec.Field{ID: "count", Type: formspec.TypeInt, Width: 10}},
		{"float", "ratio -- float<15>", formspec.Field{ID: "ratio", Type: formspec.TypeFloat, Width: 15}},
		{"json", "payload -- json<60,10>", formspec.Field{ID: "payload", Type: formspec.TypeJSON, Width: 60, Height: 10}},
		{"choice", "priority -- choice<low,medium,high>", formspec.Field{ID: "priority", Type: formspec.TypeChoice, Items: []string{"low", "medium", "high"}}},
		{"choice trimmed", "size -- choice< small , large >", formspec.Field{ID: "size", Type: formspec.TypeChoice, Items: []string{"small", "large"}}},
		{"fixed", `label -- "hello world"`, formspec.Field{ID: "label", Type: formspec.TypeFixed, Value: "hello world"}},
		{"fixed empty", `empty -- ""`, formspec.Field{ID: "empty", Type: formspec.TypeFixed, Value: ""}},
		{"inline comment stripped", "name -- str<30>  # user's name", formspec.Field{ID: "name", Type: formspec.TypeStr, Width: 30}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			schema := mustParse(t, tt.text+"\n")
			if len(schema.Fields) != 1 {
				t.Fatalf("expected 1 field, got %d", len(schema.Fields))
			}
			if !reflect.DeepEqual(schema.Fields[0], tt.want) {
				t.Errorf("field = %+v, want %+v", schema.Fields[0], tt.want)
			}
		})
	}
}

func TestParseFieldOrderPreserved(t *testing.T) {
	t.Parallel()

	schema := mustParse(t, "alpha -- str<10>\nbeta -- bool\ngamma -- int<5>\n")
	got := []string{schema.Fields[0].ID, schema.Fields[1].ID, schema.Fields[2].ID}
	want := []string{"alpha", "beta", "gamma"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("field order = %v, want %v", got, want)
	}
}

func TestParseDeterministic(t *testing.T) {
	t.Parallel()

	text := "# channel: c\nalpha -- str<10>\nbeta -- choice<a,b>\n"
	first := mustParse(t, text)
	second := mustParse(t, text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated parse differs: %+v vs %+v", first, second)
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"missing separator", "badline\n", "Line 1: missing '--' separator"},
		{"empty identifier", " -- str<10>\n", "Line 1: empty identifier"},
		{"duplicate identifier", "name -- str<10>\nname -- str<20>\n", "Line 2: duplicate identifier 'name'"},
		{"unknown type", "x -- widget<10>\n", "Line 1: unknown type 'widget' for 'x'"},
		{"bare type name", "x -- str\n", "Line 1: unknown type 'str' for 'x'"},
		{"missing closing bracket", "x -- str<10\n", "Line 1: malformed type parameters for 'x' (missing '>')"},
		{"non-integer width", "x -- str<abc>\n", "Line 1: width must be an integer for 'x'"},
		{"zero width", "x -- str<0>\n", "Line 1: width must be >= 1 for 'x'"},
		{"negative width", "x -- int<-3>\n", "Line 1: width must be >= 1 for 'x'"},
		{"text wrong arity", "x -- text<10>\n", "Line 1: expected <width,height> for 'x'"},
		{"json bad height", "x -- json<10,zz>\n", "Line 1: width and height must be integers for 'x'"},
		{"json zero height", "x -- json<10,0>\n", "Line 1: width and height must be >= 1 for 'x'"},
		{"choice empty item", "x -- choice<a,,b>\n", "Line 1: empty item in choice list for 'x'"},
		{"malformed fixed", "x -- \"unclosed\n", "Line 1: malformed fixed value for 'x' (must be a quoted string)"},
		{"error on later line", "good -- str<10>\nbadline\n", "Line 2: missing '--' separator"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			schema, err := formspec.Parse(tt.text)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.text)
			}
			if schema != nil {
				t.Errorf("failed parse returned non-nil schema")
			}
			if err.Error() != tt.want {
				t.Errorf("error = %q, want %q", err.Error(), tt.want)
			}
			var perr *formspec.ParseError
			if !errors.As(err, &perr) {
				t.Errorf("error is not a *ParseError: %T", err)
			}
		})
	}
}

func TestParseErrorCarriesLineNumber(t *testing.T) {
	t.Parallel()

	_, err := formspec.Parse("a -- bool\nb -- bool\nc -- str<0>\n")
	var perr *formspec.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.Line != 3 {
		t.Errorf("Line = %d, want 3", perr.Line)
	}
}
