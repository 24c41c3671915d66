package formspec

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports a malformed spec line. Line is 1-based. Given
// identical input the parser reports the same line and reason every time.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Line %d: %s", e.Line, e.Reason)
}

func parseErrorf(line int, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Reason: fmt.Sprintf(format, args...)}
}

// Parse turns FormSpec DSL text into a fresh Schema. It never partially
// succeeds: on error the returned schema is nil and the caller keeps
// whatever schema it had before.
//
// Lines are processed independently, top to bottom. Blank lines are
// skipped. Lines starting with '#' are directives ("# channel: x",
// "# outbox: x") or plain comments. Everything else must be a field line
// of the form "<identifier> -- <type-spec>" with an optional trailing
// "# comment".
func Parse(text string) (*Schema, error) {
	schema := &Schema{}
	seen := make(map[string]bool)

	for i, rawLine := range strings.Split(text, "\n") {
		lineno := i + 1
		line := strings.TrimSpace(rawLine)

		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			parseDirectiveLine(line, &schema.Directives)
			continue
		}

		left, right, found := strings.Cut(line, "--")
		if !found {
			return nil, parseErrorf(lineno, "missing '--' separator")
		}

		id := strings.TrimSpace(left)
		if id == "" {
			return nil, parseErrorf(lineno, "empty identifier")
		}
		if seen[id] {
			return nil, parseErrorf(lineno, "duplicate identifier '%s'", id)
		}
		seen[id] = true

		typeSpec := strings.TrimSpace(right)
		if j := strings.Index(typeSpec, "#"); j >= 0 {
			typeSpec = strings.TrimSpace(typeSpec[:j])
		}

		field, err := parseTypeSpec(typeSpec, id, lineno)
		if err != nil {
			return nil, err
		}
		field.ID = id
		schema.Fields = append(schema.Fields, field)
	}

	return schema, nil
}

// parseDirectiveLine updates d from a '#' line. Unrecognized content is a
// plain comment and has no effect. Later directives overwrite earlier ones.
func parseDirectiveLine(line string, d *Directives) {
	content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
	switch {
	case strings.HasPrefix(content, "channel:"):
		if v := strings.TrimSpace(strings.TrimPrefix(content, "channel:")); v != "" {
			d.Channel = v
		}
	case strings.HasPrefix(content, "outbox:"):
		if v := strings.TrimSpace(strings.TrimPrefix(content, "outbox:")); v != "" {
			d.Outbox = v
		}
	}
}

// parseTypeSpec parses the text after '--' into a Field (ID left unset).
func parseTypeSpec(typeSpec, id string, lineno int) (Field, error) {
	switch typeSpec {
	case "bool":
		return Field{Type: TypeBool}, nil
	case "date":
		return Field{Type: TypeDate}, nil
	case "time":
		return Field{Type: TypeTime}, nil
	}

	if strings.HasPrefix(typeSpec, `"`) {
		if !strings.HasSuffix(typeSpec, `"`) || len(typeSpec) < 2 {
			return Field{}, parseErrorf(lineno, "malformed fixed value for '%s' (must be a quoted string)", id)
		}
		// Literal text between the quotes, no escape processing.
		return Field{Type: TypeFixed, Value: typeSpec[1 : len(typeSpec)-1]}, nil
	}

	name, rest, found := strings.Cut(typeSpec, "<")
	if !found {
		return Field{}, parseErrorf(lineno, "unknown type '%s' for '%s'", typeSpec, id)
	}
	name = strings.TrimSpace(name)

	if !strings.HasSuffix(rest, ">") {
		return Field{}, parseErrorf(lineno, "malformed type parameters for '%s' (missing '>')", id)
	}
	params := strings.TrimSuffix(rest, ">")

	switch name {
	case "str", "int", "float":
		w, err := parseOneInt(params, "width", id, lineno)
		if err != nil {
			return Field{}, err
		}
		return Field{Type: FieldType(name), Width: w}, nil

	case "text", "json":
		w, h, err := parseTwoInts(params, id, lineno)
		if err != nil {
			return Field{}, err
		}
		return Field{Type: FieldType(name), Width: w, Height: h}, nil

	case "choice":
		items := strings.Split(params, ",")
		for i, item := range items {
			items[i] = strings.TrimSpace(item)
			if items[i] == "" {
				return Field{}, parseErrorf(lineno, "empty item in choice list for '%s'", id)
			}
		}
		return Field{Type: TypeChoice, Items: items}, nil
	}

	return Field{}, parseErrorf(lineno, "unknown type '%s' for '%s'", name, id)
}

func parseOneInt(s, paramName, id string, lineno int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, parseErrorf(lineno, "%s must be an integer for '%s'", paramName, id)
	}
	if v < 1 {
		return 0, parseErrorf(lineno, "%s must be >= 1 for '%s'", paramName, id)
	}
	return v, nil
}

func parseTwoInts(s, id string, lineno int) (int, int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, parseErrorf(lineno, "expected <width,height> for '%s'", id)
	}
	w, errW := strconv.Atoi(strings.TrimSpace(parts[0]))
	h, errH := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errW != nil || errH != nil {
		return 0, 0, parseErrorf(lineno, "width and height must be integers for '%s'", id)
	}
	if w < 1 || h < 1 {
		return 0, 0, parseErrorf(lineno, "width and height must be >= 1 for '%s'", id)
	}
	return w, h, nil
}
