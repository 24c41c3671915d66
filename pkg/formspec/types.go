// Package formspec implements the FormSpec DSL: parsing form descriptions
// into typed field schemas and validating raw per-field input into signals.
package formspec

// FieldType identifies one of the closed set of field types.
type FieldType string

// Field type constants. The set is closed: the validator and any renderer
// switch exhaustively over these tags.
const (
	TypeStr    FieldType = "str"    // single-line text, str<width>
	TypeText   FieldType = "text"   // multi-line text, text<width,height>
	TypeChoice FieldType = "choice" // one of a fixed item list, choice<a,b,...>
	TypeBool   FieldType = "bool"   // boolean flag
	TypeInt    FieldType = "int"    // base-10 integer, int<width>
	TypeFloat  FieldType = "float"  // finite number, float<width>
	TypeJSON   FieldType = "json"   // well-formed JSON value, json<width,height>
	TypeDate   FieldType = "date"   // ISO calendar date yyyy-mm-dd
	TypeTime   FieldType = "time"   // ISO time-of-day hh:mm:ss
	TypeFixed  FieldType = "fixed"  // constant quoted literal
)

// Field is one named, typed entry in a form schema. Only the parameters
// relevant to the field's type are populated: Width for str/int/float,
// Width and Height for text/json, Items for choice, Value for fixed.
type Field struct {
	ID     string    `json:"id" yaml:"id"`
	Type   FieldType `json:"type" yaml:"type"`
	Width  int       `json:"width,omitempty" yaml:"width,omitempty"`
	Height int       `json:"height,omitempty" yaml:"height,omitempty"`
	Items  []string  `json:"items,omitempty" yaml:"items,omitempty"`
	Value  string    `json:"value,omitempty" yaml:"value,omitempty"`
}

// Directives holds the optional overrides a spec can declare with
// "# channel:" and "# outbox:" lines. Empty string means not set.
type Directives struct {
	Channel string `json:"channel,omitempty" yaml:"channel,omitempty"`
	Outbox  string `json:"outbox,omitempty" yaml:"outbox,omitempty"`
}

// Schema is the result of one successful parse: the declared directives
// plus the fields in declaration order. Schemas are ephemeral; a re-parse
// produces a fresh one and a failed parse leaves the old one untouched.
type Schema struct {
	Directives Directives `json:"directives" yaml:"directives"`
	Fields     []Field    `json:"fields" yaml:"fields"`
}

// Signal maps field id to validated, typed value. It is built
// all-or-nothing by CollectSignal and becomes the payload of an
// outgoing message envelope.
type Signal map[string]any

// Built-in defaults used when neither an external override nor a DSL
// directive supplies a value.
const (
	DefaultChannel = "output"
	DefaultOutbox  = "OUTBOX"
	DefaultInbox   = "INBOX"
)

// ResolveChannel returns the channel to emit on. Precedence: explicit
// override > DSL directive > DefaultChannel. Resolution is computed fresh
// per emission; nothing is cached.
func ResolveChannel(override string, d Directives) string {
	if override != "" {
		return override
	}
	if d.Channel != "" {
		return d.Channel
	}
	return DefaultChannel
}

// ResolveOutbox returns the outbox directory to emit into. Precedence:
// explicit override > DSL directive > DefaultOutbox.
func ResolveOutbox(override string, d Directives) string {
	if override != "" {
		return override
	}
	if d.Outbox != "" {
		return d.Outbox
	}
	return DefaultOutbox
}

// ResolveInbox returns the inbox directory to scan. There is no DSL
// directive for the inbox, so precedence is override > DefaultInbox.
func ResolveInbox(override string) string {
	if override != "" {
		return override
	}
	return DefaultInbox
}
