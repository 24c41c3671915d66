package patchboard

import (
	"path/filepath"

	"filetalk/pkg/formspec"
)

// Card is the component ID card other Patchboard processes use to
// discover this component: where its mailboxes live and which channels
// it listens on and emits to. The card itself travels as an ordinary
// envelope on the "card" channel.
type Card struct {
	SchemaVersion int      `json:"schema_version"`
	Title         string   `json:"title"`
	Inbox         string   `json:"inbox"`
	Outbox        string   `json:"outbox"`
	Channels      Channels `json:"channels"`
}

// Channels declares a component's input and output channel names.
type Channels struct {
	In  []string `json:"in"`
	Out []string `json:"out"`
}

// CardChannel is the channel component cards are emitted on.
const CardChannel = "card"

// BuildCard assembles the component card for a set of open schemas.
// Each schema contributes its resolved output channel (channelOverride if
// set, else the schema's channel directive, else the built-in default),
// deduplicated in order of first appearance. With no schemas open the
// resolved default alone is declared. "card" is always included since the
// component can emit on that channel too. Mailbox paths are made
// absolute; relative paths resolve against the working directory.
func BuildCard(title, inbox, outbox, channelOverride string, schemas []*formspec.Schema) Card {
	var out []string
	seen := make(map[string]bool)
	add := func(ch string) {
		if !seen[ch] {
			seen[ch] = true
			out = append(out, ch)
		}
	}
	for _, s := range schemas {
		add(formspec.ResolveChannel(channelOverride, s.Directives))
	}
	if len(out) == 0 {
		add(formspec.ResolveChannel(channelOverride, formspec.Directives{}))
	}
	add(CardChannel)

	return Card{
		SchemaVersion: 1,
		Title:         title,
		Inbox:         absPath(inbox),
		Outbox:        absPath(outbox),
		Channels: Channels{
			In:  []string{"text"},
			Out: out,
		},
	}
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}
