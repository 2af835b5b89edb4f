package discord

import "standup/internal/board"

// Wire types for webhook payloads.

type Message struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Thumbnail   *Thumbnail   `json:"thumbnail,omitempty"`
	Footer      *Footer      `json:"footer,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type Thumbnail struct {
	URL string `json:"url"`
}

type Footer struct {
	Text    string `json:"text"`
	IconURL string `json:"icon_url,omitempty"`
}

// Platform limits enforced by the assembler.
const (
	MaxFieldsPerEmbed = 25
	MaxEmbedsPerCall  = 10
	MaxBlockedCallout = 5
)

// Accent colors for the report embeds.
const (
	ColorStandup = 0x5865F2
	ColorMetrics = 0x3498DB
	ColorError   = 0xE74C3C
)

// Zero-width space; Discord renders it as a blank field name/value.
const blank = "​"

// SpacerField forces a row break in layouts that do not auto-wrap.
func SpacerField() EmbedField {
	return EmbedField{Name: blank, Value: blank, Inline: false}
}

// FromBoard converts rendered board blocks to wire fields.
func FromBoard(fields []board.Field) []EmbedField {
	out := make([]EmbedField, len(fields))
	for i, f := range fields {
		out[i] = EmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline}
	}
	return out
}
