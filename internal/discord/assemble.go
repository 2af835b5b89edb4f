package discord

// Assembly helpers that keep payloads inside the platform limits.

// WrapRows inserts a spacer after every third consecutive inline field so
// rows break at three columns on renderers that do not auto-wrap. Full-
// width fields reset the count.
func WrapRows(fields []EmbedField) []EmbedField {
	out := make([]EmbedField, 0, len(fields))
	run := 0
	for _, f := range fields {
		out = append(out, f)
		if !f.Inline {
			run = 0
			continue
		}
		run++
		if run == 3 {
			out = append(out, SpacerField())
			run = 0
		}
	}
	return out
}

// SplitFields distributes fields over as many copies of the template embed
// as the per-embed field cap requires, preserving order. Continuation
// embeds drop the description so the text is not repeated.
func SplitFields(template Embed, fields []EmbedField) []Embed {
	if len(fields) <= MaxFieldsPerEmbed {
		template.Fields = fields
		return []Embed{template}
	}

	var embeds []Embed
	for start := 0; start < len(fields); start += MaxFieldsPerEmbed {
		end := start + MaxFieldsPerEmbed
		if end > len(fields) {
			end = len(fields)
		}

		e := template
		e.Fields = fields[start:end]
		if start > 0 {
			e.Description = ""
			e.Thumbnail = nil
		}
		embeds = append(embeds, e)
	}
	return embeds
}

// ChunkEmbeds splits an embed list into webhook calls of at most
// MaxEmbedsPerCall each, preserving order.
func ChunkEmbeds(embeds []Embed) [][]Embed {
	if len(embeds) == 0 {
		return nil
	}

	var chunks [][]Embed
	for start := 0; start < len(embeds); start += MaxEmbedsPerCall {
		end := start + MaxEmbedsPerCall
		if end > len(embeds) {
			end = len(embeds)
		}
		chunks = append(chunks, embeds[start:end])
	}
	return chunks
}
