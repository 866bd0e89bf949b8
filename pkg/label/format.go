package label

import "strings"

// Formatting constants applied during the marker pass.
const (
	// vendorGray is the light gray used for supplier names.
	vendorGray = "A6A6A6"
	// paragraphSpacingTwips is the fixed small space-before/after that
	// keeps label margins uniform.
	paragraphSpacingTwips = 20
)

// formatChunk runs the marker pass over every cell of a chunk: find
// marker-wrapped spans, compute each field's font size, rewrite the
// paragraph's runs from the span list in one pass, and reapply
// per-field alignment and spacing. A final sweep strips any residual
// marker tokens.
func formatChunk(doc *Document, contexts []CellContext, o Orientation, scale float64) {
	forEachCell(doc, o, func(labelIndex int, cell *TableCell) {
		ctx := contextAt(contexts, labelIndex)
		for p := range cell.Paragraphs {
			formatParagraph(&cell.Paragraphs[p], ctx, o, scale)
		}
	})
	sweepResidualMarkers(doc, o)
}

// formatParagraph rewrites one paragraph from its marker span list.
// A single run-group may hold several distinct marker-wrapped fields;
// parsing the combined text once and rebuilding from the span list
// resolves all of them in one pass, so processing order can never
// shift the offsets of unprocessed markers.
func formatParagraph(para *Paragraph, ctx CellContext, o Orientation, scale float64) {
	combined := para.GetText()
	spans := parseMarkerSpans(combined)
	if len(spans) == 0 {
		return
	}

	var baseProps *RunProperties
	if len(para.Runs) > 0 && para.Runs[0].Properties != nil {
		clone := para.Runs[0].Clone()
		baseProps = clone.Properties
	}

	var runs []Run
	last := 0
	for _, span := range spans {
		if span.Start > last {
			if plain := combined[last:span.Start]; plain != "" {
				runs = append(runs, textRun(plain, baseProps))
			}
		}
		runs = append(runs, fieldRuns(span, o, scale, baseProps)...)
		last = span.End
	}
	if last < len(combined) {
		if plain := combined[last:]; plain != "" {
			runs = append(runs, textRun(plain, baseProps))
		}
	}
	para.Runs = runs

	// Alignment is a paragraph-level property, so a paragraph holding
	// several fields takes it from the first span. The templates keep
	// every aligned field (brand, vendor, lineage) in a paragraph of
	// its own; only unaligned fields share one.
	applyParagraphStyle(para, spans[0].Field, ctx)
}

// fieldRuns builds the sized runs for one marker span, converting
// line-break sentinels into real breaks. An empty value still gets a
// sized empty run so empty cells reserve consistent space.
func fieldRuns(span markerSpan, o Orientation, scale float64, base *RunProperties) []Run {
	size := resolveSize(o, span.Field, span.Value, scale)
	props := fieldProperties(span.Field, size, base)

	parts := strings.Split(span.Value, LineBreakSentinel)
	runs := make([]Run, 0, len(parts)*2)
	for i, part := range parts {
		if i > 0 {
			breakRun := Run{Break: &Break{}}
			if props != nil {
				clone := Run{Properties: props}.Clone()
				breakRun.Properties = clone.Properties
			}
			runs = append(runs, breakRun)
		}
		run := Run{Text: &Text{Content: part}}
		if props != nil {
			clone := Run{Properties: props}.Clone()
			run.Properties = clone.Properties
		}
		runs = append(runs, run)
	}
	return runs
}

// fieldProperties derives the run properties for a field at the given
// size, layered over the template run's base properties.
func fieldProperties(ft FieldType, sizePt float64, base *RunProperties) *RunProperties {
	props := &RunProperties{}
	if base != nil {
		clone := Run{Properties: base}.Clone()
		props = clone.Properties
	}
	halfPoints := int(sizePt*2 + 0.5)
	props.Size = &HalfPoints{Val: halfPoints}
	props.SizeCs = &HalfPoints{Val: halfPoints}

	switch ft {
	case FieldVendor:
		// Supplier names are deliberately muted: light gray, italic,
		// never bold.
		props.Bold = nil
		props.Italic = &Empty{}
		props.Color = &Color{Val: vendorGray}
	case FieldDescription, FieldPrice:
		props.Bold = &Empty{}
	}
	return props
}

// applyParagraphStyle reapplies per-field alignment and the fixed
// small spacing after substitution.
func applyParagraphStyle(para *Paragraph, ft FieldType, ctx CellContext) {
	if para.Properties == nil {
		para.Properties = &ParagraphProperties{}
	}
	switch ft {
	case FieldBrand:
		para.Properties.Alignment = &Alignment{Val: "center"}
	case FieldVendor:
		para.Properties.Alignment = &Alignment{Val: "right"}
	case FieldLineage:
		if ctx.Classic {
			para.Properties.Alignment = &Alignment{Val: "left"}
		} else {
			para.Properties.Alignment = &Alignment{Val: "center"}
		}
	}
	para.Properties.Spacing = &Spacing{
		Before: paragraphSpacingTwips,
		After:  paragraphSpacingTwips,
	}
}

// sweepResidualMarkers removes any marker tokens that survived the
// span pass (unterminated pairs, tokens split across paragraphs).
// Only whole tokens are removed; text that merely resembles a marker
// (a brand literally named "END") is preserved.
func sweepResidualMarkers(doc *Document, o Orientation) {
	forEachCell(doc, o, func(_ int, cell *TableCell) {
		for p := range cell.Paragraphs {
			for r := range cell.Paragraphs[p].Runs {
				run := &cell.Paragraphs[p].Runs[r]
				if run.Text != nil && run.Text.Content != "" {
					run.Text.Content = stripResidualMarkers(run.Text.Content)
				}
			}
		}
	})
}

// tidyChunk is the optional cosmetic pass: it drops runs that carry no
// content at all. Runs with an explicit size are kept even when empty,
// because they reserve vertical space in empty cells. Curtailed when
// the chunk budget is exhausted; never required for correctness.
func tidyChunk(doc *Document, o Orientation) {
	forEachCell(doc, o, func(_ int, cell *TableCell) {
		for p := range cell.Paragraphs {
			para := &cell.Paragraphs[p]
			var kept []Run
			for _, run := range para.Runs {
				switch {
				case run.Text != nil && run.Text.Content != "":
					kept = append(kept, run)
				case run.Break != nil || run.Drawing != nil:
					kept = append(kept, run)
				case run.Properties != nil && run.Properties.Size != nil:
					kept = append(kept, run)
				}
			}
			para.Runs = kept
		}
	})
}
