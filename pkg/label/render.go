package label

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// placeholderPattern matches a literal {{LabelN.Field}} token.
var placeholderPattern = regexp.MustCompile(`\{\{Label(\d+)\.(\w+)\}\}`)

// Image drawing extents derive from the field's font-size model; the
// factors turn a nominal point size into a printable edge length.
const (
	iconSizeFactor    = 2.0
	payloadSizeFactor = 3.0
)

// renderState owns the per-generation-call media accumulation. Each
// Generate call creates its own state, so concurrent calls never share
// buffers.
type renderState struct {
	media         []mediaPart
	nextDrawingID int
	icons         ComplianceIconResolver
	payload       PayloadCodeGenerator
	scale         float64
}

// addMedia registers an image and returns its relationship ID.
func (s *renderState) addMedia(data []byte) string {
	relID := fmt.Sprintf("rIdImg%d", len(s.media)+1)
	filename := fmt.Sprintf("image_%s.png", uuid.NewString()[:8])
	s.media = append(s.media, mediaPart{Filename: filename, RelID: relID, Data: data})
	return relID
}

func (s *renderState) nextID() int {
	s.nextDrawingID++
	return s.nextDrawingID
}

// renderChunk substitutes one chunk's contexts into the expanded grid.
// The declarative pass resolves placeholders across run boundaries at
// paragraph granularity; it is known to be unreliable for some
// orientations, so a manual fallback always re-scans every run for
// leftover literal tokens afterwards, regardless of the first pass's
// apparent success.
func renderChunk(doc *Document, contexts []CellContext, o Orientation, state *renderState) {
	forEachCell(doc, o, func(labelIndex int, cell *TableCell) {
		ctx := contextAt(contexts, labelIndex)
		if err := declarativeSubstitute(cell, labelIndex, ctx, o, state); err != nil {
			// Expected for some templates; the fallback pass covers it.
			Logger().Debug("declarative substitution fell back",
				zap.Int("label", labelIndex), zap.Error(err))
		}
		manualSubstitute(cell, ctx)
	})
}

// contextAt returns the context for a 1-based label index, padding
// with the all-empty context.
func contextAt(contexts []CellContext, labelIndex int) CellContext {
	if labelIndex >= 1 && labelIndex <= len(contexts) {
		return contexts[labelIndex-1]
	}
	return EmptyContext()
}

// declarativeSubstitute resolves every placeholder of a cell in one
// pass over each paragraph's combined text, rebuilding the runs from
// the substituted segments. Embedded image placeholders become inline
// drawings sized from the font model.
func declarativeSubstitute(cell *TableCell, labelIndex int, ctx CellContext, o Orientation, state *renderState) error {
	for p := range cell.Paragraphs {
		para := &cell.Paragraphs[p]
		combined := para.GetText()
		if !strings.Contains(combined, "{{") {
			continue
		}
		matches := placeholderPattern.FindAllStringSubmatchIndex(combined, -1)
		if len(matches) == 0 {
			continue
		}

		var baseProps *RunProperties
		if len(para.Runs) > 0 && para.Runs[0].Properties != nil {
			clone := para.Runs[0].Clone()
			baseProps = clone.Properties
		}

		var runs []Run
		last := 0
		for _, m := range matches {
			if m[0] > last {
				runs = append(runs, textRun(combined[last:m[0]], baseProps))
			}
			suffix := combined[m[4]:m[5]]
			ft, ok := fieldForSuffix[suffix]
			if !ok {
				return fmt.Errorf("unknown placeholder field %q", suffix)
			}
			switch ft {
			case FieldDOH, FieldQR:
				if run, ok := imageRun(ft, ctx, o, labelIndex, state); ok {
					runs = append(runs, run)
				}
			default:
				runs = append(runs, textRun(ctx.Values[ft], baseProps))
			}
			last = m[1]
		}
		if last < len(combined) {
			runs = append(runs, textRun(combined[last:], baseProps))
		}
		para.Runs = runs
	}
	return nil
}

// manualSubstitute scans every run for leftover literal tokens and
// replaces them with context values, since the declarative pass is
// unreliable for some orientations. Image placeholders that survive to
// this point are replaced with empty text.
func manualSubstitute(cell *TableCell, ctx CellContext) {
	for p := range cell.Paragraphs {
		for r := range cell.Paragraphs[p].Runs {
			run := &cell.Paragraphs[p].Runs[r]
			if run.Text == nil || !strings.Contains(run.Text.Content, "{{") {
				continue
			}
			run.Text.Content = placeholderPattern.ReplaceAllStringFunc(run.Text.Content, func(tok string) string {
				m := placeholderPattern.FindStringSubmatch(tok)
				ft, ok := fieldForSuffix[m[2]]
				if !ok || ft == FieldDOH || ft == FieldQR {
					return ""
				}
				return ctx.Values[ft]
			})
		}
	}
}

func textRun(content string, props *RunProperties) Run {
	run := Run{Text: &Text{Content: content}}
	if props != nil {
		clone := Run{Properties: props}.Clone()
		run.Properties = clone.Properties
	}
	return run
}

// imageRun builds the inline drawing run for a compliance icon or
// payload-code placeholder. The drawing extent is the field's model
// point size converted to millimeters, times the size factor and the
// caller's scale.
func imageRun(ft FieldType, ctx CellContext, o Orientation, labelIndex int, state *renderState) (Run, bool) {
	if ctx.Empty {
		return Run{}, false
	}
	var data []byte
	var factor float64
	var name string

	switch ft {
	case FieldDOH:
		flag := ctx.Values[FieldDOH]
		if flag == "" {
			return Run{}, false
		}
		icon, ok := state.icons.Icon(flag, ctx.ProductType)
		if !ok {
			return Run{}, false
		}
		data, factor, name = icon, iconSizeFactor, "compliance-icon"
	case FieldQR:
		displayName := ctx.Values[FieldQR]
		if displayName == "" {
			return Run{}, false
		}
		img, err := state.payload.Generate(displayName)
		if err != nil {
			Logger().Warn("payload code generation failed",
				zap.Int("label", labelIndex), zap.Error(err))
			return Run{}, false
		}
		data, factor, name = img, payloadSizeFactor, "payload-code"
	default:
		return Run{}, false
	}

	pt := emptyValueSize(o, FieldDefault)
	mm := pointsToMM(pt) * factor * state.scale
	emu := mmToEMU(mm)
	relID := state.addMedia(data)
	return Run{Drawing: &Drawing{
		ID:        state.nextID(),
		Name:      name,
		RelID:     relID,
		WidthEMU:  emu,
		HeightEMU: emu,
	}}, true
}
