package label

import (
	"bytes"
	"time"

	"go.uber.org/zap"
)

// Engine is the label generation pipeline. The zero value is not
// usable; construct with NewEngine.
type Engine struct {
	cfg       Config
	Templates *TemplateLibrary
	Store     Store
	Icons     ComplianceIconResolver
	Payload   PayloadCodeGenerator
}

// NewEngine builds an engine with no-op collaborators. Callers swap in
// real ones before generating.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		cfg:       cfg,
		Templates: NewTemplateLibrary(cfg.TemplateDir),
		Store:     NopStore{},
		Icons:     NopIconResolver{},
		Payload:   QRPayloadGenerator{},
	}, nil
}

// Generate renders the records as a single docx document of labels in
// the given orientation. Records are deduplicated first-occurrence
// wins, split into grid-capacity chunks, and rendered one chunk per
// page. When the total budget runs out mid-batch the chunks already
// rendered are composed and returned; when a chunk overruns its own
// budget only its cosmetic pass is skipped.
func (e *Engine) Generate(records []Record, o Orientation, scale float64) ([]byte, error) {
	if !o.Valid() {
		return nil, NewTemplateError(o, "unknown orientation", nil)
	}
	if scale <= 0 {
		scale = e.cfg.DefaultScale
	}

	records = dedupeRecords(records)
	chunks := chunkRecords(records, o, e.cfg.ChunkCeiling)
	if len(chunks) == 0 {
		return nil, ErrNoRenderableChunks
	}

	state := &renderState{icons: e.Icons, payload: e.Payload, scale: scale}
	deadline := time.Now().Add(e.cfg.TotalBudget)

	var rendered []*Document
	for i, chunk := range chunks {
		// The first chunk always renders; a too-small budget degrades to
		// partial output, never to an empty document.
		if i > 0 && time.Now().After(deadline) {
			Logger().Warn("total budget exhausted, returning partial output",
				zap.Int("rendered", i), zap.Int("total", len(chunks)))
			break
		}
		doc, err := e.renderOne(chunk, o, state)
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, doc)
	}
	if len(rendered) == 0 {
		return nil, ErrNoRenderableChunks
	}

	composed := compose(rendered)
	docXML, err := serializeDocument(composed)
	if err != nil {
		return nil, err
	}
	return writePackage(docXML, state.media)
}

// renderOne runs the full per-chunk pipeline: load and parse the base
// template, expand the grid, substitute, format, and tidy if the chunk
// budget allows.
func (e *Engine) renderOne(chunk []Record, o Orientation, state *renderState) (*Document, error) {
	started := time.Now()

	base, err := e.Templates.Base(o)
	if err != nil {
		return nil, err
	}
	pkg, err := openPackage(base)
	if err != nil {
		return nil, NewDocumentError("open template", "package", err)
	}
	docXML, err := pkg.documentXML()
	if err != nil {
		return nil, NewDocumentError("open template", "word/document.xml", err)
	}
	doc, err := ParseDocument(bytes.NewReader(docXML))
	if err != nil {
		return nil, NewDocumentError("parse template", "word/document.xml", err)
	}
	if err := ExpandGrid(doc, o); err != nil {
		return nil, err
	}

	contexts := make([]CellContext, 0, o.Capacity())
	for _, rec := range chunk {
		contexts = append(contexts, BuildContext(rec, o, e.Store))
	}
	for len(contexts) < o.Capacity() {
		contexts = append(contexts, EmptyContext())
	}

	renderChunk(doc, contexts, o, state)
	formatChunk(doc, contexts, o, state.scale)

	if elapsed := time.Since(started); elapsed > e.cfg.ChunkBudget {
		Logger().Warn("chunk budget exhausted, skipping cosmetic pass",
			zap.Duration("elapsed", elapsed))
	} else {
		tidyChunk(doc, o)
	}
	return doc, nil
}

// compose merges the per-chunk documents into one body, one chunk per
// page, with an explicit page break between chunks.
func compose(docs []*Document) *Document {
	if len(docs) == 1 {
		return docs[0]
	}
	out := &Document{Body: &Body{}}
	for i, doc := range docs {
		if i > 0 {
			out.Body.Elements = append(out.Body.Elements, pageBreakParagraph())
		}
		out.Body.Elements = append(out.Body.Elements, doc.Body.Elements...)
	}
	return out
}

func pageBreakParagraph() *Paragraph {
	return &Paragraph{Runs: []Run{{Break: &Break{Type: "page"}}}}
}

// Generate renders records with a throwaway engine using the default
// configuration.
func Generate(records []Record, o Orientation, scale float64) ([]byte, error) {
	engine, err := NewEngine(DefaultConfig())
	if err != nil {
		return nil, err
	}
	return engine.Generate(records, o, scale)
}
