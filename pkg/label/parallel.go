package label

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// GeneratePartitioned renders the records as several independent
// documents in parallel, one per partition, for callers that print
// partitions on separate devices. Output order matches input order.
// The first failing partition cancels the rest.
func (e *Engine) GeneratePartitioned(ctx context.Context, records []Record, o Orientation, scale float64, partitions int) ([][]byte, error) {
	if partitions <= 1 {
		doc, err := e.Generate(records, o, scale)
		if err != nil {
			return nil, err
		}
		return [][]byte{doc}, nil
	}

	records = dedupeRecords(records)
	if len(records) == 0 {
		return nil, ErrNoRenderableChunks
	}
	if partitions > len(records) {
		partitions = len(records)
	}

	parts := splitRecords(records, partitions)
	out := make([][]byte, len(parts))

	g, ctx := errgroup.WithContext(ctx)
	for i, part := range parts {
		i, part := i, part
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := e.generateDeduped(part, o, scale)
			if err != nil {
				return WithOperation(err, "render partition")
			}
			out[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// generateDeduped is Generate without the dedupe pass, for callers
// that already deduplicated across partitions.
func (e *Engine) generateDeduped(records []Record, o Orientation, scale float64) ([]byte, error) {
	if !o.Valid() {
		return nil, NewTemplateError(o, "unknown orientation", nil)
	}
	if scale <= 0 {
		scale = e.cfg.DefaultScale
	}
	chunks := chunkRecords(records, o, e.cfg.ChunkCeiling)
	if len(chunks) == 0 {
		return nil, ErrNoRenderableChunks
	}

	state := &renderState{icons: e.Icons, payload: e.Payload, scale: scale}
	rendered := make([]*Document, 0, len(chunks))
	for _, chunk := range chunks {
		doc, err := e.renderOne(chunk, o, state)
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, doc)
	}

	docXML, err := serializeDocument(compose(rendered))
	if err != nil {
		return nil, err
	}
	return writePackage(docXML, state.media)
}

// splitRecords divides records into n contiguous partitions of
// near-equal size.
func splitRecords(records []Record, n int) [][]Record {
	parts := make([][]Record, 0, n)
	base := len(records) / n
	extra := len(records) % n
	start := 0
	for i := 0; i < n; i++ {
		size := base
		if i < extra {
			size++
		}
		parts = append(parts, records[start:start+size])
		start += size
	}
	return parts
}
