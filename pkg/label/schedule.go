package label

import "go.uber.org/zap"

// dedupeRecords drops repeated records, keeping the first occurrence
// of each identity key. Records without any identity signal are kept
// as-is; they cannot collide meaningfully.
func dedupeRecords(records []Record) []Record {
	seen := make(map[string]struct{}, len(records))
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		key := rec.IdentityKey()
		if key == "" {
			out = append(out, rec)
			continue
		}
		if _, dup := seen[key]; dup {
			Logger().Warn("duplicate record dropped",
				zap.String("key", key),
				zap.String("name", rec.DisplayName()))
			continue
		}
		seen[key] = struct{}{}
		out = append(out, rec)
	}
	return out
}

// chunkRecords splits records into page-sized chunks. Chunk size is
// the orientation's grid capacity, capped by the configured ceiling.
func chunkRecords(records []Record, o Orientation, ceiling int) [][]Record {
	size := o.Capacity()
	if ceiling > 0 && ceiling < size {
		size = ceiling
	}
	if size <= 0 {
		return nil
	}
	var chunks [][]Record
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		chunks = append(chunks, records[start:end])
	}
	return chunks
}
