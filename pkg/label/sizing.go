package label

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed sizing_tables.yaml
var sizingTablesYAML []byte

// sizeStep is one (threshold, size) pair of a font sizing table. A nil
// UpTo means the step is unbounded and catches every complexity beyond
// the finite thresholds.
type sizeStep struct {
	UpTo *float64 `yaml:"upto"`
	Pt   float64  `yaml:"pt"`
}

// fontTables holds every sizing table, keyed by orientation then field.
type fontTables map[Orientation]map[FieldType][]sizeStep

// fallbackSize is used when neither the field's table nor the
// orientation's default table exists.
const fallbackSize = 12.0

var sizingTables = mustLoadSizingTables()

func mustLoadSizingTables() fontTables {
	tables, err := loadSizingTables(sizingTablesYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded sizing tables invalid: %v", err))
	}
	return tables
}

// loadSizingTables parses and validates the sizing table data. Every
// table must have strictly increasing thresholds and end with exactly
// one unbounded step, so a lookup always resolves to exactly one size.
func loadSizingTables(data []byte) (fontTables, error) {
	var raw map[string]map[string][]sizeStep
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse sizing tables: %w", err)
	}

	tables := make(fontTables, len(raw))
	for oname, fields := range raw {
		o := Orientation(oname)
		if !o.Valid() {
			return nil, fmt.Errorf("sizing tables: unknown orientation %q", oname)
		}
		tables[o] = make(map[FieldType][]sizeStep, len(fields))
		for fname, steps := range fields {
			ft := FieldType(fname)
			if err := validateSteps(steps); err != nil {
				return nil, fmt.Errorf("sizing table %s/%s: %w", oname, fname, err)
			}
			tables[o][ft] = steps
		}
	}
	for _, o := range Orientations() {
		if _, ok := tables[o][FieldDefault]; !ok {
			return nil, fmt.Errorf("sizing tables: orientation %s lacks a default table", o)
		}
	}
	return tables, nil
}

func validateSteps(steps []sizeStep) error {
	if len(steps) == 0 {
		return fmt.Errorf("empty table")
	}
	prev := -1.0
	for i, s := range steps {
		if s.Pt <= 0 {
			return fmt.Errorf("step %d: non-positive size %v", i, s.Pt)
		}
		if s.UpTo == nil {
			if i != len(steps)-1 {
				return fmt.Errorf("step %d: unbounded step before end of table", i)
			}
			continue
		}
		if *s.UpTo <= prev {
			return fmt.Errorf("step %d: threshold %v not strictly increasing", i, *s.UpTo)
		}
		prev = *s.UpTo
	}
	if last := steps[len(steps)-1]; last.UpTo != nil {
		return fmt.Errorf("last step must be unbounded")
	}
	return nil
}

// stepsFor returns the sizing table for (orientation, field), falling
// back to the orientation's default table, then nil.
func stepsFor(o Orientation, ft FieldType) []sizeStep {
	fields, ok := sizingTables[o]
	if !ok {
		return nil
	}
	if steps, ok := fields[ft]; ok {
		return steps
	}
	return fields[FieldDefault]
}

// tableLookup selects the size for a complexity value: the first step
// whose threshold is >= complexity (inclusive), or the unbounded step.
func tableLookup(steps []sizeStep, complexity float64) float64 {
	for _, s := range steps {
		if s.UpTo == nil || complexity <= *s.UpTo {
			return s.Pt
		}
	}
	// Unreachable for validated tables; kept for the missing-table path.
	return fallbackSize
}

// emptyValueSize returns the size reserved for an empty field value:
// the first entry of the field's own table, so empty cells keep the
// same vertical rhythm as populated ones.
func emptyValueSize(o Orientation, ft FieldType) float64 {
	steps := stepsFor(o, ft)
	if len(steps) == 0 {
		return fallbackSize
	}
	return steps[0].Pt
}

// nearInvisibleSize is the orientation's minimal strain size: the data
// is already encoded in the payload-code image, so the text only needs
// to exist, not to be readable.
func nearInvisibleSize(o Orientation) float64 {
	steps := stepsFor(o, FieldStrain)
	if len(steps) == 0 {
		return 1
	}
	return steps[len(steps)-1].Pt
}
