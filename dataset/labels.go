package dataset

import (
	"github.com/YuminosukeSato/pmlgo/pkg/errors"
)

// LabelKind tags which representation a LabelInput carries.
type LabelKind int

const (
	// LabelsNone means the DataSet is unlabelled. It is the zero kind.
	LabelsNone LabelKind = iota
	// LabelsList is a positional list; its implicit ids are 0..n-1.
	LabelsList
	// LabelsMap maps sample ids to labels. Maps carry no order, so the labels
	// are aligned to the data's row order.
	LabelsMap
	// LabelsVector is an explicit (ids, values) pair whose id order must equal
	// the data's row order.
	LabelsVector
)

// LabelInput is the optional label source for New.
type LabelInput struct {
	Kind   LabelKind
	List   []Value
	Map    map[any]Value
	IDs    []any
	Values []Value
}

// NoLabels returns the empty label input.
func NoLabels() LabelInput {
	return LabelInput{}
}

// LabelList builds positional labels.
func LabelList(values ...Value) LabelInput {
	return LabelInput{Kind: LabelsList, List: values}
}

// LabelStrings builds positional string labels.
func LabelStrings(values ...string) LabelInput {
	return LabelList(Strs(values...)...)
}

// LabelMap builds labels keyed by sample id.
func LabelMap(m map[any]Value) LabelInput {
	return LabelInput{Kind: LabelsMap, Map: m}
}

// LabelVector builds labels with explicit sample ids.
func LabelVector(ids []any, values []Value) LabelInput {
	return LabelInput{Kind: LabelsVector, IDs: ids, Values: values}
}

// resolveLabels returns labels aligned with ids, or nil for LabelsNone. It
// fails with InconsistentSampleIdError when the label identities differ from
// the data identities.
func resolveLabels(in LabelInput, ids []any) ([]Value, error) {
	switch in.Kind {
	case LabelsNone:
		return nil, nil

	case LabelsList:
		labelIDs := make([]any, len(in.List))
		for i := range labelIDs {
			labelIDs[i] = i
		}
		if !sameIDs(ids, labelIDs) {
			return nil, errors.NewInconsistentSampleIdError(ids, labelIDs)
		}
		return append([]Value(nil), in.List...), nil

	case LabelsVector:
		if len(in.IDs) != len(in.Values) {
			return nil, errors.NewValidationError("labels", "label ids and values must have equal length", len(in.Values))
		}
		if !sameIDs(ids, in.IDs) {
			return nil, errors.NewInconsistentSampleIdError(ids, in.IDs)
		}
		return append([]Value(nil), in.Values...), nil

	case LabelsMap:
		if in.Map == nil {
			return nil, errors.NewValidationError("labels", "label map is nil", nil)
		}
		out := make([]Value, len(ids))
		for i, id := range ids {
			v, ok := in.Map[id]
			if !ok {
				return nil, errors.NewInconsistentSampleIdError(ids, mapKeys(in.Map))
			}
			out[i] = v
		}
		if len(in.Map) != len(ids) {
			return nil, errors.NewInconsistentSampleIdError(ids, mapKeys(in.Map))
		}
		return out, nil

	default:
		return nil, errors.NewValidationError("labels", "unsupported representation of labels", int(in.Kind))
	}
}

func sameIDs(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func mapKeys(m map[any]Value) []any {
	keys := make([]any, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
