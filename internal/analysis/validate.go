package analysis

import (
	"go/token"
	"go/types"
)

// FindingKind identifies which check a finding came from.
type FindingKind int

const (
	FindingMissing FindingKind = iota
	FindingLiteralName
	FindingNotIterable
	FindingNotAccessible
	FindingArgCount
	FindingArgsOnStored
)

// Finding is one validation result for a source descriptor, before
// rendering into a diagnostic.
type Finding struct {
	Kind FindingKind
	Pos  token.Pos

	// Name is the source name as declared; empty for the
	// provider-as-source form.
	Name string

	// Want and Got carry the parameter and argument counts for
	// FindingArgCount.
	Want, Got int

	// Type is the rendered offending type for FindingNotIterable.
	Type string
}

// Validate runs every check on a descriptor and its resolved member.
// All findings are produced regardless of which checks are enabled;
// severity filtering happens when findings are rendered.
//
// m is nil when resolution found no declaration. For the
// provider-as-source form m is ignored: the provider type itself is
// the data.
func Validate(desc *SourceDescriptor, m *Member) []Finding {
	if !desc.HasName {
		return validateProviderData(desc)
	}

	if m == nil {
		return []Finding{{Kind: FindingMissing, Pos: desc.NamePos, Name: desc.Name}}
	}

	var out []Finding
	if desc.IsStringLiteral {
		out = append(out, Finding{Kind: FindingLiteralName, Pos: desc.NamePos, Name: desc.Name})
	}

	switch m.Kind {
	case MemberStored:
		out = append(out, checkIterable(desc, m.DataType)...)
		if desc.ExtraArgCount != nil && *desc.ExtraArgCount > 0 {
			out = append(out, Finding{
				Kind: FindingArgsOnStored,
				Pos:  desc.NamePos,
				Name: desc.Name,
				Got:  *desc.ExtraArgCount,
			})
		}
	case MemberMethod:
		if m.PtrReceiver && desc.Scope.ByValue {
			out = append(out, Finding{
				Kind: FindingNotAccessible,
				Pos:  desc.NamePos,
				Name: desc.Name,
			})
		}
		out = append(out, checkCallable(desc, m)...)
	case MemberFunc:
		out = append(out, checkCallable(desc, m)...)
	}
	return out
}

// validateProviderData checks the provider-as-source form: the
// provider type itself must hold the cases.
func validateProviderData(desc *SourceDescriptor) []Finding {
	if desc.Scope.Provider == nil || Iterable(desc.Scope.Provider) {
		return nil
	}
	return []Finding{{
		Kind: FindingNotIterable,
		Pos:  desc.NamePos,
		Name: desc.Scope.Provider.Obj().Name(),
		Type: desc.Scope.Provider.String(),
	}}
}

func checkCallable(desc *SourceDescriptor, m *Member) []Finding {
	var out []Finding
	out = append(out, checkIterable(desc, m.DataType)...)
	if desc.ExtraArgCount != nil && *desc.ExtraArgCount != m.Params {
		out = append(out, Finding{
			Kind: FindingArgCount,
			Pos:  desc.NamePos,
			Name: desc.Name,
			Want: m.Params,
			Got:  *desc.ExtraArgCount,
		})
	}
	return out
}

func checkIterable(desc *SourceDescriptor, t types.Type) []Finding {
	if t != nil && Iterable(t) {
		return nil
	}
	rendered := "(no value)"
	if t != nil {
		rendered = t.String()
	}
	return []Finding{{
		Kind: FindingNotIterable,
		Pos:  desc.NamePos,
		Name: desc.Name,
		Type: rendered,
	}}
}

// Iterable reports whether a type can yield cases: a slice, array,
// map, or channel core type, or a single-use iterator function of
// the iter.Seq shape.
func Iterable(t types.Type) bool {
	switch u := types.Unalias(t).Underlying().(type) {
	case *types.Slice, *types.Array, *types.Map, *types.Chan:
		return true
	case *types.Signature:
		return isSeqShape(u)
	}
	return false
}

// isSeqShape matches func(yield func(E) bool) and
// func(yield func(K, V) bool), the iter.Seq and iter.Seq2 forms.
func isSeqShape(sig *types.Signature) bool {
	if sig.Params().Len() != 1 || sig.Results().Len() != 0 {
		return false
	}
	yield, ok := types.Unalias(sig.Params().At(0).Type()).Underlying().(*types.Signature)
	if !ok {
		return false
	}
	if n := yield.Params().Len(); n != 1 && n != 2 {
		return false
	}
	if yield.Results().Len() != 1 {
		return false
	}
	basic, ok := yield.Results().At(0).Type().Underlying().(*types.Basic)
	return ok && basic.Kind() == types.Bool
}
