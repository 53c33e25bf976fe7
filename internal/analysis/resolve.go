package analysis

import (
	"go/token"
	"go/types"
)

// MemberKind classifies what a source name resolved to.
type MemberKind int

const (
	// MemberStored is a field of the provider or a package-level
	// variable: the declaration itself holds the cases.
	MemberStored MemberKind = iota

	// MemberMethod is a method of the provider type.
	MemberMethod

	// MemberFunc is a package-level function.
	MemberFunc
)

func (k MemberKind) String() string {
	switch k {
	case MemberStored:
		return "stored"
	case MemberMethod:
		return "method"
	case MemberFunc:
		return "func"
	}
	return "unknown"
}

// Member is a resolved case-source declaration.
type Member struct {
	Kind MemberKind
	Obj  types.Object

	// DataType is the type holding the cases: the stored value's
	// type, or a callable's first result. Nil when a callable
	// returns nothing.
	DataType types.Type

	// Params is the callable's parameter count; zero for stored
	// members.
	Params int

	// PtrReceiver reports a method declared on the pointer type,
	// unreachable from a by-value provider.
	PtrReceiver bool
}

// Resolve looks the source name up in its scope. A nil return means
// no matching declaration exists — resolution considers only fields,
// methods, package variables, and package functions, so a name bound
// to something else (a type, a constant) is also a miss. Names that
// are not valid identifiers cannot resolve.
func Resolve(scope Scope, name string) *Member {
	if !token.IsIdentifier(name) {
		return nil
	}
	if scope.Provider != nil {
		return resolveProviderMember(scope, name)
	}
	return resolvePackageMember(scope.Pkg, name)
}

func resolveProviderMember(scope Scope, name string) *Member {
	// Look through the pointer type so pointer-receiver methods are
	// found and reported as inaccessible, rather than missing, for
	// by-value providers.
	obj, _, _ := types.LookupFieldOrMethod(scope.Provider, true, scope.Pkg, name)

	switch o := obj.(type) {
	case *types.Var:
		if !o.IsField() {
			return nil
		}
		return &Member{Kind: MemberStored, Obj: o, DataType: o.Type()}
	case *types.Func:
		sig := o.Signature()
		m := &Member{
			Kind:     MemberMethod,
			Obj:      o,
			DataType: firstResult(sig),
			Params:   sig.Params().Len(),
		}
		if recv := sig.Recv(); recv != nil {
			_, m.PtrReceiver = types.Unalias(recv.Type()).(*types.Pointer)
		}
		return m
	}
	return nil
}

func resolvePackageMember(pkg *types.Package, name string) *Member {
	switch o := pkg.Scope().Lookup(name).(type) {
	case *types.Var:
		return &Member{Kind: MemberStored, Obj: o, DataType: o.Type()}
	case *types.Func:
		sig := o.Signature()
		return &Member{
			Kind:     MemberFunc,
			Obj:      o,
			DataType: firstResult(sig),
			Params:   sig.Params().Len(),
		}
	}
	return nil
}

// firstResult returns the callable's first result type, or nil for a
// callable that returns nothing.
func firstResult(sig *types.Signature) types.Type {
	if sig.Results().Len() == 0 {
		return nil
	}
	return sig.Results().At(0).Type()
}
