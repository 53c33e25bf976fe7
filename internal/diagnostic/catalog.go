package diagnostic

import (
	"fmt"
	"sort"
)

// Check IDs. The CV1xxx range covers case-source validation; the
// CV2xxx range covers classic assertion rewrites.
const (
	// SourceMissing: the source name does not resolve to any
	// admissible declaration. Error severity — an unresolved source
	// fails at test runtime.
	SourceMissing ID = "CV1001"

	// LiteralSourceName: the source name is a raw string literal
	// even though it resolves; a named constant keeps the reference
	// in one place.
	LiteralSourceName ID = "CV1002"

	// SourceNotIterable: the resolved source's value or result type
	// cannot be iterated.
	SourceNotIterable ID = "CV1003"

	// SourceNotAccessible: the source is a pointer-receiver method
	// on a provider supplied by value, so reflection cannot see it.
	SourceNotAccessible ID = "CV1004"

	// SourceArgCountMismatch: the declared extra arguments do not
	// match the source function's parameter count.
	SourceArgCountMismatch ID = "CV1005"

	// ArgsOnStoredSource: extra arguments supplied to a field or
	// variable source, which cannot be invoked.
	ArgsOnStoredSource ID = "CV1006"

	// ClassicEqual, ClassicIsType, ClassicNil flag deprecated
	// two-value verify helpers; each carries a constraint-form fix.
	ClassicEqual  ID = "CV2001"
	ClassicIsType ID = "CV2002"
	ClassicNil    ID = "CV2003"
)

// Descriptor is the static definition of one check. The catalog is
// built once at package init and never mutated.
type Descriptor struct {
	// ID is the stable identifier.
	ID ID

	// Slug is the config-facing name (e.g. "source-missing").
	Slug string

	// Title is a short human-readable summary.
	Title string

	// Category groups related checks for reporting.
	Category string

	// Severity is the default severity before config overrides.
	Severity Severity

	// Enabled reports whether the check emits by default. Disabled
	// checks are fully detected but only emitted when a config
	// override turns them on.
	Enabled bool

	// Description is free text for docs and the schema command.
	Description string
}

// Categories used by the catalog.
const (
	CategorySource  = "case-source"
	CategoryRewrite = "assertion-rewrite"
)

var catalog = map[ID]Descriptor{
	SourceMissing: {
		ID:       SourceMissing,
		Slug:     "source-missing",
		Title:    "case source not found",
		Category: CategorySource,
		Severity: SeverityError,
		Enabled:  true,
		Description: "The name passed to casesource.From does not resolve to a " +
			"package-level declaration or a member of the provider type. The " +
			"test will fail at runtime when the source is looked up.",
	},
	LiteralSourceName: {
		ID:       LiteralSourceName,
		Slug:     "literal-source-name",
		Title:    "case source named by a string literal",
		Category: CategorySource,
		Severity: SeverityWarning,
		Enabled:  true,
		Description: "The source name is a raw string literal. Declaring the name " +
			"as a named constant next to the source keeps the reference in one " +
			"place when the source is renamed.",
	},
	SourceNotIterable: {
		ID:       SourceNotIterable,
		Slug:     "source-not-iterable",
		Title:    "case source is not iterable",
		Category: CategorySource,
		Severity: SeverityWarning,
		Enabled:  false,
		Description: "The resolved source's value or result type is not a slice, " +
			"array, map, channel, or iterator function, so it cannot supply a " +
			"sequence of cases.",
	},
	SourceNotAccessible: {
		ID:       SourceNotAccessible,
		Slug:     "source-not-accessible",
		Title:    "case source method needs a pointer receiver",
		Category: CategorySource,
		Severity: SeverityWarning,
		Enabled:  false,
		Description: "The source method is declared on a pointer receiver but the " +
			"provider was supplied by value; the value's method set does not " +
			"include it, so reflection cannot invoke it.",
	},
	SourceArgCountMismatch: {
		ID:       SourceArgCountMismatch,
		Slug:     "source-arg-count",
		Title:    "case source argument count mismatch",
		Category: CategorySource,
		Severity: SeverityWarning,
		Enabled:  false,
		Description: "The number of extra arguments declared with casesource.Args " +
			"does not match the source function's parameter count.",
	},
	ArgsOnStoredSource: {
		ID:       ArgsOnStoredSource,
		Slug:     "args-on-stored-source",
		Title:    "arguments supplied to a non-callable source",
		Category: CategorySource,
		Severity: SeverityWarning,
		Enabled:  false,
		Description: "Extra arguments were declared for a source that is a field " +
			"or variable; only function and method sources accept arguments.",
	},
	ClassicEqual: {
		ID:       ClassicEqual,
		Slug:     "classic-equal",
		Title:    "classic equality assertion",
		Category: CategoryRewrite,
		Severity: SeverityInfo,
		Enabled:  true,
		Description: "verify.Equal is deprecated in favor of the constraint form " +
			"verify.That(t, actual, verify.Equals(expected)).",
	},
	ClassicIsType: {
		ID:       ClassicIsType,
		Slug:     "classic-is-type",
		Title:    "classic type assertion",
		Category: CategoryRewrite,
		Severity: SeverityInfo,
		Enabled:  true,
		Description: "verify.IsType and verify.IsTypeOf are deprecated in favor " +
			"of verify.That with verify.TypeOf or verify.SameTypeAs.",
	},
	ClassicNil: {
		ID:       ClassicNil,
		Slug:     "classic-nil",
		Title:    "classic nil assertion",
		Category: CategoryRewrite,
		Severity: SeverityInfo,
		Enabled:  true,
		Description: "verify.Nil and verify.NotNil are deprecated in favor of " +
			"verify.That with verify.IsNil.",
	},
}

// slugIndex maps config slugs back to IDs. Built once at init.
var slugIndex = func() map[string]ID {
	m := make(map[string]ID, len(catalog))
	for id, d := range catalog {
		m[d.Slug] = id
	}
	return m
}()

// Lookup returns the descriptor for id.
func Lookup(id ID) (Descriptor, bool) {
	d, ok := catalog[id]
	return d, ok
}

// BySlug returns the descriptor with the given config slug.
func BySlug(slug string) (Descriptor, bool) {
	id, ok := slugIndex[slug]
	if !ok {
		return Descriptor{}, false
	}
	return catalog[id], true
}

// All returns every descriptor, sorted by ID.
func All() []Descriptor {
	out := make([]Descriptor, 0, len(catalog))
	for _, d := range catalog {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Resolve applies config overrides (slug -> severity string) to the
// catalog and returns the effective severity per ID. IDs mapped to
// SeverityOff are disabled; disabled-by-default checks are absent
// unless overridden on.
func Resolve(overrides map[string]string) (map[ID]Severity, error) {
	effective := make(map[ID]Severity, len(catalog))
	for id, d := range catalog {
		if d.Enabled {
			effective[id] = d.Severity
		}
	}
	for slug, sevName := range overrides {
		d, ok := BySlug(slug)
		if !ok {
			return nil, fmt.Errorf("unknown check %q", slug)
		}
		sev, err := ParseSeverity(sevName)
		if err != nil {
			return nil, fmt.Errorf("check %q: %w", slug, err)
		}
		if sev == SeverityOff {
			delete(effective, d.ID)
			continue
		}
		effective[d.ID] = sev
	}
	return effective, nil
}
