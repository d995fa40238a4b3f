package model

// columnsKind tells how result column names were obtained.
type columnsKind int

const (
	// columnsNamed means the store reported a name for every column
	columnsNamed columnsKind = iota
	// columnsSynthetic means names are generated as col1..colN
	columnsSynthetic
)

// ResultColumns is the header of a result set. It is either the list of
// names reported by the store or a synthetic col1..colN header of a given
// width; the choice is made once per result set.
type ResultColumns struct {
	kind  columnsKind
	names []string
	count int
}

// NamedColumns returns result columns using names as reported by the store.
func NamedColumns(names []string) ResultColumns {
	copied := make([]string, len(names))
	copy(copied, names)
	return ResultColumns{
		kind:  columnsNamed,
		names: copied,
		count: len(copied),
	}
}

// SyntheticColumns returns result columns named col1..colN.
func SyntheticColumns(count int) ResultColumns {
	if count < 0 {
		count = 0
	}
	return ResultColumns{
		kind:  columnsSynthetic,
		count: count,
	}
}

// ResolveColumns picks NamedColumns when every reported name is non-empty,
// and SyntheticColumns of the given width otherwise.
func ResolveColumns(reported []string, count int) ResultColumns {
	if len(reported) != count {
		return SyntheticColumns(count)
	}
	for _, name := range reported {
		if name == "" {
			return SyntheticColumns(count)
		}
	}
	return NamedColumns(reported)
}

// Len returns the number of columns.
func (c ResultColumns) Len() int {
	return c.count
}

// IsSynthetic reports whether the names were generated.
func (c ResultColumns) IsSynthetic() bool {
	return c.kind == columnsSynthetic
}

// Names returns the column names in result order.
func (c ResultColumns) Names() []string {
	if c.kind == columnsSynthetic {
		return []string(SyntheticHeader(c.count))
	}
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}
