package ontology

// Kind tells how a class is composed.
type Kind int

const (
	// KindUnknown classes are referenced but never declared. They are
	// never emitted.
	KindUnknown Kind = iota
	// KindClass is a plain class; Implements holds its parents.
	KindClass
	// KindUnion holds operands in Implements.
	KindUnion
	// KindIntersection holds operands in Implements.
	KindIntersection
	// KindComplement holds the complemented class in Implements.
	KindComplement
	// KindDatatype holds the base datatype in Implements.
	KindDatatype
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindUnion:
		return "union"
	case KindIntersection:
		return "intersection"
	case KindComplement:
		return "complement"
	case KindDatatype:
		return "datatype"
	default:
		return "unknown"
	}
}

// IsComposite reports if the kind is built from operands.
func (k Kind) IsComposite() bool {
	switch k {
	case KindUnion, KindIntersection, KindComplement:
		return true
	default:
		return false
	}
}
