// Package vocab holds the IRIs of the RDF, RDFS, OWL and XSD terms the
// compiler understands, together with the meta predicates used to attach
// contexts and storage hints to ontology terms.
package vocab

import "strings"

// Namespaces.
const (
	RDF  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS = "http://www.w3.org/2000/01/rdf-schema#"
	OWL  = "http://www.w3.org/2002/07/owl#"
	XSD  = "http://www.w3.org/2001/XMLSchema#"

	// Meta is the namespace of annotations that steer generation.
	Meta = "http://dpa.li/ns/owl/fixes/meta#"
	// Types is the namespace of synthetic classes known to the compiler.
	Types = "http://dpa.li/ns/owl/fixes/types#"
)

// RDF terms.
const (
	RdfType  = RDF + "type"
	RdfFirst = RDF + "first"
	RdfRest  = RDF + "rest"
	RdfNil   = RDF + "nil"
)

// RDFS terms.
const (
	RdfsClass      = RDFS + "Class"
	RdfsDatatype   = RDFS + "Datatype"
	RdfsSubClassOf = RDFS + "subClassOf"
	RdfsLabel      = RDFS + "label"
	RdfsComment    = RDFS + "comment"
	RdfsDomain     = RDFS + "domain"
	RdfsRange      = RDFS + "range"
)

// OWL terms.
const (
	OwlOntology           = OWL + "Ontology"
	OwlClass              = OWL + "Class"
	OwlDatatypeProperty   = OWL + "DatatypeProperty"
	OwlObjectProperty     = OWL + "ObjectProperty"
	OwlFunctionalProperty = OWL + "FunctionalProperty"
	OwlUnionOf            = OWL + "unionOf"
	OwlIntersectionOf     = OWL + "intersectionOf"
	OwlComplementOf       = OWL + "complementOf"
	OwlOnDatatype         = OWL + "onDatatype"
	OwlEquivalentProperty = OWL + "equivalentProperty"
	OwlSameAs             = OWL + "sameAs"
)

// XSD datatypes with a default override.
const (
	XsdString             = XSD + "string"
	XsdNormalizedString   = XSD + "normalizedString"
	XsdToken              = XSD + "token"
	XsdLanguage           = XSD + "language"
	XsdName               = XSD + "Name"
	XsdNCName             = XSD + "NCName"
	XsdNMTOKEN            = XSD + "NMTOKEN"
	XsdBase64Binary       = XSD + "base64Binary"
	XsdHexBinary          = XSD + "hexBinary"
	XsdDecimal            = XSD + "decimal"
	XsdFloat              = XSD + "float"
	XsdDouble             = XSD + "double"
	XsdInteger            = XSD + "integer"
	XsdLong               = XSD + "long"
	XsdInt                = XSD + "int"
	XsdShort              = XSD + "short"
	XsdByte               = XSD + "byte"
	XsdNonNegativeInteger = XSD + "nonNegativeInteger"
	XsdPositiveInteger    = XSD + "positiveInteger"
	XsdNonPositiveInteger = XSD + "nonPositiveInteger"
	XsdNegativeInteger    = XSD + "negativeInteger"
	XsdUnsignedLong       = XSD + "unsignedLong"
	XsdUnsignedInt        = XSD + "unsignedInt"
	XsdUnsignedShort      = XSD + "unsignedShort"
	XsdUnsignedByte       = XSD + "unsignedByte"
	XsdBoolean            = XSD + "boolean"
	XsdDateTime           = XSD + "dateTime"
	XsdDate               = XSD + "date"
	XsdTime               = XSD + "time"
	XsdDuration           = XSD + "duration"
	XsdAnyURI             = XSD + "anyURI"
)

// Meta annotations.
const (
	// MetaContext tags a term with the context that names it.
	MetaContext = Meta + "context"
	// MetaLDMap points a context at a node with extra alias mappings.
	MetaLDMap = Meta + "ldmap"
	// MetaTargetOntology tags every subject of an ontology with a context.
	MetaTargetOntology = Meta + "target-ontology"
	// MetaTargetFile tags every subject of a source document with a context.
	MetaTargetFile = Meta + "target-file"
	// MetaNullable set to "false" makes a property mandatory.
	MetaNullable = Meta + "nullable"
)

// TypesJSON is the class used for storage of values without a known type.
const TypesJSON = Types + "JSON"

// Wildcard as a domain attaches a property to every class.
const Wildcard = "*"

var fixups = []struct{ from, to string }{
	{
		"http://www.w3.org/ns/activitystreams#",
		"https://www.w3.org/ns/activitystreams#",
	},
}

// Fixup rewrites IRIs that are published under more than one scheme to
// their canonical spelling.
func Fixup(iri string) string {
	for _, v := range fixups {
		if strings.HasPrefix(iri, v.from) {
			return v.to + iri[len(v.from):]
		}
	}
	return iri
}

// IsAbsolute reports if the IRI has an http or https scheme.
func IsAbsolute(iri string) bool {
	return strings.HasPrefix(iri, "http://") ||
		strings.HasPrefix(iri, "https://")
}
