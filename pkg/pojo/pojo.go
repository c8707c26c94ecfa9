// Package pojo is the runtime of generated object models. Generated types
// implement Object, register their constructors at init and convert their
// values with the helpers of this package.
package pojo

import (
	"bytes"
	"encoding/json"
	"sync"

	"github.com/gnames/gnfmt"
)

// TypeKey is the record key holding the class IRI of an object.
const TypeKey = "@type"

// Record is the plain form of an object: property IRIs mapped to values.
type Record map[string]any

// Type returns the class IRI of the record.
func (r Record) Type() string {
	res, _ := r[TypeKey].(string)
	return res
}

// Object is implemented by every generated class.
type Object interface {
	// IRI returns the class IRI.
	IRI() string
	// ToRecord converts the object to its plain form.
	ToRecord() Record
	// FromRecord replaces the state of the object with the record values.
	FromRecord(rec Record) error
	// Serialize encodes the object as JSON.
	Serialize() ([]byte, error)
	// Unserialize decodes JSON into the object.
	Unserialize(data []byte) error
}

// Module describes a generated package tied to a context.
type Module struct {
	// IRI of the context.
	IRI string
	// Prefixes is the expanded alias table of the context.
	Prefixes map[string]string
	// Ext are aliases of terms tagged with the context that are missing
	// from Prefixes.
	Ext map[string]string
}

var (
	mu    sync.RWMutex
	ctors = make(map[string]func() Object)
)

// Register adds the constructor of a class. Generated packages call it
// from init.
func Register(iri string, ctor func() Object) {
	mu.Lock()
	defer mu.Unlock()
	ctors[iri] = ctor
}

// New creates an empty object of a registered class.
func New(iri string) (Object, error) {
	mu.RLock()
	ctor, ok := ctors[iri]
	mu.RUnlock()
	if !ok {
		return nil, UnknownRecordTypeError(iri)
	}
	return ctor(), nil
}

// Decode creates an object from a record using its @type.
func Decode(rec Record) (Object, error) {
	res, err := New(rec.Type())
	if err != nil {
		return nil, err
	}
	if err = res.FromRecord(rec); err != nil {
		return nil, err
	}
	return res, nil
}

// Serialize encodes the record of an object as indented JSON.
func Serialize(o Object) ([]byte, error) {
	enc := gnfmt.GNjson{Pretty: true}
	return enc.Encode(o.ToRecord())
}

// Unserialize decodes JSON into o. Numbers are kept as json.Number, so
// integers keep every digit.
func Unserialize(data []byte, o Object) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var rec Record
	if err := dec.Decode(&rec); err != nil {
		return err
	}
	return o.FromRecord(rec)
}
