// Package xsd has validators and decoders of XML Schema datatypes used by
// the default native-type overrides.
package xsd

import (
	"math"
	"net/url"
	"regexp"
	"time"

	"github.com/gnames/owlgen/pkg/pojo"
)

func bounded(name string, lo, hi int64) func(int64) error {
	return func(v int64) error {
		if v < lo || v > hi {
			return pojo.ValueValidationError(v, name)
		}
		return nil
	}
}

// Validators of bounded integer datatypes.
var (
	Int                = bounded("xsd:int", math.MinInt32, math.MaxInt32)
	Short              = bounded("xsd:short", math.MinInt16, math.MaxInt16)
	Byte               = bounded("xsd:byte", math.MinInt8, math.MaxInt8)
	NonNegativeInteger = bounded("xsd:nonNegativeInteger", 0, math.MaxInt64)
	PositiveInteger    = bounded("xsd:positiveInteger", 1, math.MaxInt64)
	NonPositiveInteger = bounded("xsd:nonPositiveInteger", math.MinInt64, 0)
	NegativeInteger    = bounded("xsd:negativeInteger", math.MinInt64, -1)
	UnsignedLong       = bounded("xsd:unsignedLong", 0, math.MaxInt64)
	UnsignedInt        = bounded("xsd:unsignedInt", 0, math.MaxUint32)
	UnsignedShort      = bounded("xsd:unsignedShort", 0, math.MaxUint16)
	UnsignedByte       = bounded("xsd:unsignedByte", 0, math.MaxUint8)
)

// dateTime layouts, the time zone is optional.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// ParseDateTime decodes an xsd:dateTime lexical value. Values without a
// time zone are read as UTC.
func ParseDateTime(s string) (time.Time, error) {
	for _, l := range dateTimeLayouts {
		if res, err := time.Parse(l, s); err == nil {
			return res, nil
		}
	}
	return time.Time{}, pojo.ValueValidationError(s, "xsd:dateTime")
}

var (
	dateRe     = regexp.MustCompile(`^-?\d{4,}-\d{2}-\d{2}(Z|[+-]\d{2}:\d{2})?$`)
	timeRe     = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})?$`)
	durationRe = regexp.MustCompile(
		`^-?P(\d+Y)?(\d+M)?(\d+D)?(T(\d+H)?(\d+M)?(\d+(\.\d+)?S)?)?$`)
)

// Date accepts xsd:date lexical values.
func Date(s string) error {
	if !dateRe.MatchString(s) {
		return pojo.ValueValidationError(s, "xsd:date")
	}
	if s[4] == '-' {
		if _, err := time.Parse("2006-01-02", s[:10]); err != nil {
			return pojo.ValueValidationError(s, "xsd:date")
		}
	}
	return nil
}

// Time accepts xsd:time lexical values.
func Time(s string) error {
	if !timeRe.MatchString(s) {
		return pojo.ValueValidationError(s, "xsd:time")
	}
	if _, err := time.Parse("15:04:05", s[:8]); err != nil && s[:8] != "24:00:00" {
		return pojo.ValueValidationError(s, "xsd:time")
	}
	return nil
}

// Duration accepts xsd:duration lexical values.
func Duration(s string) error {
	if !durationRe.MatchString(s) || s == "P" || s == "-P" ||
		s[len(s)-1] == 'T' {
		return pojo.ValueValidationError(s, "xsd:duration")
	}
	return nil
}

// AnyURI is an absolute or relative URI reference.
type AnyURI string

// ParseAnyURI decodes a URI reference.
func ParseAnyURI(s string) (AnyURI, error) {
	if _, err := url.Parse(s); err != nil {
		return "", pojo.ValueValidationError(s, "xsd:anyURI")
	}
	return AnyURI(s), nil
}
