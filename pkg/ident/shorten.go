package ident

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"

	"github.com/gnames/gnuuid"
	"github.com/google/uuid"
)

// HashSep separates the readable part of a shortened identifier from its
// hash.
const HashSep = "~"

// Hash returns the URL-safe base64 form of the UUIDv5 of s.
func Hash(s string) string {
	var u uuid.UUID = gnuuid.New(s)
	return base64.RawURLEncoding.EncodeToString(u[:])
}

// Shorten returns s unchanged when it fits into limit bytes. Longer names
// keep their kind prefix (text before the first space) and the last IRI
// segment, truncated on a rune boundary so that the separator and the hash
// of the full name fit.
func Shorten(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	h := Hash(s)
	var head, rest string
	if i := strings.Index(s, " "); i >= 0 {
		head, rest = s[:i+1], s[i+1:]
	} else {
		rest = s
	}
	parts := separators.Split(rest, -1)
	readable := head + parts[len(parts)-1]
	room := limit - len(h) - len(HashSep)
	if room < 0 {
		room = 0
	}
	readable = truncate(readable, room)
	return readable + HashSep + h
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
