// Package engine contains the mapping resolver and the translation
// service built on top of it.
//
// The resolver consults the curated predefined table first; only when
// no curated entry exists does it score provider candidates. Provider
// instability is absorbed here (an unreachable provider means "no
// candidates"), while identity errors (unknown codes) always propagate
// so callers can produce a proper not-found response.
package engine
