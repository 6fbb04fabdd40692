// Package normalisers provides the text normalisers used to put query text
// into the same canonical form the corpus was embedded in. Each normaliser
// handles one language.
//
// Normalisers are registered with the Registry at startup. The same
// functions are exported for offline index building so that build-time and
// query-time text agree.
package normalisers
