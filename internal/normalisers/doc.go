// Package normalisers provides the text extractors for each supported
// document format. Each normaliser turns the raw bytes of one format into
// a single text payload ready for chunking.
//
// Normalisers are registered with the Registry at startup.
package normalisers
