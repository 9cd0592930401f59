// Package diag holds the structured diagnostics produced from error facts.
//
// A Diagnostic carries a flat message plus up to two structured renderings:
// Classic, a tree of (location, lines) infos, and Friendly, a root clause,
// intermediate frame clauses and a final clause made of styled Text. Renderers
// in diagfmt consume them without re-deriving anything.
//
// Diagnostics are values; nothing mutates them after construction. The only
// shared mutable piece is DedupSet, which serialises inserts from parallel
// workers.
package diag
