// Package amqp implements the AMQP 1.0 section 1.6 type system: an
// in-memory tree of AMQP atoms, a binary encoder and decoder between
// that tree and the AMQP wire format, a text pretty-printer, and the
// fill/scan format-string mini-languages for building and reading
// trees without per-type boilerplate.
//
// A Tree is a flat arena of nodes. Nodes are addressed by a 1-based
// index; index 0 means "no node". Variable-length payloads (binary,
// string, symbol) are interned into a side buffer owned by the Tree;
// an Atom's Bytes are only valid while the Tree that produced them is
// alive.
//
// The package does not perform session/link/connection protocol work,
// transport I/O, SASL, or UUID generation; those are external
// collaborators.
package amqp
