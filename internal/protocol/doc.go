// Package protocol owns the wire contract for ordered maps and sets.
//
// Ownership boundary:
// - zero-size guard on keys and set elements
// - ordering strategies (canonical sort, iteration order)
// - length-prefixed record encode/decode
// - schema declarations for the encoded shape
//
// Wire format, little-endian:
//
//	[count: u32] then count entries of <K><V> (map) or <T> (set)
//
// Field layouts are owned by the field package.
package protocol
