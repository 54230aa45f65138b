// Package jsonfeed reads, writes and validates JSON Feed documents.
//
// Every entity (Feed, Item, Author, Attachment, Hub) is built from a
// document.Object the same way: each known field is read and removed from
// the source, remaining "_"-prefixed objects become Extensions, and any key
// still left is counted as unmapped and reported through Diagnostics.
// Parsing never fails on a single malformed field; those problems are kept
// in ParseErrors. Validate is a separate pass that collects every violation
// in the entity and its children before reporting failure.
package jsonfeed
