// Copyright 2018 Andrew Fort

// Package schema provides the NETCONF XML schema object and
// corresponding validator.
//
// The schema is a tree of element nodes compiled once, when the
// package is initialised, from the subset of the RFC6241 base:1.0
// schema covering <hello>, <rpc> and the <get-config>, <edit-config>,
// <copy-config> and <delete-config> operations. It is read-only after
// that and shared by all validators.
//
// Schema processing
//
// Validate reads a whole document, parses it into an xmlquery tree and
// walks the tree against the schema. For each element the following
// is checked:
//
//   namespace
//       The element must be in the NETCONF base:1.0 namespace. Unless
//       strict namespace checking is enabled, the empty namespace is
//       accepted as well.
//
//   attributes
//       Required attributes must be present, and enumerated attributes
//       must hold one of their allowed values.
//
//   content
//       Element children must match a child schema node by name (or a
//       wildcard node) and occur within the node's min/max occurs
//       bounds. Text-only elements must hold exactly one non-empty text
//       value, within the node's allowed values if any.
//
// The content of <config> and of subtree <filter> elements is not
// checked; it belongs to data models outside of the base schema.
// Children of <rpc> other than the four configuration operations are
// accepted, leaving it to the message decoder to report them as
// unsupported.
//
// Validation stops at the first error. Errors are, or wrap, *ncerr.Error
// values suitable for an <rpc-error> reply.
package schema
