// Package message decodes schema-validated NETCONF documents into typed
// messages.
//
// A document is either a <hello>, decoded to *Hello, or an <rpc>
// carrying one of the configuration operations <get-config>,
// <edit-config>, <copy-config> or <delete-config>, decoded to *RPC.
//
// Decode walks the parse tree once, top-down, and either returns a
// Message or a *DecodeError describing the first problem found. It never
// returns a partially decoded message. Decode reads its input tree only
// and touches no shared state, so it may be called concurrently on
// independent documents.
//
// Child lookup policy
//
// Wherever the decoder looks for a child element by name (capabilities,
// source, target, filter, the operation element itself), the first
// occurrence in document order wins and later duplicates are ignored.
// Children of <rpc> that are not one of the supported operations are
// skipped while looking for the operation.
//
// Decode expects its input to have passed schema validation (see the
// schema package, or Read which runs both steps), but does not rely on
// it: every structural assumption is re-checked and reported as a
// *DecodeError.
package message
