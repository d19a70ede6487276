// Package viewstate holds the small state primitives behind server-side views
// that outlive a single request.
//
// State models the Loading, Ready and Errored phases of a fetched value.
// Sequencer hands out monotonic tokens so that a slow response can never
// overwrite a newer one. Lifecycle turns late completions into no-ops once
// the owner has been torn down. List keeps a keyed collection whose entries
// can be changed optimistically and later committed or rolled back.
//
// All types are safe for concurrent use.
package viewstate
