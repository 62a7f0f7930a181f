// Package cookie models the client cookie jar as explicit data: a
// read-only Snapshot taken from the request and a diff of write
// Instructions applied to the response by the transport layer.
//
// The split exists so protocol engines (like the CSRF engine) can be pure
// functions over the snapshot, returning instructions instead of mutating
// a ResponseWriter. Tests exercise engines with plain maps and assert on
// the returned diff without spinning up an HTTP stack.
package cookie
