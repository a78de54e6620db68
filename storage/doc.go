// Package storage defines the backends ssw can activate.
//
// Every backend is a Candidate: it has a name and an availability
// probe. A candidate then comes in one of two shapes:
//
//   - NativeBackend: the medium has its own structured key/value
//     storage and implements the Store operations directly.
//   - RawBackend: the medium can only hold one opaque string. It
//     implements Read and Save and is wrapped by the serialized
//     adapter, which keeps an in-memory box of values and rewrites
//     the whole string on every change.
//
// Raw backends may also implement Initializer, to set up the medium
// once before first use, and Clearer, to tear the medium down after
// the store is cleared.
//
// Whichever shape is active, callers only see a Store.
package storage
