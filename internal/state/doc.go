// Package state holds the local, ordered copy of the books collection.
//
// # Overview
//
// Store is a plain slice of books.Item addressed by ID. It is the data the
// UI renders and the CLI prints, and it changes only when the library
// controller applies a result the remote store has confirmed.
//
// # Identity
//
// Every operation is keyed by ID, never by position:
//
//   - Replace drops entries without an ID and later duplicates of an ID,
//     returning the dropped IDs for logging
//   - Append refuses an empty or already present ID
//   - Merge and Remove report false for an ID that is not listed
//
// Positions are stable. Merge rewrites an item in place and Remove keeps
// the relative order of the rest, so a selection tracked by ID survives
// any single change.
//
// # Concurrency
//
// Store is safe for concurrent use and its zero value is ready. The library
// controller still serializes its own changes so that the list, the edit
// session and the pending request counts move together. Items returns a
// copy.
//
// # Usage
//
//	var s state.Store
//	dropped := s.Replace(items)
//	_ = s.Append(books.Item{ID: "42", Title: "Ubik"})
//	s.Merge("42", draft)
//	s.Remove("42")
package state
