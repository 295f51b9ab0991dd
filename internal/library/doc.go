// Package library keeps a local books collection in step with a remote
// books store.
//
// Controller is the single owner of the collection, the new-item draft and
// the edit session. Each remote operation runs without holding the lock;
// the local list changes only after the store confirms it:
//
//	Load    GET    /books        replace the list (once)
//	Submit  POST   /books        append with the returned id, reset draft
//	Commit  PUT    /books/{id}   merge in place, end the issuing session
//	Delete  DELETE /books/{id}   remove, end a session on that book
//
// A failed operation leaves the list, the draft and the session as they
// were, and is recorded as the last failure until ClearFailure.
//
// Snapshot returns a View for rendering. View.Rows shows the edit draft in
// place of the stored fields of the book being edited.
package library
