// Package ticket stores tickets as plain-text files, one per ticket, inside a
// project directory.
//
// # File Format
//
// A ticket file is named by its decimal ID and holds a header of "key:value"
// lines, a delimiter line of '=' characters and the body:
//
//	ticket:0
//	status:open
//	owner:alice
//	================
//	fix bug
//
// The header keys ticket and status are required; owner is optional. Any other
// header line is kept as a [Field] and written back in its original position
// relative to the other extra fields.
//
// # IDs
//
// IDs are allocated sequentially from 0. The directory listing is always
// ordered numerically, so ticket 10 comes after ticket 9. Hidden files (leading
// '.') are ignored; every other name must be a canonical ID.
//
// # Locking
//
// [Store.Create] and [Store.SetStatus] hold an advisory flock on a hidden lock
// file next to the project directory, so two processes never allocate the same
// ID. Status rewrites go through a temp file and an atomic rename.
package ticket
