// Package pipeline lists the target directory and drives the batch:
// for every file, in listing order, it computes the new base name and
// renames it (or, in dry-run mode, only reports the rename).
//
// Files are listed once, before anything is renamed, so a transformation
// never observes the results of earlier renames in the same run. The
// first failed rename stops the batch; files renamed before it keep their
// new names.
package pipeline
