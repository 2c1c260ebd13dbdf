// Package naming computes new base names from old ones.
//
// The transformations are pure: [Replace] and [Delete] rewrite regex
// matches, [Inject] splices text at a character position, and [Rule]
// bundles one of them with its arguments so the batch driver can apply
// it per file. Directory components are never touched here.
package naming
