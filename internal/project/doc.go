// Package project reads and writes the stackgen.yaml manifest placed in every
// scaffolded project root. The manifest records what was generated (kind,
// stacks, directories, version pins) so later tooling and `stackgen doctor`
// can reason about the project without guessing from the file tree.
package project
