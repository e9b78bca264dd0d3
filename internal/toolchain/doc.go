// Package toolchain wraps the external tools stackgen drives (uv, node, npx,
// git). Every tool call goes through a Runner so scaffolding steps can be
// tested without the real binaries on PATH.
package toolchain
