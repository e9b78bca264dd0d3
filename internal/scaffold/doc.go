// Package scaffold turns a project request into the ordered pipeline of steps
// that creates the project on disk: directory layout, external tool runs
// (uv, create-next-app, git), and generated files (.gitignore, editor
// settings, env example, pyproject fragment). It powers "stackgen new".
package scaffold
