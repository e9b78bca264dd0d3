// Package gitignore composes .gitignore content from named templates. A base
// template carries patterns common to every project type; language templates
// (python, nextjs) carry stack-specific patterns. Fullstack composition
// rewrites language patterns with a subdirectory prefix so they apply only
// within their monorepo subdirectory.
package gitignore
