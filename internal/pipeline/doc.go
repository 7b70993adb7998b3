// Package pipeline implements the diary's document assembly stages.
//
// The package holds the string-to-string transformations that turn markdown
// logs into finished pages:
//   - Markdown normalization (line endings, byte order mark)
//   - Line-oriented markdown rendering for the diary's authoring subset
//   - Plain-text extraction for meta descriptions via Goldmark
//   - Template placeholder substitution and stylesheet injection
//   - Project link injection into rendered prose (segment or DOM based)
//
// Nothing here touches the filesystem, logs, or exits: every function is a
// total function over strings and is safe for concurrent use. Reading
// content, resolving locales and writing the site tree are handled by the
// root devdiary package.
package pipeline
