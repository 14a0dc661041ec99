// Package frontmatter splits Markdown documents into a YAML header and a
// body. fieldcheck uses it for form definitions written as Markdown, where
// the header holds the form's fields and the body documents the form.
//
// The header is delimited by lines containing only "---". LF and CRLF line
// endings are both accepted.
//
// # Basic Usage
//
//	var def form.Definition
//	body, err := frontmatter.MustParse(r, &def)
//	if errors.Is(err, frontmatter.ErrMissingFrontmatter) {
//		// not a form document
//	}
//
// [ParseHeader] reads only the header, which is enough for listing forms
// without loading their bodies.
package frontmatter
