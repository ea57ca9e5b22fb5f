// internal/app/system/htmlsanitize/htmlsanitize.go
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

// strict strips all HTML. Comment content and descriptions are plain
// text as far as this API is concerned.
var strict = bluemonday.StrictPolicy()

// Text sanitizes user-supplied free text before storage.
func Text(s string) string {
	return strict.Sanitize(s)
}
