// Package sanitizer normalises user input before it leaves the application.
//
// Transforms are plain func(string) string values and can be chained with
// Apply or Compose:
//
//	clean := sanitizer.Compose(sanitizer.StripControl, sanitizer.Trim)
//	text := clean(rec.String("text"))
//
// Validation runs on the raw input; sanitising happens afterwards, on the way
// to the backend or the analysis provider.
package sanitizer
