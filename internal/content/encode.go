package content

import "github.com/a-h/templ"

// SafeText is text that may be placed directly into HTML body content.
type SafeText string

// EncodeForHTMLBody escapes <, >, &, ' and " using character references.
// All other characters, including the whole accepted name alphabet, are
// unchanged.
func EncodeForHTMLBody[T ~string](text T) SafeText {
	return SafeText(templ.EscapeString(string(text)))
}

// EncodeHTMLBody is [EncodeForHTMLBody] as a [Transformer].
func EncodeHTMLBody() TransformerFunc {
	return func(input string) (string, error) {
		return string(EncodeForHTMLBody(input)), nil
	}
}
