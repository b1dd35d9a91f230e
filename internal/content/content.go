// Package content turns untrusted text into HTML that is safe to serve.
//
// Untrusted names pass through [Validate] (shape allowlist plus denylist) and
// [EncodeForHTMLBody] before being placed into the fixed [GreetingPage]
// template. [Render] composes these and never fails: anything that does not
// validate is replaced by [DefaultName].
package content

var (
	// Individual transformers.
	trimControl    = TrimControl()
	validateName   = ValidateName()
	encodeHTMLBody = EncodeHTMLBody()

	// namePipeline yields HTML-body-safe text or an error.
	namePipeline = Chain(trimControl, validateName, encodeHTMLBody)

	// greetingPage builds the document Render writes.
	greetingPage = GreetingPage
)
