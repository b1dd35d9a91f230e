package sec

import "net/http"

// Directive is one entry of the response header policy.
type Directive int

// The enumerated header directives. Every rendered response carries all of
// them, regardless of content.
const (
	NoSniff Directive = iota
	DenyFraming
	XSSFilter
	CSPDefaultSelf
	NoStore
	NoCache
	HSTSOneYearSubdomains
	ReferrerStrictOriginWhenCrossOrigin
)

type directiveEntry struct {
	name, header, value string
}

var directiveTable = [...]directiveEntry{
	NoSniff:                             {"nosniff", "X-Content-Type-Options", "nosniff"},
	DenyFraming:                         {"deny-framing", "X-Frame-Options", "DENY"},
	XSSFilter:                           {"xss-filter", "X-XSS-Protection", "1; mode=block"},
	CSPDefaultSelf:                      {"csp-default-self", "Content-Security-Policy", "default-src 'self'"},
	NoStore:                             {"no-store", "Cache-Control", "no-store"},
	NoCache:                             {"no-cache", "Pragma", "no-cache"},
	HSTSOneYearSubdomains:               {"hsts-1y-subdomains", "Strict-Transport-Security", "max-age=31536000; includeSubDomains"},
	ReferrerStrictOriginWhenCrossOrigin: {"referrer-strict-origin-when-cross-origin", "Referrer-Policy", "strict-origin-when-cross-origin"},
}

// HeaderPolicy lists every directive in the order they are applied.
var HeaderPolicy = []Directive{
	NoSniff,
	DenyFraming,
	XSSFilter,
	CSPDefaultSelf,
	NoStore,
	NoCache,
	HSTSOneYearSubdomains,
	ReferrerStrictOriginWhenCrossOrigin,
}

// String returns the directive's short name.
func (d Directive) String() string {
	if d < 0 || int(d) >= len(directiveTable) {
		return "unknown"
	}
	return directiveTable[d].name
}

// Header returns the header name and value the directive sets.
func (d Directive) Header() (name, value string) {
	if d < 0 || int(d) >= len(directiveTable) {
		return "", ""
	}
	entry := directiveTable[d]
	return entry.header, entry.value
}

// SecurityHeaders returns a new header map populated with [HeaderPolicy].
func SecurityHeaders() http.Header {
	hdr := make(http.Header, len(HeaderPolicy))
	ApplySecurityHeaders(hdr)
	return hdr
}

// ApplySecurityHeaders sets every [HeaderPolicy] directive on hdr, replacing
// any existing values.
func ApplySecurityHeaders(hdr http.Header) {
	for _, d := range HeaderPolicy {
		name, value := d.Header()
		hdr.Set(name, value)
	}
}
