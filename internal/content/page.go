package content

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// DefaultName is greeted whenever the supplied name is missing or rejected.
const DefaultName = "Guest"

// ContentType is the media type of a rendered [GreetingPage].
const ContentType = "text/html; charset=UTF-8"

// The greeting document is fixed; the name is its only variable part.
const (
	greetingHead = "<!DOCTYPE html>\n" +
		"<html>\n" +
		"<head>\n" +
		"<title>Greeting</title>\n" +
		"<meta charset=\"UTF-8\">\n" +
		"</head>\n" +
		"<body>\n" +
		"<h1>Hello, "
	greetingTail = "!</h1>\n" +
		"</body>\n" +
		"</html>\n"
)

// GreetingPage renders the greeting document for an already encoded name.
func GreetingPage(name SafeText) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, greetingHead); err != nil {
			return err
		}
		if _, err := io.WriteString(w, string(name)); err != nil {
			return err
		}
		_, err := io.WriteString(w, greetingTail)
		return err
	})
}
