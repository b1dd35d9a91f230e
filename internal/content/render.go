package content

import (
	"bytes"
	"context"
	"net/http"

	"github.com/justrob12/seclab/internal/sec"
)

// Page is a rendered greeting and the headers it must be served with.
type Page struct {
	Body   []byte
	Header http.Header
}

// Render produces the greeting document for rawName. A blank, rejected, or
// otherwise unusable name is replaced by [DefaultName]; the rejected value is
// never reflected, escaped or not. Render does not fail.
func Render(ctx context.Context, rawName string) Page {
	var buf bytes.Buffer
	if err := greetingPage(resolveName(rawName)).Render(ctx, &buf); err != nil {
		buf.Reset()
		_ = greetingPage(defaultName()).Render(ctx, &buf)
	}

	hdr := sec.SecurityHeaders()
	hdr.Set("Content-Type", ContentType)
	return Page{
		Body:   buf.Bytes(),
		Header: hdr,
	}
}

// resolveName runs the name pipeline, substituting the default on any
// rejection or panic.
func resolveName(raw string) (name SafeText) {
	defer func() {
		if r := recover(); r != nil {
			name = defaultName()
		}
	}()
	out, err := namePipeline(raw)
	if err != nil {
		return defaultName()
	}
	return SafeText(out)
}

func defaultName() SafeText { return EncodeForHTMLBody(DefaultName) }
