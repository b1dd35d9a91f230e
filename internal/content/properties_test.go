package content

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"golang.org/x/net/html"
)

func TestValidateProperties(t *testing.T) {
	t.Parallel()

	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1357)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	// Property: anything drawn from the name alphabet is accepted unless blank
	properties.Property("allowlisted names are accepted", prop.ForAll(
		func(name string) bool {
			valid, ok := Validate(name)
			if strings.TrimSpace(name) == "" {
				return !ok
			}
			return ok && string(valid) == strings.TrimSpace(name)
		},
		gen.RegexMatch(`[a-zA-Z0-9 \t]{1,50}`),
	))

	// Property: a single markup or punctuation character anywhere rejects
	properties.Property("markup characters are rejected", prop.ForAll(
		func(prefix, suffix, bad string) bool {
			_, ok := Validate(prefix + bad + suffix)
			return !ok
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.OneConstOf("<", ">", "&", `"`, "'", ":", "=", "/", "(", ";"),
	))

	// Property: more than fifty characters after trimming is always rejected
	properties.Property("oversized input is rejected", prop.ForAll(
		func(n int) bool {
			_, ok := Validate(strings.Repeat("a", n))
			return !ok
		},
		gen.IntRange(MaxNameLen+1, 4*MaxNameLen),
	))

	// Property: denylist entries are rejected regardless of case
	properties.Property("denylist is case insensitive", prop.ForAll(
		func(idx int, upper bool, padding string) bool {
			entry := denylist[idx]
			if upper {
				entry = strings.ToUpper(entry)
			}
			_, ok := Validate(padding + entry + padding)
			return !ok
		},
		gen.IntRange(0, len(denylist)-1),
		gen.Bool(),
		gen.AlphaString(),
	))

	// Property: Validate never panics on arbitrary input
	properties.Property("arbitrary input is handled", prop.ForAll(
		func(input string) bool {
			valid, ok := Validate(input)
			return ok || valid == ""
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestEncodeProperties(t *testing.T) {
	t.Parallel()

	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(2468)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	// Property: encoded text never contains raw markup-significant characters
	properties.Property("no raw markup characters", prop.ForAll(
		func(input string) bool {
			encoded := string(EncodeForHTMLBody(input))
			return !strings.ContainsAny(encoded, `<>"'`) &&
				strings.Count(encoded, "&") == strings.Count(encoded, ";")-strings.Count(input, ";")
		},
		gen.AnyString(),
	))

	// Property: decoding the encoded form restores the original
	properties.Property("encoding round-trips", prop.ForAll(
		func(input string) bool {
			return html.UnescapeString(string(EncodeForHTMLBody(input))) == input
		},
		gen.AnyString(),
	))

	// Property: accepted names are left untouched
	properties.Property("accepted names are not altered", prop.ForAll(
		func(input string) bool {
			valid, ok := Validate(input)
			if !ok {
				return true
			}
			encoded := string(EncodeForHTMLBody(valid))
			return encoded == string(valid) && !strings.ContainsAny(encoded, `<>"'&`)
		},
		gen.RegexMatch(`[a-zA-Z0-9 ]{1,50}`),
	))

	properties.TestingRun(t)
}

func TestRenderProperties(t *testing.T) {
	t.Parallel()

	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(97531)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// Property: the document is either the accepted name or the default
	properties.Property("render substitutes or greets", prop.ForAll(
		func(input string) bool {
			body := string(Render(t.Context(), input).Body)
			if valid, ok := Validate(input); ok {
				return body == expectedDocument(string(valid))
			}
			return body == expectedDocument(DefaultName)
		},
		gen.OneGenOf(gen.AnyString(), gen.AlphaString(), gen.RegexMatch(`<[a-z]{1,6}>[a-z ]{0,10}`)),
	))

	properties.TestingRun(t)
}
