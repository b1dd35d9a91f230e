package content

// Transformer rewrites text, returning the new text or an error.
type Transformer interface {
	// Transform rewrites input, returning the new text or an error.
	Transform(input string) (string, error)
}

// TransformerFunc is a [Transformer] that can be represented just by the
// [Transform] method.
type TransformerFunc func(input string) (string, error)

// Transform satisfies [Transformer].
func (fn TransformerFunc) Transform(input string) (string, error) { return fn(input) }
