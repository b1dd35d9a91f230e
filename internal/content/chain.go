package content

// Chain runs transformers in order, failing fast on the first error. Nothing
// from a failed chain is returned.
func Chain(transformers ...Transformer) TransformerFunc {
	return func(input string) (string, error) {
		var err error
		for _, transformer := range transformers {
			input, err = transformer.Transform(input)
			if err != nil {
				return "", err
			}
		}
		return input, nil
	}
}
