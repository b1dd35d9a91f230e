package command

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLineFrom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "line", input: "hunter2\nrest", want: "hunter2"},
		{name: "backspace", input: "hunx\bter2\n", want: "hunter2"},
		{name: "leading backspace", input: "\b\bok\n", want: "ok"},
		{name: "carriage return ignored", input: "pass\r\n", want: "pass"},
		{name: "eof terminates", input: "tail", want: "tail"},
		{name: "empty line", input: "\n", want: ""},
		{name: "empty input", input: "", wantErr: io.EOF},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			line, err := readLineFrom(strings.NewReader(test.input))
			if test.wantErr != nil {
				require.ErrorIs(t, err, test.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, string(line))
		})
	}
}

func TestReadLineFrom_LongLine(t *testing.T) {
	t.Parallel()

	want := strings.Repeat("x", 3*initialSecretCap)
	line, err := readLineFrom(strings.NewReader(want + "\n"))
	require.NoError(t, err)
	assert.Equal(t, want, string(line))
}

func TestReadLineFrom_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := readLineFrom(io.MultiReader(strings.NewReader("abc"), errReader{boom}))
	require.ErrorIs(t, err, boom)
}

func TestAppendScrubbed(t *testing.T) {
	t.Parallel()

	buf := make([]byte, 0, 2)
	buf = appendScrubbed(buf, 'a')
	buf = appendScrubbed(buf, 'b')
	full := buf

	grown := appendScrubbed(buf, 'c')
	assert.Equal(t, []byte("abc"), grown)
	assert.Equal(t, []byte{0, 0}, full, "previous buffer is scrubbed on growth")
	assert.Greater(t, cap(grown), 2)

	same := appendScrubbed(grown, 'd')
	assert.Equal(t, []byte("abcd"), same)
	assert.True(t, bytes.Equal(grown, same[:3]))
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }
