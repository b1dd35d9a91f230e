package command

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// Accepted age range.
const (
	minAge = 1
	maxAge = 120
)

var ageFormat = regexp.MustCompile(`^\d{1,3}$`)

func ageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "age",
		Short: "Prompt for an age until a valid one is entered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			age, err := readAge(cmd.InOrStdin(), out)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "You are %d years old.\n", age)
			return err
		},
	}
}

// readAge prompts on w until r yields a line holding a number in
// [minAge, maxAge].
func readAge(r io.Reader, w io.Writer) (int, error) {
	scanner := bufio.NewScanner(r)
	for {
		if _, err := fmt.Fprintf(w, "Enter your age (%d-%d): ", minAge, maxAge); err != nil {
			return 0, err
		}
		if !scanner.Scan() {
			return 0, errors.Join(io.ErrUnexpectedEOF, scanner.Err())
		}

		input := strings.TrimSpace(scanner.Text())
		if !ageFormat.MatchString(input) {
			if _, err := fmt.Fprintf(w, "Error: Please enter a valid number (%d-%d)\n", minAge, maxAge); err != nil {
				return 0, err
			}
			continue
		}
		age, err := strconv.Atoi(input)
		if err != nil || age < minAge || age > maxAge {
			if _, err = fmt.Fprintf(w, "Error: Age must be between %d and %d\n", minAge, maxAge); err != nil {
				return 0, err
			}
			continue
		}
		return age, nil
	}
}
