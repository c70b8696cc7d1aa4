// Package prompt reads the two interactive selections relcut makes: the
// release menu and the PROD tag choice. Prompts are plain bufio reads over
// the command's stdin; rendering goes through the output package.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/relcut/relcut/internal/errors"
	"github.com/relcut/relcut/internal/version"
)

// Transition identifies one of the four release menu choices.
type Transition int

const (
	// TransitionUAT cuts a new UAT release (R += 1).
	TransitionUAT Transition = iota + 1
	// TransitionNextRelease starts work on the next release (Z += 1, R = 0).
	TransitionNextRelease
	// TransitionProd promotes an existing UAT tag to production.
	TransitionProd
	// TransitionGeneration starts a new generation (Y += 1, Z = 0, R = 0).
	TransitionGeneration
)

// Menu presents the four release choices and reads a single selection.
// An unrecognized selection is an argument error; there is no re-prompt.
func Menu(in io.Reader, out io.Writer) (Transition, error) {
	fmt.Fprintln(out, "Select a release action:")
	fmt.Fprintln(out, "  1) UAT release")
	fmt.Fprintln(out, "  2) Start work on the next release")
	fmt.Fprintln(out, "  3) PROD release")
	fmt.Fprintln(out, "  4) New generation")
	fmt.Fprint(out, "> ")

	input, err := readLine(in)
	if err != nil {
		return 0, err
	}

	choice, convErr := strconv.Atoi(input)
	if convErr != nil || choice < 1 || choice > 4 {
		return 0, errors.InvalidMenuSelection(input)
	}
	return Transition(choice), nil
}

// SelectTag presents tags as a numbered list (descending, as given) and
// reads an index.
func SelectTag(in io.Reader, out io.Writer, tags []version.Version) (version.Version, error) {
	fmt.Fprintln(out, "Select the UAT tag to promote:")
	for i, tag := range tags {
		fmt.Fprintf(out, "  %d) %s\n", i+1, tag)
	}
	fmt.Fprint(out, "> ")

	input, err := readLine(in)
	if err != nil {
		return version.Version{}, err
	}

	choice, convErr := strconv.Atoi(input)
	if convErr != nil || choice < 1 || choice > len(tags) {
		return version.Version{}, errors.InvalidTagSelection(input, len(tags))
	}
	return tags[choice-1], nil
}

// readLine reads one trimmed line from in. A caller running consecutive
// prompts over the same stream must pass a shared *bufio.Reader: it is
// used as-is, so the first prompt's buffering does not swallow the lines
// meant for the next one.
func readLine(in io.Reader) (string, error) {
	reader, ok := in.(*bufio.Reader)
	if !ok {
		reader = bufio.NewReader(in)
	}
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading selection: %w", err)
	}
	return strings.TrimSpace(line), nil
}
