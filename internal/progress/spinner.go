package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Run executes fn behind a spinner labelled with message. On a capable
// terminal the spinner animates while fn runs; otherwise a plain one-line
// notice is printed instead. The error from fn is returned unchanged.
func Run(out io.Writer, message string, fn func() error) error {
	caps := DetectTerminalCapabilities()
	if !caps.IsTTY {
		fmt.Fprintf(out, "%s...\n", message)
		return fn()
	}

	symbols := SelectSymbols(caps)
	s := spinner.New(spinner.CharSets[symbols.SpinnerSet], 100*time.Millisecond,
		spinner.WithWriter(out),
		spinner.WithSuffix(" "+message))
	s.Start()

	err := fn()
	s.Stop()

	if err != nil {
		fmt.Fprintf(out, "%s %s\n", symbols.Failure, message)
		return err
	}
	fmt.Fprintf(out, "%s %s\n", symbols.Checkmark, message)
	return nil
}
