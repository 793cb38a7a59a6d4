package utils

import (
	"fmt"
	"os"
	"strings"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// StartSpinner renders an animated label on stderr until the returned
// stop function is called. Outside of a TTY it does nothing, so piped
// and test output stays clean.
func StartSpinner(label string) func() {
	if !IsTTY() {
		return func() {}
	}
	// A wrapped line breaks the \r overwrite, so clamp to the terminal.
	if maxLen := TermWidth() - 2; len(label) > maxLen && maxLen > 0 {
		label = label[:maxLen]
	}
	ticker := time.NewTicker(time.Second / 12)
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		i := 0
		for {
			select {
			case <-ticker.C:
				fmt.Fprintf(os.Stderr, "\r%v %v", spinnerFrames[i%len(spinnerFrames)], label)
				i++
			case <-stop:
				ticker.Stop()
				fmt.Fprintf(os.Stderr, "\r%v\r", strings.Repeat(" ", len(label)+2))
				return
			}
		}
	}()
	return func() {
		close(stop)
		<-done
	}
}
