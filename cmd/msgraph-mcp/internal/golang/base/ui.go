package base

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrOpCancelled is returned when an operation is cancelled by the user.
var ErrOpCancelled = errors.New("operation cancelled")

func YesNo(message string) bool {
	return YesNoWR(os.Stderr, os.Stdin, message)
}

// YesNoWR asks the question on w and reads the answer from r.  Empty answer
// or end of input mean "no".
func YesNoWR(w io.Writer, r io.Reader, message string) bool {
	const pleaseAnswerYN = "Please answer yes or no and press Enter or Return."
	for {
		fmt.Fprint(w, message, "? (y/N) ")
		var resp string
		_, err := fmt.Fscanln(r, &resp)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return false
			}
			// there's no proper way to check for unexpected newline error.
			if strings.EqualFold(err.Error(), "unexpected newline") {
				return false
			}
			fmt.Fprintln(w, pleaseAnswerYN)
			continue
		}
		resp = strings.TrimSpace(resp)
		if len(resp) > 0 {
			switch strings.ToLower(resp)[0] {
			case 'y':
				return true
			case 'n':
				return false
			}
		}
		fmt.Fprintln(w, pleaseAnswerYN)
	}
}
