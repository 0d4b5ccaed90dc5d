package cli

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
)

// errNotInteger reports input that does not parse as an integer.
var errNotInteger = errors.New("not an integer")

// lineReader reads one answer per line.
type lineReader struct {
	r *bufio.Reader
}

func newLineReader(in io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(in)}
}

// readLine returns the next line without its line terminator.
// io.EOF is returned only when no more input is available.
func (lr *lineReader) readLine() (string, error) {
	line, err := lr.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// parseInt accepts an optionally signed decimal integer surrounded by whitespace.
func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errNotInteger
	}
	return n, nil
}

// isDone reports whether the subject prompt answer ends mark entry.
func isDone(s string) bool {
	return strings.EqualFold(s, "done")
}
