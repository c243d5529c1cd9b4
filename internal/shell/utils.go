package shell

import (
	"fmt"
	"strconv"
	"strings"

	"bookcatalog/internal/models"
)

// readLine prompts and returns the next input line. ok is false once input is exhausted.
func (s *Shell) readLine(prompt string) (string, bool) {
	s.printf("%s", prompt)
	if !s.in.Scan() {
		s.printf("\n")
		return "", false
	}
	return s.in.Text(), true
}

// readInt prompts for an integer, reporting non-numeric input
func (s *Shell) readInt(prompt string) (int, bool) {
	text, ok := s.readLine(prompt)
	if !ok {
		return 0, false
	}

	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		s.printf("Invalid number: %q\n", text)
		return 0, false
	}
	return n, true
}

func (s *Shell) printBooks(books []models.Book) {
	for _, b := range books {
		s.printf("%s\n", b)
	}
}

func (s *Shell) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format, args...)
}
