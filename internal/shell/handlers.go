package shell

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Run shows the menu and processes selections until the user exits or the
// input ends. It returns only input read errors.
func (s *Shell) Run(ctx context.Context) error {
	for {
		s.showMenu()

		choice, ok := s.readLine("Select an action: ")
		if !ok {
			if err := s.in.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			s.logger.Debug("Input closed, leaving shell")
			return nil
		}

		if exit := s.handleChoice(ctx, choice); exit {
			return nil
		}
	}
}

func (s *Shell) showMenu() {
	s.printf("\nMenu:\n")
	s.printf("1. Add a book\n")
	s.printf("2. Remove a book\n")
	s.printf("3. Find books\n")
	s.printf("4. List all books\n")
	s.printf("5. Change book status\n")
	s.printf("6. Exit\n")
}

// handleChoice dispatches a single menu selection and reports whether the loop should stop
func (s *Shell) handleChoice(ctx context.Context, choice string) (exit bool) {
	// Recover from panics so one bad command does not end the session
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Recovered from panic in handleChoice",
				zap.Any("panic", r),
				zap.String("choice", choice),
			)
			s.printf("An error occurred while processing your request. Please try again.\n")
			exit = false
		}
	}()

	switch strings.TrimSpace(choice) {
	case choiceAdd:
		s.handleAdd(ctx)
	case choiceRemove:
		s.handleRemove(ctx)
	case choiceFind:
		s.handleFind()
	case choiceList:
		s.handleList()
	case choiceChangeStatus:
		s.handleChangeStatus(ctx)
	case choiceExit:
		return true
	default:
		s.printf("Invalid choice. Please try again.\n")
	}
	return false
}
