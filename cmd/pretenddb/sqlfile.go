package main

import (
	"fmt"
	"os"
)

// executeFile runs every statement of a file, stopping at the first failure.
func (s *shell) executeFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	if err := s.runScript(string(data)); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	return nil
}
