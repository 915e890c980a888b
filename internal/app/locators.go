package app

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// SplitLocators splits a comma separated list, dropping blanks.
func SplitLocators(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ReadLocatorFile reads one locator per line, ignoring blank lines.
func ReadLocatorFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open locator file: %w", err)
	}
	defer file.Close()

	var out []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			out = append(out, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read locator file: %w", err)
	}
	return out, nil
}
