// Package output renders command results to stdout or a file.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type Format string

const (
	FormatJSON  Format = "json"
	FormatHuman Format = "human"
)

// Formatter turns a command result into its final textual form.
type Formatter interface {
	Render(result any) (string, error)
}

// NewFormatter resolves a format name; empty defaults to JSON.
func NewFormatter(name string) (Formatter, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatJSON:
		return jsonFormatter{}, nil
	case FormatHuman:
		return humanFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", name)
	}
}

type jsonFormatter struct{}

func (jsonFormatter) Render(result any) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(data), nil
}

// Write sends rendered output to path, or stdout when path is empty.
func Write(content, path string) error {
	if path == "" {
		_, err := fmt.Println(content)
		return err
	}
	if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
