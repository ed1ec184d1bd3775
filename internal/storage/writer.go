package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

const (
	FormatPlain  = "plain"
	FormatNDJSON = "ndjson"
)

type record struct {
	URL string `json:"url"`
}

// WriterService emits the filtered URLs, one per line
type WriterService struct {
	FilePath string // "-" or empty writes to Stdout
	Format   string
	Stdout   io.Writer
}

// Write opens the destination (truncating a file) and writes every URL in order
func (w *WriterService) Write(urls []string) error {
	if w.FilePath == "" || w.FilePath == "-" {
		out := w.Stdout
		if out == nil {
			out = os.Stdout
		}
		return w.encode(out, urls)
	}

	f, err := os.OpenFile(w.FilePath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	if err := w.encode(f, urls); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (w *WriterService) encode(out io.Writer, urls []string) error {
	switch w.Format {
	case "", FormatPlain:
		for _, u := range urls {
			if _, err := fmt.Fprintln(out, u); err != nil {
				return fmt.Errorf("write url: %w", err)
			}
		}
	case FormatNDJSON:
		enc := json.NewEncoder(out)
		for _, u := range urls {
			if err := enc.Encode(record{URL: u}); err != nil {
				return fmt.Errorf("write url: %w", err)
			}
		}
	default:
		return fmt.Errorf("unknown output format %q", w.Format)
	}
	return nil
}
