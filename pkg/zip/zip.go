// Package zip packs named parts into a zip archive held in memory.
package zip

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// Part is one file inside the archive.
type Part struct {
	Name string
	Data []byte
}

// Archive writes the parts, in order, into a single zip archive.
func Archive(parts []Part) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, part := range parts {
		w, err := zw.Create(part.Name)
		if err != nil {
			return nil, fmt.Errorf("zip: create %s: %w", part.Name, err)
		}
		if _, err := w.Write(part.Data); err != nil {
			return nil, fmt.Errorf("zip: write %s: %w", part.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: close archive: %w", err)
	}
	return buf.Bytes(), nil
}
