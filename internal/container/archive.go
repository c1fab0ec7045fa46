// Package container abstracts the ZIP-based named-part archives shared by the
// spreadsheet and word-processor formats. Readers decode an archive fully into
// memory and hold no file handles afterwards; the writer accumulates parts and
// emits the archive in insertion order.
package container

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/lawliet8886/RPA/internal/common"
)

// Archive is a read-only view of a named-part container.
type Archive struct {
	parts map[string][]byte
	names []string
}

// Open decodes every entry of a ZIP container into memory.
func Open(data []byte) (*Archive, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, common.WrapError(err, "open container")
	}
	a := &Archive{parts: make(map[string][]byte, len(zr.File))}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, common.WrapError(err, fmt.Sprintf("open part %q", f.Name))
		}
		b, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, common.WrapError(err, fmt.Sprintf("read part %q", f.Name))
		}
		a.parts[f.Name] = b
		a.names = append(a.names, f.Name)
	}
	return a, nil
}

// ListParts returns part names in archive order.
func (a *Archive) ListParts() []string {
	out := make([]string, len(a.names))
	copy(out, a.names)
	return out
}

// ListPartsSorted returns part names sorted lexically, for deterministic scans.
func (a *Archive) ListPartsSorted() []string {
	out := a.ListParts()
	sort.Strings(out)
	return out
}

// ReadPart returns a part's bytes. The second result is false when absent.
func (a *Archive) ReadPart(name string) ([]byte, bool) {
	b, ok := a.parts[name]
	return b, ok
}

// Writer builds a ZIP container part by part.
type Writer struct {
	buf bytes.Buffer
	zw  *zip.Writer
}

func NewWriter() *Writer {
	w := &Writer{}
	w.zw = zip.NewWriter(&w.buf)
	return w
}

// WritePart appends a named part with the given bytes.
func (w *Writer) WritePart(name string, data []byte) error {
	f, err := w.zw.Create(name)
	if err != nil {
		return common.WrapError(err, fmt.Sprintf("create part %q", name))
	}
	if _, err := f.Write(data); err != nil {
		return common.WrapError(err, fmt.Sprintf("write part %q", name))
	}
	return nil
}

// WriteDir appends an explicit directory entry. Purely cosmetic for archive
// tools that render empty folders.
func (w *Writer) WriteDir(name string) error {
	if len(name) == 0 || name[len(name)-1] != '/' {
		name += "/"
	}
	_, err := w.zw.Create(name)
	return err
}

// Bytes finalizes the archive and returns its bytes. The writer is spent.
func (w *Writer) Bytes() ([]byte, error) {
	if err := w.zw.Close(); err != nil {
		return nil, common.WrapError(err, "close container")
	}
	return w.buf.Bytes(), nil
}
