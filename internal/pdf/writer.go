package pdf

import (
	"bytes"
	"fmt"
)

// pdfWriter accumulates numbered objects and emits the xref table and
// trailer. Objects may be reserved up front and written in any order, but
// every reserved number must be written before finish.
type pdfWriter struct {
	buf     bytes.Buffer
	offsets map[int]int
	next    int
}

func newPDFWriter() *pdfWriter {
	w := &pdfWriter{offsets: make(map[int]int), next: 1}
	w.buf.WriteString("%PDF-1.4\n%\xE2\xE3\xCF\xD3\n")
	return w
}

// reserve allocates the next object number.
func (w *pdfWriter) reserve() int {
	n := w.next
	w.next++
	return n
}

// object writes a dictionary or other direct object body.
func (w *pdfWriter) object(num int, body string) {
	w.offsets[num] = w.buf.Len()
	fmt.Fprintf(&w.buf, "%d 0 obj\n%s\nendobj\n", num, body)
}

// stream writes a stream object. extraDict holds dictionary entries beyond
// /Length, without the enclosing << >>.
func (w *pdfWriter) stream(num int, extraDict string, data []byte) {
	w.offsets[num] = w.buf.Len()
	fmt.Fprintf(&w.buf, "%d 0 obj\n<< %s /Length %d >>\nstream\n", num, extraDict, len(data))
	w.buf.Write(data)
	w.buf.WriteString("\nendstream\nendobj\n")
}

// finish emits the xref table and trailer and returns the document bytes.
// The catalog is assumed to be object 1.
func (w *pdfWriter) finish() ([]byte, error) {
	count := w.next
	for n := 1; n < count; n++ {
		if _, ok := w.offsets[n]; !ok {
			return nil, fmt.Errorf("object %d reserved but never written", n)
		}
	}

	startXref := w.buf.Len()
	fmt.Fprintf(&w.buf, "xref\n0 %d\n", count)
	w.buf.WriteString("0000000000 65535 f \n")
	for n := 1; n < count; n++ {
		fmt.Fprintf(&w.buf, "%010d 00000 n \n", w.offsets[n])
	}
	fmt.Fprintf(&w.buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", count, startXref)
	return w.buf.Bytes(), nil
}
