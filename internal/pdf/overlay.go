// Package pdf composes fixed-layout overlay documents: one A4 page per
// template image, each drawn full-bleed, with configured text fields wrapped
// and painted over opaque erase rectangles. The emitter produces a minimal
// PDF 1.4 body directly; no PDF library is involved, which keeps the output
// limited to exactly the constructs this workflow needs (DCTDecode or
// FlateDecode image XObjects and built-in Helvetica text).
package pdf

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/lawliet8886/RPA/internal/common"
)

// A4 page size in points.
const (
	PageWidth  = 595
	PageHeight = 842
)

// Generator renders one overlay document per call from a fixed template set.
type Generator struct {
	pages  [][]byte // one background image per page, in page order
	fields []Field
}

// NewGenerator builds a generator for the given page images and field layout.
// A nil layout selects the calibrated default.
func NewGenerator(pageImages [][]byte, layout []Field) *Generator {
	if layout == nil {
		layout = DefaultLayout()
	}
	return &Generator{pages: pageImages, fields: layout}
}

// Generate renders the document, overlaying every configured field whose
// value is non-blank onto its page.
func (g *Generator) Generate(values map[string]string) ([]byte, error) {
	if len(g.pages) == 0 {
		return nil, common.NewAppError("PDF_TEMPLATE", "template set has no page images", common.ErrInvalidInput)
	}

	images := make([]*xobjectImage, len(g.pages))
	for i, data := range g.pages {
		img, err := encodeImage(data)
		if err != nil {
			return nil, common.WrapError(err, fmt.Sprintf("page image %d", i+1))
		}
		images[i] = img
	}

	w := newPDFWriter()
	catalog := w.reserve() // 1
	pages := w.reserve()   // 2
	font := w.reserve()    // 3

	type pageRefs struct{ page, content, image int }
	refs := make([]pageRefs, len(g.pages))
	for i := range g.pages {
		refs[i] = pageRefs{page: w.reserve(), content: w.reserve(), image: w.reserve()}
	}

	w.object(catalog, fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R >>", pages))

	var kids strings.Builder
	for _, r := range refs {
		fmt.Fprintf(&kids, "%d 0 R ", r.page)
	}
	w.object(pages, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.TrimSpace(kids.String()), len(refs)))

	w.object(font, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	for i, r := range refs {
		w.object(r.page, fmt.Sprintf(
			"<< /Type /Page /Parent %d 0 R /MediaBox [0 0 %d %d] /Resources << /XObject << /Im0 %d 0 R >> /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>",
			pages, PageWidth, PageHeight, r.image, font, r.content))

		content := g.pageContent(i, values)
		w.stream(r.content, "", content)

		img := images[i]
		dict := fmt.Sprintf(
			"/Type /XObject /Subtype /Image /Width %d /Height %d /ColorSpace %s /BitsPerComponent 8 /Filter %s",
			img.width, img.height, img.colorSpace, img.filter)
		w.stream(r.image, dict, img.data)
	}

	return w.finish()
}

// pageContent builds the content stream for one page: the background image
// scaled to page bounds, then each field's wrapped lines with erase boxes.
func (g *Generator) pageContent(pageIdx int, values map[string]string) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "q %d 0 0 %d 0 0 cm /Im0 Do Q\n", PageWidth, PageHeight)

	for _, f := range g.fields {
		if f.Page != pageIdx {
			continue
		}
		value := strings.TrimSpace(values[f.Key])
		if value == "" {
			continue
		}
		g.drawField(&b, f, value)
	}
	return b.Bytes()
}

func (g *Generator) drawField(b *bytes.Buffer, f Field, value string) {
	lines := wrapToWidth(value, f.TextSize, f.Width)
	lineH := lineHeight(f.TextSize)
	yTop := f.Y

	for _, line := range lines {
		if line != "" {
			textW := measureText(line, f.TextSize)
			if textW < 1 {
				textW = 1
			}
			boxW := textW
			if boxW > f.Width {
				boxW = f.Width
			}

			// erase box behind the line, then the text; layout coordinates
			// run top-down, PDF user space runs bottom-up
			rectX := f.X - 2
			rectTop := yTop - lineH + 3
			rectBottom := yTop + 4
			fmt.Fprintf(b, "1 1 1 rg %.2f %.2f %.2f %.2f re f\n",
				rectX, float64(PageHeight)-rectBottom, boxW+6, rectBottom-rectTop)

			fmt.Fprintf(b, "0 0 0 rg BT /F1 %.2f Tf %.2f %.2f Td (%s) Tj ET\n",
				f.TextSize, f.X, float64(PageHeight)-yTop, escapeText(line))
		}
		yTop += lineH
	}
}

// wrapToWidth splits on explicit newlines, then greedily packs words into
// lines no wider than maxWidth at the given text size.
func wrapToWidth(text string, size, maxWidth float64) []string {
	cleaned := strings.TrimSpace(strings.ReplaceAll(text, "\r", ""))
	if cleaned == "" {
		return nil
	}

	var out []string
	for _, paragraph := range strings.Split(cleaned, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		for _, word := range words {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if measureText(candidate, size) <= maxWidth {
				line = candidate
				continue
			}
			if line != "" {
				out = append(out, line)
			}
			line = word
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// escapeText encodes a string for a PDF literal string in WinAnsi. Characters
// outside Latin-1 degrade to '?'.
func escapeText(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\', '(', ')':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			if r < 0x20 {
				b.WriteByte(' ')
			} else if r <= 0xFF {
				b.WriteByte(byte(r))
			} else {
				b.WriteByte('?')
			}
		}
	}
	return b.String()
}

type xobjectImage struct {
	width      int
	height     int
	colorSpace string
	filter     string
	data       []byte
}

// encodeImage prepares a page image for embedding. JPEG bytes pass through
// untouched under DCTDecode; PNG is decoded and re-emitted as flate-compressed
// raw RGB samples.
func encodeImage(data []byte) (*xobjectImage, error) {
	if len(data) >= 2 && data[0] == 0xFF && data[1] == 0xD8 {
		cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, common.WrapError(err, "decode jpeg header")
		}
		colorSpace := "/DeviceRGB"
		if cfg.ColorModel == color.GrayModel {
			colorSpace = "/DeviceGray"
		}
		return &xobjectImage{
			width:      cfg.Width,
			height:     cfg.Height,
			colorSpace: colorSpace,
			filter:     "/DCTDecode",
			data:       data,
		}, nil
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, common.WrapError(err, "decode png")
	}
	bounds := img.Bounds()
	raw := make([]byte, 0, bounds.Dx()*bounds.Dy()*3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			raw = append(raw, byte(r>>8), byte(g>>8), byte(b>>8))
		}
	}

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	if _, err := zw.Write(raw); err != nil {
		return nil, common.WrapError(err, "compress image samples")
	}
	if err := zw.Close(); err != nil {
		return nil, common.WrapError(err, "compress image samples")
	}

	return &xobjectImage{
		width:      bounds.Dx(),
		height:     bounds.Dy(),
		colorSpace: "/DeviceRGB",
		filter:     "/FlateDecode",
		data:       compressed.Bytes(),
	}, nil
}
