package report

import (
	"fmt"
	"strings"
)

// buildPDF writes a minimal single-page PDF 1.4 document containing the
// given text lines in Helvetica 12. Rendering stays deliberately simple:
// the artifact only needs to be a well-formed, openable document.
func buildPDF(lines []string) []byte {
	content := []string{"BT", "/F1 12 Tf", "14 TL", "72 750 Td"}
	for i, line := range lines {
		if i > 0 {
			content = append(content, "T*")
		}
		content = append(content, fmt.Sprintf("(%s) Tj", escapePDFText(line)))
	}
	content = append(content, "ET")
	stream := strings.Join(content, "\n")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /Resources << /Font << /F1 4 0 R >> >> /MediaBox [0 0 612 792] /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
	}

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	offsets := make([]int, 0, len(objects))
	for i, obj := range objects {
		offsets = append(offsets, b.Len())
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefStart := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", len(objects)+1)
	b.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(objects)+1, xrefStart)

	return []byte(b.String())
}

var pdfEscaper = strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`, "\r\n", `\n`, "\n", `\n`)

func escapePDFText(text string) string {
	return pdfEscaper.Replace(text)
}
