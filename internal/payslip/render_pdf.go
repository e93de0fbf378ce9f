package payslip

import (
	"bytes"
	"strconv"

	paysliperrors "go-payslip/internal/payslip/errors"

	"github.com/go-pdf/fpdf"
)

const (
	fontFamily     = "Helvetica"
	cellLineWidth  = 0.2
	blockLineWidth = 0.3
	outerLineWidth = 0.5
)

func fontStyle(bold bool) string {
	if bold {
		return "B"
	}
	return ""
}

// PDFMeasurer measures text with fpdf core font metrics, so wrapping
// matches what RenderPDF draws. It is not safe for concurrent use.
type PDFMeasurer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func NewPDFMeasurer() *PDFMeasurer {
	pdf := fpdf.New("P", "mm", "A4", "")
	return &PDFMeasurer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (m *PDFMeasurer) Width(text string, fontSize float64, bold bool) float64 {
	m.pdf.SetFont(fontFamily, fontStyle(bold), fontSize)
	return m.pdf.GetStringWidth(m.tr(text))
}

// RenderPDF walks a laid-out document and emits the draw calls for it.
func RenderPDF(doc Document) ([]byte, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: doc.PageWidth, Ht: doc.PageHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetDrawColor(0, 0, 0)

	r := &pdfRenderer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	for _, page := range doc.Pages {
		pdf.AddPage()

		for _, s := range doc.SectionsOn(page.Number) {
			for _, row := range s.Rows {
				for _, c := range row.Cells {
					r.cell(c)
				}
			}
			if s.Bordered {
				pdf.SetLineWidth(blockLineWidth)
				pdf.Rect(s.Border.X, s.Border.Y, s.Border.Width, s.Border.Height, "D")
			}
		}

		pdf.SetLineWidth(outerLineWidth)
		pdf.Rect(page.Border.X, page.Border.Y, page.Border.Width, page.Border.Height, "D")
	}

	if pdf.Err() {
		return nil, paysliperrors.ErrRenderFailed.WithCause(pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, paysliperrors.ErrRenderFailed.WithCause(err)
	}
	return buf.Bytes(), nil
}

type pdfRenderer struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	images int
}

func (r *pdfRenderer) cell(c Cell) {
	pdf := r.pdf

	pdf.SetFillColor(c.Fill.R, c.Fill.G, c.Fill.B)
	style := "F"
	if c.Border {
		style = "FD"
		pdf.SetLineWidth(cellLineWidth)
	}
	pdf.Rect(c.X, c.Y, c.Width, c.Height, style)

	if c.Image != nil && !c.Blank {
		r.image(c)
	}

	if len(c.Lines) == 0 {
		return
	}
	pdf.SetFont(fontFamily, fontStyle(c.Bold), c.FontSize)
	pdf.SetTextColor(0, 0, 0)
	for i, line := range c.Lines {
		pdf.SetXY(c.X+c.TextInsetX, c.Y+c.TextOffsetY+float64(i)*c.LineHeight)
		pdf.CellFormat(c.TextWidth, c.LineHeight, r.tr(line), "", 0, string(c.Align)+"M", false, 0, "")
	}
}

// image draws the cell image. Bytes fpdf cannot parse leave the region
// blank instead of failing the whole document.
func (r *pdfRenderer) image(c Cell) {
	r.images++
	name := "img" + strconv.Itoa(r.images)
	opts := fpdf.ImageOptions{ImageType: c.Image.Format}

	r.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(c.Image.Data))
	if r.pdf.Err() {
		r.pdf.ClearError()
		return
	}
	box := c.ImageBox
	r.pdf.ImageOptions(name, box.X, box.Y, box.Width, box.Height, false, opts, 0, "")
}
