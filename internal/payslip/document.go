package payslip

import (
	"strings"

	"go-payslip/internal/asset"
)

type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

type RGB struct {
	R, G, B int
}

var (
	White      = RGB{255, 255, 255}
	HeaderTint = RGB{220, 230, 241}
	LabelTint  = RGB{242, 242, 242}
	NetTint    = RGB{226, 239, 218}
)

type Rect struct {
	X, Y, Width, Height float64
}

func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Cell is one placed grid cell. Coordinates are absolute page millimetres.
type Cell struct {
	X, Y, Width, Height float64

	Text        string
	Lines       []string
	FontSize    float64
	LineHeight  float64
	TextOffsetY float64
	TextInsetX  float64
	TextWidth   float64
	Align       Align
	Bold        bool
	Fill        RGB
	Border      bool

	Image    *asset.Image
	ImageBox Rect
	// Blank marks a cell whose image could not be used; the region is left empty.
	Blank bool
}

func (c Cell) Right() float64 { return c.X + c.Width }

type Row struct {
	Y      float64
	Height float64
	Cells  []Cell
}

type SectionKind string

const (
	SectionHeader         SectionKind = "header"
	SectionTitle          SectionKind = "title"
	SectionEmployeeInfo   SectionKind = "employee_info"
	SectionAttendanceBank SectionKind = "attendance_bank"
	SectionSalaryTable    SectionKind = "salary_table"
	SectionSignature      SectionKind = "signature"
)

type Section struct {
	Kind     SectionKind
	Page     int
	Rows     []Row
	Border   Rect
	Bordered bool
}

// Height is the sum of the section's row heights.
func (s Section) Height() float64 {
	var h float64
	for _, r := range s.Rows {
		h += r.Height
	}
	return h
}

// Page carries the outer border drawn around every section placed on it.
type Page struct {
	Number int
	Border Rect
}

type Document struct {
	PageWidth  float64
	PageHeight float64
	Pages      []Page
	Sections   []Section
}

// SectionsOn returns the sections placed on the given page, in order.
func (d Document) SectionsOn(page int) []Section {
	var out []Section
	for _, s := range d.Sections {
		if s.Page == page {
			out = append(out, s)
		}
	}
	return out
}

func (d Document) Section(kind SectionKind) (Section, bool) {
	for _, s := range d.Sections {
		if s.Kind == kind {
			return s, true
		}
	}
	return Section{}, false
}

var fileNameReplacer = strings.NewReplacer("/", "-", "\\", "-", "\"", "", "\n", " ", "\r", "")

// FileName is the download name for a rendered salary slip.
func FileName(companyName, employeeName string) string {
	company := fileNameReplacer.Replace(strings.TrimSpace(companyName))
	employee := fileNameReplacer.Replace(strings.TrimSpace(employeeName))
	return company + "_salary_slip_" + employee + ".pdf"
}
