package payslip

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"go-payslip/internal/asset"
	paysliperrors "go-payslip/internal/payslip/errors"
	"go-payslip/internal/salary"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	A4Width  = 210.0
	A4Height = 297.0

	ptToMM            = 25.4 / 72
	lineSpacing       = 1.25
	fractionTolerance = 1e-9
)

// TextMeasurer reports the rendered width of text in millimetres.
type TextMeasurer interface {
	Width(text string, fontSize float64, bold bool) float64
}

// ApproxMeasurer estimates widths from an average Helvetica glyph width.
type ApproxMeasurer struct{}

func (ApproxMeasurer) Width(text string, fontSize float64, bold bool) float64 {
	factor := 0.5
	if bold {
		factor = 0.55
	}
	return float64(utf8.RuneCountInString(text)) * fontSize * ptToMM * factor
}

type Company struct {
	Name          string
	Address       string
	SignatoryName string
}

// Data is everything a salary slip shows. Images must already be resolved.
type Data struct {
	Company     Company
	Employee    salary.EmployeeIdentity
	Attendance  salary.AttendanceSummary
	Bank        salary.BankDetails
	Breakdown   salary.Breakdown
	PeriodStart time.Time
	PeriodEnd   time.Time
	SlipNumber  string
	Logo        asset.Image
	Signature   asset.Image
}

type Options struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64
	RowHeight  float64
	FontSize   float64
	Padding    float64
	Measurer   TextMeasurer
}

func DefaultOptions() Options {
	return Options{
		PageWidth:  A4Width,
		PageHeight: A4Height,
		Margin:     10,
		RowHeight:  8,
		FontSize:   9,
		Padding:    1.5,
		Measurer:   ApproxMeasurer{},
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.PageWidth <= 0 {
		o.PageWidth = d.PageWidth
	}
	if o.PageHeight <= 0 {
		o.PageHeight = d.PageHeight
	}
	if o.Margin <= 0 {
		o.Margin = d.Margin
	}
	if o.RowHeight <= 0 {
		o.RowHeight = d.RowHeight
	}
	if o.FontSize <= 0 {
		o.FontSize = d.FontSize
	}
	if o.Padding <= 0 {
		o.Padding = d.Padding
	}
	if o.Measurer == nil {
		o.Measurer = d.Measurer
	}
	return o
}

func (o Options) contentWidth() float64 {
	return o.PageWidth - 2*o.Margin
}

// Layout places every section of a salary slip and returns the finished
// document. It performs no I/O.
func Layout(data Data, opts Options) (Document, error) {
	b := NewBuilder(opts)

	steps := []func() error{
		func() error { return b.Header(data.Company, data.Logo) },
		func() error { return b.Title(PeriodTitle(data.PeriodStart, data.PeriodEnd)) },
		func() error {
			return b.EmployeeInfo(data.Employee, data.PeriodStart, data.PeriodEnd, data.SlipNumber)
		},
		func() error { return b.AttendanceBank(data.Attendance, data.Bank) },
		func() error { return b.SalaryTable(data.Breakdown) },
		func() error { return b.Signature(data.Company, data.Signature) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return Document{}, err
		}
	}

	return b.Finalize()
}

func PeriodTitle(start, end time.Time) string {
	switch {
	case start.IsZero() || end.IsZero():
		return "Salary Slip"
	case start.Year() == end.Year() && start.Month() == end.Month():
		return "Salary Slip for the month of " + start.Format("January 2006")
	}
	return "Salary Slip for " + start.Format("02 Jan 2006") + " to " + end.Format("02 Jan 2006")
}

type layoutState int

const (
	stateEmpty layoutState = iota
	stateHeader
	stateTitle
	stateEmployeeInfo
	stateAttendanceBank
	stateSalaryTable
	stateSignature
	stateFinalized
)

// Builder places sections top to bottom with a running cursor. Each
// section can be placed once and only after the one before it.
type Builder struct {
	opts     Options
	state    layoutState
	cursor   float64
	page     int
	pageTop  float64
	sections []Section
	pages    []Page
}

func NewBuilder(opts Options) *Builder {
	opts = opts.withDefaults()
	return &Builder{
		opts:    opts,
		cursor:  opts.Margin,
		page:    1,
		pageTop: opts.Margin,
	}
}

func (b *Builder) expect(state layoutState) error {
	if b.state != state {
		return paysliperrors.ErrInvalidLayoutTransition
	}
	return nil
}

func (b *Builder) Header(company Company, logo asset.Image) error {
	if err := b.expect(stateEmpty); err != nil {
		return err
	}

	row, err := b.row([]float64{0.5, 0.5}, 2*b.opts.RowHeight, []cellSpec{
		{text: company.Name, bold: true, fontSize: b.opts.FontSize + 4, align: AlignLeft, fill: White, image: &logo},
		{text: company.Address, align: AlignRight, fill: White},
	})
	if err != nil {
		return err
	}

	b.place(SectionHeader, true, row)
	b.state = stateHeader
	return nil
}

func (b *Builder) Title(title string) error {
	if err := b.expect(stateHeader); err != nil {
		return err
	}

	row, err := b.row([]float64{1}, b.opts.RowHeight, []cellSpec{
		{text: title, bold: true, fontSize: b.opts.FontSize + 2, align: AlignCenter, fill: HeaderTint},
	})
	if err != nil {
		return err
	}

	b.place(SectionTitle, false, row)
	b.state = stateTitle
	return nil
}

func (b *Builder) EmployeeInfo(emp salary.EmployeeIdentity, start, end time.Time, slipNumber string) error {
	if err := b.expect(stateTitle); err != nil {
		return err
	}

	lines := [][4]string{
		{"Employee Name", emp.FullName(), "Employee ID", emp.UID},
		{"Designation", emp.JobRole, "Department", emp.Department},
		{"Date of Joining", emp.JoiningDate, "Pay Period", periodRange(start, end)},
	}
	if slipNumber != "" {
		lines = append(lines, [4]string{"Slip Number", slipNumber, "", ""})
	}

	rows, err := b.labelValueRows(lines)
	if err != nil {
		return err
	}

	b.place(SectionEmployeeInfo, true, rows...)
	b.state = stateEmployeeInfo
	return nil
}

func (b *Builder) AttendanceBank(att salary.AttendanceSummary, bank salary.BankDetails) error {
	if err := b.expect(stateEmployeeInfo); err != nil {
		return err
	}

	rows, err := b.labelValueRows([][4]string{
		{"Working Days", formatDays(att.WorkingDays), "Bank Name", bank.BankName},
		{"Payable Days", formatDays(att.PayableDays), "Account No.", bank.BankAccountNo},
		{"Leave Taken", formatDays(att.LeaveTaken), "IFSC Code", bank.BankIfscCode},
		{"Half Day", formatDays(att.HalfDay), "Branch", bank.BranchName},
	})
	if err != nil {
		return err
	}

	b.place(SectionAttendanceBank, true, rows...)
	b.state = stateAttendanceBank
	return nil
}

func (b *Builder) SalaryTable(bd salary.Breakdown) error {
	if err := b.expect(stateAttendanceBank); err != nil {
		return err
	}

	fractions := []float64{0.4, 0.2, 0.2, 0.2}
	head, err := b.row(fractions, b.opts.RowHeight, []cellSpec{
		{text: "Earnings", bold: true, align: AlignLeft, fill: HeaderTint},
		{text: "Amount", bold: true, align: AlignRight, fill: HeaderTint},
		{text: "Deductions", bold: true, align: AlignLeft, fill: HeaderTint},
		{text: "Amount", bold: true, align: AlignRight, fill: HeaderTint},
	})
	if err != nil {
		return err
	}
	rows := []Row{head}

	for _, l := range SalaryLines(bd) {
		r, err := b.row(fractions, b.opts.RowHeight, []cellSpec{
			{text: l.Earning, bold: l.Total, align: AlignLeft, fill: White},
			{text: l.earningText(), bold: l.Total, align: AlignRight, fill: White},
			{text: l.Deduction, bold: l.Total, align: AlignLeft, fill: White},
			{text: l.deductionText(), bold: l.Total, align: AlignRight, fill: White},
		})
		if err != nil {
			return err
		}
		rows = append(rows, r)
	}

	net, err := b.row([]float64{0.4, 0.2, 0.4}, b.opts.RowHeight, []cellSpec{
		{text: "Net Payable", bold: true, align: AlignLeft, fill: NetTint},
		{text: FormatAmount(bd.Payable.NetPayable), bold: true, align: AlignRight, fill: NetTint},
		{text: bd.AmountInWords, align: AlignLeft, fill: NetTint},
	})
	if err != nil {
		return err
	}
	rows = append(rows, net)

	b.place(SectionSalaryTable, true, rows...)
	b.state = stateSalaryTable
	return nil
}

func (b *Builder) Signature(company Company, signature asset.Image) error {
	if err := b.expect(stateSalaryTable); err != nil {
		return err
	}

	slot, err := b.row([]float64{0.5, 0.5}, 3*b.opts.RowHeight, []cellSpec{
		{fill: White, noBorder: true},
		{fill: White, noBorder: true, image: &signature},
	})
	if err != nil {
		return err
	}

	signatory := "Authorised Signatory"
	if company.SignatoryName != "" {
		signatory = company.SignatoryName + " (Authorised Signatory)"
	}
	caption, err := b.row([]float64{0.5, 0.5}, b.opts.RowHeight, []cellSpec{
		{text: "Employee Signature", align: AlignCenter, fill: White, noBorder: true},
		{text: signatory, align: AlignCenter, fill: White, noBorder: true},
	})
	if err != nil {
		return err
	}

	b.place(SectionSignature, false, slot, caption)
	b.state = stateSignature
	return nil
}

// Finalize closes the last page and returns the document.
func (b *Builder) Finalize() (Document, error) {
	if err := b.expect(stateSignature); err != nil {
		return Document{}, err
	}

	b.closePage()
	b.state = stateFinalized

	return Document{
		PageWidth:  b.opts.PageWidth,
		PageHeight: b.opts.PageHeight,
		Pages:      b.pages,
		Sections:   b.sections,
	}, nil
}

type cellSpec struct {
	text     string
	bold     bool
	fontSize float64
	align    Align
	fill     RGB
	noBorder bool
	// image requests an image slot; text, when present, sits to its right.
	image *asset.Image
}

func (b *Builder) labelValueRows(lines [][4]string) ([]Row, error) {
	rows := make([]Row, 0, len(lines))
	for _, l := range lines {
		r, err := b.row([]float64{0.25, 0.25, 0.25, 0.25}, b.opts.RowHeight, []cellSpec{
			{text: l[0], bold: true, align: AlignLeft, fill: LabelTint},
			{text: l[1], align: AlignLeft, fill: White},
			{text: l[2], bold: true, align: AlignLeft, fill: LabelTint},
			{text: l[3], align: AlignLeft, fill: White},
		})
		if err != nil {
			return nil, err
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// columns turns width fractions into absolute x offsets and widths. The
// last column absorbs float residue so the row ends at the content edge.
func (b *Builder) columns(fractions []float64) ([]float64, []float64, error) {
	if len(fractions) == 0 {
		return nil, nil, paysliperrors.ErrInvalidColumnFractions
	}

	var sum float64
	for _, f := range fractions {
		if f <= 0 || math.IsNaN(f) {
			return nil, nil, paysliperrors.ErrInvalidColumnFractions
		}
		sum += f
	}
	if math.Abs(sum-1) > fractionTolerance {
		return nil, nil, paysliperrors.ErrInvalidColumnFractions
	}

	width := b.opts.contentWidth()
	right := b.opts.Margin + width
	xs := make([]float64, len(fractions))
	ws := make([]float64, len(fractions))

	x := b.opts.Margin
	for i, f := range fractions {
		w := f * width
		if i == len(fractions)-1 {
			w = right - x
		}
		xs[i], ws[i] = x, w
		x += w
	}
	return xs, ws, nil
}

// row builds one row with relative vertical coordinates. Its height is
// minHeight unless wrapped text needs more.
func (b *Builder) row(fractions []float64, minHeight float64, specs []cellSpec) (Row, error) {
	if len(specs) != len(fractions) {
		return Row{}, paysliperrors.ErrInvalidColumnFractions
	}
	xs, ws, err := b.columns(fractions)
	if err != nil {
		return Row{}, err
	}

	pad := b.opts.Padding
	height := minHeight
	cells := make([]Cell, len(specs))

	for i, sp := range specs {
		fontSize := sp.fontSize
		if fontSize <= 0 {
			fontSize = b.opts.FontSize
		}

		c := Cell{
			X:          xs[i],
			Width:      ws[i],
			Text:       sp.text,
			FontSize:   fontSize,
			LineHeight: fontSize * ptToMM * lineSpacing,
			TextInsetX: pad,
			Align:      sp.align,
			Bold:       sp.bold,
			Fill:       sp.fill,
			Border:     !sp.noBorder,
		}

		if sp.image != nil {
			box := imageSlot(c, minHeight, pad, sp.text != "")
			c.ImageBox = box
			if sp.text != "" {
				c.TextInsetX = box.Width + 2*pad
			}
			if img := *sp.image; img.Usable() {
				c.Image = &img
				c.ImageBox = fit(box, img.Width, img.Height)
			} else {
				c.Blank = true
			}
		}

		c.TextWidth = math.Max(0, c.Width-c.TextInsetX-pad)
		c.Lines = b.wrap(sp.text, c.TextWidth, fontSize, sp.bold)

		if need := float64(len(c.Lines))*c.LineHeight + 2*pad; need > height {
			height = need
		}
		cells[i] = c
	}

	for i := range cells {
		cells[i].Height = height
		cells[i].TextOffsetY = (height - float64(len(cells[i].Lines))*cells[i].LineHeight) / 2
		if specs[i].image != nil {
			// slots were sized against minHeight; centre them in the final row
			cells[i].ImageBox.Y += (height - minHeight) / 2
		}
	}

	return Row{Height: height, Cells: cells}, nil
}

// imageSlot reserves the image area inside a cell, relative to the row top.
// Beside text it is a square at the left edge, alone it fills the cell.
func imageSlot(c Cell, height, pad float64, withText bool) Rect {
	side := math.Max(0, height-2*pad)
	if withText {
		return Rect{X: c.X + pad, Y: pad, Width: side, Height: side}
	}
	return Rect{X: c.X + pad, Y: pad, Width: math.Max(0, c.Width-2*pad), Height: side}
}

// fit scales an image into box keeping its aspect ratio, centred.
func fit(box Rect, w, h int) Rect {
	if w <= 0 || h <= 0 || box.Width <= 0 || box.Height <= 0 {
		return box
	}
	scale := math.Min(box.Width/float64(w), box.Height/float64(h))
	fw, fh := float64(w)*scale, float64(h)*scale
	return Rect{
		X:      box.X + (box.Width-fw)/2,
		Y:      box.Y + (box.Height-fh)/2,
		Width:  fw,
		Height: fh,
	}
}

// wrap breaks text into lines no wider than width. A word that alone is
// wider than width is split between runes.
func (b *Builder) wrap(text string, width, fontSize float64, bold bool) []string {
	fits := func(s string) bool { return b.opts.Measurer.Width(s, fontSize, bold) <= width }

	var lines []string
	for _, para := range strings.Split(strings.TrimSpace(text), "\n") {
		line := ""
		for _, w := range strings.Fields(para) {
			if line != "" && fits(line+" "+w) {
				line += " " + w
				continue
			}
			if line != "" {
				lines = append(lines, line)
			}
			if fits(w) {
				line = w
				continue
			}
			pieces := b.breakWord(w, width, fontSize, bold)
			lines = append(lines, pieces[:len(pieces)-1]...)
			line = pieces[len(pieces)-1]
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// breakWord splits one word into runs that fit width. Each run holds at
// least one rune.
func (b *Builder) breakWord(word string, width, fontSize float64, bold bool) []string {
	var (
		pieces []string
		cur    []rune
	)
	for _, r := range word {
		if len(cur) > 0 && b.opts.Measurer.Width(string(append(cur, r)), fontSize, bold) > width {
			pieces = append(pieces, string(cur))
			cur = cur[:0:0]
		}
		cur = append(cur, r)
	}
	return append(pieces, string(cur))
}

// place stacks rows into a section at the cursor, breaking to a new page
// when the section does not fit in what is left of the current one.
func (b *Builder) place(kind SectionKind, bordered bool, rows ...Row) {
	var height float64
	for _, r := range rows {
		height += r.Height
	}

	bottom := b.opts.PageHeight - b.opts.Margin
	if b.cursor+height > bottom && b.cursor > b.pageTop {
		b.closePage()
		b.page++
		b.cursor = b.opts.Margin
		b.pageTop = b.cursor
	}

	top := b.cursor
	y := top
	placed := make([]Row, len(rows))
	for i, r := range rows {
		cells := make([]Cell, len(r.Cells))
		for j, c := range r.Cells {
			c.Y = y
			if c.Image != nil || c.Blank {
				c.ImageBox.Y += y
			}
			cells[j] = c
		}
		placed[i] = Row{Y: y, Height: r.Height, Cells: cells}
		y += r.Height
	}

	b.sections = append(b.sections, Section{
		Kind:     kind,
		Page:     b.page,
		Rows:     placed,
		Border:   Rect{X: b.opts.Margin, Y: top, Width: b.opts.contentWidth(), Height: height},
		Bordered: bordered,
	})
	b.cursor = top + height
}

func (b *Builder) closePage() {
	b.pages = append(b.pages, Page{
		Number: b.page,
		Border: Rect{
			X:      b.opts.Margin,
			Y:      b.pageTop,
			Width:  b.opts.contentWidth(),
			Height: b.cursor - b.pageTop,
		},
	})
}

// SalaryLine is one earnings/deductions row of the salary table. Empty
// labels leave both the label and its amount blank.
type SalaryLine struct {
	Earning         string
	EarningAmount   int64
	Deduction       string
	DeductionAmount int64
	Total           bool
}

func (l SalaryLine) earningText() string {
	if l.Earning == "" {
		return ""
	}
	return FormatAmount(l.EarningAmount)
}

func (l SalaryLine) deductionText() string {
	if l.Deduction == "" {
		return ""
	}
	return FormatAmount(l.DeductionAmount)
}

func SalaryLines(bd salary.Breakdown) []SalaryLine {
	c, d := bd.Components, bd.Deductions
	return []SalaryLine{
		{Earning: "Basic", EarningAmount: c.Basic, Deduction: "Leave Deduction", DeductionAmount: d.LeaveDeduction},
		{Earning: "House Rent Allowance", EarningAmount: c.HRA, Deduction: "Professional Tax", DeductionAmount: d.ProfessionalTax},
		{Earning: "Dearness Allowance", EarningAmount: c.DA, Deduction: "Provident Fund", DeductionAmount: d.PF},
		{Earning: "Special Allowance", EarningAmount: c.Special, Deduction: "TDS", DeductionAmount: d.TDS},
		{Earning: "Total Allowance", EarningAmount: c.TotalAllowance},
		{Earning: "Incentive", EarningAmount: bd.Payable.IncentiveAmount},
		{Earning: "Gross Salary", EarningAmount: c.GrossSalary, Deduction: "Total Deductions", DeductionAmount: d.Total, Total: true},
	}
}

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount groups thousands with commas.
func FormatAmount(n int64) string {
	return amountPrinter.Sprintf("%d", n)
}

func formatDays(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func periodRange(start, end time.Time) string {
	if start.IsZero() || end.IsZero() {
		return ""
	}
	return start.Format("02/01/2006") + " - " + end.Format("02/01/2006")
}
