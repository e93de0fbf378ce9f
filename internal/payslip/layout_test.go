package payslip_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"go-payslip/internal/asset"
	"go-payslip/internal/payslip"
	paysliperrors "go-payslip/internal/payslip/errors"
	"go-payslip/internal/salary"
	"go-payslip/internal/shared/numword"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

type fixedMeasurer struct {
	charWidth float64
}

func (m fixedMeasurer) Width(text string, _ float64, _ bool) float64 {
	return float64(len([]rune(text))) * m.charWidth
}

func testImage(t *testing.T, w, h int) asset.Image {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.Black)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return asset.Image{Ref: "test", Data: buf.Bytes(), Format: "PNG", Width: w, Height: h, State: asset.StateLoaded}
}

func sampleData(t *testing.T) payslip.Data {
	t.Helper()
	bd, err := salary.Derive(salary.Inputs{
		YearlyCTC:  600000,
		Attendance: salary.AttendanceSummary{WorkingDays: 30, PayableDays: 28, LeaveTaken: 2},
	}, numword.GroupingWestern)
	require.NoError(t, err)

	return payslip.Data{
		Company: payslip.Company{
			Name:          "Acme Corp",
			Address:       "42 Industrial Estate, Phase II, Pune 411001",
			SignatoryName: "Jane Roe",
		},
		Employee:    salary.EmployeeIdentity{UID: "EMP-1", FirstName: "John", LastName: "Doe", JobRole: "Engineer", Department: "R&D", JoiningDate: "2021-04-01"},
		Attendance:  salary.AttendanceSummary{WorkingDays: 30, PayableDays: 28, LeaveTaken: 2},
		Bank:        salary.BankDetails{BankName: "HDFC", BankAccountNo: "0001", BankIfscCode: "HDFC0001", BranchName: "Pune"},
		Breakdown:   bd,
		PeriodStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		SlipNumber:  "SLIP-000001",
		Logo:        testImage(t, 4, 2),
		Signature:   testImage(t, 6, 2),
	}
}

func assertGridInvariants(t *testing.T, doc payslip.Document, opts payslip.Options) {
	t.Helper()
	left := opts.Margin
	right := opts.PageWidth - opts.Margin

	for _, s := range doc.Sections {
		assert.InDelta(t, s.Height(), s.Border.Height, eps, "section %s height", s.Kind)

		y := s.Border.Y
		for _, row := range s.Rows {
			assert.InDelta(t, y, row.Y, eps, "section %s row start", s.Kind)
			y += row.Height

			x := left
			for _, c := range row.Cells {
				assert.InDelta(t, x, c.X, eps, "section %s column start", s.Kind)
				assert.Equal(t, row.Y, c.Y)
				assert.Equal(t, row.Height, c.Height)
				assert.GreaterOrEqual(t, c.TextOffsetY, 0.0)
				x = c.Right()
			}
			assert.InDelta(t, right, x, eps, "section %s row end", s.Kind)
		}
		assert.InDelta(t, s.Border.Bottom(), y, eps)
	}

	for _, p := range doc.Pages {
		sections := doc.SectionsOn(p.Number)
		require.NotEmpty(t, sections)

		var total float64
		cursor := p.Border.Y
		for _, s := range sections {
			assert.InDelta(t, cursor, s.Border.Y, eps, "sections overlap or leave gaps")
			cursor = s.Border.Bottom()
			total += s.Height()
		}
		assert.InDelta(t, total, p.Border.Height, eps, "outer border on page %d", p.Number)
	}
}

func TestLayout(t *testing.T) {
	opts := payslip.DefaultOptions()
	opts.Measurer = fixedMeasurer{charWidth: 1.6}

	doc, err := payslip.Layout(sampleData(t), opts)
	require.NoError(t, err)

	t.Run("sections in order on one page", func(t *testing.T) {
		kinds := make([]payslip.SectionKind, 0, len(doc.Sections))
		for _, s := range doc.Sections {
			kinds = append(kinds, s.Kind)
		}

		assert.Equal(t, []payslip.SectionKind{
			payslip.SectionHeader,
			payslip.SectionTitle,
			payslip.SectionEmployeeInfo,
			payslip.SectionAttendanceBank,
			payslip.SectionSalaryTable,
			payslip.SectionSignature,
		}, kinds)
		assert.Len(t, doc.Pages, 1)
		assert.Equal(t, opts.Margin, doc.Pages[0].Border.Y)
	})

	t.Run("grid invariants", func(t *testing.T) {
		assertGridInvariants(t, doc, opts)
	})

	t.Run("bordered sections", func(t *testing.T) {
		for _, s := range doc.Sections {
			want := s.Kind != payslip.SectionTitle && s.Kind != payslip.SectionSignature
			assert.Equal(t, want, s.Bordered, "section %s", s.Kind)
		}
	})

	t.Run("salary table columns", func(t *testing.T) {
		s, ok := doc.Section(payslip.SectionSalaryTable)
		require.True(t, ok)

		head := s.Rows[0]
		require.Len(t, head.Cells, 4)
		assert.InDelta(t, 0.4*190, head.Cells[0].Width, eps)
		assert.InDelta(t, 0.2*190, head.Cells[1].Width, eps)

		net := s.Rows[len(s.Rows)-1]
		require.Len(t, net.Cells, 3)
		assert.Equal(t, "Net Payable", net.Cells[0].Text)
		assert.Equal(t, "44,967", net.Cells[1].Text)
		assert.Equal(t, "Forty Four Thousand Nine Hundred Sixty Seven Rupees Only", net.Cells[2].Text)
		// 76mm of words at 1.6mm per rune cannot fit on one line
		assert.Greater(t, len(net.Cells[2].Lines), 1)
		assert.Greater(t, net.Height, opts.RowHeight)
	})

	t.Run("images placed inside their cells", func(t *testing.T) {
		header, _ := doc.Section(payslip.SectionHeader)
		logo := header.Rows[0].Cells[0]
		require.NotNil(t, logo.Image)
		assert.False(t, logo.Blank)
		assert.GreaterOrEqual(t, logo.ImageBox.X, logo.X)
		assert.GreaterOrEqual(t, logo.ImageBox.Y, logo.Y)
		assert.LessOrEqual(t, logo.ImageBox.Bottom(), logo.Y+logo.Height+eps)
		assert.Greater(t, logo.TextInsetX, logo.ImageBox.Width)

		sig, _ := doc.Section(payslip.SectionSignature)
		assert.NotNil(t, sig.Rows[0].Cells[1].Image)
		assert.Contains(t, sig.Rows[1].Cells[1].Text, "Jane Roe")
	})
}

func TestLayout_WrapsLongText(t *testing.T) {
	opts := payslip.DefaultOptions()
	opts.Measurer = fixedMeasurer{charWidth: 3}

	data := sampleData(t)
	data.Company.Address = "Plot 17, Sector 5, Near the Old Railway Crossing, Hinjewadi Phase III, Pune, Maharashtra 411057"

	doc, err := payslip.Layout(data, opts)
	require.NoError(t, err)

	header, _ := doc.Section(payslip.SectionHeader)
	row := header.Rows[0]
	addr := row.Cells[1]

	assert.Greater(t, len(addr.Lines), 3)
	assert.Greater(t, row.Height, 2*opts.RowHeight)
	assert.InDelta(t, row.Height, 2*addr.TextOffsetY+float64(len(addr.Lines))*addr.LineHeight, eps)
	for _, line := range addr.Lines {
		assert.LessOrEqual(t, fixedMeasurer{charWidth: 3}.Width(line, 0, false), addr.TextWidth)
	}
	assertGridInvariants(t, doc, opts)
}

func TestLayout_BreaksWordsWiderThanCell(t *testing.T) {
	opts := payslip.DefaultOptions()
	m := fixedMeasurer{charWidth: 1.5}
	opts.Measurer = m

	data := sampleData(t)
	long := strings.Repeat("payroll.accounts", 7) + "@acme.example"
	data.Company.Address = "Contact " + long + " today"

	doc, err := payslip.Layout(data, opts)
	require.NoError(t, err)

	header, _ := doc.Section(payslip.SectionHeader)
	addr := header.Rows[0].Cells[1]

	assert.Greater(t, m.Width(long, 0, false), addr.TextWidth)
	assert.Greater(t, len(addr.Lines), 2)
	for _, line := range addr.Lines {
		assert.LessOrEqual(t, m.Width(line, 0, false), addr.TextWidth, "line %q", line)
	}
	assert.Equal(t, "Contact", addr.Lines[0])
	assert.True(t, strings.HasSuffix(addr.Lines[len(addr.Lines)-1], "today"))
	rebuilt := strings.ReplaceAll(strings.Join(addr.Lines[1:], ""), " ", "")
	assert.Equal(t, long+"today", rebuilt)
	assertGridInvariants(t, doc, opts)
}

func TestLayout_BlankForUnusableImages(t *testing.T) {
	data := sampleData(t)
	data.Logo = asset.Image{}
	data.Signature = asset.Image{Ref: "broken", State: asset.StatePending}

	doc, err := payslip.Layout(data, payslip.DefaultOptions())
	require.NoError(t, err)

	header, _ := doc.Section(payslip.SectionHeader)
	logo := header.Rows[0].Cells[0]
	assert.True(t, logo.Blank)
	assert.Nil(t, logo.Image)
	assert.Equal(t, "Acme Corp", logo.Text)

	sig, _ := doc.Section(payslip.SectionSignature)
	assert.True(t, sig.Rows[0].Cells[1].Blank)

	s, ok := doc.Section(payslip.SectionSalaryTable)
	assert.True(t, ok)
	assert.NotEmpty(t, s.Rows)
}

func TestLayout_Pagination(t *testing.T) {
	opts := payslip.DefaultOptions()
	opts.PageHeight = 120

	doc, err := payslip.Layout(sampleData(t), opts)
	require.NoError(t, err)

	assert.Greater(t, len(doc.Pages), 1)
	for i, p := range doc.Pages {
		assert.Equal(t, i+1, p.Number)
		assert.Equal(t, opts.Margin, p.Border.Y)
		assert.LessOrEqual(t, p.Border.Bottom(), opts.PageHeight-opts.Margin+eps)
	}
	assertGridInvariants(t, doc, opts)
}

func TestBuilder_Transitions(t *testing.T) {
	data := sampleData(t)

	t.Run("out of order rejected", func(t *testing.T) {
		b := payslip.NewBuilder(payslip.DefaultOptions())

		assert.ErrorIs(t, b.Title("x"), paysliperrors.ErrInvalidLayoutTransition)
		assert.ErrorIs(t, b.SalaryTable(data.Breakdown), paysliperrors.ErrInvalidLayoutTransition)
		_, err := b.Finalize()
		assert.ErrorIs(t, err, paysliperrors.ErrInvalidLayoutTransition)
	})

	t.Run("no re-entry", func(t *testing.T) {
		b := payslip.NewBuilder(payslip.DefaultOptions())

		assert.NoError(t, b.Header(data.Company, data.Logo))
		assert.ErrorIs(t, b.Header(data.Company, data.Logo), paysliperrors.ErrInvalidLayoutTransition)
	})

	t.Run("finalized builder is closed", func(t *testing.T) {
		b := payslip.NewBuilder(payslip.DefaultOptions())

		assert.NoError(t, b.Header(data.Company, data.Logo))
		assert.NoError(t, b.Title("Salary Slip"))
		assert.NoError(t, b.EmployeeInfo(data.Employee, data.PeriodStart, data.PeriodEnd, ""))
		assert.NoError(t, b.AttendanceBank(data.Attendance, data.Bank))
		assert.NoError(t, b.SalaryTable(data.Breakdown))
		assert.NoError(t, b.Signature(data.Company, data.Signature))

		doc, err := b.Finalize()
		assert.NoError(t, err)
		assert.Len(t, doc.Sections, 6)

		_, err = b.Finalize()
		assert.ErrorIs(t, err, paysliperrors.ErrInvalidLayoutTransition)
		assert.ErrorIs(t, b.Header(data.Company, data.Logo), paysliperrors.ErrInvalidLayoutTransition)
	})
}

func TestPeriodTitle(t *testing.T) {
	jan1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "Salary Slip for the month of January 2024", payslip.PeriodTitle(jan1, jan1.AddDate(0, 0, 30)))
	assert.Equal(t, "Salary Slip for 01 Jan 2024 to 15 Feb 2024", payslip.PeriodTitle(jan1, jan1.AddDate(0, 1, 14)))
	assert.Equal(t, "Salary Slip", payslip.PeriodTitle(time.Time{}, jan1))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Acme Corp_salary_slip_John Doe.pdf", payslip.FileName("Acme Corp", "John Doe"))
	assert.Equal(t, "A-B_salary_slip_C.pdf", payslip.FileName(" A/B ", "C"))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0", payslip.FormatAmount(0))
	assert.Equal(t, "44,967", payslip.FormatAmount(44967))
	assert.Equal(t, "1,234,567", payslip.FormatAmount(1234567))
}
