package pdf

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/diewo77/go-invoicing/internal/finance"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

const dateLayout = "January 02, 2006"

var (
	headerBg  = &props.Color{Red: 128, Green: 128, Blue: 128}
	headerFg  = &props.Color{Red: 245, Green: 245, Blue: 245}
	bold      = props.Text{Style: fontstyle.Bold, Size: 9}
	normal    = props.Text{Size: 9}
	rightBold = props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}
	right     = props.Text{Size: 9, Align: align.Right}
)

// Maroto renders with johnfercher/maroto.
type Maroto struct{}

func NewMaroto() *Maroto { return &Maroto{} }

// Render lays out doc. Panics inside the layout engine and empty output are
// reported as ErrRender.
func (r *Maroto) Render(ctx context.Context, doc *Document) (out []byte, err error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", ErrRender)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer func() {
		if rec := recover(); rec != nil {
			out, err = nil, fmt.Errorf("%w: %v", ErrRender, rec)
		}
	}()

	cfg := config.NewBuilder().
		WithLeftMargin(12).
		WithRightMargin(12).
		WithTopMargin(12).
		Build()
	m := maroto.New(cfg)

	m.AddRows(header(doc)...)
	m.AddRows(parties(doc)...)
	m.AddRows(items(doc)...)
	m.AddRows(totals(doc)...)
	m.AddRows(footer(doc)...)

	generated, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	out = generated.GetBytes()
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty output", ErrRender)
	}
	return out, nil
}

func header(doc *Document) []core.Row {
	title := text.NewCol(8, doc.Title, props.Text{Size: 22, Style: fontstyle.Bold})
	var logo core.Col = col.New(4)
	if b, ok := logoPNG(doc.LogoPath); ok {
		logo = image.NewFromBytesCol(4, b, extension.Png, props.Rect{Center: true, Percent: 90})
	}
	rows := []core.Row{row.New(22).Add(title, logo)}

	info := []string{
		fmt.Sprintf("%s #: %s", label(doc.Title), doc.Number),
		"Date: " + doc.IssueDate.Format(dateLayout),
	}
	if doc.DateLabel != "" {
		when := "Not specified"
		if doc.Date != nil {
			when = doc.Date.Format(dateLayout)
		}
		info = append(info, doc.DateLabel+": "+when)
	}
	info = append(info, "Status: "+strings.ToUpper(doc.Status))
	for _, l := range info {
		rows = append(rows, text.NewRow(5, l, normal))
	}
	rows = append(rows, row.New(4))
	return rows
}

func label(title string) string {
	if title == "" {
		return "Document"
	}
	return strings.ToUpper(title[:1]) + strings.ToLower(title[1:])
}

func partyLines(p Party) []string {
	lines := append([]string{p.Name}, p.Lines...)
	if p.Email != "" {
		lines = append(lines, "Email: "+p.Email)
	}
	if p.Phone != "" {
		lines = append(lines, "Phone: "+p.Phone)
	}
	if p.Website != "" {
		lines = append(lines, p.Website)
	}
	if p.TaxID != "" {
		lines = append(lines, "Tax ID: "+p.TaxID)
	}
	return lines
}

func parties(doc *Document) []core.Row {
	from := partyLines(doc.Issuer)
	to := partyLines(doc.Recipient)
	rows := []core.Row{row.New(6).Add(text.NewCol(6, "From:", bold), text.NewCol(6, "Bill To:", bold))}
	n := max(len(from), len(to))
	for i := 0; i < n; i++ {
		var l, r string
		if i < len(from) {
			l = from[i]
		}
		if i < len(to) {
			r = to[i]
		}
		rows = append(rows, row.New(5).Add(text.NewCol(6, l, normal), text.NewCol(6, r, normal)))
	}
	rows = append(rows, row.New(6))
	return rows
}

func money(v float64) string { return "$" + finance.Format(v) }

func items(doc *Document) []core.Row {
	head := props.Text{Style: fontstyle.Bold, Size: 9, Color: headerFg}
	headRight := head
	headRight.Align = align.Right
	rows := []core.Row{
		row.New(7).Add(
			text.NewCol(5, "Description", head),
			text.NewCol(2, "Qty", headRight),
			text.NewCol(2, "Unit Price", headRight),
			text.NewCol(1, "Tax %", headRight),
			text.NewCol(2, "Amount", headRight),
		).WithStyle(&props.Cell{BackgroundColor: headerBg}),
	}
	for _, l := range doc.Lines {
		rows = append(rows, row.New(6).Add(
			text.NewCol(5, l.Description, normal),
			text.NewCol(2, fmt.Sprintf("%g", l.Quantity), right),
			text.NewCol(2, money(l.UnitPrice), right),
			text.NewCol(1, finance.FormatRate(l.TaxRate)+"%", right),
			text.NewCol(2, money(l.Total), right),
		))
	}
	rows = append(rows, line.NewRow(2))
	return rows
}

func totalRow(name, value string, style props.Text) core.Row {
	return row.New(6).Add(col.New(8), text.NewCol(2, name, style), text.NewCol(2, value, style))
}

func totals(doc *Document) []core.Row {
	rows := []core.Row{
		totalRow("Subtotal:", money(doc.Totals.Subtotal), right),
		totalRow("Tax:", money(doc.Totals.Tax), right),
		totalRow("TOTAL:", money(doc.Totals.Total), rightBold),
	}
	if doc.ShowPaid {
		rows = append(rows,
			totalRow("Paid:", money(doc.Paid), right),
			totalRow("Balance:", money(doc.Balance), rightBold),
		)
	}
	return append(rows, row.New(6))
}

func section(title, body string) []core.Row {
	if strings.TrimSpace(body) == "" {
		return nil
	}
	rows := []core.Row{text.NewRow(6, title, bold)}
	for _, l := range strings.Split(strings.TrimSpace(body), "\n") {
		rows = append(rows, text.NewRow(5, strings.TrimRight(l, "\r"), normal))
	}
	return append(rows, row.New(3))
}

func footer(doc *Document) []core.Row {
	var rows []core.Row
	rows = append(rows, section("Notes:", doc.Notes)...)
	rows = append(rows, section("Terms & Conditions:", doc.Terms)...)
	if len(doc.BankLines) > 0 || doc.PayInfo != "" || doc.PayMethods != "" {
		rows = append(rows, text.NewRow(6, "Payment Information:", bold))
		for _, l := range doc.BankLines {
			rows = append(rows, text.NewRow(5, l, normal))
		}
		if doc.PayMethods != "" {
			rows = append(rows, text.NewRow(5, "Accepted methods: "+doc.PayMethods, normal))
		}
		for _, l := range strings.Split(strings.TrimSpace(doc.PayInfo), "\n") {
			if l = strings.TrimSpace(l); l != "" {
				rows = append(rows, text.NewRow(5, l, normal))
			}
		}
	}
	return rows
}

// logoPNG loads a raster logo and re-encodes it as PNG, which covers GIF
// input. SVG and unreadable files yield ok=false.
func logoPNG(path string) ([]byte, bool) {
	if path == "" || strings.EqualFold(filepath.Ext(path), ".svg") {
		return nil, false
	}
	img, err := imaging.Open(path)
	if err != nil {
		return nil, false
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}
