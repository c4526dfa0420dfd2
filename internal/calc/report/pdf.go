package report

import (
	"fmt"
	"io"
	"math"
	"time"

	comparison "Sediment/internal/calc/comparison"
	recommend "Sediment/internal/calc/premium/recommend"
	shields "Sediment/internal/calc/shields"

	"github.com/phpdave11/gofpdf"
)

type Meta struct {
	Project string    `json:"project"`
	Author  string    `json:"author"`
	Title   string    `json:"title"`
	Notes   string    `json:"notes"`
	Date    time.Time `json:"-"`
}

type rgb struct{ r, g, b int }

var (
	thetaColor    = rgb{0x34, 0x98, 0xdb}
	criticalColor = rgb{0xe7, 0x4c, 0x3c}
	erosionColor  = rgb{0xc0, 0x39, 0x2b}
	stableColor   = rgb{0x27, 0xae, 0x60}
)

type bar struct {
	label    string
	theta    float64
	critical float64
}

func newDocument(meta Meta, defaultTitle string) *gofpdf.Fpdf {
	if meta.Title == "" {
		meta.Title = defaultTitle
	}
	if meta.Date.IsZero() {
		meta.Date = time.Now()
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(meta.Title, false)
	pdf.SetAuthor(meta.Author, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, meta.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	if meta.Project != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Project: %s", meta.Project))
		pdf.Ln(6)
	}
	if meta.Author != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Author: %s", meta.Author))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", meta.Date.Format("2006-01-02")))
	pdf.Ln(10)
	if meta.Notes != "" {
		pdf.MultiCell(0, 6, meta.Notes, "", "L", false)
		pdf.Ln(4)
	}
	return pdf
}

// Scenario writes a single-evaluation report: parameters, verdict,
// recommendation and a theta/critical bar chart.
func Scenario(w io.Writer, meta Meta, in shields.Input, res shields.Result) error {
	pdf := newDocument(meta, "Shields Parameter Calculator - Results")

	heading(pdf, "Parameters")
	rows := [][2]string{
		{"Water density (kg/m3)", fmt.Sprintf("%.2f", in.WaterDensityKgM3)},
		{"Sediment density (kg/m3)", fmt.Sprintf("%.2f", in.SedimentDensityKgM3)},
		{"Grain diameter (m)", fmt.Sprintf("%.6f", in.GrainDiameterM)},
		{"Shear velocity (m/s)", fmt.Sprintf("%.2f", in.ShearVelocityMS)},
		{"Bed shear stress (Pa)", fmt.Sprintf("%.6f", res.BedShearStressPa)},
		{"Shields parameter (theta)", fmt.Sprintf("%.6f", res.ShieldsNumber)},
		{"Critical parameter (theta_cr)", fmt.Sprintf("%.6f", res.CriticalShields)},
	}
	for _, row := range rows {
		pdf.CellFormat(80, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, row[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	heading(pdf, "Overview")
	status(pdf, res)
	pdf.Ln(4)

	heading(pdf, "Recommendation")
	pdf.MultiCell(0, 6, recommend.Stability(res.ShieldsNumber, res.CriticalShields), "", "L", false)
	pdf.Ln(6)

	barChart(pdf, []bar{{label: "Scenario", theta: res.ShieldsNumber, critical: res.CriticalShields}})
	return pdf.Output(w)
}

// Comparison writes one table row per logged evaluation, in log order, and a
// grouped bar chart of all of them.
func Comparison(w io.Writer, meta Meta, entries []comparison.Entry) error {
	pdf := newDocument(meta, "Shields Parameter Calculator - Comparison")

	heading(pdf, "Comparison Results")
	if len(entries) == 0 {
		pdf.Cell(0, 6, "No scenarios recorded.")
		pdf.Ln(6)
		return pdf.Output(w)
	}

	headers := []string{"#", "rho_w", "rho_s", "d (m)", "u* (m/s)", "theta", "theta_cr", "ratio", "Status"}
	widths := []float64{8, 18, 18, 20, 20, 24, 20, 16, 46}
	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)

	bars := make([]bar, 0, len(entries))
	for i, e := range entries {
		cells := []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.0f", e.Input.WaterDensityKgM3),
			fmt.Sprintf("%.0f", e.Input.SedimentDensityKgM3),
			fmt.Sprintf("%.6f", e.Input.GrainDiameterM),
			fmt.Sprintf("%.3f", e.Input.ShearVelocityMS),
			fmt.Sprintf("%.6f", e.Result.ShieldsNumber),
			fmt.Sprintf("%.4f", e.Result.CriticalShields),
			fmt.Sprintf("%.2f", recommend.Margin(e.Result.ShieldsNumber, e.Result.CriticalShields)),
			shields.Status(e.Result),
		}
		for j, c := range cells {
			pdf.CellFormat(widths[j], 6, c, "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
		bars = append(bars, bar{label: fmt.Sprintf("%d", i+1), theta: e.Result.ShieldsNumber, critical: e.Result.CriticalShields})
	}
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 11)

	barChart(pdf, bars)
	return pdf.Output(w)
}

func heading(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, text)
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
}

func status(pdf *gofpdf.Fpdf, res shields.Result) {
	c := stableColor
	text := fmt.Sprintf("No erosion. theta = %.6f <= theta_cr = %g", res.ShieldsNumber, res.CriticalShields)
	if res.ErosionOccurs {
		c = erosionColor
		text = fmt.Sprintf("Erosion occurs! theta = %.6f > theta_cr = %g", res.ShieldsNumber, res.CriticalShields)
	}
	pdf.SetTextColor(c.r, c.g, c.b)
	pdf.Cell(0, 6, "Status: "+text)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)
}

const (
	chartHeight = 60.0
	chartWidth  = 170.0
	chartLeft   = 20.0
)

// barChart draws theta and theta_cr side by side for every group, scaled
// from zero to the largest value.
func barChart(pdf *gofpdf.Fpdf, groups []bar) {
	if len(groups) == 0 {
		return
	}
	top := pdf.GetY()
	if top+chartHeight+20 > 280 {
		pdf.AddPage()
		top = pdf.GetY()
	}

	maxV := 0.0
	for _, g := range groups {
		maxV = math.Max(maxV, math.Max(g.theta, g.critical))
	}
	if maxV <= 0 {
		maxV = 1
	}
	base := top + chartHeight

	pdf.SetDrawColor(0, 0, 0)
	pdf.Line(chartLeft, top, chartLeft, base)
	pdf.Line(chartLeft, base, chartLeft+chartWidth, base)
	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(chartLeft-2-pdf.GetStringWidth(fmt.Sprintf("%.4g", maxV)), top+2, fmt.Sprintf("%.4g", maxV))
	pdf.Text(chartLeft-4, base, "0")

	slot := chartWidth / float64(len(groups))
	barW := math.Min(slot*0.35, 25)
	for i, g := range groups {
		x := chartLeft + float64(i)*slot + (slot-2*barW)/2
		for j, v := range []float64{g.theta, g.critical} {
			c := thetaColor
			if j == 1 {
				c = criticalColor
			}
			h := chartHeight * math.Max(v, 0) / maxV
			pdf.SetFillColor(c.r, c.g, c.b)
			pdf.Rect(x+float64(j)*barW, base-h, barW, h, "F")
		}
		pdf.Text(x+barW-pdf.GetStringWidth(g.label)/2, base+5, g.label)
	}

	legendY := base + 10
	for i, l := range []struct {
		text string
		c    rgb
	}{{"theta (Shields parameter)", thetaColor}, {"theta_cr (critical)", criticalColor}} {
		x := chartLeft + float64(i)*70
		pdf.SetFillColor(l.c.r, l.c.g, l.c.b)
		pdf.Rect(x, legendY-3, 4, 4, "F")
		pdf.Text(x+6, legendY, l.text)
	}
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetY(legendY + 6)
}
