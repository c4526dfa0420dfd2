package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	comparison "Sediment/internal/calc/comparison"
	recommend "Sediment/internal/calc/premium/recommend"
	shields "Sediment/internal/calc/shields"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Comparison"

var exportHeader = []interface{}{
	"#", "Water density (kg/m3)", "Sediment density (kg/m3)", "Grain diameter (m)",
	"Shear velocity (m/s)", "Critical Shields", "Bed shear stress (Pa)", "Shields number",
	"Ratio", "Status", "Added at",
}

type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type Row struct {
	Row   int
	Input shields.Input
}

// ParseRows reads scenarios from sheet rows. The first row is a header;
// columns are water density, sediment density, grain diameter, shear
// velocity and critical Shields number. Blank rows are skipped silently.
// Row numbers are 1-based as shown by spreadsheet programs.
func ParseRows(rows [][]string) ([]Row, []RowError) {
	var out []Row
	var bad []RowError
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		in, err := parseRow(row)
		if err != nil {
			bad = append(bad, RowError{Row: i + 1, Reason: err.Error()})
			continue
		}
		out = append(out, Row{Row: i + 1, Input: in})
	}
	return out, bad
}

func parseRow(row []string) (shields.Input, error) {
	if len(row) < 5 {
		return shields.Input{}, fmt.Errorf("expected 5 columns, got %d", len(row))
	}
	var v [5]float64
	for i := range v {
		f, err := toFloat(row[i])
		if err != nil {
			return shields.Input{}, fmt.Errorf("column %d: %q is not a number", i+1, row[i])
		}
		v[i] = f
	}
	return shields.Input{
		WaterDensityKgM3:    v[0],
		SedimentDensityKgM3: v[1],
		GrainDiameterM:      v[2],
		ShearVelocityMS:     v[3],
		CriticalShields:     v[4],
	}, nil
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// ReadWorkbook returns the rows of the workbook's first sheet.
func ReadWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return rows, nil
}

// WriteWorkbook writes entries as a single-sheet workbook, one row per entry
// in log order.
func WriteWorkbook(w io.Writer, entries []comparison.Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(exportHeader), 1)
	if err := f.SetCellStyle(exportSheet, "A1", last, bold); err != nil {
		return err
	}

	for i, e := range entries {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			i + 1,
			e.Input.WaterDensityKgM3,
			e.Input.SedimentDensityKgM3,
			e.Input.GrainDiameterM,
			e.Input.ShearVelocityMS,
			e.Input.CriticalShields,
			e.Result.BedShearStressPa,
			e.Result.ShieldsNumber,
			recommend.Margin(e.Result.ShieldsNumber, e.Result.CriticalShields),
			shields.Status(e.Result),
			e.AddedAt.Format("2006-01-02 15:04:05"),
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return err
		}
	}
	return f.Write(w)
}
