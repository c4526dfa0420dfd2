package report

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	comparison "Sediment/internal/calc/comparison"
	shields "Sediment/internal/calc/shields"
)

var (
	fineSand = shields.Input{WaterDensityKgM3: 1000, SedimentDensityKgM3: 2650, GrainDiameterM: 0.001, ShearVelocityMS: 0.05, CriticalShields: 0.047}
	gravel   = shields.Input{WaterDensityKgM3: 1000, SedimentDensityKgM3: 2650, GrainDiameterM: 0.01, ShearVelocityMS: 0.02, CriticalShields: 0.047}
)

type oneSession struct{ l *comparison.Log }

func (s oneSession) Log(string) *comparison.Log { return s.l }
func (s oneSession) Get(string) (*comparison.Log, bool) { return s.l, true }

func isPDF(t *testing.T, b []byte) {
	t.Helper()
	if !bytes.HasPrefix(b, []byte("%PDF-")) {
		t.Fatalf("expected PDF output, got %q", b[:min(len(b), 16)])
	}
}

func TestScenarioReport(t *testing.T) {
	var buf bytes.Buffer
	meta := Meta{Project: "River Test", Author: "lab", Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}
	if err := Scenario(&buf, meta, fineSand, shields.Evaluate(fineSand)); err != nil {
		t.Fatalf("Scenario: %v", err)
	}
	isPDF(t, buf.Bytes())
}

func TestComparisonReport(t *testing.T) {
	l := comparison.NewLog()
	l.Append(fineSand, shields.Evaluate(fineSand))
	l.Append(gravel, shields.Evaluate(gravel))

	var buf bytes.Buffer
	if err := Comparison(&buf, Meta{}, l.Entries()); err != nil {
		t.Fatalf("Comparison: %v", err)
	}
	isPDF(t, buf.Bytes())
}

func TestComparisonReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Comparison(&buf, Meta{}, nil); err != nil {
		t.Fatalf("Comparison: %v", err)
	}
	isPDF(t, buf.Bytes())
}

func TestComparisonReportManyEntries(t *testing.T) {
	l := comparison.NewLog()
	for i := 0; i < 40; i++ {
		in := fineSand
		in.ShearVelocityMS = 0.01 * float64(i)
		l.Append(in, shields.Evaluate(in))
	}
	var buf bytes.Buffer
	if err := Comparison(&buf, Meta{Title: "Velocity sweep"}, l.Entries()); err != nil {
		t.Fatalf("Comparison: %v", err)
	}
	isPDF(t, buf.Bytes())
}

func TestHandlerGenerate(t *testing.T) {
	h := &Handler{Sessions: oneSession{comparison.NewLog()}, SessionID: func(context.Context) string { return "s" }}
	body := `{"project":"Weir","scenario":{"water_density_kg_m3":1000,"sediment_density_kg_m3":2650,"grain_diameter_m":0.001,"shear_velocity_m_s":0.05,"critical_shields":0.047}}`
	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/api/tools/shields/report", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %q", ct)
	}
	isPDF(t, rec.Body.Bytes())
}

func TestHandlerGenerateDegenerate(t *testing.T) {
	h := &Handler{}
	body := `{"scenario":{"water_density_kg_m3":1000,"sediment_density_kg_m3":2650,"grain_diameter_m":0,"shear_velocity_m_s":0.05,"critical_shields":0.047}}`
	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/api/tools/shields/report", strings.NewReader(body)))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestHandlerComparison(t *testing.T) {
	l := comparison.NewLog()
	l.Append(gravel, shields.Evaluate(gravel))
	h := &Handler{Sessions: oneSession{l}, SessionID: func(context.Context) string { return "s" }}

	rec := httptest.NewRecorder()
	h.Comparison(rec, httptest.NewRequest(http.MethodGet, "/api/comparison/report?project=Weir", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	isPDF(t, rec.Body.Bytes())
}
