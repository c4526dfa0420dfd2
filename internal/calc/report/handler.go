package report

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	comparison "Sediment/internal/calc/comparison"
	shields "Sediment/internal/calc/shields"
)

type Input struct {
	Meta
	Scenario shields.Input `json:"scenario"`
}

type Handler struct {
	Sessions  comparison.Sessions
	SessionID func(context.Context) string
}

// Generate evaluates the posted scenario and returns its PDF report.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := shields.Calculate(input.Scenario)
	if err != nil {
		shields.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"Shields_Parameter_Results.pdf\"")
	if err := Scenario(w, input.Meta, input.Scenario, res); err != nil {
		log.Printf("Scenario report error: %v", err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
	}
}

// Comparison returns the session's comparison log as a PDF.
func (h *Handler) Comparison(w http.ResponseWriter, r *http.Request) {
	meta := Meta{
		Project: r.URL.Query().Get("project"),
		Author:  r.URL.Query().Get("author"),
	}
	entries := comparison.SessionEntries(h.Sessions, h.SessionID(r.Context()))

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"Shields_Parameter_Comparison.pdf\"")
	if err := Comparison(w, meta, entries); err != nil {
		log.Printf("Comparison report error: %v", err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
	}
}
