package importer

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	comparison "Sediment/internal/calc/comparison"
	shields "Sediment/internal/calc/shields"
)

const MaxUploadSize = 10 << 20 // 10MB

type Handler struct {
	Sessions  comparison.Sessions
	SessionID func(context.Context) string
}

type ImportResult struct {
	Count   int               `json:"count"`
	Items   []comparison.Item `json:"items"`
	Skipped []RowError        `json:"skipped"`
}

// Import reads scenarios from an uploaded workbook, evaluates them and appends
// the valid ones to the session's comparison log in sheet order.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := ReadWorkbook(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	if len(rows) < 2 {
		http.Error(w, "Empty sheet", http.StatusBadRequest)
		return
	}

	parsed, skipped := ParseRows(rows)
	var l *comparison.Log
	out := ImportResult{Items: []comparison.Item{}, Skipped: skipped}
	for _, p := range parsed {
		res, err := shields.Calculate(p.Input)
		if err != nil {
			out.Skipped = append(out.Skipped, RowError{Row: p.Row, Reason: err.Error()})
			continue
		}
		if l == nil {
			l = h.Sessions.Log(h.SessionID(r.Context()))
		}
		e, n := l.Append(p.Input, res)
		out.Items = append(out.Items, comparison.Item{Number: n, Entry: e, Status: shields.Status(res)})
	}
	out.Count = len(out.Items)
	if out.Skipped == nil {
		out.Skipped = []RowError{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// Export returns the session's comparison log as an xlsx workbook.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	entries := comparison.SessionEntries(h.Sessions, h.SessionID(r.Context()))

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"Shields_Parameter_Comparison.xlsx\"")
	if err := WriteWorkbook(w, entries); err != nil {
		log.Printf("Export error: %v", err)
		http.Error(w, "Export error", http.StatusInternalServerError)
	}
}
