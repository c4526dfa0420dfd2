package shields

import (
	"encoding/json"
	"errors"
	"net/http"

	recommend "Sediment/internal/calc/premium/recommend"
)

type Response struct {
	Result
	Summary        string `json:"summary"`
	Recommendation string `json:"recommendation"`
}

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(NewResponse(res))
}

func NewResponse(res Result) Response {
	return Response{
		Result:         res,
		Summary:        Summary(res),
		Recommendation: recommend.Stability(res.ShieldsNumber, res.CriticalShields),
	}
}

// WriteError maps a Calculate error onto an HTTP status.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrDegenerateConfiguration):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "Calculation error", http.StatusBadRequest)
	}
}
