package batch

import (
	"fmt"

	shields "Sediment/internal/calc/shields"
)

type Input struct {
	Items []shields.Input `json:"items"`
}

type Item struct {
	Input  shields.Input   `json:"input"`
	Result *shields.Result `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

type Result struct {
	Eroding int    `json:"eroding"`
	Stable  int    `json:"stable"`
	Failed  int    `json:"failed"`
	Items   []Item `json:"items"`
}

// Calculate evaluates every item in order. A rejected item records its error
// and does not stop the rest.
func Calculate(in Input) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, fmt.Errorf("no items")
	}
	out := Result{Items: make([]Item, 0, len(in.Items))}
	for _, item := range in.Items {
		res, err := shields.Calculate(item)
		if err != nil {
			out.Failed++
			out.Items = append(out.Items, Item{Input: item, Error: err.Error()})
			continue
		}
		if res.ErosionOccurs {
			out.Eroding++
		} else {
			out.Stable++
		}
		out.Items = append(out.Items, Item{Input: item, Result: &res})
	}
	return out, nil
}
