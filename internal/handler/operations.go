package handler

import (
	"encoding/json"
	"net/http"

	"github.com/varunmitra/altgrammarly/internal/operation"
)

type operationInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Instruction string `json:"instruction"`
}

func Operations() http.HandlerFunc {
	ops := operation.All()
	infos := make([]operationInfo, 0, len(ops))
	for _, op := range ops {
		infos = append(infos, operationInfo{ID: string(op), Name: op.Title(), Instruction: op.Instruction()})
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(infos)
	}
}
