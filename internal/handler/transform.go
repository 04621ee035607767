package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/varunmitra/altgrammarly/internal/busy"
	"github.com/varunmitra/altgrammarly/internal/operation"
	"github.com/varunmitra/altgrammarly/internal/transform"
)

const maxTextLength = 10000

// Transformer runs one rewrite.
type Transformer interface {
	Transform(ctx context.Context, req transform.Request) (transform.Result, error)
}

type transformRequest struct {
	Text      string `json:"text"`
	Operation string `json:"operation"`
	App       string `json:"app,omitempty"`
}

type transformResponse struct {
	Text      string `json:"text"`
	Operation string `json:"operation"`
	Provider  string `json:"provider"`
	Attempts  int    `json:"attempts"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

// Transform serves POST /api/transform. Only one transform runs at a time;
// requests arriving while one is in flight get 409.
func Transform(t Transformer, guard *busy.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var req transformRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		if len(req.Text) > maxTextLength {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("text too long: %d characters (max %d)", len(req.Text), maxTextLength))
			return
		}
		if req.Operation == "" {
			writeError(w, http.StatusBadRequest, "operation is required")
			return
		}
		op, err := operation.Parse(req.Operation)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		var res transform.Result
		err = guard.Do(func() error {
			var err error
			res, err = t.Transform(r.Context(), transform.Request{Text: req.Text, Operation: op, App: req.App})
			return err
		})
		if errors.Is(err, busy.ErrBusy) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		if err != nil {
			kind := transform.KindOf(err)
			writeKindError(w, statusForKind(kind), err.Error(), kind)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(transformResponse{
			Text:      res.Text,
			Operation: string(res.Operation),
			Provider:  res.Provider,
			Attempts:  res.Attempts,
			ElapsedMs: res.Elapsed.Milliseconds(),
		})
	}
}

func statusForKind(k transform.Kind) int {
	switch k {
	case transform.KindInvalidInput:
		return http.StatusBadRequest
	case transform.KindPermanent:
		return http.StatusBadGateway
	case transform.KindExhaustedRetries:
		return http.StatusServiceUnavailable
	case transform.KindCanceled:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
