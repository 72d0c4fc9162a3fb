package node

import (
	"encoding/json"
	"net/http"

	"github.com/NethermindEth/l1sender/core"
	"github.com/NethermindEth/l1sender/sender"
)

type ReadinessHandlers struct {
	reader sender.Reader
}

// NewReadinessHandlers returns the health handlers of the sender. A nil reader means the
// sender is disabled, which is never ready.
func NewReadinessHandlers(reader sender.Reader) *ReadinessHandlers {
	return &ReadinessHandlers{reader: reader}
}

func (h *ReadinessHandlers) HandleLive(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// HandleReady reports whether the sender admits new operations.
func (h *ReadinessHandlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	if h.reader == nil || h.reader.Halted() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type InFlightStatus struct {
	ID       uint64          `json:"id"`
	Action   string          `json:"action"`
	Range    core.BlockRange `json:"range"`
	Nonce    uint64          `json:"nonce"`
	GasPrice string          `json:"gas_price"`
	TxHashes int             `json:"tx_hashes"`
}

type FailureStatus struct {
	OperationID uint64 `json:"operation_id"`
	Nonce       uint64 `json:"nonce"`
	Error       string `json:"error"`
}

type Status struct {
	Halted    bool             `json:"halted"`
	NextNonce uint64           `json:"next_nonce"`
	Stats     core.Stats       `json:"stats"`
	InFlight  []InFlightStatus `json:"in_flight"`
	Failures  []FailureStatus  `json:"failures"`
}

// HandleStatus writes a JSON snapshot of the sender state.
func (h *ReadinessHandlers) HandleStatus(w http.ResponseWriter, _ *http.Request) {
	if h.reader == nil {
		http.Error(w, "sender is disabled", http.StatusServiceUnavailable)
		return
	}

	status := Status{
		Halted:    h.reader.Halted(),
		NextNonce: h.reader.NextNonce(),
		Stats:     h.reader.Stats(),
		InFlight:  []InFlightStatus{},
		Failures:  []FailureStatus{},
	}
	for _, op := range h.reader.InFlight() {
		status.InFlight = append(status.InFlight, InFlightStatus{
			ID:       op.ID,
			Action:   op.Action.String(),
			Range:    op.Range(),
			Nonce:    op.Nonce,
			GasPrice: op.GasPrice.Dec(),
			TxHashes: len(op.TxHashes),
		})
	}
	for _, failure := range h.reader.Failures() {
		status.Failures = append(status.Failures, FailureStatus{
			OperationID: failure.OperationID,
			Nonce:       failure.Nonce,
			Error:       failure.Error(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
