package main

import (
	"context"
	"encoding/json"
	"errors"

	"bottells/replay"
)

type tapeRequest struct {
	Spec replay.TurnSpec `json:"spec"`
}

type tapeResponse struct {
	OK    bool                 `json:"ok"`
	Tape  *replay.WireTurnTape `json:"tape,omitempty"`
	Error *replay.ReplayError  `json:"error,omitempty"`
}

func handleReplay(raw string) tapeResponse {
	var req tapeRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		return tapeResponse{
			OK:    false,
			Error: &replay.ReplayError{StepIndex: -1, Reason: "invalid_json", Message: err.Error()},
		}
	}

	tape, err := replay.GenerateTurnTape(context.Background(), req.Spec, replay.WithMaxParallel(1))
	if err != nil {
		var replayErr *replay.ReplayError
		if errors.As(err, &replayErr) {
			return tapeResponse{OK: false, Error: replayErr}
		}
		return tapeResponse{
			OK:    false,
			Error: &replay.ReplayError{StepIndex: -1, Reason: "replay_generation_failed", Message: err.Error()},
		}
	}
	return tapeResponse{OK: true, Tape: replay.ToWireTurnTape(tape)}
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		fallback := tapeResponse{
			OK:    false,
			Error: &replay.ReplayError{StepIndex: -1, Reason: "marshal_failed", Message: err.Error()},
		}
		b2, _ := json.Marshal(fallback)
		return string(b2)
	}
	return string(b)
}
