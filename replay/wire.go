package replay

type WireTurnTape struct {
	TapeVersion int             `json:"tapeVersion"`
	GameID      string          `json:"gameId"`
	Seed        int64           `json:"seed"`
	Events      []WireTurnEvent `json:"events"`
}

type WireTurnEvent struct {
	Type        string `json:"type"`
	Seq         uint64 `json:"seq"`
	Turn        int    `json:"turn"`
	EnvelopeB64 string `json:"envelopeB64"`
}

func ToWireTurnTape(tape *TurnTape) *WireTurnTape {
	if tape == nil {
		return nil
	}
	out := &WireTurnTape{
		TapeVersion: tape.TapeVersion,
		GameID:      tape.GameID,
		Seed:        tape.Seed,
		Events:      make([]WireTurnEvent, 0, len(tape.Events)),
	}
	for _, e := range tape.Events {
		out.Events = append(out.Events, WireTurnEvent{
			Type:        e.Type,
			Seq:         e.Seq,
			Turn:        e.Turn,
			EnvelopeB64: e.EnvelopeB64,
		})
	}
	return out
}
