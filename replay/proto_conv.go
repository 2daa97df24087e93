package replay

import (
	"encoding/base64"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"bottells/intel"
	"bottells/tell"
)

// Struct envelopes carry maps, so marshalling must be deterministic for two
// runs of the same spec to produce the same bytes.
var envelopeMarshal = proto.MarshalOptions{Deterministic: true}

func tellToMap(t *tell.Tell) map[string]any {
	m := map[string]any{
		"id":            t.ID,
		"empireId":      t.EmpireID,
		"gameId":        t.GameID,
		"tellType":      t.Type.String(),
		"isBluff":       t.IsBluff,
		"confidence":    t.Confidence,
		"createdAtTurn": t.CreatedAtTurn,
		"expiresAtTurn": t.ExpiresAtTurn,
	}
	if t.TargetEmpireID != "" {
		m["targetEmpireId"] = t.TargetEmpireID
	}
	if t.TrueIntention != nil {
		m["trueIntention"] = t.TrueIntention.String()
	}
	return m
}

func projectionToMap(viewerID string, p intel.Projection, description, emotion string) map[string]any {
	m := map[string]any{
		"viewerId":          viewerID,
		"tellId":            p.Tell.ID,
		"empireId":          p.Tell.EmpireID,
		"displayType":       p.DisplayType.String(),
		"displayConfidence": p.DisplayConfidence,
		"perceivedTruth":    p.PerceivedTruth,
		"signalDetected":    p.SignalDetected,
		"description":       description,
	}
	if emotion != "" {
		m["emotion"] = emotion
	}
	return m
}

func withheldToMap(empireID string, r tell.Result) map[string]any {
	return map[string]any{
		"empireId": empireID,
		"reason":   r.Reason,
	}
}

func encodeEnvelope(env *structpb.Struct) (string, error) {
	bin, err := envelopeMarshal.Marshal(env)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(bin), nil
}

// DecodeEvent turns a wire event's envelope back into its struct form.
func DecodeEvent(envelopeB64 string) (*structpb.Struct, error) {
	bin, err := base64.StdEncoding.DecodeString(envelopeB64)
	if err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	env := &structpb.Struct{}
	if err := proto.Unmarshal(bin, env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	return env, nil
}
