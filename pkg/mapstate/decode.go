package mapstate

import "encoding/json"

// The persisted map state has gone through two shapes: the canonical one where
// behaviors is a JSON array, and a legacy one where slot 2 was a single
// newline-delimited string. Decode accepts both and normalizes to the
// canonical shape; anything else falls back to an empty map.

// rawMapData defers the behaviors field so both shapes can be decoded.
type rawMapData struct {
	Goal              string            `json:"goal"`
	Behaviors         json.RawMessage   `json:"behaviors"`
	HiddenCommitments HiddenCommitments `json:"hiddenCommitments"`
	BigAssumptions    string            `json:"bigAssumptions"`
}

// DecodeMapData parses persisted map state. It never returns a partial value:
// on malformed input the error is returned together with a fresh empty map so
// callers can recover to defaults.
func DecodeMapData(data []byte) (MapData, error) {
	var raw rawMapData
	if err := json.Unmarshal(data, &raw); err != nil {
		return NewMapData(), err
	}

	out := MapData{
		Goal:              raw.Goal,
		HiddenCommitments: raw.HiddenCommitments,
		BigAssumptions:    raw.BigAssumptions,
	}
	out.Behaviors = decodeBehaviors(raw.Behaviors)
	return out, nil
}

func decodeBehaviors(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return FilterBlank(list)
	}

	// Legacy shape: one newline-delimited string.
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return SplitEntries(single)
	}

	return []string{}
}

// DecodeTranscript parses a persisted transcript, dropping turns with an
// unknown sender tag.
func DecodeTranscript(data []byte) (Transcript, error) {
	var turns []Turn
	if err := json.Unmarshal(data, &turns); err != nil {
		return Transcript{}, err
	}
	out := make(Transcript, 0, len(turns))
	for _, t := range turns {
		if t.Sender == SenderUser || t.Sender == SenderAI {
			out = append(out, t)
		}
	}
	return out, nil
}
