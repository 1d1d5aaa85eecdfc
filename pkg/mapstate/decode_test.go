package mapstate

import (
	"reflect"
	"testing"
)

func TestDecodeMapData(t *testing.T) {
	tests := []struct {
		name          string
		data          string
		wantErr       bool
		wantGoal      string
		wantBehaviors []string
	}{
		{
			name:          "canonical shape",
			data:          `{"goal":"listen more","behaviors":["interrupting","checking phone"],"hiddenCommitments":{"worries":"","commitments":""},"bigAssumptions":""}`,
			wantGoal:      "listen more",
			wantBehaviors: []string{"interrupting", "checking phone"},
		},
		{
			name:          "legacy newline string behaviors",
			data:          `{"goal":"delegate","behaviors":"doing it myself\n  micromanaging  \n\n"}`,
			wantGoal:      "delegate",
			wantBehaviors: []string{"doing it myself", "micromanaging"},
		},
		{
			name:          "missing behaviors",
			data:          `{"goal":"speak up"}`,
			wantGoal:      "speak up",
			wantBehaviors: []string{},
		},
		{
			name:          "blank list entries filtered",
			data:          `{"behaviors":["", "a", "  "]}`,
			wantBehaviors: []string{"a"},
		},
		{
			name:          "corrupted json",
			data:          `{"goal": "broken`,
			wantErr:       true,
			wantBehaviors: []string{},
		},
		{
			name:          "behaviors of unexpected type",
			data:          `{"goal":"x","behaviors":42}`,
			wantGoal:      "x",
			wantBehaviors: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := DecodeMapData([]byte(tt.data))

			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if m.Goal != tt.wantGoal {
				t.Errorf("Goal = %q, want %q", m.Goal, tt.wantGoal)
			}
			if !reflect.DeepEqual(m.Behaviors, tt.wantBehaviors) {
				t.Errorf("Behaviors = %v, want %v", m.Behaviors, tt.wantBehaviors)
			}
			if m.Behaviors == nil {
				t.Error("Behaviors must never be nil after decode")
			}
		})
	}
}

func TestDecodeTranscriptDropsUnknownSenders(t *testing.T) {
	data := `[
		{"sender":"user","text":"hi"},
		{"sender":"system","text":"internal"},
		{"sender":"ai","text":"hello"}
	]`

	got, err := DecodeTranscript([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Sender != SenderUser || got[1].Sender != SenderAI {
		t.Errorf("unexpected senders: %+v", got)
	}
}

func TestDecodeTranscriptCorrupted(t *testing.T) {
	got, err := DecodeTranscript([]byte(`not json`))
	if err == nil {
		t.Fatal("expected error")
	}
	if len(got) != 0 {
		t.Errorf("corrupted transcript must decode to empty, got %v", got)
	}
}

func TestTranscriptAppendDoesNotMutate(t *testing.T) {
	orig := Transcript{{Sender: SenderUser, Text: "one"}}
	grown := orig.Append(Turn{Sender: SenderAI, Text: "two"})

	if len(orig) != 1 {
		t.Errorf("original mutated, len = %d", len(orig))
	}
	if len(grown) != 2 {
		t.Errorf("appended len = %d, want 2", len(grown))
	}

	// Growing the copy further must not leak into a shared backing array.
	three := grown.Append(Turn{Sender: SenderUser, Text: "three"})
	four := grown.Append(Turn{Sender: SenderUser, Text: "four"})
	if three[2].Text == four[2].Text {
		t.Error("appends share a backing array")
	}
}

func TestSplitEntries(t *testing.T) {
	got := SplitEntries("a\n\n  b  \n   \nc")
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitEntries = %v, want %v", got, want)
	}
}
