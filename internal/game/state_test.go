package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGameMode(t *testing.T) {
	tests := []struct {
		in   string
		want GameMode
	}{
		{"time", ModeTimeGoal},
		{"passengers", ModePassengerGoal},
		{"", ModeTimeGoal},
		{"whatever", ModeTimeGoal},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseGameMode(tt.in))
		})
	}
}

func TestStateJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		State  SessionState `json:"state"`
		Reason EndReason    `json:"reason"`
		Mode   GameMode     `json:"mode"`
	}{SessionEnded, EndCaught, ModePassengerGoal})
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":"ended","reason":"caught","mode":"passengers"}`, string(data))
}
