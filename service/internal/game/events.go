package game

import (
	"github.com/google/uuid"
	engine "github.com/jason-s-yu/splendor/engine"
)

// EventType identifies a runner event.
type EventType string

const (
	EventGameStarted   EventType = "game_started"
	EventTurnStarted   EventType = "turn_started"
	EventActionApplied EventType = "action_applied"
	EventWarning       EventType = "warning"    // agent timed out, failed or chose an illegal action
	EventGameEnded     EventType = "game_ended" // includes final scores
)

// WarningReason explains why an agent received a warning.
type WarningReason string

const (
	WarningTimeout WarningReason = "timeout"
	WarningError   WarningReason = "error"
	WarningIllegal WarningReason = "illegal_action"
)

// Event describes one step of a game as it is played.
type Event struct {
	Type   EventType      `json:"type"`
	GameID uuid.UUID      `json:"game_id"`
	Turn   int            `json:"turn"`
	Agent  int            `json:"agent"`
	Action *engine.Action `json:"action,omitempty"`
	Text   string         `json:"text,omitempty"` // human-readable line
	Reason WarningReason  `json:"reason,omitempty"`
	Scores []float64      `json:"scores,omitempty"`
}
