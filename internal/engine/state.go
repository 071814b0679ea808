package engine

import (
	"github.com/louisbranch/gitdungeon/internal/content"
	"github.com/louisbranch/gitdungeon/internal/route"
)

// Phase is the run-level state machine position.
type Phase string

const (
	// PhaseExploration is the between-encounters state.
	PhaseExploration Phase = "exploration"
	// PhaseCombat is an active encounter.
	PhaseCombat Phase = "combat"
	// PhaseChapterComplete sits between a finished chapter and the next.
	PhaseChapterComplete Phase = "chapter_complete"
	// PhaseRunComplete is the victory terminal state.
	PhaseRunComplete Phase = "run_complete"
	// PhaseGameOver is the defeat terminal state.
	PhaseGameOver Phase = "game_over"
)

// Terminal reports whether no further actions are accepted.
func (p Phase) Terminal() bool {
	return p == PhaseRunComplete || p == PhaseGameOver
}

// Stats are the player's combat numbers.
type Stats struct {
	MaxHP      int
	CurrentHP  int
	Attack     int
	Defense    int
	CritChance float64 // percent, 0-100
	Evasion    float64 // percent, 0-100
	Accuracy   float64 // percent, 0-100
}

// Player is the run-scoped player state.
type Player struct {
	CharacterID string
	Stats       Stats
	Level       int
	Experience  int
	ExpToNext   int
	Gold        int
	Energy      int
	MaxEnergy   int
	Block       int
	Deck        []string
	Relics      []string
	RouteBias   map[string]float64
	Flags       map[string]string
}

// Enemy is the current encounter opponent.
type Enemy struct {
	ID         string
	Name       string
	Class      string
	Tier       content.EnemyTier
	CurrentHP  int
	MaxHP      int
	Attack     int
	Defense    int
	Block      int
	Evasion    float64
	ExpReward  int
	GoldReward int
}

// Alive reports whether the enemy still fights.
func (e *Enemy) Alive() bool {
	return e != nil && e.CurrentHP > 0
}

// Chapter tracks progress through one chapter's route.
type Chapter struct {
	ID              string
	Index           int
	Type            content.ChapterType
	Nodes           []route.Node
	NodeIndex       int
	EnemiesDefeated int
}

// CurrentNode returns the node the player stands on, if any.
func (c *Chapter) CurrentNode() (route.Node, bool) {
	if c == nil || c.NodeIndex < 0 || c.NodeIndex >= len(c.Nodes) {
		return route.Node{}, false
	}
	return c.Nodes[c.NodeIndex], true
}

// GameState is the full mutable run state. The engine mutates it in place
// during Apply; callers own it between calls and must serialize access.
type GameState struct {
	Seed              int64
	Phase             Phase
	Player            Player
	Enemy             *Enemy
	Chapter           *Chapter
	TotalChapters     int
	ChaptersCompleted []string
	Turn              int
}

// NewGameState builds the starting state for one run. The character's
// starter deck and relics come from the registry definition.
func NewGameState(seed int64, char content.Character, totalChapters int) *GameState {
	return &GameState{
		Seed:          seed,
		Phase:         PhaseExploration,
		TotalChapters: totalChapters,
		Player: Player{
			CharacterID: char.ID,
			Stats: Stats{
				MaxHP:      char.MaxHP,
				CurrentHP:  char.MaxHP,
				Attack:     10,
				Defense:    5,
				CritChance: 10,
				Evasion:    5,
				Accuracy:   95,
			},
			Level:     1,
			ExpToNext: baseExpToLevel,
			Energy:    char.Energy,
			MaxEnergy: char.Energy,
			Deck:      append([]string(nil), char.StarterCards...),
			Relics:    append([]string(nil), char.StarterRelics...),
			RouteBias: make(map[string]float64),
			Flags:     make(map[string]string),
		},
	}
}
