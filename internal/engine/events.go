package engine

// EventType tags one emitted event.
type EventType string

const (
	EventBattleStarted    EventType = "battle_started"
	EventBattleEnded      EventType = "battle_ended"
	EventBossSpawned      EventType = "boss_spawned"
	EventDamageDealt      EventType = "damage_dealt"
	EventCriticalHit      EventType = "critical_hit"
	EventEvaded           EventType = "evaded"
	EventEnemyDefeated    EventType = "enemy_defeated"
	EventExpGained        EventType = "exp_gained"
	EventLevelUp          EventType = "level_up"
	EventGoldGained       EventType = "gold_gained"
	EventStatusApplied    EventType = "status_applied"
	EventChapterStarted   EventType = "chapter_started"
	EventChapterCompleted EventType = "chapter_completed"
	EventShopEntered      EventType = "shop_entered"
	EventResolved         EventType = "event_resolved"
	EventGameEnded        EventType = "game_ended"
	EventError            EventType = "error"
)

// Event is one immutable fact appended to the log returned by Apply. Events
// are the only channel renderers, journals, and metrics observe.
type Event struct {
	Type EventType
	Data map[string]any
}

func newEvent(t EventType, data map[string]any) Event {
	return Event{Type: t, Data: data}
}

func errorEvent(message string) Event {
	return newEvent(EventError, map[string]any{"message": message})
}

// FilterEvents returns the events of one type, in emission order.
func FilterEvents(events []Event, t EventType) []Event {
	var out []Event
	for _, ev := range events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}
