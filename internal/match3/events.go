package match3

// EventKind classifies engine notifications.
type EventKind int

const (
	EventSwap     EventKind = iota // tentative swap applied
	EventRevert                    // swap produced no run and was undone
	EventMatch                     // runs marked removed
	EventDrop                      // gravity and refill applied
	EventResolved                  // chain finished and score committed
	EventHint                      // new hint computed for a stable board
	EventShuffle                   // board shuffled on request
	EventRestart                   // fresh board dealt
	EventGameOver                  // countdown expired
)

var eventNames = map[EventKind]string{
	EventSwap:     "swap",
	EventRevert:   "revert",
	EventMatch:    "match",
	EventDrop:     "drop",
	EventResolved: "resolved",
	EventHint:     "hint",
	EventShuffle:  "shuffle",
	EventRestart:  "restart",
	EventGameOver: "game_over",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is delivered to the listener after each completed resolution step.
// Snapshot reflects the board right after the step, so replaying events in
// order animates the chain.
type Event struct {
	Kind     EventKind
	Snapshot Snapshot
	Runs     []Run  // EventMatch
	Falls    []Fall // EventDrop
	Delta    int    // EventResolved
	Stats    HintStats
}

// Listener receives engine events synchronously.
type Listener func(Event)
