package table

import "github.com/ammadhh/gemini-test-chips/internal/deck"

// Event is anything the controller tells the outside world about.
// Events are delivered synchronously, in occurrence order, while the
// controller holds its own lock: subscribers must not call back into
// the command surface from a handler.
type Event interface {
	eventTag()
}

// ChipsMovedEvent fires exactly once per chip-affecting action:
// a bet, call or raise paying into the pot, or a payout leaving it.
// Presentation uses it to drive the pot animation.
type ChipsMovedEvent struct {
	Amount int
}

// ActionEvent records one resolved betting action.
type ActionEvent struct {
	SeatName string
	Action   string
	Amount   int
	Street   Street
}

// StreetEvent fires when community cards are revealed.
type StreetEvent struct {
	Street         Street
	CommunityCards []deck.Card
}

// RoundStartedEvent fires once hole cards have been dealt.
type RoundStartedEvent struct {
	Generation uint64
}

// RoundEndedEvent fires after the pot has been paid out.
type RoundEndedEvent struct {
	WinnerNames []string
	Pot         int
	AtShowdown  bool
}

func (ChipsMovedEvent) eventTag()   {}
func (ActionEvent) eventTag()       {}
func (StreetEvent) eventTag()       {}
func (RoundStartedEvent) eventTag() {}
func (RoundEndedEvent) eventTag()   {}

// Subscriber receives controller events.
type Subscriber interface {
	OnEvent(Event)
}

// SubscriberFunc adapts a function to the Subscriber interface.
type SubscriberFunc func(Event)

func (f SubscriberFunc) OnEvent(e Event) { f(e) }

// bus is a minimal synchronous fan-out.
type bus struct {
	subscribers []Subscriber
}

func (b *bus) subscribe(s Subscriber) {
	b.subscribers = append(b.subscribers, s)
}

func (b *bus) publish(e Event) {
	for _, s := range b.subscribers {
		s.OnEvent(e)
	}
}
