package events

// Observer is the capability embedded by stateful entities that need to
// announce their own changes. It only carries the bus handle; holding it
// grants emit rights, not subscription management.
type Observer struct {
	bus *Bus
}

func NewObserver(bus *Bus) Observer {
	return Observer{bus: bus}
}

// Events exposes the bus for wiring. Orchestration uses it; views receive
// already-rendered data and never see it.
func (o Observer) Events() *Bus {
	return o.bus
}

// EmitChanges announces a state change. Called by mutation methods after
// the mutation is complete, so subscribers always observe fresh state.
func (o Observer) EmitChanges(event string, payload any) {
	if o.bus == nil {
		return
	}
	o.bus.Emit(event, payload)
}
