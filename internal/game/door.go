package game

// DoorState is a read-only snapshot of a door.
type DoorState struct {
	Selected bool
	Reward   bool
	Open     bool
	Enabled  bool
}

// Door holds the state of a single door for one round.
// Opening a door freezes its selection and disables it until Reset.
type Door struct {
	state  DoorState
	notify func(DoorState)
}

func newDoor() *Door {
	d := &Door{}
	d.state = initialDoorState()
	return d
}

func initialDoorState() DoorState {
	return DoorState{Enabled: true}
}

// State returns a snapshot of the door.
func (d *Door) State() DoorState {
	return d.state
}

// Selected reports whether the door is selected.
func (d *Door) Selected() bool { return d.state.Selected }

// HasReward reports whether the reward is behind the door.
func (d *Door) HasReward() bool { return d.state.Reward }

// Open reports whether the door is open.
func (d *Door) Open() bool { return d.state.Open }

// Enabled reports whether the door accepts selection.
func (d *Door) Enabled() bool { return d.state.Enabled }

// SetSelected changes the selection. Open or disabled doors keep their selection.
func (d *Door) SetSelected(selected bool) {
	if d.state.Selected == selected {
		return
	}
	if d.state.Open || !d.state.Enabled {
		return
	}
	d.state.Selected = selected
	d.changed()
}

// SetOpen opens or closes the door. An open door is always disabled;
// closing re-enables it.
func (d *Door) SetOpen(open bool) {
	if d.state.Open == open {
		return
	}
	d.state.Open = open
	d.state.Enabled = !open
	d.changed()
}

// SetEnabled enables or disables the door. No-op while open.
func (d *Door) SetEnabled(enabled bool) {
	if d.state.Enabled == enabled || d.state.Open {
		return
	}
	d.state.Enabled = enabled
	d.changed()
}

func (d *Door) setReward(reward bool) {
	if d.state.Reward == reward {
		return
	}
	d.state.Reward = reward
	d.changed()
}

// Reset returns the door to closed, enabled, unselected and empty.
func (d *Door) Reset() {
	if d.state == initialDoorState() {
		return
	}
	d.state = initialDoorState()
	d.changed()
}

func (d *Door) changed() {
	if d.notify != nil {
		d.notify(d.state)
	}
}
