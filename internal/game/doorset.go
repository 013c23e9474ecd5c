package game

import "errors"

// MinDoors is the smallest number of doors a round can be played with.
const MinDoors = 3

// ErrNoEligibleDoor is returned when no closed, unselected, empty door is left to reveal.
var ErrNoEligibleDoor = errors.New("no empty, unselected door left to open")

// DoorEvent describes a change to one door. Number is 1-based.
type DoorEvent struct {
	Number int
	State  DoorState
}

// DoorSet is the ordered set of doors of one round.
// At most one door holds the reward and at most one door is selected.
type DoorSet struct {
	doors       []*Door
	src         Source
	subscribers map[int]func(DoorEvent)
	nextSubID   int
}

// NewDoorSet creates count doors (at least MinDoors) and places the reward.
func NewDoorSet(count int, src Source) *DoorSet {
	if count < MinDoors {
		count = MinDoors
	}
	if src == nil {
		src = NewSource()
	}
	s := &DoorSet{
		doors:       make([]*Door, count),
		src:         src,
		subscribers: map[int]func(DoorEvent){},
	}
	for i := range s.doors {
		number := i + 1
		door := newDoor()
		door.notify = func(state DoorState) {
			s.publish(DoorEvent{Number: number, State: state})
		}
		s.doors[i] = door
	}
	s.assignReward()
	return s
}

// Subscribe registers fn for door changes and returns a function that removes it.
func (s *DoorSet) Subscribe(fn func(DoorEvent)) func() {
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		delete(s.subscribers, id)
	}
}

func (s *DoorSet) publish(ev DoorEvent) {
	for _, fn := range s.subscribers {
		fn(ev)
	}
}

// Len returns the number of doors.
func (s *DoorSet) Len() int {
	return len(s.doors)
}

// Door returns the state of door n (1-based).
func (s *DoorSet) Door(n int) DoorState {
	return s.doors[n-1].State()
}

// States returns a snapshot of every door in order.
func (s *DoorSet) States() []DoorState {
	out := make([]DoorState, len(s.doors))
	for i, d := range s.doors {
		out[i] = d.State()
	}
	return out
}

// SelectedDoorNumber returns the selected door, or -1.
func (s *DoorSet) SelectedDoorNumber() int {
	return s.findDoorNumber(func(d *Door) bool { return d.Selected() })
}

// RewardDoorNumber returns the reward door, or -1.
func (s *DoorSet) RewardDoorNumber() int {
	return s.findDoorNumber(func(d *Door) bool { return d.HasReward() })
}

func (s *DoorSet) findDoorNumber(match func(*Door) bool) int {
	for i, d := range s.doors {
		if match(d) {
			return i + 1
		}
	}
	return -1
}

// EnableAll enables or disables every door.
func (s *DoorSet) EnableAll(enabled bool) {
	for _, d := range s.doors {
		d.SetEnabled(enabled)
	}
}

// OpenAll opens every door.
func (s *DoorSet) OpenAll() {
	for _, d := range s.doors {
		d.SetOpen(true)
	}
}

// DeselectAll clears every selection that is not frozen.
func (s *DoorSet) DeselectAll() {
	for _, d := range s.doors {
		d.SetSelected(false)
	}
}

// SelectDoor selects door n and deselects the rest. Whether door n
// actually becomes selected is up to Door.SetSelected.
func (s *DoorSet) SelectDoor(n int) {
	_ = s.doors[n-1] // out of range is a caller error
	for i, d := range s.doors {
		d.SetSelected(i == n-1)
	}
}

// OpenDoor opens door n.
func (s *DoorSet) OpenDoor(n int) {
	s.doors[n-1].SetOpen(true)
}

// OpenRandomSafeDoor opens a random door that is not selected, not open and
// has no reward, and returns its number.
func (s *DoorSet) OpenRandomSafeDoor() (int, error) {
	var eligible []int
	for i, d := range s.doors {
		if d.Selected() || d.Open() || d.HasReward() {
			continue
		}
		eligible = append(eligible, i)
	}
	if len(eligible) == 0 {
		return -1, ErrNoEligibleDoor
	}
	idx := eligible[s.src.Intn(len(eligible))]
	s.doors[idx].SetOpen(true)
	return idx + 1, nil
}

// ResetAll resets every door and places a new reward.
func (s *DoorSet) ResetAll() {
	for _, d := range s.doors {
		d.Reset()
	}
	s.assignReward()
}

func (s *DoorSet) assignReward() {
	s.doors[s.src.Intn(len(s.doors))].setReward(true)
}
