package resource

import "strings"

// State is a set of view state flags.
type State uint16

const (
	StatePressed State = 1 << iota
	StateFocused
	StateSelected
	StateEnabled
	StateChecked
	StateActivated
	StateHovered
)

var stateNames = []struct {
	state State
	name  string
}{
	{StatePressed, "pressed"},
	{StateFocused, "focused"},
	{StateSelected, "selected"},
	{StateEnabled, "enabled"},
	{StateChecked, "checked"},
	{StateActivated, "activated"},
	{StateHovered, "hovered"},
}

// StateByName returns the flag for a name such as "pressed".
func StateByName(name string) (State, bool) {
	for _, s := range stateNames {
		if s.name == name {
			return s.state, true
		}
	}
	return 0, false
}

// StateSet is the condition of a selector entry: every flag in On must be
// set and every flag in Off must be clear. The zero value matches any state.
// StateSet is comparable and can key maps.
type StateSet struct {
	On  State
	Off State
}

// Matches reports whether current satisfies the set.
func (s StateSet) Matches(current State) bool {
	return current&s.On == s.On && current&s.Off == 0
}

// IsDefault reports whether the set matches every state.
func (s StateSet) IsDefault() bool {
	return s.On == 0 && s.Off == 0
}

// String formats the set as "pressed,!enabled", or "default".
func (s StateSet) String() string {
	if s.IsDefault() {
		return "default"
	}
	var parts []string
	for _, n := range stateNames {
		switch {
		case s.On&n.state != 0:
			parts = append(parts, n.name)
		case s.Off&n.state != 0:
			parts = append(parts, "!"+n.name)
		}
	}
	return strings.Join(parts, ",")
}
