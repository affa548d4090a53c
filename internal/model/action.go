// Package model defines the core action record types.
package model

// Defaults applied by the parser when a field is missing from the source document.
const (
	DefaultName           = "Unnamed Action"
	DefaultDescription    = "No Description Provided"
	DefaultTransitionMode = "No Transition Mode"
	DefaultPack           = "Unknown Pack"
	DefaultWhen           = "Unknown"
)

// Action is a normalized workflow action definition.
//
// Raw holds the pasted document verbatim and is the identity key of the
// record: every other field except ID and Alias can be re-derived from it.
type Action struct {
	ID             string       `json:"id,omitempty"`
	Name           string       `json:"name"`
	Alias          string       `json:"alias"`
	Description    string       `json:"description"`
	TransitionMode string       `json:"transitionMode"`
	Transitions    []Transition `json:"transitions"`
	Pack           string       `json:"pack"`
	Raw            string       `json:"json"`
}

// Transition is a condition plus the variables it publishes.
type Transition struct {
	When    string   `json:"when"`
	Publish []string `json:"publish"`
}

// DisplayName returns the alias when set, otherwise the original name.
func (a Action) DisplayName() string {
	if a.Alias != "" {
		return a.Alias
	}
	return a.Name
}

// Clone returns a deep copy so callers can't reach the owner's slices.
func (a Action) Clone() Action {
	c := a
	if a.Transitions != nil {
		c.Transitions = make([]Transition, len(a.Transitions))
		for i, t := range a.Transitions {
			c.Transitions[i] = Transition{When: t.When, Publish: append([]string(nil), t.Publish...)}
			if c.Transitions[i].Publish == nil {
				c.Transitions[i].Publish = []string{}
			}
		}
	}
	return c
}

// CloneAll deep-copies a slice of actions.
func CloneAll(actions []Action) []Action {
	out := make([]Action, len(actions))
	for i, a := range actions {
		out[i] = a.Clone()
	}
	return out
}

// Field returns the string value of a sortable field, or "" for unknown names.
func (a Action) Field(name string) string {
	switch name {
	case "name":
		return a.Name
	case "alias":
		return a.Alias
	case "description":
		return a.Description
	case "transitionMode":
		return a.TransitionMode
	case "pack":
		return a.Pack
	}
	return ""
}
