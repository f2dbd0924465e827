package domain

import "fmt"

// ActionDescription describes a side-effect for the host to perform.
// Capabilities produce descriptions; they never perform the effect themselves.
type ActionDescription struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Standard Action Types
const (
	// ActionRunAction asks the host to execute an action.
	// Payload: RunActionPayload
	ActionRunAction = "RUN_ACTION"
)

// RunActionPayload is the payload of ActionRunAction.
type RunActionPayload struct {
	ActionID  string `json:"actionId"`
	OnSuccess string `json:"onSuccess"`
	OnError   string `json:"onError"`
	Params    string `json:"params"`
}

// Capability is a named, pure description producer with a fixed arity.
type Capability struct {
	Name     string
	Arity    int
	describe func(args []string) ActionDescription
}

// NewCapability creates a capability from a describe function.
func NewCapability(name string, arity int, describe func(args []string) ActionDescription) *Capability {
	return &Capability{Name: name, Arity: arity, describe: describe}
}

// Describe returns the action description for args.
// Missing trailing arguments are passed as empty strings; extra ones are an error.
func (c *Capability) Describe(args ...string) (ActionDescription, error) {
	if len(args) > c.Arity {
		return ActionDescription{}, fmt.Errorf("%s: expected at most %d arguments, got %d", c.Name, c.Arity, len(args))
	}
	padded := make([]string, c.Arity)
	copy(padded, args)
	return c.describe(padded), nil
}

// NewRunCapability returns the run(onSuccess, onError, params) capability of an action.
func NewRunCapability(actionID string) *Capability {
	return NewCapability("run", 3, func(args []string) ActionDescription {
		return ActionDescription{
			Type: ActionRunAction,
			Payload: RunActionPayload{
				ActionID:  actionID,
				OnSuccess: args[0],
				OnError:   args[1],
				Params:    args[2],
			},
		}
	})
}
