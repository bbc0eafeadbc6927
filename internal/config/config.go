// Package config holds workbench settings and the persisted parameter
// values of each plugin instance.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// InstanceState stores the parameter values of one plugin instance
type InstanceState struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Ints    map[string]int    `json:"ints"`
	Choices map[string]string `json:"choices"` // choice name -> selected label
}

// DefaultInstance is the name of the instance used when none is configured
const DefaultInstance = "MIDI 1"

// NewInstanceState creates an empty instance state with a generated ID
func NewInstanceState(name string) InstanceState {
	return InstanceState{
		ID:      uuid.New().String(),
		Name:    name,
		Ints:    map[string]int{},
		Choices: map[string]string{},
	}
}

// State is the workbench's parameter persistence file
type State struct {
	FirstLaunchCompleted bool            `json:"first_launch_completed"`
	OpenAtStartup        bool            `json:"open_at_startup"`
	Instances            []InstanceState `json:"instances"`
}

// StatePath returns the full path to the state file
func StatePath() string {
	return filepath.Join(Dir(), "state.json")
}

// LoadState reads the state from path, returning an empty state with one
// instance if the file does not exist
func LoadState(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &State{Instances: []InstanceState{NewInstanceState(DefaultInstance)}}, nil
	}
	if err != nil {
		return nil, err
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, err
	}

	if len(st.Instances) == 0 {
		st.Instances = []InstanceState{NewInstanceState(DefaultInstance)}
	}
	for i := range st.Instances {
		if st.Instances[i].Name == "" {
			st.Instances[i].Name = DefaultInstance
		}
		if st.Instances[i].ID == "" {
			st.Instances[i].ID = uuid.New().String()
		}
		if st.Instances[i].Ints == nil {
			st.Instances[i].Ints = map[string]int{}
		}
		if st.Instances[i].Choices == nil {
			st.Instances[i].Choices = map[string]string{}
		}
	}
	return &st, nil
}

// Save writes the state to path
func (s *State) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetInstance returns an instance by name, or nil if not found
func (s *State) GetInstance(name string) *InstanceState {
	for i := range s.Instances {
		if s.Instances[i].Name == name {
			return &s.Instances[i]
		}
	}
	return nil
}

// UpdateInstance replaces an existing instance by ID, or appends it
func (s *State) UpdateInstance(inst InstanceState) {
	for i := range s.Instances {
		if s.Instances[i].ID == inst.ID {
			s.Instances[i] = inst
			return
		}
	}
	s.Instances = append(s.Instances, inst)
}
