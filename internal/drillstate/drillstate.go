// Package drillstate is a small reducer-managed state container mirroring
// server catalog data, usable by any Go client (CLI, TUI, wasm). It holds the
// drill list, the category selection with its derived filtered view, and the
// latest generated workout. Reduce is pure; it never touches the network.
package drillstate

import "drillhub/workout-app/internal/domain"

// CategoryAll disables category filtering.
const CategoryAll = "All"

// State is the client-side view of catalog and generation data.
type State struct {
	Drills            []domain.Drill
	FilteredDrills    []domain.Drill
	SelectedCategory  string
	GeneratedWorkouts []domain.Drill
	IsLoading         bool
	Error             string
}

// NewState returns the initial state: empty lists, "All" selected.
func NewState() State {
	return State{
		Drills:            []domain.Drill{},
		FilteredDrills:    []domain.Drill{},
		SelectedCategory:  CategoryAll,
		GeneratedWorkouts: []domain.Drill{},
	}
}

// ActionType enumerates the state transitions.
type ActionType int

const (
	SetDrills ActionType = iota
	SetCategory
	SetGeneratedWorkouts
	SetLoading
	SetError
	AddDrill
	ClearGeneratedWorkouts
)

// Action is one state transition request. Only the payload field matching
// the Type is consulted.
type Action struct {
	Type     ActionType
	Drills   []domain.Drill
	Drill    domain.Drill
	Category string
	Loading  bool
	Error    string
}

// Reduce applies an action to a state and returns the next state. The input
// state is not modified.
func Reduce(state State, action Action) State {
	switch action.Type {
	case SetDrills:
		state.Drills = action.Drills
		state.FilteredDrills = filterByCategory(action.Drills, state.SelectedCategory)

	case SetCategory:
		state.SelectedCategory = action.Category
		state.FilteredDrills = filterByCategory(state.Drills, action.Category)

	case SetGeneratedWorkouts:
		state.GeneratedWorkouts = action.Drills

	case SetLoading:
		state.IsLoading = action.Loading

	case SetError:
		state.Error = action.Error

	case AddDrill:
		state.Drills = append(append([]domain.Drill{}, state.Drills...), action.Drill)
		state.FilteredDrills = filterByCategory(state.Drills, state.SelectedCategory)

	case ClearGeneratedWorkouts:
		state.GeneratedWorkouts = []domain.Drill{}
	}
	return state
}

// filterByCategory recomputes the derived view by exact category match;
// "All" passes everything through.
func filterByCategory(drills []domain.Drill, category string) []domain.Drill {
	if category == CategoryAll {
		return drills
	}
	filtered := make([]domain.Drill, 0, len(drills))
	for _, drill := range drills {
		if drill.Category == category {
			filtered = append(filtered, drill)
		}
	}
	return filtered
}
