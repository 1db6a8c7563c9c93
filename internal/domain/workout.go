package domain

// Workout styles governing how sampled drills are structured.
const (
	StyleCircuit     = "Circuit"
	StyleHIIT        = "HIIT"
	StyleStrength    = "Strength"
	StyleEndurance   = "Endurance"
	StyleFlexibility = "Flexibility"
)

// WorkoutTypes is the fixed set of requestable workout types. It matches the
// drill category vocabulary.
var WorkoutTypes = DrillCategories

var WorkoutStyles = []string{
	StyleCircuit,
	StyleHIIT,
	StyleStrength,
	StyleEndurance,
	StyleFlexibility,
}

func IsValidWorkoutType(value string) bool {
	return IsValidCategory(value)
}

func IsValidWorkoutStyle(value string) bool {
	for _, s := range WorkoutStyles {
		if s == value {
			return true
		}
	}
	return false
}

// Exercise is one entry in a generated workout: a sampled drill plus the
// timing parameters the chosen style assigned to it. Optional fields stay
// zero (and are omitted from JSON) unless a style sets them.
type Exercise struct {
	Drill       Drill `json:"drill"`
	Sets        int   `json:"sets"`
	TimePerSet  int   `json:"timePerSet"` // seconds
	RestAfter   int   `json:"restAfter"`  // seconds
	RepsPerSet  int   `json:"repsPerSet,omitempty"`
	WorkTime    int   `json:"workTime,omitempty"`
	RestTime    int   `json:"restTime,omitempty"`
	HoldTime    int   `json:"holdTime,omitempty"`
	Repetitions int   `json:"repetitions,omitempty"`
}

// Structure is the shaped exercise plan. Rounds/circuits are style-specific
// and omitted when the style does not define them.
type Structure struct {
	Exercises           []Exercise `json:"exercises"`
	Rounds              int        `json:"rounds,omitempty"`
	RestBetweenRounds   int        `json:"restBetweenRounds,omitempty"`
	Circuits            int        `json:"circuits,omitempty"`
	RestBetweenCircuits int        `json:"restBetweenCircuits,omitempty"`
}

// GeneratedWorkout is the full generation result returned to the client.
// WorkoutID is the id of the history record persisted for this generation.
type GeneratedWorkout struct {
	Type       string    `json:"type"`
	Style      string    `json:"style,omitempty"`
	Difficulty string    `json:"difficulty,omitempty"`
	DrillCount int       `json:"drillCount"`
	WorkoutID  string    `json:"workoutId"`
	Structure  Structure `json:"structure"`
	Drills     []Drill   `json:"drills"`
}
