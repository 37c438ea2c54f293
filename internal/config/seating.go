package config

import (
	"log"
	"time"

	"github.com/timelazy/timelazy-server/internal/seating"
)

// SeatingConfig controls how seating requests are interpreted.
type SeatingConfig struct {
	// Levels is the ordered list of academic levels. It fixes both the
	// order in which the paired engine drains levels and the order used
	// when a request lists levels as a map.
	Levels      []string
	DefaultMode seating.Mode
	// Limits caps students and benches per request.
	Limits seating.Limits
}

// LoadSeatingConfig reads SEATING_LEVELS (default "SE,TE,BE"),
// SEATING_DEFAULT_MODE (default "one"), SEATING_MAX_STUDENTS and
// SEATING_MAX_BENCHES.
func LoadSeatingConfig() SeatingConfig {
	mode, err := seating.ParseMode(envStr("SEATING_DEFAULT_MODE", string(seating.ModeOne)))
	if err != nil {
		log.Printf("config: %v; using %q", err, seating.ModeOne)
		mode = seating.ModeOne
	}
	return SeatingConfig{
		Levels:      envList("SEATING_LEVELS", "SE,TE,BE", true),
		DefaultMode: mode,
		Limits: seating.Limits{
			MaxStudents: envInt("SEATING_MAX_STUDENTS", seating.DefaultMaxStudents),
			MaxBenches:  envInt("SEATING_MAX_BENCHES", seating.DefaultMaxBenches),
		},
	}
}

// SolverConfig points at the external timetable solver.
type SolverConfig struct {
	URL     string
	Timeout time.Duration
}

// LoadSolverConfig reads SOLVER_URL and SOLVER_TIMEOUT. The default timeout
// leaves room for the solver's own three minute search budget.
func LoadSolverConfig() SolverConfig {
	return SolverConfig{
		URL:     envStr("SOLVER_URL", "http://localhost:5000/api/generate"),
		Timeout: envDur("SOLVER_TIMEOUT", 200*time.Second),
	}
}
