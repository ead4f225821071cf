// Package fitness holds the pure catalog and progress logic: preference
// filtering, search, and completion statistics. Nothing here touches the
// store or the clock.
package fitness

import "strings"

type SensoryLevel string

const (
	SensoryLow    SensoryLevel = "low"
	SensoryMedium SensoryLevel = "medium"
	SensoryHigh   SensoryLevel = "high"
)

type EnergyLevel string

const (
	EnergyLow    EnergyLevel = "low"
	EnergyMedium EnergyLevel = "medium"
	EnergyHigh   EnergyLevel = "high"
)

type Environment string

const (
	EnvironmentHome     Environment = "home"
	EnvironmentOutdoor  Environment = "outdoor"
	EnvironmentGym      Environment = "gym"
	EnvironmentFlexible Environment = "flexible"
)

type Equipment string

const (
	EquipmentNone     Equipment = "none"
	EquipmentBasic    Equipment = "basic"
	EquipmentModerate Equipment = "moderate"
	EquipmentFull     Equipment = "full"
)

type FitnessGoal string

const (
	GoalStrength    FitnessGoal = "strength"
	GoalFlexibility FitnessGoal = "flexibility"
	GoalEndurance   FitnessGoal = "endurance"
	GoalWellness    FitnessGoal = "wellness"
	GoalStress      FitnessGoal = "stress"
	GoalRoutine     FitnessGoal = "routine"
)

// PreferredDurations lists the workout lengths offered during onboarding, in minutes.
var PreferredDurations = []int{10, 15, 20, 30, 45, 60}

var (
	sensoryLevels = []SensoryLevel{SensoryLow, SensoryMedium, SensoryHigh}
	energyLevels  = []EnergyLevel{EnergyLow, EnergyMedium, EnergyHigh}
	environments  = []Environment{EnvironmentHome, EnvironmentOutdoor, EnvironmentGym, EnvironmentFlexible}
	equipment     = []Equipment{EquipmentNone, EquipmentBasic, EquipmentModerate, EquipmentFull}
	fitnessGoals  = []FitnessGoal{GoalStrength, GoalFlexibility, GoalEndurance, GoalWellness, GoalStress, GoalRoutine}
)

func ParseSensoryLevel(s string) (SensoryLevel, bool) { return parseEnum(s, sensoryLevels) }
func ParseEnergyLevel(s string) (EnergyLevel, bool)   { return parseEnum(s, energyLevels) }
func ParseEnvironment(s string) (Environment, bool)   { return parseEnum(s, environments) }
func ParseEquipment(s string) (Equipment, bool)       { return parseEnum(s, equipment) }
func ParseFitnessGoal(s string) (FitnessGoal, bool)   { return parseEnum(s, fitnessGoals) }

// ValidDuration reports whether minutes is one of PreferredDurations.
func ValidDuration(minutes int) bool {
	for _, d := range PreferredDurations {
		if d == minutes {
			return true
		}
	}
	return false
}

// rank orders sensory levels low < medium < high.
func (l SensoryLevel) rank() int {
	switch l {
	case SensoryLow:
		return 1
	case SensoryMedium:
		return 2
	case SensoryHigh:
		return 3
	}
	return 0
}

func parseEnum[T ~string](s string, allowed []T) (T, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, v := range allowed {
		if string(v) == normalized {
			return v, true
		}
	}
	var zero T
	return zero, false
}
