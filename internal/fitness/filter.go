package fitness

import "github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/models"

// FilterWorkouts keeps the workouts compatible with the user's sensory
// tolerance and equipment. A nil profile or an empty catalog is returned as is.
// Relative order is preserved. Missing or unrecognized values on either side
// never exclude a workout.
func FilterWorkouts(workouts []models.Workout, prefs *models.Profile) []models.Workout {
	if prefs == nil || len(workouts) == 0 {
		return workouts
	}

	userSensory, hasSensory := ParseSensoryLevel(prefs.SensoryLevel)
	userEquipment, hasEquipment := ParseEquipment(prefs.Equipment)

	filtered := make([]models.Workout, 0, len(workouts))
	for _, w := range workouts {
		if hasSensory && exceedsSensory(userSensory, w.SensoryLevel) {
			continue
		}
		if hasEquipment && needsEquipment(userEquipment, w.Equipment) {
			continue
		}
		filtered = append(filtered, w)
	}
	return filtered
}

// exceedsSensory reports whether the workout is more intense than the user tolerates.
func exceedsSensory(user SensoryLevel, workoutLevel string) bool {
	level, ok := ParseSensoryLevel(workoutLevel)
	if !ok {
		return false
	}
	return level.rank() > user.rank()
}

// needsEquipment only constrains users without equipment. Users with basic or
// moderate equipment still see full-gym workouts.
func needsEquipment(user Equipment, workoutEquipment string) bool {
	if user != EquipmentNone {
		return false
	}
	required, ok := ParseEquipment(workoutEquipment)
	if !ok {
		return false
	}
	return required != EquipmentNone
}
