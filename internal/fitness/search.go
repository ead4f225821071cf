package fitness

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/models"
)

// SearchWorkouts keeps workouts whose title or description contains term,
// ignoring case. An empty term returns the input unchanged.
func SearchWorkouts(workouts []models.Workout, term string) []models.Workout {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return workouts
	}
	result := make([]models.Workout, 0, len(workouts))
	for _, w := range workouts {
		if strings.Contains(strings.ToLower(w.Title), term) ||
			strings.Contains(strings.ToLower(w.Description), term) {
			result = append(result, w)
		}
	}
	return result
}

// FilterByTag keeps workouts carrying tag, compared case-insensitively.
func FilterByTag(workouts []models.Workout, tag string) []models.Workout {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return workouts
	}
	result := make([]models.Workout, 0, len(workouts))
	for _, w := range workouts {
		if hasTag(w, tag) {
			result = append(result, w)
		}
	}
	return result
}

// HasAllTags reports whether the workout carries every tag in tags.
func HasAllTags(w models.Workout, tags []string) bool {
	for _, t := range tags {
		if !hasTag(w, t) {
			return false
		}
	}
	return true
}

// CollectTags returns the distinct tags of the catalog in first-seen order.
func CollectTags(workouts []models.Workout) []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, w := range workouts {
		for _, t := range w.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	return tags
}

func hasTag(w models.Workout, tag string) bool {
	for _, t := range w.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
