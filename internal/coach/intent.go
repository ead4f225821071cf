// Package coach builds prompts for the AI chat coach and talks to
// OpenAI-compatible chat completion providers.
package coach

import "strings"

type Intent string

const (
	IntentMotivation Intent = "motivation"
	IntentSensory    Intent = "sensory"
	IntentExecutive  Intent = "executive"
	IntentWorkout    Intent = "workout"
	IntentGeneral    Intent = "general"
)

// Rules are checked in order; the first match wins.
var intentRules = []struct {
	intent   Intent
	keywords []string
}{
	{IntentMotivation, []string{"motivation", "tired", "energy"}},
	{IntentSensory, []string{"sensory", "overwhelmed", "too much"}},
	{IntentExecutive, []string{"start", "begin", "how do i"}},
	{IntentWorkout, []string{"workout", "exercise", "routine"}},
}

// DetectIntent classifies a chat message by keyword.
func DetectIntent(message string) Intent {
	lower := strings.ToLower(message)
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.intent
			}
		}
	}
	return IntentGeneral
}
