package coach

import (
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/fitness"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/models"
)

const (
	// Greeting opens every chat session.
	Greeting = "Hi! I'm your NeuroFit AI coach. I'm here to help you with workouts, motivation, and any questions you have. How can I help you today?"
	// ErrorReply stands in for the coach when no provider answered.
	ErrorReply = "I'm sorry, I'm having technical difficulties. Please try again in a moment."
	// EmptyReply stands in when a provider answered with no content.
	EmptyReply = "I'm sorry, I'm having trouble responding right now. Please try again."
)

const basePrompt = `You are a supportive, understanding fitness coach specializing in working with neurodivergent individuals.
Your communication style is:
- Calm and patient
- Step-by-step and structured
- Clear and direct
- Supportive without being patronizing
- Understanding of sensory sensitivities, executive function challenges, and the need for routine

You help users with:
- Finding appropriate workouts based on their preferences
- Managing motivation and energy levels
- Handling sensory overload
- Breaking down tasks into manageable steps
- Creating predictable routines

Always acknowledge challenges without judgment and offer practical, actionable advice.`

var intentInstructions = map[Intent]string{
	IntentMotivation: `The user seems to be struggling with motivation or energy. Provide:
1. Validation of their feelings
2. Gentle encouragement
3. A small, achievable next step
4. Reminder that it's okay to take breaks or modify workouts
5. Keep it brief and supportive`,
	IntentSensory: `The user may be experiencing sensory overload. Provide:
1. Immediate calming strategies
2. Suggestions for low-sensory workout alternatives
3. Permission to pause or stop
4. Reassurance that this is normal and okay
5. Options for when they're ready to try again`,
	IntentExecutive: `The user may be struggling with executive function (planning, starting tasks, etc.). Provide:
1. Break down any suggestions into very small steps
2. Offer a clear starting point
3. Suggest ways to reduce decision fatigue
4. Provide structure and routine suggestions
5. Be patient and encouraging`,
	IntentWorkout: `Provide a helpful, supportive response that:
1. Acknowledges their message
2. Offers relevant workout suggestions if appropriate
3. Provides encouragement and practical next steps
4. Keeps the response concise and actionable`,
}

// UserContext describes the user's questionnaire answers for the model.
func UserContext(prefs *models.Profile) string {
	if prefs == nil {
		return "The user has not yet completed their preferences questionnaire."
	}

	workoutTime := "not specified"
	if prefs.WorkoutTime > 0 {
		workoutTime = fitness.FormatDuration(prefs.WorkoutTime)
	}

	var b strings.Builder
	b.WriteString("User Preferences:\n")
	fmt.Fprintf(&b, "- Sensory Level: %s\n", orDefault(prefs.SensoryLevel, "not specified"))
	fmt.Fprintf(&b, "- Energy Level: %s\n", orDefault(prefs.EnergyLevel, "not specified"))
	fmt.Fprintf(&b, "- Preferred Environment: %s\n", orDefault(prefs.Environment, "not specified"))
	fmt.Fprintf(&b, "- Fitness Goal: %s\n", orDefault(prefs.FitnessGoal, "not specified"))
	fmt.Fprintf(&b, "- Preferred Workout Time: %s\n", workoutTime)
	fmt.Fprintf(&b, "- Equipment Available: %s\n", orDefault(prefs.Equipment, "not specified"))
	fmt.Fprintf(&b, "- Special Considerations: %s\n", orDefault(prefs.SpecialConsiderations, "none"))
	return b.String()
}

// BuildSystemPrompt assembles the system message for one chat turn. Workout
// and general intents also list the workouts available to the user.
func BuildSystemPrompt(intent Intent, prefs *models.Profile, workouts []models.Workout, message string) string {
	instructions, ok := intentInstructions[intent]
	if !ok {
		intent = IntentWorkout
		instructions = intentInstructions[IntentWorkout]
	}

	var b strings.Builder
	b.WriteString(basePrompt)
	b.WriteString("\n\n")
	b.WriteString(UserContext(prefs))

	if intent == IntentWorkout {
		b.WriteString("\nAvailable Workouts:\n")
		b.WriteString(workoutList(workouts))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nUser Message: %q\n\n", message)
	b.WriteString(instructions)
	return b.String()
}

func workoutList(workouts []models.Workout) string {
	if len(workouts) == 0 {
		return "No workouts available yet."
	}
	lines := make([]string, len(workouts))
	for i, w := range workouts {
		lines[i] = fmt.Sprintf("- %s: %s (%d min, sensory level: %s)",
			w.Title, w.Description, w.Duration, orDefault(w.SensoryLevel, "unspecified"))
	}
	return strings.Join(lines, "\n")
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
