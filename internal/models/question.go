package models

// Question is a single multiple-choice entry of the fixed quiz. The JSON
// shape matches what the frontend consumes: "q", "options" and, only in
// reveal mode, "answer".
type Question struct {
	Prompt  string   `json:"q"`
	Options []string `json:"options"`
	Answer  string   `json:"answer,omitempty"`
}

// DefaultQuestions returns the static question set served to every user.
// The list and its option ordering are stable for the process lifetime;
// answer correctness is positional (answers[i] grades question i).
func DefaultQuestions() []Question {
	return []Question{
		{Prompt: "Capital of France?", Options: []string{"Paris", "London", "Berlin"}, Answer: "Paris"},
		{Prompt: "2 + 2 = ?", Options: []string{"3", "4", "5"}, Answer: "4"},
		{Prompt: "Color of the sky?", Options: []string{"Blue", "Red", "Green"}, Answer: "Blue"},
	}
}
