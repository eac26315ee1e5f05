package persona

// Persona captures one guiding voice offered to the frontend.
type Persona struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	VoiceID     string `json:"voiceId"`
	Description string `json:"description,omitempty"`
}

// DefaultID 是未指定人设时使用的声音。
const DefaultID = "calm_female"

// Seed provides the built-in voice personas.
func Seed() []Persona {
	return []Persona{
		{
			ID:          "calm_female",
			Name:        "Serene Sarah",
			VoiceID:     "nova",
			Description: "Calm and nurturing female voice",
		},
		{
			ID:          "wise_male",
			Name:        "Mindful Marcus",
			VoiceID:     "onyx",
			Description: "Deep and reassuring male voice",
		},
		{
			ID:          "gentle_guide",
			Name:        "Peaceful Priya",
			VoiceID:     "alloy",
			Description: "Gentle and guiding voice",
		},
		{
			ID:          "nature_spirit",
			Name:        "Forest Finn",
			VoiceID:     "echo",
			Description: "Natural and earthy voice",
		},
		{
			ID:          "zen_master",
			Name:        "Tranquil Tara",
			VoiceID:     "shimmer",
			Description: "Wise and centered voice",
		},
	}
}
