package ambient

// Category 描述一种冥想背景音乐分类及其检索词。
type Category struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
	Queries  []string `json:"-"`
}

// Track is one playable result returned by the music lookup collaborator.
type Track struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Artist      string `json:"artist"`
	PreviewURL  string `json:"preview_url"`
	ExternalURL string `json:"external_url"`
}

// Seed provides the built-in meditation music categories.
func Seed() []Category {
	return []Category{
		{
			ID:       "rainfall",
			Name:     "Rainfall/Thunder",
			Keywords: []string{"rain", "thunder", "storm", "rainfall meditation"},
			Queries:  []string{"rain sounds", "thunder meditation", "rainfall ambient"},
		},
		{
			ID:       "ocean",
			Name:     "Ocean Waves",
			Keywords: []string{"ocean", "waves", "sea", "beach meditation"},
			Queries:  []string{"ocean waves", "sea sounds", "beach meditation"},
		},
		{
			ID:       "forest",
			Name:     "Forest/Nature Sounds",
			Keywords: []string{"forest", "nature", "birds", "woodland meditation"},
			Queries:  []string{"forest sounds", "nature meditation", "bird songs ambient"},
		},
		{
			ID:       "whitenoise",
			Name:     "White Noise/Pink Noise",
			Keywords: []string{"white noise", "pink noise", "ambient", "focus sounds"},
			Queries:  []string{"white noise", "pink noise meditation", "ambient focus"},
		},
		{
			ID:       "tibetan",
			Name:     "Tibetan Bowls/Meditation Bells",
			Keywords: []string{"tibetan", "singing bowls", "bells", "chakra meditation"},
			Queries:  []string{"tibetan bowls", "singing bowls meditation", "meditation bells"},
		},
	}
}
