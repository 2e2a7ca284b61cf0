// Package prompt maps mood labels to flower image prompts.
package prompt

import "fmt"

const fallbackTemplate = "A tropical flower in vibrant colors that represents the mood: %s. Photorealistic, botanical photography, no people."

// moodPrompts covers the closed mood set offered by the client UI.
var moodPrompts = map[string]string{
	"Calm":         "a soft tropical orchid with pale blue petals, serene and delicate",
	"Excited":      "a vibrant hibiscus bursting with red and orange petals, tropical and full of energy",
	"Anxious":      "a frangipani flower with drooping petals, soft pastel colors, reflective and moody",
	"Grateful":     "a radiant tropical sunflower with golden petals, glowing and uplifting",
	"Sad":          "a blue tropical morning glory flower, gentle and emotional",
	"Angry":        "a fiery red heliconia flower, sharp and bold",
	"Happy":        "a cheerful yellow plumeria flower, bright and sunny",
	"Tired":        "a soft pink lotus flower, calm and restful",
	"Relaxed":      "a soothing lavender flower, gentle and calming",
	"Lonely":       "a solitary white jasmine flower, delicate and introspective",
	"Hopeful":      "a bright tropical daffodil, yellow petals, symbolizing hope and renewal",
	"Stressed":     "a wilted tropical marigold, orange petals, tense and dramatic",
	"Inspired":     "a radiant tropical passionflower, intricate petals, creative and unique",
	"Confident":    "a bold tropical protea, strong pink petals, powerful and striking",
	"Overwhelmed":  "a cluster of tangled tropical bougainvillea, mixed colors, chaotic and busy",
	"Peaceful":     "a gentle tropical water lily, white petals, tranquil and harmonious",
	"Nostalgic":    "a faded tropical forget-me-not, soft blue petals, reminiscent and sentimental",
	"Content":      "a simple tropical daisy, white petals, pure and satisfied",
	"Curious":      "an exotic tropical bird of paradise, orange and blue petals, inquisitive and lively",
	"Surprised":    "a burst of tropical firecracker flower, red and yellow petals, unexpected and bright",
	"Bored":        "a plain tropical bromeliad, muted green petals, simple and unremarkable",
	"Motivated":    "a strong tropical gladiolus, upright red petals, determined and energetic",
	"Scared":       "a trembling tropical nightshade, deep purple petals, shadowy and mysterious",
	"Frustrated":   "a twisted tropical thistle, spiky blue petals, tense and restless",
	"Playful":      "a lively tropical zinnia, multi-colored petals, fun and whimsical",
	"Affectionate": "a warm tropical camellia, soft pink petals, loving and gentle",
	"Jealous":      "a green tropical envy vine, tangled petals, longing and intense",
	"Embarrassed":  "a blushing tropical mimosa, shy pink petals, delicate and bashful",
	"Determined":   "a fierce tropical torch ginger, bold red petals, strong and unwavering",
	"Relieved":     "a gentle tropical snowdrop, white petals, light and comforting",
	"Sympathetic":  "a caring tropical bluebell, soft blue petals, gentle and understanding",
	"Amused":       "a quirky tropical snapdragon, playful yellow petals, cheerful and fun",
	"Resentful":    "a dark tropical nettle, sharp green petals, bitter and tense",
	"Optimistic":   "a bright tropical marigold, golden petals, hopeful and sunny",
	"Proud":        "a regal tropical iris, deep purple petals, majestic and confident",
	"Vulnerable":   "a fragile tropical bleeding heart, pink petals, open and sensitive",
	"Courageous":   "a bold tropical lion's tail, orange petals, brave and strong",
	"Sentimental":  "a sweet tropical forget-me-not, soft blue petals, emotional and tender",
	"Worried":      "a trembling tropical bluebell, pale blue petals, anxious and uncertain",
	"Ecstatic":     "an explosive tropical bougainvillea, vivid magenta petals, joyful and exuberant",
	"Melancholic":  "a drooping tropical violet, deep blue petals, wistful and somber",
	"Indifferent":  "a plain tropical fern, green fronds, neutral and unremarkable",
	"Guilty":       "a shadowed tropical nightshade, dark purple petals, secretive and remorseful",
	"Enthusiastic": "a radiant tropical sunflower, bright yellow petals, energetic and passionate",
}

// ForMood returns the descriptive prompt for a mood label. Unknown labels fall
// back to a generic template embedding the label verbatim; ForMood never fails.
func ForMood(mood string) string {
	if p, ok := moodPrompts[mood]; ok {
		return p
	}
	return fmt.Sprintf(fallbackTemplate, mood)
}

// Moods returns the labels of the closed mood set.
func Moods() []string {
	out := make([]string, 0, len(moodPrompts))
	for m := range moodPrompts {
		out = append(out, m)
	}
	return out
}
