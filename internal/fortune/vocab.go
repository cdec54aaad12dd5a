package fortune

// 主题词表,固定二十个
var themes = []string{
	"reflection", "destiny", "memory", "light", "shadow", "echo", "flux", "grace",
	"illusion", "time", "horizon", "truth", "dream", "origin", "stillness", "threshold",
	"tide", "constellation", "pulse", "garden",
}

// 形容词词表
var adjectives = []string{
	"celestial", "velvet", "haunting", "luminous", "ashen", "resonant",
	"ancient", "radiant", "forgotten", "opalescent", "gilded", "nocturnal",
	"transcendent", "serpentine", "quiet",
}

// 三档基调句池
var toneLines = map[string][]string{
	"bright": {
		"A golden light crowns your choices today.",
		"The mirror smiles upon this turning of the page.",
		"New paths unfold just beyond your steady step.",
	},
	"neutral": {
		"Balance lingers at the glass; take another breath.",
		"A quiet clarity ripples beneath your surface.",
		"Consider the space between intent and action.",
	},
	"dark": {
		"Shadows stir where the mirror does not reach.",
		"A hush warns: not all reflections are truth.",
		"Tread with curiosity and measured caution tonight.",
	},
}

// 预兆短语词表
var omens = []string{
	"a bird's wing caught in the current of morning",
	"the scent of rain on ancient stone",
	"a laugh from a stranger who knows your secret",
	"a folded note you've not yet found",
	"a glint that isn't yours",
}
