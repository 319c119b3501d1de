package models

// Prompt types. PromptTypeImage and PromptTypeArtistStyle change how content
// is assembled and formatted; all other types are plain text templates.
const (
	PromptTypeText        = "Text Generation"
	PromptTypeImage       = "Image Generation"
	PromptTypeAnalysis    = "Analysis & Structuring"
	PromptTypeInstruction = "Instructions"
	PromptTypeTask        = "Tasks"
	PromptTypeArtistStyle = "Artist Style"
)

// PromptTypes is the fixed set of prompt types, in menu order.
var PromptTypes = []string{
	PromptTypeText,
	PromptTypeImage,
	PromptTypeAnalysis,
	PromptTypeInstruction,
	PromptTypeTask,
	PromptTypeArtistStyle,
}

// AIModels is the fixed set of model labels a prompt can be tagged with.
var AIModels = []string{
	"ChatGPT",
	"Claude",
	"Stable Diffusion",
	"Gemini",
	"Grok",
	"Imagen",
	"Sora",
	"Flux",
	"Veo 3",
	"Midjourney",
}

// ColorPalette is the fixed set of color labels for prompts.
var ColorPalette = []string{
	"#ef4444", // red
	"#f97316", // orange
	"#eab308", // yellow
	"#84cc16", // lime
	"#22c55e", // green
	"#14b8a6", // teal
	"#06b6d4", // cyan
	"#3b82f6", // blue
	"#8b5cf6", // violet
	"#d946ef", // fuchsia
	"#ec4899", // pink
}

// Defaults applied to new prompts and to imported prompts whose
// type/model/color fall outside the known sets.
var (
	DefaultPromptType = PromptTypes[0]
	DefaultModel      = AIModels[0]
	DefaultColor      = ColorPalette[7]
)

// KnownPromptType reports whether t is one of the fixed prompt types.
func KnownPromptType(t string) bool {
	return containsString(PromptTypes, t)
}

// KnownModel reports whether m is one of the fixed model labels.
func KnownModel(m string) bool {
	return containsString(AIModels, m)
}

// KnownColor reports whether c is one of the palette colors.
func KnownColor(c string) bool {
	return containsString(ColorPalette, c)
}

func containsString(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
