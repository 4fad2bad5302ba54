package form

// Language level labels as shown in the dropdown.
const (
	LevelBeginner     = "Начальный"
	LevelIntermediate = "Средний"
	LevelAdvanced     = "Продвинутый"
)

var languageLevels = map[string]string{
	LevelBeginner:     "beginner",
	LevelIntermediate: "intermediate",
	LevelAdvanced:     "advanced",
}

// LanguageLevelCode returns the code the endpoint echoes for a dropdown label.
func LanguageLevelCode(label string) (string, bool) {
	code, ok := languageLevels[label]
	return code, ok
}
