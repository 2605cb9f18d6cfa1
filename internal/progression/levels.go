package progression

// XPPerLevel is the flat XP cost of each level
const XPPerLevel = 100

// Level derives the level from total XP
func Level(xp int) int {
	return xp/XPPerLevel + 1
}

// XPToNextLevel returns how much XP is missing for the next level
func XPToNextLevel(xp int) int {
	return Level(xp)*XPPerLevel - xp
}
