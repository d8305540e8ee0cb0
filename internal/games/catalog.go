// Package games holds the static mini-game catalog: which games exist,
// which are unlocked from the start, which can be won from a daily spin,
// and which skill category each game trains.
package games

import "magilearn/internal/models"

// Game describes one mini-game in the catalog
type Game struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	XP          int    `json:"xp"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
	Color       string `json:"color"`
}

// Catalog lists every mini-game the dashboard knows about
var Catalog = []Game{
	{ID: "math-ninja", Title: "Math Ninja", Description: "Master addition and subtraction!", XP: 50, Category: "Math", Difficulty: "easy", Color: "blue"},
	{ID: "typing-dash", Title: "Typing Dash", Description: "Improve your typing speed!", XP: 40, Category: "Language", Difficulty: "medium", Color: "green"},
	{ID: "memory-flip", Title: "Memory Flip", Description: "Match pairs and boost memory!", XP: 30, Category: "Memory", Difficulty: "easy", Color: "green"},
	{ID: "puzzle-portal", Title: "Puzzle Portal", Description: "Solve logic puzzles!", XP: 45, Category: "Logic", Difficulty: "medium", Color: "purple"},
	{ID: "grammar-builder", Title: "Grammar Builder", Description: "Build better sentences!", XP: 35, Category: "Language", Difficulty: "easy", Color: "orange"},
	{ID: "quiz-attack", Title: "Quiz Attack", Description: "Test your knowledge!", XP: 60, Category: "General", Difficulty: "medium", Color: "red"},
	{ID: "color-match", Title: "Color Match", Description: "Learn colors and patterns!", XP: 25, Category: "Visual", Difficulty: "easy", Color: "yellow"},
	{ID: "code-runner", Title: "Code Runner", Description: "Learn basic coding!", XP: 55, Category: "STEM", Difficulty: "hard", Color: "indigo"},
	{ID: "reaction-hero", Title: "Reaction Hero", Description: "Test your reflexes!", XP: 35, Category: "Action", Difficulty: "medium", Color: "pink"},
	{ID: "speed-sort", Title: "Speed Sort", Description: "Sort items by category!", XP: 40, Category: "Logic", Difficulty: "medium", Color: "blue"},
	{ID: "word-builder", Title: "Word Builder", Description: "Create words from letters!", XP: 45, Category: "Language", Difficulty: "medium", Color: "green"},
	{ID: "number-crunch", Title: "Number Crunch", Description: "Advanced math challenges!", XP: 65, Category: "Math", Difficulty: "hard", Color: "red"},
	{ID: "pattern-master", Title: "Pattern Master", Description: "Recognize and complete patterns!", XP: 50, Category: "Logic", Difficulty: "medium", Color: "purple"},
	{ID: "story-spinner", Title: "Story Spinner", Description: "Create amazing stories!", XP: 40, Category: "Creative", Difficulty: "easy", Color: "pink"},
	{ID: "science-quest", Title: "Science Quest", Description: "Explore the world of science!", XP: 55, Category: "Science", Difficulty: "medium", Color: "indigo"},
	{ID: "art-adventure", Title: "Art Adventure", Description: "Express your creativity!", XP: 35, Category: "Art", Difficulty: "easy", Color: "yellow"},
}

// StarterGames are unlocked for every new account at signup
var StarterGames = []string{
	"math-ninja",
	"memory-flip",
	"puzzle-portal",
	"quiz-attack",
	"color-match",
}

// LockablePool is the fixed set of games a daily spin can unlock
var LockablePool = []string{
	"typing-dash",
	"grammar-builder",
	"code-runner",
	"reaction-hero",
	"speed-sort",
	"word-builder",
	"number-crunch",
	"pattern-master",
}

// skillForGame maps each game to the single skill category it trains.
// An explicit table rather than substring matching on the game ID, so the
// relationship is data a test can exercise.
var skillForGame = map[string]string{
	"math-ninja":      models.SkillMath,
	"number-crunch":   models.SkillMath,
	"memory-flip":     models.SkillMemory,
	"pattern-master":  models.SkillMemory,
	"puzzle-portal":   models.SkillProblemSolving,
	"speed-sort":      models.SkillProblemSolving,
	"reaction-hero":   models.SkillProblemSolving,
	"word-builder":    models.SkillLanguage,
	"grammar-builder": models.SkillLanguage,
	"typing-dash":     models.SkillLanguage,
	"story-spinner":   models.SkillLanguage,
	"code-runner":     models.SkillCoding,
	"quiz-attack":     models.SkillScience,
	"science-quest":   models.SkillScience,
	"color-match":     models.SkillArt,
	"art-adventure":   models.SkillArt,
}

// SkillForGame returns the skill category a game trains.
// Unknown games train no skill.
func SkillForGame(gameID string) (string, bool) {
	skill, ok := skillForGame[gameID]
	return skill, ok
}

// Find returns the catalog entry for a game ID
func Find(gameID string) (Game, bool) {
	for _, g := range Catalog {
		if g.ID == gameID {
			return g, true
		}
	}
	return Game{}, false
}
