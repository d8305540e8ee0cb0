package models

import "time"

// Skill category keys tracked on a Progress record
const (
	SkillMath           = "math"
	SkillEnglish        = "english"
	SkillScience        = "science"
	SkillCoding         = "coding"
	SkillArt            = "art"
	SkillLanguage       = "language"
	SkillProblemSolving = "problemSolving"
	SkillMemory         = "memory"
)

// AllSkills lists every tracked skill category
var AllSkills = []string{
	SkillMath,
	SkillEnglish,
	SkillScience,
	SkillCoding,
	SkillArt,
	SkillLanguage,
	SkillProblemSolving,
	SkillMemory,
}

// Progress tracks a user's accumulated experience and skill percentages.
// Skill values are always within [0,100].
type Progress struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	TotalXP        int        `json:"totalXp"`
	MathSkills     int        `json:"mathSkills"`
	EnglishSkills  int        `json:"englishSkills"`
	ScienceSkills  int        `json:"scienceSkills"`
	CodingSkills   int        `json:"codingSkills"`
	ArtSkills      int        `json:"artSkills"`
	LanguageSkills int        `json:"languageSkills"`
	ProblemSolving int        `json:"problemSolving"`
	MemorySkills   int        `json:"memorySkills"`
	LearningStreak int        `json:"learningStreak"`
	LastActiveDate *time.Time `json:"lastActiveDate"`
}

// SkillLevel returns the current percentage for a skill key, 0 for unknown keys
func (p *Progress) SkillLevel(skill string) int {
	switch skill {
	case SkillMath:
		return p.MathSkills
	case SkillEnglish:
		return p.EnglishSkills
	case SkillScience:
		return p.ScienceSkills
	case SkillCoding:
		return p.CodingSkills
	case SkillArt:
		return p.ArtSkills
	case SkillLanguage:
		return p.LanguageSkills
	case SkillProblemSolving:
		return p.ProblemSolving
	case SkillMemory:
		return p.MemorySkills
	}
	return 0
}

// ClampSkill bounds a skill percentage to [0,100]
func ClampSkill(value int) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
