package matching

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultSkillVocabulary is the keyword list used when no custom vocabulary is supplied.
var DefaultSkillVocabulary = []string{
	"javascript", "python", "java", "react", "node", "nodejs", "angular",
	"vue", "typescript", "php", "ruby", "go", "rust", "swift", "kotlin",
	"html", "css", "sass", "tailwind", "bootstrap", "sql", "mongodb",
	"postgresql", "mysql", "redis", "aws", "azure", "gcp", "docker",
	"kubernetes", "git", "agile", "scrum", "rest", "api", "graphql",
	"machine learning", "ai", "data science", "analytics", "tensorflow",
	"pytorch", "scikit-learn", "pandas", "numpy", "flutter", "react native",
	"django", "flask", "spring", "express", "fastapi", "nextjs", "next.js",
	"leadership", "management", "communication", "problem solving",
	"teamwork", "project management", "devops", "ci/cd", "testing",
	"figma", "sketch", "adobe", "photoshop", "illustrator", "ui/ux",
	"frontend", "backend", "fullstack", "full-stack", "mobile", "web",
	"cloud", "security", "blockchain", "solidity", "ethereum", "web3",
}

// ExtractSkills returns the vocabulary terms that occur in text as whole words,
// in vocabulary order. "go" does not match inside "good".
func ExtractSkills(text string, vocab []string) []string {
	text = strings.ToLower(text)
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	out := make([]string, 0)
	for _, term := range vocab {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if containsWord(text, term) {
			out = append(out, term)
		}
	}
	return out
}

// containsWord reports whether needle occurs in haystack with no letter or
// digit directly before or after it.
func containsWord(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	from := 0
	for from <= len(haystack)-len(needle) {
		idx := strings.Index(haystack[from:], needle)
		if idx < 0 {
			return false
		}
		start := from + idx
		end := start + len(needle)
		if boundaryBefore(haystack, start) && boundaryAfter(haystack, end) {
			return true
		}
		from = start + 1
	}
	return false
}

func boundaryBefore(s string, i int) bool {
	if i <= 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// skillsOverlap treats two skills as the same when one contains the other as a whole word.
func skillsOverlap(a, b string) bool {
	if a == b {
		return true
	}
	return containsWord(a, b) || containsWord(b, a)
}
