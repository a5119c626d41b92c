// Package prep generates round checklists, day plans and likely interview questions from classified skills.
package prep

import (
	"strings"

	"github.com/jonathan/prep-readiness/internal/types"
)

// MaxChecklistItems bounds every checklist round
const MaxChecklistItems = 8

// Checklist returns the four interview rounds with items conditioned on the detected categories.
// Conditional items that do not apply are dropped before truncation.
func Checklist(extracted types.ExtractedSkills) []types.ChecklistRound {
	has := extracted.Has

	basics := "Review basic computer fundamentals."
	if has(types.CategoryCoreCS) {
		basics = "Quick revision of CS fundamentals (OS, DBMS, Networks)."
	}

	rounds := []types.ChecklistRound{
		{
			Round: 1,
			Name:  "Round 1: Aptitude / Basics",
			Items: []string{
				"Revise quantitative aptitude (percentages, ratios, time-speed-distance).",
				"Practice logical reasoning and pattern recognition.",
				"Review verbal ability and reading comprehension.",
				"Time yourself on sample aptitude tests.",
				"Brush up basic grammar and error correction.",
				basics,
				"Prepare short self-introduction (1–2 min).",
				"List 3–5 strengths and weaknesses with examples.",
			},
		},
		{
			Round: 2,
			Name:  "Round 2: DSA + Core CS",
			Items: append(dsaItems(has(types.CategoryCoreCS)),
				"Prepare 2–3 coding approaches you can explain clearly."),
		},
		{
			Round: 3,
			Name:  "Round 3: Tech interview (projects + stack)",
			Items: techItems(extracted),
		},
		{
			Round: 4,
			Name:  "Round 4: Managerial / HR",
			Items: []string{
				"Prepare 'Tell me about yourself' (2 min, role-focused).",
				"List 3–5 behavioral examples (conflict, leadership, failure, teamwork).",
				"Prepare questions to ask the interviewer (team, role, growth).",
				"Research the company (products, culture, recent news).",
				"Prepare salary expectations (if applicable) and rationale.",
				"Practice 'Why us?' and 'Why this role?'.",
				"Review your resume for gaps and be ready to explain any.",
				"Prepare closing statement showing enthusiasm.",
			},
		},
	}

	for i := range rounds {
		rounds[i].Items = bound(rounds[i].Items, MaxChecklistItems)
	}
	return rounds
}

func dsaItems(coreCS bool) []string {
	if coreCS {
		return []string{
			"Revise arrays, strings, and two-pointer techniques.",
			"Practice 5–10 problems on trees and graphs.",
			"Review hash maps and sliding window patterns.",
			"Revise OOP concepts (inheritance, polymorphism, encapsulation).",
			"Brush up OS (processes, threads, scheduling, memory).",
			"Revise DBMS (ACID, normalization, indexing).",
			"Quick revision of computer networks (TCP/IP, HTTP).",
		}
	}
	return []string{
		"Practice 10–15 array and string problems.",
		"Revise basic data structures (array, linked list, stack, queue).",
		"Review time and space complexity (Big O).",
		"Practice 5 tree/graph problems.",
		"Revise basic OOP and DBMS concepts.",
	}
}

func techItems(extracted types.ExtractedSkills) []string {
	var items []string

	if extracted.Has(types.CategoryLanguages) {
		langs := extracted.List(types.CategoryLanguages)
		if len(langs) > 2 {
			langs = langs[:2]
		}
		items = append(items,
			"Prepare to explain projects using "+strings.Join(langs, " and ")+".",
			"Document design decisions and trade-offs in your projects.")
	} else {
		items = append(items, "Prepare to explain 2 projects in depth (problem, solution, impact).")
	}

	if extracted.Has(types.CategoryWeb) {
		items = append(items,
			"Revise React/Vue lifecycle and state management (if applicable).",
			"Prepare REST/API design and status codes.")
		if anyContains(extracted.List(types.CategoryWeb), "graphql") {
			items = append(items, "Revise GraphQL vs REST and when to use each.")
		}
	}

	if extracted.Has(types.CategoryData) {
		items = append(items, "Revise SQL joins, subqueries, and indexing.")
		if anyContains(extracted.List(types.CategoryData), "mongo", "redis") {
			items = append(items, "Prepare to compare SQL vs NoSQL use cases.")
		}
	} else {
		items = append(items, "Revise basic SQL and database concepts.")
	}

	if extracted.Has(types.CategoryCloudDevOps) {
		items = append(items,
			"Prepare to explain any Docker/CI usage in projects.",
			"Revise cloud basics (EC2/S3 or equivalent) if you used them.")
	}

	if extracted.Has(types.CategoryTesting) {
		items = append(items, "Prepare to explain testing strategy in your projects.")
	}

	return append(items, "Align resume bullet points with STAR format (Situation, Task, Action, Result).")
}

// anyContains reports whether any literal contains one of the lowercase fragments, case-insensitively
func anyContains(literals []string, fragments ...string) bool {
	for _, lit := range literals {
		lower := strings.ToLower(lit)
		for _, f := range fragments {
			if strings.Contains(lower, f) {
				return true
			}
		}
	}
	return false
}

// bound drops empty entries and keeps at most limit items
func bound(items []string, limit int) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == "" {
			continue
		}
		out = append(out, item)
		if len(out) == limit {
			break
		}
	}
	return out
}
