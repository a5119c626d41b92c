package prep

import "github.com/jonathan/prep-readiness/internal/types"

// Plan returns the five day-groups covering seven days of preparation
func Plan(extracted types.ExtractedSkills) []types.DayPlan {
	webFocus := extracted.Has(types.CategoryWeb)
	dsaFocus := extracted.Has(types.CategoryCoreCS)
	dataFocus := extracted.Has(types.CategoryData)

	return []types.DayPlan{
		{
			Day:   1,
			Title: "Day 1–2: Basics + Core CS",
			Items: []string{
				"Revise aptitude (quant, logical, verbal).",
				"Revise OS: processes, threads, scheduling, memory management.",
				"Revise DBMS: normalization, indexing, transactions.",
				"Revise computer networks: TCP/IP, HTTP, basics of security.",
				pick(extracted.HasAny, "Skim through JD again and note must-have topics.", "List 5 core CS topics from typical JDs."),
			},
		},
		{
			Day:   2,
			Title: "Day 3–4: DSA + Coding practice",
			Items: []string{
				pick(dsaFocus, "Practice 5–8 problems: arrays, strings, hash map.", "Practice 8–10 array/string problems."),
				"Practice 3–4 problems on trees and graphs.",
				"Revise recursion and dynamic programming basics.",
				"Time yourself (30–45 min per problem).",
				"Note patterns: two-pointer, sliding window, BFS/DFS.",
			},
		},
		{
			Day:   3,
			Title: "Day 5: Project + Resume alignment",
			Items: []string{
				"Document 2 projects with problem, your role, tech stack, outcome.",
				"Align each bullet with STAR format.",
				pick(webFocus, "Highlight frontend/backend and deployment (if any).", "Highlight tech stack and impact."),
				"Ensure resume keywords match JD (skills already extracted).",
				"Prepare 2-min verbal project summary.",
			},
		},
		{
			Day:   4,
			Title: "Day 6: Mock interview questions",
			Items: []string{
				"Practice 5 CS conceptual questions (OS, DBMS, networks).",
				"Practice 2–3 coding questions out loud (explain approach first).",
				"Prepare 3 behavioral stories (conflict, leadership, failure).",
				"Practice 'Tell me about yourself' and 'Why us?'.",
				pick(dataFocus, "Revise SQL and DB design questions.", "Revise 2–3 DB/SQL questions."),
			},
		},
		{
			Day:   5,
			Title: "Day 7: Revision + Weak areas",
			Items: []string{
				"Revise weak topics identified in last 6 days.",
				"Quick DSA revision (2–3 problems).",
				"Re-read JD and match your prep to requirements.",
				pick(webFocus, "Quick revision: React/Node concepts and one project.", "Quick revision: one project end-to-end."),
				"Rest and stay calm; avoid cramming new topics.",
			},
		},
	}
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}
