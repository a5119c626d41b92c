package prep

import (
	"slices"

	"github.com/jonathan/prep-readiness/internal/types"
)

const (
	// QuestionCount is the target length of the question list
	QuestionCount = 10
	// maxGenericCycles bounds the generic fill loop
	maxGenericCycles = 20
)

var genericQuestions = []string{
	"Tell me about a challenging bug you fixed and how you approached it.",
	"Describe a project where you had to learn a new technology quickly.",
	"How do you handle disagreements in a team? Give an example.",
	"Where do you see yourself in 3–5 years?",
	"What is your biggest weakness and how are you working on it?",
}

// Questions returns up to ten unique likely interview questions.
// Skill-specific questions come first; generic ones fill the remainder.
func Questions(extracted types.ExtractedSkills) []string {
	var questions []string

	if extracted.Has(types.CategoryCoreCS) {
		questions = append(questions,
			"How would you optimize search in sorted data? Discuss time complexity.",
			"Explain the difference between process and thread. When would you use multithreading?",
			"What is normalization in DBMS? Explain 3NF with an example.")
	}

	if extracted.Has(types.CategoryLanguages) {
		langs := extracted.List(types.CategoryLanguages)
		// "java" also matches JavaScript
		if anyContains(langs, "java") {
			questions = append(questions, "Explain Java memory model and garbage collection in brief.")
		}
		if anyContains(langs, "python") {
			questions = append(questions, "How does Python manage memory? What are decorators and when to use them?")
		}
		if anyContains(langs, "javascript", "typescript") {
			questions = append(questions, "Explain event loop in JavaScript and async/await.")
		}
	}

	if extracted.Has(types.CategoryWeb) {
		web := extracted.List(types.CategoryWeb)
		if anyContains(web, "react") {
			questions = append(questions, "Explain state management options in React (useState, context, Redux).")
		}
		if anyContains(web, "node", "express") {
			questions = append(questions, "How would you design a REST API for a given resource? Discuss status codes and idempotency.")
		}
		if anyContains(web, "graphql") {
			questions = append(questions, "When would you choose GraphQL over REST?")
		}
	}

	if extracted.Has(types.CategoryData) {
		questions = append(questions, "Explain indexing in databases and when it helps. What are B-trees?")
		if anyContains(extracted.List(types.CategoryData), "mongo", "nosql") {
			questions = append(questions, "Compare SQL and NoSQL. When would you use each?")
		}
	}

	if extracted.Has(types.CategoryCloudDevOps) {
		questions = append(questions,
			"Explain Docker in simple terms. What is the difference between image and container?",
			"What is CI/CD? How would you automate tests in a pipeline?")
	}

	if extracted.Has(types.CategoryTesting) {
		questions = append(questions, "How would you test a login flow? What types of tests would you write?")
	}

	for g := 0; len(questions) < QuestionCount && g < maxGenericCycles; g++ {
		q := genericQuestions[g%len(genericQuestions)]
		if !slices.Contains(questions, q) {
			questions = append(questions, q)
		}
	}

	if len(questions) > QuestionCount {
		questions = questions[:QuestionCount]
	}
	return questions
}
