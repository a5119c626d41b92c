package intel

import "github.com/jonathan/prep-readiness/internal/types"

// Flow identifies which branch of the round decision tree produced a mapping
type Flow string

// Round flows, in decision order
const (
	FlowEnterpriseStructured Flow = "enterprise-structured"
	FlowEnterpriseGeneric    Flow = "enterprise-generic"
	FlowPractical            Flow = "practical"
	FlowDomainDeepDive       Flow = "domain-deep-dive"
	FlowGeneric              Flow = "generic"
)

var flows = map[Flow][]types.RoundMappingEntry{
	FlowEnterpriseStructured: {
		{Round: 1, Name: "Round 1: Online Test", Description: "DSA + Aptitude",
			WhyItMatters: "Filters for baseline problem-solving and quantitative ability. Strong performance here is required to advance."},
		{Round: 2, Name: "Round 2: Technical", Description: "DSA + Core CS",
			WhyItMatters: "Deep dive into data structures, algorithms, and CS fundamentals. Demonstrates how you think under pressure."},
		{Round: 3, Name: "Round 3: Tech + Projects", Description: "System design & project discussion",
			WhyItMatters: "Shows real-world application and design sense. Align your project narrative with the role."},
		{Round: 4, Name: "Round 4: HR", Description: "Behavioral & fit",
			WhyItMatters: "Assesses culture fit, motivation, and communication. Prepare STAR stories and questions for the interviewer."},
	},
	FlowEnterpriseGeneric: {
		{Round: 1, Name: "Round 1: Screening", Description: "Aptitude / Basics",
			WhyItMatters: "Initial filter for logical and verbal ability."},
		{Round: 2, Name: "Round 2: Technical", Description: "Domain + Core fundamentals",
			WhyItMatters: "Validates technical depth in the required area."},
		{Round: 3, Name: "Round 3: Projects & Design", Description: "Experience & system thinking",
			WhyItMatters: "Connects your experience to the role."},
		{Round: 4, Name: "Round 4: HR", Description: "Behavioral & fit",
			WhyItMatters: "Final check on communication and values alignment."},
	},
	FlowPractical: {
		{Round: 1, Name: "Round 1: Practical coding", Description: "Live coding or take-home",
			WhyItMatters: "Directly tests coding in the stack they use. Clean, working code matters more than perfect algorithms."},
		{Round: 2, Name: "Round 2: System discussion", Description: "Architecture & trade-offs",
			WhyItMatters: "Shows you can reason about design and scale. Be ready to discuss your projects."},
		{Round: 3, Name: "Round 3: Culture fit", Description: "Values & collaboration",
			WhyItMatters: "Smaller teams care strongly about how you work with others and take ownership."},
	},
	FlowDomainDeepDive: {
		{Round: 1, Name: "Round 1: Technical screening", Description: "Core skills + problem-solving",
			WhyItMatters: "Quick validation of fundamentals and approach."},
		{Round: 2, Name: "Round 2: Deep dive", Description: "Domain (data/cloud) + projects",
			WhyItMatters: "Demonstrates depth in the relevant stack."},
		{Round: 3, Name: "Round 3: Team fit", Description: "Collaboration & mindset",
			WhyItMatters: "Ensures you align with how the team works."},
	},
	FlowGeneric: {
		{Round: 1, Name: "Round 1: Aptitude / Basics", Description: "Quant, logic, verbal",
			WhyItMatters: "Establishes baseline readiness for later rounds."},
		{Round: 2, Name: "Round 2: Technical", Description: "Coding + fundamentals",
			WhyItMatters: "Core technical assessment for the role."},
		{Round: 3, Name: "Round 3: Projects & HR", Description: "Experience + fit",
			WhyItMatters: "Combined check on experience and communication."},
	},
}

// SelectFlow walks the decision tree; first match wins. A nil profile is treated as a Startup.
func SelectFlow(extracted types.ExtractedSkills, profile *types.CompanyProfile) Flow {
	size := types.SizeStartup
	if profile != nil {
		size = profile.SizeCategory
	}
	smaller := size == types.SizeStartup || size == types.SizeMidSize

	switch {
	case size == types.SizeEnterprise && extracted.Has(types.CategoryCoreCS):
		return FlowEnterpriseStructured
	case size == types.SizeEnterprise:
		return FlowEnterpriseGeneric
	case smaller && extracted.Has(types.CategoryWeb):
		return FlowPractical
	case smaller && (extracted.Has(types.CategoryData) || extracted.Has(types.CategoryCloudDevOps)):
		return FlowDomainDeepDive
	default:
		return FlowGeneric
	}
}

// MapRounds returns a fresh copy of the round template chosen by SelectFlow
func MapRounds(extracted types.ExtractedSkills, profile *types.CompanyProfile) types.RoundMapping {
	template := flows[SelectFlow(extracted, profile)]
	rounds := make([]types.RoundMappingEntry, len(template))
	copy(rounds, template)
	return types.RoundMapping{Rounds: rounds}
}
