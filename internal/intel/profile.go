// Package intel infers a heuristic company profile and the likely interview round structure.
package intel

import (
	"regexp"
	"strings"

	"github.com/jonathan/prep-readiness/internal/types"
)

// DefaultIndustry is used when no industry pattern matches
const DefaultIndustry = "Technology Services"

type industryRule struct {
	pattern  *regexp.Regexp
	industry string
}

// industryRules are evaluated in order; first match wins
var industryRules = []industryRule{
	{regexp.MustCompile(`\b(fintech|banking|finance|investment)\b`), "Financial Services"},
	{regexp.MustCompile(`\b(healthcare|health|pharma|medical)\b`), "Healthcare & Life Sciences"},
	{regexp.MustCompile(`\b(retail|ecommerce|e-commerce)\b`), "Retail & E-commerce"},
	{regexp.MustCompile(`\b(edtech|education|learning)\b`), "EdTech / Education"},
	{regexp.MustCompile(`\b(saas|software|product|tech)\b`), "Technology / SaaS"},
}

// enterpriseNames are lowercase fragments; "ey " keeps its trailing space so it does not match inside words
var enterpriseNames = []string{
	"amazon", "microsoft", "google", "meta", "apple",
	"infosys", "tcs", "wipro", "accenture", "capgemini",
	"cognizant", "hcl", "tech mahindra", "oracle", "ibm",
	"salesforce", "adobe", "netflix", "goldman sachs", "jpmorgan",
	"morgan stanley", "deloitte", "ey ", "kpmg", "pwc",
}

var midSizeIndicators = []string{
	"mid-size", "mid size", "500 employees", "1000 employees", "series b", "series c",
}

type sizeInfo struct {
	label string
	focus string
}

var sizes = map[types.CompanySize]sizeInfo{
	types.SizeEnterprise: {
		label: "Enterprise (2000+)",
		focus: "Structured DSA and core CS fundamentals; standardized online tests and technical rounds. Strong emphasis on algorithms, system design basics, and behavioral consistency.",
	},
	types.SizeMidSize: {
		label: "Mid-size (200–2000)",
		focus: "Balance of problem-solving and stack depth. Expect mix of coding, system design, and culture fit. Practical experience and project depth matter.",
	},
	types.SizeStartup: {
		label: "Startup (<200)",
		focus: "Practical problem-solving and stack depth. Hands-on coding, system discussion, and culture fit. Less formal structure; agility and ownership valued.",
	},
}

// InferProfile derives a company profile from the company name and JD text.
// It returns nil when the trimmed company name is empty; that is distinct from a Startup profile.
func InferProfile(company, jdText string) *types.CompanyProfile {
	name := strings.TrimSpace(company)
	if name == "" {
		return nil
	}

	size := InferSize(name, jdText)
	info := sizes[size]

	return &types.CompanyProfile{
		CompanyName:        name,
		Industry:           InferIndustry(name, jdText),
		SizeCategory:       size,
		SizeLabel:          info.label,
		TypicalHiringFocus: info.focus,
	}
}

// InferIndustry returns the first industry whose pattern matches the lowercase company name and JD text
func InferIndustry(company, jdText string) string {
	combined := strings.ToLower(company + " " + jdText)
	for _, rule := range industryRules {
		if rule.pattern.MatchString(combined) {
			return rule.industry
		}
	}
	return DefaultIndustry
}

// InferSize buckets a company: known enterprise name, then mid-size hints in the JD, else Startup
func InferSize(company, jdText string) types.CompanySize {
	normalized := strings.ToLower(strings.TrimSpace(company))
	for _, n := range enterpriseNames {
		// substring containment also covers exact and prefix matches
		if strings.Contains(normalized, n) {
			return types.SizeEnterprise
		}
	}

	jdLower := strings.ToLower(jdText)
	for _, hint := range midSizeIndicators {
		if strings.Contains(jdLower, hint) {
			return types.SizeMidSize
		}
	}
	return types.SizeStartup
}

// SizeLabel returns the display label of a size bucket
func SizeLabel(size types.CompanySize) string {
	return sizes[size].label
}
