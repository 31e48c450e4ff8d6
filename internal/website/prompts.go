package website

import "github.com/rishav781/Test-Agent/internal/types"

const analysisSystemMessage = `You are an expert web analyst. Analyze the provided website content and rate it on multiple parameters out of 5 stars.

CRITICAL: Respond with ONLY valid JSON. Start directly with '{' and end with '}'.

Required JSON format:
{
    "overall_rating": 4,
    "parameters": {
        "performance": {"rating": 4, "explanation": "Brief explanation"},
        "seo": {"rating": 3, "explanation": "Brief explanation"},
        "usability": {"rating": 5, "explanation": "Brief explanation"},
        "accessibility": {"rating": 4, "explanation": "Brief explanation"},
        "security": {"rating": 3, "explanation": "Brief explanation"}
    },
    "report": "Detailed analysis report summarizing strengths and weaknesses",
    "recommendations": ["Recommendation 1", "Recommendation 2", "Recommendation 3"]
}

Rate each parameter 1-5 stars based on:
- Performance: Loading speed, optimization, mobile-friendliness
- SEO: Meta tags, content quality, structure
- Usability: Navigation, user experience, design
- Accessibility: WCAG compliance, screen reader support
- Security: HTTPS, vulnerabilities, best practices

Overall rating should be the average of parameter ratings.`

const scenarioSystemMessage = `You are an expert QA engineer. Based on the website analysis, generate comprehensive test scenarios and test cases.

CRITICAL: Respond with ONLY valid JSON. Start directly with '[' and end with ']'.

Required JSON format for each scenario:
{
    "title": "Scenario Title",
    "description": "Brief description of the scenario",
    "category": "website_testing",
    "test_cases": [
        {
            "title": "Test Case Title",
            "description": "Detailed test case description",
            "priority": "high|medium|low",
            "category": "functional|performance|security|usability|accessibility",
            "preconditions": ["Precondition 1", "Precondition 2"],
            "steps": ["Step 1", "Step 2", "Step 3"],
            "test_data": {"key": "value"}
        }
    ]
}

Generate scenarios covering:
1. Functional testing (forms, navigation, links)
2. Performance testing (loading times)
3. Security testing (HTTPS, input validation)
4. Usability testing (user experience, responsiveness)
5. Accessibility testing (WCAG compliance)

Focus on issues identified in the analysis and create actionable test cases.`

// fallbackScenarios is the canned website result substituted when scenario
// generation fails entirely.
func fallbackScenarios(rawURL string) []types.Scenario {
	return []types.Scenario{
		{
			Title:         "Basic Website Functionality Test",
			Description:   "Test basic website functionality and accessibility",
			Category:      "website_testing",
			Preconditions: []string{},
			TestCases: []types.TestCase{
				{
					Title:       "Website Loads Successfully",
					Description: "Verify that the website loads without errors",
					Priority:    "high",
					Category:    "functional",
					Preconditions: []string{
						"Internet connection is available",
					},
					Steps: []string{
						"Navigate to the website URL",
						"Wait for page to load completely",
					},
					TestData:           map[string]any{"url": rawURL},
					ValidationCriteria: []string{},
				},
				{
					Title:       "HTTPS Security Check",
					Description: "Verify website uses secure HTTPS connection",
					Priority:    "high",
					Category:    "security",
					Preconditions: []string{
						"Website is accessible",
					},
					Steps: []string{
						"Check URL protocol",
						"Verify SSL certificate validity",
					},
					TestData:           map[string]any{"expected_protocol": "https"},
					ValidationCriteria: []string{},
				},
			},
		},
	}
}
