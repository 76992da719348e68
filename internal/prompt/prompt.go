// Package prompt assembles the instructions sent to the generative model.
package prompt

import "strings"

// WelcomeMessage opens every chat history.
const WelcomeMessage = "Welcome to the AI Compliance Co-Pilot. I'm here to assist you with regulatory questions, compliance guidance, and best practices for healthcare software development. How may I help you today?"

// BuildComplianceAudit returns the audit prompt for a document, role-playing
// the given expert persona. The model is told to tag each finding with one of
// the three severity tags the findings parser splits on.
func BuildComplianceAudit(persona, documentText string) string {
	return `As an AI assistant role-playing as ` + persona + `, your task is to conduct a meticulous compliance audit of the provided software requirements document.

Instructions:
1. Analyze the text strictly from the perspective of your assigned role.
2. Identify and list all potential violations, risks, or ambiguities related to the regulations you oversee.
3. For each finding, provide a clear classification:
   - **[Risk - High]:** Direct violations of core regulatory principles.
   - **[Warning - Medium]:** Vague language, missing safeguards, or deviation from best practices.
   - **[Pass]:** Areas that demonstrate clear compliance.
4. For each point, cite the specific requirement ID or section from the document if possible.
5. Provide a concise, actionable recommendation for remediation for each risk and warning.
6. Format your entire response in structured Markdown.

Document for Analysis:
---
` + documentText + `
---
`
}

// TestCaseKeys are the keys every generated test case must carry.
var TestCaseKeys = []string{"id", "requirement_id", "type", "description", "steps", "expected_result"}

// BuildTestCases returns the test-suite generation prompt for a document.
func BuildTestCases(documentText string) string {
	quoted := make([]string, len(TestCaseKeys))
	for i, k := range TestCaseKeys {
		quoted[i] = `"` + k + `"`
	}
	return `You are an expert AI Test Case Generator for enterprise software. Your task is to analyze the following requirements document and generate a comprehensive, structured test suite in JSON format.

Instructions:
1. Create test cases covering positive, negative, edge, and compliance scenarios.
2. Ensure every test case is directly traceable to a requirement ID from the document.
3. The output must be a single, valid JSON array of objects, with no additional text or explanations.
4. Each object must contain these exact keys: ` + strings.Join(quoted, ", ") + `.

Document for Analysis:
---
` + documentText + `
---
`
}

// BuildSyntheticData wraps a free-form data request.
func BuildSyntheticData(request string) string {
	return `You are a synthetic data generator. Based on the user's request, create realistic but fake data.
The output must be a single, valid JSON array of objects, with no explanations.

User Request: "` + request + `"
`
}

// BuildChat wraps a user question in the guard-railed expert instructions.
func BuildChat(question string) string {
	return `**SYSTEM INSTRUCTIONS:**
1.  **Persona:** You are an expert AI assistant specializing in global healthcare software compliance (DPDPA, HIPAA, GDPR, etc.).
2.  **Primary Directive: CONCISENESS.** Your response MUST be under 100 words and between 300-500 characters. This is a strict constraint. Do not exceed this limit.
3.  **Tone:** Formal, professional, and direct.
4.  **Formatting:** Use simple Markdown (bolding for emphasis). Do not use lists unless absolutely necessary for clarity within the character limit.
5.  **Safety:** Do not provide legal advice. If asked for legal advice, politely state that you are an informational tool and recommend consulting a qualified professional.

**USER QUERY:**
"` + question + `"
`
}
