package prompt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"copilot/internal/domain"
	"copilot/internal/prompt"
)

func TestBuildComplianceAudit(t *testing.T) {
	p := prompt.BuildComplianceAudit("An expert on HIPAA.", "REQ-1 Store PHI.")

	assert.Contains(t, p, "role-playing as An expert on HIPAA.")
	assert.Contains(t, p, "---\nREQ-1 Store PHI.\n---")
	for _, sev := range domain.Severities {
		assert.Contains(t, p, sev.Tag(), "prompt must instruct the %s tag", sev)
	}
}

func TestBuildTestCases(t *testing.T) {
	p := prompt.BuildTestCases("REQ-7 Login")

	assert.Contains(t, p, "REQ-7 Login")
	assert.Contains(t, p, "single, valid JSON array of objects")
	assert.Contains(t, p, `"id", "requirement_id", "type", "description", "steps", "expected_result"`)
}

func TestBuildSyntheticData(t *testing.T) {
	p := prompt.BuildSyntheticData("10 patients")
	assert.Contains(t, p, `User Request: "10 patients"`)
	assert.Contains(t, p, "JSON array of objects")
}

func TestBuildChat(t *testing.T) {
	p := prompt.BuildChat("Is consent required?")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(p), `"Is consent required?"`))
	assert.Contains(t, p, "Do not provide legal advice")
	assert.Contains(t, p, "under 100 words")
}
