package jira_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copilot/internal/config"
	"copilot/internal/domain"
	"copilot/internal/integration/jira"
	"copilot/internal/parser"
	"copilot/internal/port"
)

func testCases(t *testing.T) *domain.Table {
	t.Helper()
	table, err := parser.ParseTabular(`[
		{"id":"TC001","requirement_id":"REQ-1","type":"Positive","description":"Login works","steps":["Open app","Sign in"],"expected_result":"Dashboard shown"},
		{"id":"TC002","type":"Negative"}
	]`)
	require.NoError(t, err)
	return table
}

func target(url string) port.IssueTarget {
	return port.IssueTarget{ServerURL: url + "/", Email: "qa@example.com", APIToken: "tok", ProjectKey: "HC"}
}

func TestClient_ExportTestCases_Success(t *testing.T) {
	var created int32
	var fields []map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "qa@example.com", user)
		assert.Equal(t, "tok", pass)

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/rest/api/2/project/HC":
			_, _ = w.Write([]byte(`{"key":"HC"}`))
		case r.Method == http.MethodPost && r.URL.Path == "/rest/api/2/issue":
			var body struct {
				Fields map[string]interface{} `json:"fields"`
			}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			fields = append(fields, body.Fields)
			n := atomic.AddInt32(&created, 1)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"key":"HC-` + string(rune('0'+n)) + `"}`))
		default:
			w.WriteHeader(http.StatusTeapot)
		}
	}))
	defer server.Close()

	client := jira.NewClient(&config.JiraConfig{}, nil)
	summary, err := client.ExportTestCases(context.Background(), testCases(t), target(server.URL))
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Created)
	assert.Equal(t, []string{"HC-1", "HC-2"}, summary.IssueKeys)
	assert.Equal(t, "Successfully created 2 test case issues in Jira project 'HC'.", summary.Message)

	require.Len(t, fields, 2)
	assert.Equal(t, "TC: Login works", fields[0]["summary"])
	assert.Equal(t, "Test", fields[0]["issuetype"].(map[string]interface{})["name"])
	assert.Equal(t, "HC", fields[0]["project"].(map[string]interface{})["key"])
	assert.Contains(t, fields[0]["description"], "*Requirement ID:* REQ-1")
	assert.Contains(t, fields[0]["description"], "h3. Steps to Reproduce\nOpen app\nSign in")
	assert.Equal(t, "TC: Untitled Test Case", fields[1]["summary"])
	assert.Contains(t, fields[1]["description"], "*Requirement ID:* N/A")
	assert.Contains(t, fields[1]["description"], "No steps provided.")
}

func TestClient_ExportTestCases_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		kind    domain.IntegrationFailure
		message string
	}{
		{"unauthorized", http.StatusUnauthorized, domain.IntegrationAuth, "Authentication failed. Please check your Jira URL, email, and API token."},
		{"missing project", http.StatusNotFound, domain.IntegrationNotFound, "Could not find Jira project with key 'HC'. Please check the Project Key."},
		{"server error", http.StatusBadGateway, domain.IntegrationGeneric, "An unexpected error occurred: "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("upstream down"))
			}))
			defer server.Close()

			client := jira.NewClient(&config.JiraConfig{}, nil)
			_, err := client.ExportTestCases(context.Background(), testCases(t), target(server.URL))

			var integ *domain.IntegrationError
			require.True(t, errors.As(err, &integ))
			assert.Equal(t, tt.kind, integ.Kind)
			assert.True(t, strings.HasPrefix(integ.Message, tt.message), integ.Message)
			assert.NotEmpty(t, integ.Hint())
		})
	}
}

func TestClient_ExportTestCases_CustomIssueType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			var body struct {
				Fields map[string]interface{} `json:"fields"`
			}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			issueType, _ := body.Fields["issuetype"].(map[string]interface{})
			assert.Equal(t, "Story", issueType["name"])
			_, _ = w.Write([]byte(`{"key":"HC-9"}`))
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	tgt := target(server.URL)
	tgt.IssueType = "Story"
	client := jira.NewClient(&config.JiraConfig{DefaultIssueType: "Test"}, nil)
	summary, err := client.ExportTestCases(context.Background(), testCases(t), tgt)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Created)
}

func TestClient_ExportTestCases_GenericFailureKeepsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	_, err := jira.NewClient(&config.JiraConfig{}, nil).ExportTestCases(context.Background(), testCases(t), target(server.URL))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream down")
}

func TestClient_ExportTestCases_EscapesProjectKey(t *testing.T) {
	var projectPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			projectPath = r.URL.EscapedPath()
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	tgt := target(server.URL)
	tgt.ProjectKey = "HC/../admin"
	_, err := jira.NewClient(&config.JiraConfig{}, nil).ExportTestCases(context.Background(), testCases(t), tgt)

	var integ *domain.IntegrationError
	require.True(t, errors.As(err, &integ))
	assert.Equal(t, domain.IntegrationNotFound, integ.Kind)
	assert.Equal(t, "/rest/api/2/project/HC%2F..%2Fadmin", projectPath)
}

func TestNewIssue_Fields(t *testing.T) {
	issue := jira.NewIssue(testCases(t), 0, "HC", "Task")
	assert.Equal(t, "HC", issue.Fields.Project.Key)
	assert.Equal(t, "Task", issue.Fields.Type.Name)
	assert.Equal(t, "TC: Login works", issue.Fields.Summary)
	assert.Contains(t, issue.Fields.Description, "h3. Expected Result\nDashboard shown")
}
