// Package jira exports generated test cases to a Jira project.
package jira

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	jira "github.com/andygrunwald/go-jira"
	"go.uber.org/zap"

	"copilot/internal/config"
	"copilot/internal/domain"
	"copilot/internal/port"
)

// Client implements port.IssueTracker.
type Client struct {
	timeout          time.Duration
	defaultIssueType string
	logger           *zap.Logger
}

// NewClient creates a Jira client.
func NewClient(cfg *config.JiraConfig, logger *zap.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	issueType := cfg.DefaultIssueType
	if issueType == "" {
		issueType = "Test"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		timeout:          timeout,
		defaultIssueType: issueType,
		logger:           logger,
	}
}

// connect builds an API client authenticated as the target's account.
func (c *Client) connect(target port.IssueTarget) (*jira.Client, error) {
	tp := jira.BasicAuthTransport{Username: target.Email, Password: target.APIToken}
	httpClient := tp.Client()
	httpClient.Timeout = c.timeout
	return jira.NewClient(httpClient, target.ServerURL)
}

// ExportTestCases verifies the project exists and creates one issue per record.
func (c *Client) ExportTestCases(ctx context.Context, table *domain.Table, target port.IssueTarget) (*domain.ExportSummary, error) {
	issueType := target.IssueType
	if issueType == "" {
		issueType = c.defaultIssueType
	}

	client, err := c.connect(target)
	if err != nil {
		return nil, c.categorise(nil, err, target.ProjectKey)
	}

	if _, resp, err := client.Project.GetWithContext(ctx, url.PathEscape(target.ProjectKey)); err != nil {
		return nil, c.categorise(resp, err, target.ProjectKey)
	}

	summary := &domain.ExportSummary{ProjectKey: target.ProjectKey, IssueKeys: []string{}}
	for i := 0; i < table.Len(); i++ {
		created, resp, err := client.Issue.CreateWithContext(ctx, NewIssue(table, i, target.ProjectKey, issueType))
		if err != nil {
			c.logger.Warn("jira.Client: issue creation failed",
				zap.String("project", target.ProjectKey),
				zap.Int("created", summary.Created),
				zap.Error(err))
			return nil, c.categorise(resp, err, target.ProjectKey)
		}
		summary.Created++
		summary.IssueKeys = append(summary.IssueKeys, created.Key)
	}

	summary.Message = fmt.Sprintf("Successfully created %d test case issues in Jira project '%s'.", summary.Created, target.ProjectKey)
	c.logger.Info("jira.Client: export complete", zap.String("project", target.ProjectKey), zap.Int("created", summary.Created))
	return summary, nil
}

// NewIssue builds the Jira issue for record i of a test-case table.
func NewIssue(table *domain.Table, i int, projectKey, issueType string) *jira.Issue {
	description := fmt.Sprintf(
		"h2. Test Case Details\n\n*Requirement ID:* %s\n*Test Type:* %s\n\nh3. Steps to Reproduce\n%s\n\nh3. Expected Result\n%s",
		cellOr(table, i, "requirement_id", "N/A"),
		cellOr(table, i, "type", "N/A"),
		cellOr(table, i, "steps", "No steps provided."),
		cellOr(table, i, "expected_result", "No expected result provided."),
	)
	return &jira.Issue{
		Fields: &jira.IssueFields{
			Project:     jira.Project{Key: projectKey},
			Summary:     "TC: " + cellOr(table, i, "description", "Untitled Test Case"),
			Description: description,
			Type:        jira.IssueType{Name: issueType},
		},
	}
}

// cellOr renders a cell for wiki markup. Arrays of strings become one line per
// item; missing and null cells use the fallback.
func cellOr(table *domain.Table, i int, column, fallback string) string {
	v := table.Cell(i, column)
	switch v.Kind() {
	case domain.KindMissing, domain.KindNull:
		return fallback
	case domain.KindArray:
		lines := make([]string, 0, len(v.Items()))
		for _, item := range v.Items() {
			lines = append(lines, item.Text())
		}
		return strings.Join(lines, "\n")
	default:
		return v.Text()
	}
}

func (c *Client) categorise(resp *jira.Response, err error, projectKey string) *domain.IntegrationError {
	status := 0
	if resp != nil && resp.Response != nil {
		status = resp.StatusCode
	}
	switch status {
	case http.StatusUnauthorized:
		return &domain.IntegrationError{
			Kind:    domain.IntegrationAuth,
			Message: "Authentication failed. Please check your Jira URL, email, and API token.",
			Err:     err,
		}
	case http.StatusNotFound:
		return &domain.IntegrationError{
			Kind:    domain.IntegrationNotFound,
			Message: fmt.Sprintf("Could not find Jira project with key '%s'. Please check the Project Key.", projectKey),
			Err:     err,
		}
	}
	return &domain.IntegrationError{
		Kind:    domain.IntegrationGeneric,
		Message: fmt.Sprintf("An unexpected error occurred: %v", err),
		Err:     err,
	}
}
