// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	t.Parallel()

	ids := []Id{
		ConfigLoadFailedId,
		ConfigNotFoundId,
		ComponentNotFoundId,
		CatalogParseErrorId,
		NotATerminalId,
		ClipboardUnavailableId,
		SSHServerStartFailedId,
		HostKeyUnavailableId,
		PermissionDeniedId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	// Verify IDs start at 1 (iota + 1)
	if ConfigLoadFailedId != 1 {
		t.Errorf("ConfigLoadFailedId = %d, want 1", ConfigLoadFailedId)
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id       Id
		wantNil  bool
		contains string
	}{
		{ConfigLoadFailedId, false, "Failed to load configuration"},
		{ConfigNotFoundId, false, "Configuration file not found"},
		{ComponentNotFoundId, false, "Component not found"},
		{CatalogParseErrorId, false, "Failed to parse component catalog"},
		{NotATerminalId, false, "Not a terminal"},
		{ClipboardUnavailableId, false, "Clipboard not available"},
		{SSHServerStartFailedId, false, "Failed to start the SSH server"},
		{HostKeyUnavailableId, false, "SSH host key not available"},
		{PermissionDeniedId, false, "Permission denied"},
		{Id(9999), true, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.contains, func(t *testing.T) {
			t.Parallel()

			issue := Get(tt.id)
			if tt.wantNil {
				if issue != nil {
					t.Errorf("Get(%d) should return nil", tt.id)
				}
				return
			}

			if issue == nil {
				t.Fatalf("Get(%d) returned nil", tt.id)
			}
			if issue.Id() != tt.id {
				t.Errorf("Id() = %d, want %d", issue.Id(), tt.id)
			}
			if !strings.Contains(string(issue.MarkdownMsg()), tt.contains) {
				t.Errorf("Get(%d).MarkdownMsg() should contain %q", tt.id, tt.contains)
			}
		})
	}
}

func TestValues(t *testing.T) {
	t.Parallel()

	issues := Values()
	if len(issues) != 9 {
		t.Fatalf("Values() returned %d issues, want 9", len(issues))
	}

	for i, issue := range issues {
		if issue.Id() != Id(i+1) {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, issue.Id(), i+1)
		}
	}
}

func TestIssue_LinksAreCloned(t *testing.T) {
	t.Parallel()

	issue := Get(CatalogParseErrorId)
	links := issue.ExtLinks()
	if len(links) == 0 {
		t.Fatal("CatalogParseErrorId should have external links")
	}

	original := links[0]
	links[0] = "modified"
	if issue.ExtLinks()[0] != original {
		t.Error("ExtLinks() should return a clone")
	}

	if got := Get(ComponentNotFoundId).DocLinks(); len(got) != 0 {
		t.Errorf("DocLinks() = %v, want none", got)
	}
}

func TestIssue_Render(t *testing.T) {
	// Mock the render function for testing
	originalRender := render
	defer func() { render = originalRender }()

	var gotStyle string
	render = func(in string, stylePath string) (string, error) {
		gotStyle = stylePath
		return in, nil
	}

	rendered, err := Get(ComponentNotFoundId).Render("dark")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if gotStyle != "dark" {
		t.Errorf("style = %q, want dark", gotStyle)
	}
	if !strings.Contains(rendered, "a11yterm list") {
		t.Error("Render() output should contain the list suggestion")
	}
	if strings.Contains(rendered, "See also") {
		t.Error("Render() should not add a See also section without links")
	}

	testIssue := &Issue{
		id:       Id(100),
		mdMsg:    "# Test",
		docLinks: []HttpLink{"https://example.com/docs"},
		extLinks: []HttpLink{"https://example.com/ext"},
	}
	rendered, err = testIssue.Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	for _, want := range []string{"## See also", "- <https://example.com/docs>\n", "- <https://example.com/ext>\n"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("Render() output missing %q:\n%s", want, rendered)
		}
	}
}
