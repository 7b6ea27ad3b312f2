// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestCatalog(t *testing.T) {
	t.Parallel()

	ids := []Id{
		NotAGitRepositoryId,
		GitNotFoundId,
		ShallowRepositoryId,
		InvalidTagId,
		ChangelogNotFoundId,
		ConfigLoadFailedId,
		NoCandidatesId,
		UnknownFormatId,
	}

	if got := len(Values()); got != len(ids) {
		t.Fatalf("len(Values()) = %d, want %d", got, len(ids))
	}
	for i, iss := range Values() {
		if iss.Id() != ids[i] {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, iss.Id(), ids[i])
		}
	}
	for _, id := range ids {
		iss := Get(id)
		if iss == nil {
			t.Fatalf("Get(%d) = nil", id)
		}
		if !strings.HasPrefix(strings.TrimSpace(string(iss.MarkdownMsg())), "# ") {
			t.Errorf("issue %d does not start with a heading", id)
		}
	}
	if Get(0) != nil {
		t.Error("Get(0) != nil")
	}
}

func TestIssue_Markdown(t *testing.T) {
	t.Parallel()

	md := Get(NotAGitRepositoryId).Markdown()
	if !strings.Contains(md, "## See also\n\n- <https://git-scm.com/docs/git-describe>") {
		t.Errorf("Markdown() missing links:\n%s", md)
	}
	if strings.Contains(Get(UnknownFormatId).Markdown(), "See also") {
		t.Error("issue without links should not have a See also section")
	}

	links := Get(NotAGitRepositoryId).DocLinks()
	links[0] = "mutated"
	if Get(NotAGitRepositoryId).DocLinks()[0] == "mutated" {
		t.Error("DocLinks() should return a copy")
	}
}

func TestIssue_Render(t *testing.T) {
	t.Parallel()

	out, err := Get(ShallowRepositoryId).Render("notty")
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(out, "unshallow") {
		t.Errorf("Render() output missing body:\n%s", out)
	}
}

func TestRenderPlain(t *testing.T) {
	t.Parallel()

	out := RenderPlain(ShallowRepositoryId)
	if !strings.Contains(out, "Shallow clone detected") {
		t.Errorf("RenderPlain() = %q, want the page title", out)
	}
	if RenderPlain(0) != "" {
		t.Error("RenderPlain(0) should be empty")
	}
}
