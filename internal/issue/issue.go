// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
)

const (
	NotAGitRepositoryId Id = iota + 1
	GitNotFoundId
	ShallowRepositoryId
	InvalidTagId
	ChangelogNotFoundId
	ConfigLoadFailedId
	NoCandidatesId
	UnknownFormatId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	// Issue is a catalog page describing a known failure and how to fix it.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
	}
)

var (
	render = glamour.Render

	issues = map[Id]*Issue{}
)

func register(i *Issue) *Issue {
	issues[i.id] = i
	return i
}

func (i *Issue) Id() Id { return i.id }

func (i *Issue) MarkdownMsg() MarkdownMsg { return i.mdMsg }

func (i *Issue) DocLinks() []HttpLink { return slices.Clone(i.docLinks) }

// Markdown returns the page source including a "See also" list of links.
func (i *Issue) Markdown() string {
	var b strings.Builder
	b.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 {
		b.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			b.WriteString("\n- <" + string(link) + ">")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Render renders the page for a terminal with the given glamour style
// ("dark", "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	return render(i.Markdown(), stylePath)
}

// RenderPlain renders the page for id without colors. It returns "" for an
// unknown id or when rendering fails.
func RenderPlain(id Id) string {
	i := Get(id)
	if i == nil {
		return ""
	}
	out, err := i.Render("notty")
	if err != nil {
		return ""
	}
	return out
}

// Values returns every catalog page ordered by Id.
func Values() []*Issue {
	return slices.SortedFunc(maps.Values(issues), func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
}

// Get returns the page for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}

var (
	_ = register(&Issue{
		id: NotAGitRepositoryId,
		mdMsg: `
# Not a git repository!

buildinfo derives versions from git history, but the directory is not inside
a git work tree.

## Things you can try
- Run buildinfo from inside your checkout, or point it there:
~~~
$ buildinfo --dir /path/to/checkout version
~~~
- Initialize a repository and tag a first release:
~~~
$ git init && git commit --allow-empty -m init && git tag v0.1.0
~~~`,
		docLinks: []HttpLink{"https://git-scm.com/docs/git-describe"},
	})

	_ = register(&Issue{
		id: GitNotFoundId,
		mdMsg: `
# git executable not found!

The **cli** backend runs the git binary, which is not on your PATH.

## Things you can try
- Install git and make sure ` + "`git --version`" + ` works
- Switch to the built-in backend, which reads the repository directly:
~~~
$ buildinfo --backend gogit version
~~~`,
	})

	_ = register(&Issue{
		id: ShallowRepositoryId,
		mdMsg: `
# Shallow clone detected!

The checkout does not contain the full history, so the nearest tag and the
commit distance may be wrong. buildinfo never fetches on its own.

## Things you can try
~~~
$ git fetch --unshallow --tags
~~~
- In CI, request full history (for example ` + "`fetch-depth: 0`" + `).`,
	})

	_ = register(&Issue{
		id: InvalidTagId,
		mdMsg: `
# Invalid version tag!

Release tags must look like ` + "`v<major>.<minor>.<patch>`" + ` with numeric
components, for example ` + "`v1.2.3`" + `.

## Things you can try
- Check which tag git picked:
~~~
$ git describe --tags --long
~~~
- Narrow the match with ` + "`tag_pattern`" + ` in buildinfo.cue`,
	})

	_ = register(&Issue{
		id: ChangelogNotFoundId,
		mdMsg: `
# Change-log not found!

Release notes are read from a change-log where every release starts with a
` + "`# <version>`" + ` heading.

## Things you can try
- Pass the file explicitly with ` + "`--changelog`" + `
- Set ` + "`changelog`" + ` in buildinfo.cue`,
	})

	_ = register(&Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or does not match the schema.

## Things you can try
- Print the effective configuration:
~~~
$ buildinfo config show
~~~
- Print a starting point with every default:
~~~
$ buildinfo config dump > buildinfo.cue
~~~`,
		docLinks: []HttpLink{"https://cuelang.org/docs/"},
	})

	_ = register(&Issue{
		id: NoCandidatesId,
		mdMsg: `
# No build targets found!

No ` + "`cmd/<name>`" + ` directory with Go files was found and no candidates
were given on the command line.

## Things you can try
- Pass candidates explicitly:
~~~
$ buildinfo target app-a app-b
~~~`,
	})

	_ = register(&Issue{
		id: UnknownFormatId,
		mdMsg: `
# Unknown output format!

Supported formats are text, json, yaml, toml, env and ldflags.`,
	})
)
