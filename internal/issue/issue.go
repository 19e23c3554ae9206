// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

type Id int

const (
	ConfigLoadFailedId Id = iota + 1
	ConfigNotFoundId
	ComponentNotFoundId
	CatalogParseErrorId
	NotATerminalId
	ClipboardUnavailableId
	SSHServerStartFailedId
	HostKeyUnavailableId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation pages about this issue
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue guide with the given glamour style name or path.
func (i *Issue) Render(stylePath string) (string, error) {
	var sb strings.Builder
	sb.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		sb.WriteString("\n\n## See also\n\n")
		for _, link := range i.docLinks {
			sb.WriteString("- <" + string(link) + ">\n")
		}
		for _, link := range i.extLinks {
			sb.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(sb.String(), stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file exists but could not be parsed or does not match the schema.

## Things you can try:
- Show the effective configuration and the file it came from:
~~~
$ a11yterm config show
$ a11yterm config path
~~~

- Check the allowed values:
~~~cue
ui: {
	theme:      "default" | "charm" | "dracula" | "catppuccin" | "base16"
	code_style: "auto" | "dark" | "light" | "notty"
}
log: level: "debug" | "info" | "warn" | "error"
ssh: port: 1 to 65535
~~~

- Start over from the defaults (move the broken file away first):
~~~
$ a11yterm config init
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	configNotFoundIssue = &Issue{
		id: ConfigNotFoundId,
		mdMsg: `
# Configuration file not found!

The file passed with --config does not exist.

## Things you can try:
- Check the path for typos
- Omit --config to use the default location:
~~~
$ a11yterm config path
~~~
- Write a default configuration there:
~~~
$ a11yterm config init
~~~`,
	}

	componentNotFoundIssue = &Issue{
		id: ComponentNotFoundId,
		mdMsg: `
# Component not found!

The component id does not match any entry in the catalog.

## Things you can try:
- List the available components and their ids:
~~~
$ a11yterm list
~~~
- Pick one interactively:
~~~
$ a11yterm docs
~~~
- If the id comes from ui.start_component, fix it in your configuration`,
	}

	catalogParseErrorIssue = &Issue{
		id: CatalogParseErrorId,
		mdMsg: `
# Failed to parse component catalog!

A catalog file did not validate.

## Common issues:
- WCAG levels must be "A", "AA" or "AAA"
- WCAG criterion ids look like "2.1.1"
- Component ids are lowercase words joined by dashes
- Every component needs at least one keyboard binding
- Component ids must be unique

## Example entry:
~~~cue
components: [{
	id:          "toggle"
	name:        "Toggle"
	description: "A two-state switch."
	wcag: [{id: "4.1.2", level: "A", title: "Name, Role, Value", description: "Switch role."}]
	aria: [{name: "aria-checked", purpose: "State", usage: "true or false"}]
	keyboard: [{key: "Space", action: "Toggles the switch"}]
	features: ["Switch role"]
}]
~~~`,
		extLinks: []HttpLink{"https://www.w3.org/WAI/WCAG21/quickref/"},
	}

	notATerminalIssue = &Issue{
		id: NotATerminalId,
		mdMsg: `
# Not a terminal!

The showcase needs an interactive terminal, but standard input or output is redirected.

## Things you can try:
- Print a component page instead:
~~~
$ a11yterm docs modal --raw
~~~
- Serve the showcase over SSH and connect from a terminal:
~~~
$ a11yterm serve
$ ssh -p 23234 localhost
~~~`,
	}

	clipboardUnavailableIssue = &Issue{
		id: ClipboardUnavailableId,
		mdMsg: `
# Clipboard not available!

Copying the code sample failed because no clipboard utility was found.

## Things you can try:
- On Linux, install xclip, xsel or wl-clipboard
- Over SSH the remote clipboard is not reachable; use 'a11yterm docs <component> --raw' instead`,
	}

	sshServerStartFailedIssue = &Issue{
		id: SSHServerStartFailedId,
		mdMsg: `
# Failed to start the SSH server!

The server could not listen on the configured address.

## Things you can try:
- Check whether another process uses the port
- Pick another port:
~~~
$ a11yterm serve --port 2222
~~~
- Bind to all interfaces only when you intend to:
~~~
$ a11yterm serve --host 0.0.0.0
~~~`,
	}

	hostKeyUnavailableIssue = &Issue{
		id: HostKeyUnavailableId,
		mdMsg: `
# SSH host key not available!

The host key could not be read or created.

## Things you can try:
- Check that the directory of ssh.host_key_path is writable
- Point to an existing ed25519 key:
~~~
$ a11yterm serve --host-key ~/.ssh/a11yterm_host_ed25519
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

a11yterm could not read or write a file it needs.

## Things you can try:
- Check the permissions of the config directory:
~~~
$ ls -la "$(a11yterm config path)"
~~~
- Use --log-file with a writable location`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		configNotFoundIssue.Id():       configNotFoundIssue,
		componentNotFoundIssue.Id():    componentNotFoundIssue,
		catalogParseErrorIssue.Id():    catalogParseErrorIssue,
		notATerminalIssue.Id():         notATerminalIssue,
		clipboardUnavailableIssue.Id(): clipboardUnavailableIssue,
		sshServerStartFailedIssue.Id(): sshServerStartFailedIssue,
		hostKeyUnavailableIssue.Id():   hostKeyUnavailableIssue,
		permissionDeniedIssue.Id():     permissionDeniedIssue,
	}
)

// Values returns every issue ordered by id.
func Values() []*Issue {
	return slices.SortedFunc(maps.Values(issues), func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
}

func Get(id Id) *Issue {
	return issues[id]
}
