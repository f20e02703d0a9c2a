package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"

	"github.com/gosuri/uitable"
)

// execIface defines the minimal surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Go(ctx context.Context, path string) error
	Back(ctx context.Context) error
}

// command maps a REPL word to a route. A "%s" in path is replaced with the
// command's (escaped) argument.
type command struct {
	path string
	arg  string
	help string
}

var commands = map[string]command{
	"home":      {path: "/", help: "landing page"},
	"login":     {path: "/login", help: "log in"},
	"register":  {path: "/register", help: "create an account"},
	"logout":    {path: "/logout", help: "log out"},
	"list":      {path: "/dashboard", help: "list your notes"},
	"new":       {path: "/new-entry", help: "write a new note"},
	"show":      {path: "/entry/%s", arg: "id", help: "show a note"},
	"edit":      {path: "/entry/%s/edit", arg: "id", help: "edit a note"},
	"delete":    {path: "/entry/%s/delete", arg: "id", help: "move a note to the trash"},
	"trash":     {path: "/trash", help: "list notes in the trash"},
	"restore":   {path: "/trash/%s/restore", arg: "id", help: "restore a note from the trash"},
	"share":     {path: "/entry/%s/share", arg: "id", help: "share a note"},
	"shares":    {path: "/entry/%s/shares", arg: "id", help: "list who a note is shared with"},
	"unshare":   {path: "/share/%s/remove", arg: "share-id", help: "remove a share"},
	"shared":    {path: "/my-shared-notes", help: "list your shared notes"},
	"analytics": {path: "/analytics", help: "writing statistics"},
	"ai":        {path: "/ai-assistant", help: "AI assistant"},
	"profile":   {path: "/profile", help: "show and edit your profile"},
	"password":  {path: "/profile/password", help: "change your password"},
	"avatar":    {path: "/profile/avatar", help: "upload a profile picture"},
	"session":   {path: "/session", help: "show session details"},
	"backup":    {path: "/backup", help: "export notes to object storage"},
}

var aliases = map[string]string{
	"l":         "list",
	"ls":        "list",
	"dashboard": "list",
	"open":      "show",
	"rm":        "delete",
	"stats":     "analytics",
}

// runREPL starts a simple read–eval–print loop for the notes CLI.
//
// It reads a line from reader, parses the first token as the command, and
// navigates to the route the command names. "go <path>" visits a path
// directly and "back" returns to the previous view. The loop exits on EOF or
// when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "notes %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]
		if alias, ok := aliases[cmd]; ok {
			cmd = alias
		}

		var runErr error
		switch cmd {
		case "help", "?":
			printHelp(w)
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		case "back":
			runErr = a.Back(ctx)
		case "go":
			if len(args) == 0 {
				fmt.Fprintln(w, "Usage: go <path>")
				continue
			}
			runErr = a.Go(ctx, args[0])
		default:
			c, ok := commands[cmd]
			if !ok {
				fmt.Fprintln(w, "Unknown command:", cmd)
				continue
			}
			path := c.path
			if c.arg != "" {
				if len(args) == 0 {
					fmt.Fprintf(w, "Usage: %s <%s>\n", cmd, c.arg)
					continue
				}
				path = fmt.Sprintf(c.path, url.PathEscape(args[0]))
			}
			runErr = a.Go(ctx, path)
		}

		if runErr != nil {
			if errors.Is(runErr, context.Canceled) {
				return
			}
			fmt.Fprintln(w, "error:", runErr)
		}
	}
}

func printHelp(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	table := uitable.New()
	table.MaxColWidth = 60
	table.AddRow("COMMAND", "DESCRIPTION")
	for _, name := range names {
		c := commands[name]
		usage := name
		if c.arg != "" {
			usage += " <" + c.arg + ">"
		}
		table.AddRow(usage, c.help)
	}
	table.AddRow("go <path>", "visit a path, e.g. go /entry/42")
	table.AddRow("back", "return to the previous view")
	table.AddRow("help", "show this help")
	table.AddRow("exit", "leave the program")
	fmt.Fprintln(w, table)
}
