package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	Logout(ctx context.Context) error
	SetLanguage(ctx context.Context, args []string) error

	Home(ctx context.Context) error
	Profile(ctx context.Context) error
	Updates(ctx context.Context) error
	Navigate(ctx context.Context, args []string) error

	Chat(ctx context.Context) error
	Summarize(ctx context.Context, args []string) error
	GenerateTest(ctx context.Context, args []string) error
	Plan(ctx context.Context) error
	Research(ctx context.Context, args []string) error

	EditMajor(ctx context.Context, args []string) error
	SaveProfile(ctx context.Context) error
	CancelEdit(ctx context.Context) error
}

const (
	helpAnonymous = "Available commands: signup, login, forgot, lang <ar|en>, exit"
	helpSignedIn  = "Available commands: home, profile, updates, go <feature>, chat, summarize [file], test [file], plan, research [topic], major [value], save, cancel, lang <ar|en>, logout, exit"
)

// runREPL reads commands from reader until EOF or "exit"/"quit" and
// dispatches them to a. Signed-in commands are refused while signed out.
// Handler errors are reported and never end the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "studymate %s> ", statusFn())

		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(w, "Bye!")
			return
		}

		if err := dispatch(ctx, a, cmd, args, w); err != nil {
			fmt.Fprintln(w, errorStyle.Render(err.Error()))
		}
	}
}

var (
	errUnknownCommand = errors.New("unknown command")
	errUnknownFeature = errors.New("unknown feature")
)

func dispatch(ctx context.Context, a execIface, cmd string, args []string, w io.Writer) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			fmt.Fprintln(w, helpSignedIn)
		} else {
			fmt.Fprintln(w, helpAnonymous)
		}
		return nil
	case "lang":
		return a.SetLanguage(ctx, args)
	}

	if !a.isLoggedIn() {
		switch cmd {
		case "signup", "register":
			return a.Signup(ctx)
		case "login":
			return a.Login(ctx)
		case "forgot":
			return a.ForgotPassword(ctx)
		}
		return fmt.Errorf("%w: %s (try 'help')", errUnknownCommand, cmd)
	}

	switch cmd {
	case "home", "dashboard":
		return a.Home(ctx)
	case "profile":
		return a.Profile(ctx)
	case "updates":
		return a.Updates(ctx)
	case "go":
		return a.Navigate(ctx, args)
	case "chat":
		return a.Chat(ctx)
	case "summarize":
		return a.Summarize(ctx, args)
	case "test":
		return a.GenerateTest(ctx, args)
	case "plan":
		return a.Plan(ctx)
	case "research":
		return a.Research(ctx, args)
	case "major":
		return a.EditMajor(ctx, args)
	case "save":
		return a.SaveProfile(ctx)
	case "cancel":
		return a.CancelEdit(ctx)
	case "logout":
		return a.Logout(ctx)
	}
	return fmt.Errorf("%w: %s (try 'help')", errUnknownCommand, cmd)
}
