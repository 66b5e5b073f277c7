// Command campshare is an interactive terminal client for the CampShare
// trip-logging service.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/campshare/campshare-cli/internal/config"
	"github.com/campshare/campshare-cli/internal/gateway"
	"github.com/campshare/campshare-cli/internal/session"
	"github.com/campshare/campshare-cli/internal/shell"
	"github.com/campshare/campshare-cli/internal/tokenstore"
	"github.com/campshare/campshare-cli/internal/viewmodel"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func usage() {
	fmt.Fprintf(os.Stderr, `campshare %s (%s)
Usage:
  campshare [-base-url URL] [-config-dir DIR] [-timeout DUR] [-log-level LVL]

Once running, type "help" for commands.
`, version, buildDate)
	os.Exit(2)
}

// main wires config, gateway, session, and shell, then runs the prompt
// loop.
func main() {
	cfg := config.FromEnv()
	baseURL := flag.String("base-url", cfg.BaseURL, "backend base URL")
	configDir := flag.String("config-dir", cfg.ConfigDir, "config directory (token storage)")
	timeout := flag.Duration("timeout", cfg.Timeout, "per-request timeout")
	logLevel := flag.String("log-level", cfg.LogLevel, "debug, info, warn, error")
	flag.Usage = usage
	flag.Parse()

	logger := buildLogger(*logLevel)
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("baseURL", *baseURL),
	)

	tokens := tokenstore.New(*configDir)
	var sess *session.Store
	gw := gateway.New(*baseURL,
		gateway.WithHTTPClient(&http.Client{Timeout: *timeout}),
		gateway.WithTokenSource(func() string { return sess.Token() }),
		gateway.WithLogger(logger),
	)
	sess = session.New(gw, tokens, logger)
	gw.OnUnauthorized(func() { sess.ForceLogout("unauthorized response") })

	in := bufio.NewScanner(os.Stdin)
	app := shell.New(sess, gw, confirmPrompt(in), logger)

	ctx := context.Background()
	fmt.Println("CampShare: camping with friends")
	app.Start(ctx)

	loop(ctx, app, in)
}

func buildLogger(level string) *zap.Logger {
	lvl := zapcore.InfoLevel
	_ = lvl.Set(level)
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	// Interleaving JSON logs with the prompt is unreadable; keep them in
	// stderr and leave stdout to the views.
	zcfg.OutputPaths = []string{"stderr"}
	logger, err := zcfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return logger
}

// confirmPrompt is the interactive confirmation hook for destructive
// actions (friend removal).
func confirmPrompt(in *bufio.Scanner) viewmodel.ConfirmFunc {
	return func(prompt string) bool {
		fmt.Printf("%s [y/N]: ", prompt)
		if !in.Scan() {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(in.Text()))
		return answer == "y" || answer == "yes"
	}
}

// loop is the shell's read-eval loop. Logged out it prompts for
// credentials; logged in it dispatches panel commands.
func loop(ctx context.Context, app *shell.App, in *bufio.Scanner) {
	for {
		switch app.View() {
		case shell.ViewLogin:
			if !promptLogin(ctx, app, in) {
				return
			}
		case shell.ViewAuthed:
			renderPanel(app)
			fmt.Print("> ")
			if !in.Scan() {
				return
			}
			if quit := dispatch(ctx, app, in, strings.TrimSpace(in.Text())); quit {
				return
			}
		default:
			return
		}
	}
}

func promptLogin(ctx context.Context, app *shell.App, in *bufio.Scanner) bool {
	fmt.Print("username (or 'quit'): ")
	if !in.Scan() {
		return false
	}
	username := strings.TrimSpace(in.Text())
	if username == "quit" {
		return false
	}
	if username == "" {
		return true
	}
	fmt.Print("password: ")
	if !in.Scan() {
		return false
	}
	password := in.Text()

	if err := app.Login(ctx, username, password); err != nil {
		fmt.Printf("login failed: %s\n", err)
	}
	return true
}

func dispatch(ctx context.Context, app *shell.App, in *bufio.Scanner, line string) (quit bool) {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "", "help":
		printHelp()
	case "quit", "exit":
		return true
	case "logout":
		app.Logout()
	case "map":
		app.ShowMap()
	case "refresh":
		if mv := app.Map(); mv != nil {
			mv.Refresh(ctx)
		}
	case "own", "friends-trips":
		if mv := app.Map(); mv != nil {
			on := arg != "off"
			if cmd == "own" {
				mv.SetIncludeOwn(ctx, on)
			} else {
				mv.SetIncludeFriends(ctx, on)
			}
		}
	case "friends":
		app.ShowFriends(ctx)
	case "search":
		app.ShowFriends(ctx)
		app.Friends().Search(ctx, arg)
	case "add":
		if fv := app.Friends(); fv != nil && arg != "" {
			fv.SendRequest(ctx, arg)
		}
	case "accept", "reject":
		if fv := app.Friends(); fv != nil {
			if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
				fv.Respond(ctx, id, cmd == "accept")
			}
		}
	case "unfriend":
		if fv := app.Friends(); fv != nil {
			if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
				fv.Remove(ctx, id)
			}
		}
	case "log":
		runTripWizard(ctx, app, in)
	default:
		fmt.Printf("unknown command %q (try 'help')\n", cmd)
	}
	return false
}

func printHelp() {
	fmt.Print(`Commands:
  map                     show the trip map panel
  refresh                 refetch trips with current filters
  own on|off              toggle my trips on the map
  friends-trips on|off    toggle friends' trips on the map
  log                     log a new camping trip
  friends                 show the friends panel
  search <text>           search users (2+ characters)
  add <username>          send a friend request
  accept|reject <id>      answer a pending request
  unfriend <id>           remove a friend (asks first)
  logout                  log out
  quit                    exit
`)
}
