package main

import (
	"context"
	"fmt"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/go_away_boilerplate/pkg/shutdown"
	"github.com/hunyport/huny/internal"
	"github.com/hunyport/huny/internal/gradio"
)

const usage = `huny - talk to models hosted on gradio spaces

Sends prompts to a model behind a gradio space and renders the
response: one-shot, as an interactive conversation, or through a small
web UI.

Prerequisites:
  - (Optional) Install glow - https://github.com/charmbracelet/glow for formatted markdown output
  - (Optional) Set the NO_COLOR environment variable to disable ansi color output

Usage: huny [flags] <command>

Flags:
  -u, -url string         Set the space to talk to, either a full URL or an '<owner>/<name>' id. (default '%v', or $HUNY_DEFAULT_URL)
  -e, -endpoint string    Set the named procedure to call on the space. (default '%v', or $HUNY_ENDPOINT)
  -r, -raw bool           Set to true to print raw output (no glow). (default %v)
  -o, -output string      Write the ask response to this file instead of printing it.
  -p, -port int           Set the port for serve mode. (default %v, or $PORT)

Commands:
  h|help                  Display this help message
  a|ask <prompt>          Send a single prompt and print the response
  c|chat                  Start a new interactive conversation
  c|chat l|list           List all stored conversations
  c|chat c|continue <id>  Continue a stored conversation
  c|chat d|delete <id>    Delete a stored conversation
  s|serve                 Serve the web UI
  v|version               Print the version

Examples:
  - huny ask "What's the weather like in Tokyo?"
  - huny -raw ask "Generate a haiku" > haiku.txt
  - huny -o response.md ask "Summarize the plot of Hamlet"
  - huny -url demo/model-a chat
  - huny chat continue whats_the_weather_like_in
  - PORT=8080 huny serve
`

func main() {
	ancli.SetupSlog()
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	command, err := internal.Setup(args, fmt.Sprintf(usage, gradio.DefaultTarget, gradio.DefaultAPI, false, 5000))
	if err != nil {
		ancli.PrintErr(fmt.Sprintf("failed to setup: %v\n", err))
		return 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { shutdown.Monitor(cancel) }()
	err = command.Run(ctx)
	if err != nil {
		ancli.PrintErr(fmt.Sprintf("failed to run: %v\n", err))
		return 1
	}
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK("things seems to have worked out. Bye bye! 🚀\n")
	}
	return 0
}
