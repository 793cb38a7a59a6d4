package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"
	"strconv"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/hunyport/huny/internal/models"
	"github.com/hunyport/huny/internal/session"
	"github.com/hunyport/huny/internal/utils"
)

const chatUsage = `huny - chat with models hosted on gradio spaces

Usage: huny [flags] chat <subcommand>

Commands:
  n|new                 Start a new interactive conversation (default when omitted).
  c|continue <id>       Continue a stored conversation. <id> may also be the index from 'huny chat list'.
  l|list                List all stored conversations.
  d|delete   <id>       Delete the conversation with the given id.
  h|help                Show this help.

Inside a conversation, type your message and press enter. 'clear' empties
the transcript, 'exit' or 'quit' ends the session. The transcript is saved
on exit under the huny config dir as JSON and may be edited there.

Examples:
  - huny chat
  - huny -url demo/model-a chat
  - huny chat list
  - huny chat continue how's_the_weather_in
  - huny chat delete 0
`

// Command runs the interactive conversation loop and its transcript
// subcommands.
type Command struct {
	session  *session.Session
	target   string
	convDir  string
	username string
	raw      bool
	debug    bool
	subCmd   string
	arg      string
	input    io.Reader
}

// New builds a chat command. args holds the subcommand and its
// argument, both optional: no subcommand means a new conversation.
func New(sess *session.Session, target, convDir string, raw bool, args []string) *Command {
	username := "You"
	if currentUser, err := user.Current(); err == nil {
		username = currentUser.Username
	}
	subCmd := ""
	arg := ""
	if len(args) > 0 {
		subCmd = args[0]
	}
	if len(args) > 1 {
		arg = strings.Join(args[1:], "_")
	}
	return &Command{
		session:  sess,
		target:   target,
		convDir:  convDir,
		username: username,
		raw:      raw,
		debug:    misc.Truthy(os.Getenv("DEBUG")),
		subCmd:   subCmd,
		arg:      arg,
		input:    os.Stdin,
	}
}

func (c *Command) Run(ctx context.Context) error {
	if c.debug {
		ancli.PrintOK(fmt.Sprintf("chat command: %+v\n", c))
	}
	switch c.subCmd {
	case "", "new", "n":
		return c.chatNew(ctx)
	case "continue", "c":
		return c.chatContinue(ctx)
	case "list", "l":
		convs, err := List(c.convDir)
		if err == nil {
			printConversations(convs)
		}
		return err
	case "delete", "d":
		return c.chatDelete()
	case "help", "h":
		fmt.Print(chatUsage)
		return nil
	default:
		return fmt.Errorf("unknown subcommand: '%v'\n%v", c.subCmd, chatUsage)
	}
}

func (c *Command) chatNew(ctx context.Context) error {
	ancli.Noticef("connecting to: '%v'...\n", c.target)
	if err := c.session.Bind(ctx, c.target); err != nil {
		return err
	}
	ancli.Okf("connected to: '%v'. Use 'exit' or 'quit' to end the conversation.\n", c.target)
	return c.loop(ctx)
}

func (c *Command) chatContinue(ctx context.Context) error {
	if c.arg == "" {
		return errors.New("no conversation id given, see 'huny chat help'")
	}
	conv, err := c.findConversation(c.arg)
	if err != nil {
		return fmt.Errorf("failed to find conversation: %w", err)
	}
	target := conv.Target
	if target == "" {
		target = c.target
		conv.Target = target
	}
	ancli.Noticef("connecting to: '%v'...\n", target)
	if err := c.session.Resume(ctx, conv); err != nil {
		return err
	}
	for _, ex := range conv.Exchanges {
		fmt.Printf("%v: %v\n", ancli.ColoredMessage(ancli.CYAN, c.username), ex.Query)
		if err := utils.AttemptPrettyPrint(target, ex.Response, c.raw); err != nil {
			return fmt.Errorf("failed to print exchange: %w", err)
		}
	}
	return c.loop(ctx)
}

// findConversation resolves either a conversation id or an index into
// the listing, mirroring what 'huny chat list' prints.
func (c *Command) findConversation(idOrIndex string) (models.Conversation, error) {
	if idx, err := strconv.Atoi(idOrIndex); err == nil {
		convs, err := List(c.convDir)
		if err != nil {
			return models.Conversation{}, err
		}
		if idx < 0 || idx >= len(convs) {
			return models.Conversation{}, fmt.Errorf("conversation index '%v' out of range", idx)
		}
		return convs[idx], nil
	}
	return Load(c.convDir, idOrIndex)
}

func (c *Command) chatDelete() error {
	if c.arg == "" {
		return errors.New("no conversation id given, see 'huny chat help'")
	}
	conv, err := c.findConversation(c.arg)
	if err != nil {
		return fmt.Errorf("failed to find conversation: %w", err)
	}
	if err := Delete(c.convDir, conv.ID); err != nil {
		return err
	}
	ancli.Okf("deleted conversation: '%v'\n", conv.ID)
	return nil
}

// loop reads user turns until exit/quit/EOF or context cancellation.
// A failed turn is reported and the loop continues, the transcript is
// never touched by failures. On exit the transcript is persisted.
func (c *Command) loop(ctx context.Context) error {
	defer c.persist()
	reader := bufio.NewReader(c.input)
	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Printf("%v: ", ancli.ColoredMessage(ancli.CYAN, c.username))
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Println()
				return nil
			}
			return fmt.Errorf("failed to read user input: %w", err)
		}
		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "clear":
			c.session.Clear()
			ancli.Okf("conversation cleared\n")
			continue
		}

		stop := utils.StartSpinner(fmt.Sprintf("Querying %v...", c.session.Target()))
		response, err := c.session.Submit(ctx, line)
		stop()
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			if models.IsRetryable(err) {
				ancli.PrintWarn(fmt.Sprintf("%v\n", err))
				ancli.PrintWarn("check connection or endpoint status, then try again\n")
			} else {
				ancli.PrintErr(fmt.Sprintf("%v\n", err))
			}
			continue
		}
		if err := utils.AttemptPrettyPrint(c.session.Target(), response, c.raw); err != nil {
			return fmt.Errorf("failed to print response: %w", err)
		}
	}
}

// persist stores the transcript on the way out. Empty conversations
// are not worth a file.
func (c *Command) persist() {
	exchanges := c.session.Exchanges()
	if len(exchanges) == 0 {
		return
	}
	id := IDFromPrompt(exchanges[0].Query)
	if err := Save(c.convDir, c.session.Conversation(id)); err != nil {
		ancli.PrintWarn(fmt.Sprintf("failed to save conversation: %v\n", err))
		return
	}
	ancli.Okf("conversation saved as: '%v'\n", id)
}

func printConversations(convs []models.Conversation) {
	ancli.PrintOK(fmt.Sprintf("found '%v' conversations:\n", len(convs)))
	for i, conv := range convs {
		fmt.Printf("\t%v: %v (%v exchanges, target: %v)\n", i, conv.ID, len(conv.Exchanges), conv.Target)
	}
}
