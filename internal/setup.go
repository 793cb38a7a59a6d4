package internal

import (
	"errors"
	"fmt"
	"os"
	"path"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/hunyport/huny/internal/ask"
	"github.com/hunyport/huny/internal/chat"
	"github.com/hunyport/huny/internal/gradio"
	"github.com/hunyport/huny/internal/models"
	"github.com/hunyport/huny/internal/session"
	"github.com/hunyport/huny/internal/utils"
	"github.com/hunyport/huny/internal/web"
	"github.com/joho/godotenv"
)

type Mode int

const (
	HELP Mode = iota
	ASK
	CHAT
	SERVE
	VERSION
)

func getModeFromArgs(cmd string) (Mode, error) {
	switch cmd {
	case "ask", "a":
		return ASK, nil
	case "chat", "c":
		return CHAT, nil
	case "serve", "s":
		return SERVE, nil
	case "help", "h":
		return HELP, nil
	case "version", "v":
		return VERSION, nil
	default:
		return HELP, fmt.Errorf("unknown command: '%v'", cmd)
	}
}

// applyEnvDefaults fills unset configuration from the environment and
// finally from the built-in defaults. Flags always win.
func applyEnvDefaults(conf *Configurations) {
	if conf.Target == "" {
		conf.Target = os.Getenv("HUNY_DEFAULT_URL")
	}
	if conf.Target == "" {
		conf.Target = gradio.DefaultTarget
	}
	if conf.Endpoint == "" {
		conf.Endpoint = os.Getenv("HUNY_ENDPOINT")
	}
	if conf.Endpoint == "" {
		conf.Endpoint = gradio.DefaultAPI
	}
	if conf.Port == 0 {
		if p, err := strconv.Atoi(os.Getenv("PORT")); err == nil && p > 0 {
			conf.Port = p
		}
	}
	if conf.Port == 0 {
		conf.Port = 5000
	}
}

// Setup resolves the CLI arguments into a runnable command.
func Setup(cliArgs []string, usage string) (models.Command, error) {
	flagSet, args, err := parseFlags(defaultFlags, cliArgs)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		fmt.Print(usage)
		os.Exit(0)
	}
	mode, err := getModeFromArgs(args[0])
	if err != nil {
		return nil, err
	}

	switch mode {
	case ASK:
		applyEnvDefaults(&flagSet)
		prompt := strings.Join(args[1:], " ")
		if strings.TrimSpace(prompt) == "" {
			return nil, errors.New("no prompt given, usage: 'huny ask <prompt>'")
		}
		return ask.New(flagSet.Target, flagSet.Endpoint, prompt, flagSet.Raw, flagSet.Output), nil
	case CHAT:
		applyEnvDefaults(&flagSet)
		confDir, err := utils.GetHunyConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to find config dir: %w", err)
		}
		if err := utils.CreateConfigDir(confDir); err != nil {
			return nil, fmt.Errorf("failed to create config dir: %w", err)
		}
		sess := session.New(nil, gradio.WithAPI(flagSet.Endpoint))
		convDir := path.Join(confDir, "conversations")
		return chat.New(sess, flagSet.Target, convDir, flagSet.Raw, args[1:]), nil
	case SERVE:
		// .env only matters for serve mode, matching how the portal is
		// deployed.
		_ = godotenv.Load()
		applyEnvDefaults(&flagSet)
		return web.New(web.Config{
			Port:          flagSet.Port,
			DefaultTarget: flagSet.Target,
			API:           flagSet.Endpoint,
		}, nil)
	case HELP:
		fmt.Print(usage)
		os.Exit(0)
	case VERSION:
		bi, ok := debug.ReadBuildInfo()
		if !ok {
			return nil, errors.New("failed to read build info")
		}
		fmt.Printf("version: %v, go version: %v, checksum: %v\n", bi.Main.Version, bi.GoVersion, bi.Main.Sum)
		os.Exit(0)
	}
	return nil, fmt.Errorf("unknown mode: %v", mode)
}
