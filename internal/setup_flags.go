package internal

import (
	"flag"
	"fmt"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/hunyport/huny/internal/utils"
)

type Configurations struct {
	// Target is the space to talk to, a URL or '<owner>/<name>' id.
	Target string
	// Endpoint is the remote procedure name on the space.
	Endpoint string
	// Raw disables markdown pretty-printing.
	Raw bool
	// Output, when set, writes the ask response to this file instead
	// of printing it.
	Output string
	// Port for serve mode.
	Port int
}

var defaultFlags = Configurations{
	Target:   "",
	Endpoint: "",
	Raw:      false,
	Output:   "",
	Port:     0,
}

func parseFlags(defaults Configurations, args []string) (Configurations, []string, error) {
	fs := flag.NewFlagSet("huny", flag.ContinueOnError)

	uShort := fs.String("u", defaults.Target, "Set the space URL or id to connect to. Mutually exclusive with -url.")
	uLong := fs.String("url", defaults.Target, "Set the space URL or id to connect to. Mutually exclusive with -u.")

	eShort := fs.String("e", defaults.Endpoint, "Set the remote procedure name on the space. Mutually exclusive with -endpoint.")
	eLong := fs.String("endpoint", defaults.Endpoint, "Set the remote procedure name on the space. Mutually exclusive with -e.")

	rShort := fs.Bool("r", defaults.Raw, "Set to true to print raw output (don't attempt to use 'glow').")
	rLong := fs.Bool("raw", defaults.Raw, "Set to true to print raw output (don't attempt to use 'glow').")

	oShort := fs.String("o", defaults.Output, "Save the ask response to this file instead of printing it. Mutually exclusive with -output.")
	oLong := fs.String("output", defaults.Output, "Save the ask response to this file instead of printing it. Mutually exclusive with -o.")

	pShort := fs.Int("p", defaults.Port, "Set the port for serve mode. Mutually exclusive with -port.")
	pLong := fs.Int("port", defaults.Port, "Set the port for serve mode. Mutually exclusive with -p.")

	if err := fs.Parse(args); err != nil {
		return Configurations{}, []string{}, fmt.Errorf("failed to parse args: %w", err)
	}
	postParseArgs := fs.Args()

	target, err := utils.ReturnNonDefault(*uShort, *uLong, defaults.Target)
	exitWithFlagError(err, "u", "url")
	endpoint, err := utils.ReturnNonDefault(*eShort, *eLong, defaults.Endpoint)
	exitWithFlagError(err, "e", "endpoint")
	output, err := utils.ReturnNonDefault(*oShort, *oLong, defaults.Output)
	exitWithFlagError(err, "o", "output")
	port, err := utils.ReturnNonDefault(*pShort, *pLong, defaults.Port)
	exitWithFlagError(err, "p", "port")
	raw := *rShort || *rLong

	return Configurations{
		Target:   target,
		Endpoint: endpoint,
		Raw:      raw,
		Output:   output,
		Port:     port,
	}, postParseArgs, nil
}

func exitWithFlagError(err error, shortFlag, longFlag string) {
	if err != nil {
		ancli.PrintErr(fmt.Sprintf("flags '-%v' and '-%v' are mutually exclusive, example: 'huny -%v <value> ask \"<prompt>\"'\n", shortFlag, longFlag, shortFlag))
		os.Exit(1)
	}
}
