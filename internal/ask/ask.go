// Package ask implements the one-shot query command: connect, dispatch
// a single prompt, render or persist the response, exit.
package ask

import (
	"context"
	"fmt"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/hunyport/huny/internal/gradio"
	"github.com/hunyport/huny/internal/models"
	"github.com/hunyport/huny/internal/utils"
)

type dialFunc func(ctx context.Context, target string) (models.Predictor, error)

// Command holds everything needed for one query round trip.
type Command struct {
	target   string
	endpoint string
	prompt   string
	raw      bool
	output   string
	dial     dialFunc
}

func New(target, endpoint, prompt string, raw bool, output string) *Command {
	return &Command{
		target:   target,
		endpoint: endpoint,
		prompt:   prompt,
		raw:      raw,
		output:   output,
		dial: func(ctx context.Context, target string) (models.Predictor, error) {
			return gradio.Connect(ctx, target, gradio.WithAPI(endpoint))
		},
	}
}

func (c *Command) Run(ctx context.Context) error {
	ancli.Noticef("connecting to: '%v'...\n", c.target)
	conn, err := c.dial(ctx, c.target)
	if err != nil {
		return err
	}
	ancli.Okf("connected to: '%v'\n", c.target)

	stop := utils.StartSpinner(fmt.Sprintf("Querying %v...", c.target))
	response, err := conn.Predict(ctx, c.prompt)
	stop()
	if err != nil {
		return err
	}

	if c.output != "" {
		if err := utils.WriteResponseFile(c.output, response); err != nil {
			return fmt.Errorf("failed to save response: %w", err)
		}
		ancli.Okf("response saved to: '%v'\n", c.output)
		return nil
	}
	return utils.AttemptPrettyPrint(c.target, response, c.raw)
}
