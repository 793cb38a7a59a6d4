package utils

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
)

// AttemptPrettyPrint by first checking if the glow command is
// available, and if so, pretty print the response as markdown. If not
// found, simply print the message as is.
func AttemptPrettyPrint(label, content string, raw bool) error {
	if raw {
		fmt.Println(content)
		return nil
	}
	color := ancli.BLUE
	cmd := exec.Command("glow", "--version")
	if err := cmd.Run(); err != nil {
		fmt.Printf("%v: %v\n", ancli.ColoredMessage(color, label), content)
		return nil
	}

	cmd = exec.Command("glow")
	cmd.Stdin = bytes.NewBufferString(content)
	cmd.Stdout = os.Stdout
	fmt.Printf("%v:", ancli.ColoredMessage(color, label))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run glow: %w", err)
	}
	return nil
}
