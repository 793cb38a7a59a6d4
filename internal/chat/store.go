// Package chat holds the interactive chat command and the transcript
// store: conversations serialized as JSON files under the huny config
// dir, one file per conversation, exchanges in insertion order.
package chat

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/hunyport/huny/internal/models"
)

// IDFromPrompt derives a conversation id from the first five words of
// the prompt, joined by underscores.
func IDFromPrompt(prompt string) string {
	words := strings.Fields(prompt)
	if len(words) > 5 {
		words = words[:5]
	}
	id := strings.Join(words, "_")
	id = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '-'
		}
		return r
	}, id)
	if id == "" {
		id = "unnamed_conversation"
	}
	return id
}

// FromPath reads one conversation from a JSON file.
func FromPath(filePath string) (models.Conversation, error) {
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK(fmt.Sprintf("reading conversation from '%v'\n", filePath))
	}
	b, err := os.ReadFile(filePath)
	if err != nil {
		return models.Conversation{}, fmt.Errorf("failed to read file: %w", err)
	}
	var conv models.Conversation
	if err := json.Unmarshal(b, &conv); err != nil {
		return models.Conversation{}, fmt.Errorf("failed to decode JSON: %w", err)
	}
	return conv, nil
}

// Save writes conv to '<convDir>/<id>.json'.
func Save(convDir string, conv models.Conversation) error {
	b, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	fileName := path.Join(convDir, conv.ID+".json")
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK(fmt.Sprintf("saving conversation to: '%v'\n", fileName))
	}
	return os.WriteFile(fileName, b, 0o644)
}

// Load reads the conversation with the given id from convDir.
func Load(convDir, id string) (models.Conversation, error) {
	return FromPath(path.Join(convDir, id+".json"))
}

// List returns every stored conversation in convDir.
func List(convDir string) ([]models.Conversation, error) {
	files, err := os.ReadDir(convDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	var ret []models.Conversation
	for _, file := range files {
		if !strings.HasSuffix(file.Name(), ".json") {
			continue
		}
		conv, err := FromPath(path.Join(convDir, file.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to get conversation: %w", err)
		}
		ret = append(ret, conv)
	}
	return ret, nil
}

// Delete removes the conversation with the given id from convDir.
func Delete(convDir, id string) error {
	if err := os.Remove(path.Join(convDir, id+".json")); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}
