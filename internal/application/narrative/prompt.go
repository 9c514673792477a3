package narrative

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed prompts/*.txt
var promptsFS embed.FS

type PromptID string

const PromptMFAV1 PromptID = "mfa_v1"

// Prompts caches the chat templates built from the embedded prompt files
type Prompts struct {
	mu    sync.RWMutex
	cache map[PromptID]einoprompt.ChatTemplate
}

func NewPrompts() *Prompts {
	return &Prompts{cache: make(map[PromptID]einoprompt.ChatTemplate)}
}

func (p *Prompts) ChatTemplate(id PromptID) (einoprompt.ChatTemplate, error) {
	p.mu.RLock()
	if tpl, ok := p.cache[id]; ok {
		p.mu.RUnlock()
		return tpl, nil
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if tpl, ok := p.cache[id]; ok {
		return tpl, nil
	}

	system, err := readPrompt(id, "system")
	if err != nil {
		return nil, err
	}
	user, err := readPrompt(id, "user")
	if err != nil {
		return nil, err
	}

	tpl := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage(system),
		schema.UserMessage(user),
	)
	p.cache[id] = tpl
	return tpl, nil
}

func readPrompt(id PromptID, role string) (string, error) {
	b, err := promptsFS.ReadFile(fmt.Sprintf("prompts/%s.%s.txt", id, role))
	if err != nil {
		return "", fmt.Errorf("unknown prompt id %s: %w", id, err)
	}
	return strings.TrimSpace(string(b)), nil
}
