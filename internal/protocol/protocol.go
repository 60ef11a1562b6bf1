// Package protocol holds the embedded interview question protocol. The
// protocol is compiled into the binary so every invocation runs the exact
// same question sequence.
package protocol

import (
	_ "embed"
	"fmt"

	"github.com/probelab/interview-cli/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var questionsYAML []byte

type fileSchema struct {
	SystemPrompt string           `yaml:"system_prompt"`
	Questions    []questionSchema `yaml:"questions"`
}

type questionSchema struct {
	Ordinal int    `yaml:"ordinal"`
	Section string `yaml:"section"`
	Prompt  string `yaml:"prompt"`
}

// Load parses and validates the embedded protocol, returning the system
// framing prompt and the ordered question sequence.
func Load() (string, domain.Protocol, error) {
	var file fileSchema
	if err := yaml.Unmarshal(questionsYAML, &file); err != nil {
		return "", nil, fmt.Errorf("decode embedded protocol: %w", err)
	}

	if file.SystemPrompt == "" {
		return "", nil, fmt.Errorf("embedded protocol missing system prompt")
	}

	questions := make(domain.Protocol, 0, len(file.Questions))
	for _, question := range file.Questions {
		questions = append(questions, domain.Question{
			Ordinal: question.Ordinal,
			Section: question.Section,
			Prompt:  question.Prompt,
		})
	}

	if err := questions.Validate(); err != nil {
		return "", nil, fmt.Errorf("validate embedded protocol: %w", err)
	}

	return file.SystemPrompt, questions, nil
}
