package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AssistantPromptConfig mirrors assistant_prompt.yaml
type AssistantPromptConfig struct {
	Assistant struct {
		Name     string `yaml:"name"`
		Role     string `yaml:"role"`
		Language string `yaml:"language"`
	} `yaml:"assistant"`

	Expertise []string `yaml:"expertise"`

	ResponseGuidelines []struct {
		Priority  int    `yaml:"priority"`
		Condition string `yaml:"condition"`
		Action    string `yaml:"action"`
	} `yaml:"response_guidelines"`

	Tone struct {
		Style       string `yaml:"style"`
		Personality string `yaml:"personality"`
	} `yaml:"tone"`

	Constraints []string `yaml:"constraints"`

	Metadata struct {
		Version     string `yaml:"version"`
		LastUpdated string `yaml:"last_updated"`
	} `yaml:"metadata"`
}

// LoadAssistantPrompt reads the assistant persona from a YAML file
func LoadAssistantPrompt(path string) (*AssistantPromptConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read assistant prompt %s: %w", path, err)
	}

	var config AssistantPromptConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse assistant prompt %s: %w", path, err)
	}
	if strings.TrimSpace(config.Assistant.Role) == "" {
		return nil, fmt.Errorf("assistant prompt %s: assistant.role is required", path)
	}
	return &config, nil
}

// BuildPrompt renders the persona as the priming text of every chat
func (c *AssistantPromptConfig) BuildPrompt() string {
	var sb strings.Builder

	if c.Assistant.Name != "" {
		sb.WriteString(fmt.Sprintf("Sen %s tizimisining %s.", c.Assistant.Name, c.Assistant.Role))
	} else {
		sb.WriteString(fmt.Sprintf("Sen %s.", c.Assistant.Role))
	}
	if c.Assistant.Language != "" {
		sb.WriteString(fmt.Sprintf(" Fermerlarga %s tilida javob berasan.", c.Assistant.Language))
	}
	sb.WriteString("\n")

	if len(c.Expertise) > 0 {
		sb.WriteString("\nMutaxassislik:\n")
		for _, e := range c.Expertise {
			sb.WriteString(fmt.Sprintf("- %s\n", e))
		}
	}

	if len(c.ResponseGuidelines) > 0 {
		sb.WriteString("\nJavob berish tartibi:\n")
		for _, g := range c.ResponseGuidelines {
			sb.WriteString(fmt.Sprintf("%d. %s → %s\n", g.Priority, g.Condition, g.Action))
		}
	}

	if c.Tone.Style != "" || c.Tone.Personality != "" {
		sb.WriteString("\nUslub:\n")
		if c.Tone.Style != "" {
			sb.WriteString(fmt.Sprintf("- %s\n", c.Tone.Style))
		}
		if c.Tone.Personality != "" {
			sb.WriteString(fmt.Sprintf("- %s\n", c.Tone.Personality))
		}
	}

	if len(c.Constraints) > 0 {
		sb.WriteString("\nCheklovlar:\n")
		for _, constraint := range c.Constraints {
			sb.WriteString(fmt.Sprintf("- %s\n", constraint))
		}
	}

	return strings.TrimSpace(sb.String())
}
