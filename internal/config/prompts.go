package config

import (
	"fmt"

	"github.com/bobbyohyeah/skyebot-support/internal/domain"
	"github.com/spf13/viper"
)

// Prompts holds the fixed system-instruction text per output modality.
type Prompts struct {
	Email string `mapstructure:"system_instruction_email"`
	Chat  string `mapstructure:"system_instruction_chat"`
	Voice string `mapstructure:"system_instruction_voice"`
}

// LoadPrompts reads the system-instruction file (JSON, one key per
// modality). A missing or unreadable file is fatal to startup: no
// instructions, no usable answers.
func LoadPrompts(path string) (*Prompts, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read prompts file %s: %w", path, err)
	}

	var p Prompts
	if err := v.Unmarshal(&p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal prompts: %w", err)
	}
	return &p, nil
}

// For returns the system instruction for the given output modality.
func (p *Prompts) For(m domain.Modality) (string, error) {
	var text string
	switch m {
	case domain.ModalityEmail:
		text = p.Email
	case domain.ModalityChat:
		text = p.Chat
	case domain.ModalityVoice:
		text = p.Voice
	default:
		return "", fmt.Errorf("unknown output modality %q", m)
	}
	if text == "" {
		return "", fmt.Errorf("no system instruction configured for modality %q", m)
	}
	return text, nil
}
