package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"store": map[string]interface{}{
			"path":  "messages.json", // relative to the working directory
			"watch": true,
		},
		"smtp": map[string]interface{}{
			"host":      "smtp.gmail.com",
			"port":      587,
			"username":  "", // empty disables notifications
			"password":  "",
			"recipient": "",
			"timeout":   30,
		},
		"log": map[string]interface{}{
			"level":  "info",
			"format": "console",
		},
		"ui": map[string]interface{}{
			"colored_output": true,
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}

func GetDefaultConfigPath() string {
	return "~/.reminder-notifier/config.yaml"
}
