package config

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var schema map[string]interface{}
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := validateEnums(cfg, schema); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout is required")
	}

	for i, d := range cfg.Dossiers {
		if d.Recipient == "" {
			return fmt.Errorf("dossiers[%d].recipient is required", i)
		}
		if len(d.Feeds) == 0 {
			return fmt.Errorf("dossiers[%d].feeds is required", i)
		}
	}

	if cfg.Extraction.Enabled && cfg.Extraction.Timeout == 0 {
		return fmt.Errorf("extraction.timeout is required when extraction is enabled")
	}

	return nil
}

// validateEnums checks dossier frequencies against the enum declared in the schema
func validateEnums(cfg *Config, schema map[string]interface{}) error {
	allowed := frequencyEnum(schema)
	if len(allowed) == 0 {
		return nil
	}
	for i, d := range cfg.Dossiers {
		if !allowed[d.Frequency] {
			return fmt.Errorf("dossiers[%d].frequency %q is not allowed", i, d.Frequency)
		}
	}
	return nil
}

func frequencyEnum(schema map[string]interface{}) map[string]bool {
	defs, _ := schema["$defs"].(map[string]interface{})
	dossier, _ := defs["DossierConfig"].(map[string]interface{})
	props, _ := dossier["properties"].(map[string]interface{})
	freq, _ := props["frequency"].(map[string]interface{})
	values, _ := freq["enum"].([]interface{})

	res := make(map[string]bool, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			res[s] = true
		}
	}
	return res
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
