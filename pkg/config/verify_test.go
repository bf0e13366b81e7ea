package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	validConfig := func() *Config {
		return &Config{
			Server: ServerConfig{Listen: ":8080", Timeout: 30 * time.Second},
			LLM:    LLMConfig{Endpoint: "http://localhost:8080", APIKey: "test-key", Model: "test-model"},
			SMTP:   SMTPConfig{Host: "smtp.example.com", From: "dossier@example.com"},
			Dossiers: []DossierConfig{
				{Name: "tech", Recipient: "reader@example.com", Feeds: []string{"https://example.com/rss"}, Frequency: "daily"},
			},
		}
	}

	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{name: "valid config", modify: func(*Config) {}},
		{name: "missing server listen", modify: func(c *Config) { c.Server.Listen = "" },
			wantErr: true, errMsg: "server.listen is required"},
		{name: "missing server timeout", modify: func(c *Config) { c.Server.Timeout = 0 },
			wantErr: true, errMsg: "server.timeout is required"},
		{name: "dossier without recipient", modify: func(c *Config) { c.Dossiers[0].Recipient = "" },
			wantErr: true, errMsg: "dossiers[0].recipient is required"},
		{name: "dossier without feeds", modify: func(c *Config) { c.Dossiers[0].Feeds = nil },
			wantErr: true, errMsg: "dossiers[0].feeds is required"},
		{name: "unknown frequency", modify: func(c *Config) { c.Dossiers[0].Frequency = "hourly" },
			wantErr: true, errMsg: `frequency "hourly" is not allowed`},
		{name: "extraction enabled without timeout", modify: func(c *Config) { c.Extraction.Enabled = true },
			wantErr: true, errMsg: "extraction.timeout is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)
			err := VerifyAgainstEmbeddedSchema(cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestFrequencyEnum(t *testing.T) {
	schema := map[string]interface{}{
		"$defs": map[string]interface{}{
			"DossierConfig": map[string]interface{}{
				"properties": map[string]interface{}{
					"frequency": map[string]interface{}{"enum": []interface{}{"daily", "weekly", "monthly"}},
				},
			},
		},
	}
	assert.Equal(t, map[string]bool{"daily": true, "weekly": true, "monthly": true}, frequencyEnum(schema))
	assert.Empty(t, frequencyEnum(map[string]interface{}{}))
}

func TestGenerateSchema(t *testing.T) {
	schema, err := GenerateSchema()
	require.NoError(t, err)
	require.NotNil(t, schema)
	assert.NotEmpty(t, schema.Definitions)
	assert.Contains(t, schema.Definitions, "DossierConfig")
}
