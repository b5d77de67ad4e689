package config

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

// newFakeVault returns a test server that answers the health check and serves
// KVv2 secrets for the given path -> field -> value mapping.
func newFakeVault(t *testing.T, secrets map[string]map[string]string, hits *atomic.Int64) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		if r.URL.Path == "/v1/sys/health" {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"initialized":true,"sealed":false,"standby":false,"version":"1.15.0"}`)
			return
		}

		path := r.URL.Path[len("/v1/"):]
		data, ok := secrets[path]
		if !ok {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{"data":{`)
		first := true
		for k, v := range data {
			if !first {
				fmt.Fprint(w, `,`)
			}
			fmt.Fprintf(w, `%q:%q`, k, v)
			first = false
		}
		fmt.Fprint(w, `}}}`)
	}))
}

func TestApplyVaultSecretsDisabled(t *testing.T) {
	config := &Config{
		Vault: VaultConfig{Enabled: false},
	}
	config.AI.Providers.Gemini.APIKey = "file-key"

	if err := ApplyVaultSecrets(config, nil); err != nil {
		t.Fatalf("ApplyVaultSecrets with vault disabled returned error: %v", err)
	}

	if config.AI.Providers.Gemini.APIKey != "file-key" {
		t.Errorf("Expected Gemini key to stay 'file-key', got '%s'",
			config.AI.Providers.Gemini.APIKey)
	}
}

func TestApplyVaultSecretsOverridesConfig(t *testing.T) {
	var hits atomic.Int64
	server := newFakeVault(t, map[string]map[string]string{
		"secret/data/friede/server": {"keys": "alpha, beta"},
		"secret/data/friede/gemini": {"api_key": "vault-gemini-key"},
		"secret/data/friede/openai": {"api_key": "vault-openai-key"},
		"secret/data/friede/judge":  {"api_key": "vault-judge-key"},
	}, &hits)
	defer server.Close()

	config := &Config{
		Vault: VaultConfig{
			Enabled: true,
			Address: server.URL,
			Token:   "test-token",
			Secrets: VaultSecrets{
				APIKeys:   "secret/data/friede/server",
				GeminiKey: "secret/data/friede/gemini",
				OpenAIKey: "secret/data/friede/openai",
				JudgeKey:  "secret/data/friede/judge",
			},
		},
	}
	config.AI.Providers.Gemini.APIKey = "file-key"
	config.AI.Providers.OpenAI.APIKey = "file-openai-key"

	if err := ApplyVaultSecrets(config, nil); err != nil {
		t.Fatalf("ApplyVaultSecrets failed: %v", err)
	}

	if hits.Load() == 0 {
		t.Fatal("Expected requests against the vault server, got none")
	}

	if config.AI.Providers.Gemini.APIKey != "vault-gemini-key" {
		t.Errorf("Expected Gemini key from vault to override config, got '%s'",
			config.AI.Providers.Gemini.APIKey)
	}
	if config.AI.APIKey != "vault-gemini-key" {
		t.Errorf("Expected default AI key to follow the vault Gemini key, got '%s'",
			config.AI.APIKey)
	}
	if config.AI.Providers.OpenAI.APIKey != "vault-openai-key" {
		t.Errorf("Expected OpenAI token from vault, got '%s'",
			config.AI.Providers.OpenAI.APIKey)
	}
	if config.Judge.APIKey != "vault-judge-key" {
		t.Errorf("Expected Judge0 key from vault, got '%s'", config.Judge.APIKey)
	}

	expectedKeys := []string{"alpha", "beta"}
	if len(config.Server.APIKeys) != len(expectedKeys) {
		t.Fatalf("Expected %d server API keys, got %d",
			len(expectedKeys), len(config.Server.APIKeys))
	}
	for i, key := range expectedKeys {
		if config.Server.APIKeys[i] != key {
			t.Errorf("Expected server API key %d to be '%s', got '%s'",
				i, key, config.Server.APIKeys[i])
		}
	}
}

func TestApplyVaultSecretsMissingSecret(t *testing.T) {
	server := newFakeVault(t, map[string]map[string]string{}, nil)
	defer server.Close()

	config := &Config{
		Vault: VaultConfig{
			Enabled: true,
			Address: server.URL,
			Token:   "test-token",
			Secrets: VaultSecrets{
				GeminiKey: "secret/data/friede/missing",
			},
		},
	}

	err := ApplyVaultSecrets(config, nil)
	if err == nil {
		t.Fatal("Expected error for missing secret path, got nil")
	}
}

func TestResolveVaultToken(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(tokenFile, []byte("  file-token\n"), 0600); err != nil {
		t.Fatalf("Failed to write token file: %v", err)
	}

	tests := []struct {
		name      string
		config    VaultConfig
		expected  string
		expectErr bool
	}{
		{
			name:     "inline token wins",
			config:   VaultConfig{Token: "inline-token", TokenFile: tokenFile},
			expected: "inline-token",
		},
		{
			name:     "token file trimmed",
			config:   VaultConfig{TokenFile: tokenFile},
			expected: "file-token",
		},
		{
			name:      "missing token",
			config:    VaultConfig{},
			expectErr: true,
		},
		{
			name:      "unreadable token file",
			config:    VaultConfig{TokenFile: filepath.Join(t.TempDir(), "absent")},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := resolveVaultToken(tt.config)
			if tt.expectErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveVaultToken failed: %v", err)
			}
			if token != tt.expected {
				t.Errorf("Expected token '%s', got '%s'", tt.expected, token)
			}
		})
	}
}
