package config

import (
	"errors"
	"strings"

	vault "github.com/hashicorp/vault/api"
)

// VaultLoader reads the secret stored at a kv path.
type VaultLoader interface {
	LoadSecretData(path string) (*vault.Secret, error)
}

type vaultClient struct {
	*vault.Client
}

var _ VaultLoader = &vaultClient{}

func (c *vaultClient) LoadSecretData(path string) (*vault.Secret, error) {
	secret, err := c.Logical().Read(path)
	if err != nil {
		return nil, err
	}
	if secret == nil {
		// nothing stored at path
		return &vault.Secret{}, nil
	}
	return secret, nil
}

// NewVaultClient connects to the vault server of a secret reference. VAULT_TOKEN is read from the env.
var NewVaultClient = func(cfg *vault.Config) (VaultLoader, error) {
	cli, err := vault.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &vaultClient{Client: cli}, nil
}

// loadVault resolves "URL,PATH/KEY" to the KEY entry of the kv v2 secret at PATH.
func loadVault(ref string) (string, error) {
	address, fullPath, ok := strings.Cut(ref, ",")
	if !ok || strings.Contains(fullPath, ",") {
		return "", errors.New("vault secret has 2 comma separated arguments (url,path)")
	}
	idx := strings.LastIndex(fullPath, "/")
	if idx <= 0 || idx == len(fullPath)-1 {
		return "", errors.New("malformed vault secret, expected url,path/key")
	}
	path, key := fullPath[:idx], fullPath[idx+1:]

	client, err := NewVaultClient(&vault.Config{Address: address})
	if err != nil {
		return "", err
	}
	secret, err := client.LoadSecretData(path)
	if err != nil {
		return "", err
	}
	data, _ := secret.Data["data"].(map[string]interface{})
	value, _ := data[key].(string)
	return strings.TrimSpace(value), nil
}
