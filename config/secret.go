package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Secret is a reference to a credential, such as the api key of an rpc provider:
// "env:ONFINALITY_API_KEY", "file:~/keys/dwellir" or "vault:https://vault,path/to/key".
type Secret string

type SecretType string

var Env SecretType = "env"
var Vault SecretType = "vault"
var Raw SecretType = "raw"
var File SecretType = "file"

var errInvalidSecret = errors.New("invalid secret source for: ***")

func (s Secret) Load() (string, error) {
	return GetSecret(string(s))
}

func NewRawSecret(secret string) Secret {
	return Secret(fmt.Sprintf("%s:%s", Raw, secret))
}

func HasTypePrefix(secretRef string) bool {
	kind, _, _ := strings.Cut(secretRef, ":")
	switch SecretType(kind) {
	case Env, Vault, Raw, File:
		return true
	}
	return false
}

func loadFile(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		path = strings.Replace(path, "~", os.Getenv("HOME"), 1)
	}
	bz, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(bz)), nil
}

// GetSecret dereferences a secret reference. The error never includes the reference itself.
func GetSecret(ref string) (string, error) {
	kind, value, ok := strings.Cut(ref, ":")
	if !ok {
		return "", errInvalidSecret
	}
	switch SecretType(kind) {
	case Env:
		return strings.TrimSpace(os.Getenv(value)), nil
	case Raw:
		return value, nil
	case File:
		return loadFile(value)
	case Vault:
		return loadVault(value)
	}
	return "", errInvalidSecret
}
