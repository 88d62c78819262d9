package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cordialsys/xcmbridge/config/constants"
	vault "github.com/hashicorp/vault/api"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

type endpoint struct {
	Url       string  `yaml:"url,omitempty"`
	RateLimit float64 `yaml:"rate_limit,omitempty"`
}

type testConfig struct {
	Network string               `yaml:"network,omitempty"`
	Chains  map[string]*endpoint `yaml:"chains,omitempty"`
}

func (s *ConfigTestSuite) writeConfig(contents string) {
	path := filepath.Join(s.T().TempDir(), "xcmbridge.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(contents), 0o600))
	s.T().Setenv(constants.ConfigEnv, path)
}

func (s *ConfigTestSuite) TestRequireConfigOverridesDefaults() {
	require := s.Require()
	s.writeConfig(`
xcmbridge:
  chains:
    polkadot:
      url: wss://private.example
`)
	defaults := testConfig{
		Network: "polkadot",
		Chains: map[string]*endpoint{
			"polkadot": {Url: "wss://rpc.polkadot.io", RateLimit: 10},
			"acala":    {Url: "wss://acala-rpc-0.aca-api.network"},
		},
	}
	var cfg testConfig
	require.NoError(RequireConfig("xcmbridge", &cfg, defaults))
	require.Equal("polkadot", cfg.Network)
	require.Equal("wss://private.example", cfg.Chains["polkadot"].Url)
	require.EqualValues(10, cfg.Chains["polkadot"].RateLimit)
	require.Equal("wss://acala-rpc-0.aca-api.network", cfg.Chains["acala"].Url)
}

func (s *ConfigTestSuite) TestRequireConfigMissingFile() {
	require := s.Require()
	s.T().Setenv(constants.ConfigEnv, filepath.Join(s.T().TempDir(), "missing.yaml"))

	var cfg testConfig
	require.NoError(RequireConfig("xcmbridge", &cfg, testConfig{Network: "kusama"}))
	require.Equal("kusama", cfg.Network)

	err := RequireConfig("xcmbridge", &cfg, nil)
	require.ErrorContains(err, "could not read xcmbridge config")
}

func (s *ConfigTestSuite) TestRequireConfigWithoutDefaults() {
	require := s.Require()
	s.writeConfig(`
xcmbridge:
  network: kusama
other:
  network: ignored
`)
	var cfg testConfig
	require.NoError(RequireConfig(Section, &cfg, nil))
	require.Equal("kusama", cfg.Network)
	require.Empty(cfg.Chains)

	s.writeConfig("xcmbridge: [not, a, map")
	require.Error(RequireConfig(Section, &cfg, nil))
}

func (s *ConfigTestSuite) TestApplyDefaultsKeepsListsUnlessSet() {
	require := s.Require()
	type lists struct {
		Items []string `yaml:"items"`
		Name  string   `yaml:"name"`
	}
	var merged lists
	require.NoError(ApplyDefaults(lists{Items: []string{"a"}, Name: "x"}, lists{Name: "y"}, &merged))
	require.Equal([]string{"a"}, merged.Items)
	require.Equal("y", merged.Name)

	require.NoError(ApplyDefaults(lists{Items: []string{"a"}}, lists{Items: []string{"b", "c"}}, &merged))
	require.Equal([]string{"b", "c"}, merged.Items)
}

func (s *ConfigTestSuite) TestConfigureLogger() {
	require := s.Require()
	defer logrus.SetLevel(logrus.InfoLevel)

	ConfigureLogger("debug")
	require.Equal(logrus.DebugLevel, logrus.GetLevel())

	s.T().Setenv(LogLevelEnv, "warn")
	ConfigureLogger()
	require.Equal(logrus.WarnLevel, logrus.GetLevel())

	ConfigureLogger("not-a-level")
	require.Equal(logrus.InfoLevel, logrus.GetLevel())
}

func (s *ConfigTestSuite) TestGetSecretEnv() {
	require := s.Require()
	s.T().Setenv("XCTEST", "mysecret")
	secret, err := GetSecret("env:XCTEST")
	require.NoError(err)
	require.Equal("mysecret", secret)
}

func (s *ConfigTestSuite) TestGetSecretRaw() {
	require := s.Require()
	secret, err := NewRawSecret("a:b").Load()
	require.NoError(err)
	require.Equal("a:b", secret)
	require.True(HasTypePrefix(string(NewRawSecret("x"))))
	require.False(HasTypePrefix("gsm:x"))
}

func (s *ConfigTestSuite) TestGetSecretFileHomeErrFileNotFound() {
	require := s.Require()
	secret, err := GetSecret("file:~/config-in-home-missing")
	require.Equal("", secret)
	require.Error(err)
}

func (s *ConfigTestSuite) TestGetSecretErrNoColon() {
	require := s.Require()
	secret, err := GetSecret("invalid")
	require.Equal("", secret)
	require.EqualError(err, "invalid secret source for: ***")
}

func (s *ConfigTestSuite) TestGetSecretErrInvalidType() {
	require := s.Require()
	secret, err := GetSecret("invalid:value")
	require.Equal("", secret)
	require.EqualError(err, "invalid secret source for: ***")
}

type MockedVaultLoaded struct {
	data map[string]interface{}
}

var _ VaultLoader = &MockedVaultLoaded{}

func (l *MockedVaultLoaded) LoadSecretData(path string) (*vault.Secret, error) {
	data, ok := l.data[path]
	if !ok {
		return &vault.Secret{}, errors.New("path not found")
	}
	return &vault.Secret{
		Data: data.(map[string]interface{}),
	}, nil
}

func (s *ConfigTestSuite) TestGetSecretVault() {
	require := s.Require()
	previous := NewVaultClient
	defer func() { NewVaultClient = previous }()
	NewVaultClient = func(cfg *vault.Config) (VaultLoader, error) {
		vaultRes := `{
			"path1/to": {
				"data": {
					"secret": "mysecret"
				}
			},
			"path2/to": {
				"data": {
					"secret2": "mysecret2"
				}
			}
		}`
		data := make(map[string]interface{})
		err := json.Unmarshal([]byte(vaultRes), &data)
		require.NoError(err)

		return &MockedVaultLoaded{
			data: data,
		}, nil
	}

	_, err := GetSecret("vault:wrong_args")
	require.ErrorContains(err, "vault secret has 2 comma separated arguments")
	_, err = GetSecret("vault:wrong_args,aaa,bbb")
	require.ErrorContains(err, "vault secret has 2 comma separated arguments")

	_, err = GetSecret("vault:url,aaa")
	require.ErrorContains(err, "malformed vault secret")

	_, err = GetSecret("vault:url,aaa/secret")
	require.EqualError(err, "path not found")

	secret, err := GetSecret("vault:https://example.com,path1/to/secret")
	require.NoError(err)
	require.Equal("mysecret", secret)

	secret, err = GetSecret("vault:https://example.com,path2/to/secret2")
	require.NoError(err)
	require.Equal("mysecret2", secret)

	secret, err = GetSecret("vault:https://example.com,path2/to/secret_none")
	require.NoError(err)
	require.Equal("", secret)
}

func (s *ConfigTestSuite) TestGetSecretFileTrimmed() {
	require := s.Require()

	path := filepath.Join(s.T().TempDir(), "secret")
	require.NoError(os.WriteFile(path, []byte(" MY SECRET \n"), 0o600))

	sec, err := GetSecret("file:" + path)
	require.NoError(err)
	require.Equal("MY SECRET", sec)
}
