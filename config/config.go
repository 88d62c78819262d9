package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/cordialsys/xcmbridge/config/constants"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Section is the root key of the bridge settings in xcmbridge.yaml.
const Section = "xcmbridge"

// newViper looks for the file named by XCMBRIDGE_CONFIG, else xcmbridge.yaml in the
// working directory and then in the home directory.
func newViper() *viper.Viper {
	// own instance, the host program may use the global one
	v := viper.New()
	v.SetConfigType("yaml")
	if path := os.Getenv(constants.ConfigEnv); path != "" {
		v.SetConfigFile(path)
		return v
	}
	v.SetConfigName(constants.ConfigName)
	v.AddConfigPath(".")
	v.AddConfigPath(constants.DefaultHome)
	return v
}

func isMissing(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func copyYaml(src interface{}, dst interface{}) error {
	bz, err := yaml.Marshal(src)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(bz, dst)
}

// RequireConfig decodes one section of the config file into dst, on top of defaults.
// Without a file dst becomes a copy of defaults; with nil defaults the file must exist.
func RequireConfig(section string, dst interface{}, defaults interface{}) error {
	v := newViper()
	if err := v.ReadInConfig(); err != nil {
		if defaults != nil && isMissing(err) {
			logrus.WithField("section", section).Debug("no config file, using embedded defaults")
			return copyYaml(defaults, dst)
		}
		return fmt.Errorf("could not read %s config: %w", section, err)
	}
	logrus.WithField("file", v.ConfigFileUsed()).Debug("loaded config")

	// viper decodes with mapstructure tags only, the config types use yaml tags
	if err := copyYaml(v.GetStringMap(section), dst); err != nil {
		return fmt.Errorf("invalid %s config: %w", section, err)
	}
	if defaults != nil {
		return ApplyDefaults(defaults, dst, dst)
	}
	return nil
}
