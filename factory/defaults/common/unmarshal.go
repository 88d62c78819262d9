package common

import (
	"gopkg.in/yaml.v3"
)

// Unmarshal parses embedded yaml. Embedded tables are part of the build, so a parse error panics.
func Unmarshal[T any](name string, data []byte) T {
	var value T
	if err := yaml.Unmarshal(data, &value); err != nil {
		panic(name + ": " + err.Error())
	}
	return value
}
