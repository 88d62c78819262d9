package config

import (
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"
)

// IsAllowedOverrideType reports whether a configured value replaces its default.
// Maps merge instead, and empty lists keep the default list.
func IsAllowedOverrideType(v interface{}) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Map:
		return false
	case reflect.Array, reflect.Slice:
		return reflect.ValueOf(v).Len() > 0
	case reflect.Int, reflect.Bool, reflect.String, reflect.Float64:
		// enable overriding with "", 0, false
		// warning: config objects should always use "omitempty" or _all_ fields will get overwritten
		return true
	}
	//nolint
	if reflect.ValueOf(v).IsZero() {
		return false
	}
	return true
}

func IsMap(v interface{}) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Map
}

func RecursiveOverride(defaults map[string]interface{}, overrides map[string]interface{}) {
	for key, val := range overrides {
		existingVal, ok := defaults[key]
		if !ok {
			defaults[key] = val
			continue
		}
		if IsMap(existingVal) && IsMap(val) {
			existing, ok := existingVal.(map[string]interface{})
			if !ok {
				panic(fmt.Sprintf("unknown map: %T", existingVal))
			}
			override, ok := val.(map[string]interface{})
			if !ok {
				panic(fmt.Sprintf("unknown map: %T", val))
			}
			RecursiveOverride(existing, override)
		} else if IsAllowedOverrideType(val) {
			defaults[key] = val
		}
	}
}

// ApplyDefaults merges overrideCfg onto defaultCfg through their yaml forms and decodes the result into newCfg.
func ApplyDefaults(defaultCfg interface{}, overrideCfg interface{}, newCfg interface{}) error {
	defaults, err := toMap(defaultCfg)
	if err != nil {
		return err
	}
	overrides, err := toMap(overrideCfg)
	if err != nil {
		return err
	}
	RecursiveOverride(defaults, overrides)

	bz, err := yaml.Marshal(defaults)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(bz, newCfg)
}

func toMap(cfg interface{}) (map[string]interface{}, error) {
	bz, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	asMap := map[string]interface{}{}
	if err := yaml.Unmarshal(bz, &asMap); err != nil {
		return nil, err
	}
	return asMap, nil
}
