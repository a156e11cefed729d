package config

import (
	"os"

	"sigs.k8s.io/yaml"
)

func ReadConfig(configPath string) (Config, error) {
	var config Config
	all, err := os.ReadFile(configPath)
	if err != nil {
		return config, err
	}

	if err := yaml.Unmarshal(all, &config); err != nil {
		return config, err
	}

	return config.withDefaults(), nil
}

func MustReadConfig(configPath string) Config {
	config, err := ReadConfig(configPath)
	if err != nil {
		panic(err)
	}
	return config
}
