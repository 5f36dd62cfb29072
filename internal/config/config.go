// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// EnvJSON names the environment variable whose JSON content overrides the toml file.
const EnvJSON = "PRINTERCTL_CONFIG_JSON"

const (
	defaultNamespace    = "printer"
	defaultBaud         = 9600
	defaultShutDownTime = 5
	defaultSqlitePath   = "printer.db"
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	applyDefaults(&c)

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to decode "+EnvJSON)
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

func applyDefaults(c *Config) {
	if c.Printer.Namespace == "" {
		c.Printer.Namespace = defaultNamespace
	}

	if c.Printer.Baud == 0 {
		c.Printer.Baud = defaultBaud
	}

	if c.DB.Driver == "" {
		c.DB.Driver = "sqlite"
	}

	if c.DB.Driver == "sqlite" && c.DB.Path == "" {
		c.DB.Path = defaultSqlitePath
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}
}

// validate checks the struct tags and the cross section rules.
func validate(c *Config) error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}

	if !c.BLE.Enabled && !c.MQTT.Enabled && !c.Webserver.Enabled {
		return errors.Wrap(ErrNoTransport, ErrInvalidConfig.Error())
	}

	return nil
}
