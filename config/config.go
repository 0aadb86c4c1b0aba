// Package config defines the planar configuration file: which robot to load, how verbose to be
// and how to render it.
package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"

	"go.armlab.dev/planar/logging"
	"go.armlab.dev/planar/referenceframe"
	"go.armlab.dev/planar/render"
)

// DefaultName is used when a config does not name itself.
const DefaultName = "planar"

// A Config describes the configuration of a planar session.
type Config struct {
	Name     string                          `json:"name,omitempty"`
	LogLevel string                          `json:"log_level,omitempty" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
	Robot    *referenceframe.ModelConfigJSON `json:"robot"`
	Render   AttributeMap                    `json:"render,omitempty"`

	ConfigFilePath string `json:"-"`
}

// Default returns a config for the default unit length 2-link arm.
func Default() *Config {
	return &Config{
		Name:  DefaultName,
		Robot: referenceframe.ModelConfigFromRobot(referenceframe.Default2DOF()),
	}
}

// Ensure fills in defaults and validates the config.
func (c *Config) Ensure() error {
	if c.Name == "" {
		c.Name = DefaultName
	}
	return c.Validate("")
}

// Validate ensures all parts of the config are valid. path is the dotted prefix used in errors.
func (c *Config) Validate(path string) error {
	if c.LogLevel != "" {
		if _, err := logging.ParseLevel(c.LogLevel); err != nil {
			return goutils.NewConfigValidationError(joinPath(path, "log_level"), err)
		}
	}
	robotPath := joinPath(path, "robot")
	if c.Robot == nil {
		return goutils.NewConfigValidationFieldRequiredError(path, "robot")
	}
	if c.Robot.Name == "" {
		return goutils.NewConfigValidationFieldRequiredError(robotPath, "name")
	}
	if len(c.Robot.Components) == 0 {
		return goutils.NewConfigValidationFieldRequiredError(robotPath, "components")
	}
	for idx := range c.Robot.Components {
		compPath := fmt.Sprintf("%s.%s.%d", robotPath, "components", idx)
		comp := &c.Robot.Components[idx]
		if comp.Kind == "" {
			return goutils.NewConfigValidationFieldRequiredError(compPath, "kind")
		}
		if comp.ID == "" {
			return goutils.NewConfigValidationFieldRequiredError(compPath, "id")
		}
		if _, err := comp.ToComponent(); err != nil {
			return goutils.NewConfigValidationError(compPath, err)
		}
	}
	if _, err := c.BuildRobot(); err != nil {
		return goutils.NewConfigValidationError(robotPath, err)
	}
	renderCfg, err := c.RenderConfig()
	if err != nil {
		return goutils.NewConfigValidationError(joinPath(path, "render"), err)
	}
	return renderCfg.Validate(joinPath(path, "render"))
}

// BuildRobot constructs the robot described by the config.
func (c *Config) BuildRobot() (*referenceframe.Robot, error) {
	if c.Robot == nil {
		return nil, referenceframe.ErrNoModelInformation
	}
	return c.Robot.ParseConfig("")
}

// RenderConfig decodes the render attributes.
func (c *Config) RenderConfig() (*render.Config, error) {
	return TransformAttributeMap[*render.Config](c.Render)
}

// Schema returns the JSON schema of the config file.
func Schema() ([]byte, error) {
	schema := jsonschema.Reflect(&Config{})
	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal config schema")
	}
	return out, nil
}

func joinPath(path, field string) string {
	return strings.TrimPrefix(fmt.Sprintf("%s.%s", path, field), ".")
}
