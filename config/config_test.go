package config

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
	goutils "go.viam.com/utils"

	"go.armlab.dev/planar/logging"
	"go.armlab.dev/planar/referenceframe"
	"go.armlab.dev/planar/render"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	test.That(t, cfg.Ensure(), test.ShouldBeNil)
	robot, err := cfg.BuildRobot()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, robot, test.ShouldResemble, referenceframe.Default2DOF())

	renderCfg, err := cfg.RenderConfig()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, renderCfg, test.ShouldResemble, &render.Config{})
}

func TestValidate(t *testing.T) {
	length := 1.0
	joint := referenceframe.ComponentConfig{Kind: referenceframe.KindJoint, ID: "q1"}
	link := referenceframe.ComponentConfig{Kind: referenceframe.KindLink, ID: "a1", Length: &length}
	_, levelErr := logging.ParseLevel("chatty")

	for _, tc := range []struct {
		name     string
		cfg      Config
		expected error
	}{
		{
			"no robot",
			Config{},
			goutils.NewConfigValidationFieldRequiredError("", "robot"),
		},
		{
			"no robot name",
			Config{Robot: &referenceframe.ModelConfigJSON{}},
			goutils.NewConfigValidationFieldRequiredError("robot", "name"),
		},
		{
			"no components",
			Config{Robot: &referenceframe.ModelConfigJSON{Name: "r"}},
			goutils.NewConfigValidationFieldRequiredError("robot", "components"),
		},
		{
			"no kind",
			Config{Robot: &referenceframe.ModelConfigJSON{Name: "r", Components: []referenceframe.ComponentConfig{joint, {ID: "a1"}}}},
			goutils.NewConfigValidationFieldRequiredError("robot.components.1", "kind"),
		},
		{
			"no id",
			Config{Robot: &referenceframe.ModelConfigJSON{Name: "r", Components: []referenceframe.ComponentConfig{{Kind: "link"}}}},
			goutils.NewConfigValidationFieldRequiredError("robot.components.0", "id"),
		},
		{
			"unknown kind",
			Config{Robot: &referenceframe.ModelConfigJSON{Name: "r", Components: []referenceframe.ComponentConfig{{Kind: "prism", ID: "p"}}}},
			goutils.NewConfigValidationError("robot.components.0", referenceframe.NewUnknownComponentKindError("prism")),
		},
		{
			"bad log level",
			Config{LogLevel: "chatty", Robot: &referenceframe.ModelConfigJSON{Name: "r", Components: []referenceframe.ComponentConfig{link}}},
			goutils.NewConfigValidationError("log_level", levelErr),
		},
		{
			"negative render width",
			Config{
				Robot:  &referenceframe.ModelConfigJSON{Name: "r", Components: []referenceframe.ComponentConfig{joint, link}},
				Render: AttributeMap{"width": -3},
			},
			goutils.NewConfigValidationError("render", errors.New("width -3 cannot be negative")),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			test.That(t, tc.cfg.Validate(""), test.ShouldBeError, tc.expected)
		})
	}

	cfg := Config{Robot: &referenceframe.ModelConfigJSON{Name: "r", Components: []referenceframe.ComponentConfig{joint, link}}}
	test.That(t, cfg.Validate(""), test.ShouldBeNil)
	test.That(t, cfg.Validate("session"), test.ShouldBeNil)
	cfg.Robot.Name = ""
	test.That(t, cfg.Validate("session"), test.ShouldBeError, goutils.NewConfigValidationFieldRequiredError("session.robot", "name"))
}

func TestTransformAttributeMap(t *testing.T) {
	type attrs struct {
		Width  int     `json:"width"`
		Extent float64 `json:"extent,omitempty"`
	}
	out, err := TransformAttributeMap[attrs](AttributeMap{"width": "12", "extent": 2.5})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldResemble, attrs{Width: 12, Extent: 2.5})

	ptr, err := TransformAttributeMap[*attrs](nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ptr, test.ShouldResemble, &attrs{})

	_, err = TransformAttributeMap[*attrs](AttributeMap{"width": 1, "depth": 2, "color": "red"})
	test.That(t, err, test.ShouldBeError, `unknown attributes ["color" "depth"]`)

	test.That(t, AttributeMap{"width": 1}.Has("width"), test.ShouldBeTrue)
	test.That(t, AttributeMap{}.Has("width"), test.ShouldBeFalse)
}

func TestSchema(t *testing.T) {
	out, err := Schema()
	test.That(t, err, test.ShouldBeNil)

	var schema map[string]interface{}
	test.That(t, json.Unmarshal(out, &schema), test.ShouldBeNil)
	test.That(t, schema, test.ShouldContainKey, "$defs")
	test.That(t, string(out), test.ShouldContainSubstring, `"angle_degrees"`)
	test.That(t, string(out), test.ShouldContainSubstring, `"log_level"`)
	test.That(t, string(out), test.ShouldNotContainSubstring, "ConfigFilePath")
}
