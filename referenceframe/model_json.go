package referenceframe

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.armlab.dev/planar/utils"
)

// Component kinds accepted in a model file.
const (
	KindJoint = "joint"
	KindLink  = "link"
)

// ModelConfigJSON represents all supported fields in a robot model JSON file.
type ModelConfigJSON struct {
	Name       string            `json:"name"`
	Base       *PointConfig      `json:"base,omitempty"`
	Components []ComponentConfig `json:"components" jsonschema:"minItems=0"`
}

// PointConfig is a point in the base coordinate frame.
type PointConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ComponentConfig describes either a joint or a link, selected by Kind. Joint angles may be given
// in radians (angle) or degrees (angle_degrees), not both.
type ComponentConfig struct {
	Kind         string    `json:"kind" jsonschema:"enum=joint,enum=link"`
	ID           string    `json:"id"`
	Type         JointType `json:"type,omitempty" jsonschema:"enum=revolute"`
	Angle        *float64  `json:"angle,omitempty"`
	AngleDegrees *float64  `json:"angle_degrees,omitempty"`
	Length       *float64  `json:"length,omitempty" jsonschema:"minimum=0"`
}

// ToComponent converts the config into a *Joint or *Link.
func (cfg *ComponentConfig) ToComponent() (Component, error) {
	switch strings.ToLower(cfg.Kind) {
	case KindJoint:
		if cfg.Length != nil {
			return nil, errors.Errorf("joint %q cannot have a length", cfg.ID)
		}
		if cfg.Angle != nil && cfg.AngleDegrees != nil {
			return nil, errors.Errorf("joint %q sets both angle and angle_degrees", cfg.ID)
		}
		jointType := cfg.Type
		if jointType == "" {
			jointType = Revolute
		}
		angle := 0.0
		if cfg.Angle != nil {
			angle = *cfg.Angle
		} else if cfg.AngleDegrees != nil {
			angle = utils.DegToRad(*cfg.AngleDegrees)
		}
		return &Joint{ID: cfg.ID, Type: jointType, Angle: angle}, nil
	case KindLink:
		if cfg.Angle != nil || cfg.AngleDegrees != nil {
			return nil, errors.Errorf("link %q cannot have an angle", cfg.ID)
		}
		if cfg.Length == nil {
			return nil, errors.Errorf("link %q is missing a length", cfg.ID)
		}
		return NewLink(cfg.ID, *cfg.Length), nil
	default:
		return nil, NewUnknownComponentKindError(cfg.Kind)
	}
}

// UnmarshalModelJSON will parse the given JSON data into a robot. modelName sets the name of the robot,
// the name from the JSON is used if it is empty.
func UnmarshalModelJSON(jsonData []byte, modelName string) (*Robot, error) {
	if len(jsonData) == 0 {
		return nil, ErrNoModelInformation
	}
	m := &ModelConfigJSON{}
	if err := json.Unmarshal(jsonData, m); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal json file")
	}
	return m.ParseConfig(modelName)
}

// ParseConfig converts the ModelConfigJSON into a validated Robot.
func (cfg *ModelConfigJSON) ParseConfig(modelName string) (*Robot, error) {
	if modelName == "" {
		modelName = cfg.Name
	}
	var base r2.Point
	if cfg.Base != nil {
		base = r2.Point{X: cfg.Base.X, Y: cfg.Base.Y}
	}
	components := make([]Component, 0, len(cfg.Components))
	for idx := range cfg.Components {
		c, err := cfg.Components[idx].ToComponent()
		if err != nil {
			return nil, errors.Wrapf(err, "component %d", idx)
		}
		components = append(components, c)
	}
	return NewRobot(modelName, base, components...)
}

// ParseModelJSONFile will read a given file and then parse the contained JSON data.
func ParseModelJSONFile(filename, modelName string) (*Robot, error) {
	//nolint:gosec
	jsonData, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read json file")
	}
	return UnmarshalModelJSON(jsonData, modelName)
}

// ModelConfigFromRobot produces the config that describes r. Angles are written in radians.
func ModelConfigFromRobot(r *Robot) *ModelConfigJSON {
	cfg := &ModelConfigJSON{Name: r.Name, Components: make([]ComponentConfig, 0, len(r.Components))}
	if r.Base != (r2.Point{}) {
		cfg.Base = &PointConfig{X: r.Base.X, Y: r.Base.Y}
	}
	for _, c := range r.Components {
		switch comp := c.(type) {
		case *Joint:
			angle := comp.Angle
			cfg.Components = append(cfg.Components, ComponentConfig{Kind: KindJoint, ID: comp.ID, Type: comp.Type, Angle: &angle})
		case *Link:
			length := comp.Length
			cfg.Components = append(cfg.Components, ComponentConfig{Kind: KindLink, ID: comp.ID, Length: &length})
		}
	}
	return cfg
}
