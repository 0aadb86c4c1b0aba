// Package referenceframe defines the planar robot model: an ordered chain of revolute joints and
// rigid links hanging off a fixed base. Joints change the heading of the chain, links move along it.
package referenceframe

import (
	"encoding/json"
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.armlab.dev/planar/utils"
)

// JointType names the motion a joint allows.
type JointType string

// Revolute is the only supported joint type: a rotation about the axis normal to the plane.
const Revolute JointType = "revolute"

// Component is a single element of a kinematic chain. It is implemented only by *Joint and *Link;
// callers switch on the concrete type.
type Component interface {
	// ComponentID returns the identifier that is unique within a robot.
	ComponentID() string
	isComponent()
}

// Joint is a rotary joint. Angle is in radians and relative to the preceding element of the chain.
type Joint struct {
	ID    string
	Type  JointType
	Angle float64
}

// NewJoint returns a revolute joint at the given angle in radians.
func NewJoint(id string, angle float64) *Joint {
	return &Joint{ID: id, Type: Revolute, Angle: angle}
}

// ComponentID returns the joint identifier.
func (j *Joint) ComponentID() string {
	return j.ID
}

func (j *Joint) isComponent() {}

func (j *Joint) String() string {
	return fmt.Sprintf("joint %q (%s) %.4f rad", j.ID, j.Type, j.Angle)
}

// Link is a rigid segment of the chain.
type Link struct {
	ID     string
	Length float64
}

// NewLink returns a link of the given length.
func NewLink(id string, length float64) *Link {
	return &Link{ID: id, Length: length}
}

// ComponentID returns the link identifier.
func (l *Link) ComponentID() string {
	return l.ID
}

func (l *Link) isComponent() {}

func (l *Link) String() string {
	return fmt.Sprintf("link %q length %.4f", l.ID, l.Length)
}

// Robot is an ordered chain of components anchored at Base. The order of Components is the order
// of the chain from the base to the end effector.
type Robot struct {
	Name       string
	Base       r2.Point
	Components []Component

	// index maps component ids to positions in Components. Rebuilt whenever it is found stale.
	index map[string]int
}

// NewRobot builds a robot and validates it.
func NewRobot(name string, base r2.Point, components ...Component) (*Robot, error) {
	r := &Robot{Name: name, Base: base, Components: components}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Default2DOF returns the canonical two link arm: q1, a1, q2, a2 with unit links at the zero pose.
func Default2DOF() *Robot {
	return &Robot{
		Name: "planar-2dof",
		Components: []Component{
			NewJoint("q1", 0),
			NewLink("a1", 1),
			NewJoint("q2", 0),
			NewLink("a2", 1),
		},
	}
}

// Validate checks that identifiers are present and unique, joint angles are finite and link lengths
// are finite and non-negative. Every problem found is reported.
func (r *Robot) Validate() error {
	var errAll error
	seen := make(map[string]int, len(r.Components))
	for idx, c := range r.Components {
		if c == nil {
			multierr.AppendInto(&errAll, errors.Errorf("component %d is nil", idx))
			continue
		}
		id := c.ComponentID()
		if id == "" {
			multierr.AppendInto(&errAll, NewMissingIDError(idx))
		} else if prev, ok := seen[id]; ok {
			multierr.AppendInto(&errAll, NewDuplicateIDError(id, prev, idx))
		} else {
			seen[id] = idx
		}
		switch comp := c.(type) {
		case *Joint:
			if comp.Type != Revolute {
				multierr.AppendInto(&errAll, NewUnsupportedJointTypeError(comp.ID, comp.Type))
			}
			if !utils.IsFinite(comp.Angle) {
				multierr.AppendInto(&errAll, errors.Errorf("joint %q angle %v is not finite", comp.ID, comp.Angle))
			}
		case *Link:
			if !utils.IsFinite(comp.Length) || comp.Length < 0 {
				multierr.AppendInto(&errAll, NewInvalidLinkLengthError(comp.ID, comp.Length))
			}
		}
	}
	if !utils.IsFinite(r.Base.X) || !utils.IsFinite(r.Base.Y) {
		multierr.AppendInto(&errAll, errors.Errorf("base %v is not finite", r.Base))
	}
	return errAll
}

// lookup is not safe for concurrent use since a stale index is rebuilt in place.
func (r *Robot) lookup(id string) (int, bool) {
	if idx, ok := r.index[id]; ok && idx < len(r.Components) &&
		r.Components[idx] != nil && r.Components[idx].ComponentID() == id {
		return idx, true
	}
	r.reindex()
	idx, ok := r.index[id]
	return idx, ok
}

func (r *Robot) reindex() {
	r.index = make(map[string]int, len(r.Components))
	for idx, c := range r.Components {
		if c == nil {
			continue
		}
		// first occurrence wins if ids collide; Validate reports the collision
		if _, ok := r.index[c.ComponentID()]; !ok {
			r.index[c.ComponentID()] = idx
		}
	}
}

// Component returns the component with the given identifier.
func (r *Robot) Component(id string) (Component, bool) {
	idx, ok := r.lookup(id)
	if !ok {
		return nil, false
	}
	return r.Components[idx], true
}

// Joint returns the joint with the given identifier.
func (r *Robot) Joint(id string) (*Joint, bool) {
	c, ok := r.Component(id)
	if !ok {
		return nil, false
	}
	j, ok := c.(*Joint)
	return j, ok
}

// Link returns the link with the given identifier.
func (r *Robot) Link(id string) (*Link, bool) {
	c, ok := r.Component(id)
	if !ok {
		return nil, false
	}
	l, ok := c.(*Link)
	return l, ok
}

// Joints returns the joints of the robot in chain order.
func (r *Robot) Joints() []*Joint {
	var joints []*Joint
	for _, c := range r.Components {
		if j, ok := c.(*Joint); ok {
			joints = append(joints, j)
		}
	}
	return joints
}

// Links returns the links of the robot in chain order.
func (r *Robot) Links() []*Link {
	var links []*Link
	for _, c := range r.Components {
		if l, ok := c.(*Link); ok {
			links = append(links, l)
		}
	}
	return links
}

// JointAngles returns a snapshot of every joint angle keyed by joint id.
func (r *Robot) JointAngles() map[string]float64 {
	angles := make(map[string]float64)
	for _, j := range r.Joints() {
		angles[j.ID] = j.Angle
	}
	return angles
}

// Reach is the sum of all link lengths, the furthest any point of the chain can be from the base.
func (r *Robot) Reach() float64 {
	reach := 0.0
	for _, l := range r.Links() {
		reach += l.Length
	}
	return reach
}

// Clone returns a deep copy of the robot. Mutating the copy never affects the original.
func (r *Robot) Clone() *Robot {
	cloned := &Robot{Name: r.Name, Base: r.Base, Components: make([]Component, 0, len(r.Components))}
	for _, c := range r.Components {
		switch comp := c.(type) {
		case *Joint:
			j := *comp
			cloned.Components = append(cloned.Components, &j)
		case *Link:
			l := *comp
			cloned.Components = append(cloned.Components, &l)
		default:
			cloned.Components = append(cloned.Components, c)
		}
	}
	return cloned
}

// String prints a table of the chain, one row per component.
func (r *Robot) String() string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("%s (base X:%.3f, Y:%.3f)", r.Name, r.Base.X, r.Base.Y))
	t.AppendHeader(table.Row{"#", "ID", "Kind", "Angle (deg)", "Length"})
	for i, c := range r.Components {
		switch comp := c.(type) {
		case *Joint:
			t.AppendRow(table.Row{i, comp.ID, string(comp.Type), fmt.Sprintf("%.2f", utils.RadToDeg(comp.Angle)), ""})
		case *Link:
			t.AppendRow(table.Row{i, comp.ID, "link", "", fmt.Sprintf("%.3f", comp.Length)})
		}
	}
	return t.Render()
}

// MarshalJSON encodes the robot in the same form UnmarshalModelJSON reads.
func (r *Robot) MarshalJSON() ([]byte, error) {
	return json.Marshal(ModelConfigFromRobot(r))
}
