package kinematics

import (
	"math"
	"sort"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.armlab.dev/planar/referenceframe"
	"go.armlab.dev/planar/spatialmath"
	"go.armlab.dev/planar/utils"
)

// Identifiers of the joints in a 2-link solution.
const (
	FirstJointID  = "q1"
	SecondJointID = "q2"
)

// Branch names one of the two configurations that reach the same point.
type Branch string

// The two branches of the 2-link solution. They are mirror images across the line from base to target.
const (
	ElbowUp   Branch = "elbow_up"
	ElbowDown Branch = "elbow_down"
)

// Solution maps joint ids to joints carrying the solved angle. The second angle is relative to the
// first, matching how ForwardKinematics accumulates headings.
type Solution map[string]*referenceframe.Joint

// Angles returns the solved angles keyed by joint id.
func (s Solution) Angles() map[string]float64 {
	return lo.MapValues(s, func(j *referenceframe.Joint, _ string) float64 {
		return j.Angle
	})
}

// Rename returns a copy of the solution with keys and joint ids replaced according to ids. Keys
// not present in ids are kept.
func (s Solution) Rename(ids map[string]string) Solution {
	renamed := make(Solution, len(s))
	for key, joint := range s {
		newID, ok := ids[key]
		if !ok {
			newID = key
		}
		renamed[newID] = &referenceframe.Joint{ID: newID, Type: joint.Type, Angle: joint.Angle}
	}
	return renamed
}

// Solutions holds every branch that reaches the target. It is empty when the target is unreachable.
type Solutions map[Branch]Solution

// Reachable reports whether any branch was found.
func (s Solutions) Reachable() bool {
	return len(s) > 0
}

// Branches returns the branches present, elbow up first.
func (s Solutions) Branches() []Branch {
	branches := lo.Keys(s)
	sort.Slice(branches, func(i, j int) bool {
		return branchOrder(branches[i]) < branchOrder(branches[j])
	})
	return branches
}

// Err returns ErrUnreachable if there are no solutions.
func (s Solutions) Err() error {
	if !s.Reachable() {
		return ErrUnreachable
	}
	return nil
}

func branchOrder(b Branch) string {
	switch b {
	case ElbowUp:
		return "0"
	case ElbowDown:
		return "1"
	default:
		return "2" + string(b)
	}
}

// reachTolerance is how far the shoulder cosine may stray outside [-1, 1] through rounding.
const reachTolerance = 1e-12

// InverseKinematics2DOF finds the joint angles that put the tip of a two link chain at target. The
// chain is anchored at the origin with its first joint there, so target must be relative to the base.
// Orientation of the end effector is not constrained.
//
// Targets on the inner or outer edge of the workspace are reachable even when rounding pushes the
// shoulder cosine past ±1 by up to reachTolerance. An unreachable target yields empty Solutions and
// a nil error. Anything other than two links returns
// an *IncorrectLinkCountError, and a target at the origin or a zero length link returns
// ErrDegenerateConfiguration.
func InverseKinematics2DOF(links []*referenceframe.Link, target r2.Point) (Solutions, error) {
	if len(links) != 2 {
		return nil, NewIncorrectLinkCountError(len(links))
	}
	for _, l := range links {
		if l == nil {
			return nil, errors.New("link cannot be nil")
		}
		if !utils.IsFinite(l.Length) || l.Length < 0 {
			return nil, referenceframe.NewInvalidLinkLengthError(l.ID, l.Length)
		}
		if l.Length == 0 {
			return nil, errors.Wrapf(ErrDegenerateConfiguration, "link %q has zero length", l.ID)
		}
	}
	if !spatialmath.PointIsFinite(target) {
		return nil, errors.Errorf("target %v is not finite", target)
	}

	l1, l2 := links[0].Length, links[1].Length
	d2 := utils.Square(target.X) + utils.Square(target.Y)
	d := math.Sqrt(d2)
	if d == 0 {
		return nil, errors.Wrapf(ErrDegenerateConfiguration, "target %v is at the base", target)
	}

	baseAngle := spatialmath.Heading(target)

	// cosine of the angle between the first link and the line to the target, from the law of cosines
	cosShoulder := (utils.Square(l1) + d2 - utils.Square(l2)) / (2 * l1 * d)
	// > 1 is beyond the reach of the arm, < -1 is inside the hole a short second link leaves
	if cosShoulder < -1-reachTolerance || cosShoulder > 1+reachTolerance {
		return Solutions{}, nil
	}
	cosShoulder = utils.Clamp(cosShoulder, -1, 1)
	// cosine of the interior angle at the elbow; in range whenever cosShoulder is, up to rounding
	cosElbow := utils.Clamp((utils.Square(l1)+utils.Square(l2)-d2)/(2*l1*l2), -1, 1)

	c := math.Acos(cosShoulder)
	b := math.Acos(cosElbow)

	return Solutions{
		ElbowUp: {
			FirstJointID:  referenceframe.NewJoint(FirstJointID, baseAngle+c),
			SecondJointID: referenceframe.NewJoint(SecondJointID, b-math.Pi),
		},
		ElbowDown: {
			FirstJointID:  referenceframe.NewJoint(FirstJointID, baseAngle-c),
			SecondJointID: referenceframe.NewJoint(SecondJointID, math.Pi-b),
		},
	}, nil
}
