package kinematics

import (
	"context"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"

	"go.armlab.dev/planar/referenceframe"
)

// Solver solves 2-link inverse kinematics for whole robots, taking the base offset and the robot's own
// joint ids into account.
type Solver struct {
	logger golog.Logger
}

// NewSolver returns a Solver that logs to logger.
func NewSolver(logger golog.Logger) *Solver {
	return &Solver{logger: logger}
}

// Solve finds the joint angles that put the end effector of robot at target, given in the same frame
// as the robot base. The robot must be a joint, link, joint, link chain; the returned solutions are
// keyed by the robot's joint ids so they can be passed straight to SetJointAngles.
func (s *Solver) Solve(ctx context.Context, robot *referenceframe.Robot, target r2.Point) (Solutions, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	joints, err := twoLinkJoints(robot)
	if err != nil {
		return nil, err
	}
	relative := target.Sub(robot.Base)
	s.logger.Debugw("solving 2-link inverse kinematics", "robot", robot.Name, "target", target, "relative", relative)

	solutions, err := InverseKinematics2DOF(robot.Links(), relative)
	if err != nil {
		return nil, err
	}
	if !solutions.Reachable() {
		s.logger.Debugw("target is unreachable", "robot", robot.Name, "target", target, "reach", robot.Reach())
		return solutions, nil
	}

	ids := map[string]string{FirstJointID: joints[0].ID, SecondJointID: joints[1].ID}
	renamed := make(Solutions, len(solutions))
	for branch, solution := range solutions {
		renamed[branch] = solution.Rename(ids)
		s.logger.Debugw("found solution", "branch", branch, "angles", renamed[branch].Angles())
	}
	return renamed, nil
}

func twoLinkJoints(robot *referenceframe.Robot) ([]*referenceframe.Joint, error) {
	links := robot.Links()
	if len(links) != 2 {
		return nil, NewIncorrectLinkCountError(len(links))
	}
	if len(robot.Components) != 4 {
		return nil, NewUnsupportedChainError(robot.Name)
	}
	joints := make([]*referenceframe.Joint, 0, 2)
	for i, c := range robot.Components {
		switch comp := c.(type) {
		case *referenceframe.Joint:
			if i%2 != 0 {
				return nil, NewUnsupportedChainError(robot.Name)
			}
			joints = append(joints, comp)
		case *referenceframe.Link:
			if i%2 != 1 {
				return nil, NewUnsupportedChainError(robot.Name)
			}
		default:
			return nil, NewUnsupportedChainError(robot.Name)
		}
	}
	return joints, nil
}
