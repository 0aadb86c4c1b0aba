package kinematics

import (
	"context"
	"sync"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.armlab.dev/planar/referenceframe"
	"go.armlab.dev/planar/utils"
)

// Arm owns a robot and serializes every change to it. Slider style edits and target driven moves
// may come from different goroutines; readers always see a consistent pose.
type Arm struct {
	mu     sync.RWMutex
	robot  *referenceframe.Robot
	solver *Solver
	logger golog.Logger
}

// NewArm takes a private copy of robot, so later changes to the argument do not affect the arm.
func NewArm(robot *referenceframe.Robot, logger golog.Logger) (*Arm, error) {
	if robot == nil {
		return nil, errors.New("robot cannot be nil")
	}
	if err := robot.Validate(); err != nil {
		return nil, err
	}
	return &Arm{robot: robot.Clone(), solver: NewSolver(logger), logger: logger}, nil
}

// Snapshot returns a copy of the current robot.
func (a *Arm) Snapshot() *referenceframe.Robot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.robot.Clone()
}

// Positions returns the drawable chain of the current pose, see JointPositions.
func (a *Arm) Positions() []r2.Point {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return JointPositions(a.robot)
}

// EndEffector returns the position of the tip of the arm and the heading of its last link.
func (a *Arm) EndEffector() (r2.Point, float64) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return EndEffectorPose(a.robot)
}

// SetJointAngle sets the angle in radians of the joint with the given id.
func (a *Arm) SetJointAngle(id string, angle float64) error {
	if !utils.IsFinite(angle) {
		return errors.Errorf("angle %v for joint %q is not finite", angle, id)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	joint, ok := a.robot.Joint(id)
	if !ok {
		return errors.Errorf("no joint with id %q", id)
	}
	joint.Angle = angle
	return nil
}

// SetLinkLength sets the length of the link with the given id.
func (a *Arm) SetLinkLength(id string, length float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	link, ok := a.robot.Link(id)
	if !ok {
		return errors.Errorf("no link with id %q", id)
	}
	if !utils.IsFinite(length) || length < 0 {
		return referenceframe.NewInvalidLinkLengthError(id, length)
	}
	link.Length = length
	return nil
}

// Solve returns the inverse kinematics solutions for target without moving the arm.
func (a *Arm) Solve(ctx context.Context, target r2.Point) (Solutions, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.solver.Solve(ctx, a.robot, target)
}

// MoveToPosition moves the end effector to target using the requested branch. An empty branch picks
// whichever branch is closest to the current joint angles. The branch used is returned. Unreachable
// targets return ErrUnreachable and leave the arm where it was.
func (a *Arm) MoveToPosition(ctx context.Context, target r2.Point, branch Branch) (Branch, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	solutions, err := a.solver.Solve(ctx, a.robot, target)
	if err != nil {
		return "", err
	}
	if err := solutions.Err(); err != nil {
		return "", errors.Wrapf(err, "cannot move %q to %v", a.robot.Name, target)
	}
	if branch == "" {
		branch, _ = BestBranch(a.robot.JointAngles(), solutions)
	}
	solution, ok := solutions[branch]
	if !ok {
		return "", NewUnknownBranchError(branch)
	}
	SetJointAngles(a.robot, solution)
	a.logger.Debugw("moved arm", "robot", a.robot.Name, "target", target, "branch", branch)
	return branch, nil
}

// Ghosts returns a copy of the robot posed at each branch that reaches target. The arm itself does
// not move. The map is empty if target is unreachable.
func (a *Arm) Ghosts(ctx context.Context, target r2.Point) (map[Branch]*referenceframe.Robot, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	solutions, err := a.solver.Solve(ctx, a.robot, target)
	if err != nil {
		return nil, err
	}
	ghosts := make(map[Branch]*referenceframe.Robot, len(solutions))
	for branch, solution := range solutions {
		ghost := a.robot.Clone()
		SetJointAngles(ghost, solution)
		ghosts[branch] = ghost
	}
	return ghosts, nil
}
