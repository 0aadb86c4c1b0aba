// Package kinematics computes forward and inverse kinematics for planar robots built from
// revolute joints and rigid links.
package kinematics

import (
	"github.com/golang/geo/r2"

	"go.armlab.dev/planar/referenceframe"
	"go.armlab.dev/planar/spatialmath"
)

// ForwardKinematics walks the chain from the base and returns the traced position after every
// component, preceded by the base itself. The result always has len(robot.Components)+1 points.
// A joint only changes the heading, so its entry repeats the point before it.
func ForwardKinematics(robot *referenceframe.Robot) []r2.Point {
	positions := make([]r2.Point, 0, len(robot.Components)+1)
	pos := robot.Base
	positions = append(positions, pos)
	heading := 0.0
	for _, c := range robot.Components {
		switch comp := c.(type) {
		case *referenceframe.Joint:
			heading += comp.Angle
		case *referenceframe.Link:
			pos = pos.Add(spatialmath.PolarOffset(comp.Length, heading))
		}
		positions = append(positions, pos)
	}
	return positions
}

// JointPositions returns the drawable chain: the base followed by the end of every link. Consecutive
// points are the endpoints of one link, so the result can be drawn directly as a polyline.
func JointPositions(robot *referenceframe.Robot) []r2.Point {
	trace := ForwardKinematics(robot)
	positions := make([]r2.Point, 0, len(trace))
	positions = append(positions, trace[0])
	for i, c := range robot.Components {
		if _, ok := c.(*referenceframe.Link); ok {
			positions = append(positions, trace[i+1])
		}
	}
	return positions
}

// EndEffector returns the position of the tip of the last link.
func EndEffector(robot *referenceframe.Robot) r2.Point {
	trace := ForwardKinematics(robot)
	return trace[len(trace)-1]
}

// EndEffectorPose returns the tip of the last link and the heading of that link in radians, in
// (-pi, pi]. Joints after the last link do not turn it. A robot without links points along +x.
func EndEffectorPose(robot *referenceframe.Robot) (r2.Point, float64) {
	pos := robot.Base
	heading, linkHeading := 0.0, 0.0
	for _, c := range robot.Components {
		switch comp := c.(type) {
		case *referenceframe.Joint:
			heading += comp.Angle
		case *referenceframe.Link:
			pos = pos.Add(spatialmath.PolarOffset(comp.Length, heading))
			linkHeading = heading
		}
	}
	return pos, spatialmath.NormalizeAngle(linkHeading)
}
