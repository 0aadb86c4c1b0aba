package kinematics

import "go.armlab.dev/planar/referenceframe"

// SetJointAngles copies the angle of every solution entry onto the robot joint with the same id.
// Joints missing from the solution, ids missing from the robot, and links are left alone, so a
// partial solution can be applied to a longer chain.
func SetJointAngles(robot *referenceframe.Robot, solution Solution) {
	for _, c := range robot.Components {
		joint, ok := c.(*referenceframe.Joint)
		if !ok {
			continue
		}
		if solved, ok := solution[joint.ID]; ok && solved != nil {
			joint.Angle = solved.Angle
		}
	}
}
