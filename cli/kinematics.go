package cli

import (
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.armlab.dev/planar/config"
	"go.armlab.dev/planar/kinematics"
	"go.armlab.dev/planar/referenceframe"
	"go.armlab.dev/planar/render"
	"go.armlab.dev/planar/utils"
)

// ForwardKinematicsAction prints the chain and where each part of it is.
func ForwardKinematicsAction(c *cli.Context) error {
	client, err := newPlanarClient(c)
	if err != nil {
		return err
	}
	client.printPose()
	return nil
}

// InverseKinematicsAction solves for a target and optionally moves the arm there.
func InverseKinematicsAction(c *cli.Context) error {
	client, err := newPlanarClient(c)
	if err != nil {
		return err
	}
	target := r2.Point{X: c.Float64(kinematicsFlagX), Y: c.Float64(kinematicsFlagY)}

	solutions, err := client.arm.Solve(c.Context, target)
	if err != nil {
		return err
	}
	if !solutions.Reachable() {
		robot := client.arm.Snapshot()
		warningf(c.App.ErrWriter, "target %s is unreachable, %q reaches %s from its base %s",
			formatPoint(target), robot.Name, formatNumber(robot.Reach(), pointPlaces), formatPoint(robot.Base))
		if c.IsSet(kinematicsFlagApply) {
			return errors.Wrapf(kinematics.ErrUnreachable, "cannot apply a solution for %s", formatPoint(target))
		}
		return nil
	}
	ghosts, err := client.arm.Ghosts(c.Context, target)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", client.solutionsTable(target, solutions, ghosts))

	if !c.IsSet(kinematicsFlagApply) {
		return nil
	}
	branch := kinematics.Branch(c.String(kinematicsFlagApply))
	if branch == "auto" {
		branch = ""
	}
	used, err := client.arm.MoveToPosition(c.Context, target, branch)
	if err != nil {
		return err
	}
	infof(c.App.Writer, "moved to %s using %s", formatPoint(target), used)
	client.printPose()
	return nil
}

// RenderAction draws the arm, and the ghosts of any target given, to a PNG file.
func RenderAction(c *cli.Context) error {
	client, err := newPlanarClient(c)
	if err != nil {
		return err
	}
	renderCfg, err := client.cfg.RenderConfig()
	if err != nil {
		return err
	}
	if c.IsSet(renderFlagWidth) {
		renderCfg.Width = c.Int(renderFlagWidth)
	}
	if c.IsSet(renderFlagHeight) {
		renderCfg.Height = c.Int(renderFlagHeight)
	}
	if c.IsSet(renderFlagExtent) {
		renderCfg.Extent = c.Float64(renderFlagExtent)
	}
	if c.IsSet(renderFlagLabels) {
		renderCfg.Labels = c.Bool(renderFlagLabels)
	}

	scene := render.Scene{Robot: client.arm.Snapshot()}
	if c.IsSet(kinematicsFlagX) || c.IsSet(kinematicsFlagY) {
		target := r2.Point{X: c.Float64(kinematicsFlagX), Y: c.Float64(kinematicsFlagY)}
		scene.Target = &target
		if scene.Ghosts, err = client.arm.Ghosts(c.Context, target); err != nil {
			return err
		}
		if len(scene.Ghosts) == 0 {
			warningf(c.App.ErrWriter, "target %s is unreachable, drawing the arm without solutions", formatPoint(target))
		}
	}

	out := utils.EnsureExtension(c.String(renderFlagOut), ".png")
	if err := render.SavePNG(out, scene, *renderCfg); err != nil {
		return err
	}
	infof(c.App.Writer, "wrote %s", out)
	return nil
}

// SchemaAction prints the JSON schema of the config file.
func SchemaAction(c *cli.Context) error {
	out, err := config.Schema()
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", out)
	return nil
}

func (client *planarClient) printPose() {
	w := client.c.App.Writer
	robot := client.arm.Snapshot()
	printf(w, "%s", robot)
	printf(w, "%s", positionsTable(robot, kinematics.JointPositions(robot)))
	end, heading := client.arm.EndEffector()
	printf(w, "end effector %s heading %s %s", formatPoint(end), formatAngle(heading, client.radians), angleUnit(client.radians))
}

func (client *planarClient) solutionsTable(
	target r2.Point,
	solutions kinematics.Solutions,
	ghosts map[kinematics.Branch]*referenceframe.Robot,
) string {
	robot := client.arm.Snapshot()
	joints := robot.Joints()
	current := robot.JointAngles()
	best, _ := kinematics.BestBranch(current, solutions)

	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("%s solutions for %s", robot.Name, formatPoint(target)))
	header := table.Row{"Branch"}
	for _, joint := range joints {
		header = append(header, fmt.Sprintf("%s (%s)", joint.ID, angleUnit(client.radians)))
	}
	header = append(header, "Elbow", "Distance", "Closest")
	t.AppendHeader(header)

	for _, branch := range solutions.Branches() {
		solution := solutions[branch]
		row := table.Row{string(branch)}
		for _, joint := range joints {
			if j, ok := solution[joint.ID]; ok {
				row = append(row, formatAngle(j.Angle, client.radians))
			} else {
				row = append(row, formatAngle(joint.Angle, client.radians))
			}
		}
		elbow := ""
		if ghost, ok := ghosts[branch]; ok {
			if positions := kinematics.JointPositions(ghost); len(positions) > 1 {
				elbow = formatPoint(positions[1])
			}
		}
		closest := ""
		if branch == best {
			closest = "*"
		}
		row = append(row, elbow, formatAngle(kinematics.JointDistance(current, solution), client.radians), closest)
		t.AppendRow(row)
	}
	return t.Render()
}
