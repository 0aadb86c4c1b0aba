// Package cli contains all the planar CLI commands.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	generalFlagConfig  = "config"
	generalFlagDebug   = "debug"
	generalFlagNoColor = "no-color"
	generalFlagModel   = "model"

	kinematicsFlagAngles  = "angles"
	kinematicsFlagLengths = "lengths"
	kinematicsFlagRadians = "radians"
	kinematicsFlagX       = "x"
	kinematicsFlagY       = "y"
	kinematicsFlagApply   = "apply"

	renderFlagOut    = "out"
	renderFlagWidth  = "width"
	renderFlagHeight = "height"
	renderFlagExtent = "extent"
	renderFlagLabels = "labels"
)

func poseFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  kinematicsFlagAngles,
			Usage: "joint angles to pose the arm with before running, as `ID=ANGLE[,ID=ANGLE...]` in degrees",
		},
		&cli.StringFlag{
			Name:  kinematicsFlagLengths,
			Usage: "link lengths to set before running, as `ID=LENGTH[,ID=LENGTH...]`",
		},
		&cli.BoolFlag{
			Name:  kinematicsFlagRadians,
			Usage: "read and print angles in radians instead of degrees",
		},
	}
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "planar",
		Usage:           "forward and inverse kinematics for planar robot arms",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    generalFlagConfig,
				Aliases: []string{"c"},
				Usage:   "load configuration from `FILE`, the default 2-link arm is used otherwise",
			},
			&cli.StringFlag{
				Name:  generalFlagModel,
				Usage: "load the robot from a model JSON `FILE` instead of the configuration",
			},
			&cli.BoolFlag{
				Name:    generalFlagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.BoolFlag{
				Name:  generalFlagNoColor,
				Usage: "disable colored output",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "fk",
				Usage:  "print the position of every joint and the end effector",
				Flags:  poseFlags(),
				Action: ForwardKinematicsAction,
			},
			{
				Name:  "ik",
				Usage: "solve for the joint angles that reach a target",
				Flags: append(poseFlags(),
					&cli.Float64Flag{
						Name:     kinematicsFlagX,
						Usage:    "x coordinate of the target",
						Required: true,
					},
					&cli.Float64Flag{
						Name:     kinematicsFlagY,
						Usage:    "y coordinate of the target",
						Required: true,
					},
					&cli.StringFlag{
						Name:  kinematicsFlagApply,
						Usage: "move the arm using `BRANCH` (elbow_up, elbow_down or auto) and print the new pose",
					},
				),
				Action: InverseKinematicsAction,
			},
			{
				Name:  "render",
				Usage: "draw the arm, and the solutions for a target if one is given, to a PNG",
				Flags: append(poseFlags(),
					&cli.StringFlag{
						Name:     renderFlagOut,
						Aliases:  []string{"o"},
						Usage:    "write the image to `FILE`",
						Required: true,
					},
					&cli.Float64Flag{
						Name:  kinematicsFlagX,
						Usage: "x coordinate of a target to solve for",
					},
					&cli.Float64Flag{
						Name:  kinematicsFlagY,
						Usage: "y coordinate of a target to solve for",
					},
					&cli.IntFlag{
						Name:  renderFlagWidth,
						Usage: "image width in pixels, overrides the config",
					},
					&cli.IntFlag{
						Name:  renderFlagHeight,
						Usage: "image height in pixels, overrides the config",
					},
					&cli.Float64Flag{
						Name:  renderFlagExtent,
						Usage: "distance from the origin to the edge of the image, overrides the config",
					},
					&cli.BoolFlag{
						Name:  renderFlagLabels,
						Usage: "label joints and the end effector",
					},
				),
				Action: RenderAction,
			},
			{
				Name:   "schema",
				Usage:  "print the JSON schema of the config file",
				Action: SchemaAction,
			},
		},
	}
}
