package cli

import (
	"sort"

	"github.com/edaniels/golog"
	"github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zapcore"

	"go.armlab.dev/planar/config"
	"go.armlab.dev/planar/kinematics"
	"go.armlab.dev/planar/logging"
	"go.armlab.dev/planar/referenceframe"
)

// planarClient wraps the arm loaded for a single command invocation.
type planarClient struct {
	c       *cli.Context
	cfg     *config.Config
	arm     *kinematics.Arm
	logger  golog.Logger
	radians bool
}

func newPlanarClient(c *cli.Context) (*planarClient, error) {
	if c.Bool(generalFlagNoColor) {
		color.NoColor = true
	}

	logger := logging.NewNopLogger()
	if c.Bool(generalFlagDebug) {
		var err error
		if logger, err = logging.NewLogger("planar", zapcore.DebugLevel); err != nil {
			return nil, err
		}
	}

	cfg := config.Default()
	if path := c.String(generalFlagConfig); path != "" {
		var err error
		if cfg, err = config.Read(c.Context, path, logger); err != nil {
			return nil, err
		}
	}
	if cfg.LogLevel != "" && !c.Bool(generalFlagDebug) {
		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		if logger, err = logging.NewLogger(cfg.Name, level); err != nil {
			return nil, err
		}
	}

	robot, err := cfg.BuildRobot()
	if err != nil {
		return nil, err
	}
	if path := c.String(generalFlagModel); path != "" {
		if robot, err = referenceframe.ParseModelJSONFile(path, ""); err != nil {
			return nil, err
		}
		logger.Debugw("loaded model", "path", path, "name", robot.Name)
	}
	arm, err := kinematics.NewArm(robot, logger)
	if err != nil {
		return nil, err
	}

	client := &planarClient{c: c, cfg: cfg, arm: arm, logger: logger, radians: c.Bool(kinematicsFlagRadians)}
	if err := client.applyLengths(c.String(kinematicsFlagLengths)); err != nil {
		return nil, err
	}
	if err := client.applyAngles(c.String(kinematicsFlagAngles)); err != nil {
		return nil, err
	}
	return client, nil
}

// applyAngles poses the arm from an --angles value. Joints are set in id order so errors are stable.
func (client *planarClient) applyAngles(list string) error {
	if list == "" {
		return nil
	}
	angles, err := parseAngles(list, client.radians)
	if err != nil {
		return err
	}
	ids := lo.Keys(angles)
	sort.Strings(ids)
	for _, id := range ids {
		if err := client.arm.SetJointAngle(id, angles[id]); err != nil {
			return err
		}
	}
	client.logger.Debugw("posed arm", "angles", angles)
	return nil
}

// applyLengths resizes links from a --lengths value, in id order.
func (client *planarClient) applyLengths(list string) error {
	if list == "" {
		return nil
	}
	lengths, err := parseLengths(list)
	if err != nil {
		return err
	}
	ids := lo.Keys(lengths)
	sort.Strings(ids)
	for _, id := range ids {
		if err := client.arm.SetLinkLength(id, lengths[id]); err != nil {
			return err
		}
	}
	client.logger.Debugw("resized links", "lengths", lengths)
	return nil
}
