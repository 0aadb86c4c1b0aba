package config

import (
	"context"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"go.armlab.dev/planar/render"
)

func TestRead(t *testing.T) {
	logger := golog.NewTestLogger(t)
	t.Setenv("PLANAR_FOREARM", "0.5")

	cfg, err := Read(context.Background(), "data/planar.json", logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Name, test.ShouldEqual, "bench")
	test.That(t, cfg.LogLevel, test.ShouldEqual, "debug")
	test.That(t, cfg.ConfigFilePath, test.ShouldEqual, "data/planar.json")

	robot, err := cfg.BuildRobot()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, robot.Name, test.ShouldEqual, "two-link")
	test.That(t, robot.Base, test.ShouldResemble, r2.Point{X: 0.5, Y: -0.25})
	test.That(t, robot.Reach(), test.ShouldAlmostEqual, 1.5)
	test.That(t, robot.JointAngles()["shoulder"], test.ShouldAlmostEqual, math.Pi/2)

	renderCfg, err := cfg.RenderConfig()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, renderCfg, test.ShouldResemble, &render.Config{Width: 320, Height: 240, Labels: true})
}

func TestReadErrors(t *testing.T) {
	logger := golog.NewTestLogger(t)

	_, err := Read(context.Background(), filepath.Join(t.TempDir(), "nope.json"), logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "failed to read config")

	// without the variable the forearm length is empty and the json is invalid
	t.Setenv("PLANAR_FOREARM", "")
	_, err = Read(context.Background(), "data/planar.json", logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "failed to decode Config from json")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = FromReader(ctx, "", strings.NewReader(`{}`), logger)
	test.That(t, err, test.ShouldBeError, context.Canceled)
}

func TestFromReader(t *testing.T) {
	logger := golog.NewTestLogger(t)
	for _, tc := range []struct {
		name   string
		json   string
		errMsg string
	}{
		{
			"unknown field",
			`{"robot": {"name": "r", "components": []}, "color": "red"}`,
			`unknown field "color"`,
		},
		{
			"missing robot",
			`{"name": "empty"}`,
			`"robot" is required`,
		},
		{
			"bad link",
			`{"robot": {"name": "r", "components": [{"kind": "joint", "id": "q1"}, {"kind": "link", "id": "a1"}]}}`,
			`link "a1" is missing a length`,
		},
		{
			"duplicate ids",
			`{"robot": {"name": "r", "components": [{"kind": "joint", "id": "q1"}, {"kind": "link", "id": "q1", "length": 1}]}}`,
			`component id "q1" is used by components 0 and 1`,
		},
		{
			"bad render",
			`{"robot": {"name": "r", "components": [{"kind": "link", "id": "a1", "length": 1}]}, "render": {"zoom": 2}}`,
			`unknown attributes ["zoom"]`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromReader(context.Background(), "", strings.NewReader(tc.json), logger)
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, err.Error(), test.ShouldContainSubstring, "failed to")
			test.That(t, err.Error(), test.ShouldContainSubstring, tc.errMsg)
		})
	}

	cfg, err := FromReader(context.Background(), "", strings.NewReader(
		`{"robot": {"name": "r", "components": [{"kind": "joint", "id": "q1"}, {"kind": "link", "id": "a1", "length": 1}]}}`,
	), logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Name, test.ShouldEqual, DefaultName)
}
