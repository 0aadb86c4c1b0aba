package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"go.armlab.dev/planar/kinematics"
	"go.armlab.dev/planar/referenceframe"
)

func rgb(img image.Image, x, y int) (uint32, uint32, uint32) {
	r, g, b, _ := img.At(x, y).RGBA()
	return r >> 8, g >> 8, b >> 8
}

func ghostScene(t *testing.T, target r2.Point) Scene {
	t.Helper()
	arm, err := kinematics.NewArm(referenceframe.Default2DOF(), golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	ghosts, err := arm.Ghosts(context.Background(), target)
	test.That(t, err, test.ShouldBeNil)
	return Scene{Robot: arm.Snapshot(), Ghosts: ghosts, Target: &target}
}

func TestToPixel(t *testing.T) {
	t.Run("square", func(t *testing.T) {
		c := &canvas{cfg: Config{Width: 200, Height: 200}.withDefaults()}
		x, y := c.toPixel(r2.Point{X: -3, Y: 3})
		test.That(t, x, test.ShouldAlmostEqual, 0)
		test.That(t, y, test.ShouldAlmostEqual, 0)
		x, y = c.toPixel(r2.Point{X: 1.5, Y: -1.5})
		test.That(t, x, test.ShouldAlmostEqual, 150)
		test.That(t, y, test.ShouldAlmostEqual, 150)
	})

	for _, size := range [][2]int{{320, 240}, {200, 100}, {100, 300}} {
		c := &canvas{cfg: Config{Width: size[0], Height: size[1]}.withDefaults()}
		t.Run(fmt.Sprintf("%dx%d", size[0], size[1]), func(t *testing.T) {
			x0, y0 := c.toPixel(r2.Point{})
			test.That(t, x0, test.ShouldAlmostEqual, float64(size[0])/2)
			test.That(t, y0, test.ShouldAlmostEqual, float64(size[1])/2)

			// one unit is the same number of pixels along either axis
			x1, _ := c.toPixel(r2.Point{X: 1})
			_, y1 := c.toPixel(r2.Point{Y: 1})
			test.That(t, x1-x0, test.ShouldAlmostEqual, y0-y1)

			// the extent fills the shorter side exactly
			short := math.Min(float64(size[0]), float64(size[1]))
			test.That(t, (x1-x0)*2*DefaultExtent, test.ShouldAlmostEqual, short)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	test.That(t, (&Config{}).Validate("render"), test.ShouldBeNil)

	err := (&Config{Width: -1}).Validate("render")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "width -1 cannot be negative")

	err = (&Config{Height: -2}).Validate("render")
	test.That(t, err, test.ShouldNotBeNil)

	err = (&Config{Extent: math.Inf(1)}).Validate("render")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "extent")

	cfg := Config{Width: 10}.withDefaults()
	test.That(t, cfg, test.ShouldResemble, Config{Width: 10, Height: DefaultSize, Extent: DefaultExtent})
}

func TestDraw(t *testing.T) {
	target := r2.Point{X: 1, Y: 0}
	scene := ghostScene(t, target)

	img, err := Draw(scene, Config{Width: 200, Height: 200})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, img.Bounds().Dx(), test.ShouldEqual, 200)
	test.That(t, img.Bounds().Dy(), test.ShouldEqual, 200)

	// the corner is empty background
	r, g, b := rgb(img, 2, 2)
	test.That(t, []uint32{r, g, b}, test.ShouldResemble, []uint32{255, 255, 255})

	// the base joint is drawn dark
	r, _, _ = rgb(img, 100, 100)
	test.That(t, r, test.ShouldBeLessThan, 100)

	// the elbow up ghost puts its elbow at (0.5, 0.87)
	r, g, _ = rgb(img, 116, 85)
	test.That(t, g, test.ShouldBeGreaterThan, r)

	img, err = Draw(scene, Config{Width: 200, Height: 200, HideGhosts: true})
	test.That(t, err, test.ShouldBeNil)
	r, g, b = rgb(img, 116, 85)
	test.That(t, []uint32{r, g, b}, test.ShouldResemble, []uint32{255, 255, 255})

	// target marker
	scene.Target = &r2.Point{X: 1, Y: 1}
	img, err = Draw(scene, Config{Width: 200, Height: 200, HideGhosts: true, Labels: true})
	test.That(t, err, test.ShouldBeNil)
	r, g, _ = rgb(img, 133, 66)
	test.That(t, r, test.ShouldBeGreaterThan, g)
}

func TestDrawKeepsAspect(t *testing.T) {
	scene := Scene{Robot: referenceframe.Default2DOF()}
	img, err := Draw(scene, Config{Width: 300, Height: 200, HideGhosts: true})
	test.That(t, err, test.ShouldBeNil)

	// 200 pixels span 6 units on both axes, so the tip at (2, 0) lands 66.7 pixels right of centre
	r, _, b := rgb(img, 150+60, 100)
	test.That(t, b, test.ShouldBeGreaterThan, r)

	// past the tip only the grey axis remains
	r, g, b := rgb(img, 150+80, 100)
	test.That(t, r, test.ShouldEqual, g)
	test.That(t, g, test.ShouldEqual, b)
}

func TestEndEffectorLabel(t *testing.T) {
	test.That(t, endEffectorLabel(r2.Point{X: 2}, 0), test.ShouldEqual, "(2.00, 0.00) 0.0°")
	test.That(t, endEffectorLabel(r2.Point{X: -1, Y: 1}, math.Pi), test.ShouldEqual, "(-1.00, 1.00) 180.0°")
	test.That(t, endEffectorLabel(r2.Point{Y: 1.5}, -1e-12), test.ShouldEqual, "(0.00, 1.50) 0.0°")
}

func TestDrawErrors(t *testing.T) {
	_, err := Draw(Scene{}, Config{})
	test.That(t, err, test.ShouldBeError, "scene has no robot to draw")

	_, err = Draw(Scene{Robot: referenceframe.Default2DOF()}, Config{Width: -5})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestPNGOutput(t *testing.T) {
	scene := Scene{Robot: referenceframe.Default2DOF()}

	var buf bytes.Buffer
	test.That(t, WritePNG(&buf, scene, Config{Width: 64, Height: 48}), test.ShouldBeNil)
	img, err := png.Decode(&buf)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, img.Bounds(), test.ShouldResemble, image.Rect(0, 0, 64, 48))

	path := filepath.Join(t.TempDir(), "arm.png")
	test.That(t, SavePNG(path, scene, Config{}), test.ShouldBeNil)
	//nolint:gosec
	f, err := os.Open(path)
	test.That(t, err, test.ShouldBeNil)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Width, test.ShouldEqual, DefaultSize)
	test.That(t, cfg.Height, test.ShouldEqual, DefaultSize)

	err = SavePNG(filepath.Join(t.TempDir(), "missing", "arm.png"), scene, Config{})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "failed to save")
}
