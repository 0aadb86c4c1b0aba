// Package render draws a planar robot, its inverse kinematics ghosts and a target into an image.
package render

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"sort"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/golang/geo/r2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"
	"golang.org/x/image/font/gofont/goregular"

	"go.armlab.dev/planar/kinematics"
	"go.armlab.dev/planar/referenceframe"
	"go.armlab.dev/planar/spatialmath"
	"go.armlab.dev/planar/utils"
)

// Defaults used when a Config leaves a field unset.
const (
	DefaultSize   = 600
	DefaultExtent = 3.0
)

var (
	font *truetype.Font

	backgroundColor = color.White
	axisColor       = color.Gray{Y: 200}
	linkColor       = colorful.Hsv(210, 0.7, 0.6)
	jointColor      = colorful.Hsv(0, 0, 0.15)
	targetColor     = colorful.Hsv(0, 0.85, 0.85)
	ghostHues       = map[kinematics.Branch]float64{kinematics.ElbowUp: 120, kinematics.ElbowDown: 30}
)

func init() {
	var err error
	font, err = truetype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
}

// Config controls the size of the image and how much of the plane it shows. Extent is the
// distance from the origin to the edge of the view in each direction.
type Config struct {
	Width      int     `json:"width,omitempty" jsonschema:"minimum=0"`
	Height     int     `json:"height,omitempty" jsonschema:"minimum=0"`
	Extent     float64 `json:"extent,omitempty" jsonschema:"minimum=0"`
	HideGhosts bool    `json:"hide_ghosts,omitempty"`
	Labels     bool    `json:"labels,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	if cfg.Width < 0 {
		return goutils.NewConfigValidationError(path, errors.Errorf("width %d cannot be negative", cfg.Width))
	}
	if cfg.Height < 0 {
		return goutils.NewConfigValidationError(path, errors.Errorf("height %d cannot be negative", cfg.Height))
	}
	if !utils.IsFinite(cfg.Extent) || cfg.Extent < 0 {
		return goutils.NewConfigValidationError(path, errors.Errorf("extent %v must be finite and non-negative", cfg.Extent))
	}
	return nil
}

func (cfg Config) withDefaults() Config {
	if cfg.Width == 0 {
		cfg.Width = DefaultSize
	}
	if cfg.Height == 0 {
		cfg.Height = DefaultSize
	}
	if cfg.Extent == 0 {
		cfg.Extent = DefaultExtent
	}
	return cfg
}

// Scene is everything that can be drawn. Only Robot is required.
type Scene struct {
	Robot  *referenceframe.Robot
	Ghosts map[kinematics.Branch]*referenceframe.Robot
	Target *r2.Point
}

type canvas struct {
	*gg.Context
	cfg Config
}

// pixelsPerUnit is the same along both axes so ±Extent fills the shorter side of the image.
func (c *canvas) pixelsPerUnit() float64 {
	return math.Min(float64(c.cfg.Width), float64(c.cfg.Height)) / (2 * c.cfg.Extent)
}

// toPixel maps a point on the plane to image coordinates, origin centred and y pointing up.
func (c *canvas) toPixel(p r2.Point) (float64, float64) {
	ppu := c.pixelsPerUnit()
	return float64(c.cfg.Width)/2 + p.X*ppu, float64(c.cfg.Height)/2 - p.Y*ppu
}

func (c *canvas) scale() float64 {
	return math.Min(float64(c.cfg.Width), float64(c.cfg.Height)) / 200
}

func (c *canvas) drawAxes() {
	c.SetColor(axisColor)
	c.SetLineWidth(1)
	x, y := c.toPixel(r2.Point{})
	c.DrawLine(0, y, float64(c.cfg.Width), y)
	c.Stroke()
	c.DrawLine(x, 0, x, float64(c.cfg.Height))
	c.Stroke()
}

func (c *canvas) drawChain(points []r2.Point, col color.Color, width float64, dashed bool) {
	if dashed {
		c.SetDash(4*c.scale(), 3*c.scale())
	}
	c.SetColor(col)
	c.SetLineWidth(width)
	for i := 1; i < len(points); i++ {
		x0, y0 := c.toPixel(points[i-1])
		x1, y1 := c.toPixel(points[i])
		c.DrawLine(x0, y0, x1, y1)
		c.Stroke()
	}
	c.SetDash()
}

func (c *canvas) drawJoints(points []r2.Point, col color.Color, radius float64) {
	c.SetColor(col)
	for _, p := range points {
		x, y := c.toPixel(p)
		c.DrawCircle(x, y, radius)
		c.Fill()
	}
}

func (c *canvas) drawTarget(target r2.Point) {
	x, y := c.toPixel(target)
	arm := 5 * c.scale()
	c.SetColor(targetColor)
	c.SetLineWidth(2)
	c.DrawLine(x-arm, y-arm, x+arm, y+arm)
	c.Stroke()
	c.DrawLine(x-arm, y+arm, x+arm, y-arm)
	c.Stroke()
}

func (c *canvas) drawLabel(text string, p r2.Point) {
	x, y := c.toPixel(p)
	c.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: 5 * c.scale()}))
	c.SetColor(jointColor)
	offset := 6 * c.scale()
	c.DrawString(text, x+offset, y-offset)
}

// endEffectorLabel shows the tip position and the heading of the last link in degrees.
func endEffectorLabel(end r2.Point, heading float64) string {
	degrees := utils.RoundTo(utils.RadToDeg(heading), 1)
	if degrees == 0 {
		degrees = 0
	}
	return fmt.Sprintf("%s %.1f°", spatialmath.FormatPoint(end, 2), degrees)
}

// Draw renders scene into a new image.
func Draw(scene Scene, cfg Config) (image.Image, error) {
	if scene.Robot == nil {
		return nil, errors.New("scene has no robot to draw")
	}
	if err := cfg.Validate("render"); err != nil {
		return nil, err
	}
	c := &canvas{cfg: cfg.withDefaults()}
	c.Context = gg.NewContext(c.cfg.Width, c.cfg.Height)
	c.SetColor(backgroundColor)
	c.Clear()
	c.drawAxes()

	if !c.cfg.HideGhosts {
		branches := make([]kinematics.Branch, 0, len(scene.Ghosts))
		for branch := range scene.Ghosts {
			branches = append(branches, branch)
		}
		sort.Slice(branches, func(i, j int) bool { return branches[i] < branches[j] })
		for _, branch := range branches {
			ghost := colorful.Hsv(ghostHues[branch], 0.6, 0.8)
			positions := kinematics.JointPositions(scene.Ghosts[branch])
			c.drawChain(positions, ghost, 3*c.scale(), true)
			c.drawJoints(positions[1:], ghost, 2*c.scale())
		}
	}

	positions := kinematics.JointPositions(scene.Robot)
	c.drawChain(positions, linkColor, 4*c.scale(), false)
	c.drawJoints(positions, jointColor, 3*c.scale())

	if scene.Target != nil {
		c.drawTarget(*scene.Target)
	}
	if c.cfg.Labels {
		for i, joint := range scene.Robot.Joints() {
			if i < len(positions) {
				c.drawLabel(joint.ID, positions[i])
			}
		}
		end, heading := kinematics.EndEffectorPose(scene.Robot)
		c.drawLabel(endEffectorLabel(end, heading), end)
	}
	return c.Image(), nil
}

// WritePNG renders scene and encodes it as a PNG to w.
func WritePNG(w io.Writer, scene Scene, cfg Config) error {
	img, err := Draw(scene, cfg)
	if err != nil {
		return err
	}
	return gg.NewContextForImage(img).EncodePNG(w)
}

// SavePNG renders scene to a PNG file at path.
func SavePNG(path string, scene Scene, cfg Config) error {
	img, err := Draw(scene, cfg)
	if err != nil {
		return err
	}
	return errors.Wrapf(gg.SavePNG(path, img), "failed to save %q", path)
}
