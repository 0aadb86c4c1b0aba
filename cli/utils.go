package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/golang/geo/r2"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/cast"

	"go.armlab.dev/planar/referenceframe"
	"go.armlab.dev/planar/spatialmath"
	"go.armlab.dev/planar/utils"
)

const pointPlaces = 4

// parseAssignments reads "q1=90, q2=-45" into values keyed by component id. kind names the value
// in errors.
func parseAssignments(list, kind string) (map[string]float64, error) {
	values := map[string]float64{}
	for _, pair := range strings.Split(list, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		id, raw, ok := strings.Cut(pair, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, errors.Errorf("%s %q must look like ID=%s", kind, pair, strings.ToUpper(kind))
		}
		if _, dup := values[id]; dup {
			return nil, errors.Errorf("%q is given more than once", id)
		}
		value, err := cast.ToFloat64E(strings.TrimSpace(raw))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s for %q", kind, id)
		}
		values[id] = value
	}
	if len(values) == 0 {
		return nil, errors.Errorf("no %ss in %q", kind, list)
	}
	return values, nil
}

// parseAngles reads joint angles into radians.
func parseAngles(list string, radians bool) (map[string]float64, error) {
	angles, err := parseAssignments(list, "angle")
	if err != nil || radians {
		return angles, err
	}
	return lo.MapValues(angles, func(angle float64, _ string) float64 { return utils.DegToRad(angle) }), nil
}

// parseLengths reads link lengths.
func parseLengths(list string) (map[string]float64, error) {
	return parseAssignments(list, "length")
}

func formatAngle(angle float64, radians bool) string {
	if radians {
		return formatNumber(angle, pointPlaces)
	}
	return formatNumber(utils.RadToDeg(angle), 2)
}

func formatNumber(value float64, places int) string {
	value = utils.RoundTo(value, places)
	if value == 0 {
		value = 0
	}
	return fmt.Sprintf("%.*f", places, value)
}

func angleUnit(radians bool) string {
	if radians {
		return "rad"
	}
	return "deg"
}

// positionsTable lists the base and the end of every link.
func positionsTable(robot *referenceframe.Robot, positions []r2.Point) string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("%s positions", robot.Name))
	t.AppendHeader(table.Row{"#", "Point", "X", "Y"})
	links := robot.Links()
	for i, p := range positions {
		name := "base"
		if i > 0 && i <= len(links) {
			name = links[i-1].ID
		}
		t.AppendRow(table.Row{i, name, formatNumber(p.X, pointPlaces), formatNumber(p.Y, pointPlaces)})
	}
	return t.Render()
}

func printf(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintf(w, format+"\n", a...)
}

func infof(w io.Writer, format string, a ...interface{}) {
	color.New(color.FgGreen).Fprintf(w, format+"\n", a...)
}

func warningf(w io.Writer, format string, a ...interface{}) {
	color.New(color.FgYellow, color.Bold).Fprint(w, "Warning: ")
	fmt.Fprintf(w, format+"\n", a...)
}

func formatPoint(p r2.Point) string {
	return spatialmath.FormatPoint(p, pointPlaces)
}
