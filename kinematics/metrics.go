package kinematics

import (
	"math"
	"sort"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
)

// JointDistance is the L2 norm of the change in joint angles needed to go from current to the
// solution. Joints of the solution missing from current are treated as being at zero.
func JointDistance(current map[string]float64, solution Solution) float64 {
	ids := lo.Keys(solution)
	sort.Strings(ids)
	from := make([]float64, len(ids))
	to := make([]float64, len(ids))
	for i, id := range ids {
		from[i] = current[id]
		to[i] = solution[id].Angle
	}
	return floats.Distance(from, to, 2)
}

// BestBranch picks the branch that needs the least joint motion from the current angles. Ties go to
// the branch listed first by Solutions.Branches. The bool is false if there are no solutions.
func BestBranch(current map[string]float64, solutions Solutions) (Branch, bool) {
	var best Branch
	found := false
	dist := math.Inf(1)
	for _, branch := range solutions.Branches() {
		newDist := JointDistance(current, solutions[branch])
		if newDist < dist {
			dist = newDist
			best = branch
			found = true
		}
	}
	return best, found
}
