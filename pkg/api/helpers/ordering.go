package helpers

import (
	"fmt"
	"sort"
	"strings"

	"aaaas/sequence-api/pkg/api/model"
)

// SortPhases orders phases by ascending position, keeping backend order on ties
func SortPhases(phases []model.SequencePhase) {
	sort.SliceStable(phases, func(i, j int) bool {
		return phases[i].Position < phases[j].Position
	})
}

// SortPoses orders poses by ascending position
func SortPoses(poses []model.SequencePose) {
	sort.SliceStable(poses, func(i, j int) bool {
		return poses[i].Position < poses[j].Position
	})
}

// DuplicatePosition returns the first position used by more than one pose
func DuplicatePosition(poses []model.SequencePose) (int, bool) {
	seen := make(map[int]bool, len(poses))
	for _, p := range poses {
		if seen[p.Position] {
			return p.Position, true
		}
		seen[p.Position] = true
	}
	return 0, false
}

// DefaultSequenceName builds a readable name such as "45 min Beginner Vinyasa - Core"
func DefaultSequenceName(params model.SequenceRequestParams) string {
	return fmt.Sprintf("%g min %s %s - %s",
		params.Duration,
		titleCase(string(params.Difficulty)),
		titleCase(string(params.Style)),
		titleCase(string(params.Focus)))
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// AllocateSeconds splits total seconds across weights. Every share is at least
// one second and the shares add up to total whenever total >= len(weights).
func AllocateSeconds(total int, weights []int) []int {
	shares := make([]int, len(weights))
	if len(weights) == 0 {
		return shares
	}
	sum := 0
	for _, w := range weights {
		sum += w
	}
	even := sum == 0
	if even {
		sum = len(weights)
	}

	assigned := 0
	for i, w := range weights {
		if even {
			w = 1
		}
		shares[i] = total * w / sum
		if shares[i] < 1 {
			shares[i] = 1
		}
		assigned += shares[i]
	}
	// hand the rounding remainder to the largest share
	largest := 0
	for i := range shares {
		if shares[i] > shares[largest] {
			largest = i
		}
	}
	if rest := total - assigned; shares[largest]+rest >= 1 {
		shares[largest] += rest
	}
	return shares
}
