package lqgame_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rcaudy/ilqgames/internal/lqgame"
	"github.com/rcaudy/ilqgames/internal/playercost"
)

func buildSingleStageSystem(T int, q, ruu, ru float64) ([]lqgame.StepLinearization, []lqgame.StepCost) {
	lin := make([]lqgame.StepLinearization, T)
	cost := make([]lqgame.StepCost, T)
	for k := 0; k < T; k++ {
		lin[k] = lqgame.StepLinearization{A: [][]float64{{1}}, B: [][][]float64{{{1}}}}
		cost[k] = lqgame.StepCost{Players: []playercost.QuadraticCostApproximation{
			{
				Q:   [][]float64{{q}},
				L:   []float64{0},
				Ruu: [][][]float64{{{ruu}}},
				Ru:  [][]float64{{ru}},
			},
		}}
	}
	return lin, cost
}

var _ = Describe("coupled Riccati recursion", func() {
	Context("scale invariance", func() {
		It("produces the same feedback gain over a multi-step horizon when every cost block is scaled by the same positive constant", func() {
			lin, cost := buildSingleStageSystem(4, 1, 1, 0)
			unscaled, err := lqgame.Solve(lin, cost, 1, []int{1})
			Expect(err).NotTo(HaveOccurred())

			linScaled, costScaled := buildSingleStageSystem(4, 5, 5, 0)
			scaled, err := lqgame.Solve(linScaled, costScaled, 1, []int{1})
			Expect(err).NotTo(HaveOccurred())

			for k := range unscaled[0].P {
				Expect(scaled[0].P[k][0][0]).To(BeNumerically("~", unscaled[0].P[k][0][0], 1e-9))
			}
			// Sanity: the gain should actually be nonzero away from the
			// terminal condition, or this check would be vacuous.
			Expect(unscaled[0].P[0][0][0]).ToNot(BeZero())
		})

		It("leaves alpha unchanged when the linear cost term is scaled together with Q and Ruu", func() {
			lin, cost := buildSingleStageSystem(4, 1, 1, 2)
			unscaled, err := lqgame.Solve(lin, cost, 1, []int{1})
			Expect(err).NotTo(HaveOccurred())

			linScaled, costScaled := buildSingleStageSystem(4, 3, 3, 6)
			scaled, err := lqgame.Solve(linScaled, costScaled, 1, []int{1})
			Expect(err).NotTo(HaveOccurred())

			for k := range unscaled[0].Alpha {
				Expect(scaled[0].Alpha[k][0]).To(BeNumerically("~", unscaled[0].Alpha[k][0], 1e-9))
			}
			Expect(unscaled[0].Alpha[0][0]).ToNot(BeZero())
		})
	})

	Context("a single timestep with zero terminal cost-to-go", func() {
		It("returns a feedback gain matching the static one-shot LQR solution P = (R + B^T*0*B)^-1 B^T*0*A = 0", func() {
			lin, cost := buildSingleStageSystem(1, 1, 1, 0)
			feedback, err := lqgame.Solve(lin, cost, 1, []int{1})
			Expect(err).NotTo(HaveOccurred())
			Expect(feedback[0].P[0][0][0]).To(BeNumerically("~", 0, 1e-12))
			Expect(feedback[0].Alpha[0][0]).To(BeNumerically("~", 0, 1e-12))
		})
	})
})
