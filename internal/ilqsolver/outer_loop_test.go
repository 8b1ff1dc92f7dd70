package ilqsolver_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rcaudy/ilqgames/internal/examples"
	"github.com/rcaudy/ilqgames/internal/ilqerrors"
	"github.com/rcaudy/ilqgames/internal/ilqlog"
	"github.com/rcaudy/ilqgames/internal/ilqsolver"
	"github.com/rcaudy/ilqgames/internal/jointstate"
	"github.com/rcaudy/ilqgames/internal/playercost"
	"github.com/rcaudy/ilqgames/internal/strategy"
)

func unicycleGoalScenario() (*examples.Unicycle, []playercost.PlayerCost, jointstate.JointState, strategy.OperatingPoint) {
	dyn := examples.NewUnicycle(1)
	T := 20
	x0 := jointstate.JointState{1, 1, 0, 1}

	goal := examples.NewGoalCost(4, 0, 1, 0, 0, 25.0)
	ctrl := examples.NewQuadraticControlCost(0, 1.0)
	cost := &playercost.QuadraticCost{
		Self:         0,
		XDim:         4,
		UDims:        []int{2},
		StateTerms:   []playercost.StateCostTerm{goal},
		ControlTerms: []playercost.ControlCostTerm{ctrl},
	}

	initial := strategy.NewOperatingPoint(T, 4, []int{2}, 0)
	for k := range initial.Xhat {
		copy(initial.Xhat[k], x0)
	}

	return dyn, []playercost.PlayerCost{cost}, x0, initial
}

var _ = Describe("the outer iterative LQ solver", func() {
	Context("on a single-player unicycle-to-origin problem", func() {
		var result ilqsolver.Result

		BeforeEach(func() {
			dyn, costs, x0, initial := unicycleGoalScenario()
			cfg := ilqsolver.Config{TimeStep: 0.1, MaxIterations: 50, ConvergenceTolerance: 0.1, InitialAlphaScaling: 1}

			var err error
			result, err = ilqsolver.Solve(dyn, costs, x0, initial, cfg, &ilqlog.Logger{})
			Expect(err).NotTo(HaveOccurred())
		})

		It("converges within the configured iteration budget", func() {
			Expect(result.Status.Converged).To(BeTrue())
		})

		It("drives the final state within 0.1m of the origin", func() {
			final := result.OperatingPoint.Xhat[len(result.OperatingPoint.Xhat)-1]
			dist := math.Hypot(final[0], final[1])
			Expect(dist).To(BeNumerically("<=", 0.1))
		})

		It("returns strategies with dimensionally consistent P and Alpha at every timestep", func() {
			for _, s := range result.Strategies {
				Expect(s.P).To(HaveLen(len(result.OperatingPoint.Xhat)))
				for k := range s.P {
					Expect(s.P[k]).To(HaveLen(2))     // u_dim
					Expect(s.P[k][0]).To(HaveLen(4))  // x_dim
					Expect(s.Alpha[k]).To(HaveLen(2)) // u_dim
				}
			}
		})
	})

	Context("given mismatched dynamics and cost dimensions", func() {
		It("rejects the configuration before running any solve logic", func() {
			dyn := examples.NewUnicycle(1)
			initial := strategy.NewOperatingPoint(3, 4, []int{2}, 0)
			costs := []playercost.PlayerCost{
				&playercost.QuadraticCost{Self: 0, XDim: 4, UDims: []int{2}},
				&playercost.QuadraticCost{Self: 1, XDim: 4, UDims: []int{2}}, // one cost too many
			}

			_, err := ilqsolver.Solve(dyn, costs, jointstate.JointState{0, 0, 0, 0}, initial, ilqsolver.DefaultConfig(), &ilqlog.Logger{})
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, ilqerrors.ErrConfigMismatch)).To(BeTrue())
		})
	})
})
