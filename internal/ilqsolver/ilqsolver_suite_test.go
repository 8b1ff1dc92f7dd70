package ilqsolver_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestIlqsolver(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ilqsolver Suite")
}
