package lqgame

import "github.com/rcaudy/ilqgames/internal/playercost"

// buildCouplingSystem assembles the block linear system of spec §4.3
// step 1:
//
//	S_ii(k)  = R_ii(k) + B_i(k)^T Z_i(k+1) B_i(k)
//	S_ij(k)  = B_i(k)^T Z_i(k+1) B_j(k),  i != j
//	Yp_i(k)  = B_i(k)^T Z_i(k+1) A(k)
//	Ya_i(k)  = B_i(k)^T zeta_i(k+1) + r_ii(k)
//
// S is NOT block-diagonal and NOT generally symmetric (spec §9:
// off-diagonal blocks are first-class and need not be symmetric).
func buildCouplingSystem(
	A [][]float64,
	B [][][]float64,
	Z [][][]float64,
	zeta [][]float64,
	stageCost []playercost.QuadraticCostApproximation,
	uDims []int,
	xDim int,
) (S [][]float64, Yp [][]float64, Ya []float64) {

	n := len(uDims)
	total := 0
	offsets := make([]int, n)
	for i, d := range uDims {
		offsets[i] = total
		total += d
	}

	S = zerosMat(total, total)
	Yp = zerosMat(total, xDim)
	Ya = zerosVec(total)

	for i := 0; i < n; i++ {
		Bi := B[i]
		BiT := transpose(Bi)
		ZiBi := mul(Z[i], Bi)
		BiTZi := mul(BiT, Z[i])

		Sii := add(stageCost[i].Ruu[i], mul(BiT, ZiBi))
		placeBlock(S, Sii, offsets[i], offsets[i])

		YpI := mul(BiTZi, A)
		for r := 0; r < uDims[i]; r++ {
			copy(Yp[offsets[i]+r], YpI[r])
		}

		YaI := addVec(mulVec(BiT, zeta[i]), stageCost[i].Ru[i])
		for r := 0; r < uDims[i]; r++ {
			Ya[offsets[i]+r] = YaI[r]
		}

		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			Sij := mul(BiT, mul(Z[i], B[j]))
			placeBlock(S, Sij, offsets[i], offsets[j])
		}
	}

	return S, Yp, Ya
}

func placeBlock(dst, block [][]float64, rowOff, colOff int) {
	for r := range block {
		for c := range block[r] {
			dst[rowOff+r][colOff+c] = block[r][c]
		}
	}
}
