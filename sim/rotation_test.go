package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// assertOrthogonal checks Rᵗ·R ≈ I.
func assertOrthogonal(t *testing.T, r mat.Matrix) {
	t.Helper()
	n, c := r.Dims()
	require.Equal(t, n, c)
	var prod mat.Dense
	prod.Mul(r.T(), r)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDelta(t, want, prod.At(i, j), 1e-10, "entry (%d,%d)", i, j)
		}
	}
}

func TestRandomOrthogonal_AllSizes(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for k := 1; k <= 12; k++ {
		assertOrthogonal(t, RandomOrthogonal(k, rng))
	}
}

func TestNewRotation_BlockStructure(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	groups := [][]int{{1, 3, 5}, {2, 4}}
	rot := NewRotation(8, groups, rng)
	assertOrthogonal(t, rot)

	inGroup := map[int]int{1: 0, 3: 0, 5: 0, 2: 1, 4: 1}
	rows, _ := rot.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < rows; j++ {
			gi, iOK := inGroup[i+1]
			gj, jOK := inGroup[j+1]
			switch {
			case iOK && jOK && gi == gj:
				// inside a block: free entries
			case i == j:
				assert.Equal(t, 1.0, rot.At(i, j), "untouched diagonal (%d,%d)", i, j)
			default:
				assert.Equal(t, 0.0, rot.At(i, j), "cross-block entry (%d,%d)", i, j)
			}
		}
	}
}

func TestNewRotation_EmptyGroupsIsIdentity(t *testing.T) {
	rot := NewRotation(4, nil, rand.New(rand.NewSource(1)))
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.Equal(t, want, rot.At(i, j))
		}
	}
}

func TestRandomOrthogonal_PreservesCovariance(t *testing.T) {
	// Rotating a covariance by an orthogonal matrix keeps eigenvalues; check
	// the trace, which is their sum.
	rng := rand.New(rand.NewSource(23))
	k := 6
	r := RandomOrthogonal(k, rng)
	cov := mat.NewDense(k, k, nil)
	for i := 0; i < k; i++ {
		cov.Set(i, i, float64(k-i))
	}
	rotated := rotateSym(cov, r)
	var trace, wantTrace float64
	for i := 0; i < k; i++ {
		trace += rotated.At(i, i)
		wantTrace += cov.At(i, i)
	}
	assert.InDelta(t, wantTrace, trace, 1e-10)
}
