// Copyright 2020 ConsenSys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fp_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/mengsuenyan/plonky/ecc/bls12377/fp"
	"github.com/stretchr/testify/require"
)

func genElement() gopter.Gen {
	return func(params *gopter.GenParameters) *gopter.GenResult {
		e, err := fp.Random(nil)
		if err != nil {
			panic(err)
		}
		return gopter.NewGenResult(e, gopter.NoShrinker)
	}
}

func TestFieldLaws(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 64
	properties := gopter.NewProperties(parameters)

	properties.Property("x + 0 == x", prop.ForAll(
		func(x fp.Element) bool {
			var y fp.Element
			y.Add(&x, &fp.Zero)
			return y.Equal(x)
		},
		genElement(),
	))

	properties.Property("x + (-x) == 0", prop.ForAll(
		func(x fp.Element) bool {
			var negX, sum fp.Element
			negX.Neg(&x)
			sum.Add(&x, &negX)
			return sum.Equal(fp.Zero)
		},
		genElement(),
	))

	properties.Property("multiplication commutes and associates", prop.ForAll(
		func(x, y, z fp.Element) bool {
			var xy, yx fp.Element
			xy.Mul(&x, &y)
			yx.Mul(&y, &x)
			if !xy.Equal(yx) {
				return false
			}
			var xyz1, yz, xyz2 fp.Element
			xyz1.Mul(&xy, &z)
			yz.Mul(&y, &z)
			xyz2.Mul(&x, &yz)
			return xyz1.Equal(xyz2)
		},
		genElement(), genElement(), genElement(),
	))

	properties.Property("distributivity", prop.ForAll(
		func(x, y, z fp.Element) bool {
			var yz, lhs, xy, xz, rhs fp.Element
			yz.Add(&y, &z)
			lhs.Mul(&x, &yz)
			xy.Mul(&x, &y)
			xz.Mul(&x, &z)
			rhs.Add(&xy, &xz)
			return lhs.Equal(rhs)
		},
		genElement(), genElement(), genElement(),
	))

	properties.Property("x != 0 implies x * inv(x) == 1", prop.ForAll(
		func(x fp.Element) bool {
			if x.IsZero() {
				return true
			}
			inv, ok := new(fp.Element).Inverse(&x)
			if !ok {
				return false
			}
			var prod fp.Element
			prod.Mul(&x, inv)
			return prod.Equal(fp.One)
		},
		genElement(),
	))

	properties.TestingRun(t)
}

func TestInverseZero(t *testing.T) {
	_, ok := new(fp.Element).Inverse(&fp.Zero)
	require.False(t, ok)
}

func TestBytesRoundTrip(t *testing.T) {
	x, err := fp.Random(nil)
	require.NoError(t, err)
	b := x.Bytes()
	var y fp.Element
	_, ok := y.SetCanonicalBytes(b[:])
	require.True(t, ok)
	require.True(t, x.Equal(y))
}
