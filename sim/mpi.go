// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"github.com/emer/empi/mpi"
	"github.com/goki/ki/ints"
)

// AllocPops returns the [st, ed) range of npop populations that are run by
// this MPI rank.  Populations are divided into contiguous blocks as evenly
// as possible, with the lower ranks taking any remainder.  Without mpi all
// populations belong to the single process.
func AllocPops(npop int) (st, ed int) {
	return RankRange(npop, mpi.WorldRank(), mpi.WorldSize())
}

// RankRange returns the [st, ed) block of n items for given rank out of size
func RankRange(n, rank, size int) (st, ed int) {
	if size <= 1 {
		return 0, n
	}
	per := n / size
	rem := n % size
	st = rank*per + ints.MinInt(rank, rem)
	ed = st + per
	if rank < rem {
		ed++
	}
	return
}

// RankOff turns Off all pops that are not run by this MPI rank, and
// returns the number of pops still on.  Call before Build.
func (nt *Network) RankOff() int {
	st, ed := AllocPops(len(nt.Pops))
	for pi, p := range nt.Pops {
		if pi < st || pi >= ed {
			p.Off = true
		}
	}
	return ed - st
}
