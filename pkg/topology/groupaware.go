// Copyright 2024 Atomstate Technologies Private Limited
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

package topology

import (
	"fmt"
	"sort"

	"go.uber.org/multierr"

	"github.com/ackris/topoplanner/pkg/utils"
)

// PlanGroupAware assigns masters then searches for a rack-diverse replica
// placement via backtracking, falling back to any qualified candidate
// when no preferred one exists. Document emission is handled separately
// by the document codec. It mutates ctx in place and returns a
// PlannerError with ErrPlacementInfeasible if no complete assignment
// exists for a non-rejoin request.
func PlanGroupAware(ctx *PlanningContext, req *PlanRequest) error {
	if err := distributeMasters(ctx, req); err != nil {
		return err
	}
	if err := honorPreexistingReplicas(ctx, req); err != nil {
		return err
	}
	return fillReplicas(ctx, req.isRejoin())
}

// distributeMasters is step 1: pre-specified masters are honored, the
// rest are drawn round-robin from the canonical (null-target) host
// ordering, restarting when exhausted.
func distributeMasters(ctx *PlanningContext, req *PlanRequest) error {
	deques := ctx.Tree.SortNodesByDistance(GroupLabel{})
	var canonical []int
	if len(deques) > 0 {
		canonical = deques[0]
	}
	var iter *utils.CircularIterator[int]
	if len(canonical) > 0 {
		var err error
		iter, err = utils.NewCircularIterator(canonical)
		if err != nil {
			return NewPlannerError(ErrPlacementInfeasible, "failed to build host rotation: "+err.Error())
		}
	}
	for _, p := range ctx.SortedPartitionIDs() {
		var masterID int
		if preset, ok := req.PartitionMasters[p]; ok {
			masterID = preset
		} else {
			if iter == nil {
				return NewPlannerError(ErrPlacementInfeasible, "no hosts available for master distribution")
			}
			masterID = iter.Next()
		}
		if err := ctx.AssignMasterTo(p, masterID); err != nil {
			return err
		}
	}
	return nil
}

// honorPreexistingReplicas is step 2: rejoin inputs are applied before any
// new candidate selection happens.
func honorPreexistingReplicas(ctx *PlanningContext, req *PlanRequest) error {
	for _, p := range ctx.SortedPartitionIDs() {
		hostIDs := append([]int(nil), req.PartitionReplicas[p]...)
		sort.Ints(hostIDs)
		for _, hostID := range hostIDs {
			if err := ctx.RecordReplicaEdge(p, hostID); err != nil {
				return err
			}
		}
	}
	return nil
}

// fillReplicas is steps 3-4: per-partition candidate ordering and the
// recursive qualified/preferred assignment search. The recursion unit is
// one replica slot, flattened across every partition in id order, which
// bounds recursion depth by P*(K+1) as the design notes describe.
func fillReplicas(ctx *PlanningContext, rejoin bool) error {
	var slots []int
	for _, p := range ctx.SortedPartitionIDs() {
		for r := 0; r < ctx.Partitions[p].NeededReplicas; r++ {
			slots = append(slots, p)
		}
	}

	var fill func(idx int) error
	fill = func(idx int) error {
		if idx == len(slots) {
			return nil
		}
		p := slots[idx]
		pr := ctx.Partitions[p]
		if pr.NeededReplicas == 0 {
			return fill(idx + 1)
		}

		candidates := candidateOrderFor(ctx, p)
		tryList := selectTryList(ctx, p, candidates)

		if len(tryList) == 0 {
			if rejoin {
				return fill(idx + 1)
			}
			return NewPlannerError(ErrPlacementInfeasible,
				"no qualified candidate for partition replica assignment")
		}

		var trail error
		for _, candidateID := range tryList {
			if err := ctx.RecordReplicaEdge(p, candidateID); err != nil {
				return err
			}
			if err := fill(idx + 1); err == nil {
				return nil
			} else {
				trail = multierr.Append(trail, fmt.Errorf("host %d: %w", candidateID, err))
			}
			ctx.UndoReplicaEdge(p, candidateID)
		}
		if rejoin {
			return fill(idx + 1)
		}
		return WrapPlannerError(ErrPlacementInfeasible,
			"exhausted all candidates for partition replica assignment", trail)
	}

	return fill(0)
}

// candidateOrderFor is step 3: sortNodesByDistance from the partition's
// master group, with each returned deque stably sorted by ascending peer
// edge count, ascending replication factor, and ascending master count.
func candidateOrderFor(ctx *PlanningContext, p int) []int {
	pr := ctx.Partitions[p]
	masterHost := ctx.Hosts[*pr.Master]
	deques := ctx.Tree.SortNodesByDistance(masterHost.Group.RackGroup)

	var flat []int
	for _, deque := range deques {
		sorted := append([]int(nil), deque...)
		sort.SliceStable(sorted, func(i, j int) bool {
			hi, hj := ctx.Hosts[sorted[i]], ctx.Hosts[sorted[j]]
			if ei, ej := hi.PeerEdgeCount(*pr.Master), hj.PeerEdgeCount(*pr.Master); ei != ej {
				return ei < ej
			}
			if ri, rj := hi.ReplicationFactor(ctx), hj.ReplicationFactor(ctx); ri != rj {
				return ri < rj
			}
			return hi.MasterCount() < hj.MasterCount()
		})
		flat = append(flat, sorted...)
	}
	return flat
}

// selectTryList is step 4's qualified/preferred filter: if any preferred
// candidates exist only they are tried, otherwise every qualified
// candidate is tried, in the order candidates already carries.
func selectTryList(ctx *PlanningContext, p int, candidates []int) []int {
	var qualified, preferred []int
	for _, candidateID := range candidates {
		if !isQualified(ctx, p, candidateID) {
			continue
		}
		qualified = append(qualified, candidateID)
		if isPreferred(ctx, p, candidateID) {
			preferred = append(preferred, candidateID)
		}
	}
	if len(preferred) > 0 {
		return preferred
	}
	return qualified
}

// isQualified reports whether candidateID may hold partition p: it has
// spare capacity, does not already hold p, and, when the cluster has more
// than one leaf rack group and p has no replicas yet, is in a different
// leaf group from the master.
func isQualified(ctx *PlanningContext, p, candidateID int) bool {
	host := ctx.Hosts[candidateID]
	pr := ctx.Partitions[p]
	if host.TotalSites() >= ctx.Config.SitesPerHost {
		return false
	}
	if host.HoldsPartition(p) {
		return false
	}
	if ctx.Tree.GroupCount() > 1 && len(pr.Replicas) == 0 {
		masterHost := ctx.Hosts[*pr.Master]
		if host.Group.RackGroup.Equal(masterHost.Group.RackGroup) {
			return false
		}
	}
	return true
}

// isPreferred reports whether a qualified candidate's rack group differs
// from the master's and from every already-chosen replica's group.
func isPreferred(ctx *PlanningContext, p, candidateID int) bool {
	host := ctx.Hosts[candidateID]
	pr := ctx.Partitions[p]
	masterHost := ctx.Hosts[*pr.Master]
	if host.Group.RackGroup.Equal(masterHost.Group.RackGroup) {
		return false
	}
	for replicaID := range pr.Replicas {
		replicaHost := ctx.Hosts[replicaID]
		if host.Group.RackGroup.Equal(replicaHost.Group.RackGroup) {
			return false
		}
	}
	return true
}
