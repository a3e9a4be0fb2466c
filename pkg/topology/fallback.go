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

import "sort"

// PlanFallback implements the deterministic, group-ignorant round-robin
// strategy. It walks every host*site slot in host-major order, assigning
// slot i to partition (i mod P) on hostIds[i/S]; each partition's replica
// list is then sorted by host id and its master chosen as
// replicas[p mod (K+1)].
func PlanFallback(ctx *PlanningContext) error {
	hostIDs := ctx.SortedHostIDs()
	partitionCount := ctx.Config.PartitionCount()
	replicaWidth := ctx.Config.KFactor + 1

	assigned := make(map[int][]int, partitionCount)
	for slotIndex, hostID := range expandSlots(hostIDs, ctx.Config.SitesPerHost) {
		p := slotIndex % partitionCount
		assigned[p] = append(assigned[p], hostID)
	}

	for p := 0; p < partitionCount; p++ {
		replicas := assigned[p]
		sort.Ints(replicas)
		masterHostID := replicas[p%replicaWidth]

		for _, hostID := range replicas {
			if hostID == masterHostID {
				continue
			}
			if err := ctx.RecordReplicaEdge(p, hostID); err != nil {
				return err
			}
		}
		if err := ctx.AssignMasterTo(p, masterHostID); err != nil {
			return err
		}
	}
	return nil
}

// expandSlots repeats each host id sitesPerHost times, in host-major
// order, producing the H*S slot sequence PlanFallback walks.
func expandSlots(hostIDs []int, sitesPerHost int) []int {
	slots := make([]int, 0, len(hostIDs)*sitesPerHost)
	for _, id := range hostIDs {
		for s := 0; s < sitesPerHost; s++ {
			slots = append(slots, id)
		}
	}
	return slots
}
