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
	"errors"
	"fmt"
	"sort"
)

// ErrBuddyNotApplicable is a sentinel, not a failure: it signals that the
// host set has only one buddy group, so the caller should fall through to
// the group-aware strategy over the whole cluster.
var ErrBuddyNotApplicable = errors.New("buddy strategy not applicable: single buddy group")

// PlanBuddy groups hosts by buddy label; each buddy group must itself be
// k-safe; the partition space is divided proportionally to each group's
// host share, and each buddy group's slice is solved independently by
// PlanGroupAware before being merged back into ctx.
func PlanBuddy(ctx *PlanningContext, req *PlanRequest) error {
	buddyHosts := make(map[string][]int)
	for _, hostID := range ctx.SortedHostIDs() {
		tag := ctx.Hosts[hostID].Group
		buddyHosts[tag.BuddyGroup] = append(buddyHosts[tag.BuddyGroup], hostID)
	}

	buddyLabels := make([]string, 0, len(buddyHosts))
	for label := range buddyHosts {
		buddyLabels = append(buddyLabels, label)
	}
	sort.Strings(buddyLabels)

	if len(buddyLabels) <= 1 {
		return ErrBuddyNotApplicable
	}

	replicaWidth := ctx.Config.KFactor + 1
	totalHosts := ctx.Config.HostCount
	totalPartitions := ctx.Config.PartitionCount()

	for _, label := range buddyLabels {
		hostCount := len(buddyHosts[label])
		if hostCount/replicaWidth < 1 {
			return NewPlannerError(ErrInsufficientGroupDiversity,
				fmt.Sprintf("buddy group %q has %d hosts, needs at least %d for k-safety", label, hostCount, replicaWidth))
		}
	}

	start := 0
	for i, label := range buddyLabels {
		hosts := buddyHosts[label]
		var count int
		if i == len(buddyLabels)-1 {
			count = totalPartitions - start
		} else {
			count = totalPartitions * len(hosts) / totalHosts
		}
		partitionRange := make([]int, count)
		for j := 0; j < count; j++ {
			partitionRange[j] = start + j
		}
		start += count

		if err := planBuddyGroup(ctx, req, hosts, partitionRange); err != nil {
			return err
		}
	}
	return nil
}

// planBuddyGroup runs the group-aware strategy over one buddy group's
// host subset and partition range, in isolation from every other buddy
// group, then merges the resulting host/partition records back into ctx.
func planBuddyGroup(ctx *PlanningContext, req *PlanRequest, hostIDs, partitionIDs []int) error {
	subTags := make(map[int]HostGroupTag, len(hostIDs))
	for _, id := range hostIDs {
		subTags[id] = ctx.Hosts[id].Group
	}

	subConfig := ClusterConfig{
		HostCount:    len(hostIDs),
		SitesPerHost: ctx.Config.SitesPerHost,
		KFactor:      ctx.Config.KFactor,
	}
	subCtx := &PlanningContext{
		Config:     subConfig,
		Hosts:      make(map[int]*HostRecord, len(hostIDs)),
		Partitions: make(map[int]*PartitionRecord, len(partitionIDs)),
	}
	rackLabels := make(map[int]GroupLabel, len(hostIDs))
	for _, id := range hostIDs {
		subCtx.Hosts[id] = NewHostRecord(id, subTags[id])
		rackLabels[id] = subTags[id].RackGroup
	}
	subCtx.Tree = BuildGroupTree(rackLabels)
	for _, p := range partitionIDs {
		subCtx.Partitions[p] = NewPartitionRecord(p, ctx.Config.KFactor)
	}

	subReq := &PlanRequest{
		Config:            subConfig,
		HostTags:          subTags,
		PartitionMasters:  filterIntMap(req.PartitionMasters, partitionIDs),
		PartitionReplicas: filterSliceMap(req.PartitionReplicas, partitionIDs),
	}

	if err := PlanGroupAware(subCtx, subReq); err != nil {
		return err
	}

	for id, h := range subCtx.Hosts {
		ctx.Hosts[id] = h
	}
	for id, p := range subCtx.Partitions {
		ctx.Partitions[id] = p
	}
	return nil
}

func filterIntMap(m map[int]int, keys []int) map[int]int {
	if len(m) == 0 {
		return nil
	}
	keySet := make(map[int]struct{}, len(keys))
	for _, k := range keys {
		keySet[k] = struct{}{}
	}
	out := make(map[int]int)
	for k, v := range m {
		if _, ok := keySet[k]; ok {
			out[k] = v
		}
	}
	return out
}

func filterSliceMap(m map[int][]int, keys []int) map[int][]int {
	if len(m) == 0 {
		return nil
	}
	keySet := make(map[int]struct{}, len(keys))
	for _, k := range keys {
		keySet[k] = struct{}{}
	}
	out := make(map[int][]int)
	for k, v := range m {
		if _, ok := keySet[k]; ok {
			out[k] = v
		}
	}
	return out
}
