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

// PlanningContext is the shared mutable state a placement strategy drives
// to completion: side tables of host and partition records plus the group
// tree, with no cyclic ownership between them. The planner runs
// single-threaded and synchronous, so unlike the cluster type it is
// modeled on, it carries no mutex (see DESIGN.md).
type PlanningContext struct {
	Config     ClusterConfig
	Hosts      map[int]*HostRecord
	Partitions map[int]*PartitionRecord
	Tree       *GroupTree
}

// NewPlanningContext builds a context for the given config and
// hostId -> HostGroupTag mapping, with one PartitionRecord per partition
// in [0, PartitionCount).
func NewPlanningContext(config ClusterConfig, tags map[int]HostGroupTag) *PlanningContext {
	ctx := &PlanningContext{
		Config:     config,
		Hosts:      make(map[int]*HostRecord, len(tags)),
		Partitions: make(map[int]*PartitionRecord, config.PartitionCount()),
	}
	rackLabels := make(map[int]GroupLabel, len(tags))
	for id, tag := range tags {
		ctx.Hosts[id] = NewHostRecord(id, tag)
		rackLabels[id] = tag.RackGroup
	}
	ctx.Tree = BuildGroupTree(rackLabels)
	for p := 0; p < config.PartitionCount(); p++ {
		ctx.Partitions[p] = NewPartitionRecord(p, config.KFactor)
	}
	return ctx
}

// HostByID looks up a host record.
func (ctx *PlanningContext) HostByID(hostID int) (*HostRecord, bool) {
	h, ok := ctx.Hosts[hostID]
	return h, ok
}

// PartitionByID looks up a partition record.
func (ctx *PlanningContext) PartitionByID(partitionID int) (*PartitionRecord, bool) {
	p, ok := ctx.Partitions[partitionID]
	return p, ok
}

// SortedHostIDs returns every host id in ascending order.
func (ctx *PlanningContext) SortedHostIDs() []int {
	ids := make([]int, 0, len(ctx.Hosts))
	for id := range ctx.Hosts {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// SortedPartitionIDs returns every partition id in ascending order.
func (ctx *PlanningContext) SortedPartitionIDs() []int {
	ids := make([]int, 0, len(ctx.Partitions))
	for id := range ctx.Partitions {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// RecordReplicaEdge assigns hostID as a replica of partition p, updating
// the peer multigraph against every other host already holding p.
func (ctx *PlanningContext) RecordReplicaEdge(p, hostID int) error {
	host, ok := ctx.Hosts[hostID]
	if !ok {
		return NewPlannerError(ErrOverReplication, "unknown host in replica assignment")
	}
	pr, ok := ctx.Partitions[p]
	if !ok {
		return NewPlannerError(ErrOverReplication, "unknown partition in replica assignment")
	}
	for peer := range pr.HostSet() {
		if peer == hostID {
			continue
		}
		host.RecordPeer(peer, p)
		if peerHost, ok := ctx.Hosts[peer]; ok {
			peerHost.RecordPeer(hostID, p)
		}
	}
	if err := pr.AssignReplica(hostID); err != nil {
		return err
	}
	host.AssignReplica(p)
	if host.TotalSites() >= ctx.Config.SitesPerHost {
		ctx.Tree.RemoveHost(hostID)
	}
	return nil
}

// UndoReplicaEdge reverses RecordReplicaEdge for a failed backtracking
// attempt.
func (ctx *PlanningContext) UndoReplicaEdge(p, hostID int) {
	host, ok := ctx.Hosts[hostID]
	if !ok {
		return
	}
	pr, ok := ctx.Partitions[p]
	if !ok {
		return
	}
	wasSaturated := host.TotalSites() >= ctx.Config.SitesPerHost
	pr.UndoReplica(hostID)
	delete(host.Replicas, p)
	for peer := range pr.HostSet() {
		if peer == hostID {
			continue
		}
		if set, ok := host.Peers[peer]; ok {
			delete(set, p)
		}
		if peerHost, ok := ctx.Hosts[peer]; ok {
			if set, ok := peerHost.Peers[hostID]; ok {
				delete(set, p)
			}
		}
	}
	if wasSaturated && host.TotalSites() < ctx.Config.SitesPerHost {
		ctx.Tree.AddHost(hostID, host.Group.RackGroup)
	}
}

// AssignMasterTo records hostID as master of partition p and marks the
// host saturated in the group tree if it has now reached capacity.
func (ctx *PlanningContext) AssignMasterTo(p, hostID int) error {
	host, ok := ctx.Hosts[hostID]
	if !ok {
		return NewPlannerError(ErrOverReplication, "unknown host in master assignment")
	}
	pr, ok := ctx.Partitions[p]
	if !ok {
		return NewPlannerError(ErrOverReplication, "unknown partition in master assignment")
	}
	if err := pr.AssignMaster(hostID); err != nil {
		return err
	}
	host.AssignMaster(p)
	if host.TotalSites() >= ctx.Config.SitesPerHost {
		ctx.Tree.RemoveHost(hostID)
	}
	return nil
}
