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

// HostGroupTag is the extensible (rackGroup, buddyGroup) pair associated
// with a host id.
type HostGroupTag struct {
	RackGroup  GroupLabel
	BuddyGroup string
}

// HostRecord is a mutable planning record for a single host: its group
// tag, the partitions it masters, the partitions for which it is a
// replica, and a peer multigraph recording every (partition, peer)
// replication edge. Modeled on internal/client/common/node.go's field
// shape, generalized with side-table cross-references instead of a
// pointer graph.
type HostRecord struct {
	HostID   int
	Group    HostGroupTag
	Masters  map[int]struct{}
	Replicas map[int]struct{}
	Peers    map[int]map[int]struct{} // peerHostID -> set of shared partitionIDs
}

// NewHostRecord returns an empty HostRecord for hostID with the given tag.
func NewHostRecord(hostID int, tag HostGroupTag) *HostRecord {
	return &HostRecord{
		HostID:   hostID,
		Group:    tag,
		Masters:  make(map[int]struct{}),
		Replicas: make(map[int]struct{}),
		Peers:    make(map[int]map[int]struct{}),
	}
}

// TotalSites returns the number of partitions this host currently holds,
// as master or replica. Must never exceed the cluster's sitesPerHost.
func (h *HostRecord) TotalSites() int {
	return len(h.Masters) + len(h.Replicas)
}

// HoldsPartition reports whether h is already master or replica for p.
func (h *HostRecord) HoldsPartition(p int) bool {
	if _, ok := h.Masters[p]; ok {
		return true
	}
	_, ok := h.Replicas[p]
	return ok
}

// AssignMaster records h as master of partition p.
func (h *HostRecord) AssignMaster(p int) {
	h.Masters[p] = struct{}{}
}

// AssignReplica records h as a replica of partition p. It does not touch
// the peer multigraph; peer edges are added separately with RecordPeer
// (PlanningContext.RecordReplicaEdge does both).
func (h *HostRecord) AssignReplica(p int) {
	h.Replicas[p] = struct{}{}
}

// RecordPeer records a replication edge between h and peer over partition p.
func (h *HostRecord) RecordPeer(peer, p int) {
	set, ok := h.Peers[peer]
	if !ok {
		set = make(map[int]struct{})
		h.Peers[peer] = set
	}
	set[p] = struct{}{}
}

// PeerEdgeCount returns the number of partitions h and peer jointly
// replicate (used by group-aware candidate ordering).
func (h *HostRecord) PeerEdgeCount(peer int) int {
	return len(h.Peers[peer])
}

// ReplicationFactor returns the sum of replica counts across every
// partition h holds (master or replica), used as the second candidate
// ordering criterion in group-aware placement.
func (h *HostRecord) ReplicationFactor(ctx *PlanningContext) int {
	total := 0
	for p := range h.Masters {
		if pr, ok := ctx.Partitions[p]; ok {
			total += len(pr.Replicas)
		}
	}
	for p := range h.Replicas {
		if pr, ok := ctx.Partitions[p]; ok {
			total += len(pr.Replicas)
		}
	}
	return total
}

// MasterCount returns the number of partitions h masters.
func (h *HostRecord) MasterCount() int {
	return len(h.Masters)
}

// SortedMasterIDs returns the host's mastered partitions in ascending order.
func (h *HostRecord) SortedMasterIDs() []int {
	return sortedKeys(h.Masters)
}

// SortedReplicaIDs returns the host's replica partitions in ascending order.
func (h *HostRecord) SortedReplicaIDs() []int {
	return sortedKeys(h.Replicas)
}

func sortedKeys(m map[int]struct{}) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
