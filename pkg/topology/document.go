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

// TopologyPartition is one partition's entry in a TopologyDocument. The
// wire field names (partition_id, master, replicas) are part of the
// external contract and must not change.
type TopologyPartition struct {
	PartitionID int   `json:"partition_id"`
	Master      int   `json:"master"`
	Replicas    []int `json:"replicas"`
}

// TopologyDocument is the externally visible product of a planning run:
// the complete partition-to-host mapping plus the configuration that
// produced it.
type TopologyDocument struct {
	HostCount    int                 `json:"hostcount"`
	KFactor      int                 `json:"kfactor"`
	SitesPerHost int                 `json:"sites_per_host"`
	Partitions   []TopologyPartition `json:"partitions"`
}

// EmitTopologyDocument serializes ctx's final assignment into the
// canonical document: partitions in id order, each with its non-master
// replicas followed by the master id.
func EmitTopologyDocument(ctx *PlanningContext) *TopologyDocument {
	partitionIDs := ctx.SortedPartitionIDs()
	doc := &TopologyDocument{
		HostCount:    ctx.Config.HostCount,
		KFactor:      ctx.Config.KFactor,
		SitesPerHost: ctx.Config.SitesPerHost,
		Partitions:   make([]TopologyPartition, 0, len(partitionIDs)),
	}
	for _, p := range partitionIDs {
		pr := ctx.Partitions[p]
		others := pr.SortedReplicaIDsExcludingMaster()
		replicas := make([]int, 0, len(others)+1)
		replicas = append(replicas, others...)
		master := 0
		if pr.Master != nil {
			master = *pr.Master
			replicas = append(replicas, master)
		}
		doc.Partitions = append(doc.Partitions, TopologyPartition{
			PartitionID: p,
			Master:      master,
			Replicas:    replicas,
		})
	}
	return doc
}

// SortedReplicaIDsExcludingMaster returns the non-master replica ids of p
// in ascending order.
func (p *PartitionRecord) SortedReplicaIDsExcludingMaster() []int {
	ids := make([]int, 0, len(p.Replicas))
	for id := range p.Replicas {
		if p.Master != nil && id == *p.Master {
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// PartitionsForHost returns the partition ids hostID is responsible for.
// When onlyMasters is true, only partitions it masters are returned;
// otherwise every partition where it appears in replicas (the master
// included, since the canonical replicas list always contains the
// master) is returned.
func PartitionsForHost(topo *TopologyDocument, hostID int, onlyMasters bool) []int {
	var ids []int
	for _, part := range topo.Partitions {
		if onlyMasters {
			if part.Master == hostID {
				ids = append(ids, part.PartitionID)
			}
			continue
		}
		for _, r := range part.Replicas {
			if r == hostID {
				ids = append(ids, part.PartitionID)
				break
			}
		}
	}
	sort.Ints(ids)
	return ids
}

// AddHosts increments hostcount in place. newHosts must be positive and a
// multiple of kfactor+1; the relationship between this and AddPartitions
// for k-safety-preserving expansion is left to the caller.
func AddHosts(topo *TopologyDocument, newHosts int) error {
	replicaWidth := topo.KFactor + 1
	if newHosts <= 0 {
		return NewPlannerError(ErrConfigInvalid, "newHosts must be positive")
	}
	if newHosts%replicaWidth != 0 {
		return NewPlannerError(ErrConfigInvalid, "newHosts must be a multiple of kfactor+1")
	}
	topo.HostCount += newHosts
	return nil
}

// AddPartitions appends one new partition per entry in partitionHosts, in
// place. Each new partition's replicas are exactly the given host
// collection (sorted), with the master taken as the last element per the
// canonical master-last ordering contract.
func AddPartitions(topo *TopologyDocument, partitionHosts map[int][]int) error {
	ids := make([]int, 0, len(partitionHosts))
	for id := range partitionHosts {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		hosts := append([]int(nil), partitionHosts[id]...)
		if len(hosts) == 0 {
			return NewPlannerError(ErrConfigInvalid, "addPartitions entry has no hosts")
		}
		sort.Ints(hosts)
		topo.Partitions = append(topo.Partitions, TopologyPartition{
			PartitionID: id,
			Master:      hosts[len(hosts)-1],
			Replicas:    hosts,
		})
	}
	return nil
}

// HostLoad is one host's summary row in a Summary() projection.
type HostLoad struct {
	HostID       int
	MasterCount  int
	ReplicaCount int
	TotalSites   int
}

// Summary projects per-host load from a topology document, for CLI/debug
// output. It derives nothing the document doesn't already expose and has
// no effect on wire format or invariants.
func Summary(topo *TopologyDocument) []HostLoad {
	loads := make(map[int]*HostLoad)
	ensure := func(hostID int) *HostLoad {
		if l, ok := loads[hostID]; ok {
			return l
		}
		l := &HostLoad{HostID: hostID}
		loads[hostID] = l
		return l
	}
	for _, part := range topo.Partitions {
		ensure(part.Master).MasterCount++
		for _, r := range part.Replicas {
			if r == part.Master {
				continue
			}
			ensure(r).ReplicaCount++
		}
	}
	ids := make([]int, 0, len(loads))
	for id := range loads {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]HostLoad, 0, len(ids))
	for _, id := range ids {
		l := loads[id]
		l.TotalSites = l.MasterCount + l.ReplicaCount
		out = append(out, *l)
	}
	return out
}
