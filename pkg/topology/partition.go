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

// PartitionRecord is a mutable planning record for a single partition: its
// current master (if any), its replica host set, and how many more
// replicas it still needs. Modeled on
// internal/client/common/partition_info.go's Leader/Replicas shape,
// narrowed to the planner's simpler master/replicas/counter model.
type PartitionRecord struct {
	PartitionID    int
	Master         *int
	Replicas       map[int]struct{}
	NeededReplicas int
}

// NewPartitionRecord returns a PartitionRecord with no master, no
// replicas, and neededReplicas initialized to K+1.
func NewPartitionRecord(partitionID, kfactor int) *PartitionRecord {
	return &PartitionRecord{
		PartitionID:    partitionID,
		Replicas:       make(map[int]struct{}),
		NeededReplicas: kfactor + 1,
	}
}

// HasMaster reports whether a master has been assigned.
func (p *PartitionRecord) HasMaster() bool {
	return p.Master != nil
}

// AssignMaster sets hostID as master and decrements neededReplicas. It is
// an invariant violation (ErrOverReplication) to assign a master when
// neededReplicas is already zero.
func (p *PartitionRecord) AssignMaster(hostID int) error {
	if p.NeededReplicas <= 0 {
		return NewPlannerError(ErrOverReplication,
			"assigned master to partition with no remaining replica slots")
	}
	h := hostID
	p.Master = &h
	p.NeededReplicas--
	return nil
}

// AssignReplica adds hostID to the replica set and decrements
// neededReplicas. It is an invariant violation (ErrOverReplication) to
// assign a replica when neededReplicas is already zero, or when hostID is
// already the master.
func (p *PartitionRecord) AssignReplica(hostID int) error {
	if p.NeededReplicas <= 0 {
		return NewPlannerError(ErrOverReplication,
			"assigned replica to partition with no remaining replica slots")
	}
	if p.Master != nil && *p.Master == hostID {
		return NewPlannerError(ErrOverReplication,
			"host is already master of this partition")
	}
	p.Replicas[hostID] = struct{}{}
	p.NeededReplicas--
	return nil
}

// UndoReplica removes hostID from the replica set and restores
// neededReplicas, used by the group-aware backtracking search to unwind a
// failed recursive attempt.
func (p *PartitionRecord) UndoReplica(hostID int) {
	if _, ok := p.Replicas[hostID]; ok {
		delete(p.Replicas, hostID)
		p.NeededReplicas++
	}
}

// HostSet returns every host participating in this partition, master
// included.
func (p *PartitionRecord) HostSet() map[int]struct{} {
	set := make(map[int]struct{}, len(p.Replicas)+1)
	for h := range p.Replicas {
		set[h] = struct{}{}
	}
	if p.Master != nil {
		set[*p.Master] = struct{}{}
	}
	return set
}
