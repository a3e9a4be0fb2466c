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

import "fmt"

// ClusterConfig is the immutable triple (hostCount, sitesPerHost, kfactor)
// that fully determines a cluster's partition count.
type ClusterConfig struct {
	HostCount    int
	SitesPerHost int
	KFactor      int
}

// PartitionCount derives P = H*S / (K+1). Callers should only trust this
// value after Validate succeeds.
func (c ClusterConfig) PartitionCount() int {
	return c.HostCount * c.SitesPerHost / (c.KFactor + 1)
}

// Validate checks the configuration invariants in the order spec'd:
// positive host count, positive sites-per-host, H > K, positive partition
// count, and (H*S) mod (K+1) == 0. The first failing check wins.
func (c ClusterConfig) Validate() error {
	if c.HostCount <= 0 {
		return NewPlannerError(ErrConfigInvalid, fmt.Sprintf("hostCount must be positive, got %d", c.HostCount))
	}
	if c.SitesPerHost <= 0 {
		return NewPlannerError(ErrConfigInvalid, fmt.Sprintf("sitesPerHost must be positive, got %d", c.SitesPerHost))
	}
	if c.HostCount <= c.KFactor {
		return NewPlannerError(ErrConfigInvalid, fmt.Sprintf("hostCount (%d) must exceed kfactor (%d)", c.HostCount, c.KFactor))
	}
	total := c.HostCount * c.SitesPerHost
	replicaWidth := c.KFactor + 1
	if total/replicaWidth <= 0 {
		return NewPlannerError(ErrConfigInvalid, "derived partitionCount must be positive")
	}
	if total%replicaWidth != 0 {
		return NewPlannerError(ErrConfigInvalid, fmt.Sprintf("hostCount*sitesPerHost (%d) must be a multiple of kfactor+1 (%d)", total, replicaWidth))
	}
	return nil
}

// ValidateAddHosts checks the invariants for the "add hosts" variant: the
// delta between the new and prior host counts must be positive, at most
// K+1, and a multiple of K+1.
func (c ClusterConfig) ValidateAddHosts(priorHostCount int) error {
	delta := c.HostCount - priorHostCount
	replicaWidth := c.KFactor + 1
	if delta <= 0 {
		return NewPlannerError(ErrConfigInvalid, fmt.Sprintf("added host count must be positive, got %d", delta))
	}
	if delta > replicaWidth {
		return NewPlannerError(ErrConfigInvalid, fmt.Sprintf("added host count (%d) must not exceed kfactor+1 (%d)", delta, replicaWidth))
	}
	if delta%replicaWidth != 0 {
		return NewPlannerError(ErrConfigInvalid, fmt.Sprintf("added host count (%d) must be a multiple of kfactor+1 (%d)", delta, replicaWidth))
	}
	return nil
}
