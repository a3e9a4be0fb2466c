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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) *PlanningContext {
	t.Helper()
	config := ClusterConfig{HostCount: 4, SitesPerHost: 1, KFactor: 1}
	tags := map[int]HostGroupTag{
		0: {RackGroup: mustLabel(t, "0.0")},
		1: {RackGroup: mustLabel(t, "0.0")},
		2: {RackGroup: mustLabel(t, "0.1")},
		3: {RackGroup: mustLabel(t, "0.1")},
	}
	return NewPlanningContext(config, tags)
}

func TestNewPlanningContextBuildsSideTables(t *testing.T) {
	ctx := newTestContext(t)
	assert.Len(t, ctx.Hosts, 4)
	assert.Len(t, ctx.Partitions, ctx.Config.PartitionCount())
	assert.Equal(t, []int{0, 1, 2, 3}, ctx.SortedHostIDs())
	assert.Equal(t, 2, ctx.Tree.GroupCount())
}

func TestHostAndPartitionByID(t *testing.T) {
	ctx := newTestContext(t)
	h, ok := ctx.HostByID(0)
	require.True(t, ok)
	assert.Equal(t, 0, h.HostID)

	_, ok = ctx.HostByID(99)
	assert.False(t, ok)

	p, ok := ctx.PartitionByID(0)
	require.True(t, ok)
	assert.Equal(t, 0, p.PartitionID)
}

func TestRecordAndUndoReplicaEdge(t *testing.T) {
	ctx := newTestContext(t)
	require.NoError(t, ctx.AssignMasterTo(0, 0))
	require.NoError(t, ctx.RecordReplicaEdge(0, 1))

	h0 := ctx.Hosts[0]
	h1 := ctx.Hosts[1]
	assert.Equal(t, 1, h0.PeerEdgeCount(1))
	assert.Equal(t, 1, h1.PeerEdgeCount(0))
	assert.True(t, h1.HoldsPartition(0))

	// host 0 is now saturated (sitesPerHost=1) and removed from the tree
	assert.False(t, ctx.Tree.hostPresent(0))

	ctx.UndoReplicaEdge(0, 1)
	assert.False(t, h1.HoldsPartition(0))
	assert.Equal(t, 0, h0.PeerEdgeCount(1))
	assert.Equal(t, 1, ctx.Partitions[0].NeededReplicas)
}

func TestAssignMasterToSaturatesHost(t *testing.T) {
	ctx := newTestContext(t)
	require.NoError(t, ctx.AssignMasterTo(0, 2))
	assert.True(t, ctx.Hosts[2].HoldsPartition(0))
	assert.False(t, ctx.Tree.hostPresent(2))
}
