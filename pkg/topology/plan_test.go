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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRejectsInvalidConfig(t *testing.T) {
	config := ClusterConfig{HostCount: 0, SitesPerHost: 2, KFactor: 1}
	_, err := Plan(&PlanRequest{Config: config}, nil)
	require.Error(t, err)
	var pe *PlannerError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrConfigInvalid, pe.Kind)
}

func TestPlanDeterministic(t *testing.T) {
	config := ClusterConfig{HostCount: 4, SitesPerHost: 2, KFactor: 1}
	tags := buildTags(t, map[int]string{0: "0.0", 1: "0.0", 2: "0.1", 3: "0.1"}, nil)

	doc1, err := Plan(&PlanRequest{Config: config, HostTags: tags}, nil)
	require.NoError(t, err)
	doc2, err := Plan(&PlanRequest{Config: config, HostTags: tags}, nil)
	require.NoError(t, err)

	b1, _ := json.Marshal(doc1)
	b2, _ := json.Marshal(doc2)
	assert.JSONEq(t, string(b1), string(b2))
}

func TestPlanForceFallback(t *testing.T) {
	config := ClusterConfig{HostCount: 4, SitesPerHost: 2, KFactor: 1}
	tags := buildTags(t, map[int]string{0: "0.0", 1: "0.0", 2: "0.1", 3: "0.1"}, nil)
	doc, err := Plan(&PlanRequest{Config: config, HostTags: tags, ForceFallback: true}, nil)
	require.NoError(t, err)
	assert.Len(t, doc.Partitions, 4)
}
