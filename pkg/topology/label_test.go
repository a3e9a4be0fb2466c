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

func TestParseGroupLabel(t *testing.T) {
	label, err := ParseGroupLabel("dc1.rack7")
	require.NoError(t, err)
	assert.Equal(t, GroupLabel{"dc1", "rack7"}, label)
	assert.Equal(t, "dc1.rack7", label.String())
}

func TestParseGroupLabelRejectsEmptyComponent(t *testing.T) {
	_, err := ParseGroupLabel("dc1..rack7")
	require.Error(t, err)
	var pe *PlannerError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrGroupLabelMalformed, pe.Kind)
}

func TestGroupLabelIsSibling(t *testing.T) {
	a, _ := ParseGroupLabel("dc1.rack1")
	b, _ := ParseGroupLabel("dc1.rack2")
	c, _ := ParseGroupLabel("dc2.rack1")
	assert.True(t, a.IsSibling(b))
	assert.False(t, a.IsSibling(c))
}

func TestGroupLabelDistance(t *testing.T) {
	a, _ := ParseGroupLabel("dc1.rack1")
	b, _ := ParseGroupLabel("dc1.rack2")
	c, _ := ParseGroupLabel("dc2.rack1")
	assert.Equal(t, 1, a.Distance(b))
	assert.Equal(t, 0, a.Distance(c))
	assert.Equal(t, 2, a.Distance(a))
}
