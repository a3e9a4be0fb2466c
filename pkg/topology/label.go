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
	"strings"
)

// GroupLabel is an ordered sequence of non-empty string components parsed
// from a dotted rack-group label such as "dc1.rack7".
type GroupLabel []string

// ParseGroupLabel splits s on "." and rejects empty components.
//
// Example usage:
//
//	label, err := ParseGroupLabel("dc1.rack7")
func ParseGroupLabel(s string) (GroupLabel, error) {
	parts := strings.Split(s, ".")
	label := make(GroupLabel, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed == "" {
			return nil, NewPlannerError(ErrGroupLabelMalformed, "group label has an empty component: "+s)
		}
		label = append(label, trimmed)
	}
	return label, nil
}

// String re-joins the label's components with ".".
func (l GroupLabel) String() string {
	return strings.Join([]string(l), ".")
}

// IsSibling reports whether l and other share every component except the
// last.
func (l GroupLabel) IsSibling(other GroupLabel) bool {
	if len(l) != len(other) || len(l) == 0 {
		return false
	}
	for i := 0; i < len(l)-1; i++ {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}

// Distance returns the index of the first component at which l and other
// differ; if one is a prefix of the other, the distance is the length of
// the shorter label.
func (l GroupLabel) Distance(other GroupLabel) int {
	n := len(l)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		if l[i] != other[i] {
			return i
		}
	}
	return n
}

// Equal reports whether l and other have identical components.
func (l GroupLabel) Equal(other GroupLabel) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}
