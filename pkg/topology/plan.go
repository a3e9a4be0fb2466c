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

	"go.uber.org/zap"
)

// PlanRequest is everything the planner needs from a caller: the cluster
// configuration, the per-host group tags, optional pre-assigned
// masters/replicas (rejoin), and the explicit fallback override, which the
// CLI boundary sets from the request file's fallback field or the
// VOLT_REPLICA_FALLBACK environment variable.
type PlanRequest struct {
	Config            ClusterConfig
	HostTags          map[int]HostGroupTag
	PartitionMasters  map[int]int
	PartitionReplicas map[int][]int
	ForceFallback     bool
}

func (r *PlanRequest) isRejoin() bool {
	return len(r.PartitionMasters) > 0 || len(r.PartitionReplicas) > 0
}

// buddyGroupCount reports how many distinct buddy labels are present
// across the request's host tags.
func (r *PlanRequest) buddyGroupCount() int {
	seen := make(map[string]struct{})
	for _, tag := range r.HostTags {
		seen[tag.BuddyGroup] = struct{}{}
	}
	return len(seen)
}

// Plan validates req, builds a PlanningContext, selects a strategy
// (buddy if more than one buddy group, else group-aware, falling back to
// round-robin on placement infeasibility or on req.ForceFallback), and
// emits the resulting topology document. logger may be nil; a nop logger
// is used in that case.
func Plan(req *PlanRequest, logger *zap.Logger) (*TopologyDocument, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := req.Config.Validate(); err != nil {
		return nil, err
	}

	if req.ForceFallback {
		ctx := NewPlanningContext(req.Config, req.HostTags)
		if err := PlanFallback(ctx); err != nil {
			return nil, err
		}
		return EmitTopologyDocument(ctx), nil
	}

	ctx := NewPlanningContext(req.Config, req.HostTags)

	var strategyErr error
	if req.buddyGroupCount() > 1 {
		strategyErr = PlanBuddy(ctx, req)
		if errors.Is(strategyErr, ErrBuddyNotApplicable) {
			ctx = NewPlanningContext(req.Config, req.HostTags)
			strategyErr = PlanGroupAware(ctx, req)
		}
	} else {
		strategyErr = PlanGroupAware(ctx, req)
	}

	if strategyErr != nil {
		var pe *PlannerError
		if errors.As(strategyErr, &pe) && pe.Kind == ErrPlacementInfeasible {
			logger.Warn("group-aware placement infeasible, falling back to round-robin",
				zap.Error(strategyErr))
			fallbackCtx := NewPlanningContext(req.Config, req.HostTags)
			if err := PlanFallback(fallbackCtx); err != nil {
				return nil, err
			}
			return EmitTopologyDocument(fallbackCtx), nil
		}
		return nil, strategyErr
	}

	return EmitTopologyDocument(ctx), nil
}
