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

// Command topoplanner is the CLI boundary for the cluster topology
// planner: it loads a planning request from a file or stdin, resolves
// the VOLT_REPLICA_FALLBACK environment override, runs the planner, and
// writes the resulting topology document.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ackris/topoplanner/pkg/topology"
	"github.com/ackris/topoplanner/pkg/utils"
)

type hostGroupInput struct {
	Rack  string `yaml:"rack" json:"rack"`
	Buddy string `yaml:"buddy" json:"buddy"`
}

type requestFile struct {
	HostCount         int                       `yaml:"hostCount" json:"hostCount"`
	SitesPerHost      int                       `yaml:"sitesPerHost" json:"sitesPerHost"`
	KFactor           int                       `yaml:"kfactor" json:"kfactor"`
	HostGroups        map[string]hostGroupInput `yaml:"hostGroups" json:"hostGroups"`
	PartitionMasters  map[string]int            `yaml:"partitionMasters" json:"partitionMasters"`
	PartitionReplicas map[string][]int          `yaml:"partitionReplicas" json:"partitionReplicas"`
	Fallback          bool                      `yaml:"fallback" json:"fallback"`
}

func main() {
	inPath := flag.String("in", "-", "planning request file (.yaml/.yml/.json), or - for stdin (JSON)")
	outPath := flag.String("out", "-", "topology document output path, or - for stdout")
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	req, err := loadRequest(*inPath)
	if err != nil {
		logger.Error("failed to load planning request", zap.Error(err))
		utils.Exit(1, err.Error())
		return
	}

	if v, ok := os.LookupEnv("VOLT_REPLICA_FALLBACK"); ok {
		if forced, parseErr := strconv.ParseBool(v); parseErr == nil {
			req.ForceFallback = forced
		}
	}

	doc, err := topology.Plan(req, logger)
	if err != nil {
		logger.Error("planning failed", zap.Error(err))
		utils.Exit(1, err.Error())
		return
	}

	if err := writeDocument(*outPath, doc); err != nil {
		logger.Error("failed to write topology document", zap.Error(err))
		utils.Exit(1, err.Error())
		return
	}
}

func loadRequest(path string) (*topology.PlanRequest, error) {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading request: %w", err)
	}

	var rf requestFile
	if path != "-" && (strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")) {
		err = yaml.Unmarshal(raw, &rf)
	} else {
		err = json.Unmarshal(raw, &rf)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing request: %w", err)
	}

	hostTags := make(map[int]topology.HostGroupTag, len(rf.HostGroups))
	for idStr, g := range rf.HostGroups {
		id, convErr := strconv.Atoi(idStr)
		if convErr != nil {
			return nil, fmt.Errorf("invalid host id %q: %w", idStr, convErr)
		}
		label, labelErr := topology.ParseGroupLabel(g.Rack)
		if labelErr != nil {
			return nil, labelErr
		}
		hostTags[id] = topology.HostGroupTag{RackGroup: label, BuddyGroup: g.Buddy}
	}

	partitionMasters := make(map[int]int, len(rf.PartitionMasters))
	for idStr, hostID := range rf.PartitionMasters {
		id, convErr := strconv.Atoi(idStr)
		if convErr != nil {
			return nil, fmt.Errorf("invalid partition id %q: %w", idStr, convErr)
		}
		partitionMasters[id] = hostID
	}

	partitionReplicas := make(map[int][]int, len(rf.PartitionReplicas))
	for idStr, hosts := range rf.PartitionReplicas {
		id, convErr := strconv.Atoi(idStr)
		if convErr != nil {
			return nil, fmt.Errorf("invalid partition id %q: %w", idStr, convErr)
		}
		partitionReplicas[id] = hosts
	}

	return &topology.PlanRequest{
		Config: topology.ClusterConfig{
			HostCount:    rf.HostCount,
			SitesPerHost: rf.SitesPerHost,
			KFactor:      rf.KFactor,
		},
		HostTags:          hostTags,
		PartitionMasters:  partitionMasters,
		PartitionReplicas: partitionReplicas,
		ForceFallback:     rf.Fallback,
	}, nil
}

func writeDocument(path string, doc *topology.TopologyDocument) error {
	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if path == "-" {
		fmt.Println(string(encoded))
		return nil
	}
	return os.WriteFile(path, encoded, 0o644)
}
