package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func TestResolvePolicy(t *testing.T) {
	tests := []struct {
		name string
		req  PolicyRequest
		want Policy
	}{
		{
			name: "no project config",
			req:  PolicyRequest{Agent: "Athena", Command: CommandLoad},
			want: Policy{AutoAccept: false, Source: PolicyFromDefault},
		},
		{
			name: "flag without config",
			req:  PolicyRequest{Agent: "Athena", Command: CommandLoad, Force: true},
			want: Policy{AutoAccept: true, Source: PolicyFromFlag},
		},
		{
			name: "flag beats global false and empty allow-list",
			req: PolicyRequest{Agent: "Athena", Command: CommandLoad, Force: true, Project: &ProjectConfig{
				AutoAccept: &AutoAcceptConfig{Global: boolPtr(false)},
			}},
			want: Policy{AutoAccept: true, Source: PolicyFromFlag},
		},
		{
			name: "global true",
			req: PolicyRequest{Agent: "Athena", Command: CommandLoad, Project: &ProjectConfig{
				AutoAccept: &AutoAcceptConfig{Global: boolPtr(true)},
			}},
			want: Policy{AutoAccept: true, Source: PolicyFromGlobal},
		},
		{
			name: "global false does not veto allow-list",
			req: PolicyRequest{Agent: "Athena", Command: CommandLoad, Project: &ProjectConfig{
				AutoAccept: &AutoAcceptConfig{Global: boolPtr(false), Agents: []string{"Athena"}},
			}},
			want: Policy{AutoAccept: true, Source: PolicyFromAgentList},
		},
		{
			name: "allow-list is case-insensitive",
			req: PolicyRequest{Agent: "athena", Command: CommandLoad, Project: &ProjectConfig{
				AutoAccept: &AutoAcceptConfig{Agents: []string{"Athena"}},
			}},
			want: Policy{AutoAccept: true, Source: PolicyFromAgentList},
		},
		{
			name: "global false does not veto category",
			req: PolicyRequest{Agent: "Developer", Command: CommandLoad, Project: &ProjectConfig{
				AutoAccept: &AutoAcceptConfig{Global: boolPtr(false), AgentLoad: true},
			}},
			want: Policy{AutoAccept: true, Source: PolicyFromCategory},
		},
		{
			name: "category flag matches command",
			req: PolicyRequest{Agent: "Developer", Command: CommandActivate, Project: &ProjectConfig{
				AutoAccept: &AutoAcceptConfig{AgentLoad: true},
			}},
			want: Policy{AutoAccept: false, Source: PolicyFromDefault},
		},
		{
			name: "activate category",
			req: PolicyRequest{Agent: "Developer", Command: CommandActivate, Project: &ProjectConfig{
				AutoAccept: &AutoAcceptConfig{AgentActivate: true},
			}},
			want: Policy{AutoAccept: true, Source: PolicyFromCategory},
		},
		{
			name: "agent not listed",
			req: PolicyRequest{Agent: "Developer", Command: CommandLoad, Project: &ProjectConfig{
				AutoAccept: &AutoAcceptConfig{Agents: []string{"Athena"}},
			}},
			want: Policy{AutoAccept: false, Source: PolicyFromDefault},
		},
		{
			name: "project without auto_accept",
			req:  PolicyRequest{Agent: "Athena", Command: CommandLoad, Project: &ProjectConfig{ProjectName: "x"}},
			want: Policy{AutoAccept: false, Source: PolicyFromDefault},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePolicy(tt.req))
		})
	}
}

func TestResolvers_Independently(t *testing.T) {
	req := PolicyRequest{Agent: "Athena", Command: CommandLoad, Project: &ProjectConfig{
		AutoAccept: &AutoAcceptConfig{Global: boolPtr(false), Agents: []string{"Athena"}},
	}}

	_, ok := ResolveFlag(req)
	assert.False(t, ok, "flag resolver should defer")

	_, ok = ResolveGlobal(req)
	assert.False(t, ok, "global=false should defer, not decide")

	p, ok := ResolveAgentList(req)
	assert.True(t, ok)
	assert.Equal(t, PolicyFromAgentList, p.Source)

	_, ok = ResolveCategory(req)
	assert.False(t, ok)
}
