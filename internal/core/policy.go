package core

// PolicyRequest is the input to the auto-accept merger.
type PolicyRequest struct {
	Agent   string
	Command Command
	Force   bool           // command-level --auto-accept flag
	Project *ProjectConfig // may be nil
}

// PolicyResolver decides a policy or defers to the next resolver.
type PolicyResolver func(PolicyRequest) (Policy, bool)

// PolicyChain is the ordered resolver list used by ResolvePolicy.
var PolicyChain = []PolicyResolver{
	ResolveFlag,
	ResolveGlobal,
	ResolveAgentList,
	ResolveCategory,
}

// ResolvePolicy runs PolicyChain and falls back to a disabled default.
// It always returns a decision.
func ResolvePolicy(req PolicyRequest) Policy {
	for _, resolve := range PolicyChain {
		if p, ok := resolve(req); ok {
			return p
		}
	}
	return Policy{AutoAccept: false, Source: PolicyFromDefault}
}

// ResolveFlag enables auto-accept when the command-level flag is set.
func ResolveFlag(req PolicyRequest) (Policy, bool) {
	if req.Force {
		return Policy{AutoAccept: true, Source: PolicyFromFlag}, true
	}
	return Policy{}, false
}

// ResolveGlobal enables auto-accept when auto_accept.global is true.
// An explicit false does not veto later resolvers.
func ResolveGlobal(req PolicyRequest) (Policy, bool) {
	aa := autoAccept(req)
	if aa != nil && aa.Global != nil && *aa.Global {
		return Policy{AutoAccept: true, Source: PolicyFromGlobal}, true
	}
	return Policy{}, false
}

// ResolveAgentList enables auto-accept for agents named in auto_accept.agents.
func ResolveAgentList(req PolicyRequest) (Policy, bool) {
	aa := autoAccept(req)
	if aa != nil && req.Agent != "" && foldContains(aa.Agents, req.Agent) {
		return Policy{AutoAccept: true, Source: PolicyFromAgentList}, true
	}
	return Policy{}, false
}

// ResolveCategory enables auto-accept through the per-command category flag.
func ResolveCategory(req PolicyRequest) (Policy, bool) {
	aa := autoAccept(req)
	if aa == nil {
		return Policy{}, false
	}
	var on bool
	switch req.Command {
	case CommandLoad:
		on = aa.AgentLoad
	case CommandActivate:
		on = aa.AgentActivate
	}
	if on {
		return Policy{AutoAccept: true, Source: PolicyFromCategory}, true
	}
	return Policy{}, false
}

func autoAccept(req PolicyRequest) *AutoAcceptConfig {
	if req.Project == nil {
		return nil
	}
	return req.Project.AutoAccept
}
