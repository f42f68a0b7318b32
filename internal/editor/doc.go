// Package editor holds the state of one mapping-file editing session: which
// metric (or resource) is bound to each attribute slot of each buildable
// category, and the selected resource tags.
//
// Per slot the session moves between two states:
//
//	Unbound --Bind--> Bound(strategy) --Unbind--> Unbound
//	Bound(strategy) --Bind--> Bound(strategy')
//
// A rejected Bind leaves the slot as it was. One source metric may feed any
// number of slots.
//
// Front-ends drive a session either by calling its methods or by passing
// Command values to Handle, which also records a user notice for every
// rejected action. A Session is not safe for concurrent use.
package editor
