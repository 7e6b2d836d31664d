package model

import "sort"

// Host is a broker node discovered from the lookup node's /nodes response.
type Host struct {
	Hostname string
	BaseURL  string // host:port, no scheme
	Topics   map[string]struct{}
}

// HasTopic reports whether this host advertises topic.
func (h *Host) HasTopic(topic string) bool {
	_, ok := h.Topics[topic]
	return ok
}

// Filter selects a subset of discovered hosts/topics. The zero value
// matches everything.
type Filter struct {
	Hosts  map[string]struct{}
	Topics map[string]struct{}
}

// HasHosts reports whether a host filter was supplied.
func (f Filter) HasHosts() bool {
	return len(f.Hosts) > 0
}

// HasTopics reports whether a topic filter was supplied.
func (f Filter) HasTopics() bool {
	return len(f.Topics) > 0
}

// SortedHostnames returns the map's hostnames in lexicographic order.
func SortedHostnames(hosts map[string]*Host) []string {
	names := make([]string, 0, len(hosts))
	for name := range hosts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
