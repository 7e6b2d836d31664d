// Package health performs the single HTTP reachability probe pkg/cluster's
// TopicURL uses to pick a live host for a topic: GET {base_url}/ping, 2xx is
// healthy, anything else (including a transport error) is not.
package health
