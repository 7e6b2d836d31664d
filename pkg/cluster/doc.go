/*
Package cluster is the composition root for pkg/discovery, pkg/poller,
pkg/snapshot and pkg/health: New discovers once, Refresh polls-and-builds
repeatedly, and TopicURL resolves one live broker for a topic by pinging
candidates in order. Both nsq stats and nsq send build a State; stats
calls Refresh on whatever cadence the dashboard needs, send calls
TopicURL once before it starts posting.
*/
package cluster
