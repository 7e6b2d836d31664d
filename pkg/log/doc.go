/*
Package log provides structured logging for the nsq toolkit using zerolog.

All runtime output, including the publisher's final report, goes to stderr
(stdout is reserved for the dashboard and the publisher's progress bar). The
level is derived from
the CLI's -d/-w/-q flags via LevelFromVerbosity, and WithRunID attaches a
run ID field to every line a command emits for one invocation; callers add
further fields (host, topic, worker) with zerolog's own With() directly.
*/
package log
