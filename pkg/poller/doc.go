/*
Package poller fetches and decodes broker /stats responses. Two envelope
shapes exist in the wild — a modern bare-topics body and a legacy
status_code/data wrapper — documented in
_examples/original_source/src/commands/nsq/model.rs as
StatusTopicsDetails versus StatusTopicsResponse. PollOne tries the modern
shape first, falls back to legacy, and only warns (never errors) if
neither matches. PollAll fans PollOne out across hosts concurrently and
drops any host whose request itself failed.
*/
package poller
