/*
Package progress provides the Bar interface pkg/publisher reports send
progress through. The terminal implementation is backed by
github.com/cheggaaa/pb/v3, mirroring the indicatif::ProgressBar template
in _examples/original_source/src/commands/nsq/post.rs (elapsed time, bar,
position/length, trailing status message). Noop satisfies the same
interface for non-terminal output.
*/
package progress
