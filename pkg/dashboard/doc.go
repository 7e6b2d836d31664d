/*
Package dashboard implements `nsq stats`'s repeating terminal view: poll
the cluster, render a per-topic host/channel table, and redraw it in
place using an alternate screen buffer. Grounded on
_examples/original_source/src/commands/nsq/stats.rs (bold topic/depth
labels via colored::*, fixed-interval polling loop), expanded well
beyond that file's plain sequential logging to add in-place redraw,
EWMA-smoothed rates, and the host/hide-zero-depth display toggles.
*/
package dashboard
