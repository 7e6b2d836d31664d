/*
Package publisher implements `nsq send`'s pipeline: count input lines,
resolve a broker for the topic, rate-limit and depth-gate a fixed pool of
POST workers, and report sent/errors/offset-skipped counts. Grounded on
_examples/original_source/src/commands/nsq/post.rs (worker pool shape,
progress bar template, atomic counters) with two deliberate departures:
the token bucket is golang.org/x/time/rate instead of a hand-rolled
bucket, and offset-skipped lines never consume a rate-limiter token.
*/
package publisher
