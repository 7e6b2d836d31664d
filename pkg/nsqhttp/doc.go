/*
Package nsqhttp provides the single HTTP client type discovery, the poller
and the publisher all share. It knows nothing about NSQ's response shapes
— that decoding lives in pkg/poller and pkg/discovery — it only issues
requests and turns transport/status failures into classified
pkg/nsqerr.Errors so callers never inspect raw net/http errors.
*/
package nsqhttp
