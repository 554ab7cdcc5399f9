// Package version reports the seqkit build version. It is the default
// service version of the observability resource and the instrumentation
// version of the seqkit tracer and meter.
//
//	go build -ldflags "-X github.com/kbukum/seqkit/version.Version=1.2.0"
package version
