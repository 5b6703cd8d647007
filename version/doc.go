// Package version reports the build version of the example programs.
//
// Version and Commit are set at link time:
//
//	go build -ldflags "-X github.com/Stephen0620/NimbusML-Samples/version.Version=0.2.0" ./cmd/examples/sentiment
//
// When Commit is empty the VCS revision recorded by the Go toolchain is used.
package version
