// Package rootservers supplies the starting nameserver list every
// resolution walks from: the thirteen IANA root server addresses, with
// an optional override for tests and alternate deployments.
package rootservers

// Default is the root hints list the resolver starts every fresh walk
// from, in the order the engine tries them (spec.md §4.6 step 7
// restarts here on CNAME aliasing and NS-to-address fallback).
var Default = []string{
	"198.41.0.4",     // a.root-servers.net
	"199.9.14.201",   // b.root-servers.net
	"192.33.4.12",    // c.root-servers.net
	"199.7.91.13",    // d.root-servers.net
	"192.203.230.10", // e.root-servers.net
	"192.5.5.241",    // f.root-servers.net
	"192.112.36.4",   // g.root-servers.net
	"198.97.190.53",  // h.root-servers.net
	"192.36.148.17",  // i.root-servers.net
	"192.58.128.30",  // j.root-servers.net
	"193.0.14.129",   // k.root-servers.net
	"199.7.83.42",    // l.root-servers.net
	"202.12.27.33",   // m.root-servers.net
}
