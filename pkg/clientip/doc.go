// Package clientip resolves the address of the client behind a request.
//
// A Resolver checks a list of trusted proxy headers in order and falls back
// to the TCP peer address. For X-Forwarded-For the first valid entry wins.
// Only configure headers that the proxy in front of the server overwrites;
// any other header is client controlled.
//
//	ips := clientip.New("X-Forwarded-For", "X-Real-IP")
//	addr := ips.IP(r)
package clientip
