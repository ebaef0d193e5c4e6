package singleinstance

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"time"
)

// perPortProbe caps how long one PING probe may take during a scan.
const perPortProbe = 300 * time.Millisecond

// DetectResidentPort scans the configured port range for a resident that
// answers the PING handshake. The client uses it to locate the resident
// before forwarding a request.
func DetectResidentPort(ctx context.Context) (int, bool) {
	probe := perPortProbe
	if dl, ok := ctx.Deadline(); ok {
		if d := time.Until(dl); d > 0 && d < probe {
			probe = d
		}
	}
	start, end := getPortRange()
	for port := start; port <= end; port++ {
		if ctx.Err() != nil {
			return 0, false
		}
		if ping(net.JoinHostPort(residentHost, strconv.Itoa(port)), probe) {
			return port, true
		}
	}
	return 0, false
}

// ping performs the PING/PONG liveness handshake on one address.
func ping(addr string, timeout time.Duration) bool {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return false
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(timeout))
	w := bufio.NewWriter(conn)
	if _, err := w.WriteString(pingRequest); err != nil {
		return false
	}
	if err := w.Flush(); err != nil {
		return false
	}
	resp, err := bufio.NewReader(conn).ReadString('\n')
	return err == nil && resp == pongResponse
}
