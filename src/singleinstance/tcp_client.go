package singleinstance

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

type tcpClient struct{}

func newTcpClient() Client { return &tcpClient{} }

func (c *tcpClient) TryShow(ctx context.Context, menuName string) (bool, error) {
	line := showPrefix + "\n"
	if menuName != "" {
		line = showPrefix + " " + menuName + "\n"
	}
	delegated, _, err := c.roundTrip(ctx, line)
	return delegated, err
}

func (c *tcpClient) TryList(ctx context.Context) (bool, []string, error) {
	delegated, body, err := c.roundTrip(ctx, listRequest)
	if !delegated || err != nil {
		return delegated, nil, err
	}
	var names []string
	for _, line := range strings.Split(body, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			names = append(names, line)
		}
	}
	return true, names, nil
}

// roundTrip locates the resident via DetectResidentPort and forwards one
// request line. Returns delegated=false when no resident answers.
func (c *tcpClient) roundTrip(ctx context.Context, requestLine string) (bool, string, error) {
	deadline := 2 * time.Second
	if dl, ok := ctx.Deadline(); ok {
		if d := time.Until(dl); d > 0 {
			deadline = d
		}
	}
	port, found := DetectResidentPort(ctx)
	if !found {
		return false, "", nil
	}
	addr := net.JoinHostPort(residentHost, strconv.Itoa(port))
	conn, err := net.DialTimeout("tcp", addr, deadline)
	if err != nil {
		// The resident vanished between detection and dial.
		return false, "", nil
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(deadline))
	w := bufio.NewWriter(conn)
	if _, err := w.WriteString(requestLine); err != nil {
		return true, "", err
	}
	if err := w.Flush(); err != nil {
		return true, "", err
	}
	br := bufio.NewReader(conn)
	status, err := br.ReadString('\n')
	if err != nil {
		return true, "", err
	}
	switch status {
	case "SUCCESS\n":
		b, _ := io.ReadAll(br)
		return true, string(b), nil
	case "ERROR\n":
		msg, _ := io.ReadAll(br)
		return true, "", errors.New(string(msg))
	}
	return true, "", errors.New("malformed response from resident")
}
