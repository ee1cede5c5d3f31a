package sink

import (
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"
	"time"
)

// StatsdSink forwards metrics to a StatsD/DogStatsD agent over UDP using
// the DogStatsD line protocol ("name:value|type|#tag:value,..."). Writes
// are fire-and-forget: a lost datagram is not retried and transport
// behavior such as agent-side batching is outside this sink's contract.
type StatsdSink struct {
	conn net.Conn
}

// NewStatsdSink dials the agent at the given UDP address
// (e.g. "127.0.0.1:8125").
func NewStatsdSink(address string) (*StatsdSink, error) {
	conn, err := net.Dial("udp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to dial statsd agent at %s: %w", address, err)
	}
	return &StatsdSink{conn: conn}, nil
}

func (s *StatsdSink) Count(name string, delta int64, tags map[string]string) error {
	return s.send(encodeDatagram(name, strconv.FormatInt(delta, 10), "c", tags))
}

func (s *StatsdSink) Gauge(name string, value float64, tags map[string]string) error {
	return s.send(encodeDatagram(name, formatFloat(value), "g", tags))
}

func (s *StatsdSink) Histogram(name string, value float64, tags map[string]string) error {
	return s.send(encodeDatagram(name, formatFloat(value), "h", tags))
}

func (s *StatsdSink) Distribution(name string, value float64, tags map[string]string) error {
	return s.send(encodeDatagram(name, formatFloat(value), "d", tags))
}

func (s *StatsdSink) Set(name string, member string, tags map[string]string) error {
	return s.send(encodeDatagram(name, member, "s", tags))
}

func (s *StatsdSink) Timing(name string, d time.Duration, tags map[string]string) error {
	ms := float64(d) / float64(time.Millisecond)
	return s.send(encodeDatagram(name, formatFloat(ms), "ms", tags))
}

// Close closes the underlying UDP connection.
func (s *StatsdSink) Close() error {
	return s.conn.Close()
}

func (s *StatsdSink) send(datagram string) error {
	_, err := s.conn.Write([]byte(datagram))
	return err
}

// encodeDatagram renders one DogStatsD protocol line. Tags are sorted so
// the wire form is deterministic.
func encodeDatagram(name, value, metricType string, tags map[string]string) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte(':')
	sb.WriteString(value)
	sb.WriteByte('|')
	sb.WriteString(metricType)

	if len(tags) > 0 {
		keys := make([]string, 0, len(tags))
		for k := range tags {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteString("|#")
		for i, k := range keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(k)
			sb.WriteByte(':')
			sb.WriteString(tags[k])
		}
	}

	return sb.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
