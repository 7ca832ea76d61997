//-------------------------------------------------------------------------
//
// pgEdge Trade Seeder
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cassandra

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gocql/gocql"
)

// DefaultPort is the CQL native protocol port.
const DefaultPort = 9042

// ConnConfig is a parsed cassandra:// connection string.
type ConnConfig struct {
	Hosts       []string
	Port        int
	Username    string
	Password    string
	Consistency gocql.Consistency
	Timeout     time.Duration
	LocalDC     string
}

// ParseConnString parses a connection string of the form
//
//	cassandra://[user[:password]@]host1[:port][,host2[:port]...][?consistency=quorum&timeout=10s&local_dc=dc1]
//
// The scheme is optional. Hosts without a port use DefaultPort.
func ParseConnString(s string) (*ConnConfig, error) {
	rest := strings.TrimSpace(s)
	if after, ok := strings.CutPrefix(rest, "cassandra://"); ok {
		rest = after
	} else if strings.Contains(rest, "://") {
		return nil, fmt.Errorf("unsupported scheme in %q: want cassandra://", s)
	}

	cfg := &ConnConfig{
		Port:        DefaultPort,
		Consistency: gocql.Quorum,
		Timeout:     10 * time.Second,
	}

	rest, rawQuery, _ := strings.Cut(rest, "?")
	rest = strings.TrimSuffix(rest, "/")

	if at := strings.LastIndex(rest, "@"); at >= 0 {
		userInfo := rest[:at]
		rest = rest[at+1:]
		user, pass, _ := strings.Cut(userInfo, ":")
		var err error
		if cfg.Username, err = url.PathUnescape(user); err != nil {
			return nil, fmt.Errorf("invalid username: %w", err)
		}
		if cfg.Password, err = url.PathUnescape(pass); err != nil {
			return nil, fmt.Errorf("invalid password: %w", err)
		}
	}

	if rest == "" {
		return nil, fmt.Errorf("no hosts in connection string")
	}

	for _, h := range strings.Split(rest, ",") {
		h = strings.TrimSpace(h)
		host, port, hasPort := strings.Cut(h, ":")
		if host == "" {
			return nil, fmt.Errorf("empty host in connection string %q", s)
		}
		if hasPort {
			p, err := strconv.Atoi(port)
			if err != nil || p < 1 || p > 65535 {
				return nil, fmt.Errorf("invalid port in %q", h)
			}
		}
		cfg.Hosts = append(cfg.Hosts, h)
	}

	params, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, fmt.Errorf("invalid connection parameters: %w", err)
	}
	for key, values := range params {
		value := values[len(values)-1]
		switch key {
		case "consistency":
			c, err := gocql.ParseConsistencyWrapper(value)
			if err != nil {
				return nil, fmt.Errorf("invalid consistency %q: %w", value, err)
			}
			cfg.Consistency = c
		case "timeout":
			d, err := time.ParseDuration(value)
			if err != nil || d <= 0 {
				return nil, fmt.Errorf("invalid timeout %q", value)
			}
			cfg.Timeout = d
		case "local_dc":
			cfg.LocalDC = value
		default:
			return nil, fmt.Errorf("unknown connection parameter %q", key)
		}
	}

	return cfg, nil
}

// ClusterConfig builds the gocql cluster configuration. No keyspace is
// bound to the session; every statement names its keyspace.
func (c *ConnConfig) ClusterConfig() *gocql.ClusterConfig {
	cluster := gocql.NewCluster(c.Hosts...)
	cluster.Port = c.Port
	cluster.Consistency = c.Consistency
	cluster.Timeout = c.Timeout
	cluster.ConnectTimeout = c.Timeout
	if c.Username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: c.Username,
			Password: c.Password,
		}
	}
	if c.LocalDC != "" {
		cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(
			gocql.DCAwareRoundRobinPolicy(c.LocalDC))
	}
	return cluster
}
