package ufds

import (
	"context"
	"net"
	"strings"

	"github.com/go-ldap/ldap/v3"

	"github.com/nwilkens/triton-go/errors"
	"github.com/nwilkens/triton-go/logger"
)

// conn is the subset of *ldap.Conn the client uses. Tests substitute
// an in-memory implementation.
type conn interface {
	Bind(dn, password string) error
	Search(req *ldap.SearchRequest) (*ldap.SearchResult, error)
	Modify(req *ldap.ModifyRequest) error
	Close() error
}

// dialer opens a directory connection.
type dialer func(cfg *Config) (conn, error)

// Client talks to the UFDS directory over LDAP.
type Client struct {
	cfg  Config
	dial dialer
	log  *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger attaches a logger.
func WithLogger(log *logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// withDialer substitutes the connection factory; used by tests.
func withDialer(d dialer) Option {
	return func(c *Client) { c.dial = d }
}

// New creates a UFDS client.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Client{
		cfg:  cfg,
		dial: dialLDAP,
		log:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithComponent("ufds")
	return c, nil
}

func dialLDAP(cfg *Config) (conn, error) {
	opts := []ldap.DialOpt{
		ldap.DialWithDialer(&net.Dialer{Timeout: cfg.ConnectTimeout}),
	}
	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		if tlsCfg != nil {
			opts = append(opts, ldap.DialWithTLSConfig(tlsCfg))
		}
	}
	l, err := ldap.DialURL(cfg.URL, opts...)
	if err != nil {
		return nil, errors.ConnectionFailed("ufds", err)
	}
	l.SetTimeout(cfg.OperationTimeout)
	return l, nil
}

// Authenticate verifies a login and password against the directory and
// returns the user entry on success. The lookup runs under the admin
// bind; the credentials are then checked by binding as the user.
func (c *Client) Authenticate(ctx context.Context, login, password string) (*User, error) {
	if password == "" {
		return nil, errors.Unauthorized("ufds")
	}
	entry, err := c.lookupUser(ctx, login)
	if err != nil {
		return nil, err
	}

	userConn, err := c.dial(&c.cfg)
	if err != nil {
		return nil, err
	}
	defer userConn.Close()

	if err := userConn.Bind(entry.DN, password); err != nil {
		c.log.Debug("user bind rejected", logger.Fields("login", login))
		return nil, errors.Unauthorized("ufds")
	}

	return parseUserEntry(entry)
}

// GetUser fetches a user entry by login without checking credentials.
func (c *Client) GetUser(ctx context.Context, login string) (*User, error) {
	entry, err := c.lookupUser(ctx, login)
	if err != nil {
		return nil, err
	}
	return parseUserEntry(entry)
}

// ListGroups lists the groups under the configured group base DN.
func (c *Client) ListGroups(ctx context.Context) ([]Group, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	adminConn, err := c.adminConn()
	if err != nil {
		return nil, err
	}
	defer adminConn.Close()

	res, err := adminConn.Search(c.searchRequest(c.cfg.GroupBaseDN, DefaultGroupFilter, groupAttributes))
	if err != nil {
		return nil, directoryError(err)
	}

	groups := make([]Group, 0, len(res.Entries))
	for _, entry := range res.Entries {
		g, err := parseGroupEntry(entry)
		if err != nil {
			c.log.Warn("skipping malformed group entry", logger.Fields("dn", entry.DN))
			continue
		}
		groups = append(groups, *g)
	}
	return groups, nil
}

// AddUserToGroup adds the user DN as a uniquemember of the group.
func (c *Client) AddUserToGroup(ctx context.Context, userDN, groupDN string) error {
	return c.modifyMembership(ctx, userDN, groupDN, true)
}

// RemoveUserFromGroup removes the user DN from the group membership.
func (c *Client) RemoveUserFromGroup(ctx context.Context, userDN, groupDN string) error {
	return c.modifyMembership(ctx, userDN, groupDN, false)
}

func (c *Client) modifyMembership(ctx context.Context, userDN, groupDN string, add bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := ldap.ParseDN(userDN); err != nil {
		return errors.InvalidInput("invalid user DN: " + userDN)
	}
	if _, err := ldap.ParseDN(groupDN); err != nil {
		return errors.InvalidInput("invalid group DN: " + groupDN)
	}

	adminConn, err := c.adminConn()
	if err != nil {
		return err
	}
	defer adminConn.Close()

	req := ldap.NewModifyRequest(groupDN, nil)
	if add {
		req.Add("uniquemember", []string{userDN})
	} else {
		req.Delete("uniquemember", []string{userDN})
	}
	if err := adminConn.Modify(req); err != nil {
		return directoryError(err)
	}
	return nil
}

// lookupUser finds a single user entry by login under the admin bind.
func (c *Client) lookupUser(ctx context.Context, login string) (*ldap.Entry, error) {
	if strings.TrimSpace(login) == "" {
		return nil, errors.InvalidInput("login is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	adminConn, err := c.adminConn()
	if err != nil {
		return nil, err
	}
	defer adminConn.Close()

	filter := strings.ReplaceAll(c.cfg.UserFilter, "{login}", ldap.EscapeFilter(login))
	res, err := adminConn.Search(c.searchRequest(c.cfg.UserBaseDN, filter, userAttributes))
	if err != nil {
		return nil, directoryError(err)
	}
	if len(res.Entries) == 0 {
		return nil, errors.NotFound("ufds user " + login)
	}
	return res.Entries[0], nil
}

func (c *Client) adminConn() (conn, error) {
	l, err := c.dial(&c.cfg)
	if err != nil {
		return nil, err
	}
	if err := l.Bind(c.cfg.BindDN, c.cfg.BindPassword); err != nil {
		_ = l.Close()
		return nil, errors.Unauthorized("ufds")
	}
	return l, nil
}

func (c *Client) searchRequest(base, filter string, attributes []string) *ldap.SearchRequest {
	return ldap.NewSearchRequest(
		base,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0,
		int(c.cfg.OperationTimeout.Seconds()),
		false,
		filter,
		attributes,
		nil,
	)
}

func directoryError(err error) error {
	if ldap.IsErrorWithCode(err, ldap.LDAPResultNoSuchObject) {
		return errors.NotFound("ufds entry")
	}
	return errors.New(errors.ErrCodeServiceUnavailable, "ufds operation failed").WithCause(err)
}
