package ufds

import (
	"strings"
	"time"

	"github.com/go-ldap/ldap/v3"
	"github.com/google/uuid"

	"github.com/nwilkens/triton-go/errors"
)

var userAttributes = []string{
	"uuid",
	"login",
	"uid",
	"email",
	"cn",
	"sn",
	"givenName",
	"company",
	"phone",
	"approved_for_provisioning",
	"registered_developer",
	"triton_cns_enabled",
	"pwdAccountLockedTime",
	"password_expired",
	"memberof",
	"created",
	"updated",
}

var groupAttributes = []string{"cn", "description", "member", "uniquemember"}

// User is a UFDS account entry.
type User struct {
	DN        string `json:"dn"`
	UUID      string `json:"uuid"`
	Login     string `json:"login"`
	Email     string `json:"email,omitempty"`
	CN        string `json:"cn,omitempty"`
	Surname   string `json:"sn,omitempty"`
	GivenName string `json:"given_name,omitempty"`
	Company   string `json:"company,omitempty"`
	Phone     string `json:"phone,omitempty"`

	Admin           bool `json:"admin"`
	Locked          bool `json:"locked"`
	PasswordExpired bool `json:"password_expired"`

	ApprovedForProvisioning bool `json:"approved_for_provisioning"`
	RegisteredDeveloper     bool `json:"registered_developer"`
	TritonCNSEnabled        bool `json:"triton_cns_enabled"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	// Groups holds the cn of each group the user belongs to.
	Groups []string `json:"groups,omitempty"`
}

// Active reports whether the account can log in.
func (u *User) Active() bool {
	return !u.Locked && !u.PasswordExpired
}

// MemberOf reports whether the user belongs to the named group.
func (u *User) MemberOf(group string) bool {
	for _, g := range u.Groups {
		if strings.EqualFold(g, group) {
			return true
		}
	}
	return false
}

// Group is a UFDS group entry.
type Group struct {
	DN          string   `json:"dn"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Members     []string `json:"members,omitempty"`
}

// HasMember reports whether the DN is listed as a group member.
func (g *Group) HasMember(dn string) bool {
	for _, m := range g.Members {
		if equalDN(m, dn) {
			return true
		}
	}
	return false
}

func parseUserEntry(entry *ldap.Entry) (*User, error) {
	rawUUID := entry.GetAttributeValue("uuid")
	if rawUUID == "" {
		return nil, errors.InvalidInput("ufds entry missing uuid attribute")
	}
	id, err := uuid.Parse(rawUUID)
	if err != nil {
		return nil, errors.InvalidInput("ufds entry has malformed uuid: " + rawUUID)
	}

	login := entry.GetAttributeValue("login")
	if login == "" {
		login = entry.GetAttributeValue("uid")
	}
	if login == "" {
		return nil, errors.InvalidInput("ufds entry missing login attribute")
	}

	groups := groupNames(entry.GetAttributeValues("memberof"))

	u := &User{
		DN:        entry.DN,
		UUID:      id.String(),
		Login:     login,
		Email:     entry.GetAttributeValue("email"),
		CN:        entry.GetAttributeValue("cn"),
		Surname:   entry.GetAttributeValue("sn"),
		GivenName: entry.GetAttributeValue("givenName"),
		Company:   entry.GetAttributeValue("company"),
		Phone:     entry.GetAttributeValue("phone"),

		Locked:          entry.GetAttributeValue("pwdAccountLockedTime") != "",
		PasswordExpired: boolAttribute(entry, "password_expired"),

		ApprovedForProvisioning: boolAttribute(entry, "approved_for_provisioning"),
		RegisteredDeveloper:     boolAttribute(entry, "registered_developer"),
		TritonCNSEnabled:        boolAttribute(entry, "triton_cns_enabled"),

		CreatedAt: timeAttribute(entry, "created"),
		UpdatedAt: timeAttribute(entry, "updated"),

		Groups: groups,
	}

	for _, g := range groups {
		if strings.EqualFold(g, "admins") || strings.EqualFold(g, "operators") {
			u.Admin = true
			break
		}
	}
	return u, nil
}

func parseGroupEntry(entry *ldap.Entry) (*Group, error) {
	name := entry.GetAttributeValue("cn")
	if name == "" {
		return nil, errors.InvalidInput("ufds group entry missing cn attribute")
	}
	members := entry.GetAttributeValues("uniquemember")
	if len(members) == 0 {
		members = entry.GetAttributeValues("member")
	}
	return &Group{
		DN:          entry.DN,
		Name:        name,
		Description: entry.GetAttributeValue("description"),
		Members:     members,
	}, nil
}

// groupNames extracts the leading cn from each memberof DN, skipping
// values that do not parse.
func groupNames(memberOf []string) []string {
	var names []string
	for _, raw := range memberOf {
		dn, err := ldap.ParseDN(raw)
		if err != nil {
			continue
		}
		for _, rdn := range dn.RDNs {
			for _, attr := range rdn.Attributes {
				if strings.EqualFold(attr.Type, "cn") {
					names = append(names, attr.Value)
				}
			}
			break
		}
	}
	return names
}

func boolAttribute(entry *ldap.Entry, name string) bool {
	v := entry.GetAttributeValue(name)
	return strings.EqualFold(v, "true") || v == "1"
}

func timeAttribute(entry *ldap.Entry, name string) *time.Time {
	v := entry.GetAttributeValue(name)
	if v == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

// equalDN compares two DNs, tolerating spacing and case differences.
func equalDN(a, b string) bool {
	da, err := ldap.ParseDN(a)
	if err != nil {
		return strings.EqualFold(a, b)
	}
	db, err := ldap.ParseDN(b)
	if err != nil {
		return strings.EqualFold(a, b)
	}
	return da.Equal(db)
}
