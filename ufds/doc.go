// Package ufds is the LDAP client for the UFDS directory service,
// which holds user accounts and groups for a datacenter.
package ufds
