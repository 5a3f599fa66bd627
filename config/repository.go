package config

import (
	"net/url"
	"strconv"
	"time"
)

// Repository defines the node store configuration variables.
type Repository struct {
	// Driver defines the name of the store factory.
	Driver string `mapstructure:"driver" validate:"oneof=memory postgres"`

	// Store is the store reference i.e. 'workspace://SpacesStore'.
	Store string `mapstructure:"store" validate:"required"`

	// Host defines the access hostname or the ip address.
	Host string `mapstructure:"host" validate:"isdefault|hostname|ip"`

	// Port is the connection port.
	Port int `mapstructure:"port" validate:"gte=0,lte=65535"`

	// RawURL is the raw connection url. If set it must define the protocol ('postgres://'...).
	RawURL string `mapstructure:"raw_url" validate:"isdefault|url"`

	// Username is the username used to get connection credential.
	Username string `mapstructure:"username"`

	// Password is the password used to get connection credentials.
	Password string `mapstructure:"password"`

	// DBName is the name of the database.
	DBName string `mapstructure:"dbname"`

	// SSLMode is the postgres ssl mode.
	SSLMode string `mapstructure:"sslmode"`

	// MaxConns is the maximum number of the pool connections.
	MaxConns int `mapstructure:"max_conns" validate:"gte=0"`

	// MaxTimeout defines the maximum timeout for the store connection.
	MaxTimeout time.Duration `mapstructure:"max_timeout"`
}

// ConnectionURL gets the connection url. The RawURL has precedence over the
// connection fields.
func (r *Repository) ConnectionURL() string {
	if r.RawURL != "" {
		return r.RawURL
	}
	if r.Host == "" {
		return ""
	}

	u := &url.URL{Scheme: "postgres", Host: r.Host, Path: "/" + r.DBName}
	if r.Port != 0 {
		u.Host += ":" + strconv.Itoa(r.Port)
	}
	if r.Username != "" {
		if r.Password != "" {
			u.User = url.UserPassword(r.Username, r.Password)
		} else {
			u.User = url.User(r.Username)
		}
	}

	q := url.Values{}
	if r.SSLMode != "" {
		q.Set("sslmode", r.SSLMode)
	}
	if r.MaxConns != 0 {
		q.Set("pool_max_conns", strconv.Itoa(r.MaxConns))
	}
	if r.MaxTimeout != 0 {
		q.Set("connect_timeout", strconv.Itoa(int(r.MaxTimeout.Seconds())))
	}
	u.RawQuery = q.Encode()
	return u.String()
}
