// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config makes it possible to load the dealer web service
// configuration settings from a YAML file, validate and normalize
// them, and instantiate the configured adapters (database connection
// pool, gin engine, token issuer, images store) and use case objects
// out of them.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/momeni/dealer-web/pkg/adapter/config/settings"
	"github.com/momeni/dealer-web/pkg/adapter/db/postgres"
	"github.com/momeni/dealer-web/pkg/adapter/hash/scram"
	"github.com/momeni/dealer-web/pkg/adapter/restful/gin"
	"github.com/momeni/dealer-web/pkg/adapter/storage/localfs"
	"github.com/momeni/dealer-web/pkg/adapter/token/jwt"
	"github.com/momeni/dealer-web/pkg/core/imgstore"
	"github.com/momeni/dealer-web/pkg/core/repo"
	scrami "github.com/momeni/dealer-web/pkg/core/scram"
	"github.com/momeni/dealer-web/pkg/core/token"
	"github.com/momeni/dealer-web/pkg/core/usecase/usersuc"
	"github.com/momeni/dealer-web/pkg/core/usecase/vehiclesuc"
	"gopkg.in/yaml.v3"
)

// Config contains all settings which are required by different parts
// of the project, such as adapters or use cases. It is preferred to
// implement Config with primitive fields or other structs which are
// defined locally, not models or structs which are defined in lower
// layers, so other layers can change freely without affecting the
// configuration file format.
type Config struct {
	Database Database // PostgreSQL database connection settings
	Gin      Gin      // Gin-Gonic instantiation settings
	Logging  Logging  // default slog handler settings
	Auth     Auth     // session token and password hashing settings
	Images   Images   // vehicle images storage settings
	Usecases Usecases // configuration settings for supported use cases
}

// Database contains the database related configuration settings.
type Database struct {
	Host string // domain name or IP address of the DBMS server
	Port int    // port number of the DBMS server
	Name string // database name, like dealer_web
	Role string // database role name to connect with

	// PassFile is the path of a pgpass formatted file which keeps the
	// database connection password out of this configuration file.
	// Each non-comment line should look like
	//
	//	host:port:dbname:role:password
	//
	// and the line matching the above connection settings provides
	// the password.
	PassFile string `yaml:"pass-file"`
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `c` settings.
func (c *Config) ConnectionPool(ctx context.Context) (repo.Pool, error) {
	p, err := c.Database.ConnectionPool(ctx)
	if err != nil {
		return nil, fmt.Errorf(
			"%#v.ConnectionPool: %w", c.Database, err,
		)
	}
	return p, nil
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `d` settings, taking
// the password from the `d.PassFile` pgpass file.
func (d Database) ConnectionPool(ctx context.Context) (repo.Pool, error) {
	u, err := d.ConnectionURL()
	if err != nil {
		return nil, fmt.Errorf("using %q pass-file: %w", d.PassFile, err)
	}
	return postgres.NewPool(ctx, u)
}

// ConnectionURL returns the database connection URL embedding the
// host, port, role name, database name, and password value. These
// items are directly taken from the `d` settings, but the password
// value which is read from the `d.PassFile` file. Returned URL has
// the postgresql scheme.
// The pass file may contain empty or `#`-commented lines in addition
// to the password specifying lines which should conform with the
// pgpass files format with lines like this:
//
//	host:port:dbname:role:password
//
// If the pass file could be read and a password for the configured
// role could be identified, a URL and a nil error will be returned.
// Otherwise, returned string will be empty and error will describe
// the wrapped error condition.
func (d Database) ConnectionURL() (string, error) {
	passLines, err := os.ReadFile(d.PassFile)
	if err != nil {
		return "", fmt.Errorf("reading pass-file: %w", err)
	}
	prfx := fmt.Sprintf("%s:%d:%s:%s:", d.Host, d.Port, d.Name, d.Role)
	var pass string
	for _, line := range strings.Split(string(passLines), "\n") {
		if line == "" || line[0] == '#' {
			continue
		}
		if strings.HasPrefix(line, prfx) {
			pass = line[len(prfx):]
			break
		}
	}
	if pass == "" {
		return "", fmt.Errorf("no matching password line")
	}
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(d.Role, pass),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	return u.String(), nil
}

// ValidateAndNormalize validates the database settings and returns an
// error if they were not acceptable. It can also modify settings in
// order to normalize them or replace some zero values with their
// expected default values (if any). So, it takes a pointer receiver
// instead of a non-reference receiver (in contrast to other methods).
func (d *Database) ValidateAndNormalize() error {
	if d.Host == "" {
		d.Host = "localhost"
	}
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.Name == "" {
		return fmt.Errorf("database name is not specified")
	}
	if d.Role == "" {
		return fmt.Errorf("database role is not specified")
	}
	if d.PassFile == "" {
		return fmt.Errorf("database pass-file is not specified")
	}
	return nil
}

// Gin contains the gin-gonic related configuration settings.
// Middleware fields are defined as pointers, so it is possible to
// detect if they are or are not initialized by the configuration file
// and fill the missing ones with their default values.
type Gin struct {
	// Listen is the host:port address to serve the REST API on.
	Listen string

	Logger   *bool // Whether to register the gin.Logger() middleware
	Recovery *bool // Whether to register the gin.Recovery() middleware
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings.
func (g Gin) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 2)
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	return gin.New(middlewares...)
}

// Logging contains the configuration settings of the process-wide
// default structured logger.
type Logging struct {
	// Level is the minimum level of the emitted log records. It may
	// be set to debug, info, warn, or error (case-insensitively).
	Level string

	// Format selects the log records encoding. It may be set to
	// either text or json.
	Format string
}

// ValidateAndNormalize validates the logging settings, replacing the
// missing level and format values with info and text respectively.
func (l *Logging) ValidateAndNormalize() error {
	if l.Level == "" {
		l.Level = "info"
	}
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(l.Level)); err != nil {
		return fmt.Errorf("parsing logging level: %w", err)
	}
	switch l.Format {
	case "":
		l.Format = "text"
	case "text", "json":
	default:
		return fmt.Errorf("unsupported logging format: %q", l.Format)
	}
	return nil
}

// NewLogger instantiates a slog logger writing to the standard error
// stream based on the `l` settings, so it may be installed as the
// default logger.
func (l Logging) NewLogger() (*slog.Logger, error) {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(l.Level)); err != nil {
		return nil, fmt.Errorf("parsing logging level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: lv}
	var h slog.Handler
	if l.Format == "json" {
		h = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(h), nil
}

// Auth contains the session token issuance and password hashing
// related configuration settings.
type Auth struct {
	// Issuer is recorded as the issuer claim of the session tokens.
	Issuer string

	// SecretFile is the path of a file which keeps the session token
	// signing key out of this configuration file. Its entire content,
	// modulo the surrounding whitespace, is taken as the key.
	SecretFile string `yaml:"secret-file"`

	// SessionTTL is the validity duration of the issued session
	// tokens. A missing value asks for the use case default.
	SessionTTL *settings.Duration `yaml:"session-ttl,omitempty"`

	// HashMethod specifies the password hashing method name.
	// Currently, only scram-sha-1 and scram-sha-256 methods are
	// supported. The scram-sha-256 is the default value.
	HashMethod string `yaml:"hash-method,omitempty"`

	// ScramIterations is the PBKDF2 iterations count for the password
	// hashing operation. A missing value asks for the use case
	// default.
	ScramIterations *int `yaml:"scram-iterations,omitempty"`

	// hasher is instantiated based on the HashMethod, so passwords
	// may be hashed and verified properly.
	hasher scrami.Hasher `yaml:"-"`
}

// ValidateAndNormalize validates the auth settings and returns an
// error if they were not acceptable. It also instantiates the
// password hasher based on the configured hashing method name.
func (a *Auth) ValidateAndNormalize() error {
	if a.Issuer == "" {
		a.Issuer = "dlrweb"
	}
	if a.SecretFile == "" {
		return fmt.Errorf("token secret-file is not specified")
	}
	switch hm := a.HashMethod; hm {
	case "scram-sha-1":
		a.hasher = scram.SHA1()
	case "":
		a.HashMethod = "scram-sha-256"
		fallthrough
	case "scram-sha-256":
		a.hasher = scram.SHA256()
	default:
		return fmt.Errorf(
			"unsupported password hashing method: %q", hm,
		)
	}
	return nil
}

// Hasher returns the password hasher which was instantiated by the
// ValidateAndNormalize method based on the `a.HashMethod` setting.
func (a Auth) Hasher() scrami.Hasher {
	return a.hasher
}

// NewTokenIssuer instantiates a JWT-based session token issuer using
// the signing key which is read from the `a.SecretFile` file.
func (a Auth) NewTokenIssuer() (token.Issuer, error) {
	secret, err := os.ReadFile(a.SecretFile)
	if err != nil {
		return nil, fmt.Errorf(
			"reading %q secret-file: %w", a.SecretFile, err,
		)
	}
	var ttl time.Duration
	if a.SessionTTL != nil {
		ttl = time.Duration(*a.SessionTTL)
	}
	return jwt.New(strings.TrimSpace(string(secret)), a.Issuer, ttl)
}

// Images contains the vehicle images storage related settings.
type Images struct {
	// Dir is the local directory which keeps the uploaded images.
	Dir string

	// Route is the URI path prefix which serves the stored images.
	Route string

	// MaxCount is the maximum accepted images count per vehicle
	// creation or update call. A missing value asks for the use case
	// default.
	MaxCount *int `yaml:"max-count,omitempty"`

	// MaxSize is the maximum accepted size of each uploaded image in
	// bytes. A missing value asks for the use case default.
	MaxSize *int64 `yaml:"max-size,omitempty"`
}

// NewStore instantiates a local filesystem images store, creating the
// `i.Dir` directory if it is missing.
func (i Images) NewStore() (imgstore.Store, error) {
	return localfs.New(i.Dir)
}

// ValidateAndNormalize validates the images settings and replaces the
// missing directory and route values with their default values.
func (i *Images) ValidateAndNormalize() error {
	if i.Dir == "" {
		i.Dir = "images"
	}
	if i.Route == "" {
		i.Route = "/images"
	}
	if i.MaxCount != nil && *i.MaxCount <= 0 {
		return fmt.Errorf(
			"images max-count (%d) is not positive", *i.MaxCount,
		)
	}
	if i.MaxSize != nil && *i.MaxSize <= 0 {
		return fmt.Errorf(
			"images max-size (%d) is not positive", *i.MaxSize,
		)
	}
	return nil
}

// Usecases contains the configuration settings for all use cases.
type Usecases struct {
	Vehicles Vehicles // vehicles use cases related settings
}

// Vehicles contains the configuration settings for the vehicles use
// cases. Fields are defined as pointers, so it is possible to detect
// if they are or are not initialized and leave the use case defaults
// intact for the missing ones.
type Vehicles struct {
	// DefaultPageSize is the vehicles listing page size which is used
	// when a client asks for no (usable) page size.
	DefaultPageSize *int `yaml:"default-page-size,omitempty"`
}

// NewUsersUseCase instantiates a users use case based on the auth
// settings in the `c` struct, using the given database connection
// pool, users repository, and session token issuer.
func (c *Config) NewUsersUseCase(
	p repo.Pool, r repo.Users, t token.Issuer,
) (*usersuc.UseCase, error) {
	opts := make([]usersuc.Option, 0, 2)
	if c.Auth.SessionTTL != nil {
		d := time.Duration(*c.Auth.SessionTTL)
		opts = append(opts, usersuc.WithSessionTTL(d))
	}
	if c.Auth.ScramIterations != nil {
		opts = append(
			opts, usersuc.WithScramIterations(*c.Auth.ScramIterations),
		)
	}
	return usersuc.New(p, r, c.Auth.hasher, t, opts...)
}

// NewVehiclesUseCase instantiates a vehicles use case based on the
// images and vehicles settings in the `c` struct, using the given
// database connection pool, vehicles repository, and images store.
func (c *Config) NewVehiclesUseCase(
	p repo.Pool, r repo.Vehicles, s imgstore.Store,
) (*vehiclesuc.UseCase, error) {
	opts := make([]vehiclesuc.Option, 0, 2)
	if ps := c.Usecases.Vehicles.DefaultPageSize; ps != nil {
		opts = append(opts, vehiclesuc.WithDefaultPageSize(*ps))
	}
	if c.Images.MaxCount != nil || c.Images.MaxSize != nil {
		count, size := 10, int64(5<<20)
		if c.Images.MaxCount != nil {
			count = *c.Images.MaxCount
		}
		if c.Images.MaxSize != nil {
			size = *c.Images.MaxSize
		}
		opts = append(opts, vehiclesuc.WithImageLimits(count, size))
	}
	return vehiclesuc.New(p, r, s, opts...)
}

// Load unmarshals the data byte slice and loads a Config instance
// assuming that it contains the Config settings. Extra items in the
// data will be ignored and missing items will take their default
// values. Thereafter, loaded Config will be validated and normalized
// in order to ensure that provided settings are acceptable.
func Load(data []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

// LoadFile reads the given configuration file and loads a Config
// instance using the Load function.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q config file: %w", path, err)
	}
	c, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading %q config file: %w", path, err)
	}
	return c, nil
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It can also modify
// settings in order to normalize them or replace some zero values
// with their expected default values (if any).
func (c *Config) ValidateAndNormalize() error {
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating database settings: %w", err)
	}
	if c.Gin.Listen == "" {
		c.Gin.Listen = ":8080"
	}
	settings.Nil2Default(&c.Gin.Logger, true)
	settings.Nil2Default(&c.Gin.Recovery, true)
	if err := c.Logging.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating logging settings: %w", err)
	}
	if err := c.Auth.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating auth settings: %w", err)
	}
	if err := c.Images.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating images settings: %w", err)
	}
	if ps := c.Usecases.Vehicles.DefaultPageSize; ps != nil && *ps <= 0 {
		return fmt.Errorf(
			"vehicles default-page-size (%d) is not positive", *ps,
		)
	}
	return nil
}
